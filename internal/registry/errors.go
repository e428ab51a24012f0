package registry

import "fmt"

// NotFoundError reports that no candidate or fallback profile id exists in
// the repository index, or that a resolved profile lacks the requested
// handedness.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return "profile registry: not found: " + e.What
}

// NetworkError reports a transport failure while fetching from the
// repository. It is never retried internally.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("profile registry: fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
