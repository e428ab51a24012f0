package motion

import "fmt"

// ConfigurationError reports that a profile declares no layout for the
// handedness a device asked for. Fatal to controller construction.
type ConfigurationError struct {
	ProfileID  string
	Handedness string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("profile %q has no layout for handedness %q", e.ProfileID, e.Handedness)
}
