// Package registry resolves an ordered list of profile id candidates against
// a remote profile repository: an index document mapping profile id to
// storage path, plus one JSON profile document per id.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/soar/XRControllerView/backend/internal/profile"
)

const (
	// IndexPath is the repository index document, relative to the base URL.
	IndexPath = "index.json"
	// FallbackProfileID is tried when no candidate id is present in the
	// index. Every repository this backend ships or points at is expected
	// to carry it.
	FallbackProfileID = "generic-trigger"

	defaultRequestTimeout = 10 * time.Second
)

// Resolution is the outcome of a successful resolve: the parsed profile and
// the absolute asset URL for the requested handedness.
type Resolution struct {
	Profile  *profile.Profile
	AssetURL string
}

// Resolver fetches and selects profiles from one repository base URL.
// Safe for concurrent use.
type Resolver struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.client = c }
}

// New creates a resolver rooted at baseURL (no trailing slash required).
func New(baseURL string, log *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultRequestTimeout},
		log:     log.Named("registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index fetches the repository index: profile id → storage path.
func (r *Resolver) Index(ctx context.Context) (map[string]string, error) {
	body, err := r.fetch(ctx, IndexPath)
	if err != nil {
		return nil, err
	}
	var index map[string]string
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("profile registry: malformed index: %w", err)
	}
	return index, nil
}

// Resolve walks the candidate ids in order, selects the first present in the
// index (falling back to FallbackProfileID), fetches and parses it, and
// verifies it declares a layout for the requested handedness.
func (r *Resolver) Resolve(ctx context.Context, candidates []string, hand profile.Handedness) (*Resolution, error) {
	prof, profilePath, err := r.selectProfile(ctx, candidates)
	if err != nil {
		return nil, err
	}

	layout, ok := prof.Layouts[hand]
	if !ok {
		return nil, &NotFoundError{What: fmt.Sprintf("profile %q: layout for handedness %q", prof.ProfileID, hand)}
	}

	return &Resolution{
		Profile:  prof,
		AssetURL: r.assetURL(profilePath, layout.AssetPath),
	}, nil
}

// Preview fetches and parses the first matching candidate without binding to
// a handedness, for enumerating a profile's layouts before a device attaches.
func (r *Resolver) Preview(ctx context.Context, candidates []string) (*profile.Profile, error) {
	prof, _, err := r.selectProfile(ctx, candidates)
	return prof, err
}

func (r *Resolver) selectProfile(ctx context.Context, candidates []string) (*profile.Profile, string, error) {
	index, err := r.Index(ctx)
	if err != nil {
		return nil, "", err
	}

	var selected, profilePath string
	for _, id := range candidates {
		if p, ok := index[id]; ok {
			selected, profilePath = id, p
			break
		}
	}
	if selected == "" {
		p, ok := index[FallbackProfileID]
		if !ok {
			return nil, "", &NotFoundError{What: fmt.Sprintf("none of %v nor fallback %q in index", candidates, FallbackProfileID)}
		}
		selected, profilePath = FallbackProfileID, p
		r.log.Info("no candidate matched, using fallback",
			zap.Strings("candidates", candidates), zap.String("fallback", FallbackProfileID))
	}

	body, err := r.fetch(ctx, profilePath)
	if err != nil {
		return nil, "", err
	}
	prof, err := profile.Parse(body)
	if err != nil {
		return nil, "", fmt.Errorf("profile %q: %w", selected, err)
	}
	r.log.Info("profile resolved", zap.String("profileId", prof.ProfileID))
	return prof, profilePath, nil
}

// assetURL joins the base URL, the directory of the profile document, and
// the layout's relative asset path.
func (r *Resolver) assetURL(profilePath, assetPath string) string {
	if assetPath == "" {
		return ""
	}
	return r.join(path.Join(path.Dir(profilePath), assetPath))
}

func (r *Resolver) join(rel string) string {
	base := r.baseURL
	if u, err := url.Parse(base); err == nil {
		u.Path = path.Join(u.Path, rel)
		return u.String()
	}
	return base + "/" + rel
}

func (r *Resolver) fetch(ctx context.Context, rel string) ([]byte, error) {
	u := r.join(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: u, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	return body, nil
}
