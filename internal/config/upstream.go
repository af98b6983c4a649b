package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/asaskevich/govalidator"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSearchURL = "https://api.spoonacular.com/recipes/complexSearch"
	DefaultDetailURL = "https://api.spoonacular.com/recipes"
	DefaultTimeout   = 10 * time.Second
)

// Upstream describes the third-party recipe API the proxies forward to.
type Upstream struct {
	SearchURL string        `yaml:"search_url"`
	DetailURL string        `yaml:"detail_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DefaultUpstream returns the Spoonacular endpoints.
func DefaultUpstream() *Upstream {
	return &Upstream{
		SearchURL: DefaultSearchURL,
		DetailURL: DefaultDetailURL,
		Timeout:   DefaultTimeout,
	}
}

// LoadUpstream reads endpoint overrides from a YAML file. A missing file is
// not an error and yields the defaults; unset keys keep their defaults.
func LoadUpstream(path string) (*Upstream, error) {
	upstream := DefaultUpstream()
	if path == "" {
		return upstream, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return upstream, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream config: %w", err)
	}

	if err := yaml.Unmarshal(data, upstream); err != nil {
		return nil, fmt.Errorf("failed to parse upstream config: %w", err)
	}

	if err := upstream.Validate(); err != nil {
		return nil, err
	}
	return upstream, nil
}

// IsHTTPURL reports whether raw is an absolute http or https URL with a host.
func IsHTTPURL(raw string) bool {
	if !govalidator.IsURL(raw) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate checks that both endpoints are absolute URLs and the timeout is positive.
func (u *Upstream) Validate() error {
	for name, raw := range map[string]string{"search_url": u.SearchURL, "detail_url": u.DetailURL} {
		if !IsHTTPURL(raw) {
			return fmt.Errorf("upstream %s is not a valid URL: %q", name, raw)
		}
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", u.Timeout)
	}
	return nil
}
