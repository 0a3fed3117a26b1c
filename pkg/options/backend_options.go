package options

import (
	"errors"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*BackendOptions)(nil)

// BackendOptions contains configuration for the AutoCore backend REST API.
type BackendOptions struct {
	// BaseURL of the backend, e.g. "http://backend:8081".
	// The "/api" path prefix is appended by the client.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout for a single request before the in-flight call is aborted.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries for calls routed through the retry helper.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`

	// RetryDelay is the initial backoff delay; it doubles after each failure.
	RetryDelay time.Duration `json:"retry-delay" mapstructure:"retry-delay"`
}

// NewBackendOptions creates a BackendOptions object with default parameters.
func NewBackendOptions() *BackendOptions {
	return &BackendOptions{
		BaseURL:    "http://localhost:8081",
		Timeout:    10 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

func (o *BackendOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if _, err := url.Parse(o.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if o.MaxRetries < 1 {
		errs = append(errs, errors.New("backend.max-retries must be at least 1"))
	}

	return errs
}

// AddFlags adds flags for BackendOptions to the specified FlagSet.
func (o *BackendOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "backend.base-url", o.BaseURL, "Base URL of the AutoCore backend API.")
	fs.DurationVar(&o.Timeout, "backend.timeout", o.Timeout, "Per-request timeout for backend calls.")
	fs.IntVar(&o.MaxRetries, "backend.max-retries", o.MaxRetries, "Maximum attempts for retried backend calls.")
	fs.DurationVar(&o.RetryDelay, "backend.retry-delay", o.RetryDelay, "Initial backoff delay; doubles after each failed attempt.")
}
