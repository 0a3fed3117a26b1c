package options

import (
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*PortalOptions)(nil)

// PortalOptions contains configuration for the ESP32 captive-portal API.
// Freshly flashed boards expose it on their own access point.
type PortalOptions struct {
	// BaseURL of the device-local portal, usually the AP gateway address.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout for portal requests. Kept short: boards reboot mid-call.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewPortalOptions creates a PortalOptions object with default parameters.
func NewPortalOptions() *PortalOptions {
	return &PortalOptions{
		BaseURL: "http://192.168.4.1",
		Timeout: 5 * time.Second,
	}
}

func (o *PortalOptions) Validate() []error {
	return nil
}

// AddFlags adds flags for PortalOptions to the specified FlagSet.
func (o *PortalOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "portal.base-url", o.BaseURL, "Base URL of the device captive portal.")
	fs.DurationVar(&o.Timeout, "portal.timeout", o.Timeout, "Timeout for captive-portal requests.")
}
