package options

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*GatewayOptions)(nil)

// GatewayOptions contains identity and refresh behavior of this gateway.
type GatewayOptions struct {
	// DeviceUUID identifies this gateway towards the backend and on MQTT
	// topics. Empty requests the generic (non device-scoped) snapshot.
	DeviceUUID string `json:"device-uuid" mapstructure:"device-uuid"`

	// RefreshInterval between config snapshot fetches. Each tick is
	// independent; a slow fetch is not serialized against the next tick.
	RefreshInterval time.Duration `json:"refresh-interval" mapstructure:"refresh-interval"`

	// HeartbeatInterval between gateway status publications.
	HeartbeatInterval time.Duration `json:"heartbeat-interval" mapstructure:"heartbeat-interval"`

	// Preview requests synthesized demo values for items without telemetry.
	Preview bool `json:"preview" mapstructure:"preview"`

	// OverridesFile is an optional local file watched for changes; a write
	// triggers an immediate refresh.
	OverridesFile string `json:"overrides-file" mapstructure:"overrides-file"`
}

// NewGatewayOptions creates a GatewayOptions object with default parameters.
func NewGatewayOptions() *GatewayOptions {
	return &GatewayOptions{
		RefreshInterval:   15 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		Preview:           true,
	}
}

func (o *GatewayOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.RefreshInterval < 5*time.Second || o.RefreshInterval > 30*time.Second {
		errs = append(errs, errors.New("gateway.refresh-interval must be between 5s and 30s"))
	}

	return errs
}

// AddFlags adds flags for GatewayOptions to the specified FlagSet.
func (o *GatewayOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.DeviceUUID, "gateway.device-uuid", o.DeviceUUID, "UUID of this gateway device.")
	fs.DurationVar(&o.RefreshInterval, "gateway.refresh-interval", o.RefreshInterval, "Interval between config snapshot refreshes (5s-30s).")
	fs.DurationVar(&o.HeartbeatInterval, "gateway.heartbeat-interval", o.HeartbeatInterval, "Interval between gateway status publications.")
	fs.BoolVar(&o.Preview, "gateway.preview", o.Preview, "Request demo values for items without live telemetry.")
	fs.StringVar(&o.OverridesFile, "gateway.overrides-file", o.OverridesFile, "Optional file watched for changes to trigger refreshes.")
}
