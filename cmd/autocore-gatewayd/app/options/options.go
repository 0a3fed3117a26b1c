package options

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/autocore-io/autocore/internal/gateway"
	"github.com/autocore-io/autocore/pkg/app"
	"github.com/autocore-io/autocore/pkg/log"
	"github.com/autocore-io/autocore/pkg/options"
)

var _ app.CliOptions = (*GatewaydOptions)(nil)

// GatewaydOptions aggregates every option group of the gateway daemon.
type GatewaydOptions struct {
	GatewayOptions *options.GatewayOptions `json:"gateway" mapstructure:"gateway"`
	HttpOptions    *options.HttpOptions    `json:"http" mapstructure:"http"`
	MqttOptions    *options.MqttOptions    `json:"mqtt" mapstructure:"mqtt"`
	BackendOptions *options.BackendOptions `json:"backend" mapstructure:"backend"`
	StoreOptions   *options.StoreOptions   `json:"store" mapstructure:"store"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

// NewGatewaydOptions creates a GatewaydOptions with default parameters.
func NewGatewaydOptions() *GatewaydOptions {
	return &GatewaydOptions{
		GatewayOptions: options.NewGatewayOptions(),
		HttpOptions:    options.NewHttpOptions(),
		MqttOptions:    options.NewMqttOptions(),
		BackendOptions: options.NewBackendOptions(),
		StoreOptions:   options.NewStoreOptions(),
		Log:            log.NewOptions(),
	}
}

// AddFlags registers the flags of every option group.
func (o *GatewaydOptions) AddFlags(fs *pflag.FlagSet) {
	o.GatewayOptions.AddFlags(fs)
	o.HttpOptions.AddFlags(fs)
	o.MqttOptions.AddFlags(fs)
	o.BackendOptions.AddFlags(fs)
	o.StoreOptions.AddFlags(fs)
	o.Log.AddFlags(fs)
}

// Complete initializes the global logger from the final option values.
func (o *GatewaydOptions) Complete() error {
	log.Init(o.Log)
	return nil
}

// Validate aggregates the validation of every option group.
func (o *GatewaydOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.GatewayOptions.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.BackendOptions.Validate()...)
	errs = append(errs, o.StoreOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errors.Join(errs...)
}

// Config builds the daemon wiring config from the options.
func (o *GatewaydOptions) Config() (*gateway.Config, error) {
	return &gateway.Config{
		GatewayOptions: o.GatewayOptions,
		HttpOptions:    o.HttpOptions,
		MqttOptions:    o.MqttOptions,
		BackendOptions: o.BackendOptions,
		StoreOptions:   o.StoreOptions,
	}, nil
}
