package options

import (
	"github.com/spf13/pflag"
)

var _ IOptions = (*StoreOptions)(nil)

// StoreOptions contains configuration for the local snapshot cache.
type StoreOptions struct {
	// Path to the SQLite database file. Empty disables the cache.
	Path string `json:"path" mapstructure:"path"`
}

// NewStoreOptions creates a StoreOptions object with default parameters.
func NewStoreOptions() *StoreOptions {
	return &StoreOptions{
		Path: "/var/lib/autocore/gateway.db",
	}
}

func (o *StoreOptions) Validate() []error {
	return nil
}

// AddFlags adds flags for StoreOptions to the specified FlagSet.
func (o *StoreOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Path, "store.path", o.Path, "Path of the local SQLite cache ('' disables caching).")
}
