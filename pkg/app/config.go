package app

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

// addConfigFlag registers the --config flag.
func addConfigFlag(_ string, fs *pflag.FlagSet) {
	fs.StringP(configFlagName, "c", "", "Path to the configuration file (YAML).")
}

// loadConfig merges the config file, environment and flags into opts.
// Precedence, highest first: explicit flags, environment, config file,
// flag defaults.
func loadConfig(name string, fs *pflag.FlagSet, opts CliOptions) error {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	v.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(name), "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString(configFlagName); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if opts == nil {
		return nil
	}
	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}
