// Package app implements the autocorectl command tree: device and relay
// board listings, vehicle record management, config snapshot inspection,
// relay commands and captive-portal provisioning.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autocore-io/autocore/internal/gateway/backend"
	"github.com/autocore-io/autocore/internal/gateway/vehicle"
	"github.com/autocore-io/autocore/internal/portal"
	"github.com/autocore-io/autocore/pkg/log"
	"github.com/autocore-io/autocore/pkg/options"
)

const commandDesc = `autocorectl manages an AutoCore installation from the command line:
inspect registered devices and relay boards, edit the vehicle record,
pull config snapshots, switch relays and provision factory-fresh boards
through their captive portal.`

// ctl carries the lazily built clients shared by all subcommands.
type ctl struct {
	backendOptions *options.BackendOptions
	portalOptions  *options.PortalOptions
	logOptions     *log.Options
}

// NewCommand builds the autocorectl root command.
func NewCommand() *cobra.Command {
	c := &ctl{
		backendOptions: options.NewBackendOptions(),
		portalOptions:  options.NewPortalOptions(),
		logOptions:     log.NewOptions(),
	}
	// CLI output should stay clean unless something goes wrong.
	c.logOptions.Level = "warn"
	c.logOptions.DisableCaller = true

	root := &cobra.Command{
		Use:           "autocorectl",
		Short:         "Manage an AutoCore installation",
		Long:          commandDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Init(c.logOptions)
			return errors.Join(
				errors.Join(c.backendOptions.Validate()...),
				errors.Join(c.portalOptions.Validate()...),
			)
		},
	}

	pf := root.PersistentFlags()
	c.backendOptions.AddFlags(pf)
	c.portalOptions.AddFlags(pf)
	pf.StringVar(&c.logOptions.Level, "log.level", c.logOptions.Level, "The minimum log level to output.")

	root.AddCommand(
		c.newDevicesCommand(),
		c.newBoardsCommand(),
		c.newVehicleCommand(),
		c.newConfigCommand(),
		c.newRelayCommand(),
		c.newPortalCommand(),
	)
	return root
}

// Run executes the command tree, exiting non-zero on failure.
func Run() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (c *ctl) backend() *backend.Client {
	return backend.NewClient(c.backendOptions)
}

func (c *ctl) vehicle() *vehicle.Service {
	return vehicle.NewService(c.backend(), nil)
}

func (c *ctl) portal() *portal.Client {
	return portal.NewClient(c.portalOptions)
}
