// Package app builds the CLI skeleton shared by all binaries: cobra command
// wiring, config-file loading through viper and option validation.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RunFunc is the application entry point invoked after options are loaded,
// completed and validated.
type RunFunc func() error

// CliOptions is the contract application option structs implement.
type CliOptions interface {
	// AddFlags registers all option flags.
	AddFlags(fs *pflag.FlagSet)
	// Complete fills derived defaults after flags and config are loaded.
	Complete() error
	// Validate checks the final option values.
	Validate() error
}

// App is a command-line application.
type App struct {
	name        string
	short       string
	description string
	options     CliOptions
	runFunc     RunFunc
	noConfig    bool

	cmd *cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithDescription sets the long help text.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithOptions binds the option struct loaded from flags and config file.
func WithOptions(opts CliOptions) Option {
	return func(a *App) { a.options = opts }
}

// WithRunFunc sets the entry point.
func WithRunFunc(fn RunFunc) Option {
	return func(a *App) { a.runFunc = fn }
}

// WithNoConfig disables the --config file flag.
func WithNoConfig() Option {
	return func(a *App) { a.noConfig = true }
}

// NewApp creates an App.
func NewApp(name, short string, opts ...Option) *App {
	a := &App{
		name:  name,
		short: short,
	}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.short,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          a.runCommand,
	}

	if a.options != nil {
		a.options.AddFlags(cmd.Flags())
	}
	if !a.noConfig {
		addConfigFlag(a.name, cmd.Flags())
	}

	a.cmd = cmd
}

// Command exposes the underlying cobra command, for adding subcommands.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// Run executes the application, exiting non-zero on failure.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *App) runCommand(cmd *cobra.Command, args []string) error {
	if !a.noConfig {
		if err := loadConfig(a.name, cmd.Flags(), a.options); err != nil {
			return err
		}
	}

	if a.options != nil {
		if err := a.options.Complete(); err != nil {
			return err
		}
		if err := a.options.Validate(); err != nil {
			return err
		}
	}

	if a.runFunc != nil {
		return a.runFunc()
	}
	return nil
}

// SetupSignalContext returns a context canceled on SIGINT/SIGTERM. A second
// signal kills the process immediately.
func SetupSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
		<-ch
		os.Exit(1)
	}()

	return ctx
}
