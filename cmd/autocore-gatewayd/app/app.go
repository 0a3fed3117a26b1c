package app

import (
	"fmt"

	"github.com/autocore-io/autocore/cmd/autocore-gatewayd/app/options"
	"github.com/autocore-io/autocore/pkg/app"
)

const (
	commandName = "autocore-gatewayd"
	commandDesc = `The AutoCore gateway daemon fetches configuration snapshots from the
backend, adapts them into render-ready preview models for displays, bridges
relay commands and telemetry onto the MQTT namespace and keeps a local
last-known-good cache so screens survive backend outages.`
)

// NewApp creates the gateway daemon application.
func NewApp() *app.App {
	opts := options.NewGatewaydOptions()
	return app.NewApp(
		commandName,
		"Launch the AutoCore smart gateway",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithRunFunc(run(opts)),
	)
}

func run(opts *options.GatewaydOptions) app.RunFunc {
	return func() error {
		ctx := app.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		srv, err := cfg.NewGatewayServer(ctx)
		if err != nil {
			return fmt.Errorf("failed to create gateway server: %w", err)
		}

		return srv.Run(ctx)
	}
}
