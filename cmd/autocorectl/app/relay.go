package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/autocore-io/autocore/internal/gateway/bridge"
	"github.com/autocore-io/autocore/pkg/mqtt/topic"
)

func (c *ctl) newRelayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Switch relay channels",
	}

	set := &cobra.Command{
		Use:   "set <device-uuid> <channel> <on|off>",
		Short: "Switch one relay channel through the backend MQTT relay",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, err := strconv.Atoi(args[1])
			if err != nil || channel < 1 {
				return fmt.Errorf("invalid channel %q", args[1])
			}

			var state bool
			switch args[2] {
			case "on":
				state = true
			case "off":
				state = false
			default:
				return fmt.Errorf("state must be 'on' or 'off', got %q", args[2])
			}

			// The CLI has no broker connection; it stamps the envelope
			// itself and goes through the backend relay endpoint.
			payload := map[string]any{
				"channel":          channel,
				"state":            state,
				"protocol_version": bridge.ProtocolVersion,
				"timestamp":        time.Now().UTC().Format(time.RFC3339),
			}
			b := topic.NewBuilder(topic.DefaultRoot)
			t := b.RelaySet(args[0])
			if _, err := b.Validate(t); err != nil {
				return err
			}
			if err := c.backend().PublishMQTT(cmd.Context(), t, payload); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Relay %d of %s set to %s\n", channel, args[0], args[2])
			return nil
		},
	}
	cmd.AddCommand(set)

	return cmd
}
