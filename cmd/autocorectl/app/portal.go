package app

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/autocore-io/autocore/internal/portal"
)

func (c *ctl) newPortalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Provision a board through its captive portal",
		Long: `Talks to the captive-portal API a factory-fresh board serves on its
own access point. Join the board's WiFi network first; the default
portal address is ` + c.portalOptions.BaseURL + `.`,
	}
	cmd.AddCommand(
		c.newPortalStatusCommand(),
		c.newPortalNetworksCommand(),
		c.newPortalConfigureCommand(),
		c.newPortalTestCommand(),
		c.newPortalRestartCommand(),
		c.newPortalFactoryResetCommand(),
	)
	return cmd
}

func (c *ctl) newPortalStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the board's provisioning state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.portal().Status(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("UUID:", st.DeviceUUID)
			table.AddRow("Type:", st.DeviceType)
			table.AddRow("Firmware:", st.FirmwareVersion)
			table.AddRow("Configured:", st.Configured)
			table.AddRow("WiFi:", st.WiFiConnected)
			if st.IPAddress != "" {
				table.AddRow("IP:", st.IPAddress)
			}
			table.AddRow("Uptime:", fmt.Sprintf("%ds", st.UptimeSeconds))
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func (c *ctl) newPortalNetworksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "Scan for visible WiFi networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nets, err := c.portal().Networks(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("SSID", "RSSI", "CHANNEL", "SECURE")
			for _, n := range nets {
				table.AddRow(n.SSID, n.RSSI, n.Channel, n.Secure)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func portalConfigFlags(cmd *cobra.Command, cfg *portal.Config) {
	cmd.Flags().StringVar(&cfg.WiFiSSID, "ssid", "", "WiFi network to join.")
	cmd.Flags().StringVar(&cfg.WiFiPassword, "password", "", "WiFi password.")
	cmd.Flags().StringVar(&cfg.MQTTBroker, "broker", "", "MQTT broker host the board should use.")
	cmd.Flags().IntVar(&cfg.MQTTPort, "broker-port", 1883, "MQTT broker port.")
	cmd.Flags().StringVar(&cfg.BackendURL, "backend-url", "", "Backend URL the board should use.")
	cmd.Flags().StringVar(&cfg.DeviceName, "name", "", "Human-readable device name.")
}

func (c *ctl) newPortalConfigureCommand() *cobra.Command {
	var cfg portal.Config
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Write the provisioning config (the board reboots afterwards)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.WiFiSSID == "" || cfg.MQTTBroker == "" {
				return fmt.Errorf("--ssid and --broker are required")
			}
			if err := c.portal().SetConfig(cmd.Context(), &cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config accepted; the board is rebooting")
			return nil
		},
	}
	portalConfigFlags(cmd, &cfg)
	return cmd
}

func (c *ctl) newPortalTestCommand() *cobra.Command {
	var cfg portal.Config
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Try a candidate config without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.portal().TestConnection(cmd.Context(), &cfg)
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("WiFi:", res.WiFiOK)
			table.AddRow("MQTT:", res.MQTTOK)
			table.AddRow("Backend:", res.BackendOK)
			if res.Message != "" {
				table.AddRow("Message:", res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
	portalConfigFlags(cmd, &cfg)
	return cmd
}

func (c *ctl) newPortalRestartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Reboot the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.portal().Restart(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reboot requested")
			return nil
		},
	}
}

func (c *ctl) newPortalFactoryResetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "factory-reset",
		Short: "Wipe the board's config and reboot into the captive portal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to factory-reset without --yes")
			}
			if err := c.portal().FactoryReset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Factory reset requested")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the factory reset.")
	return cmd
}
