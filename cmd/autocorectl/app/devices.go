package app

import (
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func (c *ctl) newDevicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List registered ESP32 devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := c.backend().Devices(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 50
			table.AddRow("UUID", "NAME", "TYPE", "STATUS", "IP", "FIRMWARE", "LAST SEEN")
			for _, d := range devices {
				lastSeen := "-"
				if d.LastSeen != nil {
					lastSeen = d.LastSeen.Local().Format(time.RFC3339)
				}
				table.AddRow(d.UUID, d.Name, d.DeviceType, d.Status, d.IPAddress, d.FirmwareVersion, lastSeen)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func (c *ctl) newBoardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List relay boards and their channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := c.backend().RelayBoards(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 50
			table.AddRow("BOARD", "DEVICE", "CHANNEL", "NAME", "FUNCTION")
			for _, b := range boards {
				if len(b.Channels) == 0 {
					table.AddRow(b.Name, b.DeviceUUID, "-", "-", "-")
					continue
				}
				for _, ch := range b.Channels {
					table.AddRow(b.Name, b.DeviceUUID, ch.ChannelNumber, ch.Name, ch.FunctionType)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
