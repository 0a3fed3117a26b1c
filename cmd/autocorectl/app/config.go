package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *ctl) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration snapshots",
	}

	var (
		deviceUUID string
		previewOn  bool
	)
	pull := &cobra.Command{
		Use:   "pull",
		Short: "Fetch the full config snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := c.backend().FetchSnapshot(cmd.Context(), deviceUUID, previewOn)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	pull.Flags().StringVar(&deviceUUID, "device-uuid", "", "Scope the snapshot to one device.")
	pull.Flags().BoolVar(&previewOn, "preview", false, "Request demo-friendly defaults.")
	cmd.AddCommand(pull)

	return cmd
}
