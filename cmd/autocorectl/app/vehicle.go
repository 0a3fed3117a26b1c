package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
	"github.com/autocore-io/autocore/internal/gateway/vehicle"
)

func (c *ctl) newVehicleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Manage the vehicle record",
	}
	cmd.AddCommand(
		c.newVehicleGetCommand(),
		c.newVehicleOdometerCommand(),
		c.newVehicleStatusCommand(),
		c.newVehicleLocationCommand(),
		c.newVehicleDeleteCommand(),
		c.newVehicleResetCommand(),
		c.newVehicleMaintenanceCommand(),
	)
	return cmd
}

func (c *ctl) newVehicleGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the vehicle record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := c.vehicle()
			v, err := svc.Get(cmd.Context())
			if err != nil {
				return err
			}
			dv := svc.FormatForDisplay(v)

			table := uitable.New()
			table.AddRow("Veículo:", dv.DisplayName)
			table.AddRow("Ano:", dv.YearRange)
			table.AddRow("Status:", dv.StatusLabel)
			table.AddRow("Combustível:", dv.FuelTypeLabel)
			table.AddRow("Câmbio:", dv.TransmissionLabel)
			if v.CurrentMileage != nil {
				table.AddRow("Hodômetro:", fmt.Sprintf("%d km", *v.CurrentMileage))
			}
			if dv.NeedsMaintenance {
				table.AddRow("Manutenção:", "Revisão pendente")
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func (c *ctl) newVehicleOdometerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-odometer <km>",
		Short: "Update the odometer reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := strconv.Atoi(args[0])
			if err != nil || km < 0 {
				return fmt.Errorf("invalid odometer value %q", args[0])
			}
			v, err := c.vehicle().SetOdometer(cmd.Context(), km)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hodômetro atualizado: %d km\n", *v.CurrentMileage)
			return nil
		},
	}
}

func (c *ctl) newVehicleStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <status>",
		Short: "Update the vehicle status (active, maintenance, inactive, sold, accident)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := strings.ToLower(args[0])
			if !vehicle.ValidStatus(status) {
				return fmt.Errorf("unknown status %q", args[0])
			}
			svc := c.vehicle()
			v, err := svc.SetStatus(cmd.Context(), status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Status atualizado: %s\n", svc.FormatForDisplay(v).StatusLabel)
			return nil
		},
	}
}

func (c *ctl) newVehicleLocationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-location <lat> <lon>",
		Short: "Update the vehicle position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[0])
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[1])
			}
			if _, err := c.vehicle().SetLocation(cmd.Context(), lat, lon); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Localização atualizada: %.5f, %.5f\n", lat, lon)
			return nil
		},
	}
}

func (c *ctl) newVehicleDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the vehicle record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete without --yes")
			}
			if err := c.vehicle().Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Veículo removido")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion.")
	return cmd
}

func (c *ctl) newVehicleResetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the vehicle record to factory defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			if err := c.vehicle().Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Veículo restaurado ao padrão de fábrica")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset.")
	return cmd
}

func (c *ctl) newVehicleMaintenanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Manage the maintenance history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List maintenance records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.vehicle().MaintenanceHistory(cmd.Context())
			if err != nil {
				return err
			}

			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow("DATE", "MILEAGE", "DESCRIPTION", "COST")
			for _, rec := range records {
				cost := "-"
				if rec.Cost != nil {
					cost = fmt.Sprintf("R$ %.2f", *rec.Cost)
				}
				table.AddRow(rec.Date.Format("2006-01-02"), rec.Mileage, rec.Description, cost)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	})

	var (
		mileage     int
		description string
		cost        float64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a maintenance service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if description == "" {
				return fmt.Errorf("--description is required")
			}
			rec := &model.MaintenanceRecord{
				Date:        time.Now(),
				Mileage:     mileage,
				Description: description,
			}
			if cmd.Flags().Changed("cost") {
				rec.Cost = &cost
			}
			if err := c.vehicle().RecordMaintenance(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Manutenção registrada")
			return nil
		},
	}
	add.Flags().IntVar(&mileage, "mileage", 0, "Odometer reading at service time.")
	add.Flags().StringVar(&description, "description", "", "What was serviced.")
	add.Flags().Float64Var(&cost, "cost", 0, "Service cost in BRL.")
	cmd.AddCommand(add)

	return cmd
}
