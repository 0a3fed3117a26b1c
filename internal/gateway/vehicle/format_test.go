package vehicle

import (
	"testing"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

func intPtr(i int) *int { return &i }

func timePtr(t time.Time) *time.Time { return &t }

func TestFormatForDisplayNil(t *testing.T) {
	if got := FormatForDisplay(nil, time.Now()); got != nil {
		t.Errorf("nil vehicle should format to nil, got %+v", got)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		v    model.Vehicle
		want string
	}{
		{"full", model.Vehicle{Brand: "Ford", Model: "Ranger", Plate: "ABC1234"}, "Ford Ranger (ABC1234)"},
		{"no plate", model.Vehicle{Brand: "Ford", Model: "Ranger"}, "Ford Ranger"},
		{"plate only", model.Vehicle{Plate: "ABC1234"}, "(ABC1234)"},
		{"brand only", model.Vehicle{Brand: "Ford"}, "Ford"},
		{"empty", model.Vehicle{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dv := FormatForDisplay(&tt.v, time.Now())
			if dv.DisplayName != tt.want {
				t.Errorf("displayName = %q, want %q", dv.DisplayName, tt.want)
			}
		})
	}
}

func TestYearRange(t *testing.T) {
	tests := []struct {
		name string
		v    model.Vehicle
		want string
	}{
		{"both", model.Vehicle{YearManufacture: intPtr(2020), YearModel: intPtr(2021)}, "2020/2021"},
		{"manufacture only", model.Vehicle{YearManufacture: intPtr(2020)}, "2020"},
		{"model only", model.Vehicle{YearModel: intPtr(2021)}, "2021"},
		{"neither", model.Vehicle{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dv := FormatForDisplay(&tt.v, time.Now())
			if dv.YearRange != tt.want {
				t.Errorf("yearRange = %q, want %q", dv.YearRange, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	dv := FormatForDisplay(&model.Vehicle{
		Status:       "maintenance",
		FuelType:     "flex",
		Transmission: "automatic",
	}, time.Now())

	if dv.StatusLabel != "Em Manutenção" {
		t.Errorf("status label = %q", dv.StatusLabel)
	}
	if dv.FuelTypeLabel != "Flex" {
		t.Errorf("fuel label = %q", dv.FuelTypeLabel)
	}
	if dv.TransmissionLabel != "Automático" {
		t.Errorf("transmission label = %q", dv.TransmissionLabel)
	}
}

func TestLabelFallbacks(t *testing.T) {
	dv := FormatForDisplay(&model.Vehicle{}, time.Now())
	if dv.StatusLabel != "Desconhecido" {
		t.Errorf("absent status label = %q, want Desconhecido", dv.StatusLabel)
	}
	if dv.FuelTypeLabel != "" || dv.TransmissionLabel != "" {
		t.Errorf("absent fuel/transmission should be empty: %q %q", dv.FuelTypeLabel, dv.TransmissionLabel)
	}

	dv = FormatForDisplay(&model.Vehicle{Status: "scrapyard", FuelType: "kerosene"}, time.Now())
	if dv.StatusLabel != "scrapyard" || dv.FuelTypeLabel != "kerosene" {
		t.Errorf("unknown values should pass through: %q %q", dv.StatusLabel, dv.FuelTypeLabel)
	}
}

func TestNeedsMaintenance(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		v    *model.Vehicle
		want bool
	}{
		{"nil vehicle", nil, false},
		{"empty record", &model.Vehicle{}, false},
		{"maintenance status", &model.Vehicle{Status: "maintenance"}, true},
		{
			"mileage interval exceeded",
			&model.Vehicle{CurrentMileage: intPtr(15000), LastMaintenanceMileage: intPtr(4000)},
			true,
		},
		{
			"mileage interval exact",
			&model.Vehicle{CurrentMileage: intPtr(14000), LastMaintenanceMileage: intPtr(4000)},
			true,
		},
		{
			"mileage interval not reached",
			&model.Vehicle{CurrentMileage: intPtr(13999), LastMaintenanceMileage: intPtr(4000)},
			false,
		},
		{
			"mileage missing one side",
			&model.Vehicle{CurrentMileage: intPtr(500000)},
			false,
		},
		{
			"service eight months old",
			&model.Vehicle{LastMaintenanceDate: timePtr(now.AddDate(0, -8, 0))},
			true,
		},
		{
			"service five months old",
			&model.Vehicle{LastMaintenanceDate: timePtr(now.AddDate(0, -5, 0))},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsMaintenance(tt.v, now); got != tt.want {
				t.Errorf("NeedsMaintenance = %v, want %v", got, tt.want)
			}
		})
	}
}
