package vehicle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

// DisplayVehicle is the render-ready view of the vehicle record.
type DisplayVehicle struct {
	DisplayName       string `json:"display_name"`
	YearRange         string `json:"year_range"`
	StatusLabel       string `json:"status_label"`
	FuelTypeLabel     string `json:"fuel_type_label"`
	TransmissionLabel string `json:"transmission_label"`
	NeedsMaintenance  bool   `json:"needs_maintenance"`

	// Vehicle is the unmodified source record.
	Vehicle *model.Vehicle `json:"vehicle"`
}

// FormatForDisplay derives display fields from a vehicle record. A nil input
// yields nil. now feeds the maintenance-due heuristic.
func FormatForDisplay(v *model.Vehicle, now time.Time) *DisplayVehicle {
	if v == nil {
		return nil
	}

	return &DisplayVehicle{
		DisplayName:       displayName(v),
		YearRange:         yearRange(v),
		StatusLabel:       StatusLabel(v.Status),
		FuelTypeLabel:     FuelTypeLabel(v.FuelType),
		TransmissionLabel: TransmissionLabel(v.Transmission),
		NeedsMaintenance:  NeedsMaintenance(v, now),
		Vehicle:           v,
	}
}

// FormatForDisplay is the Service view of the package-level function, using
// the service clock.
func (s *Service) FormatForDisplay(v *model.Vehicle) *DisplayVehicle {
	return FormatForDisplay(v, s.now())
}

// displayName concatenates brand, model and parenthesized plate, trimming
// whatever is absent.
func displayName(v *model.Vehicle) string {
	parts := make([]string, 0, 3)
	if v.Brand != "" {
		parts = append(parts, v.Brand)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	if v.Plate != "" {
		parts = append(parts, fmt.Sprintf("(%s)", v.Plate))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// yearRange renders "{manufacture}/{model}", or whichever year is present.
func yearRange(v *model.Vehicle) string {
	switch {
	case v.YearManufacture != nil && v.YearModel != nil:
		return fmt.Sprintf("%d/%d", *v.YearManufacture, *v.YearModel)
	case v.YearManufacture != nil:
		return strconv.Itoa(*v.YearManufacture)
	case v.YearModel != nil:
		return strconv.Itoa(*v.YearModel)
	}
	return ""
}
