package vehicle

import (
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

// Maintenance policy constants. Fixed at this layer; the backend owns any
// per-vehicle tuning.
const (
	// maintenanceMileageInterval is the distance since the last service
	// after which maintenance is due.
	maintenanceMileageInterval = 10000

	// maintenanceMonths is the calendar-month age of the last service
	// after which maintenance is due.
	maintenanceMonths = 6
)

// NeedsMaintenance reports whether the vehicle is due for service: it is in
// maintenance status, has run maintenanceMileageInterval since the last
// service, or the last service is older than maintenanceMonths.
//
// The date check uses AddDate month arithmetic, which normalizes overflow
// (Mar 31 minus 6 months lands on Oct 1). That matches how the mobile and
// web clients compute it, so all surfaces agree on the due flag.
func NeedsMaintenance(v *model.Vehicle, now time.Time) bool {
	if v == nil {
		return false
	}

	if v.Status == "maintenance" {
		return true
	}

	if v.CurrentMileage != nil && v.LastMaintenanceMileage != nil {
		if *v.CurrentMileage-*v.LastMaintenanceMileage >= maintenanceMileageInterval {
			return true
		}
	}

	if v.LastMaintenanceDate != nil {
		threshold := now.AddDate(0, -maintenanceMonths, 0)
		if v.LastMaintenanceDate.Before(threshold) {
			return true
		}
	}

	return false
}
