package vehicle

// Fixed user-facing label tables. Unknown values pass through unchanged so
// new backend enum values never render as blanks.

var statusLabels = map[string]string{
	"active":      "Ativo",
	"maintenance": "Em Manutenção",
	"inactive":    "Inativo",
	"sold":        "Vendido",
	"accident":    "Acidentado",
}

var fuelTypeLabels = map[string]string{
	"flex":     "Flex",
	"gasoline": "Gasolina",
	"ethanol":  "Etanol",
	"diesel":   "Diesel",
	"electric": "Elétrico",
	"hybrid":   "Híbrido",
	"gnv":      "GNV",
}

var transmissionLabels = map[string]string{
	"manual":    "Manual",
	"automatic": "Automático",
	"cvt":       "CVT",
	"automated": "Automatizado",
}

// ValidStatus reports whether status is one of the known vehicle statuses.
func ValidStatus(status string) bool {
	_, ok := statusLabels[status]
	return ok
}

// StatusLabel resolves the display label of a vehicle status. Absent input
// yields "Desconhecido".
func StatusLabel(status string) string {
	if status == "" {
		return "Desconhecido"
	}
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// FuelTypeLabel resolves the display label of a fuel type. Absent input
// yields "".
func FuelTypeLabel(fuelType string) string {
	if label, ok := fuelTypeLabels[fuelType]; ok {
		return label
	}
	return fuelType
}

// TransmissionLabel resolves the display label of a transmission type.
// Absent input yields "".
func TransmissionLabel(transmission string) string {
	if label, ok := transmissionLabels[transmission]; ok {
		return label
	}
	return transmission
}
