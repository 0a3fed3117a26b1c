// Package normalize canonicalizes the heterogeneous type strings found in
// backend payloads and legacy firmware. Each domain has a fixed alias table;
// unknown values pass through lowercased so callers can still compare them.
package normalize

import "strings"

var deviceTypeAliases = map[string]string{
	"esp32_relay_board":   "esp32_relay",
	"esp32_display_board": "esp32_display",
	"hmi_display":         "esp32_display",
	"esp32_display_small": "sensor_board",
	"esp32_display_large": "gateway",
	"relay":               "esp32_relay",
	"display":             "esp32_display",
}

var itemTypeAliases = map[string]string{
	"text":  "display",
	"label": "display",
}

var actionTypeAliases = map[string]string{
	"relay_toggle": "relay_control",
	"relay_pulse":  "relay_control",
	"toggle":       "relay_control",
	"pulse":        "relay_control",
	"navigate":     "navigation",
}

var statusAliases = map[string]string{
	"active":       "online",
	"connected":    "online",
	"inactive":     "offline",
	"disconnected": "offline",
	"fault":        "error",
	"maint":        "maintenance",
}

// Canonical enumerations. Validators check membership after normalization.
var (
	canonicalDeviceTypes = map[string]bool{
		"esp32_relay":   true,
		"esp32_display": true,
		"sensor_board":  true,
		"gateway":       true,
	}
	canonicalItemTypes = map[string]bool{
		"button":  true,
		"switch":  true,
		"gauge":   true,
		"display": true,
	}
	canonicalActionTypes = map[string]bool{
		"relay_control": true,
		"command":       true,
		"macro":         true,
		"navigation":    true,
		"preset":        true,
	}
)

// DeviceType maps a raw device type to its canonical token. Besides
// lowercasing, hyphens become underscores before the alias lookup.
func DeviceType(raw string) string {
	if raw == "" {
		return ""
	}
	t := strings.ReplaceAll(strings.ToLower(raw), "-", "_")
	if canonical, ok := deviceTypeAliases[t]; ok {
		return canonical
	}
	return t
}

// ItemType maps a raw screen item type to its canonical token.
func ItemType(raw string) string {
	if raw == "" {
		return ""
	}
	t := strings.ToLower(raw)
	if canonical, ok := itemTypeAliases[t]; ok {
		return canonical
	}
	return t
}

// ActionType maps a raw action type to its canonical token. Empty input
// yields empty output.
func ActionType(raw string) string {
	if raw == "" {
		return ""
	}
	t := strings.ToLower(raw)
	if canonical, ok := actionTypeAliases[t]; ok {
		return canonical
	}
	return t
}

// Status maps a raw connectivity/lifecycle status to its canonical token.
func Status(raw string) string {
	if raw == "" {
		return ""
	}
	t := strings.ToLower(raw)
	if canonical, ok := statusAliases[t]; ok {
		return canonical
	}
	return t
}

// SameDeviceType reports whether two raw device types normalize to the same
// canonical token.
func SameDeviceType(a, b string) bool {
	return DeviceType(a) == DeviceType(b)
}

// SameItemType reports whether two raw item types normalize to the same
// canonical token.
func SameItemType(a, b string) bool {
	return ItemType(a) == ItemType(b)
}

// SameActionType reports whether two raw action types normalize to the same
// canonical token.
func SameActionType(a, b string) bool {
	return ActionType(a) == ActionType(b)
}

// SameStatus reports whether two raw statuses normalize to the same
// canonical token.
func SameStatus(a, b string) bool {
	return Status(a) == Status(b)
}

// ValidDeviceType reports whether raw normalizes into the canonical
// device type enumeration.
func ValidDeviceType(raw string) bool {
	return canonicalDeviceTypes[DeviceType(raw)]
}

// ValidItemType reports whether raw normalizes into the canonical item type
// enumeration.
func ValidItemType(raw string) bool {
	return canonicalItemTypes[ItemType(raw)]
}

// ValidActionType reports whether raw normalizes into the canonical action
// type enumeration.
func ValidActionType(raw string) bool {
	return canonicalActionTypes[ActionType(raw)]
}
