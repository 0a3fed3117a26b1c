package preview

import (
	"strings"
	"testing"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

// fixedRand always returns the same draw, making demo synthesis predictable.
type fixedRand struct{ n int }

func (f fixedRand) Intn(n int) int {
	if f.n >= n {
		return n - 1
	}
	return f.n
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestAdaptNilSnapshot(t *testing.T) {
	m := NewAdapter(nil).Adapt(nil)

	if m == nil {
		t.Fatal("Adapt(nil) returned nil")
	}
	if m.Screens == nil || len(m.Screens) != 0 {
		t.Errorf("screens = %v, want empty non-nil slice", m.Screens)
	}
	if m.Telemetry == nil || len(m.Telemetry) != 0 {
		t.Errorf("telemetry = %v, want empty non-nil map", m.Telemetry)
	}
	if !m.PreviewMode {
		t.Error("preview_mode should be true")
	}
}

func TestAdaptGaugeFromTelemetry(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			ID: 1,
			Items: []model.ScreenItem{{
				ItemType:    "gauge",
				Name:        "Velocidade",
				ValueSource: strPtr("telemetry.speed"),
				MinValue:    f64Ptr(0),
				MaxValue:    f64Ptr(200),
				Unit:        "km/h",
			}},
		}},
		Telemetry: map[string]any{"speed": float64(88)},
	}

	m := NewAdapter(fixedRand{0}).Adapt(snap)
	item := m.Screens[0].Items[0]

	if got, ok := item.CurrentValue.(float64); !ok || got != 88 {
		t.Errorf("currentValue = %v, want 88", item.CurrentValue)
	}
	if !strings.Contains(item.FormattedValue, "88") {
		t.Errorf("formattedValue %q should contain 88", item.FormattedValue)
	}
	if !strings.Contains(item.FormattedValue, "km/h") {
		t.Errorf("formattedValue %q should contain the unit", item.FormattedValue)
	}
}

func TestAdaptBareValueSourceKey(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			Items: []model.ScreenItem{{
				ItemType:    "display",
				Name:        "Coolant",
				ValueSource: strPtr("coolant_temp"),
			}},
		}},
		Telemetry: map[string]any{"coolant_temp": 92.3},
	}

	m := NewAdapter(fixedRand{0}).Adapt(snap)
	if got := m.Screens[0].Items[0].CurrentValue; got != 92.3 {
		t.Errorf("currentValue = %v, want 92.3", got)
	}
}

func TestAdaptNoSourceUsesDefaultThenZero(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			Items: []model.ScreenItem{
				{ItemType: "display", Name: "a", DefaultValue: 7.0},
				{ItemType: "display", Name: "b"},
			},
		}},
	}

	m := NewAdapter(fixedRand{0}).Adapt(snap)
	if got := m.Screens[0].Items[0].CurrentValue; got != 7.0 {
		t.Errorf("default_value not used: %v", got)
	}
	if got := m.Screens[0].Items[1].CurrentValue; got != 0 {
		t.Errorf("missing default should yield 0, got %v", got)
	}
}

func TestAdaptMissedLookupFallsBackToDefault(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			Items: []model.ScreenItem{{
				ItemType:     "gauge",
				Name:         "Oil",
				ValueSource:  strPtr("telemetry.oil_pressure"),
				DefaultValue: 4.2,
			}},
		}},
		Telemetry: map[string]any{},
	}

	m := NewAdapter(fixedRand{0}).Adapt(snap)
	if got := m.Screens[0].Items[0].CurrentValue; got != 4.2 {
		t.Errorf("currentValue = %v, want default 4.2", got)
	}
}

func TestDemoValueTable(t *testing.T) {
	tests := []struct {
		name string
		want any
	}{
		{"rpm", 3200},
		{"Motor RPM", 3200},
		{"speed", 45.5},
		{"Coolant Temp", 89.5},
		{"Fuel Gauge", 75},
		{"battery voltage", 12.8},
	}

	for _, tt := range tests {
		snap := &model.ConfigSnapshot{
			Screens: []model.Screen{{
				Items: []model.ScreenItem{{
					ItemType:    "gauge",
					Name:        tt.name,
					ValueSource: strPtr("telemetry.missing"),
				}},
			}},
		}
		m := NewAdapter(fixedRand{0}).Adapt(snap)
		if got := m.Screens[0].Items[0].CurrentValue; got != tt.want {
			t.Errorf("demo value for %q = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDemoValueRandomDraw(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			Items: []model.ScreenItem{{
				ItemType:    "gauge",
				Name:        "unnamed sensor",
				ValueSource: strPtr("telemetry.missing"),
				MinValue:    f64Ptr(10),
				MaxValue:    f64Ptr(20),
			}},
		}},
	}

	// fixedRand{3}.Intn(11) == 3, so the draw is 10+3.
	m := NewAdapter(fixedRand{3}).Adapt(snap)
	if got := m.Screens[0].Items[0].CurrentValue; got != 13 {
		t.Errorf("random demo value = %v, want 13", got)
	}

	// The inclusive draw covers the upper bound.
	m = NewAdapter(fixedRand{10}).Adapt(snap)
	if got := m.Screens[0].Items[0].CurrentValue; got != 20 {
		t.Errorf("upper bound draw = %v, want 20", got)
	}
}

func TestAdaptItemDefaults(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			Items: []model.ScreenItem{
				{ItemType: "button", Name: "Farol"},
				{ItemType: "button"},
				{ItemType: "switch", Label: "Pisca", Icon: "alert", IsActive: boolPtr(false), Position: intPtr(5)},
			},
		}},
	}

	m := NewAdapter(fixedRand{0}).Adapt(snap)
	items := m.Screens[0].Items

	if items[0].Icon != "circle" || items[0].Label != "Farol" || !items[0].IsActive || items[0].Position != 0 {
		t.Errorf("defaults wrong: %+v", items[0])
	}
	if items[1].Label != "Item" {
		t.Errorf("label fallback = %q, want Item", items[1].Label)
	}
	if items[2].IsActive || items[2].Position != 5 || items[2].Icon != "alert" {
		t.Errorf("explicit fields overridden: %+v", items[2])
	}
}

func TestAdaptSortsByPosition(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			Items: []model.ScreenItem{
				{ItemType: "button", Name: "c", Position: intPtr(2)},
				{ItemType: "button", Name: "a", Position: intPtr(0)},
				{ItemType: "button", Name: "b", Position: intPtr(1)},
			},
		}},
	}

	m := NewAdapter(fixedRand{0}).Adapt(snap)
	var names []string
	for _, it := range m.Screens[0].Items {
		names = append(names, it.Name)
	}
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("render order = %v", names)
	}
}

func TestRelayDescription(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			Items: []model.ScreenItem{
				{
					ItemType:       "switch",
					Name:           "Guincho",
					RelayBoardID:   intPtr(1),
					RelayChannelID: intPtr(3),
					RelayBoard:     &model.RelayBoard{ID: 1, Name: "Placa Dianteira"},
					RelayChannel:   &model.RelayChannel{ID: 3, Name: "Canal 3", FunctionType: "momentary"},
				},
				{
					ItemType:       "switch",
					Name:           "Farol Alto",
					RelayBoardID:   intPtr(1),
					RelayChannelID: intPtr(4),
				},
				{
					// Only one id present: not a relay reference.
					ItemType:     "switch",
					Name:         "Meia",
					RelayBoardID: intPtr(1),
				},
			},
		}},
	}

	m := NewAdapter(fixedRand{0}).Adapt(snap)
	items := m.Screens[0].Items

	if items[0].DeviceName != "Placa Dianteira" || items[0].ChannelName != "Canal 3" || items[0].RelayFunction != "momentary" {
		t.Errorf("nested relay fields not used: %+v", items[0])
	}
	if items[1].DeviceName != "Dispositivo" || items[1].ChannelName != "Farol Alto" || items[1].RelayFunction != "toggle" {
		t.Errorf("relay fallbacks wrong: %+v", items[1])
	}
	if items[2].DeviceName != "" {
		t.Errorf("partial relay reference should not derive fields: %+v", items[2])
	}
}
