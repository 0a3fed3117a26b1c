package preview

import (
	"strings"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

// telemetryPrefix marks value sources that explicitly name the telemetry map.
// Bare sources are treated as telemetry keys as well; the prefix only exists
// because older backends emitted it.
const telemetryPrefix = "telemetry."

// demoValues maps item-name fragments to representative demo values, used
// when neither telemetry nor a default covers the item. Matching is a
// case-insensitive substring search in declaration order.
var demoValues = []struct {
	fragment string
	value    any
}{
	{"speed", 45.5},
	{"rpm", 3200},
	{"temp", 89.5},
	{"fuel", 75},
	{"battery", 12.8},
	{"pressure", 32},
	{"level", 60},
	{"odometer", 45230},
}

// resolveValue computes the current value of a display/gauge item:
// telemetry lookup first, then the item default, then demo synthesis.
func (a *Adapter) resolveValue(item *model.ScreenItem, telemetry map[string]any) any {
	if item.ValueSource == nil || *item.ValueSource == "" {
		if item.DefaultValue != nil {
			return item.DefaultValue
		}
		return 0
	}

	key := strings.TrimPrefix(*item.ValueSource, telemetryPrefix)
	if v, ok := telemetry[key]; ok && v != nil {
		return v
	}

	if item.DefaultValue != nil {
		return item.DefaultValue
	}

	return a.demoValue(item)
}

// demoValue synthesizes a plausible value for previews: the fixed name table
// first, otherwise an inclusive integer draw from [min, max].
func (a *Adapter) demoValue(item *model.ScreenItem) any {
	name := strings.ToLower(item.Name)
	for _, dv := range demoValues {
		if strings.Contains(name, dv.fragment) {
			return dv.value
		}
	}

	lo, hi := 0, 100
	if item.MinValue != nil {
		lo = int(*item.MinValue)
	}
	if item.MaxValue != nil {
		hi = int(*item.MaxValue)
	}
	if hi <= lo {
		return lo
	}
	return lo + a.rng.Intn(hi-lo+1)
}
