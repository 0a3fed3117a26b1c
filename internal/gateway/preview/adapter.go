// Package preview transforms raw config snapshots into render-ready models.
// Items backed by live telemetry show real values; everything else falls back
// to defaults or synthesized demo values so layouts stay previewable.
package preview

import (
	"math/rand"
	"sort"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
	"github.com/autocore-io/autocore/internal/gateway/normalize"
)

// Rand is the random source used for demo-value synthesis. Injected so tests
// and deterministic callers can control it.
type Rand interface {
	Intn(n int) int
}

// Adapter adapts ConfigSnapshots into preview Models. Safe for reuse; the
// zero value is not usable, construct with NewAdapter.
type Adapter struct {
	rng Rand
}

// NewAdapter creates an Adapter. A nil rng gets a time-seeded source.
func NewAdapter(rng Rand) *Adapter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Adapter{rng: rng}
}

// Model is the adapted, render-ready form of a ConfigSnapshot.
type Model struct {
	Screens     []Screen       `json:"screens"`
	Telemetry   map[string]any `json:"telemetry"`
	Theme       *model.Theme   `json:"theme,omitempty"`
	PreviewMode bool           `json:"preview_mode"`
}

// Screen is an adapted layout container with items in render order.
type Screen struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Items []Item `json:"items"`

	source *model.Screen
}

// Item is an adapted screen item with all defaults applied.
type Item struct {
	ID       int    `json:"id"`
	ItemType string `json:"item_type"`
	Name     string `json:"name"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	IsActive bool   `json:"is_active"`
	Position int    `json:"position"`

	Unit          string `json:"unit,omitempty"`
	DisplayFormat string `json:"display_format,omitempty"`
	ActionType    string `json:"action_type,omitempty"`

	// CurrentValue is only set for value-bearing items (display, gauge).
	CurrentValue   any    `json:"current_value,omitempty"`
	FormattedValue string `json:"formatted_value,omitempty"`

	// Relay channel description, set when the item references one.
	RelayBoardID   *int   `json:"relay_board_id,omitempty"`
	RelayChannelID *int   `json:"relay_channel_id,omitempty"`
	DeviceName     string `json:"device_name,omitempty"`
	ChannelName    string `json:"channel_name,omitempty"`
	RelayFunction  string `json:"relay_function,omitempty"`

	source *model.ScreenItem
}

// Adapt transforms a snapshot into a Model. A nil snapshot yields an empty
// preview model; this function never fails.
func (a *Adapter) Adapt(snapshot *model.ConfigSnapshot) *Model {
	if snapshot == nil {
		return &Model{
			Screens:     []Screen{},
			Telemetry:   map[string]any{},
			PreviewMode: true,
		}
	}

	telemetry := snapshot.Telemetry
	if telemetry == nil {
		telemetry = map[string]any{}
	}

	screens := make([]Screen, 0, len(snapshot.Screens))
	for i := range snapshot.Screens {
		screens = append(screens, a.adaptScreen(&snapshot.Screens[i], telemetry))
	}

	return &Model{
		Screens:     screens,
		Telemetry:   telemetry,
		Theme:       snapshot.Theme,
		PreviewMode: true,
	}
}

func (a *Adapter) adaptScreen(s *model.Screen, telemetry map[string]any) Screen {
	items := make([]Item, 0, len(s.Items))
	for i := range s.Items {
		items = append(items, a.adaptItem(&s.Items[i], telemetry))
	}

	// Position decides render order; ties keep backend insertion order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})

	return Screen{
		ID:     s.ID,
		Name:   s.Name,
		Title:  s.Title,
		Items:  items,
		source: s,
	}
}

func (a *Adapter) adaptItem(src *model.ScreenItem, telemetry map[string]any) Item {
	item := Item{
		ID:             src.ID,
		ItemType:       src.ItemType,
		Name:           src.Name,
		Label:          src.Label,
		Icon:           src.Icon,
		IsActive:       true,
		Unit:           src.Unit,
		DisplayFormat:  src.DisplayFormat,
		ActionType:     src.ActionType,
		RelayBoardID:   src.RelayBoardID,
		RelayChannelID: src.RelayChannelID,
		source:         src,
	}

	if src.IsActive != nil {
		item.IsActive = *src.IsActive
	}
	if src.Position != nil {
		item.Position = *src.Position
	}
	if item.Icon == "" {
		item.Icon = "circle"
	}
	if item.Label == "" {
		item.Label = src.Name
	}
	if item.Label == "" {
		item.Label = "Item"
	}

	if isValueBearing(src.ItemType) {
		item.CurrentValue = a.resolveValue(src, telemetry)
		item.FormattedValue = formatValue(item.CurrentValue, src.DisplayFormat, src.Unit)
	}

	if src.RelayBoardID != nil && src.RelayChannelID != nil {
		item.DeviceName, item.ChannelName, item.RelayFunction = relayDescription(src, item.Label)
	}

	return item
}

// isValueBearing reports whether this item type carries a current value.
// Normalization folds legacy "text"/"label" into display.
func isValueBearing(itemType string) bool {
	switch normalize.ItemType(itemType) {
	case "display", "gauge":
		return true
	}
	return false
}

// relayDescription derives the descriptive fields of a relay-bound item from
// the nested board/channel objects, with literal fallbacks.
func relayDescription(src *model.ScreenItem, label string) (device, channel, function string) {
	device = "Dispositivo"
	channel = label
	function = "toggle"

	if src.RelayBoard != nil && src.RelayBoard.Name != "" {
		device = src.RelayBoard.Name
	}
	if src.RelayChannel != nil {
		if src.RelayChannel.Name != "" {
			channel = src.RelayChannel.Name
		}
		if src.RelayChannel.FunctionType != "" {
			function = src.RelayChannel.FunctionType
		}
	}
	return device, channel, function
}
