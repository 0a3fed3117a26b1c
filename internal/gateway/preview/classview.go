package preview

import (
	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

// ClassModel is a Model rendered for one device class: hidden items dropped,
// sizes and column counts resolved.
type ClassModel struct {
	Class       DeviceClass    `json:"class"`
	Screens     []ClassScreen  `json:"screens"`
	Telemetry   map[string]any `json:"telemetry"`
	Theme       *model.Theme   `json:"theme,omitempty"`
	PreviewMode bool           `json:"preview_mode"`
}

// ClassScreen is a screen with its column count resolved for the class.
type ClassScreen struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Title   string      `json:"title,omitempty"`
	Columns int         `json:"columns"`
	Items   []ClassItem `json:"items"`
}

// ClassItem is an adapted item with its render size resolved for the class.
type ClassItem struct {
	Item
	RenderSize string `json:"render_size"`
}

// ForClass renders the model for one device class. Screens keep their order;
// items invisible on the class are dropped.
func (m *Model) ForClass(class DeviceClass) *ClassModel {
	screens := make([]ClassScreen, 0, len(m.Screens))
	for i := range m.Screens {
		s := &m.Screens[i]

		items := make([]ClassItem, 0, len(s.Items))
		for j := range s.Items {
			item := &s.Items[j]
			if !item.Visible(class) {
				continue
			}
			items = append(items, ClassItem{
				Item:       *item,
				RenderSize: item.Size(class),
			})
		}

		screens = append(screens, ClassScreen{
			ID:      s.ID,
			Name:    s.Name,
			Title:   s.Title,
			Columns: s.Columns(class),
			Items:   items,
		})
	}

	return &ClassModel{
		Class:       class,
		Screens:     screens,
		Telemetry:   m.Telemetry,
		Theme:       m.Theme,
		PreviewMode: m.PreviewMode,
	}
}
