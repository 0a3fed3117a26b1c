package preview

import (
	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

// DeviceClass selects which per-device layout overrides apply.
type DeviceClass string

const (
	ClassMobile       DeviceClass = "mobile"
	ClassDisplaySmall DeviceClass = "display_small"
	ClassDisplayLarge DeviceClass = "display_large"
	ClassWeb          DeviceClass = "web"
)

const (
	defaultSize    = "normal"
	defaultColumns = 2
)

// ShouldShowItem resolves item visibility for a device class. Precedence:
// per-class override, generic visible field, then visible. Inactive items
// never render.
func ShouldShowItem(item *model.ScreenItem, class DeviceClass) bool {
	if item == nil {
		return false
	}
	if item.IsActive != nil && !*item.IsActive {
		return false
	}

	var override *bool
	switch class {
	case ClassMobile:
		override = item.VisibleMobile
	case ClassDisplaySmall:
		override = item.VisibleDisplaySmall
	case ClassDisplayLarge:
		override = item.VisibleDisplayLarge
	case ClassWeb:
		override = item.VisibleWeb
	}

	if override != nil {
		return *override
	}
	if item.Visible != nil {
		return *item.Visible
	}
	return true
}

// ItemSize resolves the item's render size for a device class. Precedence:
// per-class override, generic size field, then "normal".
func ItemSize(item *model.ScreenItem, class DeviceClass) string {
	if item == nil {
		return defaultSize
	}

	var override string
	switch class {
	case ClassMobile:
		override = item.SizeMobile
	case ClassDisplaySmall:
		override = item.SizeDisplaySmall
	case ClassDisplayLarge:
		override = item.SizeDisplayLarge
	case ClassWeb:
		override = item.SizeWeb
	}

	if override != "" {
		return override
	}
	if item.Size != "" {
		return item.Size
	}
	return defaultSize
}

// ScreenColumns resolves the column count for a device class. Precedence:
// per-class override, generic columns field, then 2.
func ScreenColumns(s *model.Screen, class DeviceClass) int {
	if s == nil {
		return defaultColumns
	}

	var override *int
	switch class {
	case ClassMobile:
		override = s.ColumnsMobile
	case ClassDisplaySmall:
		override = s.ColumnsDisplaySmall
	case ClassDisplayLarge:
		override = s.ColumnsDisplayLarge
	case ClassWeb:
		override = s.ColumnsWeb
	}

	if override != nil {
		return *override
	}
	if s.Columns != nil {
		return *s.Columns
	}
	return defaultColumns
}

// Visible reports whether the adapted item renders on the given class.
func (i *Item) Visible(class DeviceClass) bool {
	if i.source != nil {
		return ShouldShowItem(i.source, class)
	}
	return i.IsActive
}

// Size reports the adapted item's render size on the given class.
func (i *Item) Size(class DeviceClass) string {
	if i.source != nil {
		return ItemSize(i.source, class)
	}
	return defaultSize
}

// Columns reports the adapted screen's column count on the given class.
func (s *Screen) Columns(class DeviceClass) int {
	if s.source != nil {
		return ScreenColumns(s.source, class)
	}
	return defaultColumns
}
