package model

// ConfigSnapshot is the full device/screen/theme/telemetry state returned by
// GET /api/config/full. It is owned by the backend; the gateway only reads it.
type ConfigSnapshot struct {
	Screens     []Screen       `json:"screens"`
	Telemetry   map[string]any `json:"telemetry"`
	Theme       *Theme         `json:"theme"`
	Devices     []Device       `json:"devices"`
	RelayBoards []RelayBoard   `json:"relay_boards"`
	Timestamp   string         `json:"timestamp"`
}

// Screen is a layout container. Item order on screen is decided by each
// item's Position, not by slice order.
type Screen struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	Title string       `json:"title,omitempty"`
	Items []ScreenItem `json:"items"`

	// Column counts per device class. Nil falls back to Columns, then 2.
	Columns             *int `json:"columns,omitempty"`
	ColumnsMobile       *int `json:"columns_mobile,omitempty"`
	ColumnsDisplaySmall *int `json:"columns_display_small,omitempty"`
	ColumnsDisplayLarge *int `json:"columns_display_large,omitempty"`
	ColumnsWeb          *int `json:"columns_web,omitempty"`
}

// ScreenItem is a single widget on a screen: a button, switch, gauge or
// display field.
type ScreenItem struct {
	ID       int    `json:"id"`
	ItemType string `json:"item_type"`
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Icon     string `json:"icon,omitempty"`

	// ValueSource names the telemetry key backing this item, optionally
	// prefixed with "telemetry.". Nil means static.
	ValueSource *string `json:"value_source,omitempty"`

	// DefaultValue is number-or-string shaped in the wire format, so it
	// stays loosely typed here. The preview adapter is the only reader.
	DefaultValue any `json:"default_value,omitempty"`

	MinValue      *float64 `json:"min_value,omitempty"`
	MaxValue      *float64 `json:"max_value,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	DisplayFormat string   `json:"display_format,omitempty"`

	ActionType     string `json:"action_type,omitempty"`
	RelayBoardID   *int   `json:"relay_board_id,omitempty"`
	RelayChannelID *int   `json:"relay_channel_id,omitempty"`

	// RelayBoard and RelayChannel are the denormalized objects the backend
	// nests when the item references a relay output.
	RelayBoard   *RelayBoard   `json:"relay_board,omitempty"`
	RelayChannel *RelayChannel `json:"relay_channel,omitempty"`

	// IsActive=false items are excluded from rendering. Nil means active.
	IsActive *bool `json:"is_active,omitempty"`
	Position *int  `json:"position,omitempty"`

	// Visibility and size per device class. Nil/empty falls back to the
	// generic field, then to visible/"normal".
	Visible             *bool  `json:"visible,omitempty"`
	VisibleMobile       *bool  `json:"visible_mobile,omitempty"`
	VisibleDisplaySmall *bool  `json:"visible_display_small,omitempty"`
	VisibleDisplayLarge *bool  `json:"visible_display_large,omitempty"`
	VisibleWeb          *bool  `json:"visible_web,omitempty"`
	Size                string `json:"size,omitempty"`
	SizeMobile          string `json:"size_mobile,omitempty"`
	SizeDisplaySmall    string `json:"size_display_small,omitempty"`
	SizeDisplayLarge    string `json:"size_display_large,omitempty"`
	SizeWeb             string `json:"size_web,omitempty"`
}

// Theme holds the color scheme applied to display devices.
type Theme struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	IsDark          bool   `json:"is_dark"`
}
