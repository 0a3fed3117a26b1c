package model

import "time"

// Device is an ESP32 board known to the backend.
type Device struct {
	ID              int        `json:"id"`
	UUID            string     `json:"uuid"`
	Name            string     `json:"name"`
	DeviceType      string     `json:"device_type"`
	Status          string     `json:"status"`
	IPAddress       string     `json:"ip_address,omitempty"`
	MACAddress      string     `json:"mac_address,omitempty"`
	FirmwareVersion string     `json:"firmware_version,omitempty"`
	LastSeen        *time.Time `json:"last_seen,omitempty"`
}

// RelayBoard is a multi-channel switched-output board.
type RelayBoard struct {
	ID         int            `json:"id"`
	DeviceID   *int           `json:"device_id,omitempty"`
	DeviceUUID string         `json:"device_uuid,omitempty"`
	Name       string         `json:"name"`
	Channels   []RelayChannel `json:"channels,omitempty"`
}

// RelayChannel is one addressable output on a relay board.
type RelayChannel struct {
	ID            int    `json:"id"`
	BoardID       int    `json:"board_id"`
	ChannelNumber int    `json:"channel_number"`
	Name          string `json:"name"`

	// FunctionType is "toggle", "momentary" or "pulse".
	FunctionType string `json:"function_type,omitempty"`
}

// Macro is a named sequence of relay/command actions triggered as one unit.
type Macro struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	IsActive    bool          `json:"is_active"`
	Actions     []MacroAction `json:"actions,omitempty"`
}

// MacroAction is one step of a macro.
type MacroAction struct {
	ActionType     string `json:"action_type"`
	RelayBoardID   *int   `json:"relay_board_id,omitempty"`
	RelayChannelID *int   `json:"relay_channel_id,omitempty"`
	Payload        string `json:"payload,omitempty"`
	DelayMs        int    `json:"delay_ms,omitempty"`
}
