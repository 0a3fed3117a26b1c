package topic

import (
	"fmt"
)

// Constants defining the standard topic segments of the AutoCore namespace.
// These act as the protocol contract between the gateway, the backend and
// the ESP32 boards. Changing them breaks deployed firmware.
const (
	// SuffixRelaySet carries relay switch commands (Gateway -> Device).
	// Structure: {root}/devices/{uuid}/relays/set
	SuffixRelaySet = "relays/set"

	// SuffixRelayState carries relay state reports (Device -> Gateway).
	// Structure: {root}/devices/{uuid}/relays/state
	SuffixRelayState = "relays/state"

	// SuffixRelayHeartbeat carries momentary-channel keepalives
	// (Gateway -> Device). Structure: {root}/devices/{uuid}/relays/heartbeat
	SuffixRelayHeartbeat = "relays/heartbeat"
)

// DefaultRoot is the production namespace prefix.
const DefaultRoot = "autocore"

// Builder constructs MQTT topic strings for the AutoCore namespace.
type Builder struct {
	// root is the base namespace for all topics (normally "autocore").
	root string

	// patterns validate concrete topics against this root.
	patterns []pattern
}

// NewBuilder creates a Builder with the given root namespace.
func NewBuilder(root string) *Builder {
	return &Builder{root: root, patterns: compilePatterns(root)}
}

// RelaySet returns the command topic of one device's relay outputs.
// Direction: Gateway -> Device
func (b *Builder) RelaySet(deviceUUID string) string {
	return b.device(deviceUUID, SuffixRelaySet)
}

// RelayState returns the state-report topic of one device's relay outputs.
// Direction: Device -> Gateway
func (b *Builder) RelayState(deviceUUID string) string {
	return b.device(deviceUUID, SuffixRelayState)
}

// RelayStateWildcard returns the filter matching relay state from ALL devices.
// Result: {root}/devices/+/relays/state
func (b *Builder) RelayStateWildcard() string {
	return b.device("+", SuffixRelayState)
}

// RelayHeartbeat returns the momentary-channel keepalive topic.
// Direction: Gateway -> Device
func (b *Builder) RelayHeartbeat(deviceUUID string) string {
	return b.device(deviceUUID, SuffixRelayHeartbeat)
}

// Telemetry returns the topic for one telemetry category.
// Direction: Device -> everyone
func (b *Builder) Telemetry(category string) string {
	return fmt.Sprintf("%s/telemetry/%s/data", b.root, category)
}

// TelemetryWildcard returns the filter matching every telemetry category.
// Result: {root}/telemetry/+/data
func (b *Builder) TelemetryWildcard() string {
	return b.Telemetry("+")
}

// GatewayStatus returns the topic carrying gateway status/heartbeat payloads.
// Direction: Gateway -> Backend
func (b *Builder) GatewayStatus() string {
	return fmt.Sprintf("%s/gateway/status", b.root)
}

// GatewayCommand returns the topic for one named gateway command.
// Direction: Backend -> Gateway
func (b *Builder) GatewayCommand(command string) string {
	return fmt.Sprintf("%s/gateway/commands/%s", b.root, command)
}

// GatewayCommandWildcard returns the filter matching every gateway command.
// Result: {root}/gateway/commands/+
func (b *Builder) GatewayCommandWildcard() string {
	return b.GatewayCommand("+")
}

// DiscoveryAnnounce returns the shared topic new devices announce on.
func (b *Builder) DiscoveryAnnounce() string {
	return fmt.Sprintf("%s/discovery/announce", b.root)
}

// DeviceError returns the topic for one device error code.
// Direction: Device -> Backend
func (b *Builder) DeviceError(deviceUUID, code string) string {
	return fmt.Sprintf("%s/errors/%s/%s", b.root, deviceUUID, code)
}

// DeviceErrorWildcard returns the filter matching every device error.
// Result: {root}/errors/+/+
func (b *Builder) DeviceErrorWildcard() string {
	return b.DeviceError("+", "+")
}

func (b *Builder) device(uuid, suffix string) string {
	return fmt.Sprintf("%s/devices/%s/%s", b.root, uuid, suffix)
}
