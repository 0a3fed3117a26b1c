package mqtt

import "testing"

func TestTopicsMatch(t *testing.T) {
	tests := []struct {
		filter string
		topic  string
		want   bool
	}{
		{"autocore/gateway/status", "autocore/gateway/status", true},
		{"autocore/devices/+/relays/state", "autocore/devices/esp-01/relays/state", true},
		{"autocore/devices/+/relays/state", "autocore/devices/esp-01/relays/set", false},
		{"autocore/devices/+/relays/state", "autocore/devices/a/b/relays/state", false},
		{"autocore/telemetry/#", "autocore/telemetry/can/data", true},
		{"autocore/telemetry/#", "autocore/gateway/status", false},
		{"autocore/+", "autocore/discovery/announce", false},
		{"#", "anything/at/all", true},
	}

	for _, tt := range tests {
		if got := topicsMatch(tt.filter, tt.topic); got != tt.want {
			t.Errorf("topicsMatch(%q, %q) = %v, want %v", tt.filter, tt.topic, got, tt.want)
		}
	}
}

func TestTopicFilterSharedPrefix(t *testing.T) {
	if got := topicFilter("$share/gateways/autocore/devices/+/relays/state"); got != "autocore/devices/+/relays/state" {
		t.Errorf("unexpected filter: %q", got)
	}
	if got := topicFilter("autocore/gateway/status"); got != "autocore/gateway/status" {
		t.Errorf("plain filter changed: %q", got)
	}
}
