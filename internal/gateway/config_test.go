package gateway

import (
	"encoding/json"
	"testing"

	"github.com/autocore-io/autocore/internal/gateway/bridge"
	"github.com/autocore-io/autocore/pkg/mqtt/topic"
)

func TestGatewayWill(t *testing.T) {
	willTopic, payload := gatewayWill(topic.NewBuilder("autocore"))

	if willTopic != "autocore/gateway/status" {
		t.Errorf("will topic = %q", willTopic)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("will payload is not JSON: %v", err)
	}
	if decoded["status"] != "offline" {
		t.Errorf("will status = %v", decoded["status"])
	}
	if decoded["protocol_version"] != bridge.ProtocolVersion {
		t.Errorf("will protocol_version = %v", decoded["protocol_version"])
	}
}
