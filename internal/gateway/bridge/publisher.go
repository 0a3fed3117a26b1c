// Package bridge publishes gateway payloads into the AutoCore MQTT
// namespace, enforcing the protocol envelope every payload carries.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core"
	"github.com/autocore-io/autocore/internal/pkg/metrics"
	"github.com/autocore-io/autocore/pkg/log"
	"github.com/autocore-io/autocore/pkg/mqtt"
	"github.com/autocore-io/autocore/pkg/mqtt/topic"
)

// ProtocolVersion is stamped into every outgoing payload. Firmware rejects
// payloads carrying a different major version.
const ProtocolVersion = "2.2.0"

// Publisher implements core.Publisher over a direct broker connection.
// Every payload is validated against the topic namespace and stamped with
// protocol_version and timestamp before it leaves the gateway. When the
// broker path fails, the payload is relayed through the fallback publisher
// instead of being dropped.
type Publisher struct {
	client   mqtt.Client
	topics   *topic.Builder
	fallback core.Publisher // optional backend relay
	clock    func() time.Time
	logger   log.Logger

	// heartbeatSeq is per-publisher, not global. Two publishers produce
	// independent sequences.
	heartbeatSeq atomic.Uint64
}

// NewPublisher creates a Publisher over the given MQTT client. fallback may
// be nil to disable the relay path.
func NewPublisher(client mqtt.Client, topics *topic.Builder, fallback core.Publisher) *Publisher {
	return &Publisher{
		client:   client,
		topics:   topics,
		fallback: fallback,
		clock:    time.Now,
		logger:   log.WithName("bridge"),
	}
}

// Publish validates the topic, stamps the payload and sends it at QoS 1.
// When the broker publish fails the payload is relayed through the fallback.
func (p *Publisher) Publish(ctx context.Context, t string, payload map[string]any) error {
	return p.publish(ctx, t, payload, true)
}

func (p *Publisher) publish(ctx context.Context, t string, payload map[string]any, allowRelay bool) error {
	kind, err := p.topics.Validate(t)
	if err != nil {
		return err
	}

	stamped := p.stamp(payload)
	data, err := json.Marshal(stamped)
	if err != nil {
		return fmt.Errorf("encode payload for %s: %w", t, err)
	}

	if err := p.client.Publish(ctx, t, 1, false, data); err != nil {
		if allowRelay && p.fallback != nil {
			if relayErr := p.fallback.Publish(ctx, t, stamped); relayErr == nil {
				p.logger.Warn("Broker publish failed, relayed through backend", "topic", t, "cause", err.Error())
				metrics.MQTTPublishTotal.WithLabelValues(string(kind), "relayed").Inc()
				return nil
			}
		}
		metrics.MQTTPublishTotal.WithLabelValues(string(kind), "failed").Inc()
		return fmt.Errorf("publish %s (%s): %w", t, kind, err)
	}

	metrics.MQTTPublishTotal.WithLabelValues(string(kind), "success").Inc()
	return nil
}

// SetRelay publishes a relay switch command for one channel.
func (p *Publisher) SetRelay(ctx context.Context, deviceUUID string, channel int, state bool, functionType string) error {
	payload := map[string]any{
		"channel": channel,
		"state":   state,
	}
	if functionType != "" {
		payload["function_type"] = functionType
	}
	return p.Publish(ctx, p.topics.RelaySet(deviceUUID), payload)
}

// Heartbeat publishes a momentary-channel keepalive. The sequence number
// increases monotonically and wraps at the uint64 boundary.
func (p *Publisher) Heartbeat(ctx context.Context, deviceUUID string, channel int) error {
	return p.Publish(ctx, p.topics.RelayHeartbeat(deviceUUID), map[string]any{
		"channel":  channel,
		"sequence": p.heartbeatSeq.Add(1),
	})
}

// GatewayStatus publishes the gateway lifecycle state and uptime. It never
// uses the relay: the status loop reads its result as the broker liveness
// signal, and a relayed success would mask a dead broker.
func (p *Publisher) GatewayStatus(ctx context.Context, state string, uptime time.Duration) error {
	return p.publish(ctx, p.topics.GatewayStatus(), map[string]any{
		"status":         state,
		"uptime_seconds": int64(uptime.Seconds()),
	}, false)
}

// Telemetry publishes one telemetry reading under its category.
func (p *Publisher) Telemetry(ctx context.Context, category string, values map[string]any) error {
	payload := make(map[string]any, len(values))
	for k, v := range values {
		payload[k] = v
	}
	return p.Publish(ctx, p.topics.Telemetry(category), payload)
}

// Announce publishes a discovery announcement for the gateway itself.
func (p *Publisher) Announce(ctx context.Context, deviceUUID, firmwareVersion string) error {
	return p.Publish(ctx, p.topics.DiscoveryAnnounce(), map[string]any{
		"uuid":             deviceUUID,
		"device_type":      "gateway",
		"firmware_version": firmwareVersion,
	})
}

// stamp fills protocol_version and timestamp when the caller left them out.
// Caller-provided values win; the input map is not modified.
func (p *Publisher) stamp(payload map[string]any) map[string]any {
	stamped := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		stamped[k] = v
	}
	if _, ok := stamped["protocol_version"]; !ok {
		stamped["protocol_version"] = ProtocolVersion
	}
	if _, ok := stamped["timestamp"]; !ok {
		stamped["timestamp"] = p.clock().UTC().Format(time.RFC3339)
	}
	return stamped
}
