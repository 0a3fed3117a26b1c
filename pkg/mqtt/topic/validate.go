package topic

import (
	"fmt"
	"regexp"
)

// Kind identifies which topic family a concrete topic belongs to.
type Kind string

const (
	KindRelaySet       Kind = "device_relay_set"
	KindRelayState     Kind = "device_relay_state"
	KindRelayHeartbeat Kind = "device_relay_heartbeat"
	KindTelemetry      Kind = "telemetry"
	KindGatewayStatus  Kind = "gateway_status"
	KindGatewayCommand Kind = "gateway_command"
	KindDiscovery      Kind = "discovery_announce"
	KindDeviceError    Kind = "device_error"
)

// patternTemplates describe the concrete (wildcard-free) topic families,
// relative to the namespace root. A payload sent to a topic outside these
// families is a programming error.
var patternTemplates = []struct {
	kind Kind
	expr string
}{
	{KindRelaySet, `^%s/devices/[^/+#]+/relays/set$`},
	{KindRelayState, `^%s/devices/[^/+#]+/relays/state$`},
	{KindRelayHeartbeat, `^%s/devices/[^/+#]+/relays/heartbeat$`},
	{KindTelemetry, `^%s/telemetry/[^/+#]+/data$`},
	{KindGatewayStatus, `^%s/gateway/status$`},
	{KindGatewayCommand, `^%s/gateway/commands/[^/+#]+$`},
	{KindDiscovery, `^%s/discovery/announce$`},
	{KindDeviceError, `^%s/errors/[^/+#]+/[^/+#]+$`},
}

type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

func compilePatterns(root string) []pattern {
	quoted := regexp.QuoteMeta(root)
	compiled := make([]pattern, 0, len(patternTemplates))
	for _, t := range patternTemplates {
		compiled = append(compiled, pattern{t.kind, regexp.MustCompile(fmt.Sprintf(t.expr, quoted))})
	}
	return compiled
}

var defaultPatterns = compilePatterns(DefaultRoot)

// Validate reports which topic family the given topic belongs to within the
// default namespace, or an error when it matches none.
func Validate(topic string) (Kind, error) {
	return match(defaultPatterns, DefaultRoot, topic)
}

// Validate reports which topic family the given topic belongs to within the
// builder's namespace, or an error when it matches none.
func (b *Builder) Validate(topic string) (Kind, error) {
	return match(b.patterns, b.root, topic)
}

func match(patterns []pattern, root, topic string) (Kind, error) {
	for _, p := range patterns {
		if p.re.MatchString(topic) {
			return p.kind, nil
		}
	}
	return "", fmt.Errorf("topic %q is outside the %s namespace", topic, root)
}
