// Package lifecycle tracks the gateway connectivity state machine. The
// current state feeds the readiness probe and every gateway status payload.
package lifecycle

import (
	"context"
	"errors"
	"sync"

	"github.com/looplab/fsm"

	fsmutil "github.com/autocore-io/autocore/internal/pkg/util/fsm"
	"github.com/autocore-io/autocore/pkg/log"
)

// Gateway connectivity states.
const (
	// StateOffline is the initial state before Start.
	StateOffline = "offline"
	// StateConnecting means neither the broker nor the backend is reachable.
	StateConnecting = "connecting"
	// StateOnline means both the broker and the backend are reachable.
	StateOnline = "online"
	// StateDegraded means exactly one of broker/backend is reachable.
	StateDegraded = "degraded"
)

// Connectivity events.
const (
	EventStart       = "start"
	EventBrokerUp    = "broker-up"
	EventBrokerDown  = "broker-down"
	EventBackendUp   = "backend-up"
	EventBackendDown = "backend-down"
)

// Machine is the gateway lifecycle FSM. Signals are idempotent: repeating
// an event the flags already reflect is a no-op, not an error.
type Machine struct {
	mu        sync.Mutex
	fsm       *fsm.FSM
	brokerUp  bool
	backendUp bool

	// onTransition, when set, is invoked after every completed transition
	// with the old and new state. Called with the machine lock held.
	onTransition func(from, to string)

	logger log.Logger
}

// NewMachine creates a Machine in the offline state.
func NewMachine() *Machine {
	m := &Machine{logger: log.WithName("lifecycle")}

	events := fsm.Events{
		{Name: EventStart, Src: []string{StateOffline}, Dst: StateConnecting},

		{Name: EventBrokerUp, Src: []string{StateConnecting}, Dst: StateDegraded},
		{Name: EventBrokerUp, Src: []string{StateDegraded}, Dst: StateOnline},
		{Name: EventBackendUp, Src: []string{StateConnecting}, Dst: StateDegraded},
		{Name: EventBackendUp, Src: []string{StateDegraded}, Dst: StateOnline},

		{Name: EventBrokerDown, Src: []string{StateOnline}, Dst: StateDegraded},
		{Name: EventBrokerDown, Src: []string{StateDegraded}, Dst: StateConnecting},
		{Name: EventBackendDown, Src: []string{StateOnline}, Dst: StateDegraded},
		{Name: EventBackendDown, Src: []string{StateDegraded}, Dst: StateConnecting},
	}

	callbacks := fsm.Callbacks{
		// Guards. The flags are updated before the event fires, so each
		// guard only has to check the OTHER link when deciding whether the
		// degraded transitions really apply.
		"before_" + EventBrokerUp:    fsmutil.WrapEvent(m.guardOtherLink(&m.backendUp)),
		"before_" + EventBackendUp:   fsmutil.WrapEvent(m.guardOtherLink(&m.brokerUp)),
		"before_" + EventBrokerDown:  fsmutil.WrapEvent(m.guardOtherLinkDown(&m.backendUp)),
		"before_" + EventBackendDown: fsmutil.WrapEvent(m.guardOtherLinkDown(&m.brokerUp)),

		"enter_state": func(_ context.Context, e *fsm.Event) {
			m.logger.Info("Lifecycle transition", "from", e.Src, "to", e.Dst, "event", e.Event)
			if m.onTransition != nil {
				m.onTransition(e.Src, e.Dst)
			}
		},
	}

	m.fsm = fsm.NewFSM(StateOffline, events, callbacks)
	return m
}

// OnTransition registers a callback invoked after every completed
// transition. Must be called before the machine receives signals.
func (m *Machine) OnTransition(fn func(from, to string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTransition = fn
}

// State returns the current lifecycle state.
func (m *Machine) State() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fsm.Current()
}

// Ready reports whether the gateway should pass its readiness probe.
// Degraded still serves: cached snapshots keep displays alive.
func (m *Machine) Ready() bool {
	s := m.State()
	return s == StateOnline || s == StateDegraded
}

// Start moves the machine out of offline.
func (m *Machine) Start(ctx context.Context) {
	m.signal(ctx, EventStart, func() {})
}

// BrokerUp signals that the MQTT broker connection is established.
func (m *Machine) BrokerUp(ctx context.Context) {
	m.signal(ctx, EventBrokerUp, func() { m.brokerUp = true })
}

// BrokerDown signals that the MQTT broker connection is lost.
func (m *Machine) BrokerDown(ctx context.Context) {
	m.signal(ctx, EventBrokerDown, func() { m.brokerUp = false })
}

// BackendUp signals a successful backend call.
func (m *Machine) BackendUp(ctx context.Context) {
	m.signal(ctx, EventBackendUp, func() { m.backendUp = true })
}

// BackendDown signals a failed backend call.
func (m *Machine) BackendDown(ctx context.Context) {
	m.signal(ctx, EventBackendDown, func() { m.backendUp = false })
}

func (m *Machine) signal(ctx context.Context, event string, setFlag func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	setFlag()
	if err := m.fsm.Event(ctx, event); err != nil && !benignTransitionError(err) {
		m.logger.Warn("Lifecycle event rejected", "event", event, "state", m.fsm.Current(), "err", err.Error())
	}
}

// guardOtherLink cancels an "up" transition into online when the other link
// is still down. connecting -> degraded is always valid.
func (m *Machine) guardOtherLink(otherUp *bool) func(ctx context.Context, e *fsm.Event) error {
	return func(_ context.Context, e *fsm.Event) error {
		if e.Dst == StateOnline && !*otherUp {
			e.Cancel(fsm.NoTransitionError{})
		}
		return nil
	}
}

// guardOtherLinkDown cancels a "down" transition into connecting while the
// other link is still up; the machine stays degraded instead.
func (m *Machine) guardOtherLinkDown(otherUp *bool) func(ctx context.Context, e *fsm.Event) error {
	return func(_ context.Context, e *fsm.Event) error {
		if e.Dst == StateConnecting && *otherUp {
			e.Cancel(fsm.NoTransitionError{})
		}
		return nil
	}
}

// benignTransitionError filters the fsm errors that just mean "nothing to
// do here": repeated signals and canceled guard transitions.
func benignTransitionError(err error) bool {
	var invalid fsm.InvalidEventError
	var noTransition fsm.NoTransitionError
	var canceled fsm.CanceledError
	return errors.As(err, &invalid) || errors.As(err, &noTransition) || errors.As(err, &canceled)
}
