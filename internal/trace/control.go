package trace

// Action is a session control request.
type Action uint32

const (
	ActionStart Action = iota + 1
	ActionStop
	ActionRewind
)

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionRewind:
		return "rewind"
	default:
		return "unknown"
	}
}

// State describes the session state machine.
type State int

const (
	StateDisabled State = iota
	StateLive
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateStopped:
		return "stopped"
	default:
		return "disabled"
	}
}

// Control applies a session action. Unsupported actions fail with
// ErrInvalidArgs and have no side effects. On an inert tracer every known
// action succeeds as a no-op.
func (t *Tracer) Control(action Action, groups Group) error {
	switch action {
	case ActionStart, ActionStop, ActionRewind:
	default:
		return ErrInvalidArgs
	}
	if !t.Enabled() {
		return nil
	}
	switch action {
	case ActionStart:
		if groups == 0 {
			groups = GrpAll
		}
		t.marker.Store(0)
		t.grpmask.Store(groups.Mask())
		// Re-emit naming records so a reader that starts observing
		// mid-session still learns about pre-existing threads.
		t.reportLiveThreads()
	case ActionStop:
		t.grpmask.Store(0)
		// The cursor can overshoot capacity on overflow; clip so the
		// marker is always a legitimately written bound.
		n := t.cursor.Load()
		if n > int64(t.capacity) {
			n = int64(t.capacity)
		}
		t.marker.Store(uint32(n))
	case ActionRewind:
		// Roll back to just after the metadata prefix. Mask and marker
		// are left alone.
		t.cursor.Store(PrefixEnd)
	}
	return nil
}

// State derives the session state from the atomic cells.
func (t *Tracer) State() State {
	if t.grpmask.Load() != 0 {
		return StateLive
	}
	if t.marker.Load() != 0 {
		return StateStopped
	}
	return StateDisabled
}

// Snapshot is a point-in-time view of the session, used by the status
// endpoint and the metrics collector.
type Snapshot struct {
	State      State  `json:"state"`
	BufferSize int    `json:"bufferSize"`
	Capacity   uint32 `json:"capacity"`
	Cursor     int64  `json:"cursor"`
	Marker     uint32 `json:"marker"`
	GroupMask  uint32 `json:"grpmask"`
	Dropped    uint64 `json:"dropped"`
}

// Snapshot reads the session state. The fields are sampled independently, so
// a concurrent writer may move the cursor between reads.
func (t *Tracer) Snapshot() Snapshot {
	return Snapshot{
		State:      t.State(),
		BufferSize: len(t.buf),
		Capacity:   t.capacity,
		Cursor:     t.cursor.Load(),
		Marker:     t.marker.Load(),
		GroupMask:  t.grpmask.Load(),
		Dropped:    t.dropped.Load(),
	}
}
