package effects

// HandleState tracks a completion handle through its lifecycle.
type HandleState int

const (
	HandlePending HandleState = iota
	HandleResolved
	HandleCancelled
)

// Handle is a cancellable completion notification. Effect and timeline owners
// hand these out so callers can chain work onto "this finished" without the
// owner knowing what comes next.
//
// Handles are confined to the update loop goroutine, like everything else in
// the runtime, so no locking is needed.
type Handle struct {
	state HandleState
	fn    func()
}

// NewHandle returns a pending handle.
func NewHandle() *Handle {
	return &Handle{state: HandlePending}
}

// OnDone registers the completion callback, replacing any previous one.
// Registering on an already resolved handle invokes fn immediately;
// registering on a cancelled handle does nothing.
func (h *Handle) OnDone(fn func()) {
	if h.state == HandleResolved {
		if fn != nil {
			fn()
		}
		return
	}
	h.fn = fn
}

// Resolve marks the handle complete and runs the callback. Resolving a
// cancelled or already resolved handle is a no-op, so owners can resolve
// unconditionally during teardown races.
func (h *Handle) Resolve() {
	if h.state != HandlePending {
		return
	}
	h.state = HandleResolved
	if h.fn != nil {
		h.fn()
		h.fn = nil
	}
}

// Cancel prevents the callback from ever running. Cancelling a resolved
// handle is a no-op.
func (h *Handle) Cancel() {
	if h.state != HandlePending {
		return
	}
	h.state = HandleCancelled
	h.fn = nil
}

// Done reports whether the handle resolved.
func (h *Handle) Done() bool {
	return h.state == HandleResolved
}

// Cancelled reports whether the handle was cancelled.
func (h *Handle) Cancelled() bool {
	return h.state == HandleCancelled
}
