package parser

// Sink is a registered callback subscriber on a Queue. WantsPrevious
// replays every diagnostic already queued at the moment of subscription;
// WantsUpdates delivers each new diagnostic to the sink the moment it is
// pushed, independent of the batched delivery NotifyAllAndClear performs.
type Sink struct {
	Name          string
	WantsPrevious bool
	WantsUpdates  bool
	Func          func(name string, d Diagnostic)
}

// Queue is an append-only sequence of diagnostics plus its subscribed
// sinks, with flush-and-clear semantics.
type Queue struct {
	diagnostics []Diagnostic
	sinks       []Sink
}

// Push appends a diagnostic to the queue. Sinks subscribed with
// WantsUpdates are notified immediately; all sinks (regardless of that
// flag) still see it again when NotifyAllAndClear runs.
func (q *Queue) Push(d Diagnostic) {
	q.diagnostics = append(q.diagnostics, d)
	for _, s := range q.sinks {
		if s.WantsUpdates {
			s.Func(s.Name, d)
		}
	}
}

// Subscribe registers a sink. If it wants previously-queued diagnostics,
// they are replayed to it right away, in enqueue order.
func (q *Queue) Subscribe(s Sink) {
	if s.WantsPrevious {
		for _, d := range q.diagnostics {
			s.Func(s.Name, d)
		}
	}
	q.sinks = append(q.sinks, s)
}

// Count returns the number of currently-queued diagnostics.
func (q *Queue) Count() int { return len(q.diagnostics) }

// NotifyAllAndClear delivers every queued diagnostic, in order, to every
// subscribed sink exactly once, then empties the queue.
func (q *Queue) NotifyAllAndClear() {
	for _, d := range q.diagnostics {
		for _, s := range q.sinks {
			s.Func(s.Name, d)
		}
	}
	q.diagnostics = nil
}

// Bus is the notification subsystem: three independent queues carrying
// diagnostic, error, and warning severities. It is a dependency passed
// explicitly to each assembly stage rather than process-wide global state,
// keeping -e/warning-as-error promotion a property of the
// sink a caller wires up rather than of the queue itself.
type Bus struct {
	Diagnostics Queue
	Errors      Queue
	Warnings    Queue
}

// NewBus returns an empty notification bus.
func NewBus() *Bus { return &Bus{} }

// Error enqueues a diagnostic on the error queue.
func (b *Bus) Error(d Diagnostic) { b.Errors.Push(d) }

// Warning enqueues a diagnostic on the warning queue.
func (b *Bus) Warning(d Diagnostic) { b.Warnings.Push(d) }

// Diagnostic enqueues a diagnostic on the general diagnostic queue.
func (b *Bus) Diagnostic(d Diagnostic) { b.Diagnostics.Push(d) }
