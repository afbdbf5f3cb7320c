package trace

// Threads is the thread identity collaborator. The tracer only consumes it:
// Current stamps each record header, and VisitLive lets a session start emit
// naming records for threads that predate it.
type Threads interface {
	Current() uint32
	VisitLive(emit func(id, arg uint32, name string))
}

// StaticThreads is a fixed-identity implementation for platforms or tests
// with no richer thread source. VisitLive reports nothing.
type StaticThreads struct {
	ID uint32
}

// Current implements Threads.
func (s StaticThreads) Current() uint32 { return s.ID }

// VisitLive implements Threads.
func (s StaticThreads) VisitLive(emit func(id, arg uint32, name string)) {}
