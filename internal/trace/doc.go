// Package trace implements the ktrace core: a fixed-size, append-only,
// in-memory trace buffer that many producer goroutines write timestamped
// records into without locks, plus the session controls and bounded readout
// used by the HTTP API.
//
// # Overview
//
// The buffer is allocated once and never grows. A single atomic cursor hands
// out disjoint byte ranges to concurrent writers; a record is written in
// place inside its reservation and becomes visible to readers once the
// session boundary covers it. Records are never reclaimed within a session:
// when the cursor would pass capacity the group mask latches to zero and new
// events are silently dropped until an explicit start. The first two 32-byte
// slots hold metadata (format version, tick rate) and survive rewinds.
//
// Record layout (little-endian, 8-byte aligned total length):
//
//	timestamp:8 | tag:4 | tid:4 | payload (length implied by the tag)
//
// The tag packs the event id (bits 31..16), group bits (15..4), and the
// record length in 8-byte units (3..0).
//
// API surface (internal)
//
//	t, _ := trace.New(trace.Options{BufferSize: 32 << 20})
//
//	// Producer side: open a reservation, or use the helpers
//	if r, ok := t.Open(tag); ok {
//		r.PutUint32(0, value)
//	}
//	t.Name(trace.TagThreadName, tid, pid, "idle")
//	t.Event32(probeTag, a, b, 0, 0)
//
//	// Control and readout
//	_ = t.Control(trace.ActionStop, 0)
//	n := t.Size()
//	_, _ = t.ReadInto(w, 0, n)
//
// # Concurrency
//
// Cursor, group mask, and stop marker are independent atomic words; there is
// no mutex anywhere on the producer or readout path. The group-mask check and
// the reservation are two separate atomic operations, so an event racing a
// concurrent stop may land just past the nominal session boundary. The stop
// marker is a best-effort bound, and the readout never exposes bytes past a
// value that could legitimately have been written.
package trace
