package trace

import "encoding/binary"

// writeMetadata fills the two reserved slots at the head of the buffer:
// format version, then the timing calibration constant. Called once before
// the cursor goes live, so plain stores suffice.
func (t *Tracer) writeMetadata() {
	binary.LittleEndian.PutUint32(t.buf[8:12], uint32(TagVersion))
	binary.LittleEndian.PutUint32(t.buf[HeaderSize:], FormatVersion)

	ticks := t.clock.TicksPerMS()
	binary.LittleEndian.PutUint32(t.buf[RecSize+8:], uint32(TagTicksPerMS))
	binary.LittleEndian.PutUint32(t.buf[RecSize+HeaderSize:], uint32(ticks))
	binary.LittleEndian.PutUint32(t.buf[RecSize+HeaderSize+4:], uint32(ticks>>32))
}

// Name emits a naming record: id, arg, and a NUL-terminated name truncated
// to MaxNameLen. The record size is folded into the tag's length class.
// Failure to reserve drops the event silently.
func (t *Tracer) Name(tag Tag, id, arg uint32, name string) {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	r, ok := t.Open(tag.WithLen(HeaderSize + 8 + len(name) + 1))
	if !ok {
		return
	}
	r.PutUint32(0, id)
	r.PutUint32(4, arg)
	r.PutString(8, name)
}

// Event32 emits a fixed 32-byte record carrying four uint32 arguments.
func (t *Tracer) Event32(tag Tag, a, b, c, d uint32) {
	r, ok := t.Open(tag.WithLen(RecSize))
	if !ok {
		return
	}
	r.PutUint32(0, a)
	r.PutUint32(4, b)
	r.PutUint32(8, c)
	r.PutUint32(12, d)
}

// Event64 emits a fixed 32-byte record carrying two uint64 arguments.
func (t *Tracer) Event64(tag Tag, a, b uint64) {
	r, ok := t.Open(tag.WithLen(RecSize))
	if !ok {
		return
	}
	r.PutUint64(0, a)
	r.PutUint64(8, b)
}

// reportLiveThreads asks the thread collaborator to emit a naming record for
// every currently live thread.
func (t *Tracer) reportLiveThreads() {
	t.threads.VisitLive(func(id, arg uint32, name string) {
		t.Name(TagThreadName, id, arg, name)
	})
}
