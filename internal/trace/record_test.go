package trace

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNamedEventRoundTrip(t *testing.T) {
	tr := newTestTracer(t, 16)
	tr.Name(TagThreadName, 7, 42, "idle")
	tr.Control(ActionStop, 0)

	dec := NewDecoder(tr.buf[:tr.Size()])
	dec.Next()
	dec.Next()
	rec, ok := dec.Next()
	if !ok {
		t.Fatal("no record decoded")
	}

	// smallest multiple of 8 >= header + id + arg + "idle" + NUL
	wantLen := ((HeaderSize + 8 + 5) + Align - 1) / Align * Align
	if got := rec.Tag.Len(); got != wantLen {
		t.Fatalf("record length = %d, want %d", got, wantLen)
	}

	id, arg, name, ok := rec.Named()
	if !ok {
		t.Fatal("payload did not decode as naming record")
	}
	got := []interface{}{id, arg, name}
	want := []interface{}{uint32(7), uint32(42), "idle"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("naming record mismatch (-want +got):\n%s", diff)
	}
}

func TestNameTruncatesTo31(t *testing.T) {
	tr := newTestTracer(t, 16)
	long := strings.Repeat("x", 60)
	tr.Name(TagThreadName, 1, 2, long)
	tr.Control(ActionStop, 0)

	dec := NewDecoder(tr.buf[:tr.Size()])
	dec.Next()
	dec.Next()
	rec, ok := dec.Next()
	if !ok {
		t.Fatal("no record decoded")
	}
	_, _, name, ok := rec.Named()
	if !ok {
		t.Fatal("payload did not decode")
	}
	if name != long[:MaxNameLen] {
		t.Fatalf("name = %q (len %d), want %d-char prefix", name, len(name), MaxNameLen)
	}
}

func TestNameDroppedWhenGated(t *testing.T) {
	tr := newTestTracer(t, 16)
	tr.Control(ActionStart, GrpSched)
	before := tr.cursor.Load()
	tr.Name(TagThreadName, 1, 2, "nope") // meta group, gated out
	if got := tr.cursor.Load(); got != before {
		t.Fatal("gated naming record advanced the cursor")
	}
}

func TestEvent32RoundTrip(t *testing.T) {
	tr := newTestTracer(t, 16)
	tr.Event32(TagProbe, 1, 2, 3, 4)
	tr.Control(ActionStop, 0)

	dec := NewDecoder(tr.buf[:tr.Size()])
	dec.Next()
	dec.Next()
	rec, ok := dec.Next()
	if !ok {
		t.Fatal("no record decoded")
	}
	if rec.Tag.Len() != RecSize {
		t.Fatalf("record length = %d, want %d", rec.Tag.Len(), RecSize)
	}
	a, b, c, d, ok := rec.Args32()
	if !ok || a != 1 || b != 2 || c != 3 || d != 4 {
		t.Fatalf("args = (%d,%d,%d,%d,%v)", a, b, c, d, ok)
	}
	if rec.TID != 3 {
		t.Fatalf("tid = %d, want 3", rec.TID)
	}
	if rec.Timestamp == 0 {
		t.Fatal("timestamp not stamped")
	}
}

func TestEvent64RoundTrip(t *testing.T) {
	tr := newTestTracer(t, 16)
	tr.Event64(TagProbe, 1<<40, 2)
	tr.Control(ActionStop, 0)

	dec := NewDecoder(tr.buf[:tr.Size()])
	dec.Next()
	dec.Next()
	rec, ok := dec.Next()
	if !ok {
		t.Fatal("no record decoded")
	}
	a, b, ok := rec.Args64()
	if !ok || a != 1<<40 || b != 2 {
		t.Fatalf("args = (%d,%d,%v)", a, b, ok)
	}
}

func TestDecoderStopsAtUnwrittenTail(t *testing.T) {
	tr := newTestTracer(t, 16)
	tr.Event32(TagProbe, 9, 0, 0, 0)
	// decode the whole buffer, not just the valid size: the decoder must
	// stop at the zeroed tail rather than invent records
	dec := NewDecoder(tr.buf)
	count := 0
	for {
		if _, ok := dec.Next(); !ok {
			break
		}
		count++
	}
	if count != 3 { // 2 metadata + 1 event
		t.Fatalf("decoded %d records, want 3", count)
	}
}

func TestDecodeMetadataRejectsGarbage(t *testing.T) {
	if _, ok := DecodeMetadata(make([]byte, PrefixEnd)); ok {
		t.Fatal("zeroed prefix should not decode")
	}
	if _, ok := DecodeMetadata(nil); ok {
		t.Fatal("nil buffer should not decode")
	}
}
