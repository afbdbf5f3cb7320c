package trace

import (
	"bytes"
	"errors"
	"testing"
)

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("bad destination") }

func TestReadIntoClipsToValidSize(t *testing.T) {
	tr := newTestTracer(t, 4)
	tr.Open(tagMinimal)
	tr.Control(ActionStop, 0)
	bound := tr.Size()

	var buf bytes.Buffer
	n, err := tr.ReadInto(&buf, 0, bound+1000)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if uint32(n) != bound || uint32(buf.Len()) != bound {
		t.Fatalf("copied %d bytes, want %d", n, bound)
	}
}

func TestReadIntoOffsetAtBound(t *testing.T) {
	tr := newTestTracer(t, 4)
	tr.Control(ActionStop, 0)
	var buf bytes.Buffer
	n, err := tr.ReadInto(&buf, tr.Size(), 10)
	if err != nil {
		t.Fatalf("read at bound should not fail: %v", err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Fatalf("copied %d bytes past the bound", n)
	}
}

func TestReadIntoPartialRange(t *testing.T) {
	tr := newTestTracer(t, 4)
	tr.Control(ActionStop, 0)
	var buf bytes.Buffer
	n, err := tr.ReadInto(&buf, 8, 16)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 16 {
		t.Fatalf("copied %d bytes, want 16", n)
	}
	if !bytes.Equal(buf.Bytes(), tr.buf[8:24]) {
		t.Fatal("copied bytes do not match buffer range")
	}
}

func TestReadIntoFailedCopy(t *testing.T) {
	tr := newTestTracer(t, 4)
	tr.Control(ActionStop, 0)
	if _, err := tr.ReadInto(failWriter{}, 0, 8); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("want ErrInvalidArgs, got %v", err)
	}
}

func TestReadIntoNilDestination(t *testing.T) {
	tr := newTestTracer(t, 4)
	if _, err := tr.ReadInto(nil, 0, 8); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("want ErrInvalidArgs, got %v", err)
	}
}

func TestSizeWhileLiveTracksCursor(t *testing.T) {
	tr := newTestTracer(t, 4)
	if got := tr.Size(); got != PrefixEnd {
		t.Fatalf("initial size = %d, want %d", got, PrefixEnd)
	}
	tr.Open(tagMinimal)
	if got := tr.Size(); got != PrefixEnd+HeaderSize {
		t.Fatalf("size = %d after one record", got)
	}
}

func TestSizeAfterStopUsesMarker(t *testing.T) {
	tr := newTestTracer(t, 4)
	tr.Open(tagMinimal)
	tr.Control(ActionStop, 0)
	marker := tr.marker.Load()

	// a racy post-stop reservation must not move the reported size
	if got := tr.Size(); got != marker {
		t.Fatalf("size = %d, want marker %d", got, marker)
	}
}

func TestReadOnInertTracer(t *testing.T) {
	tr, err := New(Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := tr.Size(); got != 0 {
		t.Fatalf("size = %d, want 0", got)
	}
	var buf bytes.Buffer
	n, err := tr.ReadInto(&buf, 0, 100)
	if err != nil || n != 0 {
		t.Fatalf("inert read = (%d, %v), want (0, nil)", n, err)
	}
	n, err = tr.ReadInto(&buf, 500, 100)
	if err != nil || n != 0 {
		t.Fatalf("inert read at offset = (%d, %v), want (0, nil)", n, err)
	}
}
