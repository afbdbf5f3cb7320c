package trace

import (
	"fmt"
	"io"
)

// Size is the readout size query: the number of valid buffer bytes. While a
// session is stopped this is the stop marker; while live it is the cursor
// clipped to capacity. An inert tracer reports zero.
func (t *Tracer) Size() uint32 {
	if !t.Enabled() {
		return 0
	}
	if m := t.marker.Load(); m != 0 {
		return m
	}
	n := t.cursor.Load()
	if n > int64(t.capacity) {
		n = int64(t.capacity)
	}
	return uint32(n)
}

// ReadInto copies the byte range [off, off+length) of the valid region to w,
// clipping the range to the current valid size. An offset at or past the
// valid size copies nothing and is not an error. A failed write to the
// destination surfaces as ErrInvalidArgs.
func (t *Tracer) ReadInto(w io.Writer, off, length uint32) (int, error) {
	if w == nil {
		return 0, ErrInvalidArgs
	}
	bound := t.Size()
	if off >= bound {
		return 0, nil
	}
	if length > bound-off {
		length = bound - off
	}
	n, err := w.Write(t.buf[off : off+length])
	if err != nil {
		return n, fmt.Errorf("%w: copy out: %v", ErrInvalidArgs, err)
	}
	return n, nil
}
