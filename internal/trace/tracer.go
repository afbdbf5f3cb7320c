package trace

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

// ErrInvalidArgs reports an unsupported control action or a failed copy to
// the readout destination.
var ErrInvalidArgs = errors.New("invalid argument")

// AllocFunc obtains the raw trace buffer. The default allocates from the Go
// heap; tests inject failing allocators.
type AllocFunc func(size int) ([]byte, error)

// Options configures a Tracer.
type Options struct {
	// BufferSize is the total allocation in bytes. Zero leaves the tracer
	// permanently disabled and inert.
	BufferSize int
	// Groups enabled at initialization. Zero means all groups.
	Groups Group
	// Collaborators; nil fields get working defaults.
	Clock   Clock
	Threads Threads
	Alloc   AllocFunc
	Logger  logpkg.Logger
}

// Tracer is the process-wide trace session state. Create exactly one with
// New; every other operation hangs off it.
type Tracer struct {
	buf      []byte
	capacity uint32
	clock    Clock
	threads  Threads

	// cursor counts bytes reserved so far; it only moves forward within a
	// session and may overshoot capacity on overflow.
	cursor atomic.Int64
	// grpmask gates reservations; zero means tracing disabled.
	grpmask atomic.Uint32
	// marker holds the end of valid data once stopped, zero while live.
	marker atomic.Uint32
	// dropped counts reservations refused after the overflow latch tripped.
	dropped atomic.Uint64
}

// New is the boot-time initialization hook. A zero buffer size yields an
// inert tracer whose operations all no-op; an allocation failure is returned
// for the caller to log and absorb.
func New(opts Options) (*Tracer, error) {
	if opts.Clock == nil {
		opts.Clock = NewMonotonicClock()
	}
	if opts.Threads == nil {
		opts.Threads = defaultThreads()
	}
	if opts.Alloc == nil {
		opts.Alloc = func(size int) ([]byte, error) { return make([]byte, size), nil }
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}

	t := &Tracer{clock: opts.Clock, threads: opts.Threads}
	if opts.BufferSize == 0 {
		logger.Info("ktrace: disabled")
		return t, nil
	}
	if opts.BufferSize < PrefixEnd+SafetyMargin {
		return nil, fmt.Errorf("%w: buffer size %d below minimum %d", ErrInvalidArgs, opts.BufferSize, PrefixEnd+SafetyMargin)
	}
	buf, err := opts.Alloc(opts.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("alloc trace buffer: %w", err)
	}
	t.buf = buf
	// The last record written may overhang the nominal end, so the usable
	// capacity excludes the safety margin.
	t.capacity = uint32(opts.BufferSize - SafetyMargin)

	t.writeMetadata()
	t.cursor.Store(PrefixEnd)
	groups := opts.Groups
	if groups == 0 {
		groups = GrpAll
	}
	t.grpmask.Store(groups.Mask())
	t.reportLiveThreads()

	logger.Info("ktrace: buffer ready",
		logpkg.Int("size", opts.BufferSize),
		logpkg.Uint32("capacity", t.capacity),
		logpkg.Str("groups", groups.String()),
	)
	return t, nil
}

// Enabled reports whether a buffer was installed at initialization.
func (t *Tracer) Enabled() bool { return t.buf != nil }

// reserve atomically claims n bytes, returning the offset of the claimed
// range. Once a claim would pass capacity the group mask latches to zero and
// every reservation fails until an explicit start.
func (t *Tracer) reserve(n uint32) (uint32, bool) {
	end := t.cursor.Add(int64(n))
	if end > int64(t.capacity) {
		t.grpmask.Store(0)
		t.dropped.Add(1)
		return 0, false
	}
	return uint32(end - int64(n)), true
}

// Reservation is an exclusively owned byte range inside the trace buffer.
// The header is pre-filled; the producer writes the payload in place and
// releases the range implicitly by returning.
type Reservation struct {
	buf []byte
}

// PayloadLen returns the writable payload length.
func (r Reservation) PayloadLen() int { return len(r.buf) - HeaderSize }

// PutUint32 writes v at the given payload offset.
func (r Reservation) PutUint32(off int, v uint32) {
	binary.LittleEndian.PutUint32(r.buf[HeaderSize+off:], v)
}

// PutUint64 writes v at the given payload offset.
func (r Reservation) PutUint64(off int, v uint64) {
	binary.LittleEndian.PutUint64(r.buf[HeaderSize+off:], v)
}

// PutString writes a NUL-terminated string at the given payload offset,
// clipped to the remaining payload.
func (r Reservation) PutString(off int, s string) {
	p := r.buf[HeaderSize+off:]
	if len(p) == 0 {
		return
	}
	n := copy(p[:len(p)-1], s)
	p[n] = 0
}

// Open reserves a record slot for tag and pre-fills the header. It returns
// ok=false when the tag's group is not enabled, the length class is not a
// valid record size, or the buffer is full; callers must treat that as
// "silently skip this event".
func (t *Tracer) Open(tag Tag) (Reservation, bool) {
	if uint32(tag)&t.grpmask.Load() == 0 {
		return Reservation{}, false
	}
	n := tag.Len()
	if n < HeaderSize || n > MaxRecordSize {
		return Reservation{}, false
	}
	off, ok := t.reserve(uint32(n))
	if !ok {
		return Reservation{}, false
	}
	b := t.buf[off : int(off)+n]
	binary.LittleEndian.PutUint64(b[0:8], t.clock.Now())
	binary.LittleEndian.PutUint32(b[8:12], uint32(tag))
	binary.LittleEndian.PutUint32(b[12:16], t.threads.Current())
	return Reservation{buf: b}, true
}
