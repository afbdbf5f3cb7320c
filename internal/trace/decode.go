package trace

import (
	"bytes"
	"encoding/binary"
)

// Record is a decoded trace record. Payload aliases the decoder's input.
type Record struct {
	Timestamp uint64
	Tag       Tag
	TID       uint32
	Payload   []byte
}

// Named unpacks a naming record payload: id, arg, NUL-terminated name.
func (r Record) Named() (id, arg uint32, name string, ok bool) {
	if len(r.Payload) < 9 {
		return 0, 0, "", false
	}
	id = binary.LittleEndian.Uint32(r.Payload[0:4])
	arg = binary.LittleEndian.Uint32(r.Payload[4:8])
	s := r.Payload[8:]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return id, arg, string(s), true
}

// Args32 unpacks the four uint32 arguments of a fixed 32-byte record.
func (r Record) Args32() (a, b, c, d uint32, ok bool) {
	if len(r.Payload) < 16 {
		return 0, 0, 0, 0, false
	}
	return binary.LittleEndian.Uint32(r.Payload[0:4]),
		binary.LittleEndian.Uint32(r.Payload[4:8]),
		binary.LittleEndian.Uint32(r.Payload[8:12]),
		binary.LittleEndian.Uint32(r.Payload[12:16]),
		true
}

// Args64 unpacks the two uint64 arguments of a fixed 32-byte record.
func (r Record) Args64() (a, b uint64, ok bool) {
	if len(r.Payload) < 16 {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint64(r.Payload[0:8]),
		binary.LittleEndian.Uint64(r.Payload[8:16]),
		true
}

// Metadata is the decoded two-slot prefix.
type Metadata struct {
	Version    uint32
	TicksPerMS uint64
}

// DecodeMetadata reads back the metadata prefix from a dumped buffer.
func DecodeMetadata(buf []byte) (Metadata, bool) {
	if len(buf) < PrefixEnd {
		return Metadata{}, false
	}
	if Tag(binary.LittleEndian.Uint32(buf[8:12])) != TagVersion {
		return Metadata{}, false
	}
	if Tag(binary.LittleEndian.Uint32(buf[RecSize+8:RecSize+12])) != TagTicksPerMS {
		return Metadata{}, false
	}
	lo := binary.LittleEndian.Uint32(buf[RecSize+HeaderSize:])
	hi := binary.LittleEndian.Uint32(buf[RecSize+HeaderSize+4:])
	return Metadata{
		Version:    binary.LittleEndian.Uint32(buf[HeaderSize:]),
		TicksPerMS: uint64(hi)<<32 | uint64(lo),
	}, true
}

// Decoder iterates the binary record stream of a dumped trace buffer,
// metadata prefix included. It stops cleanly at a truncated tail or at
// never-written (zero tag) bytes.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder returns a Decoder over a dumped buffer.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Offset returns the byte offset of the next record.
func (d *Decoder) Offset() int { return d.off }

// Next yields the next record, or ok=false at end of stream.
func (d *Decoder) Next() (Record, bool) {
	if d.off+HeaderSize > len(d.buf) {
		return Record{}, false
	}
	b := d.buf[d.off:]
	tag := Tag(binary.LittleEndian.Uint32(b[8:12]))
	n := tag.Len()
	if n < HeaderSize || d.off+n > len(d.buf) {
		return Record{}, false
	}
	rec := Record{
		Timestamp: binary.LittleEndian.Uint64(b[0:8]),
		Tag:       tag,
		TID:       binary.LittleEndian.Uint32(b[12:16]),
		Payload:   b[HeaderSize:n:n],
	}
	d.off += n
	return rec, true
}
