package trace

import (
	"sort"
	"strings"
)

// Record geometry. Every on-buffer record length is a multiple of Align so
// headers never straddle misaligned boundaries.
const (
	AlignShift = 3
	Align      = 1 << AlignShift

	// HeaderSize is the fixed record header: timestamp:8 | tag:4 | tid:4.
	HeaderSize = 16

	// RecSize is the fixed 32-byte record used for metadata and small
	// events: header plus four uint32 arguments.
	RecSize = 32

	// PrefixEnd is the offset just past the two reserved metadata slots.
	PrefixEnd = 2 * RecSize

	// MaxRecordSize follows from the 4-bit length class.
	MaxRecordSize = int(lenMask) << AlignShift

	// SafetyMargin keeps a record that straddles the nominal end of the
	// buffer inside the allocation. Must be >= MaxRecordSize.
	SafetyMargin = 256

	// MaxNameLen bounds names carried by naming records.
	MaxNameLen = 31

	// FormatVersion is written into the first metadata slot.
	FormatVersion uint32 = 1
)

const (
	lenMask    = 0xF
	groupShift = 4
	groupBits  = 12
	eventShift = 16
)

// Group selects an event category. The stored group mask is the bitwise OR
// of the enabled groups, pre-shifted into tag position (see Group.Mask).
type Group uint32

const (
	GrpMeta Group = 1 << iota
	GrpLifecycle
	GrpSched
	GrpTasks
	GrpIPC
	GrpIRQ
	GrpProbe
)

// GrpAll enables every group, including ones with no name yet.
const GrpAll Group = 1<<groupBits - 1

// Mask returns the group bits shifted into tag position, so gating is a
// single AND against a record's tag.
func (g Group) Mask() uint32 { return uint32(g&GrpAll) << groupShift }

// MaskGroups recovers the group selection from a stored mask.
func MaskGroups(mask uint32) Group { return Group(mask>>groupShift) & GrpAll }

var groupNames = map[string]Group{
	"meta":      GrpMeta,
	"lifecycle": GrpLifecycle,
	"sched":     GrpSched,
	"tasks":     GrpTasks,
	"ipc":       GrpIPC,
	"irq":       GrpIRQ,
	"probe":     GrpProbe,
	"all":       GrpAll,
}

// GroupByName resolves a CLI-facing group name.
func GroupByName(name string) (Group, bool) {
	g, ok := groupNames[strings.ToLower(strings.TrimSpace(name))]
	return g, ok
}

// GroupNames lists the known group names, sorted.
func GroupNames() []string {
	names := make([]string, 0, len(groupNames))
	for name := range groupNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String names the set groups, comma separated.
func (g Group) String() string {
	if g == GrpAll {
		return "all"
	}
	var parts []string
	for _, name := range GroupNames() {
		bit := groupNames[name]
		if bit != GrpAll && g&bit != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// Tag identifies a record: event id, group bits, and length class.
type Tag uint32

// NewTag builds a tag for a record of the given on-buffer size. Size is
// rounded up to the alignment unit.
func NewTag(event uint16, group Group, size int) Tag {
	return Tag(uint32(event)<<eventShift|group.Mask()) | Tag(lenClass(size))
}

func lenClass(size int) uint32 {
	return uint32((size+Align-1)>>AlignShift) & lenMask
}

// WithLen returns the tag with its length class replaced for a record of the
// given size.
func (t Tag) WithLen(size int) Tag {
	return t&^lenMask | Tag(lenClass(size))
}

// Len returns the on-buffer record length encoded in the tag.
func (t Tag) Len() int { return int(t&lenMask) << AlignShift }

// Event returns the event id.
func (t Tag) Event() uint16 { return uint16(t >> eventShift) }

// Group returns the group bits.
func (t Tag) Group() Group { return Group(uint32(t)>>groupShift) & GrpAll }

// Standard tags.
var (
	TagVersion    = NewTag(0x001, GrpMeta, RecSize)
	TagTicksPerMS = NewTag(0x002, GrpMeta, RecSize)
	TagThreadName = NewTag(0x010, GrpMeta, 0) // length folded per name
	TagProbe      = NewTag(0x100, GrpProbe, 0)
)
