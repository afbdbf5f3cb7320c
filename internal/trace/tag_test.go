package trace

import "testing"

func TestNewTagFields(t *testing.T) {
	tag := NewTag(0xBEEF, GrpSched, 24)
	if got := tag.Event(); got != 0xBEEF {
		t.Fatalf("event = %#x", got)
	}
	if got := tag.Group(); got != GrpSched {
		t.Fatalf("group = %#x", got)
	}
	if got := tag.Len(); got != 24 {
		t.Fatalf("len = %d, want 24", got)
	}
}

func TestTagLenRoundsUpToAlign(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 8},
		{8, 8},
		{9, 16},
		{29, 32},
		{120, 120},
	}
	for _, tt := range tests {
		if got := NewTag(1, GrpProbe, tt.size).Len(); got != tt.want {
			t.Fatalf("NewTag(size=%d).Len() = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestWithLenReplacesOnlyLengthClass(t *testing.T) {
	tag := NewTag(0x10, GrpMeta, 32)
	resized := tag.WithLen(40)
	if resized.Event() != tag.Event() || resized.Group() != tag.Group() {
		t.Fatal("WithLen changed event or group bits")
	}
	if resized.Len() != 40 {
		t.Fatalf("len = %d, want 40", resized.Len())
	}
}

func TestGroupMaskGatesTag(t *testing.T) {
	tag := NewTag(1, GrpIPC, 16)
	if uint32(tag)&GrpIPC.Mask() == 0 {
		t.Fatal("tag should carry its own group bit")
	}
	if uint32(tag)&GrpIRQ.Mask() != 0 {
		t.Fatal("tag must not match a different group's mask")
	}
	if uint32(tag)&GrpAll.Mask() == 0 {
		t.Fatal("tag should match the all-groups mask")
	}
}

func TestGroupByName(t *testing.T) {
	tests := []struct {
		name string
		want Group
		ok   bool
	}{
		{"sched", GrpSched, true},
		{"SCHED", GrpSched, true},
		{" probe ", GrpProbe, true},
		{"all", GrpAll, true},
		{"bogus", 0, false},
	}
	for _, tt := range tests {
		got, ok := GroupByName(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("GroupByName(%q) = (%#x, %v), want (%#x, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGroupString(t *testing.T) {
	if got := (GrpSched | GrpIPC).String(); got != "ipc,sched" {
		t.Fatalf("String() = %q", got)
	}
	if got := GrpAll.String(); got != "all" {
		t.Fatalf("String() = %q", got)
	}
	if got := Group(0).String(); got != "none" {
		t.Fatalf("String() = %q", got)
	}
}
