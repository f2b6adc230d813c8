package format

import (
	"math"
	"testing"
)

func TestPageBaseAndOffset(t *testing.T) {
	addr := uintptr(0x7f00_1234_5678)
	if got := PageBase(addr); got != 0x7f00_1234_5000 {
		t.Fatalf("PageBase = 0x%x", got)
	}
	if got := PageOffset(addr); got != 0x678 {
		t.Fatalf("PageOffset = 0x%x", got)
	}
}

func TestAlignPage(t *testing.T) {
	cases := map[uint64]uint64{
		2049: 4096,
		3000: 4096,
		4096: 4096,
		4097: 8192,
		9000: 12288,
	}
	for n, want := range cases {
		got, ok := AlignPage(n)
		if !ok || got != want {
			t.Fatalf("AlignPage(%d) = %d,%v want %d", n, got, ok, want)
		}
	}
	if _, ok := AlignPage(math.MaxUint64 - 10); ok {
		t.Fatalf("expected overflow")
	}
}

func TestBlockStart(t *testing.T) {
	if got := BlockStart(0x47, 16); got != 0x40 {
		t.Fatalf("BlockStart(0x47,16) = 0x%x", got)
	}
	if got := BlockStart(0x800, 2048); got != 0x800 {
		t.Fatalf("BlockStart(0x800,2048) = 0x%x", got)
	}
	if got := BlockStart(0xfff, 2048); got != 0x800 {
		t.Fatalf("BlockStart(0xfff,2048) = 0x%x", got)
	}
}
