package bus

import "testing"

func TestReadWriteRAMRoundtrips(t *testing.T) {
	b := New(nil)
	b.Write(0x1000, 0x42)
	if got := b.Read(0x1000); got != 0x42 {
		t.Fatalf("Read = 0x%02X, want 0x42", got)
	}
}

func TestDefineROMDropsWrites(t *testing.T) {
	b := New(nil)
	b.Load(0xC000, []byte{0xAA, 0xBB})
	b.DefineROM(0xC000, 0xC001)

	b.Write(0xC000, 0x00)
	if got := b.Read(0xC000); got != 0xAA {
		t.Fatalf("Read = 0x%02X, want 0xAA (write dropped)", got)
	}
}

func TestDefineRAMReclaimsROM(t *testing.T) {
	b := New(nil)
	b.Load(0xC000, []byte{0xAA})
	b.DefineROM(0xC000, 0xC000)
	b.DefineRAM(0xC000, 0xC000)

	b.Write(0xC000, 0x55)
	if got := b.Read(0xC000); got != 0x55 {
		t.Fatalf("Read = 0x%02X, want 0x55 after reclaiming RAM", got)
	}
}

type recordingHandler struct {
	reads  []uint16
	writes []uint16
	value  byte
}

func (h *recordingHandler) HandleIO(addr uint16, value byte, op Op) byte {
	if op == OpWrite {
		h.writes = append(h.writes, addr)
		h.value = value
		return 0
	}
	h.reads = append(h.reads, addr)
	return h.value
}

func TestDefineIODispatchesReadsAndWrites(t *testing.T) {
	b := New(nil)
	h := &recordingHandler{}
	b.DefineIO(0xFF00, 0xFF03, h)

	b.Write(0xFF02, 0x7F)
	got := b.Read(0xFF02)

	if len(h.writes) != 1 || h.writes[0] != 0xFF02 {
		t.Fatalf("writes = %v, want [0xFF02]", h.writes)
	}
	if len(h.reads) != 1 || h.reads[0] != 0xFF02 {
		t.Fatalf("reads = %v, want [0xFF02]", h.reads)
	}
	if got != 0x7F {
		t.Fatalf("Read = 0x%02X, want 0x7F", got)
	}
}

func TestUnregisteredIOReadReturnsZero(t *testing.T) {
	b := New(nil)
	b.DefineRAM(0, Size-1)
	for addr := uint32(0xFF00); addr <= 0xFF03; addr++ {
		b.tags[addr] = TagIO
	}
	if got := b.Read(0xFF00); got != 0 {
		t.Fatalf("Read = 0x%02X, want 0", got)
	}
}

func TestLaterDefineIOWinsOnOverlap(t *testing.T) {
	b := New(nil)
	first := &recordingHandler{value: 0x11}
	second := &recordingHandler{value: 0x22}
	b.DefineIO(0xFF00, 0xFF0F, first)
	b.DefineIO(0xFF04, 0xFF07, second)

	got := b.Read(0xFF05)
	if got != 0x22 {
		t.Fatalf("Read = 0x%02X, want 0x22 from the later-registered handler", got)
	}
	if len(first.reads) != 0 {
		t.Fatal("first handler should not have been dispatched to")
	}
}

func TestReadWriteWordIsBigEndian(t *testing.T) {
	b := New(nil)
	b.WriteWord(0x2000, 0x1234)
	if got := b.Read(0x2000); got != 0x12 {
		t.Fatalf("high byte = 0x%02X, want 0x12", got)
	}
	if got := b.Read(0x2001); got != 0x34 {
		t.Fatalf("low byte = 0x%02X, want 0x34", got)
	}
	if got := b.ReadWord(0x2000); got != 0x1234 {
		t.Fatalf("ReadWord = 0x%04X, want 0x1234", got)
	}
}

func TestPeekAndPokeBypassTagsAndHandlers(t *testing.T) {
	b := New(nil)
	b.Load(0xC000, []byte{0xAA})
	b.DefineROM(0xC000, 0xC000)

	b.Poke(0xC000, 0x99)
	if got := b.Peek(0xC000); got != 0x99 {
		t.Fatalf("Peek = 0x%02X, want 0x99 (Poke bypasses ROM protection)", got)
	}
}

func TestTagAtReportsCurrentBacking(t *testing.T) {
	b := New(nil)
	b.DefineROM(0x8000, 0x8000)
	b.DefineIO(0xFF00, 0xFF00, &recordingHandler{})

	if got := b.TagAt(0x0000); got != TagRAM {
		t.Fatalf("TagAt(0x0000) = %v, want RAM", got)
	}
	if got := b.TagAt(0x8000); got != TagROM {
		t.Fatalf("TagAt(0x8000) = %v, want ROM", got)
	}
	if got := b.TagAt(0xFF00); got != TagIO {
		t.Fatalf("TagAt(0xFF00) = %v, want IO", got)
	}
}

func TestTagStringer(t *testing.T) {
	cases := map[Tag]string{TagRAM: "RAM", TagROM: "ROM", TagIO: "IO"}
	for tag, want := range cases {
		if got := tag.String(); got != want {
			t.Fatalf("%v.String() = %q, want %q", tag, got, want)
		}
	}
}

func TestLoadStopsAtAddressSpaceBoundary(t *testing.T) {
	b := New(nil)
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i + 1)
	}
	b.Load(Size-4, data) // would overrun without the bounds check

	if got := b.Read(Size - 1); got != 4 {
		t.Fatalf("last byte = 0x%02X, want 0x04", got)
	}
}
