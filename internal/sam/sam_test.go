package sam

import "testing"

func TestVideoModeFromV0V2(t *testing.T) {
	s := New(nil)
	// Set V0, V1, clear V2: addresses for V0=0xFFDA/DB, V1=0xFFDC/DD, V2=0xFFDE/DF.
	s.Handle(0xFFDB, 0, true) // V0 set
	s.Handle(0xFFDD, 0, true) // V1 set
	s.Handle(0xFFDE, 0, true) // V2 clear (even)
	if got := s.VideoMode(); got != 0x3 {
		t.Fatalf("VideoMode() = %d, want 3", got)
	}
}

func TestVideoModeAllSet(t *testing.T) {
	s := New(nil)
	for _, addr := range []uint16{0xFFDB, 0xFFDD, 0xFFDF} {
		s.Handle(addr, 0, true)
	}
	if got := s.VideoMode(); got != 7 {
		t.Fatalf("VideoMode() = %d, want 7", got)
	}
}

func TestVideoRAMOffsetToggles(t *testing.T) {
	s := New(nil)
	s.Handle(0xFFC1, 0, true) // F6 set
	s.Handle(0xFFCB, 0, true) // F1 set
	off := s.VideoRAMOffset()
	if off&0x20 == 0 {
		t.Fatalf("expected F6 bit set in offset 0x%02X", off)
	}
	if off&0x01 == 0 {
		t.Fatalf("expected F1 bit set in offset 0x%02X", off)
	}
}

func TestResetClearsToggles(t *testing.T) {
	s := New(nil)
	s.Handle(0xFFDB, 0, true)
	s.Reset()
	if got := s.VideoMode(); got != 0 {
		t.Fatalf("VideoMode() after reset = %d, want 0", got)
	}
}

func TestReadReturnsUnspecifiedZero(t *testing.T) {
	s := New(nil)
	if got := s.Handle(0xFFC0, 0, false); got != 0 {
		t.Fatalf("Handle(read) = %d, want 0", got)
	}
}

func TestOutOfRangeOffsetIgnored(t *testing.T) {
	s := New(nil)
	// 16 fields * 2 = 32 addresses exactly fill the window: the last
	// address in it sets V2 like any other toggle, and the first address
	// past it maps to no field and changes nothing.
	s.Handle(Base+Size-1, 0, true)
	if got := s.VideoMode(); got != 4 {
		t.Fatalf("VideoMode() after boundary write = %d, want 4", got)
	}
	s.Handle(Base+Size, 0, true)
	if got := s.VideoMode(); got != 4 {
		t.Fatalf("VideoMode() after out-of-range write = %d, want 4", got)
	}
	if got := s.VideoRAMOffset(); got != 0 {
		t.Fatalf("VideoRAMOffset() after out-of-range write = %d, want 0", got)
	}
}
