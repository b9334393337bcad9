package hpack

import "testing"

func TestByteSourcePeekDoesNotConsume(t *testing.T) {
	s := &byteSource{buf: []byte{0x01, 0x02}}

	b, ok := s.Peek()
	if !ok || b != 0x01 {
		t.Fatalf("Peek = (%x, %v), want (0x01, true)", b, ok)
	}
	if s.Remaining() != 2 {
		t.Errorf("Remaining() = %d after Peek, want 2 (unconsumed)", s.Remaining())
	}

	got, ok := s.ReadByte()
	if !ok || got != 0x01 {
		t.Fatalf("ReadByte = (%x, %v), want (0x01, true)", got, ok)
	}
	if s.Remaining() != 1 {
		t.Errorf("Remaining() = %d after ReadByte, want 1", s.Remaining())
	}
}

func TestByteSourceMarkRewind(t *testing.T) {
	s := &byteSource{buf: []byte{0x01, 0x02, 0x03}}

	s.ReadByte()
	mark := s.Mark()
	s.ReadByte()
	s.ReadByte()

	s.Rewind(mark)
	if s.Remaining() != 2 {
		t.Errorf("Remaining() after Rewind = %d, want 2", s.Remaining())
	}
	got, ok := s.ReadByte()
	if !ok || got != 0x02 {
		t.Errorf("ReadByte after Rewind = (%x, %v), want (0x02, true)", got, ok)
	}
}

func TestByteSourceNextExact(t *testing.T) {
	s := &byteSource{buf: []byte{0x01, 0x02, 0x03, 0x04}}

	got, ok := s.Next(3)
	if !ok || len(got) != 3 || got[2] != 0x03 {
		t.Errorf("Next(3) = (%v, %v), want [0x01 0x02 0x03], true", got, ok)
	}
	if s.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", s.Remaining())
	}
}

func TestByteSourceNextInsufficientLeavesCursor(t *testing.T) {
	s := &byteSource{buf: []byte{0x01, 0x02}}

	mark := s.Mark()
	if _, ok := s.Next(5); ok {
		t.Error("Next(5): expected false on a 2-byte source")
	}
	if s.Mark() != mark {
		t.Error("Next: cursor must not move on a failed read")
	}
}

func TestByteSourceSkip(t *testing.T) {
	s := &byteSource{buf: []byte{0x01, 0x02, 0x03}}

	if !s.Skip(2) {
		t.Fatal("Skip(2): expected success")
	}
	if s.Remaining() != 1 {
		t.Errorf("Remaining() = %d after Skip(2), want 1", s.Remaining())
	}
	if s.Skip(5) {
		t.Error("Skip(5): expected failure, only 1 byte remains")
	}
}

func TestByteSourceEmptyPeekAndReadByte(t *testing.T) {
	s := &byteSource{}

	if _, ok := s.Peek(); ok {
		t.Error("Peek on empty source: expected false")
	}
	if _, ok := s.ReadByte(); ok {
		t.Error("ReadByte on empty source: expected false")
	}
}
