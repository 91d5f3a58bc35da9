package cursor

import (
	"encoding/binary"
	"testing"

	"badc0de.net/pkg/go-bnsa/ttesting"
)

func TestReadUint32(t *testing.T) {
	c := New([]byte{0x20, 0x00, 0x00, 0x00, 0x78, 0x56, 0x34, 0x12})

	v, err := c.ReadUint32()
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	ttesting.AssertEqualUint32(t, "first value", v, 0x20)

	v, err = c.ReadUint32()
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	ttesting.AssertEqualUint32(t, "second value", v, 0x12345678)
	ttesting.AssertEqualOffset(t, "position at end", c.Position(), 8)
	if !c.AtEnd() {
		t.Errorf("AtEnd() = false after consuming everything")
	}
}

func TestReadPastEndConsumesNothing(t *testing.T) {
	c := New([]byte{1, 2, 3})

	_, err := c.ReadUint32()
	ttesting.AssertErrorIs(t, "short uint32", err, ErrUnexpectedEndOfStream)
	ttesting.AssertEqualOffset(t, "position after failed read", c.Position(), 0)

	if _, err := c.ReadN(3); err != nil {
		t.Fatalf("ReadN(3): %v", err)
	}
	_, err = c.ReadByte()
	ttesting.AssertErrorIs(t, "byte at end", err, ErrUnexpectedEndOfStream)
	_, err = c.PeekByte()
	ttesting.AssertErrorIs(t, "peek at end", err, ErrUnexpectedEndOfStream)
}

func TestSeekTo(t *testing.T) {
	c := New(make([]byte, 16))

	for _, tc := range []struct {
		name    string
		to      int64
		wantErr bool
	}{
		{"start", 0, false},
		{"middle", 7, false},
		{"end", 16, false},
		{"past end", 17, true},
		{"negative", -1, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			before := c.Position()
			err := c.SeekTo(tc.to)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("SeekTo(%d) succeeded; want error", tc.to)
				}
				if c.Position() != before {
					t.Errorf("position moved to %d on failed seek", c.Position())
				}
				return
			}
			if err != nil {
				t.Fatalf("SeekTo(%d): %v", tc.to, err)
			}
			if c.Position() != tc.to {
				t.Errorf("got position %d; want %d", c.Position(), tc.to)
			}
		})
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	c := New([]byte{0x00, 0x01, 0x80, 0xFF})
	b, err := c.Peek(3)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	ttesting.AssertEqualBytes(t, "peeked", b, []byte{0x00, 0x01, 0x80})
	ttesting.AssertEqualOffset(t, "position", c.Position(), 0)
	ttesting.AssertEqualOffset(t, "remaining", c.Remaining(), 4)
}

func TestBinaryRead(t *testing.T) {
	c := New([]byte{0x05, 0x00, 0x01, 0x02, 0xAA})
	var h struct {
		Hint  uint8
		Magic [2]uint8
		Count uint8
	}
	if err := binary.Read(c, binary.LittleEndian, &h); err != nil {
		t.Fatalf("binary.Read: %v", err)
	}
	ttesting.AssertEqualInt(t, "count", int(h.Count), 2)

	var tooBig uint32
	err := binary.Read(c, binary.LittleEndian, &tooBig)
	ttesting.AssertErrorIs(t, "truncated struct", err, ErrUnexpectedEndOfStream)
}

func TestBytesClamps(t *testing.T) {
	c := New([]byte{1, 2, 3, 4})
	ttesting.AssertEqualBytes(t, "inner", c.Bytes(1, 3), []byte{2, 3})
	ttesting.AssertEqualBytes(t, "clamped", c.Bytes(2, 10), []byte{3, 4})
	if got := c.Bytes(3, 1); got != nil {
		t.Errorf("got % x for inverted range; want nil", got)
	}
}
