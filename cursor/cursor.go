// Package cursor implements a seekable little-endian byte reader over a
// memory-resident buffer.
//
// Record decoders share a single *Cursor; whoever holds it owns the position.
// Reads are all-or-nothing: a read that would run past the end of the buffer
// consumes nothing and fails with ErrUnexpectedEndOfStream.
package cursor

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrUnexpectedEndOfStream is returned whenever a read, peek or seek needs
// more bytes than the buffer holds.
var ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")

type Cursor struct {
	buf []byte
	pos int64
}

// New returns a cursor positioned at the start of b. The buffer is not copied.
func New(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Position returns the absolute offset of the next byte to be read.
func (c *Cursor) Position() int64 {
	return c.pos
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int64 {
	return int64(len(c.buf))
}

// Remaining returns the number of bytes between the position and the end.
func (c *Cursor) Remaining() int64 {
	return int64(len(c.buf)) - c.pos
}

// AtEnd reports whether the whole buffer has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= int64(len(c.buf))
}

// SeekTo moves to an absolute offset. Seeking exactly to the end is allowed.
func (c *Cursor) SeekTo(abs int64) error {
	if abs < 0 || abs > int64(len(c.buf)) {
		return errors.Wrapf(ErrUnexpectedEndOfStream, "seek to 0x%06X (length 0x%06X)", abs, len(c.buf))
	}
	c.pos = abs
	return nil
}

func (c *Cursor) need(n int64) error {
	if n < 0 || n > c.Remaining() {
		return errors.Wrapf(ErrUnexpectedEndOfStream, "need %d bytes at 0x%06X, have %d", n, c.pos, c.Remaining())
	}
	return nil
}

// Peek returns the next n bytes without advancing. The returned slice aliases
// the buffer and must not be modified.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if err := c.need(int64(n)); err != nil {
		return nil, err
	}
	return c.buf[c.pos : c.pos+int64(n)], nil
}

// ReadN consumes n bytes and returns a copy of them.
func (c *Cursor) ReadN(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	c.pos += int64(n)
	return out, nil
}

// Skip advances n bytes without looking at them.
func (c *Cursor) Skip(n int) error {
	if err := c.need(int64(n)); err != nil {
		return err
	}
	c.pos += int64(n)
	return nil
}

// ReadByte consumes one byte. It implements io.ByteReader.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// PeekByte returns the next byte without consuming it.
func (c *Cursor) PeekByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	return c.buf[c.pos], nil
}

// ReadUint32 consumes a little-endian 32-bit unsigned integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.Peek(4)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return binary.LittleEndian.Uint32(b), nil
}

// Read implements io.Reader so fixed-size headers can be decoded with
// binary.Read. Unlike most readers it never returns a short read, and it
// reports ErrUnexpectedEndOfStream instead of io.EOF.
func (c *Cursor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := c.need(int64(len(p))); err != nil {
		return 0, err
	}
	n := copy(p, c.buf[c.pos:])
	c.pos += int64(n)
	return n, nil
}

// Bytes returns the underlying buffer in [from, to). Callers use it to keep
// raw copies of records they have already decoded.
func (c *Cursor) Bytes(from, to int64) []byte {
	if from < 0 {
		from = 0
	}
	if to > int64(len(c.buf)) {
		to = int64(len(c.buf))
	}
	if from >= to {
		return nil
	}
	out := make([]byte, to-from)
	copy(out, c.buf[from:to])
	return out
}
