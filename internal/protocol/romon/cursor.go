package romon

import "encoding/binary"

// Cursor walks an immutable buffer and refuses any read that would pass the
// captured length. The position only advances on success.
type Cursor struct {
	buf   []byte
	pos   int
	limit int
}

// NewCursor bounds reads by the smaller of len(buf) and length.
func NewCursor(buf []byte, length int) *Cursor {
	limit := length
	if limit > len(buf) {
		limit = len(buf)
	}
	if limit < 0 {
		limit = 0
	}
	return &Cursor{buf: buf, limit: limit}
}

func (c *Cursor) Offset() int {
	return c.pos
}

func (c *Cursor) Remaining() int {
	return c.limit - c.pos
}

// Span returns the bytes consumed since offset from.
func (c *Cursor) Span(from int) []byte {
	if from < 0 || from > c.pos {
		return nil
	}
	return c.buf[from:c.pos]
}

func (c *Cursor) take(n int, field string) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, &DecodeError{Field: field, Offset: c.pos, Need: n, Err: ErrTruncated}
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) Uint8(field string) (uint8, error) {
	b, err := c.take(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) Uint16LE(field string) (uint16, error) {
	b, err := c.take(2, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) Uint16BE(field string) (uint16, error) {
	b, err := c.take(2, field)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *Cursor) Uint32BE(field string) (uint32, error) {
	b, err := c.take(4, field)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *Cursor) NodeID(field string) (NodeID, error) {
	var id NodeID
	b, err := c.take(NodeIDLen, field)
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// Bytes returns a copy of the next n bytes.
func (c *Cursor) Bytes(n int, field string) ([]byte, error) {
	b, err := c.take(n, field)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Skip requires n bytes to be present and steps over them.
func (c *Cursor) Skip(n int, field string) error {
	_, err := c.take(n, field)
	return err
}
