package romon

import (
	"errors"
	"testing"
)

func TestCursorBoundedByCapturedLength(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4, 5, 6}, 4)
	if c.Remaining() != 4 {
		t.Fatalf("expected 4 remaining, got %d", c.Remaining())
	}
	v, err := c.Uint16BE("a")
	if err != nil || v != 0x0102 {
		t.Fatalf("unexpected read: %x %v", v, err)
	}
	if _, err := c.Uint32BE("b"); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if c.Offset() != 2 {
		t.Fatalf("failed read advanced cursor to %d", c.Offset())
	}
	v, err = c.Uint16LE("c")
	if err != nil || v != 0x0403 {
		t.Fatalf("unexpected little-endian read: %x %v", v, err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected cursor exhausted, got %d", c.Remaining())
	}
}

func TestCursorLengthBeyondBufferIsClamped(t *testing.T) {
	c := NewCursor([]byte{1, 2}, 1000)
	if c.Remaining() != 2 {
		t.Fatalf("expected 2 remaining, got %d", c.Remaining())
	}
	if err := c.Skip(3, "x"); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if NewCursor([]byte{1}, -5).Remaining() != 0 {
		t.Fatalf("negative length should bound to zero")
	}
}

func TestCursorDecodeErrorCarriesField(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3}, 3)
	if _, err := c.Uint8("first"); err != nil {
		t.Fatalf("read: %v", err)
	}
	_, err := c.NodeID("node")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if de.Field != "node" || de.Offset != 1 || de.Need != NodeIDLen {
		t.Fatalf("unexpected error detail: %+v", de)
	}
	if !IsInvalid(err) {
		t.Fatalf("expected IsInvalid")
	}
}

func TestCursorBytesCopiesAndSpan(t *testing.T) {
	buf := []byte{9, 8, 7, 6}
	c := NewCursor(buf, len(buf))
	b, err := c.Bytes(3, "v")
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	buf[0] = 0
	if b[0] != 9 {
		t.Fatalf("Bytes returned an alias of the input")
	}
	if span := c.Span(1); len(span) != 2 || span[0] != 8 {
		t.Fatalf("unexpected span: %v", span)
	}
	if c.Span(4) != nil {
		t.Fatalf("span past position should be nil")
	}
}
