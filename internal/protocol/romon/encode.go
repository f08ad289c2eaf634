package romon

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Encode writes f to w in wire format. Hop counts and attribute lengths are
// taken from the slices; HopPointer and DeclaredLength are written as given.
func Encode(w io.Writer, f *Frame) error {
	if f == nil {
		return ErrInvalidLength
	}
	head := make([]byte, HeaderLen)
	binary.LittleEndian.PutUint16(head[0:2], uint16(f.Subtype))
	binary.BigEndian.PutUint16(head[2:4], f.DeclaredLength)
	copy(head[4:4+HeaderReservedLen], f.Reserved[:])
	copy(head[28:34], f.Source[:])
	copy(head[34:40], f.Target[:])
	if _, err := w.Write(head); err != nil {
		return err
	}

	switch {
	case f.Discovery != nil:
		return encodeDiscovery(w, f.Discovery)
	case f.Transport != nil:
		return encodeTransport(w, f.Transport)
	case len(f.Payload) > 0:
		_, err := w.Write(f.Payload)
		return err
	}
	return nil
}

// Marshal returns f in wire format.
func Marshal(f *Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeHopList(w io.Writer, hops []Hop, pointer uint8, reserved []byte) error {
	if len(hops) > 0xff {
		return ErrInvalidLength
	}
	if _, err := w.Write(append([]byte{uint8(len(hops)), pointer}, reserved...)); err != nil {
		return err
	}
	buf := make([]byte, HopLen)
	for _, h := range hops {
		binary.BigEndian.PutUint32(buf[0:4], h.LinkID)
		copy(buf[4:], h.Node[:])
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func encodeDiscovery(w io.Writer, d *Discovery) error {
	if err := encodeHopList(w, d.Hops, d.HopPointer, d.Reserved[:]); err != nil {
		return err
	}
	for _, attr := range d.Attributes {
		if err := encodeAttribute(w, attr); err != nil {
			return err
		}
	}
	return nil
}

func encodeTransport(w io.Writer, t *Transport) error {
	return encodeHopList(w, t.Hops, t.HopPointer, t.Reserved[:])
}

func encodeAttribute(w io.Writer, attr Attribute) error {
	value := attr.Value
	if attr.Routing != nil && len(value) == 0 {
		value = encodeRouting(attr.Routing)
	}
	if len(value) > 0xff {
		return ErrInvalidLength
	}
	if _, err := w.Write([]byte{uint8(attr.Tag), uint8(len(value))}); err != nil {
		return err
	}
	if len(value) == 0 {
		return nil
	}
	_, err := w.Write(value)
	return err
}

func encodeRouting(r *Routing) []byte {
	buf := make([]byte, RouterIDLen+len(r.Entries)*RoutingEntryLen)
	copy(buf[0:RouterIDLen], r.RouterID[:])
	off := RouterIDLen
	for _, e := range r.Entries {
		binary.BigEndian.PutUint32(buf[off:off+4], e.LinkMetric)
		binary.BigEndian.PutUint16(buf[off+4:off+6], e.B)
		binary.BigEndian.PutUint16(buf[off+6:off+8], e.Cost)
		copy(buf[off+8:off+RoutingEntryLen], e.Node[:])
		off += RoutingEntryLen
	}
	return buf
}
