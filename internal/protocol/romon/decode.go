package romon

import "io"

type decoder struct {
	c    *Cursor
	p    printer
	wire int
}

// Decode parses one RoMON frame from data. length is the frame's length on
// the wire, which exceeds len(data) when the capture was cut short. Reads
// never go past len(data) or length; the attribute list runs until length
// bytes are consumed, so a short capture fails instead of ending early.
// Decode returns whatever part of the frame was read, its trace and, when a
// read failed, an error satisfying IsInvalid. The trace of a failed frame
// ends in InvalidMarker.
func Decode(data []byte, length int) (Frame, Trace, error) {
	d := &decoder{c: NewCursor(data, length), wire: length}
	var f Frame
	err := d.frame(&f)
	if err != nil {
		d.p.invalid()
	}
	return f, d.p.trace(), err
}

// Print decodes data and writes its trace to w, one tab-indented line each.
// A decode failure is reported through the marker line only; the returned
// error is from w.
func Print(w io.Writer, data []byte, length int) error {
	_, trace, _ := Decode(data, length)
	_, err := trace.WriteIndented(w, "\t")
	return err
}

func (d *decoder) frame(f *Frame) error {
	raw, err := d.c.Uint16LE("subtype")
	if err != nil {
		return err
	}
	f.Subtype = Subtype(raw)
	d.p.line("Type: %s (0x%04x)", f.Subtype, raw)

	if f.DeclaredLength, err = d.c.Uint16BE("frame length"); err != nil {
		return err
	}
	d.p.add(", frame length: %d", f.DeclaredLength)

	reserved, err := d.c.Bytes(HeaderReservedLen, "reserved")
	if err != nil {
		return err
	}
	copy(f.Reserved[:], reserved)

	if f.Source, err = d.c.NodeID("source id"); err != nil {
		return err
	}
	d.p.line("Source RoMON ID: %s", f.Source)

	if f.Target, err = d.c.NodeID("target id"); err != nil {
		return err
	}
	d.p.line("Target RoMON ID: %s", f.Target)

	switch f.Subtype {
	case SubtypeDiscover, SubtypeDiscoverReply:
		f.Discovery = &Discovery{}
		return d.discovery(f.Discovery)
	case SubtypeTransport:
		f.Transport = &Transport{}
		return d.transport(f.Transport)
	default:
		if f.Payload, err = d.c.Bytes(d.c.Remaining(), "payload"); err != nil {
			return err
		}
		for _, l := range hexLines(f.Payload) {
			d.p.line("%s", l)
		}
		return nil
	}
}

// hops reads count hop records. sep goes between link id and node id.
func (d *decoder) hops(count, pointer uint8, sep string) ([]Hop, error) {
	hops := make([]Hop, 0, count)
	for i := 1; i <= int(count); i++ {
		h := Hop{Index: i}
		d.p.line("Hop %d:", i)

		var err error
		if h.LinkID, err = d.c.Uint32BE("hop link id"); err != nil {
			return hops, err
		}
		d.p.add(" link %d", h.LinkID)

		if h.Node, err = d.c.NodeID("hop node id"); err != nil {
			return hops, err
		}
		d.p.add("%s%s", sep, h.Node)

		if i == int(pointer) {
			h.Current = true
			d.p.add(" <--")
		}
		hops = append(hops, h)
	}
	return hops, nil
}
