package romon

func (d *decoder) discovery(disc *Discovery) error {
	var err error
	if disc.NumHops, err = d.c.Uint8("hop count"); err != nil {
		return err
	}
	if disc.HopPointer, err = d.c.Uint8("hop pointer"); err != nil {
		return err
	}
	d.p.line("Hops: %d/%d", disc.HopPointer, disc.NumHops)

	reserved, err := d.c.Bytes(DiscoveryReservedLen, "discovery reserved")
	if err != nil {
		return err
	}
	copy(disc.Reserved[:], reserved)

	disc.Hops, err = d.hops(disc.NumHops, disc.HopPointer, " at ")
	if err != nil {
		return err
	}

	for d.c.Offset() < d.wire {
		attr, err := d.attribute()
		if attr != nil {
			disc.Attributes = append(disc.Attributes, *attr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// attribute reads one TLV. A partially read attribute is returned alongside
// the error.
func (d *decoder) attribute() (*Attribute, error) {
	raw, err := d.c.Uint8("tag")
	if err != nil {
		return nil, err
	}
	attr := &Attribute{Tag: Tag(raw)}
	d.p.line("Tag: %s (%d)", attr.Tag, raw)

	if attr.Length, err = d.c.Uint8("tag length"); err != nil {
		return attr, err
	}
	d.p.add(", length %d", attr.Length)

	switch attr.Tag {
	case TagRouting:
		start := d.c.Offset()
		attr.Routing, err = d.routing(attr.Length)
		attr.Value = append([]byte(nil), d.c.Span(start)...)
		return attr, err
	case TagIdentity, TagHardware:
		if attr.Value, err = d.c.Bytes(int(attr.Length), "tag value"); err != nil {
			return attr, err
		}
		d.p.add(": %s", printable(attr.Value))
	default:
		d.p.add(": unknown")
		if attr.Value, err = d.c.Bytes(int(attr.Length), "tag value"); err != nil {
			return attr, err
		}
	}
	return attr, nil
}

// routing reads a router id followed by fixed-size entries filling length.
// A length that does not split into whole entries is rejected before any
// value byte is read.
func (d *decoder) routing(length uint8) (*Routing, error) {
	n := int(length) - RouterIDLen
	if n < 0 || n%RoutingEntryLen != 0 {
		return nil, &DecodeError{Field: "routing length", Offset: d.c.Offset(), Need: int(length), Err: ErrInvalidLength}
	}

	r := &Routing{}
	var err error
	if r.RouterID, err = d.c.NodeID("router id"); err != nil {
		return r, err
	}
	d.p.add(": Router ID %s", r.RouterID)

	for i := 0; i < n/RoutingEntryLen; i++ {
		var e RoutingEntry
		if e.LinkMetric, err = d.c.Uint32BE("routing link metric"); err != nil {
			return r, err
		}
		d.p.line("\t- link metric %d", e.LinkMetric)
		if e.B, err = d.c.Uint16BE("routing b"); err != nil {
			return r, err
		}
		d.p.add(", b %d", e.B)
		if e.Cost, err = d.c.Uint16BE("routing cost"); err != nil {
			return r, err
		}
		d.p.add(", cost %d", e.Cost)
		if e.Node, err = d.c.NodeID("routing node id"); err != nil {
			return r, err
		}
		d.p.add(", node %s", e.Node)
		r.Entries = append(r.Entries, e)
	}
	return r, nil
}
