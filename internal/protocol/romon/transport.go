package romon

func (d *decoder) transport(t *Transport) error {
	var err error
	if t.NumHops, err = d.c.Uint8("hop count"); err != nil {
		return err
	}
	if t.HopPointer, err = d.c.Uint8("hop pointer"); err != nil {
		return err
	}
	d.p.line("Hops: %d/%d", t.HopPointer, t.NumHops)

	reserved, err := d.c.Bytes(TransportReservedLen, "transport reserved")
	if err != nil {
		return err
	}
	copy(t.Reserved[:], reserved)

	t.Hops, err = d.hops(t.NumHops, t.HopPointer, " ")
	return err
}
