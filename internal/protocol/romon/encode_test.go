package romon

import (
	"bytes"
	"errors"
	"testing"
)

func TestMarshalDecodeRoundTrip(t *testing.T) {
	in := &Frame{
		Subtype:        SubtypeDiscover,
		DeclaredLength: 77,
		Source:         idC,
		Target:         idD,
		Discovery: &Discovery{
			HopPointer: 1,
			Reserved:   [DiscoveryReservedLen]byte{1, 2, 3, 4, 5, 6},
			Hops:       []Hop{{LinkID: 9, Node: idA}},
			Attributes: []Attribute{
				{Tag: TagIdentity, Value: []byte("core-router")},
				{Tag: TagRouting, Routing: &Routing{RouterID: idA, Entries: []RoutingEntry{{LinkMetric: 1, B: 2, Cost: 3, Node: idB}}}},
				{Tag: Tag(0x42), Value: []byte{0xca, 0xfe}},
			},
		},
	}
	in.Reserved[0] = 0x99

	b, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, _, err := Decode(b, len(b))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Reserved != in.Reserved || out.DeclaredLength != 77 || out.Source != idC {
		t.Fatalf("header mismatch: %+v", out)
	}
	if out.Discovery.NumHops != 1 || !out.Discovery.Hops[0].Current {
		t.Fatalf("hop mismatch: %+v", out.Discovery)
	}
	if out.Discovery.Attributes[1].Routing.Entries[0] != in.Discovery.Attributes[1].Routing.Entries[0] {
		t.Fatalf("routing mismatch")
	}

	again, err := Marshal(&out)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if !bytes.Equal(b, again) {
		t.Fatalf("round-trip mismatch")
	}
}

func TestMarshalRejectsOversizedAttribute(t *testing.T) {
	f := &Frame{
		Subtype:   SubtypeDiscover,
		Discovery: &Discovery{Attributes: []Attribute{{Tag: TagIdentity, Value: make([]byte, 256)}}},
	}
	if _, err := Marshal(f); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestParseNodeID(t *testing.T) {
	id, err := ParseNodeID("00:0C:42:01:02:03")
	if err != nil || id != idC {
		t.Fatalf("unexpected parse: %v %v", id, err)
	}
	if id.String() != "00:0c:42:01:02:03" {
		t.Fatalf("expected lower-case rendering, got %s", id)
	}
	if _, err := ParseNodeID("00:00:5e:10:00:00:00:01"); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength for EUI-64, got %v", err)
	}
}
