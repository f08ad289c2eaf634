package romon

import "net"

const (
	// EtherType carries RoMON over Ethernet.
	EtherType uint16 = 0x88bf

	NodeIDLen            = 6
	HeaderReservedLen    = 24
	DiscoveryReservedLen = 6
	TransportReservedLen = 4
	RouterIDLen          = NodeIDLen
	RoutingEntryLen      = 4 + 2 + 2 + NodeIDLen
	HopLen               = 4 + NodeIDLen

	// HeaderLen covers subtype, frame length, reserved block and both node ids.
	HeaderLen = 2 + 2 + HeaderReservedLen + 2*NodeIDLen
)

// Subtype identifies the RoMON packet kind. It is read little-endian.
type Subtype uint16

const (
	SubtypeDiscover      Subtype = 0x0001
	SubtypeDiscoverReply Subtype = 0x0002
	SubtypeTransport     Subtype = 0x0003
)

var subtypeNames = map[Subtype]string{
	SubtypeDiscover:      "Discover",
	SubtypeDiscoverReply: "Discover reply",
	SubtypeTransport:     "Transport",
}

func (s Subtype) String() string {
	if name, ok := subtypeNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Known reports whether s has a registered name.
func (s Subtype) Known() bool {
	_, ok := subtypeNames[s]
	return ok
}

// Tag identifies a discovery attribute.
type Tag uint8

const (
	TagRouting  Tag = 0x01
	TagIdentity Tag = 0x03
	TagVersion  Tag = 0x04
	TagHardware Tag = 0x05
)

var tagNames = map[Tag]string{
	TagRouting:  "Routing",
	TagIdentity: "Identity",
	TagVersion:  "Version",
	TagHardware: "Hardware",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}

// NodeID is a 6-byte RoMON identifier in MAC-48 layout.
type NodeID [NodeIDLen]byte

func (n NodeID) String() string {
	return net.HardwareAddr(n[:]).String()
}

// ParseNodeID accepts any form net.ParseMAC accepts for a 48-bit address.
func ParseNodeID(s string) (NodeID, error) {
	var id NodeID
	hw, err := net.ParseMAC(s)
	if err != nil {
		return id, err
	}
	if len(hw) != NodeIDLen {
		return id, ErrInvalidLength
	}
	copy(id[:], hw)
	return id, nil
}

// Frame is one decoded RoMON frame. Fields past a failed read keep their
// zero value.
type Frame struct {
	Subtype        Subtype
	DeclaredLength uint16
	// Reserved is uninterpreted; it may hold an HMAC.
	Reserved [HeaderReservedLen]byte
	Source   NodeID
	Target   NodeID

	Discovery *Discovery
	Transport *Transport
	// Payload holds the bytes following the header of an unknown subtype.
	Payload []byte
}

// Hop is one relay record of a hop list.
type Hop struct {
	Index   int
	LinkID  uint32
	Node    NodeID
	Current bool
}

// Discovery is the payload of Discover and Discover reply frames.
type Discovery struct {
	NumHops    uint8
	HopPointer uint8
	Reserved   [DiscoveryReservedLen]byte
	Hops       []Hop
	Attributes []Attribute
}

// Transport is the payload of Transport frames.
type Transport struct {
	NumHops    uint8
	HopPointer uint8
	Reserved   [TransportReservedLen]byte
	Hops       []Hop
}

// Attribute is one discovery TLV. Value holds the raw value bytes; Routing is
// set for routing attributes.
type Attribute struct {
	Tag     Tag
	Length  uint8
	Value   []byte
	Routing *Routing
}

// Text returns the value of an identity or hardware attribute.
func (a Attribute) Text() string {
	return string(a.Value)
}

type Routing struct {
	RouterID NodeID
	Entries  []RoutingEntry
}

// RoutingEntry is one fixed 14-byte record of a routing attribute. B has no
// known meaning.
type RoutingEntry struct {
	LinkMetric uint32
	B          uint16
	Cost       uint16
	Node       NodeID
}
