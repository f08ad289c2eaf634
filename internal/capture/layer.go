package capture

import (
	"errors"

	"github.com/danmuck/romonctl/internal/protocol/romon"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// LayerTypeRoMON is the gopacket layer type of a RoMON frame.
var LayerTypeRoMON = gopacket.RegisterLayerType(2588, gopacket.LayerTypeMetadata{
	Name:    "RoMON",
	Decoder: gopacket.DecodeFunc(decodeRoMON),
})

func init() {
	RegisterEtherType(layers.EthernetType(romon.EtherType))
}

// RegisterEtherType routes Ethernet and 802.1Q payloads of type t to the
// RoMON decoder.
func RegisterEtherType(t layers.EthernetType) {
	layers.EthernetTypeMetadata[t] = layers.EnumMetadata{
		DecodeWith: LayerTypeRoMON,
		Name:       "RoMON",
		LayerType:  LayerTypeRoMON,
	}
}

// RoMON is a decoded frame as a gopacket layer. A frame that failed to
// decode is still a layer; Err tells why it stopped.
type RoMON struct {
	layers.BaseLayer
	Frame romon.Frame
	Trace romon.Trace
	Err   error
}

func (r *RoMON) LayerType() gopacket.LayerType {
	return LayerTypeRoMON
}

func (r *RoMON) CanDecode() gopacket.LayerClass {
	return LayerTypeRoMON
}

func (r *RoMON) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

func (r *RoMON) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	r.BaseLayer = layers.BaseLayer{Contents: data}
	r.decode(len(data))
	if errors.Is(r.Err, romon.ErrTruncated) {
		df.SetTruncated()
	}
	return nil
}

// SetWireLength decodes the frame again against its on-wire length. The
// layer decoder only sees captured bytes, so a capture cut between two
// attributes looks complete until the reader supplies the real length.
func (r *RoMON) SetWireLength(n int) {
	if n == len(r.Contents) {
		return
	}
	r.decode(n)
}

func (r *RoMON) decode(wire int) {
	r.Frame, r.Trace, r.Err = romon.Decode(r.Contents, wire)
}

func decodeRoMON(data []byte, p gopacket.PacketBuilder) error {
	r := &RoMON{}
	if err := r.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(r)
	return nil
}
