package capture

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/danmuck/romonctl/internal/protocol/romon"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

var (
	srcMAC = net.HardwareAddr{0x00, 0x0c, 0x42, 0x01, 0x02, 0x03}
	dstMAC = net.HardwareAddr{0x01, 0x80, 0xc2, 0x00, 0x00, 0x0e}
	nodeA  = romon.NodeID{0x00, 0x0c, 0x42, 0xaa, 0xaa, 0xaa}
	nodeB  = romon.NodeID{0x00, 0x0c, 0x42, 0xbb, 0xbb, 0xbb}
	when   = time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC)
)

func discoverPayload(t *testing.T, identity string) []byte {
	t.Helper()
	b, err := romon.Marshal(&romon.Frame{
		Subtype: romon.SubtypeDiscover,
		Source:  nodeA,
		Target:  nodeB,
		Discovery: &romon.Discovery{
			HopPointer: 1,
			Hops:       []romon.Hop{{LinkID: 7, Node: nodeA}},
			Attributes: []romon.Attribute{{Tag: romon.TagIdentity, Value: []byte(identity)}},
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func ethFrame(t *testing.T, etherType layers.EthernetType, vlan uint16, payload []byte) []byte {
	t.Helper()
	eth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: etherType}
	stack := []gopacket.SerializableLayer{eth}
	if vlan != 0 {
		eth.EthernetType = layers.EthernetTypeDot1Q
		stack = append(stack, &layers.Dot1Q{VLANIdentifier: vlan, Type: etherType})
	}
	stack = append(stack, gopacket.Payload(payload))

	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, stack...); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return buf.Bytes()
}

func pcapFile(t *testing.T, frames ...[]byte) []byte {
	t.Helper()
	var out bytes.Buffer
	w := pcapgo.NewWriter(&out)
	if err := w.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		t.Fatalf("pcap header: %v", err)
	}
	for i, f := range frames {
		ci := gopacket.CaptureInfo{Timestamp: when.Add(time.Duration(i) * time.Second), CaptureLength: len(f), Length: len(f)}
		if err := w.WritePacket(ci, f); err != nil {
			t.Fatalf("pcap packet: %v", err)
		}
	}
	return out.Bytes()
}
