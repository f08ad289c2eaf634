package capture

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/danmuck/romonctl/internal/config"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

var (
	ErrUnknownFormat = errors.New("capture: unknown input format")
	ErrHexLine       = errors.New("capture: malformed hex line")
)

// Packet is one captured RoMON frame handed to the decoder.
type Packet struct {
	Index     int
	Timestamp time.Time
	Src       net.HardwareAddr
	Dst       net.HardwareAddr
	VLAN      uint16
	HasVLAN   bool
	Layer     *RoMON
	// Payload is the captured RoMON bytes; WireLength is the RoMON length
	// on the wire, which exceeds len(Payload) when the capture was cut.
	Payload    []byte
	WireLength int
}

// Options configures a Reader.
type Options struct {
	Format  string
	Snaplen int
}

// Reader yields the RoMON packets of one capture, skipping everything else.
type Reader struct {
	src     gopacket.PacketDataSource
	first   gopacket.Decoder
	closer  io.Closer
	snaplen int
	index   int
	// Skipped counts packets without a RoMON layer, by reason.
	Skipped map[string]int
}

// Open opens the capture file at path.
func Open(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture %s: %w", path, err)
	}
	r, err := NewReader(f, opts)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open capture %s: %w", path, err)
	}
	r.closer = f
	return r, nil
}

// NewReader reads pcap, pcapng or hex text from in.
func NewReader(in io.Reader, opts Options) (*Reader, error) {
	br := bufio.NewReader(in)
	format := opts.Format
	if format == "" || format == config.FormatAuto {
		format = sniffFormat(br)
	}

	r := &Reader{snaplen: opts.Snaplen, Skipped: map[string]int{}}
	switch format {
	case config.FormatPcap:
		pr, err := pcapgo.NewReader(br)
		if err != nil {
			return nil, err
		}
		r.src, r.first = pr, pr.LinkType()
	case config.FormatPcapNG:
		nr, err := pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, err
		}
		r.src, r.first = nr, nr.LinkType()
	case config.FormatHex:
		r.src, r.first = &hexSource{sc: bufio.NewScanner(br)}, LayerTypeRoMON
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return r, nil
}

func sniffFormat(br *bufio.Reader) string {
	magic, err := br.Peek(4)
	if err != nil {
		return config.FormatHex
	}
	switch {
	case bytes.Equal(magic, []byte{0x0a, 0x0d, 0x0d, 0x0a}):
		return config.FormatPcapNG
	case bytes.Equal(magic, []byte{0xd4, 0xc3, 0xb2, 0xa1}),
		bytes.Equal(magic, []byte{0xa1, 0xb2, 0xc3, 0xd4}),
		bytes.Equal(magic, []byte{0x4d, 0x3c, 0xb2, 0xa1}),
		bytes.Equal(magic, []byte{0xa1, 0xb2, 0x3c, 0x4d}):
		return config.FormatPcap
	default:
		return config.FormatHex
	}
}

// Next returns the next RoMON packet, or io.EOF once the capture is done.
func (r *Reader) Next() (Packet, error) {
	for {
		data, ci, err := r.src.ReadPacketData()
		if err != nil {
			return Packet{}, err
		}
		r.index++

		if r.snaplen > 0 && len(data) > r.snaplen {
			data = data[:r.snaplen]
			ci.CaptureLength = r.snaplen
		}
		if ci.Length < len(data) {
			ci.Length = len(data)
		}

		pkt := gopacket.NewPacket(data, r.first, gopacket.DecodeOptions{NoCopy: true})
		pkt.Metadata().CaptureInfo = ci

		layer, ok := pkt.Layer(LayerTypeRoMON).(*RoMON)
		if !ok {
			reason := "not_romon"
			if pkt.ErrorLayer() != nil {
				reason = "link_error"
			}
			r.Skipped[reason]++
			continue
		}

		wire := len(layer.Contents) + ci.Length - len(data)
		layer.SetWireLength(wire)
		out := Packet{
			Index:      r.index,
			Timestamp:  ci.Timestamp,
			Layer:      layer,
			Payload:    layer.Contents,
			WireLength: wire,
		}
		if eth, ok := pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet); ok {
			out.Src, out.Dst = eth.SrcMAC, eth.DstMAC
		}
		if q, ok := pkt.Layer(layers.LayerTypeDot1Q).(*layers.Dot1Q); ok {
			out.VLAN, out.HasVLAN = q.VLANIdentifier, true
		}
		return out, nil
	}
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// hexSource reads one RoMON frame per line as hex digits. Blank lines and
// lines starting with '#' are ignored; spaces and colons between digits are
// allowed.
type hexSource struct {
	sc   *bufio.Scanner
	line int
}

func (h *hexSource) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	for h.sc.Scan() {
		h.line++
		text := strings.TrimSpace(h.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		data, err := DecodeHex(text)
		if err != nil {
			return nil, gopacket.CaptureInfo{}, fmt.Errorf("line %d: %w", h.line, err)
		}
		return data, gopacket.CaptureInfo{CaptureLength: len(data), Length: len(data)}, nil
	}
	if err := h.sc.Err(); err != nil {
		return nil, gopacket.CaptureInfo{}, err
	}
	return nil, gopacket.CaptureInfo{}, io.EOF
}

// DecodeHex parses hex digits, ignoring whitespace, colons and an optional
// 0x prefix.
func DecodeHex(text string) ([]byte, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "0x")
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', '-':
			return -1
		}
		return r
	}, text)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHexLine, err)
	}
	return data, nil
}
