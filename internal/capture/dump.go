package capture

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/romonctl/internal/config"
	"github.com/danmuck/romonctl/internal/logging"
	"github.com/danmuck/romonctl/internal/observability"
	"github.com/danmuck/romonctl/internal/protocol/romon"
	"github.com/rs/zerolog"
)

// Stats summarises one or more dumped captures.
type Stats struct {
	Frames   int
	Invalid  int
	Skipped  int
	Filtered int
}

func (s *Stats) add(o Stats) {
	s.Frames += o.Frames
	s.Invalid += o.Invalid
	s.Skipped += o.Skipped
	s.Filtered += o.Filtered
}

// Dumper writes the trace of every RoMON packet of a capture.
type Dumper struct {
	out   io.Writer
	cfg   config.Config
	log   zerolog.Logger
	nodes map[romon.NodeID]bool
}

func NewDumper(out io.Writer, cfg config.Config) *Dumper {
	return &Dumper{out: out, cfg: cfg, log: logging.For("capture")}
}

// MatchNodes restricts the dump to frames whose source or target RoMON ID is
// one of ids. No ids means every frame is written.
func (d *Dumper) MatchNodes(ids ...romon.NodeID) {
	if len(ids) == 0 {
		d.nodes = nil
		return
	}
	d.nodes = make(map[romon.NodeID]bool, len(ids))
	for _, id := range ids {
		d.nodes[id] = true
	}
}

func (d *Dumper) matches(f romon.Frame) bool {
	return d.nodes == nil || d.nodes[f.Source] || d.nodes[f.Target]
}

// DumpFiles dumps each path in order. A file that cannot be read is logged
// and reported in the returned error; the remaining files are still dumped.
func (d *Dumper) DumpFiles(paths []string) (Stats, error) {
	var total Stats
	var errs []error
	for _, path := range paths {
		st, err := d.DumpFile(path)
		total.add(st)
		if err != nil {
			d.log.Warn().Str("file", path).Err(err).Msg("capture failed")
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

func (d *Dumper) DumpFile(path string) (Stats, error) {
	r, err := Open(path, Options{Format: d.cfg.Format, Snaplen: d.cfg.Snaplen})
	if err != nil {
		return Stats{}, err
	}
	defer r.Close()

	d.log.Debug().Str("file", path).Msg("capture opened")
	if _, err := fmt.Fprintf(d.out, "%s:\n", path); err != nil {
		return Stats{}, err
	}
	st, err := d.Dump(r)
	if err != nil {
		return st, fmt.Errorf("%s: %w", path, err)
	}
	d.log.Debug().Str("file", path).Int("frames", st.Frames).Int("invalid", st.Invalid).Int("skipped", st.Skipped).Int("filtered", st.Filtered).Msg("capture done")
	return st, nil
}

// Dump writes every packet of r until it is exhausted.
func (d *Dumper) Dump(r *Reader) (Stats, error) {
	var st Stats
	for {
		pkt, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			st.Skipped = r.skipped()
			return st, err
		}
		if !d.matches(pkt.Layer.Frame) {
			st.Filtered++
			continue
		}
		st.Frames++
		if pkt.Layer.Err != nil {
			st.Invalid++
			d.log.Debug().Int("frame", pkt.Index).Err(pkt.Layer.Err).Msg("frame invalid")
		}
		if err := d.WritePacket(pkt); err != nil {
			return st, err
		}
	}
	st.Skipped = r.skipped()
	return st, nil
}

// WritePacket writes the summary line and indented trace of pkt.
func (d *Dumper) WritePacket(pkt Packet) error {
	observability.RecordFrame(pkt.Layer.Frame, pkt.Layer.Err)

	if _, err := io.WriteString(d.out, d.summary(pkt)+"\n"); err != nil {
		return err
	}
	if _, err := pkt.Layer.Trace.WriteIndented(d.out, "\t"); err != nil {
		return err
	}
	if d.cfg.CheckLength {
		if line, ok := lengthMismatch(pkt); ok {
			if _, err := io.WriteString(d.out, "\t"+line+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dumper) summary(pkt Packet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d", pkt.Index)
	if !pkt.Timestamp.IsZero() {
		sb.WriteString(" " + pkt.Timestamp.UTC().Format("15:04:05.000000"))
	}
	if d.cfg.ShowLink && pkt.Src != nil {
		fmt.Fprintf(&sb, " %s > %s,", pkt.Src, pkt.Dst)
	}
	if pkt.HasVLAN {
		fmt.Fprintf(&sb, " vlan %d,", pkt.VLAN)
	}
	fmt.Fprintf(&sb, " RoMON, length %d", pkt.WireLength)
	if len(pkt.Payload) < pkt.WireLength {
		fmt.Fprintf(&sb, " (captured %d)", len(pkt.Payload))
	}
	return sb.String()
}

// lengthMismatch compares the declared frame length with the RoMON length on
// the wire. It only reports; decoding never depends on it.
func lengthMismatch(pkt Packet) (string, bool) {
	if len(pkt.Payload) < 4 {
		return "", false
	}
	declared := int(pkt.Layer.Frame.DeclaredLength)
	if declared == pkt.WireLength {
		return "", false
	}
	return fmt.Sprintf("frame length %d differs from payload length %d", declared, pkt.WireLength), true
}

func (r *Reader) skipped() int {
	n := 0
	for reason, count := range r.Skipped {
		observability.RecordSkipped(reason, count)
		n += count
	}
	return n
}
