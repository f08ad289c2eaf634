package romon

import (
	"fmt"
	"io"
	"strings"
)

// InvalidMarker closes the trace of a frame that could not be fully decoded.
const InvalidMarker = "[|romon]"

// Trace is the rendered form of one frame, one entry per output line.
type Trace []string

func (t Trace) String() string {
	return strings.Join(t, "\n")
}

// Invalid reports whether the trace ends in the invalid marker.
func (t Trace) Invalid() bool {
	return len(t) > 0 && t[len(t)-1] == InvalidMarker
}

// WriteIndented writes every line with prefix in front of it.
func (t Trace) WriteIndented(w io.Writer, prefix string) (int64, error) {
	var total int64
	for _, line := range t {
		n, err := io.WriteString(w, prefix+line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// printer accumulates lines. A line stays open until the next one starts so
// that a failing read still leaves the fields already read on screen.
type printer struct {
	lines []string
	cur   strings.Builder
	open  bool
}

func (p *printer) line(format string, args ...any) {
	p.flush()
	p.open = true
	fmt.Fprintf(&p.cur, format, args...)
}

func (p *printer) add(format string, args ...any) {
	p.open = true
	fmt.Fprintf(&p.cur, format, args...)
}

func (p *printer) flush() {
	if !p.open {
		return
	}
	p.lines = append(p.lines, p.cur.String())
	p.cur.Reset()
	p.open = false
}

func (p *printer) invalid() {
	p.flush()
	p.lines = append(p.lines, InvalidMarker)
}

func (p *printer) trace() Trace {
	p.flush()
	return Trace(p.lines)
}

// hexLines renders b as offset-prefixed lines of sixteen bytes grouped in
// pairs.
func hexLines(b []byte) []string {
	var lines []string
	for off := 0; off < len(b); off += 16 {
		end := off + 16
		if end > len(b) {
			end = len(b)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "0x%04x: ", off)
		row := b[off:end]
		for i := 0; i < len(row); i += 2 {
			if i+1 < len(row) {
				fmt.Fprintf(&sb, " %02x%02x", row[i], row[i+1])
			} else {
				fmt.Fprintf(&sb, " %02x", row[i])
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// printable maps every byte outside printable ASCII to '.', keeping length.
func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		out[i] = c
	}
	return string(out)
}
