package observability

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/danmuck/romonctl/internal/protocol/romon"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "romonctl",
			Subsystem: "decode",
			Name:      "frames_total",
			Help:      "RoMON frames decoded, by subtype.",
		},
		[]string{"subtype"},
	)
	framesInvalid = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "romonctl",
			Subsystem: "decode",
			Name:      "invalid_total",
			Help:      "RoMON frames that ended in a truncated or invalid read.",
		},
		[]string{"subtype", "reason"},
	)
	attributesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "romonctl",
			Subsystem: "decode",
			Name:      "attributes_total",
			Help:      "Discovery attributes decoded, by tag.",
		},
		[]string{"tag"},
	)
	packetsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "romonctl",
			Subsystem: "capture",
			Name:      "packets_skipped_total",
			Help:      "Captured packets that carried no RoMON layer.",
		},
		[]string{"reason"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesDecoded, framesInvalid, attributesDecoded, packetsSkipped)
	})
}

// RecordFrame counts one decoded frame and its attributes. err is the
// decode error, if any.
func RecordFrame(f romon.Frame, err error) {
	RegisterMetrics()
	subtype := SubtypeLabel(f.Subtype)
	framesDecoded.WithLabelValues(subtype).Inc()
	if err != nil {
		framesInvalid.WithLabelValues(subtype, ReasonLabel(err)).Inc()
	}
	if f.Discovery != nil {
		for _, attr := range f.Discovery.Attributes {
			attributesDecoded.WithLabelValues(TagLabel(attr.Tag)).Inc()
		}
	}
}

func RecordSkipped(reason string, n int) {
	RegisterMetrics()
	packetsSkipped.WithLabelValues(reason).Add(float64(n))
}

// WriteTextfile writes the default registry in the node exporter textfile
// format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func SubtypeLabel(s romon.Subtype) string {
	if s.Known() {
		return s.String()
	}
	return "0x" + strconv.FormatUint(uint64(s), 16)
}

func TagLabel(t romon.Tag) string {
	if name := t.String(); name != "Unknown" {
		return name
	}
	return strconv.Itoa(int(t))
}

func ReasonLabel(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, romon.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, romon.ErrTruncated):
		return "truncated"
	default:
		return "other"
	}
}
