package main

import (
	"fmt"

	"github.com/danmuck/romonctl/internal/capture"
	"github.com/danmuck/romonctl/internal/config"
	"github.com/danmuck/romonctl/internal/logging"
	"github.com/danmuck/romonctl/internal/observability"
	"github.com/danmuck/romonctl/internal/protocol/romon"
	"github.com/google/gopacket/layers"
	"github.com/spf13/cobra"
)

type dumpFlags struct {
	format          string
	snaplen         int
	showLink        bool
	checkLength     bool
	etherType       uint16
	metricsTextfile string
	nodes           []string
}

func newDumpCmd(a *app) *cobra.Command {
	var f dumpFlags
	cmd := &cobra.Command{
		Use:     "dump FILE...",
		Short:   "Print the RoMON frames of pcap, pcapng or hex captures",
		GroupID: "decode",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := f.apply(cmd, a.cfg)
			if err := config.Validate(cfg); err != nil {
				return err
			}
			nodes, err := f.nodeIDs()
			if err != nil {
				return err
			}
			return runDump(cmd, cfg, nodes, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", config.FormatAuto, "input format (auto|pcap|pcapng|hex)")
	flags.IntVar(&f.snaplen, "snaplen", 0, "bytes of each packet handed to the decoder (0 = all)")
	flags.BoolVar(&f.showLink, "show-link", true, "print link-layer addresses")
	flags.BoolVar(&f.checkLength, "check-length", false, "report declared frame lengths that differ from the payload")
	flags.Uint16Var(&f.etherType, "ethertype", romon.EtherType, "EtherType carrying RoMON")
	flags.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write decode counters to this node exporter textfile")
	flags.StringSliceVar(&f.nodes, "node", nil, "only print frames from or to this RoMON ID (repeatable)")
	return cmd
}

// apply overlays explicitly set flags on the file configuration.
func (f dumpFlags) apply(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("snaplen") {
		cfg.Snaplen = f.snaplen
	}
	if flags.Changed("show-link") {
		cfg.ShowLink = f.showLink
	}
	if flags.Changed("check-length") {
		cfg.CheckLength = f.checkLength
	}
	if flags.Changed("ethertype") {
		cfg.EtherType = f.etherType
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = f.metricsTextfile
	}
	return cfg
}

func (f dumpFlags) nodeIDs() ([]romon.NodeID, error) {
	ids := make([]romon.NodeID, 0, len(f.nodes))
	for _, raw := range f.nodes {
		id, err := romon.ParseNodeID(raw)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runDump(cmd *cobra.Command, cfg config.Config, nodes []romon.NodeID, paths []string) error {
	log := logging.For("dump")
	if cfg.EtherType != romon.EtherType {
		capture.RegisterEtherType(layers.EthernetType(cfg.EtherType))
	}

	d := capture.NewDumper(cmd.OutOrStdout(), cfg)
	d.MatchNodes(nodes...)
	st, err := d.DumpFiles(paths)
	log.Info().Int("files", len(paths)).Int("frames", st.Frames).Int("invalid", st.Invalid).Int("skipped", st.Skipped).Int("filtered", st.Filtered).Msg("dump finished")

	if cfg.MetricsTextfile != "" {
		if werr := observability.WriteTextfile(cfg.MetricsTextfile); werr != nil {
			log.Error().Err(werr).Str("path", cfg.MetricsTextfile).Msg("metrics textfile")
			if err == nil {
				err = werr
			}
		}
	}
	return err
}
