package main

import (
	"fmt"

	"github.com/danmuck/romonctl/internal/capture"
	"github.com/danmuck/romonctl/internal/observability"
	"github.com/danmuck/romonctl/internal/protocol/romon"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "decode HEX...",
		Short:   "Decode RoMON frames given as hex on the command line",
		GroupID: "decode",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, arg := range args {
				data, err := capture.DecodeHex(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				wire := len(data)
				if a.cfg.Snaplen > 0 && len(data) > a.cfg.Snaplen {
					data = data[:a.cfg.Snaplen]
				}
				f, trace, derr := romon.Decode(data, wire)
				observability.RecordFrame(f, derr)

				summary := fmt.Sprintf("#%d RoMON, length %d", i+1, wire)
				if len(data) < wire {
					summary += fmt.Sprintf(" (captured %d)", len(data))
				}
				if _, err := fmt.Fprintln(out, summary); err != nil {
					return err
				}
				if _, err := trace.WriteIndented(out, "\t"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
