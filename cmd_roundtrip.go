package main

import (
	"fmt"

	"github.com/dot5enko/blockframe/codec"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRoundtripCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip",
		Short: "Encode the sample table and decode it again",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := a.cfg.CompressionKind()
			if err != nil {
				return err
			}

			mgr, err := sampleManager(a.managerConfig())
			if err != nil {
				return err
			}
			if a.cfg.Consolidate {
				if err := mgr.ConsolidateInPlace(); err != nil {
					return err
				}
			}

			data, err := codec.Marshal(mgr, codec.Options{Compression: kind})
			if err != nil {
				return err
			}
			a.logger.Info("encoded", "bytes", len(data), "compression", kind.String())

			decoded, err := codec.UnmarshalWith(data, a.managerConfig())
			if err != nil {
				return err
			}

			shared := true
			for _, blk := range decoded.Blocks() {
				shared = shared && blk.RefItems().Same(decoded.Items())
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "frame %d bytes (%s)\n", len(data), kind)

			report := color.New(color.FgGreen)
			if !decoded.Equal(mgr) || !shared {
				report = color.New(color.FgRed)
			}
			report.Fprintf(w, "equal: %t, ref_items shared: %t\n", decoded.Equal(mgr), shared)

			if !decoded.Equal(mgr) {
				return fmt.Errorf("decoded table differs from the original")
			}
			return nil
		},
	}
}
