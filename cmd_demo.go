package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/blockframe/manager"
	"github.com/dot5enko/blockframe/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dtypeColors = map[schema.FieldType]color.Attribute{
	schema.BoolFieldType:       color.FgMagenta,
	schema.Int64FieldType:      color.FgBlue,
	schema.Float64FieldType:    color.FgGreen,
	schema.Complex128FieldType: color.FgCyan,
	schema.ObjectFieldType:     color.FgYellow,
	schema.DatetimeFieldType:   color.FgRed,
}

func newDemoCmd(a *app) *cobra.Command {
	var consolidate, dump bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build the sample table and print its blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := sampleManager(a.managerConfig())
			if err != nil {
				return err
			}

			if consolidate || a.cfg.Consolidate {
				if err := mgr.ConsolidateInPlace(); err != nil {
					return err
				}
			}

			return printLayout(cmd.OutOrStdout(), mgr, dump)
		},
	}

	cmd.Flags().BoolVar(&consolidate, "consolidate", false, "merge same-dtype blocks first")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump every block with spew")

	return cmd
}

func printLayout(w io.Writer, mgr *manager.BlockManager, dump bool) error {
	items, rows := mgr.Shape()
	fmt.Fprintf(w, "%d columns x %d rows in %d blocks (mixed: %t)\n", items, rows, mgr.NBlocks(), mgr.IsMixedDtype())

	for bi, blk := range mgr.Blocks() {
		locs, err := blk.RefLocs()
		if err != nil {
			return err
		}

		c := color.New(dtypeColors[blk.Type()])
		c.Fprintf(w, "[%d] %-14s", bi, blk.Type())
		fmt.Fprintf(w, " items %s ref_locs %v\n", blk.Items(), locs)

		if dump {
			spew.Fdump(w, blk)
		}
	}

	ids, err := mgr.BlockIDVector()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "block ids %v\n", ids)
	return nil
}
