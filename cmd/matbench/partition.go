// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/matbench/matmul"
)

func newPartitionCmd() *cobra.Command {
	var rows, threads int
	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Show how the thread strategy splits rows between workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rows < 0 {
				return fmt.Errorf("--rows must be >= 0, got %d", rows)
			}
			if threads < 1 {
				return fmt.Errorf("%w: --threads %d", matmul.ErrInvalidWorkers, threads)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Worker\tRows\tCount")
			for i, r := range matmul.Partition(rows, threads) {
				fmt.Fprintf(tw, "%d\t%v\t%d\n", i, r, r.Len())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 1000, "Number of rows to split")
	cmd.Flags().IntVarP(&threads, "threads", "t", 8, "Number of workers")
	return cmd
}
