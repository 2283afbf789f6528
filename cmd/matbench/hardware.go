// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/matbench/bench"
)

func newHardwareCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "hardware",
		Short: "Print the CPU and runtime details recorded with every report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hw := bench.DetectHardware()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(hw)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			if err := enc.Encode(hw); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of YAML")
	return cmd
}
