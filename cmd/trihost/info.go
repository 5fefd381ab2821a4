// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cogentcore.org/trihost/host"
	"github.com/spf13/cobra"
)

func newInfoCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the surface capabilities and the selected configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := host.New(o.cfg, host.Options{Out: o.out, Hidden: true})
			if err != nil {
				return err
			}
			defer h.Close()
			host.WriteInfo(cmd.OutOrStdout(), h.Session)
			return nil
		},
	}
}
