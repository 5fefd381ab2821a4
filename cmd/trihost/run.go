// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cogentcore.org/trihost/host"
	"github.com/spf13/cobra"
)

func newRunCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the window and render until quit (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context())
		},
	}
}

// run renders until the user quits. A rendering failure ends the
// loop like a quit does, after logging what went wrong; only a
// failure to start is returned as an error.
func (o *options) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	h, err := host.New(o.cfg, host.Options{Out: o.out})
	if err != nil {
		return err
	}
	defer h.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := h.Run(ctx); err != nil {
		slog.Error("rendering stopped", "err", err)
	}
	return nil
}
