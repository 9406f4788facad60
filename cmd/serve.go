// SPDX-License-Identifier: AGPL-3.0-or-later
// DMRHub - Run a DMR network server in a single binary
// Copyright (C) 2023-2026 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// The source code is available at <https://github.com/USA-RedDragon/DMRHub>

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/kb9vww/rdsctl/internal/archive"
	"github.com/kb9vww/rdsctl/internal/config"
	"github.com/kb9vww/rdsctl/internal/http"
	"github.com/kb9vww/rdsctl/internal/logging"
	"github.com/kb9vww/rdsctl/internal/metrics"
	"github.com/kb9vww/rdsctl/internal/pubsub"
	"github.com/kb9vww/rdsctl/internal/rds"
	"github.com/kb9vww/rdsctl/internal/rdswire"
	"github.com/kb9vww/rdsctl/internal/schedule"
	"github.com/kb9vww/rdsctl/internal/tracing"
)

func newServeCommand() *cobra.Command {
	var open bool
	var channel string
	var rbds bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the status server and decode the configured replay source onto it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			logging.Init(string(cfg.LogLevel))

			if open {
				go openDashboard(cfg)
			}

			return runServe(cmd.Context(), cfg, channel, rbds)
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open the dashboard URL in a browser once the server is listening")
	cmd.Flags().StringVar(&channel, "channel", "default", "name under which the replay source is registered and published")
	cmd.Flags().BoolVar(&rbds, "rbds", true, "decode as RBDS (North American) rather than RDS (European)")
	return cmd
}

func openDashboard(cfg *config.Config) {
	time.Sleep(500 * time.Millisecond)
	url := fmt.Sprintf("http://localhost:%d/", cfg.HTTP.Port)
	if err := browser.OpenURL(url); err != nil {
		slog.Warn("failed to open dashboard in browser", "error", err, "url", url)
	}
}

// runServe wires together the archive database, scheduler, tracer, pubsub,
// metrics server, status server, and a decode loop over the configured
// replay source, then blocks until ctx is cancelled or a shutdown signal
// arrives.
func runServe(ctx context.Context, cfg *config.Config, channel string, rbds bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("failed to shut down tracer", "error", err)
		}
	}()

	db, err := archive.MakeDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open archive database: %w", err)
	}
	subscriber := archive.NewSubscriber(db)

	scheduler, err := schedule.New()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := schedule.ScheduleRollup(scheduler, cfg, db); err != nil {
		return fmt.Errorf("failed to schedule archive rollup: %w", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("failed to shut down scheduler", "error", err)
		}
	}()

	go func() {
		if err := metrics.CreateMetricsServer(cfg); err != nil {
			slog.Error("metrics server exited", "error", err)
		}
	}()
	metricsCollector := metrics.NewMetrics()

	ps, err := pubsub.MakePubSub(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pubsub: %w", err)
	}
	defer func() {
		if err := ps.Close(); err != nil {
			slog.Warn("failed to close pubsub", "error", err)
		}
	}()

	registry := http.NewRegistry()
	decoder := rds.NewDecoder(rbds)
	registry.Put(channel, decoder)

	var ready atomic.Bool
	server := http.MakeServer(cfg, registry, ps, &ready, "dev", "dev")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrClosed) {
			slog.Error("status server exited", "error", err)
		}
	}()
	ready.Store(true)

	if cfg.Replay.Source != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decodeLoop(ctx, cfg, channel, decoder, subscriber, ps, metricsCollector)
		}()
	}

	<-ctx.Done()
	server.Stop()
	wg.Wait()
	return nil
}

var snapshotDedup sync.Map

func decodeLoop(ctx context.Context, cfg *config.Config, channel string, decoder *rds.Decoder, subscriber *archive.Subscriber, ps pubsub.PubSub, m *metrics.Metrics) {
	f, err := os.Open(cfg.Replay.Source)
	if err != nil {
		slog.Error("failed to open replay source for serving", "error", err, "source", cfg.Replay.Source)
		return
	}
	defer func() { _ = f.Close() }()

	err = rdswire.ReadStream(f, func(b rdswire.Block) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fields := decoder.Ingest(b)
		snap := decoder.Snapshot()

		if err := subscriber.Observe(channel, fields, snap, time.Now()); err != nil {
			slog.Warn("failed to persist station observation", "error", err, "channel", channel)
		}

		if err := http.PublishSnapshot(ps, &snapshotDedup, channel, snap.PI, uint32(fields), snap); err != nil {
			slog.Warn("failed to publish snapshot", "error", err, "channel", channel)
		}

		groupTypeCounts := make(map[string]uint64, len(snap.Statistics.GroupTypeCount))
		for id, count := range snap.Statistics.GroupTypeCount {
			if count == 0 {
				continue
			}
			groupTypeCounts[fmt.Sprintf("%dA", id)] = count
		}
		m.Observe(channel, snap.Statistics.BlockCount, snap.Statistics.BlockErrorCount,
			snap.Statistics.BlockCorrectedCount, snap.Statistics.GroupCount, snap.Statistics.GroupErrorCount,
			groupTypeCounts)

		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("replay stream ended with error", "error", err, "channel", channel)
	}
}
