//----------------------------------------------------------------------
// This file is part of leatea-routing.
// Copyright (C) 2022 Bernd Fix >Y<
//
// leatea-routing is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// leatea-routing is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package cli

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rimk4/SONetwork/channel"
	"github.com/Rimk4/SONetwork/cmd/simrunner/internal/ticker"
	"github.com/Rimk4/SONetwork/command"
	"github.com/Rimk4/SONetwork/core"
	"github.com/Rimk4/SONetwork/internal/config"
	"github.com/Rimk4/SONetwork/internal/logging"
	"github.com/Rimk4/SONetwork/metrics"
	"github.com/Rimk4/SONetwork/node"
	"github.com/Rimk4/SONetwork/persist"
	"github.com/Rimk4/SONetwork/visualize"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the mesh network simulation",
	RunE:  runSimulation,
}

func runSimulation(_ *cobra.Command, _ []string) error {
	cfg := config.Load()

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	core.SetConfiguration(&core.Config{
		Range:        cfg.Protocol.Range,
		MaxVelocity:  cfg.Protocol.MaxVelocity,
		ScanInterval: cfg.Protocol.ScanInterval,
		MapTimeout:   cfg.Protocol.MapTimeout,
		RouteTTL:     cfg.Protocol.RouteTTL,
		MaxHops:      cfg.Protocol.MaxHops,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		sugar.Info("received shutdown signal")
		cancel()
	}()
	if cfg.Network.Duration > 0 {
		var durCancel context.CancelFunc
		ctx, durCancel = context.WithTimeout(ctx, cfg.Network.Duration)
		defer durCancel()
	}

	clock := core.NewLiveClock()
	rng := rand.New(rand.NewSource(cfg.Network.Seed))

	ch := channel.New(clock, rng)

	var loaded *persist.Snapshot
	if cfg.Snapshot.LoadPath != "" {
		snap, err := persist.Load(cfg.Snapshot.LoadPath)
		if err != nil {
			return err
		}
		loaded = &snap
		sugar.Infow("resumed snapshot", "run_id", snap.RunID, "nodes", len(snap.Nodes))
	}

	runID := persist.NewRunID()
	if loaded != nil {
		runID = loaded.RunID
	}

	cmdSink := command.NewStdinSink(os.Stdin, os.Stdout)

	nodes := make([]*node.Node, 0, cfg.Network.Nodes)
	events := make(chan *core.Event, 256)
	listener := func(ev *core.Event) {
		select {
		case events <- ev:
		default:
		}
	}

	for i := 0; i < cfg.Network.Nodes; i++ {
		id := int32(i + 1)
		pos := core.Position{
			X: rng.Float64() * cfg.Network.FieldWidth,
			Y: rng.Float64() * cfg.Network.FieldDepth,
		}
		if loaded != nil {
			for _, rec := range loaded.Nodes {
				if rec.ID == id {
					pos = rec.Position
				}
			}
		}
		n := node.New(node.Config{
			ID:       id,
			Clock:    clock,
			Channel:  ch,
			Position: pos,
			Bitrate:  core.MaxBitrate,
			Events:   listener,
			Logger:   sugar,
			Cmd:      cmdSink,
			Seed:     cfg.Network.Seed + int64(id),
		})
		if err := ch.AddNode(n); err != nil {
			return err
		}
		nodes = append(nodes, n)
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(metrics.NewCollector(ch))
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			sugar.Infow("metrics endpoint listening", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				sugar.Errorw("metrics server error", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return ticker.Run(gctx, core.TickInterval, func() { ch.Tick() })
	})
	for _, n := range nodes {
		n := n
		group.Go(func() error { return n.Run(gctx) })
	}
	if cfg.Visualize.Enabled {
		interval := cfg.Visualize.Interval
		if interval <= 0 {
			interval = 5 * time.Second
		}
		sink := visualize.NewSVGSink(cfg.Visualize.Dir, cfg.Network.FieldWidth, cfg.Network.FieldDepth)
		group.Go(func() error {
			return ticker.Run(gctx, interval, func() {
				snap := snapshotFrom(nodes, cfg.Protocol.Range)
				if _, err := sink.Render(snap); err != nil {
					sugar.Warnw("visualize render failed", "error", err)
				}
			})
		})
	}
	group.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-events:
				logEvent(sugar, ev)
			}
		}
	})

	err = group.Wait()

	if cfg.Snapshot.SavePath != "" {
		snap := persist.Snapshot{
			RunID:   runID,
			SavedAt: clock.Now(),
			Anchor:  clock.Now(),
		}
		for _, n := range nodes {
			snap.Nodes = append(snap.Nodes, persist.NodeRecord{
				ID:       n.ID(),
				Position: n.Position(),
				Routes:   n.RoutingSnapshot(),
			})
		}
		if saveErr := persist.Save(cfg.Snapshot.SavePath, snap); saveErr != nil {
			sugar.Errorw("snapshot save failed", "error", saveErr)
		}
	}

	if err != nil && err != context.Canceled && err != context.DeadlineExceeded {
		return err
	}
	return nil
}

func snapshotFrom(nodes []*node.Node, coverage float64) visualize.Snapshot {
	snap := visualize.Snapshot{}
	for _, n := range nodes {
		snap.Nodes = append(snap.Nodes, visualize.NodePosition{
			NodeID:   n.ID(),
			Position: n.Position(),
			Range:    coverage,
		})
	}
	return snap
}

func logEvent(log *zap.SugaredLogger, ev *core.Event) {
	log.Debugw("event", "type", ev.Type, "node", ev.NodeID, "ref", ev.Ref, "val", ev.Val)
}
