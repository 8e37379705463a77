package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/ledger"
	"github.com/danielpatrickdp/lattice-stage/internal/probe"
	"github.com/danielpatrickdp/lattice-stage/internal/report"
	"github.com/danielpatrickdp/lattice-stage/internal/telemetry"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

// scanWidth is the sweep length of the moving monitor points.
const scanWidth = 60

func newMonitorCmd(a *app) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Audit a synthetic snapshot stream and track trust",
		Long: `Run a headless verifier session. Every tick two moving points and two fixed
anchors are normalized with the configured ranges and audited; the motif, trust, angle
and protocol are printed, recorded in the ledger and exported as Prometheus metrics
when --metrics-addr is set. Stops after --ticks audits (0 = until interrupted).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runMonitor(ctx, cmd, a, seed)
		},
	}
	f := cmd.Flags()
	f.Duration("interval", 250*time.Millisecond, "time between audits")
	f.Int("ticks", 0, "stop after this many audits (0 = until interrupted)")
	f.String("metrics-addr", "", "serve /metrics on this address, e.g. :9109")
	f.String("ledger-dsn", "", "sqlite DSN for the audit ledger (default in-memory)")
	f.Uint64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func runMonitor(ctx context.Context, cmd *cobra.Command, a *app, seed uint64) error {
	cfg := a.cfg
	store, err := ledger.NewStore(cfg.Ledger.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	if cfg.Monitor.MetricsAddr != "" {
		shutdown, err := serveMetrics(cfg.Monitor.MetricsAddr, reg, a.logger)
		if err != nil {
			return err
		}
		defer shutdown()
		a.logger.Info("serving metrics", "addr", cfg.Monitor.MetricsAddr)
	}

	cls := classifier.New(cfg.ClassifierConfig(), classifier.WithLogger(a.logger), classifier.WithRecorder(metrics))
	v := verifier.New(cfg.VerifierConfig(),
		verifier.WithClassifier(cls),
		verifier.WithLogger(a.logger),
		verifier.WithObserver(ledger.NewObserver(store, "monitor", a.logger)),
		verifier.WithObserver(metrics),
	)
	a.logger.Info("monitor started", "session", v.SessionID(), "interval", cfg.Monitor.Interval, "ticks", cfg.Monitor.Ticks)

	limiter := rate.NewLimiter(rate.Every(cfg.Monitor.Interval), 1)
	scanner := probe.NewScanner(probe.New(seed), scanWidth)
	out := cmd.OutOrStdout()
	for cfg.Monitor.Ticks == 0 || scanner.Tick() < cfg.Monitor.Ticks {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			return fmt.Errorf("pace: %w", err)
		}
		audit, err := v.AuditSnapshot(scanner.Next(), cfg.Ranges)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, report.AuditLine(audit))
	}

	a.logger.Info("monitor stopped", "session", v.SessionID(), "audits", scanner.Tick(), "trust", v.Trust())
	return nil
}

// serveMetrics starts a /metrics endpoint and returns its shutdown func.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
