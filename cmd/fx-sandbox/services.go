package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/service"
	"github.com/t-barz/slimeking-sub004/status"
	"github.com/t-barz/slimeking-sub004/telemetry"
)

// telemetryService exports the status registry over OTLP while running
func telemetryService(cfg telemetry.Config, reg *status.Registry, session string) service.Service {
	var (
		shutdown     func(context.Context) error
		registration metric.Registration
	)
	return service.Func("telemetry", nil,
		func(ctx context.Context) error {
			mp, stop, err := telemetry.Init(ctx, cfg)
			if err != nil {
				return err
			}
			shutdown = stop
			registration, err = status.Observe(mp.Meter("fx-sandbox"), reg, session)
			return err
		},
		func() error {
			if registration != nil {
				registration.Unregister()
				registration = nil
			}
			if shutdown == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err := shutdown(ctx)
			shutdown = nil
			return err
		})
}

// statsServer streams status snapshots over a websocket at /stats
func statsServer(addr string, reg *status.Registry, session string) service.Service {
	mux := http.NewServeMux()
	mux.Handle("/stats", status.StreamHandler(reg, session, time.Second))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	return service.Func("stats-server", nil,
		func(context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			core.Go(func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					log.Printf("fx-sandbox: stats server: %v", err)
				}
			})
			log.Printf("fx-sandbox: streaming stats on ws://%s/stats", ln.Addr())
			return nil
		},
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		})
}
