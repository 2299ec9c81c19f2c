//go:debug httpmuxgo121=0

// Command server runs the valley-oracle prediction and seed-search API.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"valley-oracle/pkg/config"
	"valley-oracle/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	cfg.ConfigureLogger()

	srv := server.New(cfg, logrus.StandardLogger())

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.ServerPort))
	if err != nil {
		logrus.WithError(err).WithField("port", cfg.ServerPort).Fatal("failed to listen")
	}

	executeServerLifecycle(srv, listener, cfg)
}

// executeServerLifecycle serves until SIGINT/SIGTERM, then drains with
// the configured shutdown timeout.
func executeServerLifecycle(srv *server.Server, listener net.Listener, cfg *config.Config) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(listener)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logrus.WithError(err).Fatal("server stopped unexpectedly")
		}
	case sig := <-sigCh:
		logrus.WithField("signal", sig.String()).Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("graceful shutdown failed")
			os.Exit(1)
		}
		logrus.Info("shutdown complete")
	}
}
