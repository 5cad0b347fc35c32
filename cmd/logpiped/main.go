// Logpiped is a demonstration daemon for the logpipe pipeline.
//
// It publishes a logging context, configures it from a YAML file plus
// environment overrides, and serves the management endpoint and
// Prometheus metrics over HTTP while emitting heartbeat records.
//
// Usage:
//
//	# Start with defaults (console sink, info level)
//	logpiped
//
//	# Configure via file and environment
//	logpiped -config /etc/logpiped/logging.yaml
//	LOGPIPE_LEVEL=debug logpiped
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
	"github.com/fyrsmithlabs/logpipe/pkg/management"
	"github.com/fyrsmithlabs/logpipe/pkg/pipeline"
)

const serviceName = "logpiped"

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
)

// Overridable for tests.
var (
	stderr io.Writer = os.Stderr
	osExit           = os.Exit
)

// fatalf writes startup failures straight to stderr. Once Bootstrap has
// hijacked the stdlib log, log.Fatalf would flow through the bridge at
// info and be filtered by the bootstrap console's warn threshold,
// exiting without a trace.
func fatalf(format string, args ...any) {
	fmt.Fprintf(stderr, "logpiped: "+format+"\n", args...)
	osExit(1)
}

func main() {
	configPath := flag.String("config", "", "path to logging config YAML")
	listenAddr := flag.String("listen", "localhost:9131", "management/metrics listen address")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("logpiped %s (%s)\n", version, gitCommit)
		os.Exit(0)
	}

	// Early bootstrap so startup problems reach the console even
	// before configuration is loaded.
	logCtx := core.NewContext()
	core.Install(logCtx)
	if err := pipeline.Bootstrap(context.Background()); err != nil {
		fatalf("bootstrap failed: %v", err)
	}

	cfg, err := pipeline.LoadWithFile(*configPath)
	if err != nil {
		fatalf("loading logging config: %v", err)
	}

	factory := pipeline.NewFactory(cfg, pipeline.WithContext(logCtx))
	if err := factory.Configure(context.Background(), prometheus.DefaultRegisterer, serviceName); err != nil {
		fatalf("configuring logging pipeline: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("received signal %v, shutting down", sig)
		cancel()
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if h, ok := management.DefaultRegistry().Lookup(management.WellKnownName); ok {
		e.Any("/logging/*", echo.WrapHandler(http.StripPrefix("/logging", h)))
	}

	go func() {
		if err := e.Start(*listenAddr); err != nil && err != http.ErrServerClosed {
			logCtx.Component("http").Error("server stopped", zap.Error(err))
			cancel()
		}
	}()

	// Heartbeat so the pipeline has something to show on /metrics and
	// through the management endpoint.
	go heartbeat(ctx, logCtx)

	logCtx.Component("main").Info("logpiped started",
		zap.String("version", version),
		zap.String("listen", *listenAddr),
	)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	factory.Stop()
}

func heartbeat(ctx context.Context, logCtx *core.Context) {
	comp := logCtx.Component("heartbeat")
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			comp.Debug("heartbeat", zap.Time("at", t))
		}
	}
}
