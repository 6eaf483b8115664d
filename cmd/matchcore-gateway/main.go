// Command matchcore-gateway runs a single-symbol matching engine behind a
// minimal HTTP/WS gateway. It is a demonstration of the engine's external
// interface, not a production sequencer: no persistence, no risk checks, no
// multi-symbol routing.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Aidin1998/matchcore/internal/config"
	"github.com/Aidin1998/matchcore/internal/gateway"
	"github.com/Aidin1998/matchcore/internal/trading/engine"
	"github.com/Aidin1998/matchcore/internal/trading/orderbook"
	"github.com/Aidin1998/matchcore/pkg/logger"
)

func main() {
	cfgPath := os.Getenv("MATCHCORE_CONFIG_FILE")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	registry := prometheus.NewRegistry()
	metrics := orderbook.NewMetrics(registry)

	book, err := orderbook.New(cfg.Capacity, cfg.MaxPrice)
	if err != nil {
		zapLogger.Fatal("failed to construct order book", zap.Error(err))
	}

	eng := engine.New(zapLogger, metrics)
	srv := gateway.New(zapLogger, eng, book)
	go srv.Run()

	mux := http.NewServeMux()
	mux.Handle("/", srv.Handler())
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	addr := ":8080"
	httpServer := &http.Server{Addr: addr, Handler: mux}

	go func() {
		zapLogger.Info("starting gateway", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("gateway server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down gateway")
	srv.Stop()
	if err := httpServer.Close(); err != nil {
		zapLogger.Error("error during shutdown", zap.Error(err))
	}
	fmt.Println("gateway exited")
}
