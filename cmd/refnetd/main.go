package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/refnet-labs/referral-core/internal/growth"
	"github.com/refnet-labs/referral-core/internal/network"
	"github.com/refnet-labs/referral-core/internal/refnetd"
	"github.com/refnet-labs/referral-core/pkg/config"
	"github.com/refnet-labs/referral-core/pkg/logger"
)

func main() {
	var (
		configPath  string
		networkPath string
		grpcAddr    string
		httpAddr    string
		logLevel    string
	)

	pflag.StringVar(&configPath, "config", "", "path to daemon config YAML")
	pflag.StringVar(&networkPath, "network", "", "path to a network spec YAML to preload")
	pflag.StringVar(&grpcAddr, "grpc-addr", "", "gRPC listen address (overrides config)")
	pflag.StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides config)")
	pflag.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	pflag.Parse()

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Error("failed to load config", "path", configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if grpcAddr != "" {
		cfg.GRPCAddr = grpcAddr
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store := refnetd.NewNetworkStore()
	sim := growth.NewSimulator(cfg.Growth)

	if networkPath != "" {
		spec, err := config.LoadNetwork(networkPath)
		if err != nil {
			logger.Error("failed to load network spec", "path", networkPath, "error", err)
			stop()
			os.Exit(1)
		}
		g, err := network.BuildGraph(spec)
		if err != nil {
			logger.Error("failed to build preloaded network", "path", networkPath, "error", err)
			stop()
			os.Exit(1)
		}
		rec, err := store.Create("", g)
		if err != nil {
			logger.Error("failed to register preloaded network", "error", err)
			stop()
			os.Exit(1)
		}
		logger.Info("network preloaded", "network_id", rec.ID, "users", g.Size(), "referrals", g.ReferralCount())
	}

	// TODO: Configure gRPC server security (e.g., TLS, authentication, rate limiting)
	// before using this service in a production environment.
	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthgrpc.HealthCheckResponse_SERVING)
	healthgrpc.RegisterHealthServer(grpcServer, healthSrv)
	reflection.Register(grpcServer)

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen for gRPC", "addr", cfg.GRPCAddr, "error", err)
		stop()
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           refnetd.NewHTTPServer(store, sim).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start servers.
	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(grpcLis); err != nil {
			logger.Error("gRPC server error", "error", err)
			stop()
		}
	}()

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthSrv.SetServingStatus("", healthgrpc.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
}
