package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobmonitor/internal/config"
	"jobmonitor/internal/dashboard"
	"jobmonitor/internal/events"
	"jobmonitor/internal/httpapi"
	"jobmonitor/internal/logging"
	"jobmonitor/internal/remote"
	"jobmonitor/internal/secrets"
	"jobmonitor/internal/telemetry"
)

func main() {
	// Data dir: use env if provided, else local folder.
	dataDir := os.Getenv("JOBMONITOR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	cfg, cfgPath, vr, err := config.LoadUser(dataDir)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger, err := logging.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range vr.Warnings {
		logger.Warn("config warning", zap.String("path", cfgPath), zap.String("warning", w))
	}
	if err := vr.Err(); err != nil {
		logger.Fatal("invalid config", zap.String("path", cfgPath), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, "jobmonitor", cfg.Telemetry.CollectorURL, logger)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracer = func() {}
	}
	defer shutdownTracer()

	tokenAccount := secrets.APIKeyringAccount(cfg.Remote.BaseURL)
	client := remote.New(remote.Config{
		BaseURL:       cfg.Remote.BaseURL,
		Timeout:       cfg.RequestTimeout(),
		RatePerSecond: cfg.Remote.RatePerSecond,
		Burst:         cfg.Remote.Burst,
	}, func() string {
		tok, err := secrets.GetAPIToken(tokenAccount)
		if err != nil {
			logger.Warn("keyring lookup failed", zap.String("account", tokenAccount), zap.Error(err))
			return ""
		}
		return tok
	}, logger)

	hub := events.NewHub(16)
	ctrl := dashboard.New(client, hub, logger, dashboard.Options{
		RefreshInterval: cfg.JobsInterval(),
		CheckInterval:   cfg.Settings.CheckIntervalSeconds,
		RequestTimeout:  cfg.RequestTimeout(),
	})
	ctrl.Mount()

	mux := httpapi.NewMux(httpapi.Deps{
		Dashboard:    ctrl,
		Hub:          hub,
		Logger:       logger,
		Cfg:          cfg,
		CfgPath:      cfgPath,
		CfgWarnings:  vr.Warnings,
		TokenAccount: tokenAccount,
		SetToken:     secrets.SetAPIToken,
		DeleteToken:  secrets.DeleteAPIToken,
	})

	addr := net.JoinHostPort(cfg.App.Bind, strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("listen failed", zap.String("addr", addr), zap.Error(err))
	}

	shutdownToken := os.Getenv("JOBMONITOR_SHUTDOWN_TOKEN")
	if shutdownToken == "" {
		shutdownToken, err = randomToken(32)
		if err != nil {
			logger.Fatal("shutdown token", zap.Error(err))
		}
		// The launcher reads this line to learn the token.
		fmt.Printf("SHUTDOWN_TOKEN=%s\n", shutdownToken)
	}

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(shutdownToken, srv))
	srv.Handler = httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover(logger),
		httpapi.AccessLog(logger),
		httpapi.Cors(cfg.App.AllowedOrigins),
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("dashboard listening",
		zap.String("url", "http://"+addr),
		zap.String("remote", client.BaseURL()),
		zap.String("config", cfgPath),
		zap.Duration("jobs_every", cfg.JobsInterval()))

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", zap.Error(err))
	}

	ctrl.Unmount()
	ctrl.Wait()
	logger.Info("dashboard stopped")
}
