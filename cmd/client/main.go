package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garbagesocial/gsclient/internal/config"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/service"
	"github.com/garbagesocial/gsclient/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const statusInterval = 5 * time.Second

var (
	onlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	offlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func main() {
	printBuildInfo()

	// a missing .env is fine; env vars and flags still apply
	_ = godotenv.Load()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger("gs-client")
	if cfg.Log.File != "" {
		log = logger.NewFileLogger("gs-client", cfg.Log.File)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := service.NewClientServices(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	services.Start(ctx)
	defer services.Stop()

	if cfg.Metrics.Address != "" {
		go serveMetrics(cfg.Metrics.Address, log)
	}

	go printStatusLoop(ctx, services)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}

func serveMetrics(address string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Info().Str("address", address).Msg("metrics endpoint listening")
	if err := http.ListenAndServe(address, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics endpoint failed")
	}
}

func printStatusLoop(ctx context.Context, services *service.ClientServices) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println(renderStatus(services.SyncState()))
		}
	}
}

func renderStatus(snap models.SyncSnapshot) string {
	badge := onlineStyle.Render("● online")
	switch {
	case snap.OfflineMode:
		badge = offlineStyle.Render("● offline (forced)")
	case !snap.IsOnline:
		badge = offlineStyle.Render("● offline")
	}

	status := badge
	if snap.IsSyncing {
		status += dimStyle.Render("  syncing…")
	}
	if snap.PendingOperations > 0 {
		status += dimStyle.Render(fmt.Sprintf("  %d pending", snap.PendingOperations))
	}
	return status
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
