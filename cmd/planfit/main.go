package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"

	planfit "github.com/claude/planfit"
	"github.com/claude/planfit/internal/ai"
	"github.com/claude/planfit/internal/assets"
	"github.com/claude/planfit/internal/config"
	"github.com/claude/planfit/internal/export"
	"github.com/claude/planfit/internal/mcp"
	"github.com/claude/planfit/internal/planner"
	"github.com/claude/planfit/internal/server"
	"github.com/claude/planfit/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	mcpMode := flag.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	flag.Parse()

	// In MCP mode stdout carries the protocol; logs go to stderr.
	logOut := os.Stdout
	if *mcpMode {
		logOut = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("PlanFit starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := store.RunMigrations(cfg.Database.Path, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Open database
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	log.Info("database ready", "path", cfg.Database.Path)

	// Asset directories
	images, err := assets.NewImageCache(cfg.Assets.ImagesDir())
	if err != nil {
		log.Error("failed to create image cache", "error", err)
		os.Exit(1)
	}
	audio, err := assets.NewAudioLog(cfg.Assets.AudioDir(), cfg.Assets.MotivationLog())
	if err != nil {
		log.Error("failed to create audio log", "error", err)
		os.Exit(1)
	}

	// AI gateway and services
	gateway := ai.New(ai.Config{
		ChatAPIKey:   cfg.AI.ChatAPIKey,
		MediaAPIKey:  cfg.AI.MediaAPIKey,
		MediaBaseURL: cfg.AI.MediaBaseURL,
		PlanModels:   cfg.AI.PlanModels,
		TextModels:   cfg.AI.TextModels,
		ImageModel:   cfg.AI.ImageModel,
		ImageSize:    cfg.AI.ImageSize,
		SpeechModel:  cfg.AI.SpeechModel,
		Voice:        cfg.AI.Voice,
	}, log)
	pdf := export.NewPDFRenderer(cfg.Export.ChromePath)
	svc := planner.New(gateway, images, audio, st, pdf, log)

	if *mcpMode {
		log.Info("serving MCP over stdio")
		if err := mcpserver.ServeStdio(mcp.New(svc, Version, log)); err != nil {
			log.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Create server
	srv := server.New(svc, cfg.Auth.APIKey, log)

	// Serve embedded frontend
	webStatic, err := fs.Sub(planfit.WebFS, "web/static")
	if err != nil {
		log.Error("failed to load embedded frontend", "error", err)
		os.Exit(1)
	}
	srv.SetFrontend(webStatic)

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
