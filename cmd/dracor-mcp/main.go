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

	"github.com/joho/godotenv"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/server"
)

const (
	ExitCodeOK    = 0
	ExitCodeError = 1
)

func main() {
	// Optional .env for local development; real environment wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(ExitCodeError)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup error: %v\n", err)
		os.Exit(ExitCodeError)
	}

	srv, err := buildServer(cfg, log)
	if err != nil {
		log.Error("server setup failed", "error", err)
		os.Exit(ExitCodeError)
	}

	if err := run(srv, cfg, log); err != nil {
		log.Error("serving failed", "error", err)
		os.Exit(ExitCodeError)
	}

	shutdown(srv, log)

	os.Exit(ExitCodeOK)
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:   cfg.Logger.Level,
		Format:  cfg.Logger.Format,
		Service: cfg.Logger.Service,
		Version: cfg.Logger.Version,
	})
}

// buildServer wires the server, registers the full MCP surface and
// starts serving the configured transport.
func buildServer(cfg *config.Config, log *logger.Logger) (*server.Server, error) {
	log.Info("starting dracor-mcp",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"api", cfg.DraCor.BaseURL,
		"version", cfg.Logger.Version)

	srv, err := server.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	if err := registerAllTools(srv, log); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	if err := registerAllResources(srv, log); err != nil {
		return nil, fmt.Errorf("register resources: %w", err)
	}

	if err := registerAllPrompts(srv, log); err != nil {
		return nil, fmt.Errorf("register prompts: %w", err)
	}

	ctx := context.Background()
	if err := srv.StartMCP(ctx); err != nil {
		return nil, fmt.Errorf("start MCP server: %w", err)
	}

	return srv, nil
}

// run serves the operational endpoints and blocks until a shutdown
// signal arrives or either server fails.
func run(srv *server.Server, cfg *config.Config, log *logger.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Info("server up",
		"ops_endpoint", fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port),
		"transport", cfg.MCP.Transport)

	select {
	case sig := <-sigChan:
		log.Info("shutdown signal received", "signal", sig.String())
		return nil
	case err := <-errChan:
		return err
	case err := <-srv.ServeErr():
		return err
	}
}

// shutdown stops the MCP transport first so clients see a clean close,
// then the ops listener. Each side gets the same 5s deadline.
func shutdown(srv *server.Server, log *logger.Logger) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.StopMCP(shutdownCtx); err != nil {
		log.Error("MCP server shutdown failed", "error", err)
	} else {
		log.Info("MCP server stopped")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("ops server shutdown failed", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Error("ops server close failed", "error", closeErr)
		}
	} else {
		log.Info("ops server stopped")
	}

	log.Info("shutdown complete")
}
