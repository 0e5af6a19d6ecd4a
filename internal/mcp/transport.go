package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"dracor-mcp/internal/logger"
)

// serveStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the transport MCP inspectors and desktop clients use.
func serveStdio(ctx context.Context, mcpServer *server.MCPServer, log *logger.Logger) error {
	stdioServer := server.NewStdioServer(mcpServer)

	log.Info("mcp server listening on stdio")

	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// serveStreamableHTTP runs the MCP server as a streamable HTTP server on
// addr until ctx is cancelled.
func serveStreamableHTTP(ctx context.Context, mcpServer *server.MCPServer, addr string, log *logger.Logger) error {
	httpServer := &http.Server{Addr: addr}
	streamServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStreamableHTTPServer(httpServer),
	)

	log.Info("mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("mcp http server shutting down")
		if err := streamServer.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
