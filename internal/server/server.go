package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/dracor"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/resources"
	"dracor-mcp/internal/tools"
	"dracor-mcp/internal/tools/adapters"
)

// serverInstructions is sent to MCP clients during initialization and
// orients them on the exposed surface.
const serverInstructions = `This server exposes DraCor, the Drama Corpora Platform: TEI-encoded plays
organized in language corpora (e.g. "ger", "rus", "shake"), with structural
metrics and character network data derived from them.

Tools cover corpus listings, play metadata and metrics, character lists,
spoken text and stage directions, full-text search, Wikidata lookups, the
DTS (Distributed Text Services) endpoints and the platform documentation.
Admin tools (corpus creation, TEI upload, corpus deletion) require eXist-DB
credentials and only work against instances that accept them.

Plays are addressed by corpus name plus play name, e.g. corpus "ger" and
play "lessing-emilia-galotti". Resources expose the corpus catalog under
corpora:// and registry:// URIs; prompts provide drama analysis workflows.`

// HealthResponse is the body served at /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Tools     string `json:"tools"`
	Resources string `json:"resources"`
}

// ReadyResponse is the body served at /ready
type ReadyResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

// ToolsHealthResponse represents the tool registry health response
type ToolsHealthResponse struct {
	Status          string                `json:"status"`
	Timestamp       string                `json:"timestamp"`
	Summary         ToolHealthSummary     `json:"summary"`
	Tools           map[string]ToolDetail `json:"tools"`
	CircuitBreakers map[string]string     `json:"circuit_breakers,omitempty"`
}

// ToolHealthSummary aggregates tool counts by lifecycle status
type ToolHealthSummary struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Loaded     int `json:"loaded"`
	Registered int `json:"registered"`
	Error      int `json:"error"`
	Disabled   int `json:"disabled"`
}

// ToolDetail describes a single tool in the health response
type ToolDetail struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	Version      string `json:"version"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ResourcesHealthResponse represents the resource registry health response
type ResourcesHealthResponse struct {
	Status          string                    `json:"status"`
	Timestamp       string                    `json:"timestamp"`
	Summary         ResourceHealthSummary     `json:"summary"`
	Resources       map[string]ResourceDetail `json:"resources"`
	CircuitBreakers map[string]string         `json:"circuit_breakers,omitempty"`
}

// ResourceHealthSummary aggregates resource counts by lifecycle status
type ResourceHealthSummary struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Loaded     int `json:"loaded"`
	Registered int `json:"registered"`
	Error      int `json:"error"`
	Disabled   int `json:"disabled"`
}

// ResourceDetail describes a single resource in the health response
type ResourceDetail struct {
	URI          string `json:"uri"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	MimeType     string `json:"mime_type"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Server bundles the MCP server with an operational HTTP endpoint for
// health and readiness checks.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	config     *config.Config
	mux        *http.ServeMux
	startTime  time.Time

	client           *dracor.Client
	mcpServer        mcp.MCPServer
	adapter          adapters.LibraryAdapter
	toolRegistry     tools.ToolRegistry
	resourceRegistry resources.ResourceRegistry

	serveCancel context.CancelFunc
	serveErr    chan error
}

// New creates a server instance with its MCP stack wired but not started
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	mux := http.NewServeMux()

	client := dracor.New(cfg.DraCor, log)

	impl := mcp.Implementation{
		Name:    cfg.MCP.Name,
		Version: cfg.MCP.Version,
	}
	mcpServer := mcp.NewServer(impl, cfg, log, mcp.WithInstructions(serverInstructions))

	adapter := adapters.NewMark3LabsAdapter(cfg, log, mcpServer)

	toolRegistry, err := tools.NewRegistryFactory(cfg, log, adapter).CreateRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to create tool registry: %w", err)
	}

	resourceRegistry, err := resources.NewRegistryFactory(cfg, log, adapter).CreateRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to create resource registry: %w", err)
	}

	server := &Server{
		logger:    log,
		config:    cfg,
		mux:       mux,
		startTime: time.Now(),
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:        mux,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		},
		client:           client,
		mcpServer:        mcpServer,
		adapter:          adapter,
		toolRegistry:     toolRegistry,
		resourceRegistry: resourceRegistry,
	}

	server.setupRoutes()

	return server, nil
}

// ToolRegistry returns the tool registry for registration
func (s *Server) ToolRegistry() tools.ToolRegistry {
	return s.toolRegistry
}

// ResourceRegistry returns the resource registry for registration
func (s *Server) ResourceRegistry() resources.ResourceRegistry {
	return s.resourceRegistry
}

// Adapter returns the MCP library adapter. Resource templates and prompts
// have no registry lifecycle and register through the adapter directly.
func (s *Server) Adapter() adapters.LibraryAdapter {
	return s.adapter
}

// Client returns the DraCor API client shared by all tool services
func (s *Server) Client() *dracor.Client {
	return s.client
}

// StartMCP loads all registered entities into the MCP server and starts
// serving the configured transport in the background.
func (s *Server) StartMCP(ctx context.Context) error {
	if err := s.toolRegistry.Start(ctx); err != nil {
		return fmt.Errorf("failed to start tool registry: %w", err)
	}

	if err := s.resourceRegistry.Start(ctx); err != nil {
		return fmt.Errorf("failed to start resource registry: %w", err)
	}

	if err := s.toolRegistry.LoadTools(ctx); err != nil {
		return fmt.Errorf("failed to load tools: %w", err)
	}

	if err := s.toolRegistry.ValidateTools(ctx); err != nil {
		return fmt.Errorf("tool validation failed: %w", err)
	}

	if err := s.resourceRegistry.LoadResources(ctx); err != nil {
		return fmt.Errorf("failed to load resources: %w", err)
	}

	if err := s.resourceRegistry.ValidateResources(ctx); err != nil {
		return fmt.Errorf("resource validation failed: %w", err)
	}

	if err := s.adapter.Start(ctx); err != nil {
		return fmt.Errorf("failed to start MCP adapter: %w", err)
	}

	serveCtx, cancel := context.WithCancel(context.Background())
	s.serveCancel = cancel
	s.serveErr = make(chan error, 1)

	go func() {
		s.logger.Info("serving MCP requests",
			"transport", s.config.MCP.Transport,
		)

		if err := s.mcpServer.Serve(serveCtx); err != nil && serveCtx.Err() == nil {
			s.logger.Error("MCP serve loop failed", "error", err)
			s.serveErr <- err
		}
	}()

	s.logger.Info("MCP server started",
		"tools", len(s.toolRegistry.List()),
		"resources", len(s.resourceRegistry.List()),
	)

	return nil
}

// StopMCP stops the serve loop, the adapter and both registries
func (s *Server) StopMCP(ctx context.Context) error {
	if s.serveCancel != nil {
		s.serveCancel()
		s.serveCancel = nil
	}

	var errs []string

	if err := s.adapter.Stop(ctx); err != nil {
		errs = append(errs, fmt.Sprintf("adapter stop: %v", err))
	}

	if err := s.resourceRegistry.Stop(ctx); err != nil {
		errs = append(errs, fmt.Sprintf("resource registry stop: %v", err))
	}

	if err := s.toolRegistry.Stop(ctx); err != nil {
		errs = append(errs, fmt.Sprintf("tool registry stop: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("MCP shutdown errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ServeErr reports a fatal error from the background MCP serve loop
func (s *Server) ServeErr() <-chan error {
	return s.serveErr
}

// ListenAndServe starts the operational HTTP server
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the operational HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Close immediately closes the operational HTTP server
func (s *Server) Close() error {
	return s.httpServer.Close()
}

// setupRoutes mounts the operational endpoints
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/ready", s.handleReady)
	s.mux.HandleFunc("/tools/health", s.handleToolsHealth)
	s.mux.HandleFunc("/resources/health", s.handleResourcesHealth)
}

// handleHealth reports liveness plus a roll-up of both registries.
// Probes hit this endpoint constantly, so request logging stays at debug.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("serving health check",
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
	)

	toolsHealth := s.toolRegistry.Health()
	resourcesHealth := s.resourceRegistry.Health()

	status := "healthy"
	if toolsHealth.Status != "healthy" || resourcesHealth.Status != "healthy" {
		status = "degraded"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   s.config.Logger.Service,
		Version:   s.config.Logger.Version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Tools:     toolsHealth.Status,
		Resources: resourcesHealth.Status,
	}

	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("health response encoding failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// handleReady handles readiness check requests. The server is ready once
// the MCP adapter is running.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("serving readiness check",
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
	)

	status := "ready"
	code := http.StatusOK
	if s.adapter == nil || !s.adapter.IsRunning() {
		status = "not ready"
		code = http.StatusServiceUnavailable
	}

	response := ReadyResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   s.config.Logger.Service,
		Version:   s.config.Logger.Version,
	}

	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("readiness response encoding failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)
	w.Write(body)
}

// handleToolsHealth reports per-tool status and a registry roll-up
func (s *Server) handleToolsHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("serving tools health",
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
	)

	registryHealth := s.toolRegistry.Health()
	toolList := s.toolRegistry.List()

	summary := s.buildToolHealthSummary(toolList)

	details := make(map[string]ToolDetail, len(toolList))
	for _, info := range toolList {
		detail := ToolDetail{
			Name:        info.Name,
			Status:      string(info.Status),
			Description: info.Description,
			Version:     info.Version,
		}
		if info.Status == tools.ToolStatusError {
			detail.ErrorMessage = "tool failed to load or validate"
		}
		details[info.Name] = detail
	}

	response := ToolsHealthResponse{
		Status:          s.determineToolsOverallHealth(summary, registryHealth),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Summary:         summary,
		Tools:           details,
		CircuitBreakers: registryHealth.CircuitBreakers,
	}

	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("tools health response encoding failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// buildToolHealthSummary counts tools by lifecycle status
func (s *Server) buildToolHealthSummary(toolList []tools.ToolInfo) ToolHealthSummary {
	summary := ToolHealthSummary{Total: len(toolList)}

	for _, info := range toolList {
		switch info.Status {
		case tools.ToolStatusActive:
			summary.Active++
		case tools.ToolStatusLoaded:
			summary.Loaded++
		case tools.ToolStatusRegistered:
			summary.Registered++
		case tools.ToolStatusError:
			summary.Error++
		case tools.ToolStatusDisabled:
			summary.Disabled++
		}
	}

	return summary
}

// determineToolsOverallHealth rolls tool counts and registry state into a
// single status. A registry with tools but none active is degraded.
func (s *Server) determineToolsOverallHealth(summary ToolHealthSummary, registryHealth tools.RegistryHealth) string {
	if registryHealth.Status == "stopped" {
		return "stopped"
	}

	if summary.Error > 0 {
		return "degraded"
	}

	if summary.Total > 0 && summary.Active == 0 {
		return "degraded"
	}

	return registryHealth.Status
}

// handleResourcesHealth reports per-resource status and a registry roll-up
func (s *Server) handleResourcesHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("serving resources health",
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
	)

	registryHealth := s.resourceRegistry.Health()
	resourceList := s.resourceRegistry.List()

	summary := s.buildResourceHealthSummary(resourceList)

	details := make(map[string]ResourceDetail, len(resourceList))
	for _, info := range resourceList {
		detail := ResourceDetail{
			URI:      info.URI,
			Name:     info.Name,
			Status:   string(info.Status),
			MimeType: info.MimeType,
		}
		if info.Status == resources.ResourceStatusError {
			detail.ErrorMessage = "resource failed to load or validate"
		}
		details[info.URI] = detail
	}

	response := ResourcesHealthResponse{
		Status:          s.determineResourcesOverallHealth(summary, registryHealth),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Summary:         summary,
		Resources:       details,
		CircuitBreakers: registryHealth.CircuitBreakers,
	}

	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("resources health response encoding failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// buildResourceHealthSummary counts resources by lifecycle status
func (s *Server) buildResourceHealthSummary(resourceList []resources.ResourceInfo) ResourceHealthSummary {
	summary := ResourceHealthSummary{Total: len(resourceList)}

	for _, info := range resourceList {
		switch info.Status {
		case resources.ResourceStatusActive:
			summary.Active++
		case resources.ResourceStatusLoaded:
			summary.Loaded++
		case resources.ResourceStatusRegistered:
			summary.Registered++
		case resources.ResourceStatusError:
			summary.Error++
		case resources.ResourceStatusDisabled:
			summary.Disabled++
		}
	}

	return summary
}

// determineResourcesOverallHealth mirrors the tool roll-up for resources
func (s *Server) determineResourcesOverallHealth(summary ResourceHealthSummary, registryHealth resources.RegistryHealth) string {
	if registryHealth.Status == "stopped" {
		return "stopped"
	}

	if summary.Error > 0 {
		return "degraded"
	}

	if summary.Total > 0 && summary.Active == 0 {
		return "degraded"
	}

	return registryHealth.Status
}
