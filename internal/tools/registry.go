package tools

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/registry"
	"dracor-mcp/internal/tools/adapters"
)

// createTimeout bounds a single factory Create call on the Get path.
const createTimeout = 30 * time.Second

// DefaultToolRegistry is the in-process ToolRegistry used by the server
type DefaultToolRegistry struct {
	factories       map[string]ToolFactory
	tools           map[string]mcp.Tool
	toolInfo        map[string]ToolInfo
	circuitBreakers map[string]*registry.CircuitBreakerFactory[mcp.Tool]
	logger          *logger.Logger
	config          *config.Config
	validator       *ToolValidator
	adapter         adapters.LibraryAdapter
	mu              sync.RWMutex
	running         bool
	lastCheck       time.Time
}

// NewDefaultToolRegistry creates a registry that manages tools locally
// without publishing them to a protocol adapter.
func NewDefaultToolRegistry(cfg *config.Config, log *logger.Logger) ToolRegistry {
	return NewDefaultToolRegistryWithAdapter(cfg, log, nil)
}

// NewDefaultToolRegistryWithAdapter creates a registry that mirrors every
// loaded tool into the given adapter.
func NewDefaultToolRegistryWithAdapter(cfg *config.Config, log *logger.Logger, adapter adapters.LibraryAdapter) ToolRegistry {
	return &DefaultToolRegistry{
		factories:       make(map[string]ToolFactory),
		tools:           make(map[string]mcp.Tool),
		toolInfo:        make(map[string]ToolInfo),
		circuitBreakers: make(map[string]*registry.CircuitBreakerFactory[mcp.Tool]),
		logger:          log,
		config:          cfg,
		validator:       NewToolValidator(cfg, log),
		adapter:         adapter,
	}
}

// Register adds a factory under name. Instantiation happens later, on
// Get or LoadTools.
func (r *DefaultToolRegistry) Register(name string, factory ToolFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validator.ValidateName(name); err != nil {
		r.logger.Error("tool name validation failed", "name", name, "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidToolName, err)
	}

	if _, exists := r.factories[name]; exists {
		r.logger.Error("tool already registered", "name", name)
		return fmt.Errorf("%w: %s", ErrToolAlreadyExists, name)
	}

	if max := r.config.MCP.MaxTools; max > 0 && len(r.factories) >= max {
		r.logger.Error("tool limit reached", "name", name, "max_tools", max)
		return fmt.Errorf("%w: %d tools registered (max %d)", ErrToolLimitReached, len(r.factories), max)
	}

	if err := r.validator.ValidateFactory(factory); err != nil {
		r.logger.Error("tool factory validation failed", "name", name, "error", err)
		return fmt.Errorf("%w: %v", ErrToolValidation, err)
	}

	// Every factory gets its own creation breaker.
	r.factories[name] = factory
	r.circuitBreakers[name] = registry.NewCircuitBreakerFactory[mcp.Tool](name, registry.DefaultCircuitBreakerConfig())

	r.toolInfo[name] = ToolInfo{
		Name:         factory.Name(),
		Description:  factory.Description(),
		Version:      factory.Version(),
		Capabilities: factory.Capabilities(),
		Requirements: factory.Requirements(),
		Status:       ToolStatusRegistered,
	}

	r.logger.Debug("tool factory registered",
		"name", name,
		"version", factory.Version(),
		"capabilities", factory.Capabilities(),
	)

	return nil
}

// Unregister removes a tool from the registry and the adapter
func (r *DefaultToolRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; !exists {
		r.logger.Warn("unregister requested for unknown tool", "name", name)
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	// Adapter removal failures do not block local removal.
	if r.adapter != nil {
		if err := r.adapter.UnregisterTool(name); err != nil {
			r.logger.Error("adapter removal failed", "name", name, "error", err)
		}
	}

	delete(r.factories, name)
	delete(r.tools, name)
	delete(r.toolInfo, name)
	delete(r.circuitBreakers, name)

	r.logger.Info("tool unregistered", "name", name)
	return nil
}

// Get returns the cached instance for name, creating it on first use
func (r *DefaultToolRegistry) Get(name string) (mcp.Tool, error) {
	r.mu.RLock()
	if tool, exists := r.tools[name]; exists {
		r.mu.RUnlock()
		return tool, nil
	}
	factory, exists := r.factories[name]
	breaker := r.circuitBreakers[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	// Instance creation runs outside the lock; a slow factory must not
	// block readers.
	ctx, cancel := context.WithTimeout(context.Background(), createTimeout)
	defer cancel()

	cfg, err := r.toolConfig()
	if err != nil {
		r.logger.Error("tool configuration rejected", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrToolCreation, err)
	}

	tool, err := r.createTool(ctx, breaker, factory, cfg)
	if err != nil {
		r.logger.Error("tool creation failed", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrToolCreation, err)
	}

	if err := r.validator.ValidateTool(tool); err != nil {
		r.logger.Error("created tool validation failed", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrToolValidation, err)
	}

	r.publishTool(name, tool)

	r.logger.Debug("tool instance created and cached", "name", name)
	return tool, nil
}

func (r *DefaultToolRegistry) GetFactory(name string) (ToolFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	return factory, nil
}

func (r *DefaultToolRegistry) List() []ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ToolInfo, 0, len(r.toolInfo))
	for _, info := range r.toolInfo {
		result = append(result, info)
	}

	return result
}

// toolConfig returns the instantiation config after running it through the
// validator, so factories never see a rejected configuration.
func (r *DefaultToolRegistry) toolConfig() (ToolConfig, error) {
	cfg := ToolConfig{
		Enabled: true,
		Config:  make(map[string]interface{}),
		Timeout: 30,
	}
	if err := r.validator.ValidateToolConfig(cfg); err != nil {
		return ToolConfig{}, err
	}
	return cfg, nil
}

// createTool runs factory.Create through the per-name creation breaker
func (r *DefaultToolRegistry) createTool(ctx context.Context, breaker *registry.CircuitBreakerFactory[mcp.Tool], factory ToolFactory, cfg ToolConfig) (mcp.Tool, error) {
	if breaker == nil {
		return factory.Create(ctx, cfg)
	}

	return breaker.ExecuteWithContext(ctx, func(ctx context.Context) (mcp.Tool, error) {
		return factory.Create(ctx, cfg)
	})
}

// publishTool pushes a created instance to the adapter, caches it and marks
// the tool loaded. Adapter registration failures are logged, not returned;
// the local instance stays usable.
func (r *DefaultToolRegistry) publishTool(name string, tool mcp.Tool) {
	if r.adapter != nil {
		if err := r.adapter.RegisterTool(tool); err != nil {
			r.logger.Error("adapter registration failed", "name", name, "error", err)
		}
	}

	r.mu.Lock()
	r.tools[name] = tool
	if info, exists := r.toolInfo[name]; exists {
		info.Status = ToolStatusLoaded
		r.toolInfo[name] = info
	}
	r.mu.Unlock()
}

// LoadTools instantiates every registered factory and publishes the
// survivors. Tools that fail stay registered with an error status.
func (r *DefaultToolRegistry) LoadTools(ctx context.Context) error {
	r.mu.RLock()
	factories := make(map[string]ToolFactory, len(r.factories))
	breakers := make(map[string]*registry.CircuitBreakerFactory[mcp.Tool], len(r.factories))
	for name, factory := range r.factories {
		factories[name] = factory
		breakers[name] = r.circuitBreakers[name]
	}
	r.mu.RUnlock()

	r.logger.Info("loading tools", "count", len(factories))

	cfg, err := r.toolConfig()
	if err != nil {
		return fmt.Errorf("tool configuration rejected: %w", err)
	}

	var failures []string
	loaded := 0

	for name, factory := range factories {
		tool, err := r.createTool(ctx, breakers[name], factory, cfg)
		if err != nil {
			failures = append(failures, fmt.Sprintf("failed to create tool %s: %v", name, err))
			r.logger.Error("tool creation failed during load", "name", name, "error", err)
			r.setStatus(name, ToolStatusError)
			continue
		}

		if err := r.validator.ValidateTool(tool); err != nil {
			failures = append(failures, fmt.Sprintf("tool validation failed for %s: %v", name, err))
			r.logger.Error("tool validation failed during load", "name", name, "error", err)
			r.setStatus(name, ToolStatusError)
			continue
		}

		r.publishTool(name, tool)
		loaded++
	}

	r.logger.Info("tool load complete",
		"total", len(factories),
		"loaded", loaded,
		"errors", len(failures),
	)

	if len(failures) > 0 {
		return fmt.Errorf("failed to load %d tools: %v", len(failures), failures)
	}

	return nil
}

// ValidateTools re-checks every cached instance and settles each tool
// into Active or Error.
func (r *DefaultToolRegistry) ValidateTools(ctx context.Context) error {
	r.mu.RLock()
	instances := make(map[string]mcp.Tool, len(r.tools))
	for name, tool := range r.tools {
		instances[name] = tool
	}
	r.mu.RUnlock()

	r.logger.Info("validating tools", "count", len(instances))

	var failures []string
	for name, tool := range instances {
		if err := r.validator.ValidateTool(tool); err != nil {
			failures = append(failures, fmt.Sprintf("validation failed for tool %s: %v", name, err))
			r.logger.Error("tool validation failed", "name", name, "error", err)
			r.setStatus(name, ToolStatusError)
			continue
		}
		r.setStatus(name, ToolStatusActive)
	}

	r.logger.Info("tool validation complete",
		"total", len(instances),
		"errors", len(failures),
	)

	if len(failures) > 0 {
		return fmt.Errorf("validation failed for %d tools: %v", len(failures), failures)
	}

	return nil
}

// TransitionStatus moves a tool along the lifecycle graph
func (r *DefaultToolRegistry) TransitionStatus(name string, newStatus ToolStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, exists := r.toolInfo[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if !IsValidTransition(info.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, info.Status, newStatus)
	}

	r.logger.Info("tool status changed",
		"name", name,
		"from", info.Status,
		"to", newStatus,
	)

	info.Status = newStatus
	r.toolInfo[name] = info

	// Disabled and errored tools lose their cached instance so a later
	// load re-creates them from the factory
	if newStatus == ToolStatusDisabled || newStatus == ToolStatusError {
		delete(r.tools, name)
	}

	return nil
}

// RestartTool rebuilds an errored tool from its factory
func (r *DefaultToolRegistry) RestartTool(ctx context.Context, name string) error {
	r.mu.Lock()

	info, exists := r.toolInfo[name]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if info.Status != ToolStatusError {
		r.mu.Unlock()
		return fmt.Errorf("%w: tool %s has status %s, only tools in error state can be restarted",
			ErrRestartNotAllowed, name, info.Status)
	}

	factory := r.factories[name]
	breaker := r.circuitBreakers[name]
	delete(r.tools, name)
	info.Status = ToolStatusRegistered
	r.toolInfo[name] = info
	r.mu.Unlock()

	// Drop the stale adapter entry so the rebuilt instance replaces it.
	// The tool may never have reached the adapter, so a miss is fine.
	if r.adapter != nil {
		if err := r.adapter.UnregisterTool(name); err != nil {
			r.logger.Debug("tool was not registered with adapter", "name", name)
		}
	}

	cfg, err := r.toolConfig()
	if err != nil {
		r.setStatus(name, ToolStatusError)
		return fmt.Errorf("%w: %v", ErrToolRestart, err)
	}

	tool, err := r.createTool(ctx, breaker, factory, cfg)
	if err != nil {
		r.setStatus(name, ToolStatusError)
		r.logger.Error("tool restart failed during creation", "name", name, "error", err)
		return fmt.Errorf("%w: %v", ErrToolRestart, err)
	}

	if err := r.validator.ValidateTool(tool); err != nil {
		r.setStatus(name, ToolStatusError)
		r.logger.Error("tool restart failed during validation", "name", name, "error", err)
		return fmt.Errorf("%w: %v", ErrToolRestart, err)
	}

	r.publishTool(name, tool)

	r.logger.Info("tool restarted", "name", name)
	return nil
}

// setStatus updates a tool's status without transition checks
func (r *DefaultToolRegistry) setStatus(name string, status ToolStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, exists := r.toolInfo[name]; exists {
		info.Status = status
		r.toolInfo[name] = info
	}
}

// Start marks the registry running
func (r *DefaultToolRegistry) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("tool registry is already running")
	}

	r.running = true
	r.lastCheck = time.Now()

	r.logger.Info("tool registry started")
	return nil
}

// Stop clears cached instances and disables every tool
func (r *DefaultToolRegistry) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}

	r.tools = make(map[string]mcp.Tool)
	for name, info := range r.toolInfo {
		info.Status = ToolStatusDisabled
		r.toolInfo[name] = info
	}

	r.running = false

	r.logger.Info("tool registry stopped", "disabled", len(r.toolInfo))
	return nil
}

// Health reports counts, per-tool statuses and breaker states
func (r *DefaultToolRegistry) Health() RegistryHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := RegistryHealth{
		Status:          "healthy",
		ToolCount:       len(r.toolInfo),
		LastCheck:       r.lastCheck.Format(time.RFC3339),
		Errors:          []string{},
		ToolStatuses:    make(map[string]string),
		CircuitBreakers: make(map[string]string),
	}

	for name, info := range r.toolInfo {
		health.ToolStatuses[name] = string(info.Status)

		switch info.Status {
		case ToolStatusActive:
			health.ActiveTools++
		case ToolStatusError:
			health.ErrorTools++
		}
	}

	for name, breaker := range r.circuitBreakers {
		health.CircuitBreakers[name] = breaker.Status()
	}

	if r.adapter != nil {
		if ah := r.adapter.Health(); ah.Status != "healthy" {
			health.Status = "degraded"
			health.Errors = append(health.Errors,
				fmt.Sprintf("adapter reports %s", ah.Status))
		}
	}

	if !r.running {
		health.Status = "stopped"
	} else if health.ErrorTools > 0 {
		health.Status = "degraded"
	}

	if health.ErrorTools > 0 {
		health.Errors = append(health.Errors,
			fmt.Sprintf("%d tools failed to load or validate", health.ErrorTools))
	}

	return health
}
