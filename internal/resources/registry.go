package resources

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

// DefaultResourceRegistry is the in-process ResourceRegistry used by the
// server
type DefaultResourceRegistry struct {
	factories       map[string]ResourceFactory
	resources       map[string]mcp.Resource
	resourceInfo    map[string]ResourceInfo
	circuitBreakers map[string]*registry.CircuitBreakerFactory[mcp.Resource]
	logger          *logger.Logger
	config          *config.Config
	validator       *ResourceValidator
	adapter         adapters.LibraryAdapter
	mu              sync.RWMutex
	running         bool
	lastCheck       time.Time
}

// NewDefaultResourceRegistry creates a registry that manages resources
// locally without publishing them to a protocol adapter.
func NewDefaultResourceRegistry(cfg *config.Config, log *logger.Logger) ResourceRegistry {
	return NewDefaultResourceRegistryWithAdapter(cfg, log, nil)
}

// NewDefaultResourceRegistryWithAdapter creates a registry that mirrors
// every loaded resource into the given adapter.
func NewDefaultResourceRegistryWithAdapter(cfg *config.Config, log *logger.Logger, adapter adapters.LibraryAdapter) ResourceRegistry {
	return &DefaultResourceRegistry{
		factories:       make(map[string]ResourceFactory),
		resources:       make(map[string]mcp.Resource),
		resourceInfo:    make(map[string]ResourceInfo),
		circuitBreakers: make(map[string]*registry.CircuitBreakerFactory[mcp.Resource]),
		logger:          log,
		config:          cfg,
		validator:       NewResourceValidator(cfg, log),
		adapter:         adapter,
	}
}

// Register adds a factory under uri. Instantiation happens later, on
// Get or LoadResources.
func (r *DefaultResourceRegistry) Register(uri string, factory ResourceFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.validator.ValidateURI(uri); err != nil {
		r.logger.Error("resource URI validation failed", "uri", uri, "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidResourceURI, err)
	}

	if _, exists := r.factories[uri]; exists {
		r.logger.Error("resource already registered", "uri", uri)
		return fmt.Errorf("%w: %s", ErrResourceAlreadyExists, uri)
	}

	if err := r.validator.ValidateFactory(factory); err != nil {
		r.logger.Error("resource factory validation failed", "uri", uri, "error", err)
		return fmt.Errorf("%w: %v", ErrResourceValidation, err)
	}

	// Every factory gets its own creation breaker.
	r.factories[uri] = factory
	r.circuitBreakers[uri] = registry.NewCircuitBreakerFactory[mcp.Resource](uri, registry.DefaultCircuitBreakerConfig())

	r.resourceInfo[uri] = ResourceInfo{
		URI:          factory.URI(),
		Name:         factory.Name(),
		Description:  factory.Description(),
		MimeType:     factory.MimeType(),
		Version:      factory.Version(),
		Tags:         factory.Tags(),
		Capabilities: factory.Capabilities(),
		Status:       ResourceStatusRegistered,
	}

	r.logger.Debug("resource factory registered",
		"uri", uri,
		"name", factory.Name(),
		"mime_type", factory.MimeType(),
	)

	return nil
}

// Unregister removes a resource from the registry and the adapter
func (r *DefaultResourceRegistry) Unregister(uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[uri]; !exists {
		r.logger.Warn("unregister requested for unknown resource", "uri", uri)
		return fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
	}

	// Adapter removal failures do not block local removal.
	if r.adapter != nil {
		if err := r.adapter.UnregisterResource(uri); err != nil {
			r.logger.Error("adapter removal failed", "uri", uri, "error", err)
		}
	}

	delete(r.factories, uri)
	delete(r.resources, uri)
	delete(r.resourceInfo, uri)
	delete(r.circuitBreakers, uri)

	r.logger.Info("resource unregistered", "uri", uri)
	return nil
}

// Get returns the cached instance for uri, creating it on first use
func (r *DefaultResourceRegistry) Get(uri string) (mcp.Resource, error) {
	r.mu.RLock()
	if resource, exists := r.resources[uri]; exists {
		r.mu.RUnlock()
		return resource, nil
	}
	factory, exists := r.factories[uri]
	breaker := r.circuitBreakers[uri]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
	}

	// Instance creation runs outside the lock; a slow factory must not
	// block readers.
	ctx, cancel := context.WithTimeout(context.Background(), createTimeout)
	defer cancel()

	cfg, err := r.resourceConfig()
	if err != nil {
		r.logger.Error("resource configuration rejected", "uri", uri, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrResourceCreation, err)
	}

	resource, err := r.createResource(ctx, breaker, factory, cfg)
	if err != nil {
		r.logger.Error("resource creation failed", "uri", uri, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrResourceCreation, err)
	}

	if err := r.validator.ValidateResource(resource); err != nil {
		r.logger.Error("created resource validation failed", "uri", uri, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrResourceValidation, err)
	}

	r.publishResource(uri, resource)

	r.logger.Debug("resource instance created and cached", "uri", uri)
	return resource, nil
}

func (r *DefaultResourceRegistry) GetFactory(uri string) (ResourceFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[uri]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
	}

	return factory, nil
}

func (r *DefaultResourceRegistry) List() []ResourceInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ResourceInfo, 0, len(r.resourceInfo))
	for _, info := range r.resourceInfo {
		result = append(result, info)
	}

	return result
}

// resourceConfig returns the instantiation config after running it through
// the validator, so factories never see a rejected configuration.
func (r *DefaultResourceRegistry) resourceConfig() (ResourceConfig, error) {
	cfg := ResourceConfig{
		Enabled:       true,
		Config:        make(map[string]interface{}),
		AccessControl: make(map[string]string),
	}
	if err := r.validator.ValidateConfig(cfg); err != nil {
		return ResourceConfig{}, err
	}
	return cfg, nil
}

// createResource runs factory.Create through the per-URI creation breaker
func (r *DefaultResourceRegistry) createResource(ctx context.Context, breaker *registry.CircuitBreakerFactory[mcp.Resource], factory ResourceFactory, cfg ResourceConfig) (mcp.Resource, error) {
	if breaker == nil {
		return factory.Create(ctx, cfg)
	}

	return breaker.ExecuteWithContext(ctx, func(ctx context.Context) (mcp.Resource, error) {
		return factory.Create(ctx, cfg)
	})
}

// publishResource pushes a created instance to the adapter, caches it and
// marks the resource loaded. Adapter registration failures are logged, not
// returned; the local instance stays usable.
func (r *DefaultResourceRegistry) publishResource(uri string, resource mcp.Resource) {
	if r.adapter != nil {
		if err := r.adapter.RegisterResource(resource); err != nil {
			r.logger.Error("adapter registration failed", "uri", uri, "error", err)
		}
	}

	r.mu.Lock()
	r.resources[uri] = resource
	if info, exists := r.resourceInfo[uri]; exists {
		info.Status = ResourceStatusLoaded
		r.resourceInfo[uri] = info
	}
	r.mu.Unlock()
}

// LoadResources instantiates every registered factory and publishes the
// survivors. Resources that fail stay registered with an error status.
func (r *DefaultResourceRegistry) LoadResources(ctx context.Context) error {
	r.mu.RLock()
	factories := make(map[string]ResourceFactory, len(r.factories))
	breakers := make(map[string]*registry.CircuitBreakerFactory[mcp.Resource], len(r.factories))
	for uri, factory := range r.factories {
		factories[uri] = factory
		breakers[uri] = r.circuitBreakers[uri]
	}
	r.mu.RUnlock()

	r.logger.Info("loading resources", "count", len(factories))

	cfg, err := r.resourceConfig()
	if err != nil {
		return fmt.Errorf("resource configuration rejected: %w", err)
	}

	var failures []string
	loaded := 0

	for uri, factory := range factories {
		resource, err := r.createResource(ctx, breakers[uri], factory, cfg)
		if err != nil {
			failures = append(failures, fmt.Sprintf("failed to create resource %s: %v", uri, err))
			r.logger.Error("resource creation failed during load", "uri", uri, "error", err)
			r.setStatus(uri, ResourceStatusError)
			continue
		}

		if err := r.validator.ValidateResource(resource); err != nil {
			failures = append(failures, fmt.Sprintf("resource validation failed for %s: %v", uri, err))
			r.logger.Error("resource validation failed during load", "uri", uri, "error", err)
			r.setStatus(uri, ResourceStatusError)
			continue
		}

		r.publishResource(uri, resource)
		loaded++
	}

	r.logger.Info("resource load complete",
		"total", len(factories),
		"loaded", loaded,
		"errors", len(failures),
	)

	if len(failures) > 0 {
		return fmt.Errorf("failed to load %d resources: %v", len(failures), failures)
	}

	return nil
}

// ValidateResources re-checks every cached instance and settles each
// resource into Active or Error.
func (r *DefaultResourceRegistry) ValidateResources(ctx context.Context) error {
	r.mu.RLock()
	instances := make(map[string]mcp.Resource, len(r.resources))
	for uri, resource := range r.resources {
		instances[uri] = resource
	}
	r.mu.RUnlock()

	r.logger.Info("validating resources", "count", len(instances))

	var failures []string
	for uri, resource := range instances {
		if err := r.validator.ValidateResource(resource); err != nil {
			failures = append(failures, fmt.Sprintf("validation failed for resource %s: %v", uri, err))
			r.logger.Error("resource validation failed", "uri", uri, "error", err)
			r.setStatus(uri, ResourceStatusError)
			continue
		}
		r.setStatus(uri, ResourceStatusActive)
	}

	r.logger.Info("resource validation complete",
		"total", len(instances),
		"errors", len(failures),
	)

	if len(failures) > 0 {
		return fmt.Errorf("validation failed for %d resources: %v", len(failures), failures)
	}

	return nil
}

// TransitionStatus moves a resource along the lifecycle graph
func (r *DefaultResourceRegistry) TransitionStatus(uri string, newStatus ResourceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, exists := r.resourceInfo[uri]
	if !exists {
		return fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
	}

	if !IsValidTransition(info.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, info.Status, newStatus)
	}

	r.logger.Info("resource status changed",
		"uri", uri,
		"from", info.Status,
		"to", newStatus,
	)

	info.Status = newStatus
	r.resourceInfo[uri] = info

	// Disabled and errored resources lose their cached instance so a
	// later load re-creates them from the factory
	if newStatus == ResourceStatusDisabled || newStatus == ResourceStatusError {
		delete(r.resources, uri)
	}

	return nil
}

// RefreshResource rebuilds a served resource from its factory so clients
// see current upstream data on their next read
func (r *DefaultResourceRegistry) RefreshResource(ctx context.Context, uri string) error {
	r.mu.Lock()

	info, exists := r.resourceInfo[uri]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
	}

	if info.Status != ResourceStatusActive && info.Status != ResourceStatusLoaded {
		r.mu.Unlock()
		return fmt.Errorf("%w: resource %s has status %s, only active or loaded resources can be refreshed",
			ErrRefreshNotAllowed, uri, info.Status)
	}

	factory := r.factories[uri]
	breaker := r.circuitBreakers[uri]
	delete(r.resources, uri)
	r.mu.Unlock()

	// Drop the stale adapter entry so the fresh instance replaces it.
	// The resource may never have reached the adapter, so a miss is fine.
	if r.adapter != nil {
		if err := r.adapter.UnregisterResource(uri); err != nil {
			r.logger.Debug("resource was not registered with adapter", "uri", uri)
		}
	}

	cfg, err := r.resourceConfig()
	if err != nil {
		r.setStatus(uri, ResourceStatusError)
		return fmt.Errorf("%w: %v", ErrResourceRefresh, err)
	}

	resource, err := r.createResource(ctx, breaker, factory, cfg)
	if err != nil {
		r.setStatus(uri, ResourceStatusError)
		r.logger.Error("resource refresh failed during creation", "uri", uri, "error", err)
		return fmt.Errorf("%w: %v", ErrResourceRefresh, err)
	}

	if err := r.validator.ValidateResource(resource); err != nil {
		r.setStatus(uri, ResourceStatusError)
		r.logger.Error("resource refresh failed during validation", "uri", uri, "error", err)
		return fmt.Errorf("%w: %v", ErrResourceRefresh, err)
	}

	r.publishResource(uri, resource)

	r.logger.Info("resource refreshed", "uri", uri)
	return nil
}

// setStatus updates a resource's status without transition checks
func (r *DefaultResourceRegistry) setStatus(uri string, status ResourceStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, exists := r.resourceInfo[uri]; exists {
		info.Status = status
		r.resourceInfo[uri] = info
	}
}

// Start marks the registry running
func (r *DefaultResourceRegistry) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("resource registry is already running")
	}

	r.running = true
	r.lastCheck = time.Now()

	r.logger.Info("resource registry started")
	return nil
}

// Stop clears cached instances and disables every resource
func (r *DefaultResourceRegistry) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}

	r.resources = make(map[string]mcp.Resource)
	for uri, info := range r.resourceInfo {
		info.Status = ResourceStatusDisabled
		r.resourceInfo[uri] = info
	}

	r.running = false

	r.logger.Info("resource registry stopped", "disabled", len(r.resourceInfo))
	return nil
}

// Health reports counts, per-resource statuses and breaker states
func (r *DefaultResourceRegistry) Health() RegistryHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := RegistryHealth{
		Status:           "healthy",
		ResourceCount:    len(r.resourceInfo),
		LastCheck:        r.lastCheck.Format(time.RFC3339),
		Errors:           []string{},
		ResourceStatuses: make(map[string]string),
		CircuitBreakers:  make(map[string]string),
	}

	for uri, info := range r.resourceInfo {
		health.ResourceStatuses[uri] = string(info.Status)

		switch info.Status {
		case ResourceStatusActive:
			health.ActiveResources++
		case ResourceStatusError:
			health.ErrorResources++
		}
	}

	for uri, breaker := range r.circuitBreakers {
		health.CircuitBreakers[uri] = breaker.Status()
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
	} else if health.ErrorResources > 0 {
		health.Status = "degraded"
	}

	if health.ErrorResources > 0 {
		health.Errors = append(health.Errors,
			fmt.Sprintf("%d resources failed to load or validate", health.ErrorResources))
	}

	return health
}
