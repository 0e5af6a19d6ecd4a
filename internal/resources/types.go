package resources

import (
	"context"
	"errors"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/registry"
)

// ResourceStatus aliases the shared lifecycle status so resource code
// reads naturally at call sites.
type ResourceStatus = registry.LifecycleStatus

const (
	ResourceStatusUnknown    = registry.StatusUnknown
	ResourceStatusRegistered = registry.StatusRegistered
	ResourceStatusLoaded     = registry.StatusLoaded
	ResourceStatusActive     = registry.StatusActive
	ResourceStatusError      = registry.StatusError
	ResourceStatusDisabled   = registry.StatusDisabled
)

// ResourceInfo is the registry's public record of one resource.
type ResourceInfo struct {
	URI          string         `json:"uri"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	MimeType     string         `json:"mime_type"`
	Version      string         `json:"version"`
	Tags         []string       `json:"tags"`
	Capabilities []string       `json:"capabilities"`
	Status       ResourceStatus `json:"status"`
}

// ResourceConfig is handed to a factory when it instantiates its resource.
type ResourceConfig struct {
	Enabled       bool                   `json:"enabled"`
	Config        map[string]interface{} `json:"config"`
	AccessControl map[string]string      `json:"access_control"`
}

type ResourceFactory interface {
	registry.BaseFactory
	URI() string
	MimeType() string
	Tags() []string
	Create(ctx context.Context, config ResourceConfig) (mcp.Resource, error)
	Validate(config ResourceConfig) error
}

// RegistryHealth is the snapshot the resources health endpoint serves.
// CircuitBreakers maps resource URIs to their creation breaker state.
type RegistryHealth struct {
	Status           string            `json:"status"`
	ResourceCount    int               `json:"resource_count"`
	ActiveResources  int               `json:"active_resources"`
	ErrorResources   int               `json:"error_resources"`
	LastCheck        string            `json:"last_check"`
	Errors           []string          `json:"errors,omitempty"`
	ResourceStatuses map[string]string `json:"resource_statuses"`
	CircuitBreakers  map[string]string `json:"circuit_breakers"`
}

// ResourceRegistry manages resource factories and their instances across
// the whole lifecycle, from registration to refresh.
type ResourceRegistry interface {
	Register(uri string, factory ResourceFactory) error
	Unregister(uri string) error
	Get(uri string) (mcp.Resource, error)
	GetFactory(uri string) (ResourceFactory, error)
	List() []ResourceInfo

	LoadResources(ctx context.Context) error
	ValidateResources(ctx context.Context) error
	TransitionStatus(uri string, newStatus ResourceStatus) error
	RefreshResource(ctx context.Context, uri string) error

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health() RegistryHealth
}

// Sentinel errors returned by ResourceRegistry implementations. Wrapped
// errors carry the detail; match with errors.Is.
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrInvalidResourceURI    = errors.New("invalid resource URI")
	ErrResourceValidation    = errors.New("resource validation failed")
	ErrResourceContent       = errors.New("resource content error")
	ErrResourceCreation      = errors.New("resource creation failed")
	ErrResourceRefresh       = errors.New("resource refresh failed")
	ErrRefreshNotAllowed     = errors.New("resource refresh not allowed")
	ErrRegistryNotRunning    = registry.ErrRegistryNotRunning
	ErrInvalidTransition     = registry.ErrInvalidTransition
	ErrTransitionNotAllowed  = registry.ErrTransitionNotAllowed
)

type ResourceValidationError = registry.ValidationError
type ResourceValidationErrors = registry.ValidationErrors

func IsValidTransition(from, to ResourceStatus) bool {
	return registry.IsValidTransition(from, to)
}

func GetAllowedTransitions(from ResourceStatus) []ResourceStatus {
	return registry.GetAllowedTransitions(from)
}
