package tools

import (
	"context"
	"errors"

	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/registry"
)

// ToolStatus aliases the shared lifecycle status so tool code reads
// naturally at call sites.
type ToolStatus = registry.LifecycleStatus

const (
	ToolStatusUnknown    = registry.StatusUnknown
	ToolStatusRegistered = registry.StatusRegistered
	ToolStatusLoaded     = registry.StatusLoaded
	ToolStatusActive     = registry.StatusActive
	ToolStatusError      = registry.StatusError
	ToolStatusDisabled   = registry.StatusDisabled
)

// ToolInfo is the registry's public record of one tool.
type ToolInfo struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Version      string            `json:"version"`
	Capabilities []string          `json:"capabilities"`
	Requirements map[string]string `json:"requirements"`
	Status       ToolStatus        `json:"status"`
}

// ToolConfig is handed to a factory when it instantiates its tool.
type ToolConfig struct {
	Enabled bool                   `json:"enabled"`
	Config  map[string]interface{} `json:"config"`
	Timeout int                    `json:"timeout_seconds"`
}

type ToolFactory interface {
	registry.BaseFactory
	Requirements() map[string]string
	Create(ctx context.Context, config ToolConfig) (mcp.Tool, error)
	Validate(config ToolConfig) error
}

// RegistryHealth is the snapshot the tools health endpoint serves.
// CircuitBreakers maps tool names to their creation breaker state.
type RegistryHealth struct {
	Status          string            `json:"status"`
	ToolCount       int               `json:"tool_count"`
	ActiveTools     int               `json:"active_tools"`
	ErrorTools      int               `json:"error_tools"`
	LastCheck       string            `json:"last_check"`
	Errors          []string          `json:"errors,omitempty"`
	ToolStatuses    map[string]string `json:"tool_statuses"`
	CircuitBreakers map[string]string `json:"circuit_breakers"`
}

// ToolRegistry manages tool factories and their instances across the
// whole lifecycle, from registration to restart.
type ToolRegistry interface {
	Register(name string, factory ToolFactory) error
	Unregister(name string) error
	Get(name string) (mcp.Tool, error)
	GetFactory(name string) (ToolFactory, error)
	List() []ToolInfo

	LoadTools(ctx context.Context) error
	ValidateTools(ctx context.Context) error
	TransitionStatus(name string, newStatus ToolStatus) error
	RestartTool(ctx context.Context, name string) error

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health() RegistryHealth
}

// Sentinel errors returned by ToolRegistry implementations. Wrapped
// errors carry the detail; match with errors.Is.
var (
	ErrToolNotFound         = errors.New("tool not found")
	ErrToolAlreadyExists    = errors.New("tool already exists")
	ErrInvalidToolName      = errors.New("invalid tool name")
	ErrToolValidation       = errors.New("tool validation failed")
	ErrToolCreation         = errors.New("tool creation failed")
	ErrToolRestart          = errors.New("tool restart failed")
	ErrRestartNotAllowed    = errors.New("tool restart not allowed")
	ErrToolLimitReached     = errors.New("tool limit reached")
	ErrRegistryNotRunning   = registry.ErrRegistryNotRunning
	ErrInvalidTransition    = registry.ErrInvalidTransition
	ErrTransitionNotAllowed = registry.ErrTransitionNotAllowed
)

type ToolValidationError = registry.ValidationError
type ToolValidationErrors = registry.ValidationErrors

func IsValidTransition(from, to ToolStatus) bool {
	return registry.IsValidTransition(from, to)
}

func GetAllowedTransitions(from ToolStatus) []ToolStatus {
	return registry.GetAllowedTransitions(from)
}
