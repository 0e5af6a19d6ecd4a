package registry

import "errors"

// LifecycleStatus is the state of a managed entity (tool or resource).
type LifecycleStatus string

const (
	StatusUnknown    LifecycleStatus = "unknown"
	StatusRegistered LifecycleStatus = "registered"
	StatusLoaded     LifecycleStatus = "loaded"
	StatusActive     LifecycleStatus = "active"
	StatusError      LifecycleStatus = "error"
	StatusDisabled   LifecycleStatus = "disabled"
)

// statusTransitions maps each status to the statuses it may move to.
// Failed entities re-enter the lifecycle through registered, which is
// how a restart works. Disabled entities come back the same way.
var statusTransitions = map[LifecycleStatus][]LifecycleStatus{
	StatusRegistered: {StatusLoaded, StatusError, StatusDisabled},
	StatusLoaded:     {StatusActive, StatusError, StatusDisabled},
	StatusActive:     {StatusLoaded, StatusError, StatusDisabled},
	StatusError:      {StatusRegistered, StatusDisabled},
	StatusDisabled:   {StatusRegistered, StatusError},
}

// IsValidTransition reports whether an entity may move from one status
// to another. Staying in the same status is always allowed.
func IsValidTransition(from, to LifecycleStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns every status reachable from the given
// one, the status itself included.
func GetAllowedTransitions(from LifecycleStatus) []LifecycleStatus {
	allowed := make([]LifecycleStatus, 0, len(statusTransitions[from])+1)
	allowed = append(allowed, from)
	return append(allowed, statusTransitions[from]...)
}

// Common registry errors, wrapped by the tool and resource registries.
var (
	ErrEntityNotFound       = errors.New("entity not found")
	ErrEntityAlreadyExists  = errors.New("entity already exists")
	ErrEntityValidation     = errors.New("entity validation failed")
	ErrRegistryNotRunning   = errors.New("registry not running")
	ErrEntityCreation       = errors.New("entity creation failed")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)
