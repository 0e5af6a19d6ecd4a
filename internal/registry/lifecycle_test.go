package registry

import (
	"slices"
	"testing"
)

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name string
		from LifecycleStatus
		to   LifecycleStatus
		want bool
	}{
		{"same status", StatusActive, StatusActive, true},
		{"registered to loaded", StatusRegistered, StatusLoaded, true},
		{"registered to error", StatusRegistered, StatusError, true},
		{"registered to disabled", StatusRegistered, StatusDisabled, true},
		{"loaded to active", StatusLoaded, StatusActive, true},
		{"active downgrade to loaded", StatusActive, StatusLoaded, true},
		{"error restart to registered", StatusError, StatusRegistered, true},
		{"disabled back to registered", StatusDisabled, StatusRegistered, true},
		{"registered cannot skip to active", StatusRegistered, StatusActive, false},
		{"loaded cannot fall back to registered", StatusLoaded, StatusRegistered, false},
		{"active cannot fall back to registered", StatusActive, StatusRegistered, false},
		{"error cannot jump to loaded", StatusError, StatusLoaded, false},
		{"error cannot jump to active", StatusError, StatusActive, false},
		{"disabled cannot jump to loaded", StatusDisabled, StatusLoaded, false},
		{"disabled cannot jump to active", StatusDisabled, StatusActive, false},
		{"unknown goes nowhere", StatusUnknown, StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("IsValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestGetAllowedTransitions(t *testing.T) {
	tests := []struct {
		name string
		from LifecycleStatus
		want []LifecycleStatus
	}{
		{
			name: "from registered",
			from: StatusRegistered,
			want: []LifecycleStatus{StatusRegistered, StatusLoaded, StatusError, StatusDisabled},
		},
		{
			name: "from loaded",
			from: StatusLoaded,
			want: []LifecycleStatus{StatusLoaded, StatusActive, StatusError, StatusDisabled},
		},
		{
			name: "from active",
			from: StatusActive,
			want: []LifecycleStatus{StatusActive, StatusLoaded, StatusError, StatusDisabled},
		},
		{
			name: "from error",
			from: StatusError,
			want: []LifecycleStatus{StatusError, StatusRegistered, StatusDisabled},
		},
		{
			name: "from disabled",
			from: StatusDisabled,
			want: []LifecycleStatus{StatusDisabled, StatusRegistered, StatusError},
		},
		{
			name: "unknown only stays put",
			from: StatusUnknown,
			want: []LifecycleStatus{StatusUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetAllowedTransitions(tt.from)
			if !slices.Equal(got, tt.want) {
				t.Errorf("GetAllowedTransitions(%s) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}
