package registry

import (
	"fmt"
	"regexp"
	"strings"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
)

// ValidationError is a single rejected field with the value that was seen
// and the rule it broke.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s' (value: '%s'): %s", e.Field, e.Value, e.Message)
}

// ValidationErrors accumulates every broken rule of one entity so a failed
// registration reports all problems at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}

	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(parts, "; "))
}

func (e *ValidationErrors) Add(field, value, message string) {
	*e = append(*e, ValidationError{Field: field, Value: value, Message: message})
}

func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// semverRegex accepts X.Y.Z with optional pre-release or build suffixes.
var semverRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+([a-zA-Z0-9\-\.]*)?$`)

// BaseValidator carries the field checks shared by the tool and resource
// validators. Both embed it and layer their entity-specific rules on top.
type BaseValidator struct {
	logger *logger.Logger
	config *config.Config
}

func NewBaseValidator(cfg *config.Config, log *logger.Logger) *BaseValidator {
	return &BaseValidator{
		logger: log,
		config: cfg,
	}
}

// ValidateRequiredString rejects an empty value.
func (v *BaseValidator) ValidateRequiredString(value, fieldName string, errors *ValidationErrors) {
	if value == "" {
		errors.Add(fieldName, value, fmt.Sprintf("%s cannot be empty", fieldName))
	}
}

// ValidateStringLength rejects a value over maxLength bytes.
func (v *BaseValidator) ValidateStringLength(value, fieldName string, maxLength int, errors *ValidationErrors) {
	if len(value) > maxLength {
		errors.Add(fieldName, value, fmt.Sprintf("%s too long at %d characters (max %d)", fieldName, len(value), maxLength))
	}
}

// ValidateStringPattern rejects a value not matching pattern; patternDesc
// phrases the rule for the error message.
func (v *BaseValidator) ValidateStringPattern(value, fieldName string, pattern *regexp.Regexp, patternDesc string, errors *ValidationErrors) {
	if !pattern.MatchString(value) {
		errors.Add(fieldName, value, fmt.Sprintf("%s %s", fieldName, patternDesc))
	}
}

// ValidateCapabilities requires at least one non-empty capability tag.
func (v *BaseValidator) ValidateCapabilities(capabilities []string, errors *ValidationErrors) {
	if len(capabilities) == 0 {
		errors.Add("capabilities", fmt.Sprintf("%v", capabilities), "at least one capability is required")
		return
	}

	for i, capability := range capabilities {
		if capability == "" {
			errors.Add("capabilities", fmt.Sprintf("index %d", i), "capability cannot be empty")
		}
	}
}

// ValidateVersion requires a semantic version string.
func (v *BaseValidator) ValidateVersion(version string, errors *ValidationErrors) {
	if version == "" {
		errors.Add("version", version, "version cannot be empty")
		return
	}

	if !semverRegex.MatchString(version) {
		errors.Add("version", version, "version must be a semantic version like 1.0.0")
	}
}

// LogValidationResult records one entity's validation outcome.
func (v *BaseValidator) LogValidationResult(success bool, entityType, identifier string, errorCount int) {
	if success {
		v.logger.Debug("validation passed", "entity", entityType, "identifier", identifier)
		return
	}
	v.logger.Error("validation failed", "entity", entityType, "identifier", identifier, "errors", errorCount)
}
