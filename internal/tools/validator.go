package tools

import (
	"encoding/json"
	"fmt"
	"regexp"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/registry"
)

// Published tool names are lowercase snake_case; MCP clients list them verbatim.
var toolNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// Names claimed by the server surface itself.
var reservedToolNames = map[string]struct{}{
	"mcp":       {},
	"registry":  {},
	"health":    {},
	"ready":     {},
	"tools":     {},
	"resources": {},
	"prompts":   {},
}

// Type keywords the schema walker accepts.
var schemaTypes = map[string]struct{}{
	"object":  {},
	"array":   {},
	"string":  {},
	"number":  {},
	"integer": {},
	"boolean": {},
	"null":    {},
}

// ToolValidator checks tool names, factories, instances and schemas before
// they reach the registry or the protocol adapter.
type ToolValidator struct {
	*registry.BaseValidator
}

func NewToolValidator(cfg *config.Config, log *logger.Logger) *ToolValidator {
	return &ToolValidator{
		BaseValidator: registry.NewBaseValidator(cfg, log),
	}
}

func (v *ToolValidator) ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	var errs ToolValidationErrors
	v.ValidateStringLength(name, "name", 64, &errs)
	v.ValidateStringPattern(name, "name", toolNameRegex, "must be lowercase snake_case starting with a letter", &errs)
	if _, taken := reservedToolNames[name]; taken {
		errs.Add("name", name, "name is reserved for server use")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// mergeNameError flattens a ValidateName failure into errs.
func (v *ToolValidator) mergeNameError(err error, name string, errs *ToolValidationErrors) {
	if err == nil {
		return
	}
	if nameErrs, ok := err.(ToolValidationErrors); ok {
		*errs = append(*errs, nameErrs...)
		return
	}
	errs.Add("name", name, err.Error())
}

func (v *ToolValidator) ValidateFactory(factory ToolFactory) error {
	var errs ToolValidationErrors

	v.mergeNameError(v.ValidateName(factory.Name()), factory.Name(), &errs)

	v.ValidateRequiredString(factory.Description(), "description", &errs)
	v.ValidateStringLength(factory.Description(), "description", 500, &errs)
	v.ValidateVersion(factory.Version(), &errs)

	v.ValidateCapabilities(factory.Capabilities(), &errs)
	for _, capability := range factory.Capabilities() {
		v.ValidateStringLength(capability, "capabilities", 64, &errs)
	}

	for key, value := range factory.Requirements() {
		if key == "" {
			errs.Add("requirements", value, "requirement key cannot be empty")
			continue
		}
		v.ValidateStringLength(key, "requirements", 64, &errs)
		v.ValidateStringLength(value, "requirements", 256, &errs)
	}

	if errs.HasErrors() {
		v.LogValidationResult(false, "tool factory", factory.Name(), len(errs))
		return errs
	}

	v.LogValidationResult(true, "tool factory", factory.Name(), 0)
	return nil
}

func (v *ToolValidator) ValidateTool(tool mcp.Tool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}

	var errs ToolValidationErrors

	v.mergeNameError(v.ValidateName(tool.Name()), tool.Name(), &errs)

	v.ValidateRequiredString(tool.Description(), "description", &errs)
	v.ValidateStringLength(tool.Description(), "description", 500, &errs)

	if err := v.validateJSONSchema(tool.Parameters()); err != nil {
		errs.Add("parameters", "", err.Error())
	}

	if tool.Handler() == nil {
		errs.Add("handler", "", "tool handler cannot be nil")
	}

	if errs.HasErrors() {
		v.LogValidationResult(false, "tool", tool.Name(), len(errs))
		return errs
	}

	v.LogValidationResult(true, "tool", tool.Name(), 0)
	return nil
}

// validateJSONSchema checks that params is a usable MCP input schema. An
// empty schema is allowed; a present one must describe a top-level object.
func (v *ToolValidator) validateJSONSchema(params json.RawMessage) error {
	if len(params) == 0 {
		return nil
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(params, &schema); err != nil {
		return fmt.Errorf("schema is not valid JSON: %v", err)
	}

	if t, ok := schema["type"].(string); ok && t != "object" {
		return fmt.Errorf("top-level schema type must be object, got %q", t)
	}

	return v.walkSchema(schema, "$")
}

// walkSchema recurses through properties, required and items, reporting the
// path of the first malformed node.
func (v *ToolValidator) walkSchema(schema map[string]interface{}, path string) error {
	if raw, ok := schema["type"]; ok {
		t, isString := raw.(string)
		if !isString {
			return fmt.Errorf("%s: type must be a string", path)
		}
		if _, known := schemaTypes[t]; !known {
			return fmt.Errorf("%s: unknown type %q", path, t)
		}
	}

	properties := map[string]interface{}{}
	if raw, ok := schema["properties"]; ok {
		m, isMap := raw.(map[string]interface{})
		if !isMap {
			return fmt.Errorf("%s: properties must be an object", path)
		}
		properties = m
		for name, sub := range m {
			subSchema, isMap := sub.(map[string]interface{})
			if !isMap {
				return fmt.Errorf("%s.properties.%s: schema must be an object", path, name)
			}
			if err := v.walkSchema(subSchema, fmt.Sprintf("%s.properties.%s", path, name)); err != nil {
				return err
			}
		}
	}

	if raw, ok := schema["required"]; ok {
		list, isList := raw.([]interface{})
		if !isList {
			return fmt.Errorf("%s: required must be an array", path)
		}
		for _, item := range list {
			name, isString := item.(string)
			if !isString {
				return fmt.Errorf("%s: required entries must be strings", path)
			}
			if _, declared := properties[name]; !declared {
				return fmt.Errorf("%s: required field %q is not declared in properties", path, name)
			}
		}
	}

	if raw, ok := schema["items"]; ok {
		sub, isMap := raw.(map[string]interface{})
		if !isMap {
			return fmt.Errorf("%s.items: schema must be an object", path)
		}
		if err := v.walkSchema(sub, path+".items"); err != nil {
			return err
		}
	}

	return nil
}

// ValidateToolConfig checks the per-tool configuration handed to factories.
func (v *ToolValidator) ValidateToolConfig(config ToolConfig) error {
	var errs ToolValidationErrors

	if config.Timeout < 0 {
		errs.Add("timeout_seconds", fmt.Sprintf("%d", config.Timeout), "timeout cannot be negative")
	}
	if config.Timeout > 3600 {
		errs.Add("timeout_seconds", fmt.Sprintf("%d", config.Timeout), "timeout cannot exceed 3600 seconds")
	}

	for key, value := range config.Config {
		if key == "" {
			errs.Add("config", "", "configuration key cannot be empty")
			continue
		}
		v.ValidateStringLength(key, "config", 64, &errs)
		if value != nil {
			v.ValidateStringLength(fmt.Sprintf("%v", value), "config", 1024, &errs)
		}
	}

	if errs.HasErrors() {
		v.LogValidationResult(false, "tool configuration", "", len(errs))
		return errs
	}

	v.LogValidationResult(true, "tool configuration", "", 0)
	return nil
}
