package resources

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"dracor-mcp/internal/config"
	"dracor-mcp/internal/logger"
	"dracor-mcp/internal/mcp"
	"dracor-mcp/internal/registry"
)

// Resource URIs use the corpora and registry schemes served by this
// process; http and https are accepted for pass-through references.
var supportedSchemes = map[string]bool{
	"corpora":  true,
	"registry": true,
	"http":     true,
	"https":    true,
}

// Resource names are human-readable labels shown by MCP clients.
var resourceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_ ]+$`)

// Accepted top-level MIME families for resource content.
var mimeMainTypes = map[string]bool{
	"text":        true,
	"application": true,
	"image":       true,
	"audio":       true,
	"video":       true,
	"multipart":   true,
	"message":     true,
}

// ResourceValidator checks URIs, factories, instances and content before
// they reach the registry or the protocol adapter.
type ResourceValidator struct {
	*registry.BaseValidator
}

func NewResourceValidator(cfg *config.Config, log *logger.Logger) *ResourceValidator {
	return &ResourceValidator{
		BaseValidator: registry.NewBaseValidator(cfg, log),
	}
}

func (v *ResourceValidator) ValidateURI(uri string) error {
	if uri == "" {
		return fmt.Errorf("resource URI cannot be empty")
	}
	if len(uri) > 2048 {
		return fmt.Errorf("URI too long at %d characters (max 2048)", len(uri))
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("invalid URI: %w", err)
	}
	if parsed.Scheme == "" {
		return fmt.Errorf("URI must have a scheme (e.g., corpora://, registry://)")
	}
	if !supportedSchemes[parsed.Scheme] {
		return fmt.Errorf("unsupported URI scheme: %s (use corpora, registry, http or https)", parsed.Scheme)
	}
	if (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host == "" {
		return fmt.Errorf("%s URI must have a host", parsed.Scheme)
	}

	return nil
}

func (v *ResourceValidator) ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("resource name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long at %d characters (max 255)", len(name))
	}
	if !resourceNameRegex.MatchString(name) {
		return fmt.Errorf("name may only use letters, digits, '-', '_' and spaces")
	}
	return nil
}

func (v *ResourceValidator) ValidateMimeType(mimeType string) error {
	if mimeType == "" {
		return fmt.Errorf("MIME type is required")
	}

	parts := strings.Split(mimeType, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("MIME type must look like type/subtype")
	}
	if !mimeMainTypes[parts[0]] {
		return fmt.Errorf("unsupported MIME type %s: main type must be one of text, application, image, audio, video, multipart, message", parts[0])
	}

	return nil
}

// mergeError flattens a single-field check into errs.
func (v *ResourceValidator) mergeError(err error, field, value string, errs *ResourceValidationErrors) {
	if err != nil {
		errs.Add(field, value, err.Error())
	}
}

func (v *ResourceValidator) ValidateFactory(factory ResourceFactory) error {
	var errs ResourceValidationErrors

	v.mergeError(v.ValidateURI(factory.URI()), "uri", factory.URI(), &errs)
	v.mergeError(v.ValidateName(factory.Name()), "name", factory.Name(), &errs)
	v.mergeError(v.ValidateMimeType(factory.MimeType()), "mime_type", factory.MimeType(), &errs)

	v.ValidateRequiredString(factory.Description(), "description", &errs)
	v.ValidateStringLength(factory.Description(), "description", 1000, &errs)
	v.ValidateVersion(factory.Version(), &errs)

	v.ValidateCapabilities(factory.Capabilities(), &errs)
	for _, capability := range factory.Capabilities() {
		v.ValidateStringLength(capability, "capabilities", 100, &errs)
	}

	for i, tag := range factory.Tags() {
		if tag == "" {
			errs.Add("tags", fmt.Sprintf("[%d]", i), "tag cannot be empty")
			continue
		}
		v.ValidateStringLength(tag, "tag", 50, &errs)
	}

	if errs.HasErrors() {
		v.LogValidationResult(false, "resource factory", factory.URI(), len(errs))
		return errs
	}

	v.LogValidationResult(true, "resource factory", factory.URI(), 0)
	return nil
}

func (v *ResourceValidator) ValidateResource(resource mcp.Resource) error {
	if resource == nil {
		return fmt.Errorf("resource cannot be nil")
	}

	var errs ResourceValidationErrors

	v.mergeError(v.ValidateURI(resource.URI()), "uri", resource.URI(), &errs)
	v.mergeError(v.ValidateName(resource.Name()), "name", resource.Name(), &errs)
	v.mergeError(v.ValidateMimeType(resource.MimeType()), "mime_type", resource.MimeType(), &errs)
	v.ValidateRequiredString(resource.Description(), "description", &errs)

	if resource.Handler() == nil {
		errs.Add("handler", "", "resource handler cannot be nil")
	}

	if errs.HasErrors() {
		v.LogValidationResult(false, "resource", resource.URI(), len(errs))
		return errs
	}

	v.LogValidationResult(true, "resource", resource.URI(), 0)
	return nil
}

// ValidateConfig checks the per-resource configuration handed to factories.
func (v *ResourceValidator) ValidateConfig(config ResourceConfig) error {
	var errs ResourceValidationErrors

	for key, value := range config.AccessControl {
		if key == "" {
			errs.Add("access_control", "", "access control key cannot be empty")
		}
		if value == "" {
			errs.Add("access_control", key, "access control value cannot be empty")
		}
	}

	for key, value := range config.Config {
		if key == "" {
			errs.Add("config", "", "configuration key cannot be empty")
		}
		if value == nil {
			errs.Add("config", key, "configuration value cannot be nil")
		}
	}

	if errs.HasErrors() {
		v.LogValidationResult(false, "resource configuration", "", len(errs))
		return errs
	}

	v.LogValidationResult(true, "resource configuration", "", 0)
	return nil
}

// ValidateResourceContent checks handler output before it is served.
func (v *ResourceValidator) ValidateResourceContent(content mcp.ResourceContent) error {
	if err := v.checkContent(content); err != nil {
		v.LogValidationResult(false, "resource content", "", 1)
		return err
	}

	v.LogValidationResult(true, "resource content", "", 0)
	return nil
}

func (v *ResourceValidator) checkContent(content mcp.ResourceContent) error {
	if err := v.ValidateMimeType(content.GetMimeType()); err != nil {
		return fmt.Errorf("content MIME type: %w", err)
	}

	items := content.GetContent()
	if len(items) == 0 {
		return fmt.Errorf("resource content has no items")
	}

	for i, item := range items {
		if item == nil {
			return fmt.Errorf("content item %d cannot be nil", i)
		}
		switch item.Type() {
		case "":
			return fmt.Errorf("content item %d must have a type", i)
		case "text":
			if item.GetText() == "" {
				return fmt.Errorf("text content item %d cannot be empty", i)
			}
		default:
			return fmt.Errorf("unsupported content type: %s", item.Type())
		}
	}

	return nil
}
