package resources

import (
	"context"
	"fmt"

	"dracor-mcp/internal/mcp"
)

// HandlerFunc adapts a plain function to the mcp.ResourceHandler interface
type HandlerFunc func(ctx context.Context, uri string) (mcp.ResourceContent, error)

// Read implements mcp.ResourceHandler
func (f HandlerFunc) Read(ctx context.Context, uri string) (mcp.ResourceContent, error) {
	return f(ctx, uri)
}

/// Definition declares a single MCP resource: its URI, metadata and the
// handler reading it. Resource packages expose their surface as a slice
// of definitions which the registration layer turns into factories.
type Definition struct {
	URI          string
	Name         string
	Description  string
	MimeType     string
	Tags         []string
	Capabilities []string
	Handler      HandlerFunc
}

// definitionResource implements mcp.Resource for a Definition
type definitionResource struct {
	def Definition
}

func (r *definitionResource) URI() string {
	return r.def.URI
}

func (r *definitionResource) Name() string {
	return r.def.Name
}

func (r *definitionResource) Description() string {
	return r.def.Description
}

func (r *definitionResource) MimeType() string {
	return r.def.MimeType
}

func (r *definitionResource) Handler() mcp.ResourceHandler {
	return r.def.Handler
}

// DefinitionFactory implements ResourceFactory for a static resource definition
type DefinitionFactory struct {
	def     Definition
	version string
}

// NewDefinitionFactory creates a factory producing the resource described by def
func NewDefinitionFactory(def Definition, version string) *DefinitionFactory {
	return &DefinitionFactory{
		def:     def,
		version: version,
	}
}

func (f *DefinitionFactory) URI() string {
	return f.def.URI
}

func (f *DefinitionFactory) Name() string {
	return f.def.Name
}

func (f *DefinitionFactory) Description() string {
	return f.def.Description
}

func (f *DefinitionFactory) MimeType() string {
	return f.def.MimeType
}

func (f *DefinitionFactory) Version() string {
	return f.version
}

func (f *DefinitionFactory) Tags() []string {
	return f.def.Tags
}

func (f *DefinitionFactory) Capabilities() []string {
	return f.def.Capabilities
}

func (f *DefinitionFactory) Create(ctx context.Context, config ResourceConfig) (mcp.Resource, error) {
	if !config.Enabled {
		return nil, fmt.Errorf("resource %s is disabled in configuration", f.def.URI)
	}

	if f.def.Handler == nil {
		return nil, fmt.Errorf("resource %s has no handler", f.def.URI)
	}

	return &definitionResource{def: f.def}, nil
}

func (f *DefinitionFactory) Validate(config ResourceConfig) error {
	for key := range config.Config {
		if key == "" {
			return fmt.Errorf("invalid configuration key for resource %s", f.def.URI)
		}
	}

	return nil
}

// TemplateDefinition declares a parameterized resource template. Templates
// are matched by URI template on the MCP side and read like resources, with
// the expanded URI passed to the handler.
type TemplateDefinition struct {
	URITemplate string
	Name        string
	Description string
	MimeType    string
	Handler     HandlerFunc
}

// definitionTemplate implements mcp.ResourceTemplate for a TemplateDefinition
type definitionTemplate struct {
	def TemplateDefinition
}

// NewTemplate creates the resource template described by def
func NewTemplate(def TemplateDefinition) mcp.ResourceTemplate {
	return &definitionTemplate{def: def}
}

func (t *definitionTemplate) URITemplate() string {
	return t.def.URITemplate
}

func (t *definitionTemplate) Name() string {
	return t.def.Name
}

func (t *definitionTemplate) Description() string {
	return t.def.Description
}

func (t *definitionTemplate) MimeType() string {
	return t.def.MimeType
}

func (t *definitionTemplate) Handler() mcp.ResourceHandler {
	return t.def.Handler
}
