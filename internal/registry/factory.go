package registry

// BaseFactory is the identity every entity factory carries regardless of
// what it produces. ToolFactory and ResourceFactory both extend it with
// their creation signatures.
type BaseFactory interface {
	Name() string
	Description() string
	Version() string
	Capabilities() []string
}
