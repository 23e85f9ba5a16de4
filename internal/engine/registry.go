package engine

import "fmt"

// Renderer turns a node into presentation output for one variant.
// Implementations live with the presentation layer; the engine only routes.
type Renderer interface {
	Render(n *Node) string
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(n *Node) string

func (f RendererFunc) Render(n *Node) string { return f(n) }

// Registry maps variant tags to renderers. It is a closed map populated at
// startup; unrecognized variants route to the fallback rather than failing.
type Registry struct {
	renderers map[string]Renderer
	fallback  Renderer
}

// NewRegistry creates a registry with the given fallback renderer for
// unknown variants. The fallback is required.
func NewRegistry(fallback Renderer) *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		fallback:  fallback,
	}
}

// Register binds a variant tag to a renderer. Empty tags and duplicate
// registrations are rejected so wiring mistakes surface at startup.
func (r *Registry) Register(variant string, renderer Renderer) error {
	if variant == "" {
		return fmt.Errorf("registering renderer: empty variant")
	}
	if renderer == nil {
		return fmt.Errorf("registering renderer for %q: nil renderer", variant)
	}
	if _, dup := r.renderers[variant]; dup {
		return fmt.Errorf("registering renderer for %q: already registered", variant)
	}
	r.renderers[variant] = renderer
	return nil
}

// Resolve returns the renderer for a variant, or the fallback when the
// variant is unknown.
func (r *Registry) Resolve(variant string) Renderer {
	if renderer, ok := r.renderers[variant]; ok {
		return renderer
	}
	return r.fallback
}

// Render resolves the node's variant and renders it.
func (r *Registry) Render(n *Node) string {
	if n == nil {
		return ""
	}
	return r.Resolve(n.Variant).Render(n)
}
