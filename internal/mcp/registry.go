package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yosida95/uritemplate/v3"
)

// TemplateHandlerFunc serves a templated resource. vars holds the variables
// extracted from uri, percent-decoded once by the template matcher.
type TemplateHandlerFunc func(ctx context.Context, uri string, vars map[string]string) ([]mcp.ResourceContents, error)

// ToolBinding pairs a tool definition with its handler.
type ToolBinding struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// ResourceBinding pairs a fixed-URI resource with its handler.
type ResourceBinding struct {
	Resource mcp.Resource
	Handler  server.ResourceHandlerFunc
}

// TemplateBinding pairs a URI template with its compiled matcher and handler.
type TemplateBinding struct {
	Template mcp.ResourceTemplate
	Handler  TemplateHandlerFunc
	matcher  *uritemplate.Template
}

// PromptBinding pairs a prompt definition with its handler.
type PromptBinding struct {
	Prompt  mcp.Prompt
	Handler server.PromptHandlerFunc
}

// Registry is the explicit table of everything the server exposes. It is built
// once at startup and then handed to mcp-go by Install.
type Registry struct {
	tools     map[string]ToolBinding
	toolOrder []string

	resources     map[string]ResourceBinding
	resourceOrder []string

	templates []TemplateBinding

	prompts     map[string]PromptBinding
	promptOrder []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:     make(map[string]ToolBinding),
		resources: make(map[string]ResourceBinding),
		prompts:   make(map[string]PromptBinding),
	}
}

// AddTool registers a tool. Names must be unique.
func (r *Registry) AddTool(tool mcp.Tool, handler server.ToolHandlerFunc) error {
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %q already registered", tool.Name)
	}
	r.tools[tool.Name] = ToolBinding{Tool: tool, Handler: handler}
	r.toolOrder = append(r.toolOrder, tool.Name)
	return nil
}

// AddResource registers a resource with a fixed URI.
func (r *Registry) AddResource(resource mcp.Resource, handler server.ResourceHandlerFunc) error {
	if _, exists := r.resources[resource.URI]; exists {
		return fmt.Errorf("resource %q already registered", resource.URI)
	}
	r.resources[resource.URI] = ResourceBinding{Resource: resource, Handler: handler}
	r.resourceOrder = append(r.resourceOrder, resource.URI)
	return nil
}

// AddTemplate registers a templated resource. The template is compiled here so
// that a malformed pattern fails at startup.
func (r *Registry) AddTemplate(uriTemplate, name string, handler TemplateHandlerFunc, opts ...mcp.ResourceTemplateOption) error {
	matcher, err := uritemplate.New(uriTemplate)
	if err != nil {
		return fmt.Errorf("invalid resource template %q: %w", uriTemplate, err)
	}
	for _, existing := range r.templates {
		if existing.matcher.Raw() == matcher.Raw() {
			return fmt.Errorf("resource template %q already registered", uriTemplate)
		}
	}

	r.templates = append(r.templates, TemplateBinding{
		Template: mcp.NewResourceTemplate(uriTemplate, name, opts...),
		Handler:  handler,
		matcher:  matcher,
	})
	return nil
}

// AddPrompt registers a prompt.
func (r *Registry) AddPrompt(prompt mcp.Prompt, handler server.PromptHandlerFunc) error {
	if _, exists := r.prompts[prompt.Name]; exists {
		return fmt.Errorf("prompt %q already registered", prompt.Name)
	}
	r.prompts[prompt.Name] = PromptBinding{Prompt: prompt, Handler: handler}
	r.promptOrder = append(r.promptOrder, prompt.Name)
	return nil
}

// Tool looks up a tool by name.
func (r *Registry) Tool(name string) (ToolBinding, bool) {
	b, ok := r.tools[name]
	return b, ok
}

// Prompt looks up a prompt by name.
func (r *Registry) Prompt(name string) (PromptBinding, bool) {
	b, ok := r.prompts[name]
	return b, ok
}

// ToolNames returns tool names in registration order.
func (r *Registry) ToolNames() []string { return append([]string(nil), r.toolOrder...) }

// ResourceURIs returns fixed resource URIs in registration order.
func (r *Registry) ResourceURIs() []string { return append([]string(nil), r.resourceOrder...) }

// PromptNames returns prompt names in registration order.
func (r *Registry) PromptNames() []string { return append([]string(nil), r.promptOrder...) }

// TemplateURIs returns the raw URI templates in registration order.
func (r *Registry) TemplateURIs() []string {
	uris := make([]string, 0, len(r.templates))
	for _, t := range r.templates {
		uris = append(uris, t.matcher.Raw())
	}
	return uris
}

// MatchTemplate finds the first template matching uri and returns it with the
// decoded variables. Values are used exactly as the matcher decodes them; a
// second decode would let "a%2541.md" address "aA.md" instead of "a%41.md".
func (r *Registry) MatchTemplate(uri string) (TemplateBinding, map[string]string, bool) {
	for _, t := range r.templates {
		values := t.matcher.Match(uri)
		if values == nil {
			continue
		}

		vars := make(map[string]string, len(values))
		for name, value := range values {
			if len(value.V) == 0 {
				continue
			}
			vars[name] = value.V[0]
		}
		return t, vars, true
	}
	return TemplateBinding{}, nil, false
}

// ReadResource dispatches uri to its fixed resource, or failing that to the
// first matching template.
func (r *Registry) ReadResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if b, ok := r.resources[uri]; ok {
		req := mcp.ReadResourceRequest{}
		req.Params.URI = uri
		return b.Handler(ctx, req)
	}

	if t, vars, ok := r.MatchTemplate(uri); ok {
		return t.Handler(ctx, uri, vars)
	}

	return nil, fmt.Errorf("no resource registered for %q", uri)
}

// Install registers every binding with s. Templated reads go back through the
// registry so that variable extraction does not depend on mcp-go internals.
func (r *Registry) Install(s *server.MCPServer) {
	for _, name := range r.toolOrder {
		b := r.tools[name]
		s.AddTool(b.Tool, b.Handler)
	}

	for _, uri := range r.resourceOrder {
		b := r.resources[uri]
		s.AddResource(b.Resource, b.Handler)
	}

	for _, t := range r.templates {
		s.AddResourceTemplate(t.Template, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return r.ReadResource(ctx, req.Params.URI)
		})
	}

	for _, name := range r.promptOrder {
		b := r.prompts[name]
		s.AddPrompt(b.Prompt, b.Handler)
	}
}
