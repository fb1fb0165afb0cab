package template

import (
	"io"
)

// TemplateRenderer is the seam block builders rely on. Render accepts either
// a template name (resolved against the engine's loaders) or inline template
// content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
