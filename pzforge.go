package pzforge

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-pzforge/pkg/forms"
	"github.com/goliatone/go-pzforge/pkg/generator"
	"github.com/goliatone/go-pzforge/pkg/script"
	"github.com/goliatone/go-pzforge/pkg/values"
)

// Values aliases the form value map so callers do not need to import the
// values package for simple submits.
type Values = values.Values

// Result aliases generator.Result.
type Result = generator.Result

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// BuiltinForms returns the embedded food and consumable forms.
func BuiltinForms() (*forms.Store, error) {
	return forms.Builtin()
}

// Generate looks up a built-in form by id and writes the item described by
// input. It is the simplest entry point for callers that already hold the
// field values.
func Generate(ctx context.Context, formID string, input Values, options ...generator.Option) (Result, error) {
	store, err := forms.Builtin()
	if err != nil {
		return Result{}, err
	}
	form, err := store.Lookup(formID)
	if err != nil {
		return Result{}, err
	}
	return generator.New(options...).Generate(ctx, generator.Request{
		Form:   form,
		Values: input,
	})
}

// EmbeddedTemplates exposes the block templates bundled with the module.
func EmbeddedTemplates() fs.FS {
	return script.TemplatesFS()
}

// EmbeddedForms exposes the form definitions bundled with the module.
func EmbeddedForms() fs.FS {
	return forms.DefinitionsFS()
}
