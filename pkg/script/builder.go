package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-pzforge/pkg/model"
	"github.com/goliatone/go-pzforge/pkg/render/template"
	"github.com/goliatone/go-pzforge/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pzforge/pkg/values"
	"github.com/goliatone/go-pzforge/pkg/visibility"
	"github.com/goliatone/go-pzforge/pkg/visibility/expr"
)

// Option configures a Builder.
type Option func(*Builder)

// WithEngine swaps the template engine used for blocks and literal values.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(b *Builder) {
		if engine != nil {
			b.engine = engine
		}
	}
}

// WithEvaluator swaps the evaluator used for `when` rules.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(b *Builder) {
		if eval != nil {
			b.evaluator = eval
		}
	}
}

// WithTemplateDir loads block templates from dir before falling back to the
// embedded ones.
func WithTemplateDir(dir string) Option {
	return func(b *Builder) {
		b.templateDir = strings.TrimSpace(dir)
	}
}

// Builder turns form values into script blocks.
type Builder struct {
	engine      template.TemplateRenderer
	evaluator   visibility.Evaluator
	templateDir string
}

// NewBuilder constructs a Builder. Without WithEngine a pongo2 engine over the
// embedded templates is created.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.evaluator == nil {
		b.evaluator = expr.New()
	}
	if b.engine == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithRawOutput()}
		if b.templateDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(b.templateDir))
		}
		engineOpts = append(engineOpts, gotemplate.WithFS(TemplatesFS()))
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("script: template engine: %w", err)
		}
		b.engine = engine
	}
	return b, nil
}

// ItemBlock evaluates the form's properties in order against resolved values.
// Properties whose `when` rule fails or whose value is empty are left out.
func (b *Builder) ItemBlock(form model.FormModel, v values.Values) (Block, error) {
	name := v.String(model.KeyItemName)
	if name == "" {
		return Block{}, fmt.Errorf("script: item name is empty")
	}

	block := Block{Kind: KindItem, Name: name}
	for _, prop := range form.Properties {
		value, ok, err := b.propertyValue(prop, v)
		if err != nil {
			return Block{}, fmt.Errorf("script: property %s: %w", prop.Name, err)
		}
		if ok {
			block.Lines = append(block.Lines, Line{Key: prop.Name, Value: value})
		}
	}
	return block, nil
}

// Render serializes a block through the block template.
func (b *Builder) Render(block Block) (string, error) {
	out, err := b.engine.RenderTemplate(BlockTemplate, block)
	if err != nil {
		return "", fmt.Errorf("script: render %s: %w", block.Declaration(), err)
	}
	return strings.TrimRight(out, " \t\r\n"), nil
}

// TranslationLine renders the `ItemName_<Module>.<Item> = "<Name>",` entry.
// Markup and double quotes are stripped from the display name.
func (b *Builder) TranslationLine(module, item, displayName string) (string, error) {
	out, err := b.engine.RenderTemplate(TranslationTemplate, map[string]any{
		"module": module,
		"item":   item,
		"name":   SanitizeDisplayName(displayName),
	})
	if err != nil {
		return "", fmt.Errorf("script: render translation: %w", err)
	}
	return strings.TrimRight(out, "\r\n"), nil
}

// Message renders an inline template such as a form's success message.
func (b *Builder) Message(tpl string, v values.Values) (string, error) {
	out, err := b.engine.RenderString(tpl, map[string]any(v))
	if err != nil {
		return "", fmt.Errorf("script: render message: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// TranslationHeader opens the translation table for lang.
func TranslationHeader(lang string) string {
	return fmt.Sprintf("ItemName_%s = {\n", lang)
}

// TranslationKey is the substring identifying an item's translation entry.
func TranslationKey(module, item string) string {
	return fmt.Sprintf("ItemName_%s.%s =", module, item)
}

func (b *Builder) propertyValue(prop model.Property, v values.Values) (string, bool, error) {
	if prop.When != "" {
		on, err := b.evaluator.Eval(prop.Name, prop.When, visibility.Context{Values: v})
		if err != nil {
			return "", false, err
		}
		if !on {
			return "", false, nil
		}
	}

	var text string
	switch prop.Format {
	case model.FormatStat:
		return FormatStat(v.String(prop.Field), v.String(prop.Direction)), true, nil
	case model.FormatBool:
		return strconv.FormatBool(v.Bool(prop.Field)), true, nil
	case model.FormatFlag:
		if !v.Bool(prop.Field) {
			return "", false, nil
		}
		return "true", true, nil
	case model.FormatFloat:
		raw := v.String(prop.Field)
		if raw == "" && prop.Fallback != "" {
			return prop.Fallback, true, nil
		}
		parsed, err := ParseFloatText(raw)
		if err != nil {
			return "", false, err
		}
		text = parsed
	case model.FormatList:
		var items []string
		for _, key := range prop.Fields {
			for _, item := range v.Strings(key) {
				items = append(items, item+prop.Suffix)
			}
		}
		text = strings.Join(items, prop.Separator)
	case model.FormatLiteral:
		rendered, err := b.engine.RenderString(prop.Value, map[string]any(v))
		if err != nil {
			return "", false, err
		}
		text = strings.TrimSpace(rendered)
	default:
		text = v.String(prop.Field)
	}

	if text == "" {
		if prop.Fallback != "" {
			return prop.Fallback, true, nil
		}
		return "", false, nil
	}
	return text, true, nil
}
