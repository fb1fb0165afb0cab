package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/goliatone/go-pzforge/pkg/model"
	"github.com/goliatone/go-pzforge/pkg/script"
	"github.com/goliatone/go-pzforge/pkg/scriptfile"
	"github.com/goliatone/go-pzforge/pkg/values"
	"github.com/goliatone/go-pzforge/pkg/visibility"
	"github.com/goliatone/go-pzforge/pkg/visibility/expr"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithLogger injects the logger used for per-step diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRoot sets the directory the `media/...` tree is written under.
func WithRoot(root string) Option {
	return func(g *Generator) {
		g.layout.Root = root
	}
}

// WithLanguage selects the translation table. Defaults to EN.
func WithLanguage(lang string) Option {
	return func(g *Generator) {
		if lang = strings.TrimSpace(lang); lang != "" {
			g.layout.Language = strings.ToUpper(lang)
		}
	}
}

// WithBuilder injects a preconfigured block builder.
func WithBuilder(builder *script.Builder) Option {
	return func(g *Generator) {
		g.builder = builder
	}
}

// WithEvaluator swaps the toggle rule evaluator.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(g *Generator) {
		if eval != nil {
			g.evaluator = eval
		}
	}
}

// WithDecorators registers decorators run against a copy of the form before
// every submit.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(g *Generator) {
		for _, decorator := range decorators {
			if decorator != nil {
				g.decorators = append(g.decorators, decorator)
			}
		}
	}
}

// Generator runs one form submit: resolve values, validate, check for an
// existing declaration, then write the translation entry, the model block and
// the item block.
type Generator struct {
	logger        *slog.Logger
	layout        Layout
	builder       *script.Builder
	evaluator     visibility.Evaluator
	decorators    []model.Decorator
	initialiseErr error
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{
		layout: Layout{Root: ".", Language: DefaultLanguage},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if g.evaluator == nil {
		g.evaluator = expr.New()
	}
	if g.builder == nil {
		builder, err := script.NewBuilder(script.WithEvaluator(g.evaluator))
		if err != nil {
			g.initialiseErr = fmt.Errorf("generator: default builder: %w", err)
		}
		g.builder = builder
	}
	return g
}

// Layout returns the resolved output layout.
func (g *Generator) Layout() Layout {
	return g.layout
}

// Request describes a single submit.
type Request struct {
	// Form is the normalized form definition.
	Form model.FormModel

	// Preset optionally names a preset applied underneath Values.
	Preset string

	// Values carries the collected field values.
	Values values.Values
}

// FileResult records what happened to one target file.
type FileResult struct {
	Path    string             `json:"path"`
	Outcome scriptfile.Outcome `json:"outcome"`
}

// Result describes a successful submit.
type Result struct {
	Item   string        `json:"item"`
	Status string        `json:"status"`
	Values values.Values `json:"values"`
	Block  script.Block  `json:"block"`
	Files  []FileResult  `json:"files"`
}

// Plan resolves and validates a request without touching the filesystem. The
// returned values have hidden fields removed.
func (g *Generator) Plan(ctx context.Context, req Request) (model.FormModel, values.Values, script.Block, error) {
	if ctx == nil {
		return model.FormModel{}, nil, script.Block{}, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, nil, script.Block{}, err
	}
	if err := g.initialiseErr; err != nil {
		return model.FormModel{}, nil, script.Block{}, err
	}

	form, err := g.decorate(req.Form)
	if err != nil {
		return model.FormModel{}, nil, script.Block{}, err
	}

	prepared, err := values.Prepare(form, req.Preset, req.Values)
	if err != nil {
		return model.FormModel{}, nil, script.Block{}, invalidValue(err)
	}
	resolved, active, err := values.Resolve(form, prepared, g.evaluator)
	if err != nil {
		return model.FormModel{}, nil, script.Block{}, fmt.Errorf("generator: resolve values: %w", err)
	}
	if missing := values.Missing(form, resolved, active); len(missing) > 0 {
		return model.FormModel{}, nil, script.Block{}, missingRequired(missing)
	}
	for _, key := range model.IdentityKeys {
		if !resolved.Has(key) {
			field, _ := form.Field(key)
			return model.FormModel{}, nil, script.Block{}, missingRequired([]string{field.Label})
		}
	}
	for _, key := range scriptNameKeys {
		if err := checkScriptName(resolved.String(key)); err != nil {
			field, _ := form.Field(key)
			return model.FormModel{}, nil, script.Block{}, invalidValue(fmt.Errorf("%s: %w", field.Label, err))
		}
	}

	block, err := g.builder.ItemBlock(form, resolved)
	if err != nil {
		if errors.Is(err, script.ErrInvalidNumber) {
			return model.FormModel{}, nil, script.Block{}, invalidValue(err)
		}
		return model.FormModel{}, nil, script.Block{}, fmt.Errorf("generator: build item: %w", err)
	}
	return form, resolved, block, nil
}

// Preview renders the item block a request would write, without touching the
// filesystem.
func (g *Generator) Preview(ctx context.Context, req Request) (string, error) {
	_, _, block, err := g.Plan(ctx, req)
	if err != nil {
		return "", err
	}
	out, err := g.builder.Render(block)
	if err != nil {
		return "", fmt.Errorf("generator: %w", err)
	}
	return out, nil
}

// Generate validates the request and writes its files. Validation and
// duplicate failures return a *StatusError and leave the filesystem untouched.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	form, resolved, block, err := g.Plan(ctx, req)
	if err != nil {
		return Result{}, err
	}

	module := resolved.String(model.KeyModule)
	itemName := resolved.String(model.KeyItemName)
	asset := resolved.String(model.KeyAsset)
	logger := g.logger.With("form", form.ID, "module", module, "item", itemName)

	itemBlock, err := g.builder.Render(block)
	if err != nil {
		return Result{}, fmt.Errorf("generator: %w", err)
	}
	modelBlock, err := g.builder.Render(script.ModelBlock(asset))
	if err != nil {
		return Result{}, fmt.Errorf("generator: %w", err)
	}
	translation, err := g.builder.TranslationLine(module, itemName, resolved.String(model.KeyDisplayName))
	if err != nil {
		return Result{}, fmt.Errorf("generator: %w", err)
	}

	if err := g.layout.Ensure(); err != nil {
		return Result{}, err
	}

	itemFile := g.layout.ItemFile(form.ItemFile, resolved)
	exists, err := scriptfile.FileContainsDeclaration(itemFile, script.KindItem, itemName)
	if err != nil {
		return Result{}, fmt.Errorf("generator: duplicate check: %w", err)
	}
	if exists {
		logger.Warn("item already declared", "file", itemFile)
		return Result{}, duplicateItem(itemName, itemFile)
	}

	result := Result{Item: itemName, Values: resolved, Block: block}
	steps := []struct {
		path  string
		block string
		opts  []scriptfile.Option
	}{
		{
			path:  g.layout.TranslationFile(module),
			block: translation,
			opts: []scriptfile.Option{
				scriptfile.WithHeader(script.TranslationHeader(g.layout.Language)),
				scriptfile.WithKey(script.TranslationKey(module, itemName)),
				scriptfile.WithSeparator("\n"),
			},
		},
		{
			path:  g.layout.ModelFile(module),
			block: modelBlock,
			opts:  []scriptfile.Option{scriptfile.WithModuleHeader(module)},
		},
		{
			path:  itemFile,
			block: itemBlock,
			opts:  []scriptfile.Option{scriptfile.WithModuleHeader(module)},
		},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		outcome, err := scriptfile.InsertBlock(step.path, step.block, step.opts...)
		if err != nil {
			logger.Error("write failed", "file", step.path, "error", err)
			return result, fmt.Errorf("generator: %w", err)
		}
		logger.Debug("wrote block", "file", step.path, "outcome", outcome)
		result.Files = append(result.Files, FileResult{Path: step.path, Outcome: outcome})
	}

	status, err := g.builder.Message(form.SuccessMessage, resolved)
	if err != nil {
		return result, fmt.Errorf("generator: %w", err)
	}
	result.Status = status
	logger.Info("item created", "file", itemFile)
	return result, nil
}

func (g *Generator) decorate(form model.FormModel) (model.FormModel, error) {
	if len(g.decorators) == 0 {
		return form, nil
	}
	out := form
	out.Fields = append([]model.Field(nil), form.Fields...)
	out.Properties = append([]model.Property(nil), form.Properties...)
	for _, decorator := range g.decorators {
		if err := decorator.Decorate(&out); err != nil {
			return model.FormModel{}, fmt.Errorf("generator: decorate form: %w", err)
		}
	}
	return out, nil
}

// scriptNameKeys are the values written as bare script identifiers or used
// in output paths.
var scriptNameKeys = []string{model.KeyModule, model.KeyItemName, model.KeyAsset}

// checkScriptName rejects names the script parser would split or that would
// escape the media tree through the item file pattern.
func checkScriptName(name string) error {
	if name == "." || name == ".." {
		return fmt.Errorf("%q is not a valid script name", name)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || strings.ContainsRune("{}=,/\\", r) {
			return fmt.Errorf("%q is not a valid script name: unexpected %q", name, r)
		}
	}
	return nil
}
