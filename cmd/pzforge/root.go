package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pzforge/internal/config"
	"github.com/goliatone/go-pzforge/pkg/forms"
	"github.com/goliatone/go-pzforge/pkg/generator"
	"github.com/goliatone/go-pzforge/pkg/model"
	"github.com/goliatone/go-pzforge/pkg/renderers/tui"
	"github.com/goliatone/go-pzforge/pkg/script"
)

// configFlags maps persistent flag names onto the config fields they set.
var configFlags = []string{"root", "lang", "templates", "forms", "log-level"}

type app struct {
	out    io.Writer
	errOut io.Writer
	driver tui.PromptDriver

	configPath string
	flags      *config.Config

	cfg    *config.Config
	logger *slog.Logger
	forms  *forms.Store
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		flags:  config.Default(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "pzforge",
		Short:         "Generate Project Zomboid item, model and translation scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "pzforge.yaml", "config file (ignored when missing)")
	pf.StringVar(&a.flags.Root, "root", a.flags.Root, "mod directory the media tree is written under")
	pf.StringVar(&a.flags.Language, "lang", a.flags.Language, "translation language")
	pf.StringVar(&a.flags.Templates, "templates", "", "directory overriding block.tpl and translation.tpl")
	pf.StringVar(&a.flags.Forms, "forms", "", "directory with extra form definitions")
	pf.StringVar(&a.flags.LogLevel, "log-level", a.flags.LogLevel, "debug, info, warn or error")

	root.AddCommand(
		newCreateCmd(a),
		newImportCmd(a),
		newListCmd(a),
		newFormsCmd(a),
		newExportCmd(a),
	)
	return root
}

// setup merges the config file with explicit flags, then builds the logger
// and the form store.
func (a *app) setup(cmd *cobra.Command) error {
	fromFile, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(a.configPath); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	explicit := make(map[string]bool, len(configFlags))
	for _, name := range configFlags {
		explicit[name] = cmd.Flags().Changed(name)
	}
	cfg := *a.flags
	config.Merge(&cfg, fromFile, explicit)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	a.cfg = &cfg

	store, err := forms.Builtin()
	if err != nil {
		return err
	}
	if cfg.Forms != "" {
		extra, err := forms.LoadFS(os.DirFS(cfg.Forms))
		if err != nil {
			return err
		}
		store = store.Merge(extra)
	}
	a.forms = store
	a.logger.Debug("configured", "root", cfg.Root, "lang", cfg.Language, "forms", store.IDs())
	return nil
}

// form returns the named form with configured defaults applied.
func (a *app) form(id string) (model.FormModel, error) {
	form, err := a.forms.Lookup(id)
	if err != nil {
		return model.FormModel{}, err
	}
	if len(a.cfg.Defaults) == 0 {
		return form, nil
	}
	form.Fields = append([]model.Field(nil), form.Fields...)
	if err := model.DefaultsDecorator(a.cfg.Defaults, false).Decorate(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

func (a *app) generator() (*generator.Generator, error) {
	builder, err := script.NewBuilder(script.WithTemplateDir(a.cfg.Templates))
	if err != nil {
		return nil, err
	}
	return generator.New(
		generator.WithLogger(a.logger),
		generator.WithRoot(a.cfg.Root),
		generator.WithLanguage(a.cfg.Language),
		generator.WithBuilder(builder),
	), nil
}

func (a *app) promptDriver() tui.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	return tui.NewSurveyDriver(a.out)
}
