package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pzforge/pkg/generator"
	"github.com/goliatone/go-pzforge/pkg/renderers/tui"
	"github.com/goliatone/go-pzforge/pkg/values"
)

type createOptions struct {
	preset     string
	valuesFile string
	saveValues string
	noPrompt   bool
	dryRun     bool
}

func newCreateCmd(a *app) *cobra.Command {
	var opts createOptions
	cmd := &cobra.Command{
		Use:   "create <form>",
		Short: "Prompt for an item and write its script blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.create(cmd.Context(), args[0], opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.preset, "preset", "", "preset applied before prompting")
	flags.StringVar(&opts.valuesFile, "values", "", "JSON file with field values")
	flags.StringVar(&opts.saveValues, "save-values", "", "write the submitted values to this JSON file")
	flags.BoolVar(&opts.noPrompt, "no-prompt", false, "submit the --values file without prompting")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the item block without writing files")
	return cmd
}

func (a *app) create(ctx context.Context, formID string, opts createOptions) error {
	form, err := a.form(formID)
	if err != nil {
		return err
	}

	input := values.Values{}
	if opts.valuesFile != "" {
		data, err := os.ReadFile(opts.valuesFile)
		if err != nil {
			return fmt.Errorf("read values: %w", err)
		}
		if input, err = values.Parse(data); err != nil {
			return fmt.Errorf("%s: %w", opts.valuesFile, err)
		}
	}

	req := generator.Request{Form: form, Preset: opts.preset, Values: input}
	if !opts.noPrompt {
		prefill, err := values.Prepare(form, opts.preset, input)
		if err != nil {
			return err
		}
		collector, err := tui.New(tui.WithPromptDriver(a.promptDriver()), tui.WithTheme(a.theme()))
		if err != nil {
			return err
		}
		collected, err := collector.Collect(ctx, form, prefill)
		if err != nil {
			return err
		}
		req = generator.Request{Form: form, Values: collected}
	}

	gen, err := a.generator()
	if err != nil {
		return err
	}

	if opts.dryRun {
		out, err := gen.Preview(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprint(a.out, out)
		return nil
	}

	result, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}
	a.success("%s", result.Status)
	for _, file := range result.Files {
		a.detail("%-8s %s", file.Outcome, file.Path)
	}

	if opts.saveValues != "" {
		data, err := values.Marshal(req.Values)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.saveValues, data, 0o644); err != nil {
			return fmt.Errorf("save values: %w", err)
		}
	}
	return nil
}
