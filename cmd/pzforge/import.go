package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pzforge/pkg/generator"
	"github.com/goliatone/go-pzforge/pkg/importer"
)

type importOptions struct {
	sheet         string
	ignoreUnknown bool
}

func newImportCmd(a *app) *cobra.Command {
	var opts importOptions
	cmd := &cobra.Command{
		Use:   "import <form> <file.xlsx>",
		Short: "Write one item per spreadsheet row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.importRows(cmd.Context(), args[0], args[1], opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.sheet, "sheet", "", "sheet to read (first sheet when empty)")
	flags.BoolVar(&opts.ignoreUnknown, "ignore-unknown", false, "skip columns that match no field")
	return cmd
}

// importRows submits every row in order. Rows rejected with a status are
// reported and skipped; any other error stops the import.
func (a *app) importRows(ctx context.Context, formID, path string, opts importOptions) error {
	form, err := a.form(formID)
	if err != nil {
		return err
	}

	var readOpts []importer.Option
	if opts.sheet != "" {
		readOpts = append(readOpts, importer.WithSheet(opts.sheet))
	}
	if opts.ignoreUnknown {
		readOpts = append(readOpts, importer.WithIgnoreUnknown())
	}
	rows, err := importer.New(form, readOpts...).ReadFile(path)
	if err != nil {
		return err
	}

	gen, err := a.generator()
	if err != nil {
		return err
	}

	var created, skipped int
	for _, row := range rows {
		result, err := gen.Generate(ctx, generator.Request{
			Form:   form,
			Preset: row.Preset,
			Values: row.Values,
		})
		var statusErr *generator.StatusError
		switch {
		case errors.As(err, &statusErr):
			a.warn("row %d: %s", row.Number, statusErr.Status)
			skipped++
			continue
		case err != nil:
			return fmt.Errorf("row %d: %w", row.Number, err)
		}
		a.success("row %d: %s", row.Number, result.Status)
		created++
	}
	fmt.Fprintf(a.out, "%d created, %d skipped\n", created, skipped)
	return nil
}
