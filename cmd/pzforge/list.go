package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pzforge/pkg/catalog"
	"github.com/goliatone/go-pzforge/pkg/scriptfile"
)

func newListCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List item and model declarations under the mod root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.list(cmd.Context(), kind)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only show item or model declarations")
	return cmd
}

func (a *app) list(ctx context.Context, kind string) error {
	switch kind {
	case "", scriptfile.KindItem, scriptfile.KindModel:
	default:
		return fmt.Errorf("unknown kind %q (want %s or %s)", kind, scriptfile.KindItem, scriptfile.KindModel)
	}

	cat, err := catalog.ScanDir(ctx, a.cfg.Root)
	if err != nil {
		return err
	}
	for _, entry := range cat.Entries {
		var lines []string
		for _, decl := range entry.Declarations {
			if kind != "" && decl.Kind != kind {
				continue
			}
			lines = append(lines, fmt.Sprintf("%-5s %s (line %d)", decl.Kind, decl.Name, decl.Line))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintln(a.out, filepath.FromSlash(entry.File))
		for _, line := range lines {
			fmt.Fprintln(a.out, "  "+line)
		}
	}

	for _, k := range []string{scriptfile.KindItem, scriptfile.KindModel} {
		if kind != "" && kind != k {
			continue
		}
		dups := cat.Duplicates(k)
		names := make([]string, 0, len(dups))
		for name := range dups {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			a.warn("%s %s declared in %s", k, name, strings.Join(dups[name], ", "))
		}
	}
	return nil
}
