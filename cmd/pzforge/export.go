package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pzforge/pkg/forms"
	"github.com/goliatone/go-pzforge/pkg/script"
)

func newExportCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Copy the built-in forms and templates into dir for customising",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := args[0]
			sources := []struct {
				name string
				fsys fs.FS
			}{
				{name: "forms", fsys: forms.DefinitionsFS()},
				{name: "templates", fsys: script.TemplatesFS()},
			}
			for _, src := range sources {
				target := filepath.Join(dir, src.name)
				if err := exportFS(src.fsys, target, force); err != nil {
					return err
				}
				a.success("exported %s to %s", src.name, target)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

func exportFS(fsys fs.FS, dir string, force bool) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("export: %s exists (use --force to overwrite)", target)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("export: %w", err)
			}
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("export: read %s: %w", path, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	})
}
