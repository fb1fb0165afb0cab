package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFormsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the available forms and their presets",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, id := range a.forms.IDs() {
				form, _ := a.forms.Form(id)
				line := fmt.Sprintf("%-12s %s", id, form.Title)
				if presets := form.PresetNames(); len(presets) > 0 {
					line += " (presets: " + strings.Join(presets, ", ") + ")"
				}
				fmt.Fprintln(a.out, line)
			}
			return nil
		},
	}
}
