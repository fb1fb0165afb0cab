package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-pzforge/pkg/forms"
	pkgmodel "github.com/goliatone/go-pzforge/pkg/model"
	"github.com/goliatone/go-pzforge/pkg/values"
)

// MustBuiltinForm returns one of the embedded form definitions.
func MustBuiltinForm(t *testing.T, id string) pkgmodel.FormModel {
	t.Helper()

	store, err := forms.Builtin()
	if err != nil {
		t.Fatalf("load builtin forms: %v", err)
	}
	form, err := store.Lookup(id)
	if err != nil {
		t.Fatalf("builtin form: %v", err)
	}
	return form
}

// FoodValues returns a complete submission for the builtin food form: a
// perishable Apple in module MyMod with evolved recipes selected.
func FoodValues() values.Values {
	return values.Values{
		"module":                 "MyMod",
		"itemName":               "Apple",
		"weight":                 "0.2",
		"hunger":                 "10",
		"thirst":                 "5",
		"thirstDirection":        "decrease",
		"unhappy":                "0",
		"unhappyDirection":       "none",
		"carbs":                  "10",
		"proteins":               "1",
		"lipids":                 "0.5",
		"calories":               "52",
		"perishable":             true,
		"daysFresh":              "5",
		"daysTotallyRotten":      "10",
		"replaceOnRottenEnabled": true,
		"replaceOnRotten":        "RottenApple",
		"minutesToCook":          "30",
		"spice":                  true,
		"evolved":                true,
		"evolvedRecipeName":      "Apple",
		"sweetRecipes":           []string{"Cake", "Pancakes"},
		"saltyRecipes":           "Stir fry",
	}
}

// WriteFile creates parent directories and writes content, failing the test
// on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the file contents as a string, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
