package pzforge

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-pzforge/pkg/generator"
	"github.com/goliatone/go-pzforge/pkg/script"
	"github.com/goliatone/go-pzforge/pkg/testsupport"
)

func TestGenerateWritesBuiltinForm(t *testing.T) {
	root := t.TempDir()
	result, err := Generate(testsupport.Context(), "food", testsupport.FoodValues(), generator.WithRoot(root))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Item != "Apple" || len(result.Files) != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	content := testsupport.ReadFile(t, filepath.Join(root, "media", "scripts", "generated", "items", "MyMod_Food.txt"))
	if !strings.Contains(content, "item Apple\n") {
		t.Fatalf("item block missing:\n%s", content)
	}
}

func TestGenerateUnknownForm(t *testing.T) {
	_, err := Generate(testsupport.Context(), "weapon", Values{}, generator.WithRoot(t.TempDir()))
	if err == nil || !strings.Contains(err.Error(), "weapon") {
		t.Fatalf("expected unknown form error, got %v", err)
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), script.BlockTemplate+".tpl"); err != nil {
		t.Fatalf("expected block template to be readable: %v", err)
	}
	if _, err := fs.ReadFile(EmbeddedForms(), "food.yaml"); err != nil {
		t.Fatalf("expected food form to be readable: %v", err)
	}
}
