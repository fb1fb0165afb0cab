package forms_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pzforge/pkg/forms"
	"github.com/goliatone/go-pzforge/pkg/model"
)

const identityYAML = `
  - key: module
  - key: itemName
  - key: ingame
    defaultFrom: itemName
  - key: asset
    defaultFrom: itemName`

func TestLoadFS_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"drinks/soda.json": {Data: []byte(`{
			"id": "soda",
			"fields": [
				{"key": "module"}, {"key": "itemName"}, {"key": "ingame"}, {"key": "asset"},
				{"key": "fizzy", "kind": "toggle"}
			],
			"properties": [{"field": "fizzy", "format": "flag"}]
		}`)},
		"snack.yaml": {Data: []byte("id: snack\nitemFile: \"{module}_Snacks.txt\"\nfields:" + identityYAML + "\n")},
		"README.md":  {Data: []byte("not a form")},
	}

	store, err := forms.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"snack", "soda"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	soda, ok := store.Form("soda")
	if !ok {
		t.Fatalf("soda form missing")
	}
	if soda.Source != "drinks/soda.json" || soda.ItemFile != model.DefaultItemFile {
		t.Fatalf("unexpected soda defaults: source=%q itemFile=%q", soda.Source, soda.ItemFile)
	}
	if soda.Properties[0].Name != "Fizzy" {
		t.Fatalf("expected derived property name, got %q", soda.Properties[0].Name)
	}

	snack, _ := store.Form("snack")
	if snack.ItemFile != "{module}_Snacks.txt" {
		t.Fatalf("unexpected snack item file %q", snack.ItemFile)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate id": {
			"a.yaml": {Data: []byte("id: dup\nfields:" + identityYAML + "\n")},
			"b.yml":  {Data: []byte("id: dup\nfields:" + identityYAML + "\n")},
		},
		"empty file": {
			"a.yaml": {Data: []byte("   \n")},
		},
		"invalid definition": {
			"a.yaml": {Data: []byte("id: broken\nfields:\n  - key: itemName\n")},
		},
		"bad json": {
			"a.json": {Data: []byte(`{"id": `)},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := forms.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	store, err := forms.Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	if diff := cmp.Diff([]string{"consumable", "food"}, store.IDs()); diff != "" {
		t.Fatalf("builtin ids mismatch (-want +got):\n%s", diff)
	}

	consumable, err := store.Lookup("consumable")
	if err != nil {
		t.Fatalf("consumable: %v", err)
	}
	if diff := cmp.Diff([]string{"Food", "Medical", "None"}, consumable.PresetNames()); diff != "" {
		t.Fatalf("presets mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.Lookup("weapon"); err == nil || !strings.Contains(err.Error(), "consumable, food") {
		t.Fatalf("expected error listing available forms, got %v", err)
	}
}

func TestStoreMerge(t *testing.T) {
	builtin, err := forms.Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	custom, err := forms.LoadFS(fstest.MapFS{
		"food.yaml": {Data: []byte("id: food\ntitle: Custom Food\nfields:" + identityYAML + "\n")},
	})
	if err != nil {
		t.Fatalf("load custom: %v", err)
	}

	merged := builtin.Merge(custom)
	food, _ := merged.Form("food")
	if food.Title != "Custom Food" {
		t.Fatalf("expected custom food to win, got %q", food.Title)
	}
	if _, ok := merged.Form("consumable"); !ok {
		t.Fatalf("expected builtin consumable to survive merge")
	}
	if before, _ := builtin.Form("food"); before.Title == "Custom Food" {
		t.Fatalf("merge must not mutate the receiver")
	}
}
