package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-pzforge/pkg/renderers/tui"
	"github.com/goliatone/go-pzforge/pkg/testsupport"
	"github.com/goliatone/go-pzforge/pkg/values"
)

func execute(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	if a == nil {
		a = newApp(&out, &errOut)
	} else {
		a.out, a.errOut = &out, &errOut
	}
	configPath := filepath.Join(t.TempDir(), "pzforge.yaml")
	testsupport.WriteFile(t, configPath, "")

	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(testsupport.Context())
	if err != nil {
		a.failure(err)
	}
	return color.ClearCode(out.String()), color.ClearCode(errOut.String()), err
}

func writeValues(t *testing.T, v values.Values) string {
	t.Helper()
	data, err := values.Marshal(v)
	if err != nil {
		t.Fatalf("marshal values: %v", err)
	}
	path := filepath.Join(t.TempDir(), "apple.json")
	testsupport.WriteFile(t, path, string(data))
	return path
}

func itemFile(root string) string {
	return filepath.Join(root, "media", "scripts", "generated", "items", "MyMod_Food.txt")
}

func TestRun_ExitCodes(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(context.Background(), []string{"create"}, &out, &errOut); code != 1 {
		t.Fatalf("expected exit code 1 for missing form argument, got %d", code)
	}
	if code := run(context.Background(), []string{"--help"}, &out, &errOut); code != 0 {
		t.Fatalf("expected exit code 0 for help, got %d", code)
	}
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if code := run(context.Background(), []string{"--config", missing, "forms"}, &out, &errOut); code != 1 {
		t.Fatalf("expected exit code 1 for an explicit missing config, got %d", code)
	}
}

func TestFormsCommand(t *testing.T) {
	out, _, err := execute(t, nil, "forms")
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	if !strings.Contains(out, "consumable") || !strings.Contains(out, "presets: Food, Medical, None") {
		t.Fatalf("unexpected forms output:\n%s", out)
	}
	if !strings.Contains(out, "food") {
		t.Fatalf("food form missing:\n%s", out)
	}
}

func TestCreate_NoPrompt(t *testing.T) {
	root := t.TempDir()
	saved := filepath.Join(t.TempDir(), "saved.json")

	out, _, err := execute(t, nil, "--root", root, "create", "food",
		"--no-prompt", "--values", writeValues(t, testsupport.FoodValues()), "--save-values", saved)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "Food Item Created: Apple") || !strings.Contains(out, "created") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if content := testsupport.ReadFile(t, itemFile(root)); !strings.Contains(content, "item Apple\n") {
		t.Fatalf("item block missing:\n%s", content)
	}

	replay, err := values.Parse([]byte(testsupport.ReadFile(t, saved)))
	if err != nil {
		t.Fatalf("parse saved values: %v", err)
	}
	if replay.String("itemName") != "Apple" {
		t.Fatalf("unexpected saved values %v", replay)
	}
}

func TestCreate_DuplicateAndMissing(t *testing.T) {
	root := t.TempDir()
	valuesFile := writeValues(t, testsupport.FoodValues())

	if _, _, err := execute(t, nil, "--root", root, "create", "food", "--no-prompt", "--values", valuesFile); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, errOut, err := execute(t, nil, "--root", root, "create", "food", "--no-prompt", "--values", valuesFile)
	if err == nil || !strings.Contains(errOut, "Item 'Apple' already exists!") {
		t.Fatalf("expected duplicate status, got %v:\n%s", err, errOut)
	}

	incomplete := testsupport.FoodValues()
	delete(incomplete, "weight")
	incomplete["itemName"] = "Pear"
	_, errOut, err = execute(t, nil, "--root", root, "create", "food", "--no-prompt", "--values", writeValues(t, incomplete))
	if err == nil || !strings.Contains(errOut, "Fill all required fields!") {
		t.Fatalf("expected missing field status, got %v:\n%s", err, errOut)
	}
	if strings.Contains(testsupport.ReadFile(t, itemFile(root)), "item Pear") {
		t.Fatalf("rejected item was written")
	}
}

func TestCreate_DryRun(t *testing.T) {
	root := t.TempDir()
	out, _, err := execute(t, nil, "--root", root, "create", "food",
		"--no-prompt", "--dry-run", "--values", writeValues(t, testsupport.FoodValues()))
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !strings.HasPrefix(out, "item Apple\n{") {
		t.Fatalf("unexpected preview:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "media")); err == nil {
		t.Fatalf("dry run wrote files")
	}
}

func TestCreate_ConfigDefaultsAndLanguage(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "pzforge.yaml")
	testsupport.WriteFile(t, configPath, "root: "+root+"\nlanguage: FR\ndefaults:\n  module: Kitchen\n")

	input := testsupport.FoodValues()
	delete(input, "module")

	var out, errOut bytes.Buffer
	code := run(testsupport.Context(), []string{"--config", configPath, "create", "food", "--no-prompt", "--values", writeValues(t, input)}, &out, &errOut)
	if code != 0 {
		t.Fatalf("create failed: %s", errOut.String())
	}
	translation := filepath.Join(root, "media", "lua", "shared", "translate", "FR", "Kitchen_ItemName_FR.txt")
	if !strings.Contains(testsupport.ReadFile(t, translation), "ItemName_Kitchen.Apple") {
		t.Fatalf("unexpected translation file")
	}
}

type acceptDefaults struct {
	infos []string
}

func (d *acceptDefaults) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	return cfg.Default, nil
}

func (d *acceptDefaults) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	return cfg.Default, nil
}

func (d *acceptDefaults) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d *acceptDefaults) MultiSelect(_ context.Context, cfg tui.SelectConfig) ([]int, error) {
	return cfg.Defaults, nil
}

func (d *acceptDefaults) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	if len(d.infos) > 20 {
		return errors.New("too many rejected answers")
	}
	return nil
}

func TestCreate_Prompted(t *testing.T) {
	root := t.TempDir()
	driver := &acceptDefaults{}
	a := newApp(nil, nil)
	a.driver = driver

	input := testsupport.FoodValues()
	input["itemName"] = "Cherry"
	out, _, err := execute(t, a, "--root", root, "create", "food", "--values", writeValues(t, input))
	if err != nil {
		t.Fatalf("create: %v (infos %v)", err, driver.infos)
	}
	if !strings.Contains(out, "Food Item Created: Cherry") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestImportCommand(t *testing.T) {
	root := t.TempDir()
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	header := []any{"module", "itemName", "weight", "hunger", "thirst", "unhappy", "carbs", "proteins", "lipids", "calories"}
	rows := [][]any{
		header,
		{"MyMod", "Apple", "0.2", "10", "5", "0", "10", "1", "0.5", "52"},
		{"MyMod", "Apple", "0.3", "10", "5", "0", "10", "1", "0.5", "52"},
		{"MyMod", "Pear", "0.2", "10", "5", "0", "10", "1", "0.5", "60"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell: %v", err)
		}
		row := row
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "items.xlsx")
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, _, err := execute(t, nil, "--root", root, "import", "food", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "row 3: Item 'Apple' already exists!") || !strings.Contains(out, "2 created, 1 skipped") {
		t.Fatalf("unexpected import output:\n%s", out)
	}

	out, _, err = execute(t, nil, "--root", root, "list", "--kind", "item")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "item  Apple") || !strings.Contains(out, "item  Pear") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := execute(t, nil, "export", dir); err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, name := range []string{"forms/food.yaml", "forms/consumable.yaml", "templates/block.tpl", "templates/translation.tpl"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	if _, _, err := execute(t, nil, "export", dir); err == nil {
		t.Fatalf("expected second export without --force to fail")
	}
	if _, _, err := execute(t, nil, "export", dir, "--force"); err != nil {
		t.Fatalf("forced export: %v", err)
	}
}
