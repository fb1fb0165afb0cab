package importer_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-pzforge/pkg/importer"
	"github.com/goliatone/go-pzforge/pkg/testsupport"
	"github.com/goliatone/go-pzforge/pkg/values"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", idx+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "items.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestReadFile_MapsHeaderToFields(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"module", "Item Name", "weight", "Perishable", "sweetRecipes", "preset"},
		{"MyMod", "Apple", "0.2", "x", "Cake;Pancakes", ""},
		{},
		{"MyMod", "Bread", "", "no", "", "Fresh"},
	})
	form := testsupport.MustBuiltinForm(t, "food")

	rows, err := importer.New(form).ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := []importer.Row{
		{Number: 2, Values: values.Values{
			"module":       "MyMod",
			"itemName":     "Apple",
			"weight":       "0.2",
			"perishable":   "x",
			"sweetRecipes": "Cake;Pancakes",
		}},
		{Number: 4, Preset: "Fresh", Values: values.Values{
			"module":     "MyMod",
			"itemName":   "Bread",
			"perishable": "no",
		}},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile_NamedSheetAndUnknownColumns(t *testing.T) {
	path := writeWorkbook(t, "Food", [][]any{
		{"itemName", "notes"},
		{"Apple", "crunchy"},
	})
	form := testsupport.MustBuiltinForm(t, "food")

	_, err := importer.New(form, importer.WithSheet("Food")).ReadFile(path)
	if err == nil || !strings.Contains(err.Error(), `"notes"`) {
		t.Fatalf("expected unknown column error, got %v", err)
	}

	rows, err := importer.New(form, importer.WithSheet("Food"), importer.WithIgnoreUnknown()).ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0].Values.String("itemName") != "Apple" || rows[0].Values.Has("notes") {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestReadFile_Errors(t *testing.T) {
	form := testsupport.MustBuiltinForm(t, "food")

	headerOnly := writeWorkbook(t, "Sheet1", [][]any{{"itemName"}})
	if _, err := importer.New(form).ReadFile(headerOnly); !errors.Is(err, importer.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}

	duplicate := writeWorkbook(t, "Sheet1", [][]any{{"itemName", "Item Name"}, {"Apple", "Apple"}})
	if _, err := importer.New(form).ReadFile(duplicate); err == nil {
		t.Fatalf("expected duplicate column error")
	}

	if _, err := importer.New(form).ReadFile(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatalf("expected open error")
	}
}

func TestReadFile_KeyBeatsLabel(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"itemName", "ReplaceOnRotten", "Rotten replacement"},
		{"Apple", "RottenApple", "ignored"},
	})
	form := testsupport.MustBuiltinForm(t, "food")

	_, err := importer.New(form).ReadFile(path)
	if err == nil || !strings.Contains(err.Error(), `"replaceOnRotten"`) {
		t.Fatalf("expected the key and the label columns to collide, got %v", err)
	}

	path = writeWorkbook(t, "Sheet1", [][]any{
		{"itemName", "ReplaceOnRotten"},
		{"Apple", "RottenApple"},
	})
	rows, err := importer.New(form).ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := rows[0].Values.String("replaceOnRotten"); got != "RottenApple" {
		t.Fatalf("expected the column to map to replaceOnRotten, got %v", rows[0].Values)
	}
}
