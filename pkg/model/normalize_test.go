package model_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pzforge/pkg/model"
)

func TestNormalize_DerivesPropertyNames(t *testing.T) {
	form := model.FormModel{
		ID: "food",
		Fields: []model.Field{
			{Key: model.KeyModule},
			{Key: model.KeyItemName},
			{Key: model.KeyDisplayName},
			{Key: model.KeyAsset},
			{Key: "foodType"},
			{Key: "cantBeFrozen", Kind: model.FieldKindToggle},
			{Key: "daysRotten", Kind: model.FieldKindNumber},
		},
		Properties: []model.Property{
			{Field: "foodType"},
			{Field: "cantBeFrozen", Format: model.FormatFlag},
			{Name: "DaysTotallyRotten", Field: "daysRotten"},
		},
	}

	got, err := model.Normalize(form)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := []model.Property{
		{Name: "FoodType", Field: "foodType", Format: model.FormatRaw},
		{Name: "CantBeFrozen", Field: "cantBeFrozen", Format: model.FormatFlag},
		{Name: "DaysTotallyRotten", Field: "daysRotten", Format: model.FormatRaw},
	}
	if diff := cmp.Diff(want, got.Properties); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if got.ItemFile != model.DefaultItemFile {
		t.Fatalf("expected default item file, got %q", got.ItemFile)
	}
	if got.Fields[4].Kind != model.FieldKindText || got.Fields[4].Label != "foodType" {
		t.Fatalf("expected text kind and key label, got %+v", got.Fields[4])
	}
}

func TestNormalize_Errors(t *testing.T) {
	cases := []struct {
		name string
		form model.FormModel
		want string
	}{
		{
			name: "missing id",
			form: model.FormModel{},
			want: "form id is required",
		},
		{
			name: "duplicate field",
			form: model.FormModel{ID: "f", Fields: []model.Field{{Key: "a"}, {Key: "a"}}},
			want: "twice",
		},
		{
			name: "choice without options",
			form: model.FormModel{ID: "f", Fields: []model.Field{{Key: "dir", Kind: model.FieldKindChoice}}},
			want: "needs options",
		},
		{
			name: "unknown property field",
			form: model.FormModel{ID: "f", Properties: []model.Property{{Field: "nope"}}},
			want: "unknown field",
		},
		{
			name: "list over text field",
			form: model.FormModel{
				ID:         "f",
				Fields:     []model.Field{{Key: "recipes"}},
				Properties: []model.Property{{Name: "EvolvedItems", Format: model.FormatList, Fields: []string{"recipes"}}},
			},
			want: "not a multichoice",
		},
		{
			name: "missing identity field",
			form: model.FormModel{ID: "f", Fields: []model.Field{{Key: "module"}, {Key: "itemName"}}},
			want: `must declare field "ingame"`,
		},
		{
			name: "preset unknown field",
			form: model.FormModel{ID: "f", Presets: map[string]map[string]any{"Food": {"ghost": true}}},
			want: "unknown field",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.Normalize(tc.form)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
