package model_test

import (
	"testing"

	"github.com/goliatone/go-pzforge/pkg/model"
)

func TestDefaultsDecorator(t *testing.T) {
	form := model.FormModel{
		ID: "food",
		Fields: []model.Field{
			{Key: model.KeyModule},
			{Key: "displayCategory", Default: "Food"},
		},
	}

	decorator := model.DefaultsDecorator(map[string]any{
		model.KeyModule:   "MyMod",
		"displayCategory": "Cooking",
		"unknown":         "ignored",
	}, false)
	if err := decorator.Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if form.Fields[0].Default != "MyMod" || form.Fields[1].Default != "Cooking" {
		t.Fatalf("defaults not applied: %+v", form.Fields)
	}

	strict := model.DefaultsDecorator(map[string]any{"unknown": 1}, true)
	if err := strict.Decorate(&form); err == nil {
		t.Fatalf("expected strict decorator to reject unknown key")
	}
}
