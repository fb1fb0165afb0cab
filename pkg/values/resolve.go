package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-pzforge/pkg/model"
	"github.com/goliatone/go-pzforge/pkg/visibility"
)

// Active records which fields passed their visibleWhen rule.
type Active map[string]bool

// Coerce converts loosely typed input (JSON, spreadsheet cells, prompt
// answers) into the types each field kind expects. Keys that do not name a
// field are dropped.
func Coerce(form model.FormModel, in Values) (Values, error) {
	out := make(Values, len(in))
	for _, field := range form.Fields {
		raw, ok := in[field.Key]
		if !ok {
			continue
		}
		value, err := CoerceField(field, raw)
		if err != nil {
			return nil, err
		}
		out[field.Key] = value
	}
	return out, nil
}

// CoerceField converts a single raw value for field.
func CoerceField(field model.Field, raw any) (any, error) {
	switch field.Kind {
	case model.FieldKindToggle:
		on, ok := ParseToggle(raw)
		if !ok {
			return nil, fmt.Errorf("values: field %q expects a toggle, got %q", field.Key, Text(raw))
		}
		return on, nil
	case model.FieldKindMultiChoice:
		var picked []string
		switch typed := raw.(type) {
		case []string:
			picked = typed
		case []any:
			for _, item := range typed {
				picked = append(picked, Text(item))
			}
		default:
			picked = SplitList(Text(raw))
		}
		return selectOptions(field, picked)
	case model.FieldKindChoice:
		text := strings.TrimSpace(Text(raw))
		if text == "" {
			return "", nil
		}
		option, ok := matchOption(field.Options, text)
		if !ok {
			return nil, fmt.Errorf("values: field %q: %q is not one of %s", field.Key, text, strings.Join(field.Options, ", "))
		}
		return option, nil
	case model.FieldKindNumber:
		text := strings.TrimSpace(Text(raw))
		if text != "" {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("values: field %q expects a number, got %q", field.Key, text)
			}
		}
		return text, nil
	default:
		return strings.TrimSpace(Text(raw)), nil
	}
}

// ApplyDefaults fills fields that were never set with their declared default.
func ApplyDefaults(form model.FormModel, in Values) (Values, error) {
	out := in.Clone()
	for _, field := range form.Fields {
		if _, set := out[field.Key]; set || field.Default == nil {
			continue
		}
		value, err := CoerceField(field, field.Default)
		if err != nil {
			return nil, fmt.Errorf("values: default: %w", err)
		}
		out[field.Key] = value
	}
	return out, nil
}

// ApplyPreset overlays the named preset onto in.
func ApplyPreset(form model.FormModel, name string, in Values) (Values, error) {
	preset, ok := lookupPreset(form, name)
	if !ok {
		return nil, fmt.Errorf("values: form %q has no preset %q (available: %s)", form.ID, name, strings.Join(form.PresetNames(), ", "))
	}
	out := in.Clone()
	for key, raw := range preset {
		field, _ := form.Field(key)
		value, err := CoerceField(field, raw)
		if err != nil {
			return nil, fmt.Errorf("values: preset %q: %w", name, err)
		}
		out[key] = value
	}
	return out, nil
}

// Prepare layers field defaults, an optional preset and input. Input wins over
// the preset and the preset wins over defaults.
func Prepare(form model.FormModel, preset string, input Values) (Values, error) {
	out := make(Values)
	if strings.TrimSpace(preset) != "" {
		var err error
		if out, err = ApplyPreset(form, preset, out); err != nil {
			return nil, err
		}
	}
	coerced, err := Coerce(form, input)
	if err != nil {
		return nil, err
	}
	for key, value := range coerced {
		out[key] = value
	}
	return ApplyDefaults(form, out)
}

// Resolve copies `defaultFrom` sources into empty fields, then drops the
// values of fields whose visibleWhen rule fails. Fields are visited in
// declaration order, so a rule only sees values that survived pruning.
func Resolve(form model.FormModel, in Values, eval visibility.Evaluator) (Values, Active, error) {
	out := in.Clone()
	for _, field := range form.Fields {
		if field.DefaultFrom == "" || out.Has(field.Key) {
			continue
		}
		if out.Has(field.DefaultFrom) {
			out[field.Key] = out.String(field.DefaultFrom)
		}
	}

	active := make(Active, len(form.Fields))
	for _, field := range form.Fields {
		visible := true
		if field.VisibleWhen != "" && eval != nil {
			ok, err := eval.Eval(field.Key, field.VisibleWhen, visibility.Context{Values: out})
			if err != nil {
				return nil, nil, fmt.Errorf("values: field %q rule %q: %w", field.Key, field.VisibleWhen, err)
			}
			visible = ok
		}
		active[field.Key] = visible
		if !visible {
			delete(out, field.Key)
		}
	}
	return out, active, nil
}

// Missing lists the labels of required, active fields that hold no value.
func Missing(form model.FormModel, v Values, active Active) []string {
	var out []string
	for _, field := range form.Fields {
		if !field.Required || (active != nil && !active[field.Key]) {
			continue
		}
		if !v.Has(field.Key) {
			out = append(out, field.Label)
		}
	}
	return out
}

func selectOptions(field model.Field, picked []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool, len(picked))
	for _, item := range picked {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if item == AllOptions {
			return append([]string(nil), field.Options...), nil
		}
		option, ok := matchOption(field.Options, item)
		if !ok {
			return nil, fmt.Errorf("values: field %q: %q is not one of %s", field.Key, item, strings.Join(field.Options, ", "))
		}
		if !seen[option] {
			seen[option] = true
			out = append(out, option)
		}
	}
	return orderLike(field.Options, out), nil
}

// orderLike sorts picked by the option declaration order so output does not
// depend on how the selection was typed.
func orderLike(options, picked []string) []string {
	if len(picked) < 2 {
		return picked
	}
	chosen := make(map[string]bool, len(picked))
	for _, item := range picked {
		chosen[item] = true
	}
	out := make([]string, 0, len(picked))
	for _, option := range options {
		if chosen[option] {
			out = append(out, option)
		}
	}
	return out
}

func matchOption(options []string, text string) (string, bool) {
	for _, option := range options {
		if strings.EqualFold(option, text) {
			return option, true
		}
	}
	return "", false
}

func lookupPreset(form model.FormModel, name string) (map[string]any, bool) {
	if preset, ok := form.Presets[name]; ok {
		return preset, true
	}
	for key, preset := range form.Presets {
		if strings.EqualFold(key, name) {
			return preset, true
		}
	}
	return nil, false
}
