package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stoewer/go-strcase"
)

const (
	// DefaultItemFile is the item script file pattern used when a form does
	// not declare one. `{module}` is replaced with the module name.
	DefaultItemFile = "{module}_Food.txt"
	// DefaultSuccessMessage is reported after an item block was written.
	DefaultSuccessMessage = "Food Item Created: {{ itemName }}"
)

// Normalize fills defaults and checks the internal references of a form
// definition. The returned copy is safe to hand to renderers.
func Normalize(form FormModel) (FormModel, error) {
	out := form
	out.ID = strings.TrimSpace(form.ID)
	if out.ID == "" {
		return FormModel{}, fmt.Errorf("model: form id is required")
	}
	if strings.TrimSpace(out.ItemFile) == "" {
		out.ItemFile = DefaultItemFile
	}
	if strings.TrimSpace(out.SuccessMessage) == "" {
		out.SuccessMessage = DefaultSuccessMessage
	}
	if out.Title == "" {
		out.Title = out.ID
	}

	keys := make(map[string]Field, len(form.Fields))
	out.Fields = make([]Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		field.Key = strings.TrimSpace(field.Key)
		if field.Key == "" {
			return FormModel{}, fmt.Errorf("model: form %q has a field without key", out.ID)
		}
		if _, dup := keys[field.Key]; dup {
			return FormModel{}, fmt.Errorf("model: form %q declares field %q twice", out.ID, field.Key)
		}
		if field.Kind == "" {
			field.Kind = FieldKindText
		}
		switch field.Kind {
		case FieldKindText, FieldKindNumber, FieldKindToggle:
		case FieldKindChoice, FieldKindMultiChoice:
			if len(field.Options) == 0 {
				return FormModel{}, fmt.Errorf("model: field %q needs options", field.Key)
			}
		default:
			return FormModel{}, fmt.Errorf("model: field %q has unknown kind %q", field.Key, field.Kind)
		}
		if field.Label == "" {
			field.Label = field.Key
		}
		keys[field.Key] = field
		out.Fields = append(out.Fields, field)
	}

	for _, field := range out.Fields {
		if field.DefaultFrom == "" {
			continue
		}
		if _, ok := keys[field.DefaultFrom]; !ok {
			return FormModel{}, fmt.Errorf("model: field %q copies unknown field %q", field.Key, field.DefaultFrom)
		}
	}

	out.Properties = make([]Property, 0, len(form.Properties))
	for _, prop := range form.Properties {
		normalized, err := normalizeProperty(prop, keys)
		if err != nil {
			return FormModel{}, fmt.Errorf("model: form %q: %w", out.ID, err)
		}
		out.Properties = append(out.Properties, normalized)
	}

	for name, preset := range form.Presets {
		for key := range preset {
			if _, ok := keys[key]; !ok {
				return FormModel{}, fmt.Errorf("model: preset %q sets unknown field %q", name, key)
			}
		}
	}

	for _, key := range IdentityKeys {
		if _, ok := keys[key]; !ok {
			return FormModel{}, fmt.Errorf("model: form %q must declare field %q", out.ID, key)
		}
	}

	return out, nil
}

func normalizeProperty(prop Property, fields map[string]Field) (Property, error) {
	prop.Field = strings.TrimSpace(prop.Field)
	prop.Name = strings.TrimSpace(prop.Name)
	if prop.Format == "" {
		prop.Format = FormatRaw
	}
	if prop.Name == "" {
		if prop.Field == "" {
			return Property{}, fmt.Errorf("property without name or field")
		}
		prop.Name = strcase.UpperCamelCase(prop.Field)
	}

	switch prop.Format {
	case FormatLiteral:
		if prop.Value == "" {
			return Property{}, fmt.Errorf("literal property %q needs a value", prop.Name)
		}
	case FormatList:
		if len(prop.Fields) == 0 && prop.Field != "" {
			prop.Fields = []string{prop.Field}
		}
		if len(prop.Fields) == 0 {
			return Property{}, fmt.Errorf("list property %q needs fields", prop.Name)
		}
		for _, key := range prop.Fields {
			if f, ok := fields[key]; !ok || f.Kind != FieldKindMultiChoice {
				return Property{}, fmt.Errorf("list property %q references %q which is not a multichoice field", prop.Name, key)
			}
		}
		if prop.Separator == "" {
			prop.Separator = ";"
		}
	case FormatRaw, FormatStat, FormatFloat, FormatBool, FormatFlag:
		if _, ok := fields[prop.Field]; !ok {
			return Property{}, fmt.Errorf("property %q references unknown field %q", prop.Name, prop.Field)
		}
	default:
		return Property{}, fmt.Errorf("property %q has unknown format %q", prop.Name, prop.Format)
	}

	if prop.Format == FormatStat && prop.Direction != "" {
		dir, ok := fields[prop.Direction]
		if !ok || dir.Kind != FieldKindChoice {
			return Property{}, fmt.Errorf("stat property %q direction %q must be a choice field", prop.Name, prop.Direction)
		}
	}
	return prop, nil
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
