package model

// FieldKind is the simplified enum for the inputs a form can collect.
type FieldKind string

const (
	FieldKindText        FieldKind = "text"
	FieldKindNumber      FieldKind = "number"
	FieldKindToggle      FieldKind = "toggle"
	FieldKindChoice      FieldKind = "choice"
	FieldKindMultiChoice FieldKind = "multichoice"
)

// PropertyFormat controls how a property value is rendered inside an item
// block.
type PropertyFormat string

const (
	// FormatRaw emits the field value as entered. Empty values are skipped.
	FormatRaw PropertyFormat = "raw"
	// FormatStat parses the value as a float and applies the sign rule of the
	// companion direction field.
	FormatStat PropertyFormat = "stat"
	// FormatFloat requires a numeric value and emits it in float notation.
	FormatFloat PropertyFormat = "float"
	// FormatBool always emits true or false.
	FormatBool PropertyFormat = "bool"
	// FormatFlag emits true when the toggle is on and nothing otherwise.
	FormatFlag PropertyFormat = "flag"
	// FormatList joins the selected options of one or more multichoice fields.
	FormatList PropertyFormat = "list"
	// FormatLiteral emits Value, rendered as a template against the values.
	FormatLiteral PropertyFormat = "literal"
)

// Stat directions understood by FormatStat.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
	DirectionNone     = "none"
)

// Field keys every form must declare. They name the script module, the item
// declaration, the translated display name and the model asset.
const (
	KeyModule      = "module"
	KeyItemName    = "itemName"
	KeyDisplayName = "ingame"
	KeyAsset       = "asset"
)

// IdentityKeys lists the keys every form must declare.
var IdentityKeys = []string{KeyModule, KeyItemName, KeyDisplayName, KeyAsset}

// Field models an individual input inside a form definition.
type Field struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
	DefaultFrom string    `json:"defaultFrom,omitempty" yaml:"defaultFrom,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	VisibleWhen string    `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
}

// Property describes one `Key = Value,` line of the generated item block.
// Properties are emitted in declaration order.
type Property struct {
	Name      string         `json:"name" yaml:"name"`
	Field     string         `json:"field,omitempty" yaml:"field,omitempty"`
	Format    PropertyFormat `json:"format,omitempty" yaml:"format,omitempty"`
	Value     string         `json:"value,omitempty" yaml:"value,omitempty"`
	Direction string         `json:"direction,omitempty" yaml:"direction,omitempty"`
	Fields    []string       `json:"fields,omitempty" yaml:"fields,omitempty"`
	Suffix    string         `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Separator string         `json:"separator,omitempty" yaml:"separator,omitempty"`
	When      string         `json:"when,omitempty" yaml:"when,omitempty"`
	Fallback  string         `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// FormModel is the top-level definition consumed by the collector, the block
// builder and the generator.
type FormModel struct {
	ID             string                    `json:"id" yaml:"id"`
	Title          string                    `json:"title,omitempty" yaml:"title,omitempty"`
	ItemFile       string                    `json:"itemFile,omitempty" yaml:"itemFile,omitempty"`
	SuccessMessage string                    `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`
	Fields         []Field                   `json:"fields" yaml:"fields"`
	Properties     []Property                `json:"properties" yaml:"properties"`
	Presets        map[string]map[string]any `json:"presets,omitempty" yaml:"presets,omitempty"`
	Source         string                    `json:"-" yaml:"-"`
}

// Field returns the field registered under key.
func (f FormModel) Field(key string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// RequiredKeys lists the keys of required fields in declaration order.
func (f FormModel) RequiredKeys() []string {
	var out []string
	for _, field := range f.Fields {
		if field.Required {
			out = append(out, field.Key)
		}
	}
	return out
}

// PresetNames returns the preset names in a stable order.
func (f FormModel) PresetNames() []string {
	return sortedKeys(f.Presets)
}
