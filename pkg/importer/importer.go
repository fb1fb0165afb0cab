package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-pzforge/pkg/model"
	"github.com/goliatone/go-pzforge/pkg/values"
)

// PresetColumn is the optional header naming a per-row preset.
const PresetColumn = "preset"

// ErrNoRows is returned when a sheet has a header but no data rows.
var ErrNoRows = errors.New("importer: sheet has no data rows")

// Row is one spreadsheet row mapped to form values.
type Row struct {
	// Number is the 1-based spreadsheet row.
	Number int
	Preset string
	Values values.Values
}

// Option customises a read.
type Option func(*Importer)

// WithSheet selects the sheet to read. Defaults to the first sheet.
func WithSheet(name string) Option {
	return func(i *Importer) {
		i.sheet = strings.TrimSpace(name)
	}
}

// WithIgnoreUnknown drops columns that do not match a field instead of
// failing.
func WithIgnoreUnknown() Option {
	return func(i *Importer) {
		i.ignoreUnknown = true
	}
}

// Importer maps spreadsheet rows onto a form's fields. The header row names
// the fields, by key or by label, case-insensitively.
type Importer struct {
	form          model.FormModel
	sheet         string
	ignoreUnknown bool
}

// New constructs an Importer for form.
func New(form model.FormModel, opts ...Option) *Importer {
	i := &Importer{form: form}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// ReadFile opens an .xlsx workbook and reads the configured sheet.
func (i *Importer) ReadFile(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return i.Read(f)
}

// Read reads the configured sheet of an open workbook. Empty cells are
// omitted and fully empty rows are skipped; values stay as cell text so
// coercion happens in one place when the row is generated.
func (i *Importer) Read(f *excelize.File) ([]Row, error) {
	sheet := i.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("importer: workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("importer: sheet %q has no header row", sheet)
	}

	columns, err := i.mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var out []Row
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := Row{Number: rowIdx + 1, Values: make(values.Values)}
		for colIdx, cell := range rows[rowIdx] {
			if colIdx >= len(columns) || columns[colIdx] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if columns[colIdx] == PresetColumn {
				row.Preset = cell
				continue
			}
			row.Values[columns[colIdx]] = cell
		}
		if len(row.Values) == 0 && row.Preset == "" {
			continue
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRows, sheet)
	}
	return out, nil
}

func (i *Importer) mapHeader(header []string) ([]string, error) {
	lookup := make(map[string]string, len(i.form.Fields)*2+1)
	// Keys win over labels: a toggle labelled "ReplaceOnRotten" must not
	// capture the replaceOnRotten column.
	for _, field := range i.form.Fields {
		if field.Label != "" {
			lookup[strings.ToLower(field.Label)] = field.Key
		}
	}
	for _, field := range i.form.Fields {
		lookup[strings.ToLower(field.Key)] = field.Key
	}
	if _, clash := lookup[PresetColumn]; !clash {
		lookup[PresetColumn] = PresetColumn
	}

	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for idx, title := range header {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		key, ok := lookup[strings.ToLower(title)]
		if !ok {
			if i.ignoreUnknown {
				continue
			}
			return nil, fmt.Errorf("importer: column %q does not match a field of form %q", title, i.form.ID)
		}
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("importer: columns %d and %d both map to %q", prev+1, idx+1, key)
		}
		seen[key] = idx
		columns[idx] = key
	}
	return columns, nil
}
