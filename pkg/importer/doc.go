// Package importer reads batches of form values from .xlsx workbooks. The
// first row of the sheet names the fields (by key or label); every further
// non-empty row becomes one submission. An optional `preset` column selects a
// form preset per row.
package importer
