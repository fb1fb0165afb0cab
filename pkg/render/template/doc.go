// Package template defines the engine contract used to turn item, model and
// translation data into script text. The pongo2-backed implementation lives
// in the gotemplate subpackage.
package template
