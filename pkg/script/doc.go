// Package script assembles the text blocks Project Zomboid reads from
// `media/scripts` and `media/lua/shared/translate`: item declarations built
// from a form's ordered properties, model declarations for the item asset and
// translation table entries. Blocks render through embedded pongo2 templates
// that can be overridden from a directory.
package script
