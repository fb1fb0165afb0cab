// Package catalog scans an output tree for script files and lists the item
// and model declarations they contain.
package catalog
