package forms

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed definitions/*.yaml
var definitionsFS embed.FS

var (
	builtinOnce  sync.Once
	builtinStore *Store
	builtinErr   error
)

// DefinitionsFS exposes the embedded food and consumable definitions so
// callers can copy them as a starting point for custom forms.
func DefinitionsFS() fs.FS {
	sub, err := fs.Sub(definitionsFS, "definitions")
	if err != nil {
		return definitionsFS
	}
	return sub
}

// Builtin returns the store holding the embedded definitions. The embedded
// files are parsed once.
func Builtin() (*Store, error) {
	builtinOnce.Do(func() {
		builtinStore, builtinErr = LoadFS(DefinitionsFS())
	})
	return builtinStore, builtinErr
}
