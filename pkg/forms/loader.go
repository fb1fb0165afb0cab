package forms

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pzforge/pkg/model"
)

// Store holds normalized form definitions keyed by id.
type Store struct {
	forms map[string]model.FormModel
}

// LoadFS walks the provided filesystem and parses JSON/YAML form definition
// files. Each file holds exactly one form. When fsys is nil or no definition
// files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormModel)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("forms: read %s: %w", path, err)
		}

		form, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		normalized, err := model.Normalize(form)
		if err != nil {
			return fmt.Errorf("forms: %s: %w", path, err)
		}
		normalized.Source = path

		if existing, exists := store.forms[normalized.ID]; exists {
			return fmt.Errorf("forms: duplicate form %q (files %s and %s)", normalized.ID, existing.Source, path)
		}
		store.forms[normalized.ID] = normalized
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[strings.TrimSpace(id)]
	return form, ok
}

// Lookup returns the definition or an error naming the available ids.
func (s *Store) Lookup(id string) (model.FormModel, error) {
	form, ok := s.Form(id)
	if !ok {
		return model.FormModel{}, fmt.Errorf("forms: form %q not found (available: %s)", id, strings.Join(s.IDs(), ", "))
	}
	return form, nil
}

// IDs returns the registered form ids sorted alphabetically.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Merge returns a store containing the forms of s overlaid by other. Forms in
// other replace same-id forms in s.
func (s *Store) Merge(other *Store) *Store {
	out := &Store{forms: make(map[string]model.FormModel)}
	if s != nil {
		for id, form := range s.forms {
			out.forms[id] = form
		}
	}
	if other != nil {
		for id, form := range other.forms {
			out.forms[id] = form
		}
	}
	return out
}

func parseDocument(data []byte, source string) (model.FormModel, error) {
	var form model.FormModel
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.FormModel{}, fmt.Errorf("forms: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("forms: parse %s: %w", source, err)
		}
		return form, nil
	}

	if err := yaml.Unmarshal(data, &form); err != nil {
		return model.FormModel{}, fmt.Errorf("forms: parse %s: %w", source, err)
	}
	return form, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
