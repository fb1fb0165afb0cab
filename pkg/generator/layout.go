package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/goliatone/go-pzforge/pkg/values"
)

// Directories, relative to the output root, that the game loads mod scripts
// and translations from.
const (
	ScriptsDir   = "media/scripts/generated"
	ItemsDir     = "media/scripts/generated/items"
	TranslateDir = "media/lua/shared/translate"
)

// DefaultLanguage is the translation table written when none is configured.
const DefaultLanguage = "EN"

// Layout resolves the files one submit touches.
type Layout struct {
	Root     string
	Language string
}

// Scripts is the directory holding model scripts.
func (l Layout) Scripts() string {
	return filepath.Join(l.Root, filepath.FromSlash(ScriptsDir))
}

// Items is the directory holding item scripts.
func (l Layout) Items() string {
	return filepath.Join(l.Root, filepath.FromSlash(ItemsDir))
}

// Translations is the directory holding the language's translation tables.
func (l Layout) Translations() string {
	return filepath.Join(l.Root, filepath.FromSlash(TranslateDir), l.Language)
}

// ModelFile is `<Module>_Models.txt` in the scripts directory.
func (l Layout) ModelFile(module string) string {
	return filepath.Join(l.Scripts(), module+"_Models.txt")
}

// TranslationFile is `<Module>_ItemName_<LANG>.txt`.
func (l Layout) TranslationFile(module string) string {
	return filepath.Join(l.Translations(), fmt.Sprintf("%s_ItemName_%s.txt", module, l.Language))
}

// ItemFile expands a form's item file pattern (`{module}_Food.txt`) inside
// the items directory.
func (l Layout) ItemFile(pattern string, v values.Values) string {
	return filepath.Join(l.Items(), ExpandPattern(pattern, v))
}

// Ensure creates every directory a submit writes to.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Scripts(), l.Items(), l.Translations()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("generator: create %s: %w", dir, err)
		}
	}
	return nil
}

var patternToken = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// ExpandPattern replaces `{key}` tokens with the matching value.
func ExpandPattern(pattern string, v values.Values) string {
	return patternToken.ReplaceAllStringFunc(pattern, func(token string) string {
		return v.String(token[1 : len(token)-1])
	})
}
