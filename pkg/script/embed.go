package script

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Template names resolved by the builder.
const (
	BlockTemplate       = "block"
	TranslationTemplate = "translation"
)

// TemplatesFS exposes the built-in block templates so callers can copy them
// into an override directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
