package scriptfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
)

// Declaration keywords understood by the scanner.
const (
	KindItem  = "item"
	KindModel = "model"
)

// Declaration is one `<kind> <name>` header found in a script file.
type Declaration struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"line"`
}

var declarationPattern = regexp.MustCompile(`(?m)^[ \t]*(item|model)[ \t]+([^\s{}=,]+)`)

// Declarations lists item and model headers in content in file order.
func Declarations(content string) []Declaration {
	matches := declarationPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]Declaration, 0, len(matches))
	line, offset := 1, 0
	for _, m := range matches {
		for ; offset < m[0]; offset++ {
			if content[offset] == '\n' {
				line++
			}
		}
		out = append(out, Declaration{
			Kind: content[m[2]:m[3]],
			Name: content[m[4]:m[5]],
			Line: line,
		})
	}
	return out
}

// ContainsDeclaration reports whether content declares kind name. Unlike a
// plain substring search, `item Apple` does not match `item AppleJuice`.
func ContainsDeclaration(content, kind, name string) bool {
	for _, decl := range Declarations(content) {
		if decl.Kind == kind && decl.Name == name {
			return true
		}
	}
	return false
}

// FileContainsDeclaration is ContainsDeclaration over a file. A missing file
// declares nothing.
func FileContainsDeclaration(path, kind, name string) (bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("scriptfile: read %s: %w", path, err)
	}
	return ContainsDeclaration(string(content), kind, name), nil
}
