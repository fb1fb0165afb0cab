package scriptfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Outcome reports what InsertBlock did to the target file.
type Outcome string

const (
	// Created means the file did not exist and was written from scratch.
	Created Outcome = "created"
	// Inserted means the block was placed before the file's last closing brace.
	Inserted Outcome = "inserted"
	// Skipped means the block (or its key) was already present.
	Skipped Outcome = "skipped"
)

// ErrMalformedFile is returned when an existing target file has no closing
// brace to insert before.
var ErrMalformedFile = errors.New("scriptfile: file has no closing brace")

const (
	closingBrace     = "}"
	defaultSeparator = "\n\n"
	defaultPerm      = fs.FileMode(0o644)
)

// Option customises a single InsertBlock call.
type Option func(*options)

type options struct {
	header    string
	separator string
	key       string
	perm      fs.FileMode
}

// WithHeader sets the text written ahead of the block when the file is
// created.
func WithHeader(header string) Option {
	return func(o *options) {
		o.header = header
	}
}

// WithModuleHeader opens a new file with a `module <name>` wrapper that
// imports Base. An empty name leaves the header untouched.
func WithModuleHeader(name string) Option {
	return func(o *options) {
		if strings.TrimSpace(name) == "" {
			return
		}
		o.header = ModuleHeader(name)
	}
}

// WithSeparator overrides the text placed between existing content and the
// inserted block. Defaults to a blank line.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// WithKey makes the duplicate check look for key instead of the whole block.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPerm sets the mode used when the file is created.
func WithPerm(perm fs.FileMode) Option {
	return func(o *options) {
		if perm != 0 {
			o.perm = perm
		}
	}
}

// ModuleHeader returns the opening of a script module that imports Base.
func ModuleHeader(name string) string {
	return fmt.Sprintf("module %s\n{\n    imports {\n        Base\n    }\n\n", name)
}

// InsertBlock writes block into the file at path. A missing file is created
// as header + block + a closing brace. An existing file receives the block
// just before its last `}` unless the block (or the configured key) is
// already present, in which case nothing is written.
func InsertBlock(path, block string, opts ...Option) (Outcome, error) {
	cfg := options{separator: defaultSeparator, perm: defaultPerm}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte(cfg.header+block+"\n}\n"), cfg.perm); err != nil {
			return "", fmt.Errorf("scriptfile: create %s: %w", path, err)
		}
		return Created, nil
	}
	if err != nil {
		return "", fmt.Errorf("scriptfile: read %s: %w", path, err)
	}

	updated, outcome, err := Insert(string(content), block, cfg.separator, cfg.key)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, path)
	}
	if outcome == Skipped {
		return Skipped, nil
	}
	if err := os.WriteFile(path, []byte(updated), cfg.perm); err != nil {
		return "", fmt.Errorf("scriptfile: write %s: %w", path, err)
	}
	return Inserted, nil
}

// Insert is the in-memory form of InsertBlock for existing content. An empty
// key falls back to the trimmed block.
func Insert(content, block, sep, key string) (string, Outcome, error) {
	if key == "" {
		key = strings.TrimSpace(block)
	}
	if key != "" && strings.Contains(content, key) {
		return content, Skipped, nil
	}

	last := strings.LastIndex(content, closingBrace)
	if last == -1 {
		return "", "", ErrMalformedFile
	}

	var b strings.Builder
	b.Grow(len(content) + len(sep) + len(block) + 1)
	b.WriteString(strings.TrimRight(content[:last], " \t\r\n"))
	b.WriteString(sep)
	b.WriteString(strings.TrimRight(block, " \t\r\n"))
	b.WriteString("\n")
	b.WriteString(content[last:])
	return b.String(), Inserted, nil
}
