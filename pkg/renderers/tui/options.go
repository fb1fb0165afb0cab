package tui

import "github.com/goliatone/go-pzforge/pkg/visibility"

// Theme captures optional message prefixes the collector applies when it
// reports progress or rejected answers. Prefixes may carry ANSI colour codes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithEvaluator swaps the evaluator deciding which fields are active.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(c *Collector) {
		if eval != nil {
			c.evaluator = eval
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}

// WithSkipFilled stops the collector from prompting for fields that already
// hold a prefilled value. Hidden fields are still cleared.
func WithSkipFilled(skip bool) Option {
	return func(c *Collector) {
		c.skipFilled = skip
	}
}
