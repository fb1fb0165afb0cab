package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-pzforge/pkg/model"
	"github.com/goliatone/go-pzforge/pkg/values"
	"github.com/goliatone/go-pzforge/pkg/visibility"
	"github.com/goliatone/go-pzforge/pkg/visibility/expr"
)

// Collector walks a form's fields through a PromptDriver and returns the
// answers as form values.
type Collector struct {
	driver     PromptDriver
	evaluator  visibility.Evaluator
	theme      Theme
	skipFilled bool
}

// New constructs a Collector with defaults (survey driver on stdout, the
// expression evaluator for toggle rules).
func New(options ...Option) (*Collector, error) {
	c := &Collector{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	if c.evaluator == nil {
		c.evaluator = expr.New()
	}
	if c.theme.ErrorPrefix == "" {
		c.theme.ErrorPrefix = "Invalid"
	}
	return c, nil
}

// Collect prompts for every field in declaration order. prefill supplies the
// answers offered as defaults. Fields whose visibleWhen rule fails are not
// prompted and lose any prefilled value, matching a disabled widget.
func (c *Collector) Collect(ctx context.Context, form model.FormModel, prefill values.Values) (values.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	out := prefill.Clone()

	if c.theme.InfoPrefix != "" && form.Title != "" {
		if err := c.driver.Info(ctx, c.theme.InfoPrefix+form.Title); err != nil {
			return nil, err
		}
	}

	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		visible, err := c.visible(field, out)
		if err != nil {
			return nil, err
		}
		if !visible {
			delete(out, field.Key)
			continue
		}
		if c.skipFilled && out.Has(field.Key) {
			continue
		}

		value, err := c.promptField(ctx, field, out)
		if err != nil {
			return nil, err
		}
		if value == nil {
			delete(out, field.Key)
			continue
		}
		out[field.Key] = value
	}
	return out, nil
}

func (c *Collector) visible(field model.Field, current values.Values) (bool, error) {
	if field.VisibleWhen == "" {
		return true, nil
	}
	ok, err := c.evaluator.Eval(field.Key, field.VisibleWhen, visibility.Context{Values: current})
	if err != nil {
		return false, fmt.Errorf("tui: field %q rule %q: %w", field.Key, field.VisibleWhen, err)
	}
	return ok, nil
}

func (c *Collector) promptField(ctx context.Context, field model.Field, current values.Values) (any, error) {
	switch field.Kind {
	case model.FieldKindToggle:
		return c.promptToggle(ctx, field, current)
	case model.FieldKindChoice:
		return c.promptChoice(ctx, field, current)
	case model.FieldKindMultiChoice:
		return c.promptMultiChoice(ctx, field, current)
	case model.FieldKindNumber:
		return c.promptText(ctx, field, current, validateNumber)
	default:
		return c.promptText(ctx, field, current, nil)
	}
}

func (c *Collector) promptText(ctx context.Context, field model.Field, current values.Values, validate func(string) error) (any, error) {
	defaultVal := current.String(field.Key)
	if defaultVal == "" && field.DefaultFrom != "" {
		defaultVal = current.String(field.DefaultFrom)
	}

	for {
		response, err := c.driver.Input(ctx, InputConfig{
			Message:   displayLabel(field),
			Default:   defaultVal,
			Help:      field.Help,
			Validator: validate,
		})
		if err != nil {
			return nil, err
		}

		response = strings.TrimSpace(response)
		if response == "" {
			if field.Required {
				if err := c.invalid(ctx, field, errors.New("required")); err != nil {
					return nil, err
				}
				continue
			}
			return nil, nil
		}
		if validate != nil {
			if err := validate(response); err != nil {
				if err := c.invalid(ctx, field, err); err != nil {
					return nil, err
				}
				continue
			}
		}
		return response, nil
	}
}

func (c *Collector) promptToggle(ctx context.Context, field model.Field, current values.Values) (any, error) {
	resp, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: current.Bool(field.Key),
		Help:    field.Help,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Collector) promptChoice(ctx context.Context, field model.Field, current values.Values) (any, error) {
	defaultIdx := indexOf(field.Options, current.String(field.Key))

	for {
		idx, err := c.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      field.Options,
			DefaultIndex: defaultIdx,
			Help:         field.Help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			if err := c.invalid(ctx, field, errors.New("unknown selection")); err != nil {
				return nil, err
			}
			continue
		}
		return field.Options[idx], nil
	}
}

func (c *Collector) promptMultiChoice(ctx context.Context, field model.Field, current values.Values) (any, error) {
	for {
		indices, err := c.driver.MultiSelect(ctx, SelectConfig{
			Message:  displayLabel(field),
			Options:  field.Options,
			Defaults: indicesOf(field.Options, current.Strings(field.Key)),
			Help:     field.Help,
		})
		if err != nil {
			return nil, err
		}
		selected := defaultsFromIndices(field.Options, indices)
		if len(selected) == 0 {
			if field.Required {
				if err := c.invalid(ctx, field, errors.New("select at least one option")); err != nil {
					return nil, err
				}
				continue
			}
			return nil, nil
		}
		return selected, nil
	}
}

func (c *Collector) invalid(ctx context.Context, field model.Field, cause error) error {
	return c.driver.Info(ctx, fmt.Sprintf("%s %s: %v", c.theme.ErrorPrefix, displayLabel(field), cause))
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Key
}

func validateNumber(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%q is not a number", raw)
	}
	return nil
}
