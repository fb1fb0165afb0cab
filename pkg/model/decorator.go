package model

import "fmt"

// Decorator adjusts a form definition after it was loaded, for example to
// apply user configured defaults.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// DefaultsDecorator overrides field defaults by key. Keys the form does not
// declare are ignored so one map can serve several forms. With strict set, an
// unknown key is an error instead.
func DefaultsDecorator(defaults map[string]any, strict bool) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		for key, value := range defaults {
			found := false
			for i := range form.Fields {
				if form.Fields[i].Key == key {
					form.Fields[i].Default = value
					found = true
					break
				}
			}
			if !found && strict {
				return fmt.Errorf("model: form %q has no field %q to default", form.ID, key)
			}
		}
		return nil
	})
}
