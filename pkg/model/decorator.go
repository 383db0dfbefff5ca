package model

// Decorator enriches a form model after it has been built, e.g. by applying
// UI schema overlays or resolving widgets.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Decorators chains decorators, stopping at the first error.
type Decorators []Decorator

// Decorate runs every decorator in order.
func (d Decorators) Decorate(form *FormModel) error {
	for _, decorator := range d {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}
