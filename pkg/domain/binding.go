package domain

import (
	"fmt"
	"reflect"
)

// Binding is a typed accessor/mutator pair for a bound boolean value.
// Supplying explicit closures replaces runtime name resolution: a bad
// binding is a construction-time error, not a commit-time surprise.
type Binding struct {
	// Get reads the current bound value.
	Get func() (bool, error)
	// Set writes the bound value back.
	Set func(bool) error
}

// Valid reports whether both accessors are present.
func (b Binding) Valid() bool {
	return b.Get != nil && b.Set != nil
}

// BindValue binds directly to a boolean variable.
func BindValue(v *bool) Binding {
	return Binding{
		Get: func() (bool, error) { return *v, nil },
		Set: func(nv bool) error { *v = nv; return nil },
	}
}

// BindFunc builds a binding from explicit accessors.
func BindFunc(get func() (bool, error), set func(bool) error) Binding {
	return Binding{Get: get, Set: set}
}

// BindField resolves a named boolean field on a struct pointer.
// It fails fast with *BindingError when the field is missing, unexported,
// or not boolean. Prefer BindValue/BindFunc for new code; BindField exists
// for configuration graphs addressed by property name.
func BindField(target any, field string) (Binding, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Binding{}, &BindingError{Field: field, Reason: "target must be a non-nil struct pointer"}
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return Binding{}, &BindingError{Field: field, Reason: fmt.Sprintf("target must point to a struct, got %s", elem.Kind())}
	}

	fv := elem.FieldByName(field)
	if !fv.IsValid() {
		return Binding{}, &BindingError{Field: field, Reason: "no such field"}
	}
	if fv.Kind() != reflect.Bool {
		return Binding{}, &BindingError{Field: field, Reason: fmt.Sprintf("field is %s, want bool", fv.Kind())}
	}
	if !fv.CanSet() {
		return Binding{}, &BindingError{Field: field, Reason: "field is unexported"}
	}

	return Binding{
		Get: func() (bool, error) { return fv.Bool(), nil },
		Set: func(nv bool) error { fv.SetBool(nv); return nil },
	}, nil
}
