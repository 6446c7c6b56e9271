// Package schema validates raw configuration documents before they
// back a panel: option values must be booleans, and strict sources can
// reject keys no manifest declares.
package schema

import "fmt"

// Type defines the contract for value validation.
type Type interface {
	// Name returns the human-readable name of the type.
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// BoolType validates boolean values, the native type of an option.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// StringType validates string values (labels, tooltips, overrides).
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// String creates a string type validator.
func String() Type { return &StringType{} }

// Custom creates a validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ParseType converts a type name to a Type.
func ParseType(typeStr string) (Type, error) {
	switch typeStr {
	case "bool":
		return Bool(), nil
	case "string":
		return String(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}
