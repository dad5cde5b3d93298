package index

import (
	"errors"
	"fmt"
)

// ErrNullValue is returned when a type is requested for a nil value.
var ErrNullValue = errors.New(`cannot determine the type of a nil value`)

// ErrEmptyCollection is returned when a type is requested for an empty list since the element
// type cannot be inferred.
var ErrEmptyCollection = errors.New(`cannot determine the element type of an empty list`)

// UnsupportedTypeError is returned for values outside the set of types the schema supports.
type UnsupportedTypeError struct {
	TypeName string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf(`unsupported attribute value type %s`, e.TypeName)
}

// AttributeError associates a type error with the attribute that caused it.
type AttributeError struct {
	Name string
	Err  error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf(`attribute %q: %v`, e.Name, e.Err)
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}
