package index

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lyraproj/osgi-index/osgi"
)

// Type is the type of an attribute value: a ScalarType, optionally as a list.
type Type struct {
	scalar ScalarType
	list   bool
}

func ScalarOf(t ScalarType) Type {
	return Type{scalar: t}
}

func ListOf(t ScalarType) Type {
	return Type{scalar: t, list: true}
}

func (t Type) Scalar() ScalarType {
	return t.scalar
}

func (t Type) IsList() bool {
	return t.list
}

// String returns "List<Key>" for list types and the scalar key otherwise.
func (t Type) String() string {
	if t.list {
		return `List<` + t.scalar.String() + `>`
	}
	return t.scalar.String()
}

// TypeOf infers the Type of a value. Accepted values are strings, booleans (typed as String),
// integers, floats, osgi.Version, and slices of those. The element type of a slice is taken
// from its first element.
func TypeOf(value any) (Type, error) {
	switch v := value.(type) {
	case nil:
		return Type{}, ErrNullValue
	case []string:
		return listOf(v)
	case []bool:
		return listOf(v)
	case []int:
		return listOf(v)
	case []int8:
		return listOf(v)
	case []int16:
		return listOf(v)
	case []int32:
		return listOf(v)
	case []int64:
		return listOf(v)
	case []uint:
		return listOf(v)
	case []uint8:
		return listOf(v)
	case []uint16:
		return listOf(v)
	case []uint32:
		return listOf(v)
	case []uint64:
		return listOf(v)
	case []float32:
		return listOf(v)
	case []float64:
		return listOf(v)
	case []osgi.Version:
		return listOf(v)
	case []any:
		return listOf(v)
	}
	t, err := scalarTypeOf(value)
	if err != nil {
		return Type{}, err
	}
	return ScalarOf(t), nil
}

func listOf[E any](s []E) (Type, error) {
	if len(s) == 0 {
		return Type{}, ErrEmptyCollection
	}
	t, err := scalarTypeOf(s[0])
	if err != nil {
		return Type{}, err
	}
	return ListOf(t), nil
}

func scalarTypeOf(value any) (ScalarType, error) {
	switch value.(type) {
	case nil:
		return String, ErrNullValue
	case osgi.Version:
		return Version, nil
	case float32, float64:
		return Double, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Long, nil
	case string, bool:
		return String, nil
	}
	return String, &UnsupportedTypeError{TypeName: fmt.Sprintf(`%T`, value)}
}

// Render returns the serialized form of a value of this type. List elements are joined with
// a comma. Commas inside elements are not escaped.
func (t Type) Render(value any) string {
	if !t.list {
		return renderScalar(value)
	}
	bld := &strings.Builder{}
	each(value, func(idx int, e any) {
		if idx > 0 {
			bld.WriteByte(',')
		}
		bld.WriteString(renderScalar(e))
	})
	return bld.String()
}

func each(value any, f func(int, any)) {
	switch v := value.(type) {
	case []string:
		eachOf(v, f)
	case []bool:
		eachOf(v, f)
	case []int:
		eachOf(v, f)
	case []int8:
		eachOf(v, f)
	case []int16:
		eachOf(v, f)
	case []int32:
		eachOf(v, f)
	case []int64:
		eachOf(v, f)
	case []uint:
		eachOf(v, f)
	case []uint8:
		eachOf(v, f)
	case []uint16:
		eachOf(v, f)
	case []uint32:
		eachOf(v, f)
	case []uint64:
		eachOf(v, f)
	case []float32:
		eachOf(v, f)
	case []float64:
		eachOf(v, f)
	case []osgi.Version:
		eachOf(v, f)
	case []any:
		eachOf(v, f)
	default:
		f(0, value)
	}
}

func eachOf[E any](s []E, f func(int, any)) {
	for i, e := range s {
		f(i, e)
	}
}

func renderScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float32:
		return formatDouble(float64(v), 32)
	case float64:
		return formatDouble(v, 64)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

// formatDouble always includes a decimal point for finite values so that a Double is never
// rendered like a Long.
func formatDouble(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, `.eE`) {
		return s
	}
	return s + `.0`
}
