package bundle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lyraproj/osgi-index/index"
	"github.com/lyraproj/osgi-index/osgi"
)

// An Attribute is a clause parameter of the form key=value or key:Type=value. Value holds
// the converted value for typed attributes and a string otherwise.
type Attribute struct {
	Name  string
	Value any
}

// A Clause is one comma separated element of a manifest header. Several paths may share the
// same parameters, as in "a.b;c.d;version=1.0".
type Clause struct {
	Paths      []string
	Attributes []Attribute
	Directives []index.Directive
}

// Attribute returns the value of the named attribute.
func (c *Clause) Attribute(name string) (any, bool) {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Directive returns the value of the named directive.
func (c *Clause) Directive(name string) (string, bool) {
	for _, d := range c.Directives {
		if d.Name == name {
			return d.Value, true
		}
	}
	return ``, false
}

// ParseHeader splits a manifest header into clauses. Separators inside double quotes are
// ignored and surrounding quotes are removed from values.
func ParseHeader(text string) ([]Clause, error) {
	var clauses []Clause
	for _, ct := range splitQuoted(text, ',') {
		if strings.TrimSpace(ct) == `` {
			continue
		}
		c := Clause{}
		for _, part := range splitQuoted(ct, ';') {
			part = strings.TrimSpace(part)
			if part == `` {
				continue
			}
			if idx := strings.Index(part, `:=`); idx > 0 && !strings.Contains(part[:idx], `=`) {
				c.Directives = append(c.Directives, index.Directive{
					Name:  strings.TrimSpace(part[:idx]),
					Value: unquote(part[idx+2:]),
				})
				continue
			}
			if idx := strings.IndexByte(part, '='); idx > 0 {
				a, err := parseAttribute(strings.TrimSpace(part[:idx]), unquote(part[idx+1:]))
				if err != nil {
					return nil, err
				}
				c.Attributes = append(c.Attributes, a)
				continue
			}
			if len(c.Attributes) > 0 || len(c.Directives) > 0 {
				return nil, fmt.Errorf(`path %q follows parameters in clause %q`, part, strings.TrimSpace(ct))
			}
			c.Paths = append(c.Paths, unquote(part))
		}
		if len(c.Paths) == 0 {
			return nil, fmt.Errorf(`clause %q has no path`, strings.TrimSpace(ct))
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}

func parseAttribute(key, value string) (Attribute, error) {
	name, typeName, typed := strings.Cut(key, `:`)
	if !typed {
		return Attribute{Name: key, Value: value}, nil
	}
	name = strings.TrimSpace(name)
	typeName = strings.TrimSpace(typeName)

	elemName, list := listElement(typeName)
	st, ok := index.ScalarTypeFromKey(elemName)
	if !ok {
		// Unknown type names are kept as strings.
		st = index.String
	}
	if !list {
		v, err := convert(st, value)
		if err != nil {
			return Attribute{}, fmt.Errorf(`attribute %s: %w`, name, err)
		}
		return Attribute{Name: name, Value: v}, nil
	}

	var elems []any
	for _, e := range splitQuoted(value, ',') {
		v, err := convert(st, strings.TrimSpace(e))
		if err != nil {
			return Attribute{}, fmt.Errorf(`attribute %s: %w`, name, err)
		}
		elems = append(elems, v)
	}
	return Attribute{Name: name, Value: elems}, nil
}

// listElement returns the element type name of "List<T>". A bare "List" has String elements.
func listElement(typeName string) (string, bool) {
	if typeName == `List` {
		return index.String.String(), true
	}
	if strings.HasPrefix(typeName, `List<`) && strings.HasSuffix(typeName, `>`) {
		return strings.TrimSpace(typeName[5 : len(typeName)-1]), true
	}
	return typeName, false
}

func convert(st index.ScalarType, value string) (any, error) {
	switch st {
	case index.Version:
		return osgi.ParseVersion(value)
	case index.Long:
		return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	case index.Double:
		return strconv.ParseFloat(strings.TrimSpace(value), 64)
	}
	return value, nil
}

func splitQuoted(s string, sep byte) []string {
	var parts []string
	quoted := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case '\\':
			if quoted {
				i++
			}
		case sep:
			if !quoted {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		if strings.Contains(s, `\`) {
			bld := &strings.Builder{}
			for i := 0; i < len(s); i++ {
				if s[i] == '\\' && i+1 < len(s) {
					i++
				}
				bld.WriteByte(s[i])
			}
			s = bld.String()
		}
	}
	return s
}
