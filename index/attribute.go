package index

import "encoding/xml"

// A TypedAttribute is a named value together with its inferred Type.
type TypedAttribute struct {
	name  string
	typ   Type
	value any
}

// AttributeNode is the serialized form of a TypedAttribute. The type is omitted for plain
// String scalars since the schema treats untyped attributes as strings.
type AttributeNode struct {
	XMLName xml.Name `xml:"attribute"`
	Name    string   `xml:"name,attr"`
	Type    string   `xml:"type,attr,omitempty"`
	Value   string   `xml:"value,attr"`
}

// NewTypedAttribute infers the type of value. Errors from TypeOf are returned unchanged.
func NewTypedAttribute(name string, value any) (*TypedAttribute, error) {
	t, err := TypeOf(value)
	if err != nil {
		return nil, err
	}
	return &TypedAttribute{name: name, typ: t, value: value}, nil
}

func (a *TypedAttribute) Name() string {
	return a.name
}

func (a *TypedAttribute) Type() Type {
	return a.typ
}

func (a *TypedAttribute) Value() any {
	return a.value
}

func (a *TypedAttribute) Serialize() AttributeNode {
	n := AttributeNode{Name: a.name, Value: a.typ.Render(a.value)}
	if a.typ.IsList() || a.typ.Scalar() != String {
		n.Type = a.typ.String()
	}
	return n
}
