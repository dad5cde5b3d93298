package index

import (
	"github.com/lyraproj/osgi-index/osgi"
)

// Directive is an untyped instruction attached to a capability or requirement.
type Directive struct {
	Name  string
	Value string
}

// DirectiveNode is the serialized form of a Directive.
type DirectiveNode struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type clause struct {
	Namespace  string
	Attributes []*TypedAttribute
	Directives []Directive
}

// AddAttribute appends a typed attribute. Type errors are wrapped in an AttributeError.
func (c *clause) AddAttribute(name string, value any) error {
	a, err := NewTypedAttribute(name, value)
	if err != nil {
		return &AttributeError{Name: name, Err: err}
	}
	c.Attributes = append(c.Attributes, a)
	return nil
}

func (c *clause) AddDirective(name, value string) {
	c.Directives = append(c.Directives, Directive{Name: name, Value: value})
}

// Attribute returns the first attribute with the given name.
func (c *clause) Attribute(name string) (*TypedAttribute, bool) {
	for _, a := range c.Attributes {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}

// Directive returns the value of the first directive with the given name.
func (c *clause) Directive(name string) (string, bool) {
	for _, d := range c.Directives {
		if d.Name == name {
			return d.Value, true
		}
	}
	return ``, false
}

type clauseNode struct {
	Namespace  string          `xml:"namespace,attr"`
	Attributes []AttributeNode `xml:"attribute"`
	Directives []DirectiveNode `xml:"directive"`
}

func (c *clause) node() clauseNode {
	n := clauseNode{Namespace: c.Namespace}
	for _, a := range c.Attributes {
		n.Attributes = append(n.Attributes, a.Serialize())
	}
	for _, d := range c.Directives {
		n.Directives = append(n.Directives, DirectiveNode(d))
	}
	return n
}

// A Capability is something a resource provides.
type Capability struct {
	clause
}

func NewCapability(namespace string) *Capability {
	return &Capability{clause{Namespace: namespace}}
}

// A Requirement is something a resource needs, usually selected by a filter directive.
type Requirement struct {
	clause
}

func NewRequirement(namespace string) *Requirement {
	return &Requirement{clause{Namespace: namespace}}
}

// A Resource is a single indexed artifact.
type Resource struct {
	Capabilities []*Capability
	Requirements []*Requirement
}

func (r *Resource) AddCapability(c *Capability) {
	r.Capabilities = append(r.Capabilities, c)
}

func (r *Resource) AddRequirement(q *Requirement) {
	r.Requirements = append(r.Requirements, q)
}

// Identity returns the symbolic name and version of the osgi.identity capability.
func (r *Resource) Identity() (string, osgi.Version, bool) {
	for _, c := range r.Capabilities {
		if c.Namespace != NamespaceIdentity {
			continue
		}
		name := ``
		if a, ok := c.Attribute(NamespaceIdentity); ok {
			name, _ = a.value.(string)
		}
		v := osgi.Zero
		if a, ok := c.Attribute(AttributeVersion); ok {
			if av, ok := a.value.(osgi.Version); ok {
				v = av
			}
		}
		return name, v, true
	}
	return ``, nil, false
}

type resourceNode struct {
	Capabilities []clauseNode `xml:"capability"`
	Requirements []clauseNode `xml:"requirement"`
}

func (r *Resource) node() resourceNode {
	n := resourceNode{}
	for _, c := range r.Capabilities {
		n.Capabilities = append(n.Capabilities, c.node())
	}
	for _, q := range r.Requirements {
		n.Requirements = append(n.Requirements, q.node())
	}
	return n
}
