package bundle

import (
	"fmt"
	"strings"

	"github.com/lyraproj/osgi-index/index"
	"github.com/lyraproj/osgi-index/osgi"
)

// exportSkipped lists export attributes that are either rewritten or deprecated.
var exportSkipped = map[string]bool{
	index.AttributeVersion:       true,
	`specification-version`:      true,
	index.AttributeSymbolicName:  true,
	index.AttributeBundleVersion: true,
}

type builder struct {
	analyzer *Analyzer
	res      *index.Resource
	name     string
	version  osgi.Version
}

func (b *builder) identity(bsn Clause, fragment bool) error {
	capa := index.NewCapability(index.NamespaceIdentity)
	typ := index.IdentityTypeBundle
	if fragment {
		typ = index.IdentityTypeFragment
	}
	if err := addAttributes(capa, index.NamespaceIdentity, b.name, index.AttributeType, typ, index.AttributeVersion, b.version); err != nil {
		return err
	}
	if s, ok := bsn.Directive(index.DirectiveSingleton); ok && strings.EqualFold(s, `true`) {
		capa.AddDirective(index.DirectiveSingleton, `true`)
	}
	b.res.AddCapability(capa)
	return nil
}

func (b *builder) content(c Content) error {
	capa := index.NewCapability(index.NamespaceContent)
	if err := addAttributes(capa,
		index.NamespaceContent, c.Digest,
		index.AttributeURL, c.URL,
		index.AttributeSize, c.Size,
		index.AttributeMime, index.MimeBundle); err != nil {
		return err
	}
	b.res.AddCapability(capa)
	return nil
}

// wiring adds the osgi.wiring.bundle and osgi.wiring.host capabilities of a non-fragment.
func (b *builder) wiring(bsn Clause) error {
	bundle := index.NewCapability(index.NamespaceWiringBundle)
	if err := addAttributes(bundle, index.NamespaceWiringBundle, b.name, index.AttributeBundleVersion, b.version); err != nil {
		return err
	}
	b.res.AddCapability(bundle)

	if fa, ok := bsn.Directive(`fragment-attachment`); ok && fa == `never` {
		return nil
	}
	host := index.NewCapability(index.NamespaceWiringHost)
	if err := addAttributes(host, index.NamespaceWiringHost, b.name, index.AttributeBundleVersion, b.version); err != nil {
		return err
	}
	b.res.AddCapability(host)
	return nil
}

func (b *builder) exports(header string) error {
	clauses, err := ParseHeader(header)
	if err != nil {
		return err
	}
	for _, c := range clauses {
		version := osgi.Zero
		if vs, ok := c.Attribute(index.AttributeVersion); ok {
			if version, err = toVersion(vs); err != nil {
				return err
			}
		}
		for _, pkg := range c.Paths {
			capa := index.NewCapability(index.NamespaceWiringPackage)
			if err := addAttributes(capa,
				index.NamespaceWiringPackage, pkg,
				index.AttributeVersion, version,
				index.AttributeSymbolicName, b.name,
				index.AttributeBundleVersion, b.version); err != nil {
				return err
			}
			for _, a := range c.Attributes {
				if exportSkipped[a.Name] {
					continue
				}
				if err := capa.AddAttribute(a.Name, a.Value); err != nil {
					return err
				}
			}
			for _, d := range c.Directives {
				capa.AddDirective(d.Name, d.Value)
			}
			b.res.AddCapability(capa)
		}
	}
	return nil
}

func (b *builder) imports(header string) error {
	clauses, err := ParseHeader(header)
	if err != nil {
		return err
	}
	for _, c := range clauses {
		for _, pkg := range c.Paths {
			req, err := b.requirement(index.NamespaceWiringPackage, pkg, c, index.AttributeVersion)
			if err != nil {
				return err
			}
			b.res.AddRequirement(req)
		}
	}
	return nil
}

func (b *builder) requireBundles(header string) error {
	clauses, err := ParseHeader(header)
	if err != nil {
		return err
	}
	for _, c := range clauses {
		for _, name := range c.Paths {
			req, err := b.requirement(index.NamespaceWiringBundle, name, c, index.AttributeBundleVersion)
			if err != nil {
				return err
			}
			b.res.AddRequirement(req)
		}
	}
	return nil
}

func (b *builder) host(header string) error {
	clauses, err := ParseHeader(header)
	if err != nil {
		return err
	}
	if len(clauses) == 0 {
		return nil
	}
	c := clauses[0]
	req, err := b.requirement(index.NamespaceWiringHost, c.Paths[0], c, index.AttributeBundleVersion)
	if err != nil {
		return err
	}
	b.res.AddRequirement(req)
	return nil
}

// requirement builds a requirement whose filter selects the named capability and, when the
// clause carries a version range attribute, constrains its version.
func (b *builder) requirement(namespace, name string, c Clause, versionKey string) (*index.Requirement, error) {
	filter := &strings.Builder{}
	vs, hasVersion := c.Attribute(versionKey)
	if hasVersion {
		filter.WriteString(`(&`)
	}
	fmt.Fprintf(filter, `(%s=%s)`, namespace, name)
	if hasVersion {
		r, err := b.analyzer.ParseRange(fmt.Sprint(vs))
		if err != nil {
			return nil, err
		}
		r.AppendFilter(filter, versionKey)
		filter.WriteString(`)`)
	}

	req := index.NewRequirement(namespace)
	req.AddDirective(index.DirectiveFilter, filter.String())
	for _, d := range c.Directives {
		if d.Name == index.DirectiveResolution || d.Name == index.DirectiveEffective {
			req.AddDirective(d.Name, d.Value)
		}
	}
	return req, nil
}

func (b *builder) provideCapabilities(header string) error {
	clauses, err := ParseHeader(header)
	if err != nil {
		return err
	}
	for _, c := range clauses {
		for _, ns := range c.Paths {
			capa := index.NewCapability(ns)
			for _, a := range c.Attributes {
				if err := capa.AddAttribute(a.Name, a.Value); err != nil {
					return err
				}
			}
			for _, d := range c.Directives {
				capa.AddDirective(d.Name, d.Value)
			}
			b.res.AddCapability(capa)
		}
	}
	return nil
}

func (b *builder) requireCapabilities(header string) error {
	clauses, err := ParseHeader(header)
	if err != nil {
		return err
	}
	for _, c := range clauses {
		for _, ns := range c.Paths {
			req := index.NewRequirement(ns)
			for _, a := range c.Attributes {
				if err := req.AddAttribute(a.Name, a.Value); err != nil {
					return err
				}
			}
			for _, d := range c.Directives {
				req.AddDirective(d.Name, d.Value)
			}
			b.res.AddRequirement(req)
		}
	}
	return nil
}

func toVersion(v any) (osgi.Version, error) {
	switch v := v.(type) {
	case osgi.Version:
		return v, nil
	case string:
		return osgi.ParseVersion(v)
	}
	return osgi.ParseVersion(fmt.Sprint(v))
}

// addAttributes adds name/value pairs to c in order.
func addAttributes(c *index.Capability, pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := c.AddAttribute(pairs[i].(string), pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
