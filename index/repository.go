package index

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"
)

// A Repository is the root of an index document.
type Repository struct {
	Name      string
	Increment int64
	Resources []*Resource
}

type repositoryNode struct {
	XMLName   xml.Name
	Name      string         `xml:"name,attr,omitempty"`
	Increment int64          `xml:"increment,attr"`
	Resources []resourceNode `xml:"resource"`
}

// Sort orders resources by symbolic name and then by descending version. Resources without an
// identity sort last.
func (r *Repository) Sort() {
	sort.SliceStable(r.Resources, func(i, j int) bool {
		ni, vi, oki := r.Resources[i].Identity()
		nj, vj, okj := r.Resources[j].Identity()
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if cmp := strings.Compare(ni, nj); cmp != 0 {
			return cmp < 0
		}
		return vi.CompareTo(vj) > 0
	})
}

// WriteXML writes the repository as an XML document, including the XML declaration.
func (r *Repository) WriteXML(w io.Writer, pretty bool) error {
	n := repositoryNode{
		XMLName:   xml.Name{Space: Namespace, Local: ElementRepository},
		Name:      r.Name,
		Increment: r.Increment,
	}
	for _, res := range r.Resources {
		n.Resources = append(n.Resources, res.node())
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if pretty {
		enc.Indent(``, `  `)
	}
	if err := enc.Encode(n); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
