package bundle

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ManifestPath is the location of the manifest inside a jar.
const ManifestPath = `META-INF/MANIFEST.MF`

// A Manifest holds the main section headers of a jar manifest. Header names are case
// insensitive.
type Manifest struct {
	headers map[string]string
	names   []string
}

// ReadManifest reads the main section of a manifest. Continuation lines, which start with a
// single space, are joined with the preceding line.
func ReadManifest(r io.Reader) (*Manifest, error) {
	m := &Manifest{headers: map[string]string{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	name := ``
	value := &strings.Builder{}
	flush := func() {
		if name != `` {
			m.set(name, value.String())
		}
		name = ``
		value.Reset()
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == `` {
			break
		}
		if line[0] == ' ' {
			if name == `` {
				return nil, fmt.Errorf(`manifest line %d: continuation without header`, lineNo)
			}
			value.WriteString(line[1:])
			continue
		}
		flush()
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			return nil, fmt.Errorf(`manifest line %d: missing header name`, lineNo)
		}
		name = line[:colon]
		value.WriteString(strings.TrimPrefix(line[colon+1:], ` `))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(`reading manifest: %w`, err)
	}
	flush()
	return m, nil
}

func (m *Manifest) set(name, value string) {
	key := strings.ToLower(name)
	if _, ok := m.headers[key]; !ok {
		m.names = append(m.names, name)
	}
	m.headers[key] = value
}

// Get returns the value of a header and whether it was present.
func (m *Manifest) Get(name string) (string, bool) {
	v, ok := m.headers[strings.ToLower(name)]
	return v, ok
}

// Value returns the trimmed value of a header or the empty string.
func (m *Manifest) Value(name string) string {
	v, _ := m.Get(name)
	return strings.TrimSpace(v)
}

// Names returns the header names in the order they first appeared.
func (m *Manifest) Names() []string {
	return append([]string(nil), m.names...)
}
