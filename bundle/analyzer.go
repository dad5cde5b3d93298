// Package bundle builds index resources from OSGi bundle jars.
package bundle

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lyraproj/osgi-index/index"
	"github.com/lyraproj/osgi-index/internal/logger"
	"github.com/lyraproj/osgi-index/osgi"
)

// ErrNotBundle is returned for jars without a Bundle-SymbolicName header.
var ErrNotBundle = errors.New(`not an OSGi bundle`)

// Manifest headers read by the analyzer.
const (
	HeaderSymbolicName      = `Bundle-SymbolicName`
	HeaderVersion           = `Bundle-Version`
	HeaderExportPackage     = `Export-Package`
	HeaderImportPackage     = `Import-Package`
	HeaderRequireBundle     = `Require-Bundle`
	HeaderFragmentHost      = `Fragment-Host`
	HeaderProvideCapability = `Provide-Capability`
	HeaderRequireCapability = `Require-Capability`
)

const DefaultRangeCacheSize = 4096

// HeaderError reports a manifest header that could not be turned into index entries.
type HeaderError struct {
	Header string
	Err    error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf(`header %s: %v`, e.Header, e.Err)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// Analyzer turns bundle jars into index resources. It is safe for concurrent use.
type Analyzer struct {
	ranges *lru.Cache[string, *osgi.VersionRange]
	maven  bool
	log    *logger.Logger
}

type Option func(*Analyzer)

// WithMavenCoordinates enables the maven.coordinates capability for jars that carry a
// pom.properties file.
func WithMavenCoordinates(enabled bool) Option {
	return func(a *Analyzer) {
		a.maven = enabled
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(a *Analyzer) {
		a.log = l
	}
}

// NewAnalyzer creates an analyzer that caches up to cacheSize parsed version ranges.
func NewAnalyzer(cacheSize int, opts ...Option) (*Analyzer, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultRangeCacheSize
	}
	cache, err := lru.New[string, *osgi.VersionRange](cacheSize)
	if err != nil {
		return nil, err
	}
	a := &Analyzer{ranges: cache, maven: true, log: logger.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ParseRange parses a version range, consulting the cache first.
func (a *Analyzer) ParseRange(text string) (*osgi.VersionRange, error) {
	if r, ok := a.ranges.Get(text); ok {
		return r, nil
	}
	r, err := osgi.ParseVersionRange(text)
	if err != nil {
		return nil, err
	}
	a.ranges.Add(text, r)
	return r, nil
}

// Analyze reads the jar at path and returns its resource description. The url is recorded in
// the osgi.content capability.
func (a *Analyzer) Analyze(ctx context.Context, path, url string) (*index.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf(`hashing %s: %w`, path, err)
	}
	digest := hex.EncodeToString(h.Sum(nil))

	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, path, ErrNotBundle)
	}
	mf, err := readJarManifest(zr)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, path, err)
	}

	res, err := a.Resource(mf, Content{Digest: digest, URL: url, Size: st.Size()})
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, path, err)
	}

	if a.maven {
		coords, ok, err := findCoordinates(zr)
		if err != nil {
			return nil, fmt.Errorf(`%s: %w`, path, err)
		}
		if ok {
			capa, err := coords.capability()
			if err != nil {
				return nil, fmt.Errorf(`%s: %w`, path, err)
			}
			res.AddCapability(capa)
			a.log.Debug().Str(`path`, path).Str(`purl`, coords.PURL()).Msg(`Maven coordinates found`)
		}
	}

	name, v, _ := res.Identity()
	a.log.LogResourceIndexed(path, name, v.String(), time.Since(start))
	return res, nil
}

func readJarManifest(zr *zip.Reader) (*Manifest, error) {
	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, ManifestPath) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return ReadManifest(rc)
	}
	return nil, ErrNotBundle
}

// Content describes the bytes of an indexed artifact.
type Content struct {
	Digest string
	URL    string
	Size   int64
}

// Resource builds the capabilities and requirements of a bundle from its manifest.
func (a *Analyzer) Resource(mf *Manifest, content Content) (*index.Resource, error) {
	bsnClauses, err := ParseHeader(mf.Value(HeaderSymbolicName))
	if err != nil {
		return nil, &HeaderError{Header: HeaderSymbolicName, Err: err}
	}
	if len(bsnClauses) == 0 {
		return nil, ErrNotBundle
	}
	bsn := bsnClauses[0]
	name := bsn.Paths[0]

	version := osgi.Zero
	if vs := mf.Value(HeaderVersion); vs != `` {
		if version, err = osgi.ParseVersion(vs); err != nil {
			return nil, &HeaderError{Header: HeaderVersion, Err: err}
		}
	}
	_, fragment := mf.Get(HeaderFragmentHost)

	b := &builder{analyzer: a, res: &index.Resource{}, name: name, version: version}
	steps := []struct {
		header string
		run    func() error
	}{
		{HeaderSymbolicName, func() error { return b.identity(bsn, fragment) }},
		{``, func() error { return b.content(content) }},
		{HeaderSymbolicName, func() error {
			if fragment {
				return nil
			}
			return b.wiring(bsn)
		}},
		{HeaderExportPackage, func() error { return b.exports(mf.Value(HeaderExportPackage)) }},
		{HeaderImportPackage, func() error { return b.imports(mf.Value(HeaderImportPackage)) }},
		{HeaderRequireBundle, func() error { return b.requireBundles(mf.Value(HeaderRequireBundle)) }},
		{HeaderFragmentHost, func() error { return b.host(mf.Value(HeaderFragmentHost)) }},
		{HeaderProvideCapability, func() error { return b.provideCapabilities(mf.Value(HeaderProvideCapability)) }},
		{HeaderRequireCapability, func() error { return b.requireCapabilities(mf.Value(HeaderRequireCapability)) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			if step.header == `` {
				return nil, err
			}
			return nil, &HeaderError{Header: step.header, Err: err}
		}
	}
	return b.res, nil
}
