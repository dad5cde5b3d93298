package bundle

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	packageurl "github.com/package-url/packageurl-go"

	"github.com/lyraproj/osgi-index/index"
)

// Coordinates identify a Maven artifact.
type Coordinates struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// PURL returns the package URL of the artifact, e.g. pkg:maven/org.example/foo@1.0.
func (c Coordinates) PURL() string {
	return packageurl.NewPackageURL(packageurl.TypeMaven, c.GroupID, c.ArtifactID, c.Version, nil, ``).ToString()
}

func (c Coordinates) capability() (*index.Capability, error) {
	capa := index.NewCapability(index.NamespaceMaven)
	for _, a := range []struct {
		name  string
		value string
	}{
		{`groupId`, c.GroupID},
		{`artifactId`, c.ArtifactID},
		{`version`, c.Version},
		{`purl`, c.PURL()},
	} {
		if err := capa.AddAttribute(a.name, a.value); err != nil {
			return nil, err
		}
	}
	return capa, nil
}

// findCoordinates looks for META-INF/maven/<group>/<artifact>/pom.properties. It returns
// false when the jar does not contain exactly one such file.
func findCoordinates(zr *zip.Reader) (Coordinates, bool, error) {
	var found *zip.File
	for _, f := range zr.File {
		if ok, _ := path.Match(`META-INF/maven/*/*/pom.properties`, f.Name); !ok {
			continue
		}
		if found != nil {
			return Coordinates{}, false, nil
		}
		found = f
	}
	if found == nil {
		return Coordinates{}, false, nil
	}
	rc, err := found.Open()
	if err != nil {
		return Coordinates{}, false, fmt.Errorf(`opening %s: %w`, found.Name, err)
	}
	defer rc.Close()

	props, err := readProperties(rc)
	if err != nil {
		return Coordinates{}, false, fmt.Errorf(`reading %s: %w`, found.Name, err)
	}
	c := Coordinates{GroupID: props[`groupId`], ArtifactID: props[`artifactId`], Version: props[`version`]}
	if c.GroupID == `` || c.ArtifactID == `` {
		return Coordinates{}, false, nil
	}
	return c, true, nil
}

// readProperties reads the simple key=value subset of the Java properties format that Maven
// writes into pom.properties.
func readProperties(r io.Reader) (map[string]string, error) {
	props := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == `` || line[0] == '#' || line[0] == '!' {
			continue
		}
		key, value, ok := strings.Cut(line, `=`)
		if !ok {
			key, value, _ = strings.Cut(line, `:`)
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return props, scanner.Err()
}
