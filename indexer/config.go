package indexer

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"

	"sigs.k8s.io/yaml"
)

// Config controls an index build. It can be loaded from YAML and overridden by flags.
type Config struct {
	// Name of the repository element.
	Name string `json:"name,omitempty"`
	// Increment of the repository element. Zero means the build time in milliseconds.
	Increment int64 `json:"increment,omitempty"`
	// RootDir is the local directory that content URLs are made relative to. Defaults to
	// the root each file was found under.
	RootDir string `json:"rootDir,omitempty"`
	// Includes are glob patterns matched against file base names.
	Includes []string `json:"includes,omitempty"`
	// Concurrency limits the number of files analyzed in parallel.
	Concurrency int `json:"concurrency,omitempty"`
	// FailFast aborts the build on the first resource error instead of skipping it.
	FailFast bool `json:"failFast,omitempty"`
	// Pretty indents the XML output.
	Pretty bool `json:"pretty,omitempty"`
	// Compress writes gzip compressed output.
	Compress bool `json:"compress,omitempty"`
	// MavenCoordinates adds maven.coordinates capabilities when pom.properties is present.
	MavenCoordinates *bool `json:"mavenCoordinates,omitempty"`
	// RangeCacheSize bounds the number of cached version ranges.
	RangeCacheSize int `json:"rangeCacheSize,omitempty"`
}

const DefaultName = `Untitled`

// DefaultIncludes selects jar files.
var DefaultIncludes = []string{`*.jar`}

// LoadConfig reads a YAML configuration file.
func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf(`parsing config %s: %w`, file, err)
	}
	return cfg, nil
}

// Default fills in unset values.
func (c *Config) Default() {
	if c.Name == `` {
		c.Name = DefaultName
	}
	if len(c.Includes) == 0 {
		c.Includes = DefaultIncludes
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
	if c.MavenCoordinates == nil {
		enabled := true
		c.MavenCoordinates = &enabled
	}
}

// Validate checks that the include patterns are well formed and that the root is a
// directory rather than a URL.
func (c *Config) Validate() error {
	if strings.Contains(c.RootDir, `://`) {
		return fmt.Errorf(`root directory %q must be a local path, not a URL`, c.RootDir)
	}
	for _, p := range c.Includes {
		if _, err := path.Match(p, ``); err != nil {
			return fmt.Errorf(`invalid include pattern %q: %w`, p, err)
		}
	}
	return nil
}
