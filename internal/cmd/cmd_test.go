package cmd

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyraproj/osgi-index/bundle"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--"+EnvFileFlag, writeEnv(t)))
	err := cmd.Execute()
	return out.String(), err
}

func writeEnv(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(p, []byte("OSGI_INDEX_TEST=1\n"), 0o600))
	return p
}

func writeBundle(t *testing.T, p string) {
	t.Helper()
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create(bundle.ManifestPath)
	require.NoError(t, err)
	_, err = io.WriteString(w, "Bundle-SymbolicName: org.example\nBundle-Version: 1.0\n")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestRangeCommand(t *testing.T) {
	out, err := run(t, "range", "[1.0,2.0)", "1.0", "2.0")
	require.NoError(t, err)
	assert.Contains(t, out, "range:    [1.0.0,2.0.0)")
	assert.Contains(t, out, "is range: true")
	assert.Contains(t, out, "filter:   (version>=1.0.0)(!(version>=2.0.0))")
	assert.Contains(t, out, "VERSION")
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "false")
}

func TestRangeCommandInvalid(t *testing.T) {
	_, err := run(t, "range", "[2.0,1.0]")
	assert.Error(t, err)

	_, err = run(t, "range")
	assert.Error(t, err)
}

func TestIndexCommandStdout(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "a.jar"))

	out, err := run(t, "index", "-o", "-", "--name", "cli", "--increment", "5", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `name="cli" increment="5"`)
	assert.Contains(t, out, `<attribute name="osgi.identity" value="org.example"></attribute>`)
	assert.Contains(t, out, `<attribute name="url" value="a.jar"></attribute>`)
}

func TestIndexCommandFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	bundles := filepath.Join(dir, "bundles")
	require.NoError(t, os.Mkdir(bundles, 0o755))
	writeBundle(t, filepath.Join(bundles, "a.jar"))
	cfgPath := filepath.Join(dir, "index.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("name: from-config\npretty: true\n"), 0o600))

	output := filepath.Join(dir, "index.xml")
	_, err := run(t, "index", "--config", cfgPath, "-o", output, bundles)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `name="from-config"`)
	assert.Contains(t, string(data), `<attribute name="url" value="bundles/a.jar"></attribute>`)
}

func TestIndexConfigFlagsOverride(t *testing.T) {
	cmd := newIndexCommand()
	require.NoError(t, cmd.Flags().Set(FlagNoMaven, "true"))
	require.NoError(t, cmd.Flags().Set(FlagConcurrency, "3"))
	cfg, err := indexConfig(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Concurrency)
	require.NotNil(t, cfg.MavenCoordinates)
	assert.False(t, *cfg.MavenCoordinates)
	assert.Equal(t, []string{"*.jar"}, cfg.Includes)
}
