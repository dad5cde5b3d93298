package index_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyraproj/osgi-index/index"
	"github.com/lyraproj/osgi-index/osgi"
)

func bundleResource(t *testing.T, name, version string) *index.Resource {
	t.Helper()
	id := index.NewCapability(index.NamespaceIdentity)
	require.NoError(t, id.AddAttribute(index.NamespaceIdentity, name))
	require.NoError(t, id.AddAttribute(index.AttributeType, index.IdentityTypeBundle))
	require.NoError(t, id.AddAttribute(index.AttributeVersion, osgi.MustParseVersion(version)))
	res := &index.Resource{}
	res.AddCapability(id)
	return res
}

func TestResourceIdentity(t *testing.T) {
	res := bundleResource(t, `org.example.a`, `1.2`)
	name, v, ok := res.Identity()
	require.True(t, ok)
	assert.Equal(t, `org.example.a`, name)
	assert.Equal(t, `1.2.0`, v.String())

	_, _, ok = (&index.Resource{}).Identity()
	assert.False(t, ok)
}

func TestRepositorySort(t *testing.T) {
	repo := &index.Repository{Resources: []*index.Resource{
		{},
		bundleResource(t, `b`, `1.0`),
		bundleResource(t, `a`, `1.0`),
		bundleResource(t, `a`, `2.0`),
	}}
	repo.Sort()

	var got []string
	for _, res := range repo.Resources {
		name, v, ok := res.Identity()
		if !ok {
			got = append(got, `-`)
			continue
		}
		got = append(got, name+`@`+v.String())
	}
	assert.Equal(t, []string{`a@2.0.0`, `a@1.0.0`, `b@1.0.0`, `-`}, got)
}

func TestRepositoryWriteXML(t *testing.T) {
	res := bundleResource(t, `org.example.a`, `1.0`)
	req := index.NewRequirement(index.NamespaceWiringPackage)
	req.AddDirective(index.DirectiveFilter, `(&(osgi.wiring.package=org.x)(version>=1.0.0))`)
	res.AddRequirement(req)

	repo := &index.Repository{Name: `test`, Increment: 42, Resources: []*index.Resource{res}}
	buf := &bytes.Buffer{}
	require.NoError(t, repo.WriteXML(buf, true))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<repository xmlns="http://www.osgi.org/xmlns/repository/v1.0.0" name="test" increment="42">`)
	assert.Contains(t, out, `<capability namespace="osgi.identity">`)
	assert.Contains(t, out, `<attribute name="osgi.identity" value="org.example.a"></attribute>`)
	assert.Contains(t, out, `<attribute name="version" type="Version" value="1.0.0"></attribute>`)
	assert.Contains(t, out, `<requirement namespace="osgi.wiring.package">`)
	assert.Contains(t, out, `<directive name="filter" value="(&amp;(osgi.wiring.package=org.x)(version&gt;=1.0.0))"></directive>`)
}
