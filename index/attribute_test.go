package index_test

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyraproj/osgi-index/index"
	"github.com/lyraproj/osgi-index/osgi"
)

func TestSerializeOmitsStringType(t *testing.T) {
	a, err := index.NewTypedAttribute(`foo`, `bar`)
	require.NoError(t, err)
	n := a.Serialize()
	assert.Equal(t, index.AttributeNode{Name: `foo`, Value: `bar`}, n)

	out, err := xml.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `<attribute name="foo" value="bar"></attribute>`, string(out))
}

func TestSerializeTyped(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantType string
		want     string
	}{
		{`long list`, []int{1, 2, 3}, `List<Long>`, `1,2,3`},
		{`string list`, []string{`a`}, `List<String>`, `a`},
		{`version`, osgi.MustParseVersion(`1.0`), `Version`, `1.0.0`},
		{`double`, 0.5, `Double`, `0.5`},
		{`bool`, true, ``, `true`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := index.NewTypedAttribute(`attr`, tt.value)
			require.NoError(t, err)
			n := a.Serialize()
			assert.Equal(t, `attr`, n.Name)
			assert.Equal(t, tt.wantType, n.Type)
			assert.Equal(t, tt.want, n.Value)
		})
	}
}

func TestNewTypedAttributePropagatesErrors(t *testing.T) {
	_, err := index.NewTypedAttribute(`x`, nil)
	assert.Equal(t, index.ErrNullValue, err)

	_, err = index.NewTypedAttribute(`x`, []int64{})
	assert.Equal(t, index.ErrEmptyCollection, err)
}

func TestAddAttributeWrapsErrors(t *testing.T) {
	c := index.NewCapability(`ns`)
	err := c.AddAttribute(`empty`, []string{})
	var attrErr *index.AttributeError
	require.ErrorAs(t, err, &attrErr)
	assert.Equal(t, `empty`, attrErr.Name)
	assert.ErrorIs(t, err, index.ErrEmptyCollection)
	assert.Empty(t, c.Attributes)
}
