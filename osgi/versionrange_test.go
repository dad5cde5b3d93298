package osgi_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyraproj/osgi-index/osgi"
)

func ExampleParseVersionRange() {
	rng, err := osgi.ParseVersionRange(`[1.0.0,2.0.0)`)
	if err == nil {
		fmt.Println(rng)
		fmt.Println(rng.IsRange())
		fmt.Println(rng.Filter(`version`))
	} else {
		fmt.Println(err)
	}
	// Output:
	// [1.0.0,2.0.0)
	// true
	// (version>=1.0.0)(!(version>=2.0.0))
}

func TestParseVersionRange(t *testing.T) {
	r, err := osgi.ParseVersionRange(`[1.0.0,2.0.0)`)
	require.NoError(t, err)
	assert.True(t, r.IsRange())
	assert.True(t, r.IncludeLow())
	assert.False(t, r.IncludeHigh())
	assert.Equal(t, `1.0.0`, r.Low().String())
	assert.Equal(t, `2.0.0`, r.High().String())
	assert.Equal(t, `[1.0.0,2.0.0)`, r.String())
}

func TestParseVersionRangeBareVersion(t *testing.T) {
	r, err := osgi.ParseVersionRange(`1.5.0`)
	require.NoError(t, err)
	assert.False(t, r.IsRange())
	assert.True(t, r.IncludeLow())
	assert.True(t, r.IncludeHigh())
	assert.Equal(t, `1.5.0`, r.String())
}

func TestParseVersionRangeWhitespace(t *testing.T) {
	r, err := osgi.ParseVersionRange("  ( 1.0 ,\t2.0.0.q ]  ")
	require.NoError(t, err)
	assert.Equal(t, `(1.0.0,2.0.0.q]`, r.String())
}

func TestParseVersionRangeInvalid(t *testing.T) {
	_, err := osgi.ParseVersionRange(`[2.0,1.0]`)
	var invalid *osgi.InvalidRangeError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, `2.0.0`, invalid.Low.String())
	assert.Equal(t, `1.0.0`, invalid.High.String())

	for _, in := range []string{``, `[1.0]`, `[1.0,2.0`, `1.0,2.0`, `{1.0,2.0}`, `[1.0,,2.0]`, `[a,b]`} {
		t.Run(in, func(t *testing.T) {
			_, err := osgi.ParseVersionRange(in)
			var syntaxErr *osgi.RangeSyntaxError
			assert.True(t, errors.As(err, &syntaxErr), `expected RangeSyntaxError for %q`, in)
		})
	}
}

func TestFromVersions(t *testing.T) {
	_, err := osgi.FromVersions(true, osgi.MustParseVersion(`2.0`), osgi.MustParseVersion(`1.0`), true)
	var invalid *osgi.InvalidRangeError
	assert.True(t, errors.As(err, &invalid))

	r, err := osgi.FromVersions(false, osgi.MustParseVersion(`1.0`), osgi.MustParseVersion(`1.0`), false)
	require.NoError(t, err)
	assert.False(t, r.IsRange())
	assert.Equal(t, `1.0.0`, r.String())
}

func TestRoundTrip(t *testing.T) {
	versions := []string{`0`, `1.0`, `1.0.0.a`, `1.2.3`, `2`}
	for _, lo := range versions {
		for _, hi := range versions {
			low := osgi.MustParseVersion(lo)
			high := osgi.MustParseVersion(hi)
			if low.CompareTo(high) > 0 {
				continue
			}
			for _, il := range []bool{true, false} {
				for _, ih := range []bool{true, false} {
					r, err := osgi.FromVersions(il, low, high, ih)
					require.NoError(t, err)
					p, err := osgi.ParseVersionRange(r.String())
					require.NoError(t, err, r.String())
					assert.Equal(t, 0, p.CompareTo(r), r.String())
					assert.Equal(t, r.String(), p.String())
				}
			}
		}
	}
}

func TestIncludes(t *testing.T) {
	v := osgi.MustParseVersion
	halfOpen := osgi.MustParseVersionRange(`[1.0,2.0)`)
	assert.True(t, halfOpen.Includes(v(`1.0`)))
	assert.True(t, halfOpen.Includes(v(`1.9.9.z`)))
	assert.False(t, halfOpen.Includes(v(`2.0`)))
	assert.False(t, halfOpen.Includes(v(`0.9`)))

	openLow := osgi.MustParseVersionRange(`(1.0,2.0]`)
	assert.False(t, openLow.Includes(v(`1.0`)))
	assert.True(t, openLow.Includes(v(`1.0.0.a`)))
	assert.True(t, openLow.Includes(v(`2.0`)))
	assert.False(t, openLow.Includes(v(`2.0.0.a`)))

	exact := osgi.MustParseVersionRange(`1.5`)
	assert.True(t, exact.Includes(v(`1.5.0`)))
	assert.False(t, exact.Includes(v(`1.5.1`)))
	assert.False(t, exact.Includes(nil))
}

func TestCompareTo(t *testing.T) {
	r := osgi.MustParseVersionRange
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{`exact versions lower`, `1.0`, `2.0`, -1},
		{`exact versions equal`, `1.0`, `1.0.0`, 0},
		{`exact versions higher`, `3.0`, `2.0`, 1},
		{`range contains exact`, `[1.0,2.0)`, `1.5`, 0},
		{`exact inside argument range`, `1.5`, `[1.0,2.0)`, 0},
		{`exact below range`, `0.5`, `[1.0,2.0)`, -1},
		{`exact above range`, `2.5`, `[1.0,2.0)`, 1},
		{`exclusive high excludes bound`, `2.0`, `[1.0,2.0)`, 1},
		{`exclusive low excludes bound`, `1.0`, `(1.0,2.0)`, -1},
		{`identical ranges`, `[1.0,2.0)`, `[1.0,2.0)`, 0},
		{`identical open ranges`, `(1.0,2.0)`, `(1.0,2.0)`, 0},
		{`open receiver within half open argument`, `(1.0,2.0)`, `[1.0,2.0)`, 0},
		{`half open receiver below open argument`, `[1.0,2.0)`, `(1.0,2.0)`, -1},
		{`argument contains receiver`, `[1.2,1.5]`, `[1.0,2.0)`, 0},
		{`receiver contains argument`, `[1.0,2.0)`, `[1.2,1.5]`, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r(tt.a).CompareTo(r(tt.b)))
		})
	}
}

func TestEqualsAndHashQuirk(t *testing.T) {
	outer := osgi.MustParseVersionRange(`[1.0,2.0)`)
	inner := osgi.MustParseVersionRange(`[1.2,1.5]`)
	assert.True(t, inner.Equals(outer))
	assert.NotEqual(t, inner.Hash(), outer.Hash())
	assert.Equal(t, outer.Hash(), osgi.MustParseVersionRange(`[1.0.0,2.0.0)`).Hash())
	assert.False(t, outer.Equals(nil))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`1.2`, `(version>=1.2.0)`},
		{`[1.0,2.0]`, `(version>=1.0.0)(version<=2.0.0)`},
		{`(1.0,2.0)`, `(!(version<=1.0.0))(!(version>=2.0.0))`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, osgi.MustParseVersionRange(tt.in).Filter(`version`))
		})
	}
}

func TestVers(t *testing.T) {
	s, err := osgi.MustParseVersionRange(`[1.0.0,2.0.0)`).Vers()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, `vers:maven/`), s)
}
