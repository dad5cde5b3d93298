package osgi

import (
	"strings"
)

// AppendFilter writes the range as an LDAP filter fragment on the given attribute key. An exact
// version is treated as a lower bound only, which is how an unbracketed version in an import
// clause is interpreted. Exclusive bounds are expressed through negation since the filter
// syntax has no strict comparison operators.
func (r *VersionRange) AppendFilter(bld *strings.Builder, key string) {
	if !r.IsRange() {
		writeComparison(bld, key, `>=`, r.low)
		return
	}
	if r.includeLow {
		writeComparison(bld, key, `>=`, r.low)
	} else {
		bld.WriteString(`(!`)
		writeComparison(bld, key, `<=`, r.low)
		bld.WriteString(`)`)
	}
	if r.includeHigh {
		writeComparison(bld, key, `<=`, r.high)
	} else {
		bld.WriteString(`(!`)
		writeComparison(bld, key, `>=`, r.high)
		bld.WriteString(`)`)
	}
}

// Filter returns the filter fragment produced by AppendFilter.
func (r *VersionRange) Filter(key string) string {
	bld := &strings.Builder{}
	r.AppendFilter(bld, key)
	return bld.String()
}

func writeComparison(bld *strings.Builder, key, op string, v Version) {
	bld.WriteString(`(`)
	bld.WriteString(key)
	bld.WriteString(op)
	v.ToString(bld)
	bld.WriteString(`)`)
}
