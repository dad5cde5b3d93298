package osgi

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// A VersionRange represents an interval of OSGi versions with inclusive or exclusive bounds.
// A range whose low and high versions are equal denotes a single exact version.
//
// VersionRange values are immutable and safe for concurrent use.
type VersionRange struct {
	low         Version
	high        Version
	includeLow  bool
	includeHigh bool
}

var rangePattern = regexp.MustCompile(`\A([\[(])\s*(` + versionExpr + `)\s*,\s*(` + versionExpr + `)\s*([\])])\z`)

// InvalidRangeError is returned when the low end of a range is above its high end.
type InvalidRangeError struct {
	Low  Version
	High Version
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf(`invalid version range: low version %s is greater than high version %s`, e.Low, e.High)
}

// RangeSyntaxError is returned when a string is neither a bracketed range nor a version.
type RangeSyntaxError struct {
	Text string
	Err  error
}

func (e *RangeSyntaxError) Error() string {
	return fmt.Sprintf(`'%s' is not a valid version range`, e.Text)
}

func (e *RangeSyntaxError) Unwrap() error {
	return e.Err
}

// ExactVersionRange returns the range [v,v].
func ExactVersionRange(v Version) *VersionRange {
	return &VersionRange{v, v, true, true}
}

// FromVersions creates a range from explicit bounds. An InvalidRangeError is returned when
// low is greater than high.
func FromVersions(includeLow bool, low, high Version, includeHigh bool) (*VersionRange, error) {
	if low.CompareTo(high) > 0 {
		return nil, &InvalidRangeError{Low: low, High: high}
	}
	return &VersionRange{low, high, includeLow, includeHigh}, nil
}

func MustParseVersionRange(str string) *VersionRange {
	r, err := ParseVersionRange(str)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseVersionRange parses either a bracketed range such as "[1.0,2.0)" or a bare version.
// A bare version yields the exact range [v,v].
func ParseVersionRange(str string) (*VersionRange, error) {
	str = strings.TrimSpace(str)
	if m := rangePattern.FindStringSubmatch(str); m != nil {
		low, err := ParseVersion(m[2])
		if err != nil {
			return nil, &RangeSyntaxError{Text: str, Err: err}
		}
		high, err := ParseVersion(m[3])
		if err != nil {
			return nil, &RangeSyntaxError{Text: str, Err: err}
		}
		return FromVersions(m[1] == `[`, low, high, m[4] == `]`)
	}
	v, err := ParseVersion(str)
	if err != nil {
		return nil, &RangeSyntaxError{Text: str, Err: err}
	}
	return ExactVersionRange(v), nil
}

func (r *VersionRange) Low() Version {
	return r.low
}

func (r *VersionRange) High() Version {
	return r.high
}

func (r *VersionRange) IncludeLow() bool {
	return r.includeLow
}

func (r *VersionRange) IncludeHigh() bool {
	return r.includeHigh
}

// IsRange returns false when the low and high versions are equal, regardless of the
// inclusiveness of the bounds.
func (r *VersionRange) IsRange() bool {
	return !r.low.Equals(r.high)
}

// Includes returns true if the given version is within the bounds of the receiver.
func (r *VersionRange) Includes(v Version) bool {
	if v == nil {
		return false
	}
	cmp := v.CompareTo(r.low)
	if cmp < 0 || cmp == 0 && !r.includeLow {
		return false
	}
	cmp = v.CompareTo(r.high)
	return cmp < 0 || cmp == 0 && r.includeHigh
}

// CompareTo orders ranges so that exact versions and ranges can be sorted together.
//
// When the argument is a range it becomes the reference operand and the receiver is tested
// against its bounds. Otherwise, if the receiver is a range it is the reference. Two exact
// versions compare directly. The result is -1 when the reference low bound does not admit the
// other low version, 0 when the reference high bound also admits the other high version,
// and 1 otherwise.
//
// The result is not negated when the operands are swapped, so a.CompareTo(b) == 0 does not
// imply b.CompareTo(a) == 0, nor that the bounds are identical.
func (r *VersionRange) CompareTo(other *VersionRange) int {
	a, b := r, other
	if other.IsRange() {
		a, b = other, r
	} else if !r.IsRange() {
		return r.low.CompareTo(other.low)
	}

	// An equal bound is admitted when the reference includes it, or when both are ranges
	// and the other range excludes it too.
	cmp := a.low.CompareTo(b.low)
	if !(cmp < 0 || cmp == 0 && (a.includeLow || b.IsRange() && !b.includeLow)) {
		return -1
	}
	cmp = a.high.CompareTo(b.high)
	if cmp > 0 || cmp == 0 && (a.includeHigh || b.IsRange() && !b.includeHigh) {
		return 0
	}
	return 1
}

// Equals returns true when CompareTo returns 0.
func (r *VersionRange) Equals(other *VersionRange) bool {
	return other != nil && r.CompareTo(other) == 0
}

// Hash combines the hashes of the low and high versions. Ranges that are Equal because
// one contains the other may still have different hashes.
func (r *VersionRange) Hash() uint64 {
	return r.low.Hash()*31 + r.high.Hash()
}

func (r *VersionRange) String() string {
	bld := bytes.NewBufferString(``)
	r.ToString(bld)
	return bld.String()
}

func (r *VersionRange) ToString(bld io.Writer) {
	if !r.IsRange() {
		r.low.ToString(bld)
		return
	}
	if r.includeLow {
		io.WriteString(bld, `[`)
	} else {
		io.WriteString(bld, `(`)
	}
	r.low.ToString(bld)
	io.WriteString(bld, `,`)
	r.high.ToString(bld)
	if r.includeHigh {
		io.WriteString(bld, `]`)
	} else {
		io.WriteString(bld, `)`)
	}
}
