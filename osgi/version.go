package osgi

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// A Version represents an OSGi version: a major, minor, and micro number followed by an
// optional qualifier. The textual form is major[.minor[.micro[.qualifier]]] where missing
// numeric segments default to zero.
type Version interface {
	fmt.Stringer

	// CompareTo compares the receiver to another version. Returns zero if the versions are equal,
	// a negative integer if the receiver is less than the given version, and a positive
	// integer if the receiver is greater than the given version.
	//
	// Qualifiers are compared lexicographically and an empty qualifier sorts first.
	CompareTo(Version) int

	// Equals tests if the receiver is equal to another version.
	Equals(other Version) bool

	// Major returns the major version number
	Major() int

	// Minor returns the minor version number
	Minor() int

	// Micro returns the micro version number
	Micro() int

	// Qualifier returns the qualifier, or the empty string when there is none
	Qualifier() string

	// Hash returns a hash of the version that is consistent with Equals.
	Hash() uint64

	// ToString writes the canonical string representation of this version onto the given
	// Writer.
	ToString(io.Writer)
}

type version struct {
	major     int
	minor     int
	micro     int
	qualifier string
}

var vNR = `(\d+)`
var vQualifier = `([A-Za-z0-9_-]+)`

var qualifierPattern = regexp.MustCompile(`\A` + vQualifier + `\z`)

// versionExpr is the unanchored version grammar shared with the range parser.
var versionExpr = `\d+(?:\.\d+(?:\.\d+(?:\.[A-Za-z0-9_-]+)?)?)?`

var VersionPattern = regexp.MustCompile(`\A` + vNR + `(?:\.` + vNR + `(?:\.` + vNR + `(?:\.` + vQualifier + `)?)?)?\z`)

var Zero Version = &version{0, 0, 0, ``}

// VersionSyntaxError is returned when a string cannot be parsed as a version.
type VersionSyntaxError struct {
	Text   string
	Reason string
}

func (e *VersionSyntaxError) Error() string {
	if e.Reason != `` {
		return fmt.Sprintf(`the string '%s' does not represent a valid OSGi version: %s`, e.Text, e.Reason)
	}
	return fmt.Sprintf(`the string '%s' does not represent a valid OSGi version`, e.Text)
}

func NewVersion(major, minor, micro int, qualifier string) (Version, error) {
	if major < 0 || minor < 0 || micro < 0 {
		return nil, fmt.Errorf(`negative numbers not accepted in version`)
	}
	if qualifier != `` && !qualifierPattern.MatchString(qualifier) {
		return nil, fmt.Errorf(`illegal characters in qualifier '%s'`, qualifier)
	}
	return &version{major, minor, micro, qualifier}, nil
}

func MustParseVersion(str string) Version {
	v, err := ParseVersion(str)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseVersion parses the given string into a Version. Leading and trailing whitespace is
// ignored.
func ParseVersion(str string) (Version, error) {
	str = strings.TrimSpace(str)
	group := VersionPattern.FindStringSubmatch(str)
	if group == nil {
		return nil, &VersionSyntaxError{Text: str}
	}
	nrs := [3]int{}
	for idx := 0; idx < 3; idx++ {
		if group[idx+1] == `` {
			continue
		}
		n, err := strconv.Atoi(group[idx+1])
		if err != nil {
			return nil, &VersionSyntaxError{Text: str, Reason: `number out of range`}
		}
		nrs[idx] = n
	}
	return &version{nrs[0], nrs[1], nrs[2], group[4]}, nil
}

func (v *version) CompareTo(other Version) int {
	cmp := compareInts(v.major, other.Major())
	if cmp == 0 {
		cmp = compareInts(v.minor, other.Minor())
		if cmp == 0 {
			cmp = compareInts(v.micro, other.Micro())
			if cmp == 0 {
				cmp = strings.Compare(v.qualifier, other.Qualifier())
			}
		}
	}
	return cmp
}

func (v *version) Equals(other Version) bool {
	return other != nil && v.CompareTo(other) == 0
}

func (v *version) Hash() uint64 {
	return xxhash.Sum64String(v.String())
}

func (v *version) Major() int {
	return v.major
}

func (v *version) Minor() int {
	return v.minor
}

func (v *version) Micro() int {
	return v.micro
}

func (v *version) Qualifier() string {
	return v.qualifier
}

func (v *version) String() string {
	bld := bytes.NewBufferString(``)
	v.ToString(bld)
	return bld.String()
}

func (v *version) ToString(bld io.Writer) {
	fmt.Fprintf(bld, `%d.%d.%d`, v.major, v.minor, v.micro)
	if v.qualifier != `` {
		io.WriteString(bld, `.`)
		io.WriteString(bld, v.qualifier)
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
