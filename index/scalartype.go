package index

import "strings"

// ScalarType is one of the primitive value kinds supported by the repository schema.
type ScalarType int

const (
	String ScalarType = iota
	Version
	Long
	Double
)

var scalarKeys = [...]string{
	String:  `String`,
	Version: `Version`,
	Long:    `Long`,
	Double:  `Double`,
}

// String returns the key used for the type in serialized output.
func (t ScalarType) String() string {
	if t < 0 || int(t) >= len(scalarKeys) {
		return `ScalarType(?)`
	}
	return scalarKeys[t]
}

// ScalarTypeFromKey returns the ScalarType whose key matches text, ignoring case. The second
// return value is false when no type matches.
func ScalarTypeFromKey(text string) (ScalarType, bool) {
	for t, key := range scalarKeys {
		if strings.EqualFold(key, text) {
			return ScalarType(t), true
		}
	}
	return String, false
}
