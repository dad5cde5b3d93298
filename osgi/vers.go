package osgi

import (
	"fmt"

	"github.com/git-pkgs/vers"
)

// Vers converts the range into a VERS URI using the maven scheme. OSGi bracket notation is
// the same as Maven's range notation, so the conversion goes through the Maven native parser.
// An exact version is passed as the closed range [v,v].
func (r *VersionRange) Vers() (string, error) {
	native := r.String()
	if !r.IsRange() {
		native = `[` + native + `,` + native + `]`
	}
	vr, err := vers.ParseNative(native, `maven`)
	if err != nil {
		return ``, fmt.Errorf(`converting %s to vers: %w`, r, err)
	}
	return vers.ToVersString(vr, `maven`), nil
}
