package release

import (
	"github.com/bcomnes/bump/internal/manifest"
)

// IndependentMembers filters workspace members down to those that declare a
// version of their own instead of inheriting the shared workspace version.
// A member without any version field is not divergence; neither is the
// inheritance marker. Any non-empty result is a hard stop for the workflow.
func IndependentMembers(members []manifest.Member) []manifest.Member {
	var independent []manifest.Member
	for _, m := range members {
		if m.HasVersion && !m.Inherited {
			independent = append(independent, m)
		}
	}
	return independent
}
