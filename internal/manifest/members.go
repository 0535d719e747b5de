package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// Member describes a workspace member's manifest as it relates to version
// management. It reports only what the member declares; deciding whether that
// declaration is acceptable is the release layer's job.
type Member struct {
	// Name is the member's package name, falling back to the directory name
	// when the manifest declares none.
	Name string
	// Path is the member directory relative to the workspace root.
	Path string
	// Version is the member's own version string, when it declares one.
	Version string
	// HasVersion is true when the member manifest carries a version field of
	// any shape.
	HasVersion bool
	// Inherited is true when the version field is the workspace-inheritance
	// marker rather than an independent value.
	Inherited bool
}

// Members enumerates the workspace members declared by the manifest in dir.
// A non-workspace manifest yields nothing. Member entries may be glob
// patterns; patterns that match nothing, and member directories without a
// manifest, are skipped. A member manifest that exists but cannot be parsed
// is an error.
func (s *Store) Members(dir string) ([]Member, error) {
	doc, err := s.load(s.Path(dir))
	if err != nil {
		return nil, err
	}
	if doc.Workspace == nil || len(doc.Workspace.Members) == 0 {
		return nil, nil
	}

	var members []Member
	for _, pattern := range doc.Workspace.Members {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("workspace member pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			manifestPath := filepath.Join(match, s.filename())
			if _, err := os.Stat(manifestPath); err != nil {
				// Unresolved or manifest-less member directory.
				continue
			}

			memberDoc, err := s.load(manifestPath)
			if err != nil {
				return nil, err
			}

			rel, err := filepath.Rel(dir, match)
			if err != nil {
				rel = match
			}
			m := Member{Name: filepath.Base(match), Path: rel}
			if memberDoc.Package != nil {
				if memberDoc.Package.Name != "" {
					m.Name = memberDoc.Package.Name
				}
				if memberDoc.Package.Version != nil {
					m.HasVersion = true
					m.Inherited = inheritsWorkspace(memberDoc.Package.Version)
					if v, ok := versionString(memberDoc.Package.Version); ok {
						m.Version = v
					}
				}
			}
			members = append(members, m)
		}
	}
	return members, nil
}
