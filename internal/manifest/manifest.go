// Package manifest reads and updates the version field of Cargo-style TOML
// manifests, enumerates workspace members, and keeps the dependency lock file
// in step after a version write.
//
// Reads go through a real TOML parser. Writes deliberately do not: the
// version field is replaced in place with a targeted line edit so the rest of
// the file, comments and ordering included, survives byte-for-byte.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultFilename is the manifest file bump looks for in each target
// directory.
const DefaultFilename = "Cargo.toml"

// Store provides manifest access for a configurable manifest filename. The
// zero value uses DefaultFilename.
type Store struct {
	// Filename overrides the manifest file name, e.g. for testing against
	// a differently named fixture. Empty means DefaultFilename.
	Filename string
}

// document is the subset of a manifest bump cares about.
type document struct {
	Package   *packageTable   `toml:"package"`
	Workspace *workspaceTable `toml:"workspace"`
}

type packageTable struct {
	Name string `toml:"name"`
	// Version is either a string ("1.2.3") or a table ({ workspace = true }).
	Version any `toml:"version"`
}

type workspaceTable struct {
	Members []string      `toml:"members"`
	Package *packageTable `toml:"package"`
}

func (s *Store) filename() string {
	if s.Filename != "" {
		return s.Filename
	}
	return DefaultFilename
}

// Path returns the manifest path for a target directory.
func (s *Store) Path(dir string) string {
	return filepath.Join(dir, s.filename())
}

// LockPath returns the dependency lock file path derived from the manifest
// name (Cargo.toml -> Cargo.lock).
func (s *Store) LockPath(dir string) string {
	name := strings.TrimSuffix(s.filename(), filepath.Ext(s.filename())) + ".lock"
	return filepath.Join(dir, name)
}

// Exists reports whether the directory has a manifest.
func (s *Store) Exists(dir string) bool {
	_, err := os.Stat(s.Path(dir))
	return err == nil
}

func (s *Store) load(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}

// versionString extracts a plain string version value.
func versionString(v any) (string, bool) {
	str, ok := v.(string)
	return str, ok
}

// inheritsWorkspace reports whether a version value is the inheritance marker
// { workspace = true }.
func inheritsWorkspace(v any) bool {
	table, ok := v.(map[string]any)
	if !ok {
		return false
	}
	ws, ok := table["workspace"].(bool)
	return ok && ws
}

func (d *document) workspaceVersion() (string, bool) {
	if d.Workspace == nil || d.Workspace.Package == nil {
		return "", false
	}
	return versionString(d.Workspace.Package.Version)
}

// ReadVersion returns the manifest's declared version, without a "v" prefix.
// A [package] version string wins; version.workspace = true defers to
// [workspace.package].version, as does a workspace-only manifest. The second
// return is false when no version is declared anywhere.
func (s *Store) ReadVersion(dir string) (string, bool, error) {
	doc, err := s.load(s.Path(dir))
	if err != nil {
		return "", false, err
	}

	if doc.Package != nil {
		if v, ok := versionString(doc.Package.Version); ok {
			return v, true, nil
		}
	}
	if v, ok := doc.workspaceVersion(); ok {
		return v, true, nil
	}
	return "", false, nil
}

var versionLineRe = regexp.MustCompile(`^(\s*version\s*=\s*)("[^"]*"|'[^']*')(.*)$`)

// WriteVersion updates the manifest's version field in place, creating the
// field (and, for workspace-only manifests, the [workspace.package] table)
// when missing. The value carries no "v" prefix.
func (s *Store) WriteVersion(dir, version string) error {
	path := s.Path(dir)
	doc, err := s.load(path)
	if err != nil {
		return err
	}

	// Decide which table owns the version: members inheriting from the
	// workspace and workspace-only manifests write [workspace.package],
	// everything else writes [package].
	section := "package"
	switch {
	case doc.Package != nil && inheritsWorkspace(doc.Package.Version):
		if _, ok := doc.workspaceVersion(); !ok {
			return fmt.Errorf("%s: version.workspace = true but no [workspace.package] version to update", path)
		}
		section = "workspace.package"
	case doc.Package == nil && doc.Workspace != nil:
		section = "workspace.package"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	updated := setVersionInSection(string(data), section, version)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// setVersionInSection replaces (or inserts) the version key inside the named
// TOML table, leaving every other line untouched. A missing table is appended
// at the end of the file.
func setVersionInSection(content, section, version string) string {
	lines := strings.Split(content, "\n")
	header := "[" + section + "]"

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == header {
			start = i
			break
		}
	}

	if start == -1 {
		// Table absent: append it.
		out := strings.TrimRight(content, "\n")
		if out != "" {
			out += "\n\n"
		}
		return out + header + "\n" + fmt.Sprintf("version = %q", version) + "\n"
	}

	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "[") {
			break
		}
		if m := versionLineRe.FindStringSubmatch(lines[i]); m != nil {
			lines[i] = m[1] + fmt.Sprintf("%q", version) + m[3]
			return strings.Join(lines, "\n")
		}
	}

	// Table exists but has no version key: insert one under the header.
	inserted := make([]string, 0, len(lines)+1)
	inserted = append(inserted, lines[:start+1]...)
	inserted = append(inserted, fmt.Sprintf("version = %q", version))
	inserted = append(inserted, lines[start+1:]...)
	return strings.Join(inserted, "\n")
}
