package manifest

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// lockFile is the subset of a Cargo-style lock file bump reads.
type lockFile struct {
	Package []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// SyncLock brings the dependency lock file's entry for this package in line
// with the manifest's version. It is idempotent and a no-op when the
// directory has no lock file, when the manifest is a workspace-only virtual
// manifest, or when the lock entry already matches.
func (s *Store) SyncLock(dir string) error {
	lockPath := s.LockPath(dir)
	if _, err := os.Stat(lockPath); err != nil {
		return nil
	}

	doc, err := s.load(s.Path(dir))
	if err != nil {
		return err
	}
	if doc.Package == nil || doc.Package.Name == "" {
		// Virtual workspace manifest: no single package entry to pin.
		return nil
	}
	version, ok := versionString(doc.Package.Version)
	if !ok {
		if version, ok = doc.workspaceVersion(); !ok {
			return nil
		}
	}

	return rewriteLockEntry(lockPath, doc.Package.Name, version)
}

// rewriteLockEntry updates the version line of the [[package]] block whose
// name matches, preserving the rest of the lock file verbatim.
func rewriteLockEntry(lockPath, name, version string) error {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", lockPath, err)
	}

	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return fmt.Errorf("parsing %s: %w", lockPath, err)
	}

	found := false
	for _, p := range lock.Package {
		if p.Name == name {
			found = true
			if p.Version == version {
				return nil
			}
			break
		}
	}
	if !found {
		return nil
	}

	lines := strings.Split(string(data), "\n")
	nameLine := fmt.Sprintf("name = %q", name)
	inEntry := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[[") {
			inEntry = false
		}
		if trimmed == nameLine {
			inEntry = true
			continue
		}
		if inEntry {
			if m := versionLineRe.FindStringSubmatch(line); m != nil {
				lines[i] = m[1] + fmt.Sprintf("%q", version) + m[3]
				break
			}
		}
	}

	if err := os.WriteFile(lockPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", lockPath, err)
	}
	return nil
}
