package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFilename), []byte(content), 0o644))
}

func readManifest(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, DefaultFilename))
	require.NoError(t, err)
	return string(data)
}

func TestPaths(t *testing.T) {
	s := &Store{}
	assert.Equal(t, filepath.Join("proj", "Cargo.toml"), s.Path("proj"))
	assert.Equal(t, filepath.Join("proj", "Cargo.lock"), s.LockPath("proj"))

	custom := &Store{Filename: "Other.toml"}
	assert.Equal(t, filepath.Join("proj", "Other.toml"), custom.Path("proj"))
	assert.Equal(t, filepath.Join("proj", "Other.lock"), custom.LockPath("proj"))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	s := &Store{}
	assert.False(t, s.Exists(dir))

	writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	assert.True(t, s.Exists(dir))
}

func TestReadVersionPackage(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[package]
name = "demo"
version = "1.2.3"
edition = "2021"
`)

	s := &Store{}
	v, ok, err := s.ReadVersion(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1.2.3", v)
}

func TestReadVersionMissing(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[package]
name = "demo"
`)

	s := &Store{}
	_, ok, err := s.ReadVersion(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadVersionWorkspaceOnly(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[workspace]
members = ["crates/*"]

[workspace.package]
version = "0.4.0"
`)

	s := &Store{}
	v, ok, err := s.ReadVersion(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0.4.0", v)
}

func TestReadVersionInherited(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[package]
name = "demo"
version.workspace = true

[workspace.package]
version = "3.1.4"
`)

	s := &Store{}
	v, ok, err := s.ReadVersion(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3.1.4", v)
}

func TestReadVersionParseError(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "this is not toml = = =\n")

	s := &Store{}
	_, _, err := s.ReadVersion(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestWriteVersionPreservesEverythingElse(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `# release config lives here
[package]
name = "demo" # the crate
version = "1.2.3"
edition = "2021"

[dependencies]
serde = { version = "1", features = ["derive"] }
`)

	s := &Store{}
	require.NoError(t, s.WriteVersion(dir, "1.3.0"))

	got := readManifest(t, dir)
	assert.Contains(t, got, `version = "1.3.0"`)
	assert.NotContains(t, got, `version = "1.2.3"`)
	// Comments, ordering, and unrelated tables must survive byte-for-byte.
	assert.Contains(t, got, "# release config lives here")
	assert.Contains(t, got, `name = "demo" # the crate`)
	assert.Contains(t, got, `serde = { version = "1", features = ["derive"] }`)

	v, ok, err := s.ReadVersion(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1.3.0", v)
}

func TestWriteVersionDoesNotTouchDependencyVersions(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[package]
name = "demo"
version = "1.2.3"

[dependencies.serde]
version = "1.0.0"
`)

	s := &Store{}
	require.NoError(t, s.WriteVersion(dir, "2.0.0"))

	got := readManifest(t, dir)
	assert.Contains(t, got, `version = "2.0.0"`)
	// The dependency's own version key sits in a different table.
	assert.Contains(t, got, "[dependencies.serde]\nversion = \"1.0.0\"")
}

func TestWriteVersionCreatesField(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[package]
name = "demo"
edition = "2021"
`)

	s := &Store{}
	require.NoError(t, s.WriteVersion(dir, "0.1.0"))

	v, ok, err := s.ReadVersion(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0.1.0", v)
	assert.Contains(t, readManifest(t, dir), `edition = "2021"`)
}

func TestWriteVersionWorkspaceOnly(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[workspace]
members = ["crates/*"]

[workspace.package]
version = "0.4.0"
`)

	s := &Store{}
	require.NoError(t, s.WriteVersion(dir, "0.5.0"))

	got := readManifest(t, dir)
	assert.Contains(t, got, `version = "0.5.0"`)
	assert.NotContains(t, got, "[package]\n")
}

func TestWriteVersionWorkspaceOnlyCreatesTable(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[workspace]
members = ["crates/*"]
`)

	s := &Store{}
	require.NoError(t, s.WriteVersion(dir, "0.1.0"))

	got := readManifest(t, dir)
	assert.Contains(t, got, "[workspace.package]")
	assert.Contains(t, got, `version = "0.1.0"`)

	v, ok, err := s.ReadVersion(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0.1.0", v)
}

func TestWriteVersionInheritedUpdatesWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[package]
name = "demo"
version.workspace = true

[workspace.package]
version = "3.1.4"
`)

	s := &Store{}
	require.NoError(t, s.WriteVersion(dir, "3.2.0"))

	got := readManifest(t, dir)
	assert.Contains(t, got, `version = "3.2.0"`)
	// The inheritance marker stays as-is.
	assert.Contains(t, got, "version.workspace = true")
}

func TestWriteVersionInheritedWithoutWorkspaceVersion(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[package]
name = "demo"
version.workspace = true
`)

	s := &Store{}
	err := s.WriteVersion(dir, "1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace")
}
