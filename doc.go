// Package main implements the bump CLI tool.
//
// The bump tool automates semantic-version release bookkeeping for a
// source-controlled package with a Cargo-style TOML manifest. It reconciles
// two independent records of the current version — the manifest's version
// field and the newest v<major>.<minor>.<patch> tag — into a single target
// version, updates the manifest (and its lock file) when needed, and performs
// the commit/tag sequence that publishes the release.
//
// Command Usage:
//
//	bump [flags] [directories...]
//
// Flags:
//
//	-M, --major      Bump the major version (X.0.0). Mutually exclusive with --minor.
//	-m, --minor      Bump the minor version (x.Y.0). Mutually exclusive with --major.
//	-n, --dry-run    Describe the actions that would occur without mutating anything.
//	    --message    Commit message to use verbatim. Mutually exclusive with --automatic.
//	-a, --automatic  Synthesize a "Bump version to vX.Y.Z" commit message.
//	    --verbose    Debug-level logging.
//	    --version    Show the CLI version and exit.
//
// With no flags a patch bump applies. With no directories the current
// directory is processed. Multiple directories are processed independently:
// one failure is reported and counted but never aborts the rest, and the
// process exits non-zero only when every directory failed.
//
// Resolution rules:
//
//   - A manifest version of exactly 0.1.0 is the untouched default and defers
//     to the tag history.
//   - Any other manifest version must match the latest tag, or bump refuses
//     to proceed with a version-mismatch error.
//   - A manifest version with no corresponding tag is tagged as-is (initial
//     release, no bump).
//   - With no version anywhere, the first release is 0.1.0.
//
// A clean working tree whose last commit has not been pushed is amended in
// place instead of receiving a noise commit whose only content is the version
// number.
//
// Examples:
//
//	# Patch-bump the current directory (e.g. v1.2.3 -> v1.2.4)
//	bump
//
//	# Minor bump with an explicit commit message
//	bump -m --message "Add frobnicator support"
//
//	# Preview what would happen across several projects
//	bump -n ~/src/proj1 ~/src/proj2
//
// Workspaces whose members inherit the shared workspace version are
// supported; members that manage independent versions are a hard error,
// reported with each offending member's name, path, and version.
package main
