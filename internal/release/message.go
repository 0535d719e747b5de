package release

import (
	"path/filepath"
	"strings"
)

// Prompter solicits a free-form commit message from the user. It is the
// policy's last resort, used only when no template applies.
type Prompter interface {
	PromptCommitMessage(staged []string) (string, error)
}

// MessageRequest carries the inputs of the commit-message policy.
type MessageRequest struct {
	// Explicit is a caller-supplied message, used verbatim when non-empty.
	Explicit string
	// Automatic requests the synthesized bump message without prompting.
	Automatic bool
	// Staged is the list of files currently staged for commit.
	Staged []string
	// InitialTag marks a release that tags the current state without a bump.
	InitialTag bool
	// TagName is the target tag, e.g. "v1.2.3".
	TagName string
	// ManifestFile and LockFile are the manifest and lock file names; when
	// the staged set is exactly these, the change is pure version
	// bookkeeping and a template message suffices.
	ManifestFile string
	LockFile     string
}

// ResolveMessage resolves the commit message through the priority chain:
// explicit override, automatic template, nothing-staged template,
// version-files-only template, interactive fallback. It fails only when the
// fallback is reached and yields an empty message.
func (r MessageRequest) ResolveMessage(prompt Prompter) (string, error) {
	switch {
	case r.Explicit != "":
		return r.Explicit, nil

	case r.Automatic:
		return "Bump version to " + r.TagName, nil

	case len(r.Staged) == 0:
		// Pure tag creation; there is nothing to describe.
		return "Release " + r.TagName, nil

	case r.onlyVersionFiles():
		if r.InitialTag {
			return "Release " + r.TagName, nil
		}
		return "Bump version to " + r.TagName, nil

	default:
		if prompt == nil {
			return "", ErrEmptyCommitMessage
		}
		msg, err := prompt.PromptCommitMessage(r.Staged)
		if err != nil {
			return "", err
		}
		msg = stripCommentLines(msg)
		if strings.TrimSpace(msg) == "" {
			return "", ErrEmptyCommitMessage
		}
		return strings.TrimSpace(msg), nil
	}
}

// onlyVersionFiles reports whether every staged path is the manifest or its
// lock file.
func (r MessageRequest) onlyVersionFiles() bool {
	for _, path := range r.Staged {
		base := filepath.Base(path)
		if base != r.ManifestFile && base != r.LockFile {
			return false
		}
	}
	return len(r.Staged) > 0
}

// stripCommentLines drops editor-style comment lines ("# ...") from a
// message.
func stripCommentLines(msg string) string {
	var kept []string
	for _, line := range strings.Split(msg, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
