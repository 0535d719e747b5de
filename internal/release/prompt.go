package release

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// InteractivePrompter asks for a commit message in the terminal, showing the
// staged files for context. Aborting the form counts as an empty message.
type InteractivePrompter struct{}

// PromptCommitMessage runs the interactive form and returns the entered
// message.
func (InteractivePrompter) PromptCommitMessage(staged []string) (string, error) {
	var message string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Commit message").
				Description("Staged changes:\n  " + strings.Join(staged, "\n  ")).
				Value(&message),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrEmptyCommitMessage
		}
		return "", err
	}
	return message, nil
}
