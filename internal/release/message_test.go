package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	message string
	err     error
	called  bool
	staged  []string
}

func (f *fakePrompter) PromptCommitMessage(staged []string) (string, error) {
	f.called = true
	f.staged = staged
	return f.message, f.err
}

func baseRequest() MessageRequest {
	return MessageRequest{
		TagName:      "v1.2.3",
		ManifestFile: "Cargo.toml",
		LockFile:     "Cargo.lock",
	}
}

func TestMessageExplicitWinsVerbatim(t *testing.T) {
	req := baseRequest()
	req.Explicit = "ship it"
	req.Automatic = false
	req.Staged = []string{"src/lib.rs"}

	prompt := &fakePrompter{}
	got, err := req.ResolveMessage(prompt)
	require.NoError(t, err)
	assert.Equal(t, "ship it", got)
	assert.False(t, prompt.called)
}

func TestMessageAutomatic(t *testing.T) {
	req := baseRequest()
	req.Automatic = true
	req.Staged = []string{"src/lib.rs", "README.md"}

	got, err := req.ResolveMessage(nil)
	require.NoError(t, err)
	assert.Equal(t, "Bump version to v1.2.3", got)
}

func TestMessageNothingStaged(t *testing.T) {
	req := baseRequest()

	got, err := req.ResolveMessage(nil)
	require.NoError(t, err)
	assert.Equal(t, "Release v1.2.3", got)
}

func TestMessageVersionFilesOnly(t *testing.T) {
	req := baseRequest()
	req.Staged = []string{"Cargo.toml", "Cargo.lock"}

	got, err := req.ResolveMessage(nil)
	require.NoError(t, err)
	assert.Equal(t, "Bump version to v1.2.3", got)

	req.InitialTag = true
	got, err = req.ResolveMessage(nil)
	require.NoError(t, err)
	assert.Equal(t, "Release v1.2.3", got)
}

func TestMessageManifestOnly(t *testing.T) {
	req := baseRequest()
	req.Staged = []string{"Cargo.toml"}

	got, err := req.ResolveMessage(nil)
	require.NoError(t, err)
	assert.Equal(t, "Bump version to v1.2.3", got)
}

func TestMessageFallsBackToPrompt(t *testing.T) {
	req := baseRequest()
	req.Staged = []string{"Cargo.toml", "src/lib.rs"}

	prompt := &fakePrompter{message: "Rework the frobnicator"}
	got, err := req.ResolveMessage(prompt)
	require.NoError(t, err)
	assert.Equal(t, "Rework the frobnicator", got)
	assert.True(t, prompt.called)
	assert.Equal(t, req.Staged, prompt.staged)
}

func TestMessagePromptStripsCommentLines(t *testing.T) {
	req := baseRequest()
	req.Staged = []string{"src/lib.rs"}

	prompt := &fakePrompter{message: "# staged files below\nFix the thing\n# trailing note"}
	got, err := req.ResolveMessage(prompt)
	require.NoError(t, err)
	assert.Equal(t, "Fix the thing", got)
}

func TestMessageEmptyPromptAborts(t *testing.T) {
	req := baseRequest()
	req.Staged = []string{"src/lib.rs"}

	for _, input := range []string{"", "   \n\t", "# only comments\n# here"} {
		prompt := &fakePrompter{message: input}
		_, err := req.ResolveMessage(prompt)
		assert.ErrorIs(t, err, ErrEmptyCommitMessage, "input %q", input)
	}
}

func TestMessageNoPrompterAborts(t *testing.T) {
	req := baseRequest()
	req.Staged = []string{"src/lib.rs"}

	_, err := req.ResolveMessage(nil)
	assert.ErrorIs(t, err, ErrEmptyCommitMessage)
}
