package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcomnes/bump/internal/manifest"
)

func TestIndependentMembers(t *testing.T) {
	members := []manifest.Member{
		{Name: "crate-a", Path: "crate-a", HasVersion: true, Inherited: true},
		{Name: "crate-b", Path: "crate-b", Version: "2.0.0", HasVersion: true},
		{Name: "crate-c", Path: "crate-c"},
	}

	independent := IndependentMembers(members)
	require.Len(t, independent, 1)
	assert.Equal(t, "crate-b", independent[0].Name)
	assert.Equal(t, "2.0.0", independent[0].Version)
}

func TestIndependentMembersEmpty(t *testing.T) {
	assert.Empty(t, IndependentMembers(nil))
	assert.Empty(t, IndependentMembers([]manifest.Member{
		{Name: "crate-a", HasVersion: true, Inherited: true},
		{Name: "crate-b"},
	}))
}

func TestIndependentVersionsErrorNamesMembers(t *testing.T) {
	err := &IndependentVersionsError{Members: []manifest.Member{
		{Name: "crate-b", Path: "crates/crate-b", Version: "2.0.0"},
	}}
	assert.Contains(t, err.Error(), "crate-b")
	assert.Contains(t, err.Error(), "crates/crate-b")
	assert.Contains(t, err.Error(), "2.0.0")
}
