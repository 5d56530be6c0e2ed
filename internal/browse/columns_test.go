package browse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveColumn(t *testing.T) {
	descs, _ := testRegistry().Resolve([]string{"id", "title", "createdBy", "status", "sourceBranch"})

	cases := []struct {
		choice string
		want   string
	}{
		{"1", "id"},
		{" 3 ", "createdBy"},
		{"Title", "title"},
		{"TITLE", "title"},
		{"createdby", "createdBy"},
		{"auth", "createdBy"},
		{"sta", "status"},
		{"sourceb", "sourceBranch"},
		{"itl", "title"},
	}
	for _, tc := range cases {
		got, err := ResolveColumn(descs, tc.choice)
		require.NoError(t, err, "choice %q", tc.choice)
		require.Equal(t, tc.want, got.ID, "choice %q", tc.choice)
	}
}

func TestResolveColumnErrors(t *testing.T) {
	descs, _ := testRegistry().Resolve([]string{"id", "title", "status", "sourceBranch"})

	_, err := ResolveColumn(descs, "0")
	require.ErrorContains(t, err, "out of range 1-4")
	_, err = ResolveColumn(descs, "5")
	require.Error(t, err)

	_, err = ResolveColumn(descs, "s")
	var ambiguous *AmbiguousColumnError
	require.True(t, errors.As(err, &ambiguous))
	require.Equal(t, []string{"Status", "Source"}, ambiguous.Candidates)

	_, err = ResolveColumn(descs, "qqq")
	var unknown *UnknownColumnError
	require.True(t, errors.As(err, &unknown))

	_, err = ResolveColumn(descs, "")
	require.True(t, errors.As(err, &unknown))
}
