package fields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribeKnownField(t *testing.T) {
	reg := PullRequestFields()

	d := reg.Describe("createdBy")
	require.Equal(t, "Author", d.Label)
	require.Equal(t, KindPerson, d.Kind)
	require.NotEmpty(t, d.Color)
}

func TestDescribeUnknownFieldFallsBackSoftly(t *testing.T) {
	reg := WorkItemFields()

	d := reg.Describe("Custom.Team")
	require.Equal(t, "Custom.Team", d.ID)
	require.Equal(t, "Custom.Team", d.Label)
	require.Equal(t, DefaultWeight, d.Weight)
	require.Empty(t, d.Color)
}

func TestResolveReportsUnknownFieldWarnings(t *testing.T) {
	reg := PullRequestFields()

	descs, warnings := reg.Resolve([]string{"id", "bogus", "title"})
	require.Equal(t, []string{"id", "bogus", "title"}, IDsOf(descs))
	require.Len(t, warnings, 1)

	var unknown *UnknownFieldWarning
	require.True(t, errors.As(warnings[0], &unknown))
	require.Equal(t, "bogus", unknown.ID)
}

func TestRegisterReplacesAndKeepsOrder(t *testing.T) {
	reg := NewRegistry("test", nil,
		Descriptor{ID: "a", Label: "A"},
		Descriptor{ID: "b"},
	)
	reg.Register(Descriptor{ID: "a", Label: "Alpha", Weight: 0.5})

	all := reg.All()
	require.Len(t, all, 2)
	require.Equal(t, "Alpha", all[0].Label)
	require.Equal(t, "b", all[1].Label, "empty label falls back to id")
}

func TestEffectiveWeightClamps(t *testing.T) {
	require.Equal(t, DefaultWeight, Descriptor{Weight: 0}.EffectiveWeight())
	require.Equal(t, DefaultWeight, Descriptor{Weight: -3}.EffectiveWeight())
	require.Equal(t, 1.0, Descriptor{Weight: 7}.EffectiveWeight())
	require.Equal(t, 0.25, Descriptor{Weight: 0.25}.EffectiveWeight())
}

func TestParseList(t *testing.T) {
	require.Equal(t, []string{"id", "title", "status"}, ParseList(" id, title,, status ,"))
	require.Nil(t, ParseList(""))
}

func TestParseKind(t *testing.T) {
	require.Equal(t, KindPerson, ParseKind("Person"))
	require.Equal(t, KindTags, ParseKind(" tags "))
	require.Equal(t, KindPlain, ParseKind("whatever"))
}

func TestDefaultsAreRegistered(t *testing.T) {
	for _, reg := range []*Registry{PullRequestFields(), WorkItemFields()} {
		for _, id := range reg.Defaults() {
			_, ok := reg.Lookup(id)
			require.Truef(t, ok, "%s default %q has no descriptor", reg.Name(), id)
		}
	}
}
