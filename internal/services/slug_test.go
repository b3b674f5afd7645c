package services

import (
	"strings"
	"testing"

	"vaatco/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Premium Engine Oil 20W-50": "premium-engine-oil-20w-50",
		"  Hello,   World!  ":       "hello-world",
		"UPPER CASE":                "upper-case",
		"---":                       "",
		"múltiple áccents":          "múltiple-áccents",
		"a":                         "a",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input: %q", input)
	}
}

func TestUniqueSlug_NoCollision(t *testing.T) {
	slug, err := uniqueSlug("engine-oil", func(string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "engine-oil", slug)
}

func TestUniqueSlug_CollisionAppendsSuffix(t *testing.T) {
	calls := 0
	slug, err := uniqueSlug("engine-oil", func(candidate string) (bool, error) {
		calls++
		return candidate == "engine-oil", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, strings.HasPrefix(slug, "engine-oil-"))
	assert.NotEqual(t, "engine-oil", slug)
}

func TestUniqueSlug_SecondEntityGetsSuffixedSlug(t *testing.T) {
	taken := map[string]bool{}
	probe := func(candidate string) (bool, error) {
		return taken[candidate], nil
	}

	first, err := uniqueSlug(Slugify("Tilapia Feed"), probe)
	require.NoError(t, err)
	assert.Equal(t, "tilapia-feed", first)
	taken[first] = true

	second, err := uniqueSlug(Slugify("Tilapia Feed"), probe)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(second, "tilapia-feed-"))
	assert.False(t, taken[second])
}

func TestUniqueSlug_ExhaustionReturnsConflict(t *testing.T) {
	calls := 0
	_, err := uniqueSlug("engine-oil", func(string) (bool, error) {
		calls++
		return true, nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConflict))
	assert.Equal(t, maxSlugAttempts, calls)
}

func TestUniqueSlug_ProbeErrorPropagates(t *testing.T) {
	wantErr := assert.AnError
	_, err := uniqueSlug("engine-oil", func(string) (bool, error) {
		return false, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}
