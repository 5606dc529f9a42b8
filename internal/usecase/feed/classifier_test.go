package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPartitionsInterests(t *testing.T) {
	common, other := Classify(
		[]string{"music", "art"},
		[]string{"music", "sports"},
	)

	assert.Equal(t, []string{"music"}, common)
	assert.Equal(t, []string{"art"}, other)
}

func TestClassifyCoversAndIsDisjoint(t *testing.T) {
	candidate := []string{"hiking", "music", "film", "cooking", "art"}
	viewer := []string{"music", "cooking", "travel"}

	common, other := Classify(candidate, viewer)

	// Union of both halves is exactly the candidate's interests, in order.
	assert.Equal(t, len(candidate), len(common)+len(other))
	seen := make(map[string]bool)
	for _, interest := range common {
		seen[interest] = true
	}
	for _, interest := range other {
		assert.False(t, seen[interest], "interest %q in both halves", interest)
		seen[interest] = true
	}
	for _, interest := range candidate {
		assert.True(t, seen[interest], "interest %q missing from partition", interest)
	}
}

func TestClassifyPreservesCandidateOrdering(t *testing.T) {
	candidate := []string{"c", "a", "b", "e", "d"}
	viewer := []string{"a", "d"}

	common, other := Classify(candidate, viewer)

	assert.Equal(t, []string{"a", "d"}, common)
	assert.Equal(t, []string{"c", "b", "e"}, other)
}

func TestClassifyEmptySets(t *testing.T) {
	common, other := Classify(nil, []string{"music"})
	assert.Empty(t, common)
	assert.Empty(t, other)

	common, other = Classify([]string{"music"}, nil)
	assert.Empty(t, common)
	assert.Equal(t, []string{"music"}, other)
}
