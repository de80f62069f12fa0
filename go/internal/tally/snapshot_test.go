package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/protocol"
)

func abc() *catalogue.Catalogue {
	return catalogue.MustNew([]catalogue.Genre{{Name: "A"}, {Name: "B"}, {Name: "C"}})
}

func TestFromResultsAllOptionsAnyOrder(t *testing.T) {
	cat := abc()

	s, report := FromResults(cat, []protocol.OptionCount{
		{Option: "C", Votes: 7},
		{Option: "A", Votes: 2},
		{Option: "B", Votes: 4},
	})

	assert.Equal(t, []int{2, 4, 7}, s.Counts())
	assert.Equal(t, map[string]int{"A": 2, "B": 4, "C": 7}, s.ByName())
	assert.Equal(t, 13, s.Total())
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Unmatched)
}

func TestFromResultsMissingOptionsAreZero(t *testing.T) {
	cat := abc()

	s, report := FromResults(cat, []protocol.OptionCount{{Option: "B", Votes: 3}})

	assert.Equal(t, []int{0, 3, 0}, s.Counts())
	assert.Equal(t, []string{"A", "C"}, report.Missing)
}

func TestFromResultsDropsUnknownNames(t *testing.T) {
	cat := abc()

	s, report := FromResults(cat, []protocol.OptionCount{
		{Option: "A", Votes: 1},
		{Option: "Jazz", Votes: 99},
		{Option: "a", Votes: 50},
	})

	assert.Equal(t, []int{1, 0, 0}, s.Counts())
	assert.Equal(t, []string{"Jazz", "a"}, report.Unmatched)
}

func TestFromResultsClampsNegativeCounts(t *testing.T) {
	s, report := FromResults(abc(), []protocol.OptionCount{{Option: "A", Votes: -4}, {Option: "B", Votes: 2}})

	assert.Equal(t, []int{0, 2, 0}, s.Counts())
	assert.Equal(t, []string{"A"}, report.Clamped)
}

func TestFromResultsLaterDuplicateWins(t *testing.T) {
	s, _ := FromResults(abc(), []protocol.OptionCount{{Option: "A", Votes: 1}, {Option: "A", Votes: 6}})
	assert.Equal(t, 6, s.CountByName("A"))
}

func TestScenarioTwoOptionCatalogue(t *testing.T) {
	cat := catalogue.MustNew([]catalogue.Genre{{Name: "A"}, {Name: "B"}})

	s, _ := FromResults(cat, []protocol.OptionCount{{Option: "A", Votes: 5}})

	assert.Equal(t, map[string]int{"A": 5, "B": 0}, s.ByName())
	assert.Equal(t, []int{5, 0}, s.Counts())
}

func TestFromCounts(t *testing.T) {
	cat := abc()

	s, err := FromCounts(cat, []int{1, -2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 3}, s.Counts())

	_, err = FromCounts(cat, []int{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestCountsIsACopy(t *testing.T) {
	s, _ := FromCounts(abc(), []int{1, 2, 3})
	counts := s.Counts()
	counts[0] = 100
	assert.Equal(t, 1, s.CountByName("A"))
}

func TestShare(t *testing.T) {
	cat := abc()
	a, _ := cat.Lookup("A")

	assert.Zero(t, Empty(cat).Share(a))

	s, _ := FromCounts(cat, []int{1, 1, 2})
	assert.InDelta(t, 0.25, s.Share(a), 1e-9)
}

func TestCountForeignOption(t *testing.T) {
	other := catalogue.MustNew([]catalogue.Genre{{Name: "Z"}})
	z, _ := other.Lookup("Z")

	s, _ := FromCounts(abc(), []int{1, 2, 3})
	assert.Zero(t, s.Count(z))
	assert.Zero(t, s.CountByName("Z"))
}

func TestEqual(t *testing.T) {
	cat := abc()
	a, _ := FromCounts(cat, []int{1, 2, 3})
	b, _ := FromCounts(cat, []int{1, 2, 3})
	c, _ := FromCounts(cat, []int{1, 2, 4})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Empty(abc())), "different catalogue instances")
}
