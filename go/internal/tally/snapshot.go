package tally

import (
	"errors"
	"fmt"

	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/protocol"
)

// ErrLengthMismatch is returned when a positional counts array does not match the catalogue.
var ErrLengthMismatch = errors.New("counts length does not match catalogue")

// Snapshot is the complete vote count for every catalogue option at one point in time.
// Counts are never negative and there is exactly one per option.
type Snapshot struct {
	cat    *catalogue.Catalogue
	counts []int
}

// Report describes what was discarded while reconciling a server payload.
type Report struct {
	Unmatched []string // server names with no catalogue entry
	Missing   []string // catalogue names absent from the payload
	Clamped   []string // names reported with a negative count
}

// Empty returns an all-zero snapshot for cat.
func Empty(cat *catalogue.Catalogue) Snapshot {
	return Snapshot{cat: cat, counts: make([]int, cat.Len())}
}

// FromResults rebuilds a snapshot from a results broadcast. Entries are matched
// by exact name; unknown names are dropped, missing options count zero and a
// later duplicate entry overrides an earlier one.
func FromResults(cat *catalogue.Catalogue, entries []protocol.OptionCount) (Snapshot, Report) {
	s := Empty(cat)
	seen := make([]bool, cat.Len())
	var report Report

	for _, entry := range entries {
		opt, ok := cat.Lookup(entry.Option)
		if !ok {
			report.Unmatched = append(report.Unmatched, entry.Option)
			continue
		}
		votes := entry.Votes
		if votes < 0 {
			report.Clamped = append(report.Clamped, entry.Option)
			votes = 0
		}
		s.counts[opt.Index()] = votes
		seen[opt.Index()] = true
	}

	for i, name := range cat.Names() {
		if !seen[i] {
			report.Missing = append(report.Missing, name)
		}
	}

	return s, report
}

// FromCounts builds a snapshot from counts aligned to the catalogue order,
// the layout used by the local cache.
func FromCounts(cat *catalogue.Catalogue, counts []int) (Snapshot, error) {
	if len(counts) != cat.Len() {
		return Snapshot{}, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(counts), cat.Len())
	}

	s := Empty(cat)
	for i, c := range counts {
		if c > 0 {
			s.counts[i] = c
		}
	}
	return s, nil
}

// Catalogue returns the catalogue the snapshot is aligned to.
func (s Snapshot) Catalogue() *catalogue.Catalogue { return s.cat }

// Count returns the votes for opt, or zero if opt is not part of the catalogue.
func (s Snapshot) Count(opt catalogue.Option) int {
	if s.cat == nil || !s.cat.Contains(opt) {
		return 0
	}
	return s.counts[opt.Index()]
}

// CountByName returns the votes for the option with the given wire name.
func (s Snapshot) CountByName(name string) int {
	if s.cat == nil {
		return 0
	}
	opt, ok := s.cat.Lookup(name)
	if !ok {
		return 0
	}
	return s.counts[opt.Index()]
}

// Counts returns a copy of the counts in catalogue order.
func (s Snapshot) Counts() []int {
	out := make([]int, len(s.counts))
	copy(out, s.counts)
	return out
}

// ByName returns the counts keyed by wire name.
func (s Snapshot) ByName() map[string]int {
	out := make(map[string]int, len(s.counts))
	if s.cat == nil {
		return out
	}
	for i, name := range s.cat.Names() {
		out[name] = s.counts[i]
	}
	return out
}

// Total returns the sum of all counts.
func (s Snapshot) Total() int {
	total := 0
	for _, c := range s.counts {
		total += c
	}
	return total
}

// Share returns opt's fraction of the total in [0, 1]. An empty tally yields 0.
func (s Snapshot) Share(opt catalogue.Option) float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Count(opt)) / float64(total)
}

// Equal reports whether both snapshots hold the same counts for the same catalogue.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.cat != other.cat || len(s.counts) != len(other.counts) {
		return false
	}
	for i := range s.counts {
		if s.counts[i] != other.counts[i] {
			return false
		}
	}
	return true
}
