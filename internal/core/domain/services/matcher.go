package services

import (
	"sort"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/specialist"
)

// DefaultCandidateLimit caps a candidate search result when the caller does
// not supply its own limit.
const DefaultCandidateLimit = 50

// SortMode selects the ranking applied to matched candidates.
type SortMode int

const (
	// SortByDistance ranks nearest first; ties break on rating descending.
	SortByDistance SortMode = iota
	// SortByRating ranks best rated first, then more rated, then nearest.
	SortByRating
	// SortByPrice ranks cheapest first; candidates without a price go last.
	SortByPrice
)

// Candidate is one matcher input: the specialist profile together with the
// availability verdict that was current when the candidate was loaded.
type Candidate struct {
	Specialist   *specialist.Specialist
	AvailableNow bool
}

// RankedCandidate is one matcher output with the exact distance from the
// search origin already computed.
type RankedCandidate struct {
	Specialist *specialist.Specialist
	DistanceKm float64
}

// CandidateMatcher is a domain service selecting and ranking the specialists
// eligible to serve a request at a given location.
//
// Matching rules:
//   - the candidate must be available at evaluation time
//   - the candidate must have a service center on file
//   - the origin must fall inside the candidate's own service radius; the
//     candidate's radius is authoritative, there is no global cutoff
//   - the candidate must be enabled for the requested category, which for
//     certification-gated categories means an approved certification
type CandidateMatcher struct{}

// NewCandidateMatcher creates a new CandidateMatcher instance.
func NewCandidateMatcher() CandidateMatcher {
	return CandidateMatcher{}
}

// Match filters candidates for the origin and category, computes exact
// distances, sorts by the requested mode and caps the result at limit
// (DefaultCandidateLimit when limit is not positive).
func (m CandidateMatcher) Match(
	origin kernel.GeoPoint,
	categoryID int64,
	requiresCertification bool,
	candidates []Candidate,
	mode SortMode,
	limit int,
) ([]RankedCandidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	matched := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.AvailableNow || c.Specialist == nil {
			continue
		}

		center := c.Specialist.Center()
		if center == nil {
			continue
		}

		link, ok := c.Specialist.CategoryLink(categoryID)
		if !ok || !link.Enabled(requiresCertification) {
			continue
		}

		distance, err := origin.DistanceKm(*center)
		if err != nil {
			return nil, err
		}
		if distance > c.Specialist.RadiusKm() {
			continue
		}

		matched = append(matched, RankedCandidate{Specialist: c.Specialist, DistanceKm: distance})
	}

	m.rank(matched, mode)

	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (m CandidateMatcher) rank(matched []RankedCandidate, mode SortMode) {
	switch mode {
	case SortByRating:
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := matched[i].Specialist, matched[j].Specialist
			if a.RatingAvg() != b.RatingAvg() {
				return a.RatingAvg() > b.RatingAvg()
			}
			if a.RatingCount() != b.RatingCount() {
				return a.RatingCount() > b.RatingCount()
			}
			return matched[i].DistanceKm < matched[j].DistanceKm
		})
	case SortByPrice:
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := matched[i].Specialist.PriceMinor(), matched[j].Specialist.PriceMinor()
			switch {
			case a == nil && b == nil:
				return matched[i].DistanceKm < matched[j].DistanceKm
			case a == nil:
				return false
			case b == nil:
				return true
			case *a != *b:
				return *a < *b
			default:
				return matched[i].DistanceKm < matched[j].DistanceKm
			}
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			if matched[i].DistanceKm != matched[j].DistanceKm {
				return matched[i].DistanceKm < matched[j].DistanceKm
			}
			return matched[i].Specialist.RatingAvg() > matched[j].Specialist.RatingAvg()
		})
	}
}
