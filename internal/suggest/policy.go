package suggest

import (
	"fmt"
	"strings"
)

const (
	PolicySimple    = "simple"
	PolicyDiversity = "diversity"
)

// SelectionPolicy controls per-chunk retention and global ranking.
type SelectionPolicy struct {
	Name string
	// PerChunk is how many top destinations are kept for each chunk.
	PerChunk int
	// Threshold is the exclusive minimum score for a per-chunk candidate.
	Threshold float64
	// Quota enables the two-pass diversity selection. Nil means simple dedup.
	Quota *QuotaPolicy
}

// QuotaPolicy caps how many selections a single category may take.
type QuotaPolicy struct {
	// PerCategory holds caps as a fraction of the limit.
	PerCategory map[Category]float64
	// Default applies to categories absent from PerCategory.
	Default float64
	// Exempt categories are never capped.
	Exempt []Category
	// MinScore is the exclusive minimum score in the capped pass.
	MinScore float64
	// Fallback enables the quota-free second pass.
	Fallback bool
	// FallbackMinScore is the exclusive minimum score in the second pass.
	FallbackMinScore float64
}

// SimplePolicy keeps the top 2 destinations per chunk above 0.25 and
// deduplicates by URL.
func SimplePolicy() SelectionPolicy {
	return SelectionPolicy{
		Name:      PolicySimple,
		PerChunk:  2,
		Threshold: 0.25,
	}
}

// DiversityPolicy keeps the top 3 per chunk above 0.20 and caps Blog at 40%
// and every other category at 50% of the limit.
func DiversityPolicy() SelectionPolicy {
	return SelectionPolicy{
		Name:      PolicyDiversity,
		PerChunk:  3,
		Threshold: 0.20,
		Quota: &QuotaPolicy{
			PerCategory:      map[Category]float64{CategoryBlog: 0.4},
			Default:          0.5,
			MinScore:         0.35,
			Fallback:         true,
			FallbackMinScore: 0.25,
		},
	}
}

// PolicyByName returns the named built-in policy.
func PolicyByName(name string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicySimple:
		return SimplePolicy(), nil
	case PolicyDiversity, "":
		return DiversityPolicy(), nil
	default:
		return SelectionPolicy{}, fmt.Errorf("unknown selection policy %q", name)
	}
}

// allows reports whether one more selection of category c fits under the cap
// given count existing selections and the overall limit.
func (q *QuotaPolicy) allows(c Category, count, limit int) bool {
	for _, e := range q.Exempt {
		if e == c {
			return true
		}
	}
	capFraction, ok := q.PerCategory[c]
	if !ok {
		capFraction = q.Default
	}
	return float64(count) < capFraction*float64(limit)
}
