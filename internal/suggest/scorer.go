package suggest

import (
	"context"
	"regexp"
	"strings"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
)

const (
	similarityWeight = 0.7
	overlapWeight    = 0.3
)

var keywordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{4,}`)

// Similarity computes a similarity in [0, 1] between two texts.
// Implementations are chosen once at construction, never per call.
type Similarity interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Preparer is implemented by similarities that benefit from encoding every
// text of an analysis up front, such as dense embeddings.
type Preparer interface {
	Prepare(ctx context.Context, chunks, destinations []string) error
}

// categoryBoost multiplies raw scores to favour non-editorial content types.
var categoryBoost = map[Category]float64{
	CategoryProduct:  1.10,
	CategoryGlossary: 1.10,
	CategoryGuide:    1.10,
	CategoryLanding:  1.05,
}

// CategoryBoost returns the multiplier applied to scores for a category.
func CategoryBoost(c Category) float64 {
	if b, ok := categoryBoost[c]; ok {
		return b
	}
	return 1.0
}

// Scorer combines a similarity strategy with keyword overlap.
type Scorer struct {
	sim   Similarity
	boost bool
}

// NewScorer creates a scorer. When boost is true the category multiplier is
// applied to every score.
func NewScorer(sim Similarity, boost bool) *Scorer {
	return &Scorer{
		sim:   sim,
		boost: boost,
	}
}

// Score rates how well chunkText relates to destination d, whose combined
// descriptive text is destText. A similarity failure yields 0.
func (s *Scorer) Score(ctx context.Context, chunkText, destText string, d Destination) float64 {
	similarity, err := s.sim.Similarity(ctx, chunkText, destText)
	if err != nil {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "similarity failed, scoring pair as zero", "url", d.URL, "error", err)
		return 0
	}

	score := similarityWeight*similarity + overlapWeight*KeywordOverlap(chunkText, destText)
	if s.boost {
		score *= CategoryBoost(d.Category)
	}
	return score
}

// KeywordOverlap returns the share of the chunk's distinct 4+ character words
// that also appear in the destination text.
func KeywordOverlap(chunkText, destText string) float64 {
	chunkWords := keywordSet(chunkText)
	if len(chunkWords) == 0 {
		return 0
	}
	destWords := keywordSet(destText)

	var shared int
	for w := range chunkWords {
		if _, ok := destWords[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(chunkWords))
}

func keywordSet(text string) map[string]struct{} {
	words := keywordPattern.FindAllString(strings.ToLower(text), -1)
	return makeSet(words...)
}
