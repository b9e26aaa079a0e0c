package suggest

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
)

const snippetRunes = 150

// Generator produces link suggestions for content against a destination snapshot.
type Generator struct {
	sim       Similarity
	scorer    *Scorer
	policy    SelectionPolicy
	chunkSize int
	boost     bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithPolicy sets the selection policy. The default is DiversityPolicy.
func WithPolicy(p SelectionPolicy) Option {
	return func(g *Generator) { g.policy = p }
}

// WithChunkSize sets the chunker target size.
func WithChunkSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.chunkSize = n
		}
	}
}

// WithCategoryBoost toggles the category score multiplier (on by default).
func WithCategoryBoost(enabled bool) Option {
	return func(g *Generator) { g.boost = enabled }
}

// NewGenerator creates a generator scoring with sim.
func NewGenerator(sim Similarity, opts ...Option) *Generator {
	g := &Generator{
		sim:       sim,
		policy:    DiversityPolicy(),
		chunkSize: DefaultChunkSize,
		boost:     true,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.scorer = NewScorer(sim, g.boost)
	return g
}

// Policy returns the configured selection policy.
func (g *Generator) Policy() SelectionPolicy {
	return g.policy
}

// Generate returns at most limit suggestions, unique per destination URL and
// ordered by score. Identical inputs produce identical output.
func (g *Generator) Generate(ctx context.Context, content string, snapshot Snapshot, limit int) []Suggestion {
	logger := contextutil.LoggerFromContext(ctx)

	if len(snapshot) == 0 || limit <= 0 {
		return []Suggestion{}
	}

	chunks := ChunkText(content, g.chunkSize)
	if len(chunks) == 0 {
		return []Suggestion{}
	}

	urls := snapshot.URLs()
	destTexts := make(map[string]string, len(urls))
	for _, url := range urls {
		destTexts[url] = snapshot[url].DescriptiveText()
	}

	if p, ok := g.sim.(Preparer); ok {
		chunkTexts := make([]string, len(chunks))
		for i, c := range chunks {
			chunkTexts[i] = c.Text
		}
		texts := make([]string, len(urls))
		for i, url := range urls {
			texts[i] = destTexts[url]
		}
		if err := p.Prepare(ctx, chunkTexts, texts); err != nil {
			// Pairs that still fail to encode score zero.
			logger.WarnContext(ctx, "failed to prepare encodings", "error", err)
		}
	}

	var candidates []Suggestion
	for _, chunk := range chunks {
		candidates = append(candidates, g.chunkCandidates(ctx, chunk, snapshot, urls, destTexts)...)
	}
	sortByScore(candidates)

	var selected []Suggestion
	if g.policy.Quota != nil {
		selected = selectDiverse(candidates, limit, g.policy.Quota)
	} else {
		selected = selectUnique(candidates, limit)
	}

	logger.DebugContext(ctx, "generated suggestions",
		"policy", g.policy.Name,
		"chunks", len(chunks),
		"destinations", len(urls),
		"candidates", len(candidates),
		"selected", len(selected),
	)
	return selected
}

// chunkCandidates scores one chunk against every destination and keeps the
// policy's top N above threshold.
func (g *Generator) chunkCandidates(ctx context.Context, chunk Chunk, snapshot Snapshot, urls []string, destTexts map[string]string) []Suggestion {
	type scored struct {
		url   string
		score float64
	}

	scores := make([]scored, 0, len(urls))
	for _, url := range urls {
		scores = append(scores, scored{url: url, score: g.scorer.Score(ctx, chunk.Text, destTexts[url], snapshot[url])})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if len(scores) > g.policy.PerChunk {
		scores = scores[:g.policy.PerChunk]
	}

	var out []Suggestion
	for _, s := range scores {
		if s.score <= g.policy.Threshold {
			continue
		}
		d := snapshot[s.url]
		out = append(out, Suggestion{
			DestinationURL: d.URL,
			AnchorText:     SelectAnchor(chunk.Text, d),
			ContextSnippet: snippet(chunk.Text),
			Score:          s.score,
			SourcePosition: chunk.StartOffset,
			TargetTitle:    d.Title,
			TargetHeading:  d.PrimaryHeading,
			Category:       d.Category,
		})
	}
	return out
}

// selectUnique keeps the first (highest scoring) candidate per URL.
func selectUnique(sorted []Suggestion, limit int) []Suggestion {
	seen := make(map[string]struct{})
	out := make([]Suggestion, 0, limit)
	for _, s := range sorted {
		if len(out) >= limit {
			break
		}
		if _, dup := seen[s.DestinationURL]; dup {
			continue
		}
		seen[s.DestinationURL] = struct{}{}
		out = append(out, s)
	}
	return out
}

// selectDiverse runs the capped pass and, if the limit is not reached, the
// quota-free fallback pass over the same sorted candidates.
func selectDiverse(sorted []Suggestion, limit int, q *QuotaPolicy) []Suggestion {
	seen := make(map[string]struct{})
	perCategory := make(map[Category]int)
	out := make([]Suggestion, 0, limit)

	for _, s := range sorted {
		if len(out) >= limit {
			break
		}
		if _, dup := seen[s.DestinationURL]; dup {
			continue
		}
		if !q.allows(s.Category, perCategory[s.Category], limit) {
			continue
		}
		if s.Score <= q.MinScore {
			continue
		}
		seen[s.DestinationURL] = struct{}{}
		perCategory[s.Category]++
		out = append(out, s)
	}

	if q.Fallback {
		for _, s := range sorted {
			if len(out) >= limit {
				break
			}
			if _, dup := seen[s.DestinationURL]; dup {
				continue
			}
			if s.Score <= q.FallbackMinScore {
				continue
			}
			seen[s.DestinationURL] = struct{}{}
			out = append(out, s)
		}
	}

	sortByScore(out)
	return out
}

func sortByScore(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Score > s[j].Score })
}

func snippet(text string) string {
	if utf8.RuneCountInString(text) > snippetRunes {
		text = string([]rune(text)[:snippetRunes])
	}
	return text + "..."
}
