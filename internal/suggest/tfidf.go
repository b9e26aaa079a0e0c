package suggest

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when neither text contains a usable term
// after stop-word removal.
var ErrEmptyVocabulary = errors.New("empty vocabulary; texts contain only stop words")

const (
	defaultMaxFeatures = 1000
	defaultMinNGram    = 1
	defaultMaxNGram    = 3
)

var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TFIDF scores two texts by cosine similarity of their TF-IDF vectors.
// The model is fitted over exactly the pair being compared, so scores are only
// comparable between pairs that share the same first text.
type TFIDF struct {
	MaxFeatures int
	MinN        int
	MaxN        int
}

// NewTFIDF creates a TF-IDF similarity with word n-grams 1..3 and a
// 1000-feature vocabulary cap.
func NewTFIDF() *TFIDF {
	return &TFIDF{
		MaxFeatures: defaultMaxFeatures,
		MinN:        defaultMinNGram,
		MaxN:        defaultMaxNGram,
	}
}

// Similarity implements Similarity.
func (t *TFIDF) Similarity(_ context.Context, a, b string) (float64, error) {
	docs := [2]map[string]int{t.termCounts(a), t.termCounts(b)}

	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, counts := range docs {
		for term, n := range counts {
			corpusFreq[term] += n
			docFreq[term]++
		}
	}
	if len(corpusFreq) == 0 {
		return 0, ErrEmptyVocabulary
	}

	vocab := limitVocabulary(corpusFreq, t.MaxFeatures)

	// Smoothed idf over a two-document corpus.
	const nDocs = 2.0
	var vecs [2]map[string]float64
	for i, counts := range docs {
		vec := make(map[string]float64, len(counts))
		var norm float64
		for term, n := range counts {
			if _, ok := vocab[term]; !ok {
				continue
			}
			idf := math.Log((1+nDocs)/(1+float64(docFreq[term]))) + 1
			w := float64(n) * idf
			vec[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vec {
				vec[term] /= norm
			}
		}
		vecs[i] = vec
	}

	var dot float64
	for term, w := range vecs[0] {
		dot += w * vecs[1][term]
	}
	return dot, nil
}

// termCounts lower-cases text, drops stop words, and counts word n-grams.
func (t *TFIDF) termCounts(text string) map[string]int {
	minN, maxN := t.MinN, t.MaxN
	if minN < 1 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}

	var tokens []string
	for _, tok := range termPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	counts := make(map[string]int)
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}

// limitVocabulary keeps the maxFeatures most frequent terms, breaking ties
// alphabetically so the cut is deterministic.
func limitVocabulary(freq map[string]int, maxFeatures int) map[string]struct{} {
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if freq[terms[i]] != freq[terms[j]] {
				return freq[terms[i]] > freq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}

	vocab := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		vocab[term] = struct{}{}
	}
	return vocab
}
