package suggest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_encoder.go -package=mocks github.com/gtmaihackathon/internal-link-suggester/internal/suggest Encoder,VectorCache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// DefaultRetryAfter is how long a text whose encoding failed is scored as an
// error before the encoder is asked again.
const DefaultRetryAfter = 30 * time.Second

// ErrZeroVector is returned when an encoder produces an all-zero vector.
var ErrZeroVector = errors.New("zero-length embedding vector")

// Encoder turns texts into dense vectors, one per input, in input order.
type Encoder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorCache persists destination encodings across processes.
type VectorCache interface {
	// Lookup returns cached vectors keyed by text. Missing texts are absent.
	Lookup(ctx context.Context, texts []string) (map[string][]float32, error)
	// Store saves vectors keyed by text.
	Store(ctx context.Context, vectors map[string][]float32) error
}

// Embedding scores texts by cosine similarity of dense embeddings.
// Encodings are memoised in process; destination encodings may additionally be
// persisted through a VectorCache.
type Embedding struct {
	encoder Encoder
	cache   VectorCache

	retryAfter time.Duration
	now        func() time.Time

	mu     sync.Mutex
	memo   map[string][]float32
	failed map[string]failure
}

// failure records an unsuccessful encoding attempt for one text.
type failure struct {
	at  time.Time
	err error
}

// EmbeddingOption configures an Embedding.
type EmbeddingOption func(*Embedding)

// WithRetryAfter sets how long failed texts are skipped. Zero retries on
// every call.
func WithRetryAfter(d time.Duration) EmbeddingOption {
	return func(e *Embedding) {
		e.retryAfter = d
	}
}

// NewEmbedding creates an embedding similarity. cache may be nil.
func NewEmbedding(encoder Encoder, cache VectorCache, opts ...EmbeddingOption) *Embedding {
	e := &Embedding{
		encoder:    encoder,
		cache:      cache,
		retryAfter: DefaultRetryAfter,
		now:        time.Now,
		memo:       make(map[string][]float32),
		failed:     make(map[string]failure),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prepare batch-encodes every text of one analysis call. It always asks the
// encoder, even for texts that failed recently; texts it cannot encode fail
// fast in Similarity until the retry window passes.
func (e *Embedding) Prepare(ctx context.Context, chunks, destinations []string) error {
	missingDest := e.missing(destinations)
	if e.cache != nil && len(missingDest) > 0 {
		cached, err := e.cache.Lookup(ctx, missingDest)
		if err != nil {
			return fmt.Errorf("vector cache lookup: %w", err)
		}
		e.remember(cached)
		missingDest = e.missing(missingDest)
	}

	if len(missingDest) > 0 {
		encoded, err := e.encode(ctx, missingDest)
		if err != nil {
			return err
		}
		if e.cache != nil {
			if err := e.cache.Store(ctx, encoded); err != nil {
				return fmt.Errorf("vector cache store: %w", err)
			}
		}
	}

	if missingChunks := e.missing(chunks); len(missingChunks) > 0 {
		if _, err := e.encode(ctx, missingChunks); err != nil {
			return err
		}
	}
	return nil
}

// Similarity implements Similarity.
func (e *Embedding) Similarity(ctx context.Context, a, b string) (float64, error) {
	if err := e.recentFailure(a, b); err != nil {
		return 0, err
	}
	if missing := e.missing([]string{a, b}); len(missing) > 0 {
		if _, err := e.encode(ctx, missing); err != nil {
			return 0, err
		}
	}

	e.mu.Lock()
	va, vb := e.memo[a], e.memo[b]
	e.mu.Unlock()

	return Cosine(va, vb)
}

func (e *Embedding) encode(ctx context.Context, texts []string) (map[string][]float32, error) {
	vectors, err := e.encoder.EmbedTexts(ctx, texts)
	if err != nil {
		err = fmt.Errorf("failed to encode texts: %w", err)
		e.markFailed(texts, err)
		return nil, err
	}
	if len(vectors) != len(texts) {
		err := fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vectors))
		e.markFailed(texts, err)
		return nil, err
	}

	encoded := make(map[string][]float32, len(texts))
	for i, text := range texts {
		encoded[text] = vectors[i]
	}
	e.remember(encoded)
	return encoded, nil
}

func (e *Embedding) remember(vectors map[string][]float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for text, vec := range vectors {
		e.memo[text] = vec
		delete(e.failed, text)
	}
}

func (e *Embedding) markFailed(texts []string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	at := e.now()
	for _, text := range texts {
		e.failed[text] = failure{at: at, err: err}
	}
}

// recentFailure returns the error of a failed encoding of any of texts that
// is still inside the retry window.
func (e *Embedding) recentFailure(texts ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	for _, text := range texts {
		f, ok := e.failed[text]
		if !ok {
			continue
		}
		if now.Sub(f.at) < e.retryAfter {
			return f.err
		}
		delete(e.failed, text)
	}
	return nil
}

// missing returns the distinct texts not yet memoised, in input order.
func (e *Embedding) missing(texts []string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[string]struct{}, len(texts))
	var out []string
	for _, t := range texts {
		if _, ok := e.memo[t]; ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Cosine returns the cosine similarity of two equally sized vectors.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector size mismatch: %d vs %d", len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
