package vectorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
)

// EmbeddingCache persists destination encodings in a vector collection.
// Point IDs are derived from the model name and the encoded text, so a changed
// destination or a different model never hits a stale vector.
type EmbeddingCache struct {
	store      VectorStore
	collection string
	model      string
}

// NewEmbeddingCache creates a cache over store.
func NewEmbeddingCache(store VectorStore, collection, model string) *EmbeddingCache {
	return &EmbeddingCache{
		store:      store,
		collection: collection,
		model:      model,
	}
}

// PointID returns the deterministic point ID for text under model.
func PointID(model, text string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(model+"\x00"+text)).String()
}

// Lookup returns cached vectors keyed by text.
func (c *EmbeddingCache) Lookup(ctx context.Context, texts []string) (map[string][]float32, error) {
	if len(texts) == 0 {
		return map[string][]float32{}, nil
	}

	ids := make([]string, 0, len(texts))
	byID := make(map[string]string, len(texts))
	for _, text := range texts {
		id := PointID(c.model, text)
		if _, dup := byID[id]; dup {
			continue
		}
		byID[id] = text
		ids = append(ids, id)
	}

	points, err := c.store.Retrieve(ctx, c.collection, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cached embeddings: %w", err)
	}

	out := make(map[string][]float32, len(points))
	for id, p := range points {
		text, ok := byID[id]
		if !ok || len(p.Vec) == 0 {
			continue
		}
		out[text] = p.Vec
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "embedding cache lookup",
		"collection", c.collection, "requested", len(ids), "hits", len(out))
	return out, nil
}

// Store saves vectors keyed by text.
func (c *EmbeddingCache) Store(ctx context.Context, vectors map[string][]float32) error {
	points := make([]Point, 0, len(vectors))
	for text, vec := range vectors {
		points = append(points, Point{
			ID:  PointID(c.model, text),
			Vec: vec,
			Meta: map[string]any{
				"model": c.model,
				"text":  text,
			},
		})
	}
	if err := c.store.Upsert(ctx, c.collection, points); err != nil {
		return fmt.Errorf("failed to store embeddings: %w", err)
	}
	return nil
}

// Forget drops the cached vectors for texts.
func (c *EmbeddingCache) Forget(ctx context.Context, texts []string) error {
	ids := make([]string, 0, len(texts))
	for _, text := range texts {
		ids = append(ids, PointID(c.model, text))
	}
	if err := c.store.Delete(ctx, c.collection, ids); err != nil {
		return fmt.Errorf("failed to forget embeddings: %w", err)
	}
	return nil
}
