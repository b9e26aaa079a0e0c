package vectorstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gtmaihackathon/internal-link-suggester/internal/vectorstore"
	"github.com/gtmaihackathon/internal-link-suggester/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

func TestPointID(t *testing.T) {
	a := vectorstore.PointID("model-a", "Keyword Research Guide")
	if a != vectorstore.PointID("model-a", "Keyword Research Guide") {
		t.Error("PointID() not deterministic")
	}
	if a == vectorstore.PointID("model-b", "Keyword Research Guide") {
		t.Error("PointID() ignores the model")
	}
	if a == vectorstore.PointID("model-a", "Keyword Research") {
		t.Error("PointID() ignores the text")
	}
}

func TestEmbeddingCache_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockVectorStore(ctrl)
	cache := vectorstore.NewEmbeddingCache(store, "destinations", "m")

	hitID := vectorstore.PointID("m", "hit")
	missID := vectorstore.PointID("m", "miss")

	store.EXPECT().
		Retrieve(gomock.Any(), "destinations", []string{hitID, missID}).
		Return(map[string]vectorstore.Point{
			hitID: {ID: hitID, Vec: []float32{0.1, 0.2}},
		}, nil)

	got, err := cache.Lookup(context.Background(), []string{"hit", "miss", "hit"})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Lookup() returned %d vectors, want 1", len(got))
	}
	if vec := got["hit"]; len(vec) != 2 || vec[1] != 0.2 {
		t.Errorf("Lookup()[hit] = %v", vec)
	}
}

func TestEmbeddingCache_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Retrieve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("unavailable"))

	cache := vectorstore.NewEmbeddingCache(store, "destinations", "m")
	if _, err := cache.Lookup(context.Background(), []string{"x"}); err == nil {
		t.Error("Lookup() expected error")
	}
}

func TestEmbeddingCache_StoreAndForget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockVectorStore(ctrl)
	cache := vectorstore.NewEmbeddingCache(store, "destinations", "m")
	ctx := context.Background()

	store.EXPECT().
		Upsert(gomock.Any(), "destinations", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
			if len(points) != 1 {
				t.Fatalf("Upsert() got %d points, want 1", len(points))
			}
			p := points[0]
			if p.ID != vectorstore.PointID("m", "text") {
				t.Errorf("point ID = %s", p.ID)
			}
			if p.Meta["text"] != "text" || p.Meta["model"] != "m" {
				t.Errorf("point meta = %v", p.Meta)
			}
			return nil
		})
	if err := cache.Store(ctx, map[string][]float32{"text": {1, 2}}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	store.EXPECT().
		Delete(gomock.Any(), "destinations", []string{vectorstore.PointID("m", "text")}).
		Return(nil)
	if err := cache.Forget(ctx, []string{"text"}); err != nil {
		t.Fatalf("Forget() error = %v", err)
	}
}
