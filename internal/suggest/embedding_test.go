package suggest_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest/mocks"

	"go.uber.org/mock/gomock"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float32
		want    float64
		wantErr bool
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "size mismatch", a: []float32{1}, b: []float32{1, 2}, wantErr: true},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := suggest.Cosine(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Cosine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmbedding_PrepareUsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEncoder(ctrl)
	cache := mocks.NewMockVectorCache(ctrl)
	ctx := context.Background()

	cache.EXPECT().
		Lookup(gomock.Any(), []string{"dest-a", "dest-b"}).
		Return(map[string][]float32{"dest-a": {1, 0}}, nil)
	encoder.EXPECT().
		EmbedTexts(gomock.Any(), []string{"dest-b"}).
		Return([][]float32{{0, 1}}, nil)
	cache.EXPECT().
		Store(gomock.Any(), map[string][]float32{"dest-b": {0, 1}}).
		Return(nil)
	encoder.EXPECT().
		EmbedTexts(gomock.Any(), []string{"chunk"}).
		Return([][]float32{{1, 1}}, nil)

	emb := suggest.NewEmbedding(encoder, cache)
	if err := emb.Prepare(ctx, []string{"chunk", "chunk"}, []string{"dest-a", "dest-b"}); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	// Every text is memoised; no further encoder calls are expected.
	got, err := emb.Similarity(ctx, "chunk", "dest-a")
	if err != nil {
		t.Fatalf("Similarity() error = %v", err)
	}
	if want := 1 / math.Sqrt2; math.Abs(got-want) > 1e-6 {
		t.Errorf("Similarity() = %v, want %v", got, want)
	}
}

func TestEmbedding_EncoderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEncoder(ctrl)
	encoder.EXPECT().
		EmbedTexts(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).
		AnyTimes()

	emb := suggest.NewEmbedding(encoder, nil)
	ctx := context.Background()

	if err := emb.Prepare(ctx, []string{"chunk"}, []string{"dest"}); err == nil {
		t.Error("Prepare() expected error")
	}
	if _, err := emb.Similarity(ctx, "chunk", "dest"); err == nil {
		t.Error("Similarity() expected error")
	}
}

func TestEmbedding_CountMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEncoder(ctrl)
	encoder.EXPECT().
		EmbedTexts(gomock.Any(), gomock.Any()).
		Return([][]float32{{1}}, nil)

	emb := suggest.NewEmbedding(encoder, nil)
	if _, err := emb.Similarity(context.Background(), "a", "b"); err == nil {
		t.Error("Similarity() expected error for short encoder response")
	}
}

// countingEncoder fails every request and counts them.
type countingEncoder struct {
	calls int
}

func (c *countingEncoder) EmbedTexts(_ context.Context, _ []string) ([][]float32, error) {
	c.calls++
	return nil, errors.New("connection refused")
}

func TestEmbedding_OutageDoesNotReencodePerPair(t *testing.T) {
	snapshot := make(suggest.Snapshot, 10)
	for i := 0; i < 10; i++ {
		url := fmt.Sprintf("https://example.com/page-%d", i)
		snapshot[url] = suggest.Destination{URL: url, Title: fmt.Sprintf("Page %d", i), PrimaryHeading: "Heading"}
	}
	content := "First sentence here. Second sentence here. Third sentence here. Fourth sentence here. Fifth sentence here."

	encoder := &countingEncoder{}
	g := suggest.NewGenerator(suggest.NewEmbedding(encoder, nil), suggest.WithChunkSize(10))

	got := g.Generate(context.Background(), content, snapshot, 5)

	if len(got) != 0 {
		t.Errorf("Generate() returned %d suggestions during an outage, want 0", len(got))
	}
	if encoder.calls != 1 {
		t.Errorf("encoder called %d times, want 1", encoder.calls)
	}
}

func TestEmbedding_RetriesAfterWindow(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter time.Duration
		wantCalls  int
	}{
		{name: "inside retry window", retryAfter: time.Hour, wantCalls: 1},
		{name: "no retry window", retryAfter: 0, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder := &countingEncoder{}
			emb := suggest.NewEmbedding(encoder, nil, suggest.WithRetryAfter(tt.retryAfter))
			ctx := context.Background()

			for i := 0; i < 3; i++ {
				if _, err := emb.Similarity(ctx, "chunk", "dest"); err == nil {
					t.Fatal("Similarity() expected error")
				}
			}
			if encoder.calls != tt.wantCalls {
				t.Errorf("encoder called %d times, want %d", encoder.calls, tt.wantCalls)
			}
		})
	}
}
