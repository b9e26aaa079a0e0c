package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
	"github.com/gtmaihackathon/internal-link-suggester/internal/storage/mocks"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// generatorFunc adapts a function to the Generator interface.
type generatorFunc func(ctx context.Context, content string, snapshot suggest.Snapshot, limit int) []suggest.Suggestion

func (f generatorFunc) Generate(ctx context.Context, content string, snapshot suggest.Snapshot, limit int) []suggest.Suggestion {
	return f(ctx, content, snapshot, limit)
}

func catalogRecords() map[string]storage.DestinationRecord {
	return map[string]storage.DestinationRecord{
		"https://example.com/seo-guide": {URL: "https://example.com/seo-guide", Title: "SEO Guide", H1: "Ultimate SEO Guide", Category: "Guide"},
	}
}

func TestSuggestService_Analyze(t *testing.T) {
	tests := []struct {
		name       string
		req        AnalyzeRequest
		setupMock  func(*mocks.MockDestinationStore)
		generated  []suggest.Suggestion
		wantErr    error
		wantReason string
		wantCount  int
		wantLimit  int
		wantText   string
	}{
		{
			name: "suggestions returned",
			req:  AnalyzeRequest{Content: "SEO guides help beginners.", Limit: 3},
			setupMock: func(m *mocks.MockDestinationStore) {
				m.EXPECT().GetAll(gomock.Any()).Return(catalogRecords(), nil)
			},
			generated: []suggest.Suggestion{{DestinationURL: "https://example.com/seo-guide", Score: 0.5}},
			wantCount: 1,
			wantLimit: 3,
			wantText:  "SEO guides help beginners.",
		},
		{
			name: "default limit",
			req:  AnalyzeRequest{Content: "SEO guides help beginners."},
			setupMock: func(m *mocks.MockDestinationStore) {
				m.EXPECT().GetAll(gomock.Any()).Return(catalogRecords(), nil)
			},
			wantReason: ReasonNoMatches,
			wantLimit:  15,
		},
		{
			name: "markdown is reduced to prose",
			req:  AnalyzeRequest{Content: "# SEO\n\nGuides [help](https://x.com) beginners", Format: "markdown"},
			setupMock: func(m *mocks.MockDestinationStore) {
				m.EXPECT().GetAll(gomock.Any()).Return(catalogRecords(), nil)
			},
			wantReason: ReasonNoMatches,
			wantLimit:  15,
			wantText:   "SEO.\nGuides help beginners.",
		},
		{
			name:       "empty content",
			req:        AnalyzeRequest{Content: "  \n\t"},
			setupMock:  func(m *mocks.MockDestinationStore) {},
			wantReason: ReasonEmptyContent,
		},
		{
			name: "empty catalog",
			req:  AnalyzeRequest{Content: "Some text."},
			setupMock: func(m *mocks.MockDestinationStore) {
				m.EXPECT().GetAll(gomock.Any()).Return(map[string]storage.DestinationRecord{}, nil)
			},
			wantReason: ReasonEmptyCatalog,
		},
		{
			name:      "limit out of range",
			req:       AnalyzeRequest{Content: "Some text.", Limit: 51},
			setupMock: func(m *mocks.MockDestinationStore) {},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "negative limit",
			req:       AnalyzeRequest{Content: "Some text.", Limit: -1},
			setupMock: func(m *mocks.MockDestinationStore) {},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "unknown format",
			req:       AnalyzeRequest{Content: "Some text.", Format: "docx"},
			setupMock: func(m *mocks.MockDestinationStore) {},
			wantErr:   ErrInvalidInput,
		},
		{
			name: "catalog error",
			req:  AnalyzeRequest{Content: "Some text."},
			setupMock: func(m *mocks.MockDestinationStore) {
				m.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("disk I/O error"))
			},
			wantErr: errors.New("failed to load catalog: disk I/O error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockDestinationStore(ctrl)
			tt.setupMock(store)

			var gotLimit int
			var gotText string
			gen := generatorFunc(func(_ context.Context, content string, snapshot suggest.Snapshot, limit int) []suggest.Suggestion {
				gotLimit, gotText = limit, content
				if _, ok := snapshot["https://example.com/seo-guide"]; !ok {
					t.Errorf("snapshot missing catalog entry: %v", snapshot)
				}
				if tt.generated == nil {
					return []suggest.Suggestion{}
				}
				return tt.generated
			})

			svc := NewSuggestService(store, gen, 15, 50)
			resp, err := svc.Analyze(context.Background(), tt.req)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("Analyze() error = nil, want %v", tt.wantErr)
				}
				if errors.Is(tt.wantErr, ErrInvalidInput) {
					if !errors.Is(err, ErrInvalidInput) {
						t.Errorf("Analyze() error = %v, want ErrInvalidInput", err)
					}
				} else if err.Error() != tt.wantErr.Error() {
					t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Analyze() unexpected error: %v", err)
			}
			if resp.Suggestions == nil {
				t.Error("Analyze() Suggestions should never be nil")
			}
			if len(resp.Suggestions) != tt.wantCount {
				t.Errorf("Analyze() returned %d suggestions, want %d", len(resp.Suggestions), tt.wantCount)
			}
			if resp.Reason != tt.wantReason {
				t.Errorf("Analyze() Reason = %q, want %q", resp.Reason, tt.wantReason)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("generator limit = %d, want %d", gotLimit, tt.wantLimit)
			}
			if tt.wantText != "" && gotText != tt.wantText {
				t.Errorf("generator content = %q, want %q", gotText, tt.wantText)
			}
		})
	}
}

func TestSuggestService_WithTFIDFGenerator(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDestinationStore(ctrl)
	store.EXPECT().GetAll(gomock.Any()).Return(map[string]storage.DestinationRecord{
		"A": {URL: "A", Title: "SEO Guide", H1: "Ultimate SEO Guide", Category: "Guide"},
		"B": {URL: "B", Title: "Keyword Tool", H1: "Find Keywords Fast", Category: "Product"},
	}, nil)

	policy := suggest.SimplePolicy()
	policy.Threshold = 0
	gen := suggest.NewGenerator(suggest.NewTFIDF(), suggest.WithPolicy(policy))

	svc := NewSuggestService(store, gen, 2, 50)
	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Content: "SEO guides help beginners. Keyword research is step one. Content marketing drives traffic.",
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(resp.Suggestions) != 2 {
		t.Fatalf("Analyze() returned %d suggestions, want 2: %+v", len(resp.Suggestions), resp.Suggestions)
	}
	if resp.Reason != "" {
		t.Errorf("Analyze() Reason = %q, want empty", resp.Reason)
	}
}
