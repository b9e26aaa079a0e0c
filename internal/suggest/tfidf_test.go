package suggest

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestTFIDF_Similarity(t *testing.T) {
	tfidf := NewTFIDF()
	ctx := context.Background()

	tests := []struct {
		name    string
		a, b    string
		cmp     func(got float64) bool
		wantErr error
	}{
		{
			name: "identical texts",
			a:    "Keyword research for technical SEO",
			b:    "Keyword research for technical SEO",
			cmp:  func(got float64) bool { return math.Abs(got-1) < 1e-9 },
		},
		{
			name: "case insensitive",
			a:    "KEYWORD RESEARCH",
			b:    "keyword research",
			cmp:  func(got float64) bool { return math.Abs(got-1) < 1e-9 },
		},
		{
			name: "disjoint vocabulary",
			a:    "Homemade pizza dough recipe",
			b:    "Keyword research strategy",
			cmp:  func(got float64) bool { return got == 0 },
		},
		{
			name: "partial overlap between zero and one",
			a:    "Keyword research helps content teams rank",
			b:    "Complete keyword research guide",
			cmp:  func(got float64) bool { return got > 0 && got < 1 },
		},
		{
			name:    "stop words only",
			a:       "the and of",
			b:       "is it was",
			wantErr: ErrEmptyVocabulary,
		},
		{
			name:    "both empty",
			a:       "",
			b:       "",
			wantErr: ErrEmptyVocabulary,
		},
		{
			name: "one side empty",
			a:    "",
			b:    "backlink audit",
			cmp:  func(got float64) bool { return got == 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tfidf.Similarity(ctx, tt.a, tt.b)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Similarity() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Similarity() unexpected error: %v", err)
			}
			if !tt.cmp(got) {
				t.Errorf("Similarity() = %v, unexpected", got)
			}
		})
	}
}

func TestTFIDF_Symmetric(t *testing.T) {
	tfidf := NewTFIDF()
	a := "Internal linking spreads authority across pages"
	b := "An internal linking guide for SEO teams"

	ab, err := tfidf.Similarity(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := tfidf.Similarity(context.Background(), b, a)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("Similarity not symmetric: %v vs %v", ab, ba)
	}
}

func TestTFIDF_TermCounts(t *testing.T) {
	tfidf := NewTFIDF()
	counts := tfidf.termCounts("The keyword research, the KEYWORD research!")

	want := map[string]int{
		"keyword":                   2,
		"research":                  2,
		"keyword research":          2,
		"research keyword":          1,
		"keyword research keyword":  1,
		"research keyword research": 1,
	}
	if len(counts) != len(want) {
		t.Fatalf("termCounts() = %v, want %v", counts, want)
	}
	for term, n := range want {
		if counts[term] != n {
			t.Errorf("termCounts()[%q] = %d, want %d", term, counts[term], n)
		}
	}
}

func TestLimitVocabulary(t *testing.T) {
	freq := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}

	vocab := limitVocabulary(freq, 2)
	if len(vocab) != 2 {
		t.Fatalf("limitVocabulary() size = %d, want 2", len(vocab))
	}
	for _, term := range []string{"c", "a"} {
		if _, ok := vocab[term]; !ok {
			t.Errorf("limitVocabulary() missing %q", term)
		}
	}

	if all := limitVocabulary(freq, 0); len(all) != 4 {
		t.Errorf("limitVocabulary(0) size = %d, want 4", len(all))
	}
}
