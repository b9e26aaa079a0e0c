package suggest

import "testing"

func TestSelectAnchor(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
		dest  Destination
		want  string
	}{
		{
			name:  "heading found keeps chunk casing",
			chunk: "Our Keyword Research process starts with intent.",
			dest:  Destination{Title: "KR Guide", PrimaryHeading: "keyword research"},
			want:  "Keyword Research",
		},
		{
			name:  "longest match wins",
			chunk: "We compared the best seo tools today.",
			dest:  Destination{Title: "SEO", PrimaryHeading: "SEO Tools"},
			want:  "seo tools",
		},
		{
			name:  "sub heading match",
			chunk: "Start with a site audit before anything else.",
			dest: Destination{
				Title:          "Technical SEO",
				PrimaryHeading: "Technical SEO Checklist",
				SubHeadings:    []string{"Crawl budget", "Site Audit"},
			},
			want: "site audit",
		},
		{
			name:  "tie keeps earliest candidate",
			chunk: "alpha and omega",
			dest:  Destination{Title: "omega", PrimaryHeading: "alpha"},
			want:  "alpha",
		},
		{
			name:  "unicode case folding",
			chunk: "Lesen Sie ÜBER UNS für Details.",
			dest:  Destination{PrimaryHeading: "über uns"},
			want:  "ÜBER UNS",
		},
		{
			name:  "no match falls back to heading",
			chunk: "Nothing relevant here.",
			dest:  Destination{Title: "Pricing", PrimaryHeading: "Plans and Pricing"},
			want:  "Plans and Pricing",
		},
		{
			name:  "no match and no heading falls back to title",
			chunk: "Nothing relevant here.",
			dest:  Destination{Title: "Pricing"},
			want:  "Pricing",
		},
		{
			name:  "nothing to fall back to",
			chunk: "Nothing relevant here.",
			dest:  Destination{},
			want:  FallbackAnchor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectAnchor(tt.chunk, tt.dest); got != tt.want {
				t.Errorf("SelectAnchor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindFold(t *testing.T) {
	if got, ok := findFold("abc", "abcd"); ok {
		t.Errorf("findFold() matched longer needle: %q", got)
	}
	if got, ok := findFold("xxABCxx", "abc"); !ok || got != "ABC" {
		t.Errorf("findFold() = %q, %v, want ABC, true", got, ok)
	}
}
