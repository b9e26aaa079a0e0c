package suggest

import (
	"strings"
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		targetSize int
		want       []Chunk
	}{
		{
			name:       "empty content",
			content:    "",
			targetSize: 200,
			want:       nil,
		},
		{
			name:       "only punctuation",
			content:    "...!?",
			targetSize: 200,
			want:       nil,
		},
		{
			name:       "no terminator yields one chunk",
			content:    "Hello world",
			targetSize: 200,
			want:       []Chunk{{Text: "Hello world.", StartOffset: 0}},
		},
		{
			name:       "sentences merged under target",
			content:    "First sentence. Second sentence.",
			targetSize: 200,
			want:       []Chunk{{Text: "First sentence. Second sentence.", StartOffset: 0}},
		},
		{
			name:       "split when target reached",
			content:    "First sentence. Second sentence.",
			targetSize: 20,
			want: []Chunk{
				{Text: "First sentence.", StartOffset: 0},
				{Text: "Second sentence.", StartOffset: 16},
			},
		},
		{
			name:       "leading whitespace offset",
			content:    "  Alpha beta.",
			targetSize: 200,
			want:       []Chunk{{Text: "Alpha beta.", StartOffset: 2}},
		},
		{
			name:       "mixed terminators normalised",
			content:    "Wow!!! Really?",
			targetSize: 200,
			want:       []Chunk{{Text: "Wow. Really.", StartOffset: 0}},
		},
		{
			name:       "non-positive target uses default",
			content:    "Short one.",
			targetSize: 0,
			want:       []Chunk{{Text: "Short one.", StartOffset: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkText(tt.content, tt.targetSize)
			if len(got) != len(tt.want) {
				t.Fatalf("ChunkText() returned %d chunks, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ChunkText()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunkText_OffsetsPointIntoContent(t *testing.T) {
	content := "Keyword research matters. Search intent drives rankings! " +
		"Long-form guides earn links? Internal links spread authority. " +
		"Anchor text should describe the target page."

	chunks := ChunkText(content, 60)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	prev := -1
	for _, c := range chunks {
		if c.StartOffset < prev {
			t.Errorf("offsets not monotonic: %d after %d", c.StartOffset, prev)
		}
		prev = c.StartOffset

		first := strings.SplitN(c.Text, ".", 2)[0]
		if !strings.HasPrefix(content[c.StartOffset:], first) {
			t.Errorf("chunk %q does not start at offset %d", c.Text, c.StartOffset)
		}
	}
}

func TestChunkText_RepeatedSentenceOffsets(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []int
	}{
		{
			// Each search starts at the previous chunk's start and finds
			// the first copy again.
			name:    "identical sentences resolve to the first copy",
			content: "Go fast. Go fast. Go fast.",
			want:    []int{0, 0, 0},
		},
		{
			name:    "repeat after a different sentence is exact",
			content: "Alpha. Beta. Alpha.",
			want:    []int{0, 7, 13},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(tt.content, 8)
			if len(chunks) != len(tt.want) {
				t.Fatalf("ChunkText() returned %d chunks, want %d: %+v", len(chunks), len(tt.want), chunks)
			}
			for i, c := range chunks {
				if c.StartOffset != tt.want[i] {
					t.Errorf("chunk %d offset = %d, want %d", i, c.StartOffset, tt.want[i])
				}
				first := strings.TrimSuffix(c.Text, ".")
				if !strings.HasPrefix(tt.content[c.StartOffset:], first) {
					t.Errorf("chunk %q not found at offset %d", c.Text, c.StartOffset)
				}
			}
		})
	}
}

func TestChunkText_ConcatenationKeepsSentences(t *testing.T) {
	contents := []string{
		"Keyword research matters. Search intent drives rankings! Long-form guides earn links?",
		"  One.  Two!! Three?? Four. Five six seven eight nine ten. Eleven",
		"No punctuation at all here",
		"A. B. C. D. E. F. G. H. I. J.",
	}

	for _, content := range contents {
		var sentences []string
		for _, s := range strings.FieldsFunc(content, func(r rune) bool { return strings.ContainsRune(".!?", r) }) {
			if s = strings.TrimSpace(s); s != "" {
				sentences = append(sentences, s+".")
			}
		}
		want := strings.Join(sentences, " ")

		for _, size := range []int{1, 10, 25, 60, 500} {
			var texts []string
			for _, c := range ChunkText(content, size) {
				texts = append(texts, c.Text)
			}
			if got := strings.Join(texts, " "); got != want {
				t.Errorf("ChunkText(%q, %d) joined = %q, want %q", content, size, got, want)
			}
		}
	}
}
