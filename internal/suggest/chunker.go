package suggest

import (
	"regexp"
	"strings"
)

// DefaultChunkSize is the target chunk length in bytes.
const DefaultChunkSize = 200

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// ChunkText splits content into sentence-bounded chunks of roughly targetSize bytes.
//
// Sentences are trimmed and appended with ". " until adding the next one would
// reach targetSize, at which point the buffer is closed and a new one started.
// Empty sentences are skipped. Content without terminating punctuation yields a
// single chunk.
//
// StartOffset is located by searching forward from the previous chunk's
// start, so a sentence repeated verbatim may resolve to its earlier
// occurrence.
func ChunkText(content string, targetSize int) []Chunk {
	if targetSize <= 0 {
		targetSize = DefaultChunkSize
	}

	var chunks []Chunk
	var current strings.Builder
	startPos := 0

	for _, sentence := range sentenceBoundary.Split(content, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if current.Len()+len(sentence) < targetSize {
			if current.Len() == 0 {
				// Only reached for the very first sentence; later buffers are
				// seeded on flush below.
				if idx := strings.Index(content, sentence); idx >= 0 {
					startPos = idx
				}
			}
			current.WriteString(sentence)
			current.WriteString(". ")
			continue
		}

		if current.Len() > 0 {
			chunks = append(chunks, Chunk{
				Text:        strings.TrimSpace(current.String()),
				StartOffset: startPos,
			})
		}
		current.Reset()
		current.WriteString(sentence)
		current.WriteString(". ")
		if idx := strings.Index(content[startPos:], sentence); idx >= 0 {
			startPos += idx
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, Chunk{
			Text:        strings.TrimSpace(current.String()),
			StartOffset: startPos,
		})
	}

	return chunks
}
