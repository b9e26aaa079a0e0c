package suggest

import (
	"strings"
	"unicode/utf8"
)

// FallbackAnchor is used when a destination has neither heading nor title.
const FallbackAnchor = "Learn more"

// SelectAnchor picks the link text for d inside chunkText.
//
// The primary heading, title, and each sub heading are searched for
// case-insensitively; every hit records the chunk's own substring at that
// position and the longest one wins (earliest found on ties). Without a hit the
// primary heading, then the title, then FallbackAnchor is returned.
func SelectAnchor(chunkText string, d Destination) string {
	needles := make([]string, 0, 2+len(d.SubHeadings))
	needles = append(needles, d.PrimaryHeading, d.Title)
	needles = append(needles, d.SubHeadings...)

	var best string
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		if hit, ok := findFold(chunkText, needle); ok && utf8.RuneCountInString(hit) > utf8.RuneCountInString(best) {
			best = hit
		}
	}
	if best != "" {
		return best
	}

	switch {
	case d.PrimaryHeading != "":
		return d.PrimaryHeading
	case d.Title != "":
		return d.Title
	default:
		return FallbackAnchor
	}
}

// findFold returns the first substring of haystack that equals needle under
// Unicode case folding. The result is sliced from haystack, so it keeps the
// haystack's original casing.
func findFold(haystack, needle string) (string, bool) {
	n := utf8.RuneCountInString(needle)
	for start := 0; start < len(haystack); {
		end := start
		for i := 0; i < n && end < len(haystack); i++ {
			_, size := utf8.DecodeRuneInString(haystack[end:])
			end += size
		}
		if strings.EqualFold(haystack[start:end], needle) {
			return haystack[start:end], true
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		start += size
	}
	return "", false
}
