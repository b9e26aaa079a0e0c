package importer

import (
	"strings"

	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

type categoryRule struct {
	category suggest.Category
	keywords []string
}

// categoryRules are tried in order; the first rule with a matching keyword wins.
var categoryRules = []categoryRule{
	{suggest.CategoryGlossary, []string{"glossary", "definition", "what-is", "what is", "meaning"}},
	{suggest.CategoryProduct, []string{"/product", "pricing", "features", "software", "tool", "/shop"}},
	{suggest.CategoryCategory, []string{"/category", "/categories", "/tag/", "/topics"}},
	{suggest.CategoryLanding, []string{"/lp/", "landing", "signup", "sign-up", "free-trial", "demo"}},
	{suggest.CategoryGuide, []string{"guide", "tutorial", "how-to", "how to", "checklist", "essentials"}},
	{suggest.CategoryBlog, []string{"/blog", "/news", "/article", "/post"}},
}

// DetectCategory guesses a destination's category from its URL, title and
// primary heading. Unmatched pages are Other.
func DetectCategory(url, title, h1 string) suggest.Category {
	haystack := strings.ToLower(url + " " + title + " " + h1)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.category
			}
		}
	}
	return suggest.CategoryOther
}
