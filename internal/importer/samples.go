package importer

import (
	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
)

// Columns follow templateColumns: url, title, h1, meta_description, h2.
var sampleTemplateRows = [][]string{
	{
		"https://example.com/seo-guide",
		"Complete SEO Guide 2024 - Boost Your Rankings",
		"The Ultimate SEO Guide for 2024",
		"Learn everything about SEO in 2024. Complete guide covering on-page, technical SEO, link building, and content optimization.",
		"What is SEO?; On-Page SEO Techniques; Technical SEO Checklist; Link Building Strategies; Content Optimization",
	},
	{
		"https://example.com/keyword-research",
		"Keyword Research Tutorial - Find the Right Keywords",
		"Keyword Research: Complete Tutorial",
		"Discover how to find profitable keywords. Complete tutorial on keyword research tools, long-tail keywords, and competitive analysis.",
		"Why Keywords Matter; Keyword Research Tools; Long-tail Keywords; Competitor Analysis; Search Intent",
	},
	{
		"https://example.com/content-marketing",
		"Content Marketing Strategy - Drive Traffic",
		"Content Marketing Strategy Guide",
		"Master content marketing with our comprehensive guide. Learn to create engaging content, distribute effectively, and measure ROI.",
		"Understanding Content Marketing; Creating Engaging Content; Distribution Channels; Measuring Performance; ROI Tracking",
	},
	{
		"https://example.com/link-building",
		"Link Building Guide - Build Quality Backlinks",
		"Link Building Strategies That Work",
		"Build high-quality backlinks with proven link building strategies. Learn guest posting, broken link building, and relationship building.",
		"White Hat Link Building; Guest Posting Tips; Broken Link Building; Building Relationships; Outreach Strategy",
	},
	{
		"https://example.com/local-seo",
		"Local SEO Guide - Rank in Local Search",
		"Local SEO: Complete Guide",
		"Dominate local search with our local SEO guide. Optimize Google My Business, build citations, manage reviews, and create local content.",
		"Google My Business; Local Citations; Reviews Management; Local Content Strategy; Local Schema Markup",
	},
}

var emptyTemplateRows = [][]string{
	{"https://example.com/page1", "Page Title 1", "Main Heading 1", "Meta description for page 1", "H2-1; H2-2; H2-3"},
	{"https://example.com/page2", "Page Title 2", "Main Heading 2", "Meta description for page 2", "H2-A; H2-B; H2-C"},
}

// SampleDestinations returns the quick-start catalog of six SEO pages.
func SampleDestinations() []storage.DestinationRecord {
	recs := []storage.DestinationRecord{
		{
			URL:             "https://example.com/seo-guide",
			Title:           "Complete SEO Guide 2024 - Boost Your Rankings",
			H1:              "The Ultimate SEO Guide for 2024",
			H2:              []string{"What is SEO?", "On-Page SEO Techniques", "Technical SEO Checklist", "Link Building Strategies", "Content Optimization Tips"},
			MetaDescription: "Learn everything about SEO in 2024. Complete guide covering on-page, technical SEO, link building, and content optimization strategies.",
		},
		{
			URL:             "https://example.com/content-marketing",
			Title:           "Content Marketing Strategy - Drive Traffic & Engagement",
			H1:              "Content Marketing Strategy Guide",
			H2:              []string{"Understanding Content Marketing", "Creating Engaging Content", "Content Distribution Channels", "Measuring Content Performance"},
			MetaDescription: "Master content marketing with our comprehensive guide. Learn to create engaging content, distribute effectively, and measure ROI.",
		},
		{
			URL:             "https://example.com/keyword-research",
			Title:           "Keyword Research Tutorial - Find the Right Keywords",
			H1:              "Keyword Research: Complete Tutorial",
			H2:              []string{"Why Keyword Research Matters", "Tools for Keyword Research", "Long-tail Keywords", "Competitor Analysis"},
			MetaDescription: "Discover how to find profitable keywords. Complete tutorial on keyword research tools, long-tail keywords, and competitive analysis.",
		},
		{
			URL:             "https://example.com/link-building",
			Title:           "Link Building Guide - Build Quality Backlinks",
			H1:              "Link Building Strategies That Work",
			H2:              []string{"White Hat Link Building", "Guest Posting Tips", "Broken Link Building", "Building Relationships"},
			MetaDescription: "Build high-quality backlinks with proven link building strategies. Learn guest posting, broken link building, and relationship building.",
		},
		{
			URL:             "https://example.com/local-seo",
			Title:           "Local SEO Guide - Rank in Local Search Results",
			H1:              "Local SEO: Complete Guide",
			H2:              []string{"Google My Business Optimization", "Local Citations", "Reviews Management", "Local Content Strategy"},
			MetaDescription: "Dominate local search with our local SEO guide. Optimize Google My Business, build citations, manage reviews, and create local content.",
		},
		{
			URL:             "https://example.com/technical-seo",
			Title:           "Technical SEO Guide - Optimize Your Website",
			H1:              "Technical SEO Essentials",
			H2:              []string{"Site Speed Optimization", "Mobile-First Indexing", "Schema Markup", "XML Sitemaps"},
			MetaDescription: "Master technical SEO with our comprehensive guide. Learn about site speed, mobile optimization, schema markup, and more.",
		},
	}
	for i := range recs {
		recs[i].Category = string(DetectCategory(recs[i].URL, recs[i].Title, recs[i].H1))
	}
	return recs
}
