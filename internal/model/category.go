package model

import "fmt"

// Category identifies one of the two job topics the scraper tracks. Each
// category has its own keyword strategy and its own persisted state; no
// cross-category merging ever happens.
type Category string

const (
	CategoryAI    Category = "ai"
	CategoryCyber Category = "cyber"
)

// Categories returns both categories in their fixed processing order.
func Categories() []Category {
	return []Category{CategoryAI, CategoryCyber}
}

// ParseCategory validates a user-supplied category name.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAI:
		return CategoryAI, nil
	case CategoryCyber:
		return CategoryCyber, nil
	}
	return "", fmt.Errorf("unknown category %q (want %q or %q)", s, CategoryAI, CategoryCyber)
}

// DisplayName returns the human-readable name used in notification subjects.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAI:
		return "AI"
	case CategoryCyber:
		return "Cybersecurity"
	}
	return string(c)
}

var aiKeywords = []string{
	"artificial intelligence",
	"AI",
	"machine learning",
	"ML",
	"deep learning",
	"NLP",
	"natural language processing",
	"LLM",
	"large language model",
	"computer vision",
	"generative",
	"reinforcement learning",
}

var cyberKeywords = []string{
	"cybersecurity",
	"information security",
	"infosec",
	"SOC",
	"security analyst",
	"threat",
	"incident response",
	"security engineer",
	"penetration test",
	"red team",
	"blue team",
	"SIEM",
}

// Keywords returns the search keyword list for the category. The first entry
// is the highest-signal phrase; the query builder may prefer it alone over a
// long keyword chain.
func (c Category) Keywords() []string {
	switch c {
	case CategoryAI:
		return aiKeywords
	case CategoryCyber:
		return cyberKeywords
	}
	return nil
}
