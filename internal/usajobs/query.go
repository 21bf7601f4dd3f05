package usajobs

import "strings"

// BuildKeyword renders a keyword list as one Search API Keyword value.
//
// Observed behavior: an "A OR B OR C" chain can return zero results even when
// the individual terms match, so long lists are biased toward the first
// high-signal phrase instead of over-filtering. Short lists are space-joined,
// which the API treats as a broad relevance-weighted search. Multi-word terms
// stay quoted.
func BuildKeyword(keywords []string) string {
	kws := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}
	if len(kws) == 0 {
		return ""
	}
	if len(kws) > 4 {
		return quoteTerm(kws[0])
	}
	quoted := make([]string, len(kws))
	for i, k := range kws {
		quoted[i] = quoteTerm(k)
	}
	return strings.Join(quoted, " ")
}

func quoteTerm(t string) string {
	if strings.Contains(t, " ") {
		return `"` + t + `"`
	}
	return t
}

// NormalizeDays maps an arbitrary lookback window onto the DatePosted buckets
// the API supports (1, 3, 7, 30).
func NormalizeDays(days int) int {
	switch {
	case days <= 1:
		return 1
	case days <= 3:
		return 3
	case days <= 7:
		return 7
	default:
		return 30
	}
}
