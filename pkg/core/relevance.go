package core

import "strings"

// Relevance scores how strongly a set of field values matches a search term.
// Per field, exactly one rule fires, checked in this order:
//
//	exact match        +100
//	prefix match        +80
//	substring match     +50
//	token overlap       +20 per (term word, field word) pair where the
//	                    field word contains the term word
//
// Field scores are summed. Matching is case-insensitive; the term is
// lowercased and trimmed here so callers may pass it raw.
func Relevance(term string, fields []string) int {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return 0
	}

	total := 0
	for _, field := range fields {
		total += fieldScore(term, strings.ToLower(field))
	}
	return total
}

func fieldScore(term, field string) int {
	if field == "" {
		return 0
	}
	switch {
	case field == term:
		return 100
	case strings.HasPrefix(field, term):
		return 80
	case strings.Contains(field, term):
		return 50
	}

	score := 0
	for _, termWord := range strings.Fields(term) {
		for _, fieldWord := range strings.Fields(field) {
			if strings.Contains(fieldWord, termWord) {
				score += 20
			}
		}
	}
	return score
}

// MatchesAny reports whether any field value contains the term as a
// case-insensitive substring. This is the inclusion test for search results;
// Relevance only ranks documents that already passed it.
func MatchesAny(term string, fields []string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
