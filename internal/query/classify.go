// Package query answers free-text questions about the stored records.
package query

import "strings"

// Intent is the analysis a question maps to.
type Intent string

const (
	IntentIndustry Intent = "industry_analysis"
	IntentFunding  Intent = "funding_analysis"
	IntentFounders Intent = "founder_analysis"
	IntentLocation Intent = "location_analysis"
	IntentSearch   Intent = "search"
)

// intentKeywords maps each analytic intent to its trigger words. The first
// group with a hit wins; anything else falls through to plain search.
var intentKeywords = []struct {
	intent Intent
	words  []string
}{
	{IntentIndustry, []string{"industry", "sector", "industries"}},
	{IntentFunding, []string{"funding", "investment", "money", "raised"}},
	{IntentFounders, []string{"founder", "started", "created"}},
	{IntentLocation, []string{"location", "headquarter", "based", "where"}},
}

// Classify picks the intent for a question by keyword, case-insensitive.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	for _, group := range intentKeywords {
		for _, w := range group.words {
			if strings.Contains(q, w) {
				return group.intent
			}
		}
	}
	return IntentSearch
}
