package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		question string
		want     Intent
	}{
		{"Which industry has the most startups?", IntentIndustry},
		{"Break it down by sector", IntentIndustry},
		{"How much funding was raised overall?", IntentFunding},
		{"Where does the investment money go?", IntentFunding},
		{"Who founded these companies?", IntentFounders},
		{"Who started Acme?", IntentFounders},
		{"Where are they headquartered?", IntentLocation},
		{"Which ones are based in Texas?", IntentLocation},
		{"robotics", IntentSearch},
		{"", IntentSearch},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.question), "question: %q", tc.question)
	}
}

func TestClassify_FirstGroupWins(t *testing.T) {
	t.Parallel()

	// "industry" and "funding" both appear; the industry group is checked first.
	assert.Equal(t, IntentIndustry, Classify("funding by industry"))
}
