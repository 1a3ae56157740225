package query

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/startup-research/internal/model"
	"github.com/sells-group/startup-research/internal/store"
)

// Result is the answer to one question.
type Result struct {
	Question string `json:"question"`
	Type     Intent `json:"type"`
	Data     any    `json:"data"`
}

// FundingStats aggregates the coercible funding amounts across records.
type FundingStats struct {
	Companies    int     `json:"companies_with_funding_data"`
	TotalKnown   float64 `json:"total_known_funding"`
	AverageKnown float64 `json:"average_known_funding"`
}

// Engine answers questions against a record store.
type Engine struct {
	store store.Store
}

// NewEngine creates a query Engine.
func NewEngine(st store.Store) *Engine {
	return &Engine{store: st}
}

// Answer classifies the question and computes the matching analysis over
// every stored record. Search questions hit the store's search directly.
func (e *Engine) Answer(ctx context.Context, question string) (*Result, error) {
	intent := Classify(question)
	zap.L().Debug("query: classified",
		zap.String("question", question),
		zap.String("intent", string(intent)),
	)

	if intent == IntentSearch {
		recs, err := e.store.Search(ctx, question)
		if err != nil {
			return nil, eris.Wrap(err, "query: search")
		}
		return &Result{Question: question, Type: intent, Data: recs}, nil
	}

	recs, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "query: list records")
	}

	var data any
	switch intent {
	case IntentIndustry:
		data = industryCounts(recs)
	case IntentFunding:
		data = fundingStats(recs)
	case IntentFounders:
		data = foundersByCompany(recs)
	case IntentLocation:
		data = locationsByCompany(recs)
	}
	return &Result{Question: question, Type: intent, Data: data}, nil
}

// industryCounts tallies how many records carry each industry label.
func industryCounts(recs []model.EntityRecord) map[string]int {
	counts := map[string]int{}
	for i := range recs {
		for _, ind := range recs[i].Industries {
			counts[ind]++
		}
	}
	return counts
}

// fundingStats sums every coercible funding value. A record counts toward
// the company tally when at least one of its values coerces; placeholder
// strings like "Unknown" do not.
func fundingStats(recs []model.EntityRecord) FundingStats {
	var stats FundingStats
	for i := range recs {
		hadValue := false
		for _, v := range recs[i].Funding {
			if amount, ok := model.CoerceAmount(v); ok {
				stats.TotalKnown += amount
				hadValue = true
			}
		}
		if hadValue {
			stats.Companies++
		}
	}
	if stats.Companies > 0 {
		stats.AverageKnown = stats.TotalKnown / float64(stats.Companies)
	}
	return stats
}

// foundersByCompany maps each company name to its founder list, skipping
// records with no founders on file.
func foundersByCompany(recs []model.EntityRecord) map[string][]string {
	out := map[string][]string{}
	for i := range recs {
		if len(recs[i].Founders) > 0 {
			out[recs[i].Name] = recs[i].Founders
		}
	}
	return out
}

// locationsByCompany maps each company name to its headquarters, skipping
// the unknown placeholder.
func locationsByCompany(recs []model.EntityRecord) map[string]string {
	out := map[string]string{}
	for i := range recs {
		if hq := recs[i].Headquarters; hq != "" && hq != model.ValueUnknown {
			out[recs[i].Name] = hq
		}
	}
	return out
}
