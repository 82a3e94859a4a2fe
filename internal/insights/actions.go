package insights

import (
	"sort"

	"github.com/grovyn/core-platform/internal/contracts"
)

type actionSpec struct {
	rank    int
	effort  string
	text    string
	outcome string
}

// actionByKind maps fired growth rules to the canned recommendation
// catalog, ranked by urgency. Kinds without an entry produce no action.
var actionByKind = map[string]actionSpec{
	KindChurnRisk: {
		rank:    0,
		effort:  "30 min",
		text:    "Contact high-value customers inactive 14+ days with a win-back offer.",
		outcome: "Re-engage high-LTV customers before they churn.",
	},
	KindReorderPrediction: {
		rank:    1,
		effort:  "15 min",
		text:    "Run a short campaign targeting customers likely to reorder this week.",
		outcome: "Send targeted offer to likely reorder segment.",
	},
	KindCommissionRising: {
		rank:    2,
		effort:  "1 hour",
		text:    "Promote direct ordering (app/web) to reduce partner commission.",
		outcome: "Shift traffic to direct channel to protect margin.",
	},
	KindLowMarginItems: {
		rank:    3,
		effort:  "30 min",
		text:    "Review and reprice low-margin items or push higher-margin alternatives.",
		outcome: "Reprice or promote higher-margin items.",
	},
	KindRepeatRateDrop: {
		rank:    4,
		effort:  "30 min",
		text:    "Analyse repeat rate drop and launch a retention initiative.",
		outcome: "Identify causes and run retention campaign.",
	},
	KindDormantSegment: {
		rank:    5,
		effort:  "1 hour",
		text:    "Launch dormant-customer win-back campaign (target 15% recovery).",
		outcome: "Win-back campaign to recover 15% of dormant base.",
	},
}

var actionPriorities = []contracts.GrowthPriority{
	contracts.GrowthPriorityHigh,
	contracts.GrowthPriorityMedium,
	contracts.GrowthPriorityLow,
}

// topActions picks at most three recommendations from the fired growth
// insights, ordered by the fixed urgency ranking.
func topActions(insights []contracts.GrowthInsight) []contracts.Action {
	type candidate struct {
		rank      int
		insightID string
		spec      actionSpec
	}
	candidates := make([]candidate, 0, len(insights))
	for _, ins := range insights {
		spec, ok := actionByKind[ins.Kind]
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{rank: spec.rank, insightID: ins.ID, spec: spec})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].rank < candidates[j].rank })
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	actions := make([]contracts.Action, 0, len(candidates))
	for i, c := range candidates {
		actions = append(actions, contracts.Action{
			Priority:        actionPriorities[i],
			Effort:          c.spec.effort,
			InsightID:       c.insightID,
			ActionText:      c.spec.text,
			ExpectedOutcome: c.spec.outcome,
		})
	}
	return actions
}
