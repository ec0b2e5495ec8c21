package policy

import "github.com/dmitrymomot/recordkit/pkg/recordcheck"

const (
	// EthicsApprovalName requires every item to carry an approved ethics review.
	EthicsApprovalName = "ethics_approval"

	// PlacementV1Name checks asset placement requests.
	PlacementV1Name = "place_v1"

	// MaxVisibilityBudgetMs is the occlusion budget enforced by PlacementV1.
	MaxVisibilityBudgetMs = 250
)

// EthicsApproval requires "ethics_approve" to be "safe" or "reviewed".
func EthicsApproval() Policy {
	return Policy{
		Name:        EthicsApprovalName,
		Description: "every item carries an ethics approval of safe or reviewed",
		Predicates: []recordcheck.Predicate{
			recordcheck.RequireField("ethics_approve"),
			recordcheck.RequireOneOf("ethics_approve", "safe", "reviewed"),
		},
	}
}

// PlacementV1 requires the placement fields and caps the visibility budget.
func PlacementV1() Policy {
	return Policy{
		Name:        PlacementV1Name,
		Description: "asset placement requests with an occlusion budget",
		Predicates: []recordcheck.Predicate{
			recordcheck.RequireField("asset_id"),
			recordcheck.RequireField("world_coordinate"),
			recordcheck.RequireField("seed"),
			recordcheck.RequireField("context"),
			recordcheck.RequireNumberAtMost("context.visibility_budget_ms", MaxVisibilityBudgetMs),
		},
	}
}
