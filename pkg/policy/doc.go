// Package policy turns declarative rule documents into named predicate lists
// and keeps them in a registry keyed by policy name.
//
// A policy document is YAML (or JSON, which yaml.v3 also accepts):
//
//	name: ethics_approval
//	description: every item must carry a positive ethics review
//	normalize: [trim, lower]
//	rules:
//	  - field: ethics_approve
//	    required: true
//	    allowed: [safe, reviewed]
//	  - field: context.visibility_budget_ms
//	    max: 250
//
// Each rule compiles, in this order, to RequireField, RequireValueIn,
// RequireValueNotIn and RequireNumberAtMost, so presence is always checked
// before membership.
//
// Two policies are built in: EthicsApprovalName and PlacementV1Name. Use
// DefaultRegistry to get a registry pre-populated with them.
package policy
