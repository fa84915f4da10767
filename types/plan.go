package types

// Plan is a subscription tier. The tier determines the account's
// generation quota.
type Plan string

const (
	PlanFree         Plan = "free"
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// UnlimitedGenerations marks an account with no generation ceiling.
const UnlimitedGenerations = -1

// planLimits maps each tier to its monthly generation quota.
var planLimits = map[Plan]int{
	PlanFree:         10,
	PlanStarter:      50,
	PlanProfessional: 500,
	PlanEnterprise:   UnlimitedGenerations,
}

// GenerationLimit returns the quota for the plan. Unknown plan names fall
// back to the free-tier limit.
func (p Plan) GenerationLimit() int {
	if limit, ok := planLimits[p]; ok {
		return limit
	}
	return planLimits[PlanFree]
}

// Valid reports whether p names a known tier.
func (p Plan) Valid() bool {
	_, ok := planLimits[p]
	return ok
}

// Paid reports whether p is a purchasable tier. Only paid tiers may be set
// through subscription creation.
func (p Plan) Paid() bool {
	return p == PlanStarter || p == PlanProfessional || p == PlanEnterprise
}
