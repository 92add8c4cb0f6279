package domain

import "time"

// Plan is a tenant's subscription tier. Upgrades are monotonic: free -> pro,
// no downgrade path exists.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Tenant is an isolated organisation owning users and notes. The slug is the
// tenant's stable public identifier used in URLs; it is unique and immutable.
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	Plan      Plan
	CreatedAt time.Time
	UpdatedAt time.Time
}
