package account

type Tier int

const (
	TierFree Tier = iota
	TierPaid
)

func (t Tier) String() string {
	if t == TierFree {
		return "free"
	}
	return "paid"
}

type Plan struct {
	Value string
	Tier  Tier
}

// Usage is the seat snapshot of one account. ActivatedUserCount is counted
// from the user table at read time and may lag a mutation until reread.
type Usage struct {
	ActivatedUserCount int
	Plan               Plan
	PlanAutoActivate   bool
}

var DefaultFreePlans = []string{"users-free", "users-basic"}

// Catalog classifies plan values into tiers. Anything not listed as free is paid.
type Catalog struct {
	free map[string]struct{}
}

func NewCatalog(freePlans []string) Catalog {
	c := Catalog{free: make(map[string]struct{}, len(freePlans))}
	for _, p := range freePlans {
		c.free[p] = struct{}{}
	}
	return c
}

func (c Catalog) TierOf(plan string) Tier {
	if _, ok := c.free[plan]; ok {
		return TierFree
	}
	return TierPaid
}
