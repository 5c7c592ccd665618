// Package admission decides whether a seat change goes through or is held
// behind the upgrade prompt. Decisions are pure functions of a snapshot.
package admission

import (
	"seatservice/internal/domain/account"
	"seatservice/internal/domain/user"
)

// MaxFreeActivatedUsers is the seat cap of the free tier.
const MaxFreeActivatedUsers = 5

type Kind int

const (
	ProceedActivate Kind = iota + 1
	ProceedDeactivate
	ShowUpsell
)

func (k Kind) String() string {
	switch k {
	case ProceedActivate:
		return "ACTIVATE"
	case ProceedDeactivate:
		return "DEACTIVATE"
	case ShowUpsell:
		return "SHOW_UPSELL"
	default:
		return "UNKNOWN"
	}
}

// Action carries the user to mutate; it is zero for ShowUpsell.
type Action struct {
	Kind Kind
	User user.User
}

type Policy struct {
	MaxFreeActivatedUsers int
}

func DefaultPolicy() Policy {
	return Policy{MaxFreeActivatedUsers: MaxFreeActivatedUsers}
}

func Decide(u user.User, usage account.Usage) Action {
	return DefaultPolicy().Decide(u, usage)
}

// Decide never blocks a deactivation. An activation on the free tier is
// blocked once the account already holds MaxFreeActivatedUsers seats.
func (p Policy) Decide(u user.User, usage account.Usage) Action {
	if u.Activated {
		return Action{Kind: ProceedDeactivate, User: u}
	}
	if usage.Plan.Tier == account.TierFree && usage.ActivatedUserCount >= p.MaxFreeActivatedUsers {
		return Action{Kind: ShowUpsell}
	}
	return Action{Kind: ProceedActivate, User: u}
}
