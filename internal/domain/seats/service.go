// Package seats runs the user-management flow: listing users next to the
// account's seat usage, and toggling a user's activation through the
// admission policy.
package seats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"seatservice/internal/domain"
	"seatservice/internal/domain/account"
	"seatservice/internal/domain/admission"
	"seatservice/internal/domain/params"
	"seatservice/internal/domain/upsell"
	"seatservice/internal/domain/user"
)

type Overview struct {
	Users   user.Page
	Account account.Usage
}

// Result of a toggle. User is the confirmed row for ProceedActivate and
// ProceedDeactivate; Upsell is an opened prompt for ShowUpsell.
type Result struct {
	Kind   admission.Kind
	User   user.User
	Upsell *upsell.Prompt
}

type Service interface {
	Overview(ctx context.Context, provider, owner string, p params.FilterParams) (Overview, error)
	Toggle(ctx context.Context, caller user.Caller, provider, owner string, ownerid int64) (Result, error)
}

type service struct {
	uow      domain.UnitOfWork
	users    user.Repository
	accounts account.Service
	policy   admission.Policy
	links    upsell.Links
	events   domain.EventBus
}

func NewService(
	uow domain.UnitOfWork,
	users user.Repository,
	accounts account.Service,
	policy admission.Policy,
	links upsell.Links,
	events domain.EventBus,
) Service {
	return &service{
		uow:      uow,
		users:    users,
		accounts: accounts,
		policy:   policy,
		links:    links,
		events:   events,
	}
}

// Overview fetches the user page and the usage concurrently. Either failure
// fails the whole call.
func (s *service) Overview(ctx context.Context, provider, owner string, p params.FilterParams) (Overview, error) {
	var res Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.users.List(gctx, provider, owner, p)
		if err != nil {
			return err
		}
		res.Users = page
		return nil
	})
	g.Go(func() error {
		usage, err := s.accounts.GetUsage(gctx, provider, owner)
		if err != nil {
			return err
		}
		res.Account = usage
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return res, nil
}

// Toggle flips the target's activation unless the policy holds it back.
// The account row stays locked for the whole decision so concurrent
// activations cannot both pass the seat check. The resulting event is
// published after commit.
func (s *service) Toggle(ctx context.Context, caller user.Caller, provider, owner string, ownerid int64) (Result, error) {
	var (
		res Result
		ev  domain.Event
	)

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		usage, err := s.accounts.GetUsageForUpdate(ctx, provider, owner)
		if err != nil {
			return err
		}

		target, err := s.users.GetByOwnerid(ctx, provider, owner, ownerid)
		if err != nil {
			return err
		}
		if !caller.CanManage(target) {
			return domain.Forbidden("only admins can change other users' activation")
		}

		action := s.policy.Decide(target, usage)
		res.Kind = action.Kind

		if action.Kind == admission.ShowUpsell {
			prompt := upsell.New(s.links)
			prompt.Open()
			res.Upsell = prompt

			ev = domain.Event{
				Type: domain.EventUpsellShown,
				Payload: map[string]any{
					"provider":             provider,
					"owner":                owner,
					"ownerid":              target.Ownerid,
					"activated_user_count": usage.ActivatedUserCount,
					"plan":                 usage.Plan.Value,
				},
			}
			return nil
		}

		u, err := s.users.SetActivated(ctx, provider, owner, action.User.Ownerid, action.Kind == admission.ProceedActivate)
		if err != nil {
			return err
		}
		res.User = u
		ev = user.ActivationEvent(provider, owner, u)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if s.events != nil {
		s.events.Publish(ctx, ev)
	}
	return res, nil
}
