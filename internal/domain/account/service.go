package account

import (
	"context"

	"seatservice/internal/domain"
	"seatservice/internal/domain/user"
)

type Service interface {
	GetUsage(ctx context.Context, provider, owner string) (Usage, error)
	GetUsageForUpdate(ctx context.Context, provider, owner string) (Usage, error)
	SetAutoActivate(ctx context.Context, caller user.Caller, provider, owner string, enabled bool) (Usage, error)
}

type service struct {
	uow      domain.UnitOfWork
	accounts Repository
	catalog  Catalog
	events   domain.EventBus
}

func NewService(uow domain.UnitOfWork, accounts Repository, catalog Catalog, events domain.EventBus) Service {
	return &service{
		uow:      uow,
		accounts: accounts,
		catalog:  catalog,
		events:   events,
	}
}

func (s *service) GetUsage(ctx context.Context, provider, owner string) (Usage, error) {
	u, err := s.accounts.GetUsage(ctx, provider, owner)
	if err != nil {
		return Usage{}, err
	}
	u.Plan.Tier = s.catalog.TierOf(u.Plan.Value)
	return u, nil
}

func (s *service) GetUsageForUpdate(ctx context.Context, provider, owner string) (Usage, error) {
	u, err := s.accounts.GetUsageForUpdate(ctx, provider, owner)
	if err != nil {
		return Usage{}, err
	}
	u.Plan.Tier = s.catalog.TierOf(u.Plan.Value)
	return u, nil
}

func (s *service) SetAutoActivate(ctx context.Context, caller user.Caller, provider, owner string, enabled bool) (Usage, error) {
	if !caller.IsAdmin {
		return Usage{}, domain.Forbidden("only admins can change auto activation")
	}

	var res Usage

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.accounts.SetAutoActivate(ctx, provider, owner, enabled)
		if err != nil {
			return err
		}
		u.Plan.Tier = s.catalog.TierOf(u.Plan.Value)
		res = u
		return nil
	})
	if err != nil {
		return Usage{}, err
	}

	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: domain.EventAutoActivateChanged,
			Payload: map[string]any{
				"provider":      provider,
				"owner":         owner,
				"auto_activate": enabled,
				"changed_by":    caller.Username,
			},
		})
	}
	return res, nil
}
