package user

import (
	"context"
	"errors"

	"seatservice/internal/domain"
	"seatservice/internal/domain/params"
)

type Service interface {
	List(ctx context.Context, provider, owner string, p params.FilterParams) (Page, error)
	Get(ctx context.Context, provider, owner string, ownerid int64) (User, error)
	Activate(ctx context.Context, provider, owner string, ownerid int64, activated bool) (User, error)
	Caller(ctx context.Context, provider, owner, username string) (Caller, error)
}

type service struct {
	users  Repository
	events domain.EventBus
}

func NewService(users Repository, events domain.EventBus) Service {
	return &service{
		users:  users,
		events: events,
	}
}

func (s *service) List(ctx context.Context, provider, owner string, p params.FilterParams) (Page, error) {
	return s.users.List(ctx, provider, owner, p)
}

func (s *service) Get(ctx context.Context, provider, owner string, ownerid int64) (User, error) {
	return s.users.GetByOwnerid(ctx, provider, owner, ownerid)
}

// Activate sets the activated flag and returns the row as stored. Nothing is
// committed locally before the store confirms.
func (s *service) Activate(ctx context.Context, provider, owner string, ownerid int64, activated bool) (User, error) {
	u, err := s.users.SetActivated(ctx, provider, owner, ownerid, activated)
	if err != nil {
		return User{}, err
	}

	if s.events != nil {
		s.events.Publish(ctx, ActivationEvent(provider, owner, u))
	}

	return u, nil
}

// ActivationEvent describes u's stored activation state. Callers publish it
// only once the write is committed.
func ActivationEvent(provider, owner string, u User) domain.Event {
	typ := domain.EventUserActivated
	if !u.Activated {
		typ = domain.EventUserDeactivated
	}
	return domain.Event{
		Type: typ,
		Payload: map[string]any{
			"provider": provider,
			"owner":    owner,
			"ownerid":  u.Ownerid,
			"username": u.Username,
		},
	}
}

// Caller resolves username within the account. A username with no record
// in the account is an outsider without admin rights, not an error.
func (s *service) Caller(ctx context.Context, provider, owner, username string) (Caller, error) {
	u, err := s.users.GetByUsername(ctx, provider, owner, username)
	var de *domain.DomainError
	if errors.As(err, &de) && de.Code == domain.ErrorCodeNotFound {
		return Caller{Username: username}, nil
	}
	if err != nil {
		return Caller{}, err
	}
	return Caller{Username: u.Username, IsAdmin: u.IsAdmin}, nil
}
