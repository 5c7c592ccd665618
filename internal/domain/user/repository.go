package user

import (
	"context"

	"seatservice/internal/domain/params"
)

type Repository interface {
	List(ctx context.Context, provider, owner string, p params.FilterParams) (Page, error)
	GetByOwnerid(ctx context.Context, provider, owner string, ownerid int64) (User, error)
	GetByUsername(ctx context.Context, provider, owner, username string) (User, error)
	SetActivated(ctx context.Context, provider, owner string, ownerid int64, activated bool) (User, error)
}
