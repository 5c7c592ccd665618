package account

import "context"

// Repository returns Usage with Plan.Tier unset; the service classifies it.
type Repository interface {
	GetUsage(ctx context.Context, provider, owner string) (Usage, error)
	// GetUsageForUpdate locks the account row until the surrounding
	// transaction ends.
	GetUsageForUpdate(ctx context.Context, provider, owner string) (Usage, error)
	SetAutoActivate(ctx context.Context, provider, owner string, enabled bool) (Usage, error)
}
