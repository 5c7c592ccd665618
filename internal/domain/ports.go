// Package domain holds the pieces shared by every seat-management aggregate:
// error taxonomy, domain events and the transaction boundary.
package domain

import "context"

const (
	EventUserActivated       = "user.activated"
	EventUserDeactivated     = "user.deactivated"
	EventUpsellShown         = "seats.upsell_shown"
	EventAutoActivateChanged = "account.auto_activate"
)

type Event struct {
	Type    string
	Payload map[string]any
}

// EventBus delivers events fire-and-forget. Publishing never fails the caller.
type EventBus interface {
	Publish(ctx context.Context, e Event)
}

// UnitOfWork runs fn inside one transaction; repositories pick the
// transaction up from ctx.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
