package pg

import (
	"context"
	"database/sql"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	trmmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"

	"seatservice/internal/domain"
)

var ctxGetter = trmsql.DefaultCtxGetter

type TxManager struct {
	tm trm.Manager
}

func NewTxManager(db *sql.DB) domain.UnitOfWork {
	mgr := trmmanager.Must(
		trmsql.NewDefaultFactory(db),
		trmmanager.WithCtxManager(trmcontext.DefaultManager),
	)

	return &TxManager{tm: mgr}
}

// WithinTx joins the transaction already in ctx, if any.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.tm.Do(ctx, fn)
}

// The helpers below run on the ctx transaction when there is one and on
// the pool otherwise.

func queryRow(ctx context.Context, db *sql.DB, q string, args ...any) *sql.Row {
	return ctxGetter.DefaultTrOrDB(ctx, db).QueryRowContext(ctx, q, args...)
}

func query(ctx context.Context, db *sql.DB, q string, args ...any) (*sql.Rows, error) {
	return ctxGetter.DefaultTrOrDB(ctx, db).QueryContext(ctx, q, args...)
}
