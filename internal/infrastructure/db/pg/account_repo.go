package pg

import (
	"context"
	"database/sql"
	"errors"

	"seatservice/internal/domain"
	"seatservice/internal/domain/account"
)

// The activated count is computed in the same statement as the plan read,
// so a usage snapshot is always consistent with the user table.
const usageQuery = `
	SELECT a.plan, a.plan_auto_activate,
	       (SELECT COUNT(*) FROM account_users u
	         WHERE u.account_id = a.id AND u.activated) AS activated_user_count
	  FROM accounts a
	 WHERE a.provider = $1 AND a.owner = $2`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetUsage(ctx context.Context, provider, owner string) (account.Usage, error) {
	return scanUsage(queryRow(ctx, r.db, usageQuery, provider, owner))
}

// GetUsageForUpdate must run inside a transaction; outside one the lock is
// released as soon as the statement finishes.
//
// The lock and the count are separate statements. Under READ COMMITTED a
// statement sees the snapshot taken when it started, so a count read in the
// same statement that waited on the lock would miss activations committed
// by the previous holder.
func (r *AccountRepository) GetUsageForUpdate(ctx context.Context, provider, owner string) (account.Usage, error) {
	var locked int
	err := queryRow(ctx, r.db,
		`SELECT 1 FROM accounts WHERE provider = $1 AND owner = $2 FOR UPDATE`,
		provider, owner,
	).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return account.Usage{}, domain.NotFound("account not found")
	}
	if err != nil {
		return account.Usage{}, err
	}

	return scanUsage(queryRow(ctx, r.db, usageQuery, provider, owner))
}

func (r *AccountRepository) SetAutoActivate(ctx context.Context, provider, owner string, enabled bool) (account.Usage, error) {
	row := queryRow(ctx, r.db,
		`UPDATE accounts a
		    SET plan_auto_activate = $3
		  WHERE a.provider = $1 AND a.owner = $2
		  RETURNING a.plan, a.plan_auto_activate,
		            (SELECT COUNT(*) FROM account_users u
		              WHERE u.account_id = a.id AND u.activated)`,
		provider, owner, enabled,
	)
	return scanUsage(row)
}

func scanUsage(row *sql.Row) (account.Usage, error) {
	var u account.Usage
	err := row.Scan(&u.Plan.Value, &u.PlanAutoActivate, &u.ActivatedUserCount)
	if errors.Is(err, sql.ErrNoRows) {
		return account.Usage{}, domain.NotFound("account not found")
	}
	if err != nil {
		return account.Usage{}, err
	}
	return u, nil
}
