package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"seatservice/internal/domain"
	"seatservice/internal/domain/params"
	"seatservice/internal/domain/user"
)

// orderColumns whitelists the orderings the list accepts. Anything else
// falls back to the default ordering.
var orderColumns = map[string]string{
	"name":      "u.name",
	"username":  "u.username",
	"email":     "u.email",
	"activated": "u.activated",
	"is_admin":  "u.is_admin",
}

const userColumns = `u.ownerid, u.username, u.name, u.email, u.is_admin, u.student, u.activated`

const userFilter = `
	FROM account_users u
	JOIN accounts a ON a.id = u.account_id
	WHERE a.provider = $1 AND a.owner = $2
	  AND ($3::boolean IS NULL OR u.activated = $3::boolean)
	  AND ($4::boolean IS NULL OR u.is_admin = $4::boolean)
	  AND ($5::text = '' OR u.username ILIKE '%' || $5::text || '%' OR u.name ILIKE '%' || $5::text || '%')`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context, provider, owner string, p params.FilterParams) (user.Page, error) {
	args := []any{provider, owner, filterArg(p.Activated), filterArg(p.IsAdmin), p.Search}

	var total int
	if err := queryRow(ctx, r.db, `SELECT COUNT(*) `+userFilter, args...).Scan(&total); err != nil {
		return user.Page{}, err
	}

	q := `SELECT ` + userColumns + userFilter + `
	ORDER BY ` + orderClause(p.Ordering) + `, u.ownerid
	LIMIT $6 OFFSET $7`

	rows, err := query(ctx, r.db, q, append(args, p.Limit(), p.Offset())...)
	if err != nil {
		return user.Page{}, err
	}
	defer rows.Close()

	res := user.Page{
		Results:    []user.User{},
		TotalCount: total,
		TotalPages: totalPages(total, p.Limit()),
	}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return user.Page{}, err
		}
		res.Results = append(res.Results, u)
	}

	return res, rows.Err()
}

func (r *UserRepository) GetByOwnerid(ctx context.Context, provider, owner string, ownerid int64) (user.User, error) {
	row := queryRow(ctx, r.db,
		`SELECT `+userColumns+`
		   FROM account_users u
		   JOIN accounts a ON a.id = u.account_id
		  WHERE a.provider = $1 AND a.owner = $2 AND u.ownerid = $3`,
		provider, owner, ownerid,
	)
	return scanOne(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, provider, owner, username string) (user.User, error) {
	row := queryRow(ctx, r.db,
		`SELECT `+userColumns+`
		   FROM account_users u
		   JOIN accounts a ON a.id = u.account_id
		  WHERE a.provider = $1 AND a.owner = $2 AND u.username = $3`,
		provider, owner, username,
	)
	return scanOne(row)
}

func (r *UserRepository) SetActivated(ctx context.Context, provider, owner string, ownerid int64, activated bool) (user.User, error) {
	row := queryRow(ctx, r.db,
		`UPDATE account_users u
		    SET activated = $4
		   FROM accounts a
		  WHERE a.id = u.account_id
		    AND a.provider = $1 AND a.owner = $2 AND u.ownerid = $3
		  RETURNING `+userColumns,
		provider, owner, ownerid, activated,
	)
	return scanOne(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (user.User, error) {
	var u user.User
	err := s.Scan(&u.Ownerid, &u.Username, &u.Name, &u.Email, &u.IsAdmin, &u.IsStudent, &u.Activated)
	return u, err
}

func scanOne(row *sql.Row) (user.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, domain.NotFound("user not found")
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func filterArg(f params.Filter) any {
	switch f {
	case params.FilterOnly:
		return true
	case params.FilterExclude:
		return false
	default:
		return nil
	}
}

func orderClause(ordering string) string {
	dir := "ASC"
	field := ordering
	if strings.HasPrefix(field, "-") {
		dir = "DESC"
		field = field[1:]
	}

	col, ok := orderColumns[field]
	if !ok {
		return orderColumns[params.DefaultOrdering] + " ASC"
	}
	return col + " " + dir
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 || total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
