// Package repository implements port.Repository on PostgreSQL.
package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	db *storage.DB
	q  querier
}

var _ port.Repository = (*Repository)(nil)

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db, q: db.Pool}, nil
}

// Atomic opens a transaction, or a savepoint when already inside one.
func (r *Repository) Atomic(ctx context.Context, fn func(repo port.Repository) error) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		return fn(&Repository{db: r.db, q: tx})
	})
}

func (r *Repository) qb() sq.StatementBuilderType {
	return *r.db.QueryBuilder
}

func (r *Repository) exec(ctx context.Context, statement sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return r.q.Exec(ctx, sql, args...)
}

// execOne runs an update or delete that must touch exactly one row.
func (r *Repository) execOne(ctx context.Context, statement sq.Sqlizer) error {
	tag, err := r.exec(ctx, statement)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

func (r *Repository) queryRow(ctx context.Context, statement sq.Sqlizer) (pgx.Row, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	return r.q.QueryRow(ctx, sql, args...), nil
}

func (r *Repository) get(ctx context.Context, statement sq.Sqlizer, dest ...any) error {
	row, err := r.queryRow(ctx, statement)
	if err != nil {
		return err
	}
	return dbErr(row.Scan(dest...))
}

func (r *Repository) count(ctx context.Context, statement sq.Sqlizer) (int, error) {
	var n int
	if err := r.get(ctx, statement, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func collect[T any](ctx context.Context, r *Repository, statement sq.Sqlizer,
	scan func(row scanner) (*T, error)) ([]*T, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

var refFields = map[string]string{
	"orders_client_fk":             "client",
	"orders_sales_manager_fk":      "sales_manager",
	"products_order_fk":            "order",
	"products_shop_fk":             "shop",
	"shopping_receips_account_fk":  "shopping_account",
	"shopping_receips_shop_fk":     "shop_of_buy",
	"products_buyed_product_fk":    "original_product",
	"products_buyed_receip_fk":     "shoping_receip",
	"products_received_product_fk": "original_product",
	"products_received_package_fk": "package_where_was_send",
	"products_received_deliver_fk": "deliver_receip",
	"deliver_receips_order_fk":     "order",
}

// dbErr maps driver errors of reads and writes to domain errors.
func dbErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDataNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return domain.ErrConflictingData
		case pgerrcode.ForeignKeyViolation:
			field, ok := refFields[pgErr.ConstraintName]
			if !ok {
				field = pgErr.ConstraintName
			}
			return domain.RefError(field, domain.ErrDataNotFound)
		case pgerrcode.CheckViolation:
			return domain.NewValidationError(pgErr.ConstraintName, "value is out of range")
		}
	}
	return err
}

// deleteErr reports a delete blocked by rows that still reference the target.
func deleteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return domain.ErrConflictingData
	}
	return err
}
