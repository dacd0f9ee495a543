package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

var userColumns = []string{
	"id", "email", "name", "last_name", "home_address", "phone_number",
	"capabilities", "agent_profit", "is_active", "is_verified", "sent_verification_email",
	"verification_secret", "password_secret", "password", "date_joined",
}

func scanUser(row scanner) (*domain.User, error) {
	user := domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.LastName,
		&user.HomeAddress,
		&user.PhoneNumber,
		&user.Capabilities,
		&user.AgentProfit,
		&user.IsActive,
		&user.IsVerified,
		&user.SentVerificationEmail,
		&user.VerificationSecret,
		&user.PasswordSecret,
		&user.Password,
		&user.DateJoined,
	)
	if err != nil {
		return nil, dbErr(err)
	}
	return &user, nil
}

func userValues(user *domain.User) map[string]any {
	return map[string]any{
		"email":                   user.Email,
		"name":                    user.Name,
		"last_name":               user.LastName,
		"home_address":            user.HomeAddress,
		"phone_number":            user.PhoneNumber,
		"capabilities":            int32(user.Capabilities),
		"agent_profit":            user.AgentProfit,
		"is_active":               user.IsActive,
		"is_verified":             user.IsVerified,
		"sent_verification_email": user.SentVerificationEmail,
		"verification_secret":     user.VerificationSecret,
		"password_secret":         user.PasswordSecret,
		"password":                user.Password,
		"date_joined":             user.DateJoined,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.qb().Insert("users").
		SetMap(userValues(user)).
		Suffix("RETURNING " + columns(userColumns))

	row, err := r.queryRow(ctx, statement)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.qb().Update("users").
		SetMap(userValues(user)).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING " + columns(userColumns))

	row, err := r.queryRow(ctx, statement)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *Repository) ReadUser(ctx context.Context, userID uint64) (*domain.User, error) {
	return r.findUser(ctx, sq.Eq{"id": userID})
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, sq.Expr("LOWER(email) = LOWER(?)", email))
}

func (r *Repository) GetUserByVerificationSecret(ctx context.Context, secret string) (*domain.User, error) {
	if secret == "" {
		return nil, domain.ErrDataNotFound
	}
	return r.findUser(ctx, sq.Eq{"verification_secret": secret})
}

func (r *Repository) GetUserByPasswordSecret(ctx context.Context, secret string) (*domain.User, error) {
	if secret == "" {
		return nil, domain.ErrDataNotFound
	}
	return r.findUser(ctx, sq.Eq{"password_secret": secret})
}

func (r *Repository) findUser(ctx context.Context, where sq.Sqlizer) (*domain.User, error) {
	statement := r.qb().Select(userColumns...).
		From("users").
		Where(where).
		OrderBy("id").
		Limit(1)

	row, err := r.queryRow(ctx, statement)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *Repository) ListUsers(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error) {
	statement := r.qb().Select(userColumns...).
		From("users").
		OrderBy("id")

	if filter != nil {
		statement = statement.Where(sq.And{
			ilike("name", filter.Name),
			ilike("home_address", filter.HomeAddress),
			eq("email", filter.Email),
			eq("last_name", filter.LastName),
		})
		if filter.IsAgent != nil {
			isAgent := sq.Expr("capabilities & ? <> 0", int32(domain.CapAgent))
			if *filter.IsAgent {
				statement = statement.Where(isAgent)
			} else {
				statement = statement.Where(sq.Expr("capabilities & ? = 0", int32(domain.CapAgent)))
			}
		}
	}

	return collect(ctx, r, statement, scanUser)
}
