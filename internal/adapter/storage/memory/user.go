package memory

import (
	"context"
	"strings"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

func (r *Repository) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	st, done := r.enter()
	defer done()

	for _, u := range st.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrConflictingData
		}
	}

	u := *user
	u.ID = st.nextID()
	st.users[u.ID] = u
	return &u, nil
}

func (r *Repository) UpdateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.users[user.ID]; !ok {
		return nil, domain.ErrDataNotFound
	}
	u := *user
	st.users[u.ID] = u
	return &u, nil
}

func (r *Repository) ReadUser(_ context.Context, userID uint64) (*domain.User, error) {
	st, done := r.enter()
	defer done()

	u, ok := st.users[userID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &u, nil
}

func (r *Repository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findUser(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *Repository) GetUserByVerificationSecret(_ context.Context, secret string) (*domain.User, error) {
	return r.findUser(func(u *domain.User) bool { return secret != "" && u.VerificationSecret == secret })
}

func (r *Repository) GetUserByPasswordSecret(_ context.Context, secret string) (*domain.User, error) {
	return r.findUser(func(u *domain.User) bool { return secret != "" && u.PasswordSecret == secret })
}

func (r *Repository) findUser(match func(u *domain.User) bool) (*domain.User, error) {
	st, done := r.enter()
	defer done()

	for _, id := range sortedIDs(st.users) {
		u := st.users[id]
		if match(&u) {
			return &u, nil
		}
	}
	return nil, domain.ErrDataNotFound
}

func (r *Repository) ListUsers(_ context.Context, filter *domain.UserFilter) ([]*domain.User, error) {
	st, done := r.enter()
	defer done()

	list := make([]*domain.User, 0)
	for _, id := range sortedIDs(st.users) {
		u := st.users[id]
		if filter != nil && !matchUser(&u, filter) {
			continue
		}
		list = append(list, &u)
	}
	return list, nil
}

func matchUser(u *domain.User, f *domain.UserFilter) bool {
	return contains(f.Name, u.Name) &&
		contains(f.HomeAddress, u.HomeAddress) &&
		equal(f.Email, u.Email) &&
		equal(f.LastName, u.LastName) &&
		(f.IsAgent == nil || *f.IsAgent == u.Capabilities.Has(domain.CapAgent))
}
