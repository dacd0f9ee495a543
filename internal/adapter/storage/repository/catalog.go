package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

func (r *Repository) CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	statement := r.qb().Insert("shops").
		Columns("name", "link").
		Values(shop.Name, shop.Link)

	if _, err := r.exec(ctx, statement); err != nil {
		return nil, dbErr(err)
	}
	created := *shop
	return &created, nil
}

func (r *Repository) ReadShop(ctx context.Context, name string) (*domain.Shop, error) {
	shop := domain.Shop{}
	err := r.get(ctx, r.qb().Select("name", "link").From("shops").Where(sq.Eq{"name": name}),
		&shop.Name, &shop.Link)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *Repository) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	return collect(ctx, r, r.qb().Select("name", "link").From("shops").OrderBy("name"),
		func(row scanner) (*domain.Shop, error) {
			shop := domain.Shop{}
			if err := row.Scan(&shop.Name, &shop.Link); err != nil {
				return nil, err
			}
			return &shop, nil
		})
}

func (r *Repository) DeleteShop(ctx context.Context, name string) error {
	return deleteErr(r.execOne(ctx, r.qb().Delete("shops").Where(sq.Eq{"name": name})))
}

func scanBuyingAccount(row scanner) (*domain.BuyingAccount, error) {
	account := domain.BuyingAccount{}
	if err := row.Scan(&account.ID, &account.AccountName); err != nil {
		return nil, dbErr(err)
	}
	return &account, nil
}

func (r *Repository) CreateBuyingAccount(ctx context.Context, account *domain.BuyingAccount) (*domain.BuyingAccount, error) {
	statement := r.qb().Insert("buying_accounts").
		Columns("account_name").
		Values(account.AccountName).
		Suffix("RETURNING id, account_name")

	row, err := r.queryRow(ctx, statement)
	if err != nil {
		return nil, err
	}
	return scanBuyingAccount(row)
}

func (r *Repository) ReadBuyingAccount(ctx context.Context, accountID uint64) (*domain.BuyingAccount, error) {
	row, err := r.queryRow(ctx, r.qb().Select("id", "account_name").
		From("buying_accounts").
		Where(sq.Eq{"id": accountID}))
	if err != nil {
		return nil, err
	}
	return scanBuyingAccount(row)
}

func (r *Repository) ListBuyingAccounts(ctx context.Context) ([]*domain.BuyingAccount, error) {
	return collect(ctx, r, r.qb().Select("id", "account_name").From("buying_accounts").OrderBy("id"),
		scanBuyingAccount)
}

func (r *Repository) ReadRates(ctx context.Context) (*domain.Rates, error) {
	rates := domain.Rates{}
	err := r.get(ctx, r.qb().Select("change_rate", "cost_per_pound").
		From("common_information").
		Where(sq.Eq{"id": 1}),
		&rates.ChangeRate, &rates.CostPerPound)
	if err != nil {
		return nil, err
	}
	return &rates, nil
}

// SaveRates upserts the single common_information row.
func (r *Repository) SaveRates(ctx context.Context, rates *domain.Rates) (*domain.Rates, error) {
	statement := r.qb().Insert("common_information").
		Columns("id", "change_rate", "cost_per_pound").
		Values(1, rates.ChangeRate, rates.CostPerPound).
		Suffix("ON CONFLICT (id) DO UPDATE SET change_rate = EXCLUDED.change_rate, " +
			"cost_per_pound = EXCLUDED.cost_per_pound RETURNING change_rate, cost_per_pound")

	saved := domain.Rates{}
	if err := r.get(ctx, statement, &saved.ChangeRate, &saved.CostPerPound); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) CreateEvidenceImage(ctx context.Context, image *domain.EvidenceImage) (*domain.EvidenceImage, error) {
	statement := r.qb().Insert("evidence_images").
		Columns("public_id", "url").
		Values(image.PublicID, image.URL)

	if _, err := r.exec(ctx, statement); err != nil {
		return nil, dbErr(err)
	}
	created := *image
	return &created, nil
}

func (r *Repository) ReadEvidenceImage(ctx context.Context, publicID string) (*domain.EvidenceImage, error) {
	image := domain.EvidenceImage{}
	err := r.get(ctx, r.qb().Select("public_id", "url").
		From("evidence_images").
		Where(sq.Eq{"public_id": publicID}),
		&image.PublicID, &image.URL)
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *Repository) DeleteEvidenceImage(ctx context.Context, publicID string) error {
	return r.execOne(ctx, r.qb().Delete("evidence_images").Where(sq.Eq{"public_id": publicID}))
}
