package memory

import (
	"context"
	"sort"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

func (r *Repository) CreateShop(_ context.Context, shop *domain.Shop) (*domain.Shop, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.shops[shop.Name]; ok {
		return nil, domain.ErrConflictingData
	}
	s := *shop
	st.shops[s.Name] = s
	return &s, nil
}

func (r *Repository) ReadShop(_ context.Context, name string) (*domain.Shop, error) {
	st, done := r.enter()
	defer done()

	s, ok := st.shops[name]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &s, nil
}

func (r *Repository) ListShops(_ context.Context) ([]*domain.Shop, error) {
	st, done := r.enter()
	defer done()

	list := make([]*domain.Shop, 0, len(st.shops))
	for _, s := range st.shops {
		list = append(list, &s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *Repository) DeleteShop(_ context.Context, name string) error {
	st, done := r.enter()
	defer done()

	if _, ok := st.shops[name]; !ok {
		return domain.ErrDataNotFound
	}
	for _, p := range st.products {
		if p.ShopName == name {
			return domain.ErrConflictingData
		}
	}
	for _, sr := range st.receips {
		if sr.ShopName == name {
			return domain.ErrConflictingData
		}
	}
	delete(st.shops, name)
	return nil
}

func (r *Repository) CreateBuyingAccount(_ context.Context, account *domain.BuyingAccount) (*domain.BuyingAccount, error) {
	st, done := r.enter()
	defer done()

	a := *account
	a.ID = st.nextID()
	st.accounts[a.ID] = a
	return &a, nil
}

func (r *Repository) ReadBuyingAccount(_ context.Context, accountID uint64) (*domain.BuyingAccount, error) {
	st, done := r.enter()
	defer done()

	a, ok := st.accounts[accountID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &a, nil
}

func (r *Repository) ListBuyingAccounts(_ context.Context) ([]*domain.BuyingAccount, error) {
	st, done := r.enter()
	defer done()

	list := make([]*domain.BuyingAccount, 0, len(st.accounts))
	for _, id := range sortedIDs(st.accounts) {
		a := st.accounts[id]
		list = append(list, &a)
	}
	return list, nil
}

func (r *Repository) ReadRates(_ context.Context) (*domain.Rates, error) {
	st, done := r.enter()
	defer done()

	if st.rates == nil {
		return nil, domain.ErrDataNotFound
	}
	rates := *st.rates
	return &rates, nil
}

func (r *Repository) SaveRates(_ context.Context, rates *domain.Rates) (*domain.Rates, error) {
	st, done := r.enter()
	defer done()

	saved := *rates
	st.rates = &saved
	out := saved
	return &out, nil
}

func (r *Repository) CreateEvidenceImage(_ context.Context, image *domain.EvidenceImage) (*domain.EvidenceImage, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.images[image.PublicID]; ok {
		return nil, domain.ErrConflictingData
	}
	img := *image
	st.images[img.PublicID] = img
	return &img, nil
}

func (r *Repository) ReadEvidenceImage(_ context.Context, publicID string) (*domain.EvidenceImage, error) {
	st, done := r.enter()
	defer done()

	img, ok := st.images[publicID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return &img, nil
}

func (r *Repository) DeleteEvidenceImage(_ context.Context, publicID string) error {
	st, done := r.enter()
	defer done()

	if _, ok := st.images[publicID]; !ok {
		return domain.ErrDataNotFound
	}
	delete(st.images, publicID)
	return nil
}
