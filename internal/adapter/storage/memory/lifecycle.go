package memory

import (
	"context"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

func (r *Repository) CreateShoppingReceip(_ context.Context, receip *domain.ShoppingReceip) (*domain.ShoppingReceip, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.accounts[receip.BuyingAccountID]; !ok {
		return nil, domain.RefError("shopping_account", domain.ErrDataNotFound)
	}
	if _, ok := st.shops[receip.ShopName]; !ok {
		return nil, domain.RefError("shop_of_buy", domain.ErrDataNotFound)
	}

	sr := *receip
	sr.Products = nil
	sr.ID = st.nextID()
	st.receips[sr.ID] = sr

	created, _ := st.shoppingReceip(sr.ID)
	return created, nil
}

func (r *Repository) ReadShoppingReceip(_ context.Context, receipID uint64) (*domain.ShoppingReceip, error) {
	st, done := r.enter()
	defer done()

	sr, ok := st.shoppingReceip(receipID)
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return sr, nil
}

func (r *Repository) ListShoppingReceips(_ context.Context,
	filter *domain.ShoppingReceipFilter) ([]*domain.ShoppingReceip, error) {
	st, done := r.enter()
	defer done()

	list := make([]*domain.ShoppingReceip, 0)
	for _, id := range sortedIDs(st.receips) {
		sr, _ := st.shoppingReceip(id)
		if filter != nil {
			ok, err := matchShoppingReceip(st, sr, filter)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		list = append(list, sr)
	}
	return list, nil
}

func matchShoppingReceip(st *state, sr *domain.ShoppingReceip, f *domain.ShoppingReceipFilter) (bool, error) {
	if !contains(f.ShoppingAccount, st.accounts[sr.BuyingAccountID].AccountName) ||
		!contains(f.ShopName, sr.ShopName) ||
		!contains(f.Status, sr.Status) ||
		!sameDay(f.BuyDate, sr.BuyDate) ||
		!inDays(f.InitialDate, f.FinalDate, sr.BuyDate) {
		return false, nil
	}
	if len(f.BuyedProducts) > 0 {
		found := false
		for _, b := range sr.Products {
			if has(f.BuyedProducts, b.ID) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	if f.MinCost == nil && f.MaxCost == nil {
		return true, nil
	}
	total, err := sr.TotalCostOfShopping()
	if err != nil {
		return false, err
	}
	return inRange(f.MinCost, f.MaxCost, total), nil
}

func (r *Repository) CreateProductBuyed(_ context.Context, buyed *domain.ProductBuyed) (*domain.ProductBuyed, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.products[buyed.ProductID]; !ok {
		return nil, domain.RefError("original_product", domain.ErrDataNotFound)
	}
	if _, ok := st.receips[buyed.ShoppingReceipID]; !ok {
		return nil, domain.RefError("shoping_receip", domain.ErrDataNotFound)
	}

	b := *buyed
	b.ID = st.nextID()
	st.buyed[b.ID] = b
	return &b, nil
}

func (r *Repository) CountProductsBuyed(_ context.Context, ids []uint64) (int, error) {
	st, done := r.enter()
	defer done()

	n := 0
	for id := range st.buyed {
		if has(ids, id) {
			n++
		}
	}
	return n, nil
}

func (r *Repository) CreatePackage(_ context.Context, pkg *domain.Package) (*domain.Package, error) {
	st, done := r.enter()
	defer done()

	p := *pkg
	p.Products = nil
	p.ID = st.nextID()
	st.packages[p.ID] = p

	created, _ := st.pkg(p.ID)
	return created, nil
}

func (r *Repository) ReadPackage(_ context.Context, packageID uint64) (*domain.Package, error) {
	st, done := r.enter()
	defer done()

	p, ok := st.pkg(packageID)
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return p, nil
}

func (r *Repository) ListPackages(_ context.Context, filter *domain.PackageFilter) ([]*domain.Package, error) {
	st, done := r.enter()
	defer done()

	list := make([]*domain.Package, 0)
	for _, id := range sortedIDs(st.packages) {
		p, _ := st.pkg(id)
		if filter != nil && !matchPackage(p, filter) {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

func matchPackage(p *domain.Package, f *domain.PackageFilter) bool {
	if !contains(f.AgencyName, p.AgencyName) ||
		!equal(f.TrackingNumber, p.TrackingNumber) ||
		!equal(f.Status, p.Status) {
		return false
	}
	if len(f.ContainedProducts) == 0 {
		return true
	}
	for _, pr := range p.Products {
		if has(f.ContainedProducts, pr.ID) {
			return true
		}
	}
	return false
}

func (r *Repository) CreateProductReceived(_ context.Context,
	received *domain.ProductReceived) (*domain.ProductReceived, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.products[received.ProductID]; !ok {
		return nil, domain.RefError("original_product", domain.ErrDataNotFound)
	}
	if _, ok := st.packages[received.PackageID]; !ok {
		return nil, domain.RefError("package_where_was_send", domain.ErrDataNotFound)
	}

	pr := *received
	pr.Product = nil
	pr.ID = st.nextID()
	st.received[pr.ID] = pr

	created, _ := st.productReceived(pr.ID)
	return created, nil
}

func (r *Repository) ReadProductReceived(_ context.Context, receivedID uint64) (*domain.ProductReceived, error) {
	st, done := r.enter()
	defer done()

	pr, ok := st.productReceived(receivedID)
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return pr, nil
}

func (r *Repository) UpdateProductReceived(_ context.Context,
	received *domain.ProductReceived) (*domain.ProductReceived, error) {
	st, done := r.enter()
	defer done()

	old, ok := st.received[received.ID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	if received.DeliverReceipID != nil {
		if _, ok := st.delivers[*received.DeliverReceipID]; !ok {
			return nil, domain.RefError("deliver_receip", domain.ErrDataNotFound)
		}
	}

	old.DeliverReceipID = received.DeliverReceipID
	old.AmountDelivered = received.AmountDelivered
	old.Observation = received.Observation
	st.received[old.ID] = old

	updated, _ := st.productReceived(old.ID)
	return updated, nil
}

func (r *Repository) CountProductsReceived(_ context.Context, ids []uint64) (int, error) {
	st, done := r.enter()
	defer done()

	n := 0
	for id := range st.received {
		if has(ids, id) {
			n++
		}
	}
	return n, nil
}

func (r *Repository) CreateDeliverReceip(_ context.Context, receip *domain.DeliverReceip) (*domain.DeliverReceip, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.orders[receip.OrderID]; !ok {
		return nil, domain.RefError("order", domain.ErrDataNotFound)
	}

	d := *receip
	d.Products = nil
	d.ID = st.nextID()
	st.delivers[d.ID] = d

	created, _ := st.deliverReceip(d.ID)
	return created, nil
}

func (r *Repository) ReadDeliverReceip(_ context.Context, receipID uint64) (*domain.DeliverReceip, error) {
	st, done := r.enter()
	defer done()

	d, ok := st.deliverReceip(receipID)
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return d, nil
}

func (r *Repository) ListDeliverReceips(_ context.Context,
	filter *domain.DeliverReceipFilter) ([]*domain.DeliverReceip, error) {
	st, done := r.enter()
	defer done()

	list := make([]*domain.DeliverReceip, 0)
	for _, id := range sortedIDs(st.delivers) {
		d, _ := st.deliverReceip(id)
		if filter != nil && !matchDeliverReceip(st, d, filter) {
			continue
		}
		list = append(list, d)
	}
	return list, nil
}

func matchDeliverReceip(st *state, d *domain.DeliverReceip, f *domain.DeliverReceipFilter) bool {
	if f.ClientID != nil && st.orders[d.OrderID].ClientID != *f.ClientID {
		return false
	}
	return equal(f.OrderID, d.OrderID) &&
		equal(f.Status, d.Status) &&
		sameDay(f.DeliverDate, d.DeliverDate) &&
		inDays(f.InitialDate, f.FinalDate, d.DeliverDate) &&
		inRange(f.MinWeight, f.MaxWeight, d.Weight)
}
