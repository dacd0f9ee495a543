package memory

import (
	"context"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

func (r *Repository) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.users[order.ClientID]; !ok {
		return nil, domain.RefError("client", domain.ErrDataNotFound)
	}
	if _, ok := st.users[order.SalesManagerID]; !ok {
		return nil, domain.RefError("sales_manager", domain.ErrDataNotFound)
	}

	o := flatOrder(order)
	o.ID = st.nextID()
	st.orders[o.ID] = o

	created, _ := st.order(o.ID)
	return created, nil
}

func (r *Repository) ReadOrder(_ context.Context, orderID uint64) (*domain.Order, error) {
	st, done := r.enter()
	defer done()

	o, ok := st.order(orderID)
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return o, nil
}

func (r *Repository) UpdateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.orders[order.ID]; !ok {
		return nil, domain.ErrDataNotFound
	}
	if _, ok := st.users[order.ClientID]; !ok {
		return nil, domain.RefError("client", domain.ErrDataNotFound)
	}
	st.orders[order.ID] = flatOrder(order)

	updated, _ := st.order(order.ID)
	return updated, nil
}

func (r *Repository) DeleteOrder(_ context.Context, orderID uint64) error {
	st, done := r.enter()
	defer done()

	if _, ok := st.orders[orderID]; !ok {
		return domain.ErrDataNotFound
	}
	for pid, p := range st.products {
		if p.OrderID == orderID {
			st.deleteProduct(pid)
		}
	}
	for did, d := range st.delivers {
		if d.OrderID != orderID {
			continue
		}
		for rid, pr := range st.received {
			if pr.DeliverReceipID != nil && *pr.DeliverReceipID == did {
				pr.DeliverReceipID = nil
				st.received[rid] = pr
			}
		}
		delete(st.delivers, did)
	}
	delete(st.orders, orderID)
	return nil
}

func (r *Repository) ListOrders(_ context.Context, filter *domain.OrderFilter) ([]*domain.Order, error) {
	st, done := r.enter()
	defer done()

	list := make([]*domain.Order, 0)
	for _, id := range sortedIDs(st.orders) {
		o, _ := st.order(id)
		if filter != nil {
			ok, err := matchOrder(o, filter)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		list = append(list, o)
	}
	return list, nil
}

func matchOrder(o *domain.Order, f *domain.OrderFilter) (bool, error) {
	clientName, managerName := "", ""
	if o.Client != nil {
		clientName = o.Client.Name
	}
	if o.SalesManager != nil {
		managerName = o.SalesManager.Name
	}
	if !contains(f.Client, clientName) ||
		!contains(f.SalesManager, managerName) ||
		!equal(f.Status, o.Status) ||
		!inDays(f.InitialDate, f.FinalDate, o.CreatedAt) {
		return false, nil
	}
	if f.MinCost == nil && f.MaxCost == nil {
		return true, nil
	}
	total, err := o.TotalCost()
	if err != nil {
		return false, err
	}
	return inRange(f.MinCost, f.MaxCost, total), nil
}

func flatOrder(order *domain.Order) domain.Order {
	o := *order
	o.Client = nil
	o.SalesManager = nil
	o.Products = nil
	o.DeliverReceips = nil
	return o
}

func (r *Repository) CreateProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	st, done := r.enter()
	defer done()

	if _, ok := st.orders[product.OrderID]; !ok {
		return nil, domain.RefError("order", domain.ErrDataNotFound)
	}
	if _, ok := st.shops[product.ShopName]; !ok {
		return nil, domain.RefError("shop", domain.ErrDataNotFound)
	}

	p := flatProduct(product)
	p.ID = st.nextID()
	st.products[p.ID] = p

	created, _ := st.product(p.ID)
	return created, nil
}

func (r *Repository) ReadProduct(_ context.Context, productID uint64) (*domain.Product, error) {
	st, done := r.enter()
	defer done()

	p, ok := st.product(productID)
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return p, nil
}

func (r *Repository) UpdateProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	st, done := r.enter()
	defer done()

	old, ok := st.products[product.ID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	if _, ok := st.shops[product.ShopName]; !ok {
		return nil, domain.RefError("shop", domain.ErrDataNotFound)
	}

	p := flatProduct(product)
	p.OrderID = old.OrderID
	p.Status = old.Status
	st.products[p.ID] = p

	updated, _ := st.product(p.ID)
	return updated, nil
}

func (r *Repository) DeleteProduct(_ context.Context, productID uint64) error {
	st, done := r.enter()
	defer done()

	if _, ok := st.products[productID]; !ok {
		return domain.ErrDataNotFound
	}
	st.deleteProduct(productID)
	return nil
}

func (r *Repository) ListProducts(_ context.Context, filter *domain.ProductFilter) ([]*domain.Product, error) {
	st, done := r.enter()
	defer done()

	list := make([]*domain.Product, 0)
	for _, id := range sortedIDs(st.products) {
		p, _ := st.product(id)
		if filter != nil && !matchProduct(st, p, filter) {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

func matchProduct(st *state, p *domain.Product, f *domain.ProductFilter) bool {
	if f.ClientID != nil && st.orders[p.OrderID].ClientID != *f.ClientID {
		return false
	}
	return contains(f.Name, p.Name) &&
		contains(f.Description, p.Description) &&
		contains(f.Category, p.Category) &&
		equal(f.SKU, p.SKU) &&
		equal(f.ShopName, p.ShopName) &&
		equal(f.Status, p.Status) &&
		equal(f.OrderID, p.OrderID) &&
		inRange(f.MinCost, f.MaxCost, p.ShopCost)
}

func (r *Repository) ProductCounters(_ context.Context, productID uint64) (domain.Counters, error) {
	st, done := r.enter()
	defer done()

	p, ok := st.product(productID)
	if !ok {
		return domain.Counters{}, domain.ErrDataNotFound
	}
	return p.Counters(), nil
}

func (r *Repository) UpdateProductStatus(_ context.Context, productID uint64, status domain.ProductStatus) error {
	st, done := r.enter()
	defer done()

	p, ok := st.products[productID]
	if !ok {
		return domain.ErrDataNotFound
	}
	p.Status = status
	st.products[productID] = p
	return nil
}

func flatProduct(product *domain.Product) domain.Product {
	p := *product
	p.Buyed = nil
	p.Received = nil
	return p
}
