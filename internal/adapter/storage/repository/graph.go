package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

// Loaders fetch a level of the aggregate graph with one query per child table.

func ids[T any](list []*T, id func(*T) uint64) []uint64 {
	out := make([]uint64, 0, len(list))
	for _, item := range list {
		out = append(out, id(item))
	}
	return out
}

func (r *Repository) loadProducts(ctx context.Context, where sq.Sqlizer) ([]*domain.Product, error) {
	products, err := collect(ctx, r, r.qb().Select(productColumns...).
		From("products").
		Where(where).
		OrderBy("id"), scanProduct)
	if err != nil {
		return nil, err
	}

	productIDs := ids(products, func(p *domain.Product) uint64 { return p.ID })
	byID := make(map[uint64]*domain.Product, len(products))
	for _, p := range products {
		p.Buyed = make([]*domain.ProductBuyed, 0)
		p.Received = make([]*domain.ProductReceived, 0)
		byID[p.ID] = p
	}

	buyed, err := collect(ctx, r, r.qb().Select(buyedColumns...).
		From("products_buyed").
		Where(sq.Eq{"product_id": productIDs}).
		OrderBy("id"), scanProductBuyed)
	if err != nil {
		return nil, err
	}
	for _, b := range buyed {
		byID[b.ProductID].Buyed = append(byID[b.ProductID].Buyed, b)
	}

	received, err := collect(ctx, r, r.qb().Select(receivedColumns...).
		From("products_received").
		Where(sq.Eq{"product_id": productIDs}).
		OrderBy("id"), scanProductReceived)
	if err != nil {
		return nil, err
	}
	for _, pr := range received {
		byID[pr.ProductID].Received = append(byID[pr.ProductID].Received, pr)
	}

	return products, nil
}

// loadReceived returns received records with their original product attached.
func (r *Repository) loadReceived(ctx context.Context, where sq.Sqlizer) ([]*domain.ProductReceived, error) {
	received, err := collect(ctx, r, r.qb().Select(receivedColumns...).
		From("products_received").
		Where(where).
		OrderBy("id"), scanProductReceived)
	if err != nil {
		return nil, err
	}

	products, err := r.loadProducts(ctx, sq.Eq{"id": ids(received,
		func(pr *domain.ProductReceived) uint64 { return pr.ProductID })})
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, pr := range received {
		pr.Product = byID[pr.ProductID]
	}
	return received, nil
}

func (r *Repository) loadDeliverReceips(ctx context.Context, where sq.Sqlizer) ([]*domain.DeliverReceip, error) {
	delivers, err := collect(ctx, r, r.qb().Select(deliverColumns...).
		From("deliver_receips").
		Where(where).
		OrderBy("id"), scanDeliverReceip)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*domain.DeliverReceip, len(delivers))
	for _, d := range delivers {
		d.Products = make([]*domain.ProductReceived, 0)
		byID[d.ID] = d
	}

	received, err := r.loadReceived(ctx, sq.Eq{"deliver_receip_id": ids(delivers,
		func(d *domain.DeliverReceip) uint64 { return d.ID })})
	if err != nil {
		return nil, err
	}
	for _, pr := range received {
		d := byID[*pr.DeliverReceipID]
		d.Products = append(d.Products, pr)
	}
	return delivers, nil
}

func (r *Repository) loadOrders(ctx context.Context, where sq.Sqlizer) ([]*domain.Order, error) {
	orders, err := collect(ctx, r, r.qb().Select(orderColumns...).
		From("orders").
		Where(where).
		OrderBy("id"), scanOrder)
	if err != nil {
		return nil, err
	}

	orderIDs := ids(orders, func(o *domain.Order) uint64 { return o.ID })
	byID := make(map[uint64]*domain.Order, len(orders))
	userIDs := make([]uint64, 0, 2*len(orders))
	for _, o := range orders {
		o.Products = make([]*domain.Product, 0)
		o.DeliverReceips = make([]*domain.DeliverReceip, 0)
		byID[o.ID] = o
		userIDs = append(userIDs, o.ClientID, o.SalesManagerID)
	}

	users, err := collect(ctx, r, r.qb().Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userIDs}), scanUser)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[uint64]*domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	products, err := r.loadProducts(ctx, sq.Eq{"order_id": orderIDs})
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		byID[p.OrderID].Products = append(byID[p.OrderID].Products, p)
	}

	delivers, err := r.loadDeliverReceips(ctx, sq.Eq{"order_id": orderIDs})
	if err != nil {
		return nil, err
	}
	for _, d := range delivers {
		byID[d.OrderID].DeliverReceips = append(byID[d.OrderID].DeliverReceips, d)
	}

	for _, o := range orders {
		o.Client = usersByID[o.ClientID]
		o.SalesManager = usersByID[o.SalesManagerID]
	}
	return orders, nil
}

func (r *Repository) loadShoppingReceips(ctx context.Context, where sq.Sqlizer) ([]*domain.ShoppingReceip, error) {
	receips, err := collect(ctx, r, r.qb().Select(receipColumns...).
		From("shopping_receips").
		Where(where).
		OrderBy("id"), scanShoppingReceip)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*domain.ShoppingReceip, len(receips))
	for _, sr := range receips {
		sr.Products = make([]*domain.ProductBuyed, 0)
		byID[sr.ID] = sr
	}

	buyed, err := collect(ctx, r, r.qb().Select(buyedColumns...).
		From("products_buyed").
		Where(sq.Eq{"shopping_receip_id": ids(receips,
			func(sr *domain.ShoppingReceip) uint64 { return sr.ID })}).
		OrderBy("id"), scanProductBuyed)
	if err != nil {
		return nil, err
	}
	for _, b := range buyed {
		byID[b.ShoppingReceipID].Products = append(byID[b.ShoppingReceipID].Products, b)
	}
	return receips, nil
}

func (r *Repository) loadPackages(ctx context.Context, where sq.Sqlizer) ([]*domain.Package, error) {
	packages, err := collect(ctx, r, r.qb().Select(packageColumns...).
		From("packages").
		Where(where).
		OrderBy("id"), scanPackage)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*domain.Package, len(packages))
	for _, p := range packages {
		p.Products = make([]*domain.ProductReceived, 0)
		byID[p.ID] = p
	}

	received, err := collect(ctx, r, r.qb().Select(receivedColumns...).
		From("products_received").
		Where(sq.Eq{"package_id": ids(packages, func(p *domain.Package) uint64 { return p.ID })}).
		OrderBy("id"), scanProductReceived)
	if err != nil {
		return nil, err
	}
	for _, pr := range received {
		byID[pr.PackageID].Products = append(byID[pr.PackageID].Products, pr)
	}
	return packages, nil
}
