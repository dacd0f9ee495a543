package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

var orderColumns = []string{"id", "client_id", "sales_manager_id", "status", "pay_status", "created_at"}

func scanOrder(row scanner) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.ClientID,
		&order.SalesManagerID,
		&order.Status,
		&order.PayStatus,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, dbErr(err)
	}
	return &order, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := r.qb().Insert("orders").
		Columns("client_id", "sales_manager_id", "status", "pay_status", "created_at").
		Values(order.ClientID, order.SalesManagerID, order.Status, order.PayStatus, order.CreatedAt).
		Suffix("RETURNING id")

	var id uint64
	if err := r.get(ctx, statement, &id); err != nil {
		return nil, err
	}
	return r.ReadOrder(ctx, id)
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	list, err := r.loadOrders(ctx, sq.Eq{"id": orderID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrDataNotFound
	}
	return list[0], nil
}

func (r *Repository) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := r.qb().Update("orders").
		Set("client_id", order.ClientID).
		Set("sales_manager_id", order.SalesManagerID).
		Set("status", order.Status).
		Set("pay_status", order.PayStatus).
		Where(sq.Eq{"id": order.ID})

	if err := r.execOne(ctx, statement); err != nil {
		return nil, dbErr(err)
	}
	return r.ReadOrder(ctx, order.ID)
}

// DeleteOrder relies on ON DELETE CASCADE for products, their history and deliver receips.
func (r *Repository) DeleteOrder(ctx context.Context, orderID uint64) error {
	return deleteErr(r.execOne(ctx, r.qb().Delete("orders").Where(sq.Eq{"id": orderID})))
}

const orderCostExpr = "(SELECT COALESCE(SUM(p.total_cost), 0) FROM products p WHERE p.order_id = orders.id)"

func (r *Repository) ListOrders(ctx context.Context, filter *domain.OrderFilter) ([]*domain.Order, error) {
	where := sq.And{}
	if filter != nil {
		if filter.Client != nil {
			where = append(where, sq.Expr("client_id IN (SELECT id FROM users WHERE name ILIKE ?)",
				"%"+*filter.Client+"%"))
		}
		if filter.SalesManager != nil {
			where = append(where, sq.Expr("sales_manager_id IN (SELECT id FROM users WHERE name ILIKE ?)",
				"%"+*filter.SalesManager+"%"))
		}
		if filter.MinCost != nil {
			where = append(where, sq.Expr(orderCostExpr+" >= ?", *filter.MinCost))
		}
		if filter.MaxCost != nil {
			where = append(where, sq.Expr(orderCostExpr+" <= ?", *filter.MaxCost))
		}
		where = append(where,
			eq("status", filter.Status),
			inDays("created_at", filter.InitialDate, filter.FinalDate),
		)
	}
	return r.loadOrders(ctx, where)
}

var productColumns = []string{
	"id", "order_id", "shop_name", "sku", "name", "link", "description", "observation",
	"category", "picture", "amount_requested", "shop_cost", "shop_delivery_cost",
	"shop_taxes", "own_taxes", "added_taxes", "total_cost", "status",
}

func scanProduct(row scanner) (*domain.Product, error) {
	p := domain.Product{}
	err := row.Scan(
		&p.ID,
		&p.OrderID,
		&p.ShopName,
		&p.SKU,
		&p.Name,
		&p.Link,
		&p.Description,
		&p.Observation,
		&p.Category,
		&p.Picture,
		&p.AmountRequested,
		&p.ShopCost,
		&p.ShopDeliveryCost,
		&p.ShopTaxes,
		&p.OwnTaxes,
		&p.AddedTaxes,
		&p.TotalCost,
		&p.Status,
	)
	if err != nil {
		return nil, dbErr(err)
	}
	return &p, nil
}

// productValues holds the columns a product update may change.
func productValues(p *domain.Product) map[string]any {
	return map[string]any{
		"shop_name":          p.ShopName,
		"sku":                p.SKU,
		"name":               p.Name,
		"link":               p.Link,
		"description":        p.Description,
		"observation":        p.Observation,
		"category":           p.Category,
		"picture":            p.Picture,
		"amount_requested":   p.AmountRequested,
		"shop_cost":          p.ShopCost,
		"shop_delivery_cost": p.ShopDeliveryCost,
		"shop_taxes":         p.ShopTaxes,
		"own_taxes":          p.OwnTaxes,
		"added_taxes":        p.AddedTaxes,
		"total_cost":         p.TotalCost,
	}
}

func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	values := productValues(product)
	values["order_id"] = product.OrderID
	values["status"] = product.Status

	var id uint64
	if err := r.get(ctx, r.qb().Insert("products").SetMap(values).Suffix("RETURNING id"), &id); err != nil {
		return nil, err
	}
	return r.ReadProduct(ctx, id)
}

func (r *Repository) ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	list, err := r.loadProducts(ctx, sq.Eq{"id": productID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrDataNotFound
	}
	return list[0], nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	statement := r.qb().Update("products").
		SetMap(productValues(product)).
		Where(sq.Eq{"id": product.ID})

	if err := r.execOne(ctx, statement); err != nil {
		return nil, dbErr(err)
	}
	return r.ReadProduct(ctx, product.ID)
}

func (r *Repository) DeleteProduct(ctx context.Context, productID uint64) error {
	return deleteErr(r.execOne(ctx, r.qb().Delete("products").Where(sq.Eq{"id": productID})))
}

func (r *Repository) ListProducts(ctx context.Context, filter *domain.ProductFilter) ([]*domain.Product, error) {
	where := sq.And{}
	if filter != nil {
		if filter.ClientID != nil {
			where = append(where, sq.Expr("order_id IN (SELECT id FROM orders WHERE client_id = ?)", *filter.ClientID))
		}
		where = append(where,
			ilike("name", filter.Name),
			ilike("description", filter.Description),
			ilike("category", filter.Category),
			eq("sku", filter.SKU),
			eq("shop_name", filter.ShopName),
			eq("status", filter.Status),
			eq("order_id", filter.OrderID),
			between("shop_cost", filter.MinCost, filter.MaxCost),
		)
	}
	return r.loadProducts(ctx, where)
}

// ProductCounters sums the lifecycle amounts of a product in one query.
func (r *Repository) ProductCounters(ctx context.Context, productID uint64) (domain.Counters, error) {
	statement := r.qb().Select(
		"(SELECT COALESCE(SUM(amount_buyed), 0)::BIGINT FROM products_buyed WHERE product_id = products.id)",
		"(SELECT COALESCE(SUM(amount_received), 0)::BIGINT FROM products_received WHERE product_id = products.id)",
		"(SELECT COALESCE(SUM(amount_delivered), 0)::BIGINT FROM products_received WHERE product_id = products.id)",
	).From("products").Where(sq.Eq{"id": productID})

	c := domain.Counters{}
	if err := r.get(ctx, statement, &c.Bought, &c.Received, &c.Delivered); err != nil {
		return domain.Counters{}, err
	}
	return c, nil
}

func (r *Repository) UpdateProductStatus(ctx context.Context, productID uint64, status domain.ProductStatus) error {
	return r.execOne(ctx, r.qb().Update("products").
		Set("status", status).
		Where(sq.Eq{"id": productID}))
}
