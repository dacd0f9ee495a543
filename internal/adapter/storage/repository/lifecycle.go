package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

var receipColumns = []string{"id", "buying_account_id", "shop_name", "status", "buy_date"}

func scanShoppingReceip(row scanner) (*domain.ShoppingReceip, error) {
	sr := domain.ShoppingReceip{}
	if err := row.Scan(&sr.ID, &sr.BuyingAccountID, &sr.ShopName, &sr.Status, &sr.BuyDate); err != nil {
		return nil, dbErr(err)
	}
	return &sr, nil
}

func (r *Repository) CreateShoppingReceip(ctx context.Context, receip *domain.ShoppingReceip) (*domain.ShoppingReceip, error) {
	statement := r.qb().Insert("shopping_receips").
		Columns("buying_account_id", "shop_name", "status", "buy_date").
		Values(receip.BuyingAccountID, receip.ShopName, receip.Status, receip.BuyDate).
		Suffix("RETURNING id")

	var id uint64
	if err := r.get(ctx, statement, &id); err != nil {
		return nil, err
	}
	return r.ReadShoppingReceip(ctx, id)
}

func (r *Repository) ReadShoppingReceip(ctx context.Context, receipID uint64) (*domain.ShoppingReceip, error) {
	list, err := r.loadShoppingReceips(ctx, sq.Eq{"id": receipID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrDataNotFound
	}
	return list[0], nil
}

const receipCostExpr = "(SELECT COALESCE(SUM(b.real_cost), 0) FROM products_buyed b " +
	"WHERE b.shopping_receip_id = shopping_receips.id)"

func (r *Repository) ListShoppingReceips(ctx context.Context,
	filter *domain.ShoppingReceipFilter) ([]*domain.ShoppingReceip, error) {
	where := sq.And{}
	if filter != nil {
		if filter.ShoppingAccount != nil {
			where = append(where, sq.Expr(
				"buying_account_id IN (SELECT id FROM buying_accounts WHERE account_name ILIKE ?)",
				"%"+*filter.ShoppingAccount+"%"))
		}
		if len(filter.BuyedProducts) > 0 {
			where = append(where, sq.Expr(
				"id IN (SELECT shopping_receip_id FROM products_buyed WHERE id = ANY(?))",
				filter.BuyedProducts))
		}
		if filter.MinCost != nil {
			where = append(where, sq.Expr(receipCostExpr+" >= ?", *filter.MinCost))
		}
		if filter.MaxCost != nil {
			where = append(where, sq.Expr(receipCostExpr+" <= ?", *filter.MaxCost))
		}
		where = append(where,
			ilike("shop_name", filter.ShopName),
			ilike("status", filter.Status),
			sameDay("buy_date", filter.BuyDate),
			inDays("buy_date", filter.InitialDate, filter.FinalDate),
		)
	}
	return r.loadShoppingReceips(ctx, where)
}

var buyedColumns = []string{
	"id", "product_id", "shopping_receip_id", "amount_buyed", "actual_cost",
	"shop_discount", "offer_discount", "real_cost", "buy_date", "observation",
}

func scanProductBuyed(row scanner) (*domain.ProductBuyed, error) {
	b := domain.ProductBuyed{}
	err := row.Scan(
		&b.ID,
		&b.ProductID,
		&b.ShoppingReceipID,
		&b.AmountBuyed,
		&b.ActualCost,
		&b.ShopDiscount,
		&b.OfferDiscount,
		&b.RealCost,
		&b.BuyDate,
		&b.Observation,
	)
	if err != nil {
		return nil, dbErr(err)
	}
	return &b, nil
}

func (r *Repository) CreateProductBuyed(ctx context.Context, buyed *domain.ProductBuyed) (*domain.ProductBuyed, error) {
	statement := r.qb().Insert("products_buyed").
		Columns(buyedColumns[1:]...).
		Values(buyed.ProductID, buyed.ShoppingReceipID, buyed.AmountBuyed, buyed.ActualCost,
			buyed.ShopDiscount, buyed.OfferDiscount, buyed.RealCost, buyed.BuyDate, buyed.Observation).
		Suffix("RETURNING " + columns(buyedColumns))

	row, err := r.queryRow(ctx, statement)
	if err != nil {
		return nil, err
	}
	return scanProductBuyed(row)
}

func (r *Repository) CountProductsBuyed(ctx context.Context, ids []uint64) (int, error) {
	return r.count(ctx, r.qb().Select("COUNT(*)").From("products_buyed").Where(sq.Eq{"id": ids}))
}

var packageColumns = []string{"id", "agency_name", "tracking_number", "status", "arrival_date"}

func scanPackage(row scanner) (*domain.Package, error) {
	p := domain.Package{}
	if err := row.Scan(&p.ID, &p.AgencyName, &p.TrackingNumber, &p.Status, &p.ArrivalDate); err != nil {
		return nil, dbErr(err)
	}
	return &p, nil
}

func (r *Repository) CreatePackage(ctx context.Context, pkg *domain.Package) (*domain.Package, error) {
	statement := r.qb().Insert("packages").
		Columns(packageColumns[1:]...).
		Values(pkg.AgencyName, pkg.TrackingNumber, pkg.Status, pkg.ArrivalDate).
		Suffix("RETURNING " + columns(packageColumns))

	row, err := r.queryRow(ctx, statement)
	if err != nil {
		return nil, err
	}
	created, err := scanPackage(row)
	if err != nil {
		return nil, err
	}
	created.Products = make([]*domain.ProductReceived, 0)
	return created, nil
}

func (r *Repository) ReadPackage(ctx context.Context, packageID uint64) (*domain.Package, error) {
	list, err := r.loadPackages(ctx, sq.Eq{"id": packageID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrDataNotFound
	}
	return list[0], nil
}

func (r *Repository) ListPackages(ctx context.Context, filter *domain.PackageFilter) ([]*domain.Package, error) {
	where := sq.And{}
	if filter != nil {
		if len(filter.ContainedProducts) > 0 {
			where = append(where, sq.Expr(
				"id IN (SELECT package_id FROM products_received WHERE id = ANY(?))",
				filter.ContainedProducts))
		}
		where = append(where,
			ilike("agency_name", filter.AgencyName),
			eq("tracking_number", filter.TrackingNumber),
			eq("status", filter.Status),
		)
	}
	return r.loadPackages(ctx, where)
}

var receivedColumns = []string{
	"id", "product_id", "package_id", "deliver_receip_id", "amount_received",
	"amount_delivered", "observation", "reception_date",
}

func scanProductReceived(row scanner) (*domain.ProductReceived, error) {
	pr := domain.ProductReceived{}
	err := row.Scan(
		&pr.ID,
		&pr.ProductID,
		&pr.PackageID,
		&pr.DeliverReceipID,
		&pr.AmountReceived,
		&pr.AmountDelivered,
		&pr.Observation,
		&pr.ReceptionDate,
	)
	if err != nil {
		return nil, dbErr(err)
	}
	return &pr, nil
}

func (r *Repository) CreateProductReceived(ctx context.Context,
	received *domain.ProductReceived) (*domain.ProductReceived, error) {
	statement := r.qb().Insert("products_received").
		Columns(receivedColumns[1:]...).
		Values(received.ProductID, received.PackageID, received.DeliverReceipID, received.AmountReceived,
			received.AmountDelivered, received.Observation, received.ReceptionDate).
		Suffix("RETURNING id")

	var id uint64
	if err := r.get(ctx, statement, &id); err != nil {
		return nil, err
	}
	return r.ReadProductReceived(ctx, id)
}

func (r *Repository) ReadProductReceived(ctx context.Context, receivedID uint64) (*domain.ProductReceived, error) {
	list, err := r.loadReceived(ctx, sq.Eq{"id": receivedID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrDataNotFound
	}
	return list[0], nil
}

// UpdateProductReceived changes only the delivery link, the delivered amount and the observation.
func (r *Repository) UpdateProductReceived(ctx context.Context,
	received *domain.ProductReceived) (*domain.ProductReceived, error) {
	statement := r.qb().Update("products_received").
		Set("deliver_receip_id", received.DeliverReceipID).
		Set("amount_delivered", received.AmountDelivered).
		Set("observation", received.Observation).
		Where(sq.Eq{"id": received.ID})

	if err := r.execOne(ctx, statement); err != nil {
		return nil, dbErr(err)
	}
	return r.ReadProductReceived(ctx, received.ID)
}

func (r *Repository) CountProductsReceived(ctx context.Context, ids []uint64) (int, error) {
	return r.count(ctx, r.qb().Select("COUNT(*)").From("products_received").Where(sq.Eq{"id": ids}))
}

var deliverColumns = []string{"id", "order_id", "weight", "status", "deliver_date", "picture"}

func scanDeliverReceip(row scanner) (*domain.DeliverReceip, error) {
	d := domain.DeliverReceip{}
	if err := row.Scan(&d.ID, &d.OrderID, &d.Weight, &d.Status, &d.DeliverDate, &d.Picture); err != nil {
		return nil, dbErr(err)
	}
	return &d, nil
}

func (r *Repository) CreateDeliverReceip(ctx context.Context, receip *domain.DeliverReceip) (*domain.DeliverReceip, error) {
	statement := r.qb().Insert("deliver_receips").
		Columns(deliverColumns[1:]...).
		Values(receip.OrderID, receip.Weight, receip.Status, receip.DeliverDate, receip.Picture).
		Suffix("RETURNING id")

	var id uint64
	if err := r.get(ctx, statement, &id); err != nil {
		return nil, err
	}
	return r.ReadDeliverReceip(ctx, id)
}

func (r *Repository) ReadDeliverReceip(ctx context.Context, receipID uint64) (*domain.DeliverReceip, error) {
	list, err := r.loadDeliverReceips(ctx, sq.Eq{"id": receipID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrDataNotFound
	}
	return list[0], nil
}

func (r *Repository) ListDeliverReceips(ctx context.Context,
	filter *domain.DeliverReceipFilter) ([]*domain.DeliverReceip, error) {
	where := sq.And{}
	if filter != nil {
		if filter.ClientID != nil {
			where = append(where, sq.Expr("order_id IN (SELECT id FROM orders WHERE client_id = ?)", *filter.ClientID))
		}
		where = append(where,
			eq("order_id", filter.OrderID),
			eq("status", filter.Status),
			sameDay("deliver_date", filter.DeliverDate),
			inDays("deliver_date", filter.InitialDate, filter.FinalDate),
			between("weight", filter.MinWeight, filter.MaxWeight),
		)
	}
	return r.loadDeliverReceips(ctx, where)
}
