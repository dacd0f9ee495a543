package port

import (
	"context"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

// Repository is the persistence port. Read methods of aggregates (orders,
// products, receips, packages) return them with their child records loaded.
type Repository interface {
	// Atomic runs fn inside one transaction. Every write made through the
	// repository passed to fn is committed when fn returns nil and discarded otherwise.
	Atomic(ctx context.Context, fn func(repo Repository) error) error

	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	ReadUser(ctx context.Context, userID uint64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByVerificationSecret(ctx context.Context, secret string) (*domain.User, error)
	GetUserByPasswordSecret(ctx context.Context, secret string) (*domain.User, error)
	ListUsers(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error)

	// Catalog
	CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	ReadShop(ctx context.Context, name string) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]*domain.Shop, error)
	DeleteShop(ctx context.Context, name string) error
	CreateBuyingAccount(ctx context.Context, account *domain.BuyingAccount) (*domain.BuyingAccount, error)
	ReadBuyingAccount(ctx context.Context, accountID uint64) (*domain.BuyingAccount, error)
	ListBuyingAccounts(ctx context.Context) ([]*domain.BuyingAccount, error)
	ReadRates(ctx context.Context) (*domain.Rates, error)
	SaveRates(ctx context.Context, rates *domain.Rates) (*domain.Rates, error)

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID uint64) error
	ListOrders(ctx context.Context, filter *domain.OrderFilter) ([]*domain.Order, error)

	// Product
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID uint64) error
	ListProducts(ctx context.Context, filter *domain.ProductFilter) ([]*domain.Product, error)
	ProductCounters(ctx context.Context, productID uint64) (domain.Counters, error)
	UpdateProductStatus(ctx context.Context, productID uint64, status domain.ProductStatus) error

	// Purchase
	CreateShoppingReceip(ctx context.Context, receip *domain.ShoppingReceip) (*domain.ShoppingReceip, error)
	ReadShoppingReceip(ctx context.Context, receipID uint64) (*domain.ShoppingReceip, error)
	ListShoppingReceips(ctx context.Context, filter *domain.ShoppingReceipFilter) ([]*domain.ShoppingReceip, error)
	CreateProductBuyed(ctx context.Context, buyed *domain.ProductBuyed) (*domain.ProductBuyed, error)
	CountProductsBuyed(ctx context.Context, ids []uint64) (int, error)

	// Receipt
	CreatePackage(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	ReadPackage(ctx context.Context, packageID uint64) (*domain.Package, error)
	ListPackages(ctx context.Context, filter *domain.PackageFilter) ([]*domain.Package, error)
	CreateProductReceived(ctx context.Context, received *domain.ProductReceived) (*domain.ProductReceived, error)
	ReadProductReceived(ctx context.Context, receivedID uint64) (*domain.ProductReceived, error)
	UpdateProductReceived(ctx context.Context, received *domain.ProductReceived) (*domain.ProductReceived, error)
	CountProductsReceived(ctx context.Context, ids []uint64) (int, error)

	// Delivery
	CreateDeliverReceip(ctx context.Context, receip *domain.DeliverReceip) (*domain.DeliverReceip, error)
	ReadDeliverReceip(ctx context.Context, receipID uint64) (*domain.DeliverReceip, error)
	ListDeliverReceips(ctx context.Context, filter *domain.DeliverReceipFilter) ([]*domain.DeliverReceip, error)

	// Evidence images
	CreateEvidenceImage(ctx context.Context, image *domain.EvidenceImage) (*domain.EvidenceImage, error)
	ReadEvidenceImage(ctx context.Context, publicID string) (*domain.EvidenceImage, error)
	DeleteEvidenceImage(ctx context.Context, publicID string) error
}
