package port

import (
	"context"
	"io"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

type Service interface {
	// Accounts
	RegisterUser(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	VerifyUser(ctx context.Context, secret string) error
	LoginUser(ctx context.Context, email string, password string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, secret string, password string) error
	GetUser(ctx context.Context, userID uint64) (*domain.User, error)
	UpdateUser(ctx context.Context, userID uint64, patch *domain.UserPatch) (*domain.User, error)
	FilterUsers(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error)

	// Catalog
	CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]*domain.Shop, error)
	GetShop(ctx context.Context, name string) (*domain.Shop, error)
	DeleteShop(ctx context.Context, name string) error
	CreateBuyingAccount(ctx context.Context, account *domain.BuyingAccount) (*domain.BuyingAccount, error)
	ListBuyingAccounts(ctx context.Context) ([]*domain.BuyingAccount, error)
	GetRates(ctx context.Context) (*domain.Rates, error)
	UpdateRates(ctx context.Context, rates *domain.Rates) (*domain.Rates, error)

	// Orders
	CreateOrder(ctx context.Context, principal domain.Principal, order *domain.NewOrder) (*domain.OrderReport, error)
	GetOrder(ctx context.Context, orderID uint64) (*domain.OrderReport, error)
	UpdateOrder(ctx context.Context, orderID uint64, patch *domain.OrderPatch) (*domain.OrderReport, error)
	DeleteOrder(ctx context.Context, orderID uint64) error
	FilterOrders(ctx context.Context, filter *domain.OrderFilter) ([]*domain.OrderReport, error)

	// Products
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.ProductReport, error)
	GetProduct(ctx context.Context, productID uint64) (*domain.ProductReport, error)
	UpdateProduct(ctx context.Context, productID uint64, patch *domain.ProductPatch) (*domain.ProductReport, error)
	DeleteProduct(ctx context.Context, productID uint64) error
	FilterProducts(ctx context.Context, filter *domain.ProductFilter) ([]*domain.ProductReport, error)
	RecomputeAllStatuses(ctx context.Context) (int, error)

	// Lifecycle events
	RecordPurchase(ctx context.Context, event *domain.PurchaseEvent) (*domain.ShoppingReport, error)
	RecordReceipt(ctx context.Context, event *domain.ReceiptEvent) (*domain.Package, error)
	RecordDelivery(ctx context.Context, event *domain.DeliveryEvent) (*domain.DeliverReport, error)

	// Receips and packages
	GetShoppingReceip(ctx context.Context, receipID uint64) (*domain.ShoppingReport, error)
	FilterShoppingReceips(ctx context.Context, filter *domain.ShoppingReceipFilter) ([]*domain.ShoppingReport, error)
	CreatePackage(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	GetPackage(ctx context.Context, packageID uint64) (*domain.Package, error)
	FilterPackages(ctx context.Context, filter *domain.PackageFilter) ([]*domain.Package, error)
	CreateDeliverReceip(ctx context.Context, receip *domain.DeliverReceip) (*domain.DeliverReport, error)
	GetDeliverReceip(ctx context.Context, receipID uint64) (*domain.DeliverReport, error)
	FilterDeliverReceips(ctx context.Context, filter *domain.DeliverReceipFilter) ([]*domain.DeliverReport, error)

	// Evidence images
	UploadImage(ctx context.Context, name string, body io.Reader) (*domain.EvidenceImage, error)
	DeleteImage(ctx context.Context, publicID string) error
}
