package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/MikeRez0/shoptrack/internal/adapter/config"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage/repository"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRepo connects to TEST_DATABASE_URI and starts from an empty schema.
func newRepo(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	ctx := context.Background()
	db, err := storage.NewDBStorage(ctx, &config.Database{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.DropAll())
	require.NoError(t, db.RunMigrations())

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)
	return repo
}

type fixture struct {
	client  *domain.User
	order   *domain.Order
	product *domain.Product
	account *domain.BuyingAccount
}

func seed(t *testing.T, repo *repository.Repository) fixture {
	t.Helper()
	ctx := context.Background()

	client, err := repo.CreateUser(ctx, &domain.User{Email: "client@example.com", Name: "Ana",
		Password: "x", DateJoined: time.Now()})
	require.NoError(t, err)
	agent, err := repo.CreateUser(ctx, &domain.User{Email: "agent@example.com", Name: "Luis",
		Password: "x", DateJoined: time.Now(), Capabilities: domain.NewCapabilities(domain.CapAgent)})
	require.NoError(t, err)
	_, err = repo.CreateShop(ctx, &domain.Shop{Name: "amazon", Link: "https://amazon.com"})
	require.NoError(t, err)
	account, err := repo.CreateBuyingAccount(ctx, &domain.BuyingAccount{AccountName: "main"})
	require.NoError(t, err)

	order, err := repo.CreateOrder(ctx, &domain.Order{ClientID: client.ID, SalesManagerID: agent.ID,
		Status: domain.OrderStatusOrdered, CreatedAt: time.Now()})
	require.NoError(t, err)
	product, err := repo.CreateProduct(ctx, &domain.Product{OrderID: order.ID, ShopName: "amazon",
		Name: "Keyboard", AmountRequested: 5, ShopCost: decimal.MustParse("10"),
		TotalCost: decimal.MustParse("50"), Status: domain.ProductStatusOrdered})
	require.NoError(t, err)

	return fixture{client: client, order: order, product: product, account: account}
}

func TestRepository_Users(t *testing.T) {
	repo := newRepo(t)
	f := seed(t, repo)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, &domain.User{Email: "CLIENT@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrConflictingData)

	found, err := repo.GetUserByEmail(ctx, "Client@Example.com")
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, found.ID)

	isAgent := true
	agents, err := repo.ListUsers(ctx, &domain.UserFilter{IsAgent: &isAgent})
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "Luis", agents[0].Name)
}

func TestRepository_Lifecycle(t *testing.T) {
	repo := newRepo(t)
	f := seed(t, repo)
	ctx := context.Background()

	receip, err := repo.CreateShoppingReceip(ctx, &domain.ShoppingReceip{BuyingAccountID: f.account.ID,
		ShopName: "amazon", BuyDate: time.Now()})
	require.NoError(t, err)
	_, err = repo.CreateProductBuyed(ctx, &domain.ProductBuyed{ProductID: f.product.ID,
		ShoppingReceipID: receip.ID, AmountBuyed: 5, ActualCost: decimal.MustParse("9.5"),
		RealCost: decimal.MustParse("47.5"), BuyDate: time.Now()})
	require.NoError(t, err)

	pkg, err := repo.CreatePackage(ctx, &domain.Package{AgencyName: "DHL", ArrivalDate: time.Now()})
	require.NoError(t, err)
	received, err := repo.CreateProductReceived(ctx, &domain.ProductReceived{ProductID: f.product.ID,
		PackageID: pkg.ID, AmountReceived: 5, ReceptionDate: time.Now()})
	require.NoError(t, err)
	require.NotNil(t, received.Product)

	deliver, err := repo.CreateDeliverReceip(ctx, &domain.DeliverReceip{OrderID: f.order.ID,
		Weight: decimal.MustParse("2"), DeliverDate: time.Now()})
	require.NoError(t, err)

	received.DeliverReceipID = &deliver.ID
	received.AmountDelivered = 3
	_, err = repo.UpdateProductReceived(ctx, received)
	require.NoError(t, err)

	counters, err := repo.ProductCounters(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Counters{Bought: 5, Received: 5, Delivered: 3}, counters)

	order, err := repo.ReadOrder(ctx, f.order.ID)
	require.NoError(t, err)
	require.Len(t, order.Products, 1)
	require.Len(t, order.Products[0].Buyed, 1)
	require.Len(t, order.DeliverReceips, 1)
	require.Len(t, order.DeliverReceips[0].Products, 1)
	assert.Equal(t, "Ana", order.Client.Name)

	minCost := decimal.MustParse("40")
	receips, err := repo.ListShoppingReceips(ctx, &domain.ShoppingReceipFilter{MinCost: &minCost})
	require.NoError(t, err)
	assert.Len(t, receips, 1)

	orders, err := repo.ListOrders(ctx, &domain.OrderFilter{MinCost: &minCost})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	require.NoError(t, repo.DeleteOrder(ctx, f.order.ID))
	_, err = repo.ReadProduct(ctx, f.product.ID)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestRepository_RefErrors(t *testing.T) {
	repo := newRepo(t)
	f := seed(t, repo)
	ctx := context.Background()

	_, err := repo.CreateProduct(ctx, &domain.Product{OrderID: f.order.ID, ShopName: "nowhere", AmountRequested: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "shop", verr.Field)

	assert.ErrorIs(t, repo.DeleteShop(ctx, "amazon"), domain.ErrConflictingData)
}

func TestRepository_AtomicRollback(t *testing.T) {
	repo := newRepo(t)
	f := seed(t, repo)
	ctx := context.Background()

	errBoom := errors.New("boom")
	err := repo.Atomic(ctx, func(tx port.Repository) error {
		if err := tx.UpdateProductStatus(ctx, f.product.ID, domain.ProductStatusBought); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	product, err := repo.ReadProduct(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusOrdered, product.Status)
}

func TestRepository_Rates(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.ReadRates(ctx)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)

	_, err = repo.SaveRates(ctx, &domain.Rates{ChangeRate: decimal.MustParse("1.2"), CostPerPound: decimal.MustParse("5")})
	require.NoError(t, err)
	saved, err := repo.SaveRates(ctx, &domain.Rates{ChangeRate: decimal.MustParse("1.3"), CostPerPound: decimal.MustParse("6")})
	require.NoError(t, err)

	rates, err := repo.ReadRates(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, rates)
	assert.Equal(t, 0, rates.CostPerPound.Cmp(decimal.MustParse("6")))
}
