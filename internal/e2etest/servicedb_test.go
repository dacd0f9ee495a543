package e2etest

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/MikeRez0/shoptrack/internal/adapter/auth"
	"github.com/MikeRez0/shoptrack/internal/adapter/config"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage"
	"github.com/MikeRez0/shoptrack/internal/adapter/storage/repository"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port/mock"
	"github.com/MikeRez0/shoptrack/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var db *storage.DB

func setup() {
	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		return
	}
	var err error
	db, err = storage.NewDBStorage(context.Background(), &config.Database{DSN: dsn})
	if err != nil {
		log.Fatal(err)
	}
}

func shutdown() {
	if db != nil {
		db.Close()
	}
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	shutdown()
	os.Exit(code)
}

type deps struct {
	svc      *service.Service
	repo     *repository.Repository
	notifier *mock.MockNotifier
}

func getDeps(t *testing.T) deps {
	t.Helper()
	if db == nil {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	require.NoError(t, db.DropAll())
	require.NoError(t, db.RunMigrations())

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)
	ts, err := auth.New(&config.Auth{})
	require.NoError(t, err)

	mockCtrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(mockCtrl)

	svc, err := service.NewService(repo, ts, notifier, nil, zap.NewNop())
	require.NoError(t, err)

	return deps{svc: svc, repo: repo, notifier: notifier}
}

func TestServiceDB_UserRegister(t *testing.T) {
	d := getDeps(t)
	ctx := context.Background()

	var secret string
	d.notifier.EXPECT().SendVerification(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.User, s string) error {
			secret = s
			return nil
		})

	tests := []struct {
		name     string
		email    string
		expError error
	}{
		{name: "Register good", email: "test@example.com"},
		{name: "Register already exists", email: "TEST@example.com", expError: domain.ErrConflictingData},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := d.svc.RegisterUser(ctx, &domain.User{Email: test.email, Name: "Test"}, "test")
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.email, result.Email)
		})
	}

	_, err := d.svc.LoginUser(ctx, "test@example.com", "test")
	assert.ErrorIs(t, err, domain.ErrInactiveUser)

	require.NoError(t, d.svc.VerifyUser(ctx, secret))
	token, err := d.svc.LoginUser(ctx, "test@example.com", "test")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestServiceDB_Lifecycle(t *testing.T) {
	d := getDeps(t)
	ctx := context.Background()

	client, err := d.repo.CreateUser(ctx, &domain.User{Email: "client@example.com", Name: "Ana", Password: "x"})
	require.NoError(t, err)
	agent, err := d.repo.CreateUser(ctx, &domain.User{Email: "agent@example.com", Name: "Luis", Password: "x",
		Capabilities: domain.NewCapabilities(domain.CapAgent)})
	require.NoError(t, err)
	_, err = d.svc.CreateShop(ctx, &domain.Shop{Name: "amazon", Link: "https://amazon.com"})
	require.NoError(t, err)
	account, err := d.svc.CreateBuyingAccount(ctx, &domain.BuyingAccount{AccountName: "main"})
	require.NoError(t, err)
	_, err = d.svc.UpdateRates(ctx, &domain.Rates{ChangeRate: decimal.One, CostPerPound: decimal.MustParse("2")})
	require.NoError(t, err)

	order, err := d.svc.CreateOrder(ctx, domain.Principal{UserID: agent.ID, Capabilities: agent.Capabilities},
		&domain.NewOrder{ClientEmail: client.Email})
	require.NoError(t, err)
	product, err := d.svc.CreateProduct(ctx, &domain.Product{OrderID: order.Order.ID, ShopName: "amazon",
		Name: "Keyboard", AmountRequested: 5, ShopCost: decimal.MustParse("10")})
	require.NoError(t, err)

	_, err = d.svc.RecordPurchase(ctx, &domain.PurchaseEvent{BuyingAccountID: account.ID, ShopName: "amazon",
		Lines: []domain.PurchaseLine{
			{ProductID: product.Product.ID, AmountBuyed: 5, ActualCost: decimal.MustParse("9")},
			{ProductID: 999, AmountBuyed: 1},
		}})
	require.ErrorIs(t, err, domain.ErrValidation)

	receips, err := d.svc.FilterShoppingReceips(ctx, &domain.ShoppingReceipFilter{})
	require.NoError(t, err)
	assert.Empty(t, receips)

	_, err = d.svc.RecordPurchase(ctx, &domain.PurchaseEvent{BuyingAccountID: account.ID, ShopName: "amazon",
		Lines: []domain.PurchaseLine{{ProductID: product.Product.ID, AmountBuyed: 5, ActualCost: decimal.MustParse("9")}}})
	require.NoError(t, err)

	pkg, err := d.svc.CreatePackage(ctx, &domain.Package{AgencyName: "DHL"})
	require.NoError(t, err)
	pkg, err = d.svc.RecordReceipt(ctx, &domain.ReceiptEvent{PackageID: pkg.ID,
		Lines: []domain.ReceiptLine{{ProductID: product.Product.ID, AmountReceived: 5}}})
	require.NoError(t, err)
	require.Len(t, pkg.Products, 1)

	deliver, err := d.svc.CreateDeliverReceip(ctx, &domain.DeliverReceip{OrderID: order.Order.ID,
		Weight: decimal.MustParse("2")})
	require.NoError(t, err)
	report, err := d.svc.RecordDelivery(ctx, &domain.DeliveryEvent{DeliverReceipID: deliver.DeliverReceip.ID,
		Lines: []domain.DeliveryLine{{ProductReceivedID: pkg.Products[0].ID, AmountDelivered: 5}}})
	require.NoError(t, err)
	assert.Zero(t, decimal.MustParse("49").Cmp(report.TotalCostOfDeliver))

	got, err := d.svc.GetProduct(ctx, product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusDelivered, got.Product.Status)
}
