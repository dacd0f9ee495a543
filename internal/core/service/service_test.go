package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MikeRez0/shoptrack/internal/adapter/storage/memory"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port/mock"
	"github.com/MikeRez0/shoptrack/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type env struct {
	svc      *service.Service
	repo     *memory.Repository
	tokens   *mock.MockTokenService
	notifier *mock.MockNotifier
	images   *mock.MockImageStore

	client  *domain.User
	agent   *domain.User
	account *domain.BuyingAccount
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mockCtrl := gomock.NewController(t)

	e := &env{
		repo:     memory.NewRepository(),
		tokens:   mock.NewMockTokenService(mockCtrl),
		notifier: mock.NewMockNotifier(mockCtrl),
		images:   mock.NewMockImageStore(mockCtrl),
	}

	svc, err := service.NewService(e.repo, e.tokens, e.notifier, e.images, zap.NewNop())
	require.NoError(t, err)
	e.svc = svc

	ctx := context.Background()
	e.client, err = e.repo.CreateUser(ctx, &domain.User{Email: "client@example.com", Name: "Ana", IsActive: true})
	require.NoError(t, err)
	e.agent, err = e.repo.CreateUser(ctx, &domain.User{Email: "agent@example.com", Name: "Luis", IsActive: true,
		Capabilities: domain.NewCapabilities(domain.CapAgent)})
	require.NoError(t, err)
	_, err = e.repo.CreateShop(ctx, &domain.Shop{Name: "amazon", Link: "https://amazon.com"})
	require.NoError(t, err)
	e.account, err = e.repo.CreateBuyingAccount(ctx, &domain.BuyingAccount{AccountName: "main"})
	require.NoError(t, err)
	_, err = e.repo.SaveRates(ctx, &domain.Rates{ChangeRate: decimal.One, CostPerPound: decimal.MustParse("2")})
	require.NoError(t, err)

	return e
}

func (e *env) agentPrincipal() domain.Principal {
	return domain.Principal{UserID: e.agent.ID, Capabilities: e.agent.Capabilities}
}

// newProduct opens an order with a single product of 5 units at 10 each.
func (e *env) newProduct(t *testing.T) (*domain.OrderReport, *domain.ProductReport) {
	t.Helper()
	ctx := context.Background()

	order, err := e.svc.CreateOrder(ctx, e.agentPrincipal(), &domain.NewOrder{ClientEmail: e.client.Email})
	require.NoError(t, err)

	product, err := e.svc.CreateProduct(ctx, &domain.Product{OrderID: order.Order.ID, ShopName: "amazon",
		Name: "Keyboard", AmountRequested: 5, ShopCost: decimal.MustParse("10")})
	require.NoError(t, err)
	return order, product
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Zero(t, decimal.MustParse(want).Cmp(got), "want %s, got %s", want, got)
}

func TestService_Lifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	order, product := e.newProduct(t)

	assertMoney(t, "50", product.Product.TotalCost)
	assert.Equal(t, domain.ProductStatusOrdered, product.Product.Status)

	purchase := func(amount int64) {
		_, err := e.svc.RecordPurchase(ctx, &domain.PurchaseEvent{
			BuyingAccountID: e.account.ID,
			ShopName:        "amazon",
			Lines: []domain.PurchaseLine{{ProductID: product.Product.ID, AmountBuyed: amount,
				ActualCost: decimal.MustParse("9")}},
		})
		require.NoError(t, err)
	}

	purchase(3)
	got, err := e.svc.GetProduct(ctx, product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusPartiallyBought, got.Product.Status)

	purchase(2)
	got, err = e.svc.GetProduct(ctx, product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusBought, got.Product.Status)
	assert.Equal(t, int64(5), got.AmountBuyed)
	assertMoney(t, "9", got.CostPerProduct)

	pkg, err := e.svc.CreatePackage(ctx, &domain.Package{AgencyName: "DHL"})
	require.NoError(t, err)
	pkg, err = e.svc.RecordReceipt(ctx, &domain.ReceiptEvent{PackageID: pkg.ID,
		Lines: []domain.ReceiptLine{{ProductID: product.Product.ID, AmountReceived: 5}}})
	require.NoError(t, err)
	require.Len(t, pkg.Products, 1)

	got, err = e.svc.GetProduct(ctx, product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusReceived, got.Product.Status)

	deliver, err := e.svc.CreateDeliverReceip(ctx, &domain.DeliverReceip{OrderID: order.Order.ID,
		Weight: decimal.MustParse("2")})
	require.NoError(t, err)

	report, err := e.svc.RecordDelivery(ctx, &domain.DeliveryEvent{DeliverReceipID: deliver.DeliverReceip.ID,
		Lines: []domain.DeliveryLine{{ProductReceivedID: pkg.Products[0].ID, AmountDelivered: 5}}})
	require.NoError(t, err)
	require.Len(t, report.DeliverReceip.Products, 1)
	// 2 lb × 2 + 5 units × 9
	assertMoney(t, "49", report.TotalCostOfDeliver)

	got, err = e.svc.GetProduct(ctx, product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusDelivered, got.Product.Status)

	full, err := e.svc.GetOrder(ctx, order.Order.ID)
	require.NoError(t, err)
	assertMoney(t, "50", full.TotalCost)
	assertMoney(t, "49", full.ReceivedValueOfClient)
	assertMoney(t, "-1", full.ExtraPayments)
	assert.Equal(t, int64(5), full.ReceivedProducts)
}

func TestService_PurchaseRollback(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, product := e.newProduct(t)

	_, err := e.svc.RecordPurchase(ctx, &domain.PurchaseEvent{
		BuyingAccountID: e.account.ID,
		ShopName:        "amazon",
		Lines: []domain.PurchaseLine{
			{ProductID: product.Product.ID, AmountBuyed: 5, ActualCost: decimal.MustParse("9")},
			{ProductID: 999, AmountBuyed: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "buyed_products[1].original_product", verr.Field)

	receips, err := e.svc.FilterShoppingReceips(ctx, &domain.ShoppingReceipFilter{})
	require.NoError(t, err)
	assert.Empty(t, receips)

	got, err := e.svc.GetProduct(ctx, product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusOrdered, got.Product.Status)
	assert.Zero(t, got.AmountBuyed)
}

func TestService_ReceiptRollback(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, product := e.newProduct(t)

	pkg, err := e.svc.CreatePackage(ctx, &domain.Package{AgencyName: "DHL"})
	require.NoError(t, err)

	_, err = e.svc.RecordReceipt(ctx, &domain.ReceiptEvent{PackageID: pkg.ID,
		Lines: []domain.ReceiptLine{
			{ProductID: product.Product.ID, AmountReceived: 5},
			{ProductID: 999, AmountReceived: 1},
		}})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "contained_products[1].original_product", verr.Field)

	pkg, err = e.svc.GetPackage(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Empty(t, pkg.Products)

	got, err := e.svc.GetProduct(ctx, product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusOrdered, got.Product.Status)
	assert.Zero(t, got.AmountReceived)
}

func TestService_DeliveryRollback(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	f := e.received(t)

	_, err := e.svc.RecordDelivery(ctx, &domain.DeliveryEvent{
		DeliverReceipID: f.deliver.DeliverReceip.ID,
		Lines: []domain.DeliveryLine{
			{ProductReceivedID: f.received.ID, AmountDelivered: 5},
			{ProductReceivedID: 999, AmountDelivered: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "delivered_products[1].id", verr.Field)

	pr, err := e.repo.ReadProductReceived(ctx, f.received.ID)
	require.NoError(t, err)
	assert.Nil(t, pr.DeliverReceipID)
	assert.Zero(t, pr.AmountDelivered)

	got, err := e.svc.GetProduct(ctx, f.product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusReceived, got.Product.Status)
}

func TestService_PurchaseUnknownAccount(t *testing.T) {
	e := newEnv(t)
	_, product := e.newProduct(t)

	_, err := e.svc.RecordPurchase(context.Background(), &domain.PurchaseEvent{
		BuyingAccountID: 42,
		ShopName:        "amazon",
		Lines:           []domain.PurchaseLine{{ProductID: product.Product.ID, AmountBuyed: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type deliveryFixture struct {
	order    *domain.OrderReport
	product  *domain.ProductReport
	received *domain.ProductReceived
	deliver  *domain.DeliverReport
}

func (e *env) received(t *testing.T) deliveryFixture {
	t.Helper()
	ctx := context.Background()
	order, product := e.newProduct(t)

	pkg, err := e.svc.CreatePackage(ctx, &domain.Package{AgencyName: "DHL"})
	require.NoError(t, err)
	pkg, err = e.svc.RecordReceipt(ctx, &domain.ReceiptEvent{PackageID: pkg.ID,
		Lines: []domain.ReceiptLine{{ProductID: product.Product.ID, AmountReceived: 5}}})
	require.NoError(t, err)

	deliver, err := e.svc.CreateDeliverReceip(ctx, &domain.DeliverReceip{OrderID: order.Order.ID})
	require.NoError(t, err)

	return deliveryFixture{order: order, product: product, received: pkg.Products[0], deliver: deliver}
}

func TestService_DeliveryWithPackageRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	f := e.received(t)

	pkgID := f.received.PackageID
	_, err := e.svc.RecordDelivery(ctx, &domain.DeliveryEvent{
		DeliverReceipID: f.deliver.DeliverReceip.ID,
		PackageID:       &pkgID,
		Lines:           []domain.DeliveryLine{{ProductReceivedID: f.received.ID, AmountDelivered: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrConflictingTargets)

	pr, err := e.repo.ReadProductReceived(ctx, f.received.ID)
	require.NoError(t, err)
	assert.Nil(t, pr.DeliverReceipID)
	assert.Zero(t, pr.AmountDelivered)
}

func TestService_DeliveryChecks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	f := e.received(t)

	_, err := e.svc.RecordDelivery(ctx, &domain.DeliveryEvent{
		DeliverReceipID: f.deliver.DeliverReceip.ID,
		Lines:           []domain.DeliveryLine{{ProductReceivedID: f.received.ID, AmountDelivered: 6}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.svc.RecordDelivery(ctx, &domain.DeliveryEvent{
		DeliverReceipID: f.deliver.DeliverReceip.ID,
		Lines:           []domain.DeliveryLine{{ProductReceivedID: f.received.ID, AmountDelivered: 2}},
	})
	require.NoError(t, err)

	got, err := e.svc.GetProduct(ctx, f.product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusPartiallyDelivered, got.Product.Status)

	other, err := e.svc.CreateDeliverReceip(ctx, &domain.DeliverReceip{OrderID: f.order.Order.ID})
	require.NoError(t, err)
	_, err = e.svc.RecordDelivery(ctx, &domain.DeliveryEvent{
		DeliverReceipID: other.DeliverReceip.ID,
		Lines:           []domain.DeliveryLine{{ProductReceivedID: f.received.ID, AmountDelivered: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyDelivered)
}

func TestService_OrderRules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CreateOrder(ctx, domain.Principal{UserID: e.client.ID}, &domain.NewOrder{ClientEmail: e.client.Email})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrNotAnAgent)

	_, err = e.svc.CreateOrder(ctx, e.agentPrincipal(), &domain.NewOrder{ClientEmail: "nobody@example.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	order, _ := e.newProduct(t)
	other := e.client.ID
	_, err = e.svc.UpdateOrder(ctx, order.Order.ID, &domain.OrderPatch{SalesManagerID: &other})
	assert.ErrorIs(t, err, domain.ErrImmutableField)

	same := e.agent.ID
	status := "Paid"
	updated, err := e.svc.UpdateOrder(ctx, order.Order.ID, &domain.OrderPatch{SalesManagerID: &same, PayStatus: &status})
	require.NoError(t, err)
	assert.Equal(t, "Paid", updated.Order.PayStatus)

	require.NoError(t, e.svc.DeleteOrder(ctx, order.Order.ID))
	_, err = e.svc.GetOrder(ctx, order.Order.ID)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestService_RegisterAndVerify(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var secret string
	e.notifier.EXPECT().SendVerification(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *domain.User, s string) error {
			assert.Equal(t, "new@example.com", user.Email)
			secret = s
			return nil
		})

	user, err := e.svc.RegisterUser(ctx, &domain.User{Email: "new@example.com", Name: "Eva",
		Capabilities: domain.NewCapabilities(domain.CapStaff)}, "secret-pass")
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.Zero(t, user.Capabilities)
	assert.Len(t, secret, 32)

	_, err = e.svc.LoginUser(ctx, "new@example.com", "secret-pass")
	assert.ErrorIs(t, err, domain.ErrInactiveUser)

	require.NoError(t, e.svc.VerifyUser(ctx, secret))

	e.tokens.EXPECT().CreateToken(gomock.Any()).Return("token", nil)
	token, err := e.svc.LoginUser(ctx, "new@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "token", token)

	_, err = e.svc.LoginUser(ctx, "new@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = e.svc.RegisterUser(ctx, &domain.User{Email: "new@example.com", Name: "Eva"}, "x")
	assert.ErrorIs(t, err, domain.ErrConflictingData)
}

func TestService_RegisterNotifyFails(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.notifier.EXPECT().SendVerification(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("smtp down"))

	_, err := e.svc.RegisterUser(ctx, &domain.User{Email: "new@example.com", Name: "Eva"}, "pass")
	assert.ErrorIs(t, err, domain.ErrInternal)

	_, err = e.repo.GetUserByEmail(ctx, "new@example.com")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestService_PasswordReset(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var secret string
	e.notifier.EXPECT().SendPasswordRecovery(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.User, s string) error {
			secret = s
			return nil
		})

	require.NoError(t, e.svc.RequestPasswordReset(ctx, e.client.Email))
	require.NoError(t, e.svc.ResetPassword(ctx, secret, "brand-new"))

	e.tokens.EXPECT().CreateToken(gomock.Any()).Return("token", nil)
	_, err := e.svc.LoginUser(ctx, e.client.Email, "brand-new")
	require.NoError(t, err)

	err = e.svc.ResetPassword(ctx, secret, "again")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)

	err = e.svc.RequestPasswordReset(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_RecomputeAllStatuses(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, product := e.newProduct(t)

	_, err := e.svc.RecordPurchase(ctx, &domain.PurchaseEvent{BuyingAccountID: e.account.ID, ShopName: "amazon",
		Lines: []domain.PurchaseLine{{ProductID: product.Product.ID, AmountBuyed: 5}}})
	require.NoError(t, err)

	require.NoError(t, e.repo.UpdateProductStatus(ctx, product.Product.ID, domain.ProductStatusOrdered))

	changed, err := e.svc.RecomputeAllStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := e.svc.GetProduct(ctx, product.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusBought, got.Product.Status)
}

func TestService_Images(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.UploadImage(ctx, "evidence.gif", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	e.images.EXPECT().Upload(gomock.Any(), "evidence.png", gomock.Any()).
		Return(&domain.EvidenceImage{PublicID: "abc.png", URL: "https://cdn/abc.png"}, nil)
	img, err := e.svc.UploadImage(ctx, "evidence.png", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc.png", img.PublicID)

	e.images.EXPECT().Delete(gomock.Any(), "abc.png").Return(nil)
	require.NoError(t, e.svc.DeleteImage(ctx, "abc.png"))

	err = e.svc.DeleteImage(ctx, "abc.png")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestService_ImagesDisabled(t *testing.T) {
	svc, err := service.NewService(memory.NewRepository(), nil, nil, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = svc.UploadImage(context.Background(), "evidence.png", nil)
	assert.ErrorIs(t, err, domain.ErrImageStoreDisabled)
}

func TestService_FilterDates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.newProduct(t)

	today := time.Now()
	list, err := e.svc.FilterOrders(ctx, &domain.OrderFilter{InitialDate: &today, FinalDate: &today})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	tomorrow := today.AddDate(0, 0, 1)
	list, err = e.svc.FilterOrders(ctx, &domain.OrderFilter{InitialDate: &tomorrow})
	require.NoError(t, err)
	assert.Empty(t, list)
}
