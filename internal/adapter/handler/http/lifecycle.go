package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LifecycleHandler serves purchases, packages and deliveries.
type LifecycleHandler struct {
	Handler
	service port.Service
}

func NewLifecycleHandler(service port.Service, logger *zap.Logger) (*LifecycleHandler, error) {
	return &LifecycleHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type purchaseLineRequest struct {
	ProductID     uint64  `json:"original_product" binding:"required"`
	AmountBuyed   int64   `json:"amount_buyed" binding:"required"`
	ActualCost    float64 `json:"actual_cost_of_product"`
	ShopDiscount  float64 `json:"shop_discount"`
	OfferDiscount float64 `json:"offer_discount"`
	Observation   string  `json:"observation"`
}

type purchaseRequest struct {
	BuyingAccountID uint64                `json:"shopping_account" binding:"required"`
	ShopName        string                `json:"shop_of_buy" binding:"required"`
	Status          string                `json:"status_of_shopping"`
	BuyDate         time.Time             `json:"buy_date"`
	Lines           []purchaseLineRequest `json:"buyed_products" binding:"omitempty,dive"`
}

func (lh *LifecycleHandler) RecordPurchase(ctx *gin.Context) {
	req := purchaseRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		lh.handleValidationError(ctx, err)
		return
	}

	m := moneyField{}
	event := &domain.PurchaseEvent{
		BuyingAccountID: req.BuyingAccountID,
		ShopName:        req.ShopName,
		Status:          req.Status,
		BuyDate:         req.BuyDate,
		Lines:           make([]domain.PurchaseLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		event.Lines = append(event.Lines, domain.PurchaseLine{
			ProductID:     l.ProductID,
			AmountBuyed:   l.AmountBuyed,
			ActualCost:    m.value("actual_cost_of_product", l.ActualCost),
			ShopDiscount:  m.value("shop_discount", l.ShopDiscount),
			OfferDiscount: m.value("offer_discount", l.OfferDiscount),
			Observation:   l.Observation,
		})
	}
	if m.err != nil {
		lh.handleError(ctx, m.err)
		return
	}

	report, err := lh.service.RecordPurchase(ctx, event)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccessWithStatus(ctx, newShoppingReceipResponse(report), http.StatusCreated)
}

func (lh *LifecycleHandler) GetShoppingReceip(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		lh.handleError(ctx, err)
		return
	}

	report, err := lh.service.GetShoppingReceip(ctx, id)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, newShoppingReceipResponse(report))
}

type shoppingReceipFilterQuery struct {
	ShoppingAccount *string    `form:"shopping_account"`
	ShopName        *string    `form:"shop_of_buy"`
	Status          *string    `form:"status_of_shopping"`
	BuyDate         *time.Time `form:"buy_date" time_format:"2006-01-02"`
	InitialDate     *time.Time `form:"initial_date" time_format:"2006-01-02"`
	FinalDate       *time.Time `form:"final_date" time_format:"2006-01-02"`
	MinCost         *float64   `form:"min_cost"`
	MaxCost         *float64   `form:"max_cost"`
	BuyedProducts   string     `form:"buyed_products"`
}

func (lh *LifecycleHandler) FilterShoppingReceips(ctx *gin.Context) {
	q := shoppingReceipFilterQuery{}
	if err := ctx.ShouldBindQuery(&q); err != nil {
		lh.handleValidationError(ctx, err)
		return
	}

	products, err := idList("buyed_products", q.BuyedProducts)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	m := moneyField{}
	filter := &domain.ShoppingReceipFilter{
		ShoppingAccount: q.ShoppingAccount,
		ShopName:        q.ShopName,
		Status:          q.Status,
		BuyDate:         q.BuyDate,
		InitialDate:     q.InitialDate,
		FinalDate:       q.FinalDate,
		MinCost:         m.ptr("min_cost", q.MinCost),
		MaxCost:         m.ptr("max_cost", q.MaxCost),
		BuyedProducts:   products,
	}
	if m.err != nil {
		lh.handleError(ctx, m.err)
		return
	}

	list, err := lh.service.FilterShoppingReceips(ctx, filter)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, mapList(list, newShoppingReceipResponse))
}

type packageRequest struct {
	AgencyName     string    `json:"agency_name" binding:"required"`
	TrackingNumber string    `json:"number_of_tracking"`
	Status         string    `json:"status_of_processing"`
	ArrivalDate    time.Time `json:"arrival_date"`
}

func (lh *LifecycleHandler) CreatePackage(ctx *gin.Context) {
	req := packageRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		lh.handleValidationError(ctx, err)
		return
	}

	pkg, err := lh.service.CreatePackage(ctx, &domain.Package{
		AgencyName:     req.AgencyName,
		TrackingNumber: req.TrackingNumber,
		Status:         req.Status,
		ArrivalDate:    req.ArrivalDate,
	})
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccessWithStatus(ctx, newPackageResponse(pkg), http.StatusCreated)
}

func (lh *LifecycleHandler) GetPackage(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		lh.handleError(ctx, err)
		return
	}

	pkg, err := lh.service.GetPackage(ctx, id)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, newPackageResponse(pkg))
}

type packageFilterQuery struct {
	AgencyName        *string `form:"agency_name"`
	TrackingNumber    *string `form:"number_of_tracking"`
	Status            *string `form:"status_of_processing"`
	ContainedProducts string  `form:"contained_products"`
}

func (lh *LifecycleHandler) FilterPackages(ctx *gin.Context) {
	q := packageFilterQuery{}
	if err := ctx.ShouldBindQuery(&q); err != nil {
		lh.handleValidationError(ctx, err)
		return
	}

	products, err := idList("contained_products", q.ContainedProducts)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}

	list, err := lh.service.FilterPackages(ctx, &domain.PackageFilter{
		AgencyName:        q.AgencyName,
		TrackingNumber:    q.TrackingNumber,
		Status:            q.Status,
		ContainedProducts: products,
	})
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, mapList(list, newPackageResponse))
}

type receiptLineRequest struct {
	ProductID      uint64 `json:"original_product" binding:"required"`
	AmountReceived int64  `json:"amount_received" binding:"required"`
	Observation    string `json:"observation"`
}

type receiptRequest struct {
	ReceptionDate time.Time            `json:"reception_date_in_xzona"`
	Lines         []receiptLineRequest `json:"contained_products" binding:"required,dive"`
}

// RecordReceipt adds received products to the package in the path.
func (lh *LifecycleHandler) RecordReceipt(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		lh.handleError(ctx, err)
		return
	}

	req := receiptRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		lh.handleValidationError(ctx, err)
		return
	}

	event := &domain.ReceiptEvent{
		PackageID:     id,
		ReceptionDate: req.ReceptionDate,
		Lines:         make([]domain.ReceiptLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		event.Lines = append(event.Lines, domain.ReceiptLine{
			ProductID:      l.ProductID,
			AmountReceived: l.AmountReceived,
			Observation:    l.Observation,
		})
	}

	pkg, err := lh.service.RecordReceipt(ctx, event)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, newPackageResponse(pkg))
}

type deliverReceipRequest struct {
	OrderID     uint64    `json:"order" binding:"required"`
	Weight      float64   `json:"weight"`
	Status      string    `json:"status_of_delivery"`
	DeliverDate time.Time `json:"deliver_date"`
	Picture     string    `json:"deliver_picture"`
}

func (lh *LifecycleHandler) CreateDeliverReceip(ctx *gin.Context) {
	req := deliverReceipRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		lh.handleValidationError(ctx, err)
		return
	}

	weight, err := money("weight", req.Weight)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}

	report, err := lh.service.CreateDeliverReceip(ctx, &domain.DeliverReceip{
		OrderID:     req.OrderID,
		Weight:      weight,
		Status:      req.Status,
		DeliverDate: req.DeliverDate,
		Picture:     req.Picture,
	})
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccessWithStatus(ctx, newDeliverReceipResponse(report), http.StatusCreated)
}

func (lh *LifecycleHandler) GetDeliverReceip(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		lh.handleError(ctx, err)
		return
	}

	report, err := lh.service.GetDeliverReceip(ctx, id)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, newDeliverReceipResponse(report))
}

type deliverReceipFilterQuery struct {
	OrderID     *uint64    `form:"order"`
	ClientID    *uint64    `form:"client"`
	Status      *string    `form:"status_of_delivery"`
	DeliverDate *time.Time `form:"deliver_date" time_format:"2006-01-02"`
	InitialDate *time.Time `form:"initial_date" time_format:"2006-01-02"`
	FinalDate   *time.Time `form:"final_date" time_format:"2006-01-02"`
	MinWeight   *float64   `form:"min_weight"`
	MaxWeight   *float64   `form:"max_weight"`
}

func (lh *LifecycleHandler) FilterDeliverReceips(ctx *gin.Context) {
	q := deliverReceipFilterQuery{}
	if err := ctx.ShouldBindQuery(&q); err != nil {
		lh.handleValidationError(ctx, err)
		return
	}

	m := moneyField{}
	filter := &domain.DeliverReceipFilter{
		OrderID:     q.OrderID,
		ClientID:    q.ClientID,
		Status:      q.Status,
		DeliverDate: q.DeliverDate,
		InitialDate: q.InitialDate,
		FinalDate:   q.FinalDate,
		MinWeight:   m.ptr("min_weight", q.MinWeight),
		MaxWeight:   m.ptr("max_weight", q.MaxWeight),
	}
	if m.err != nil {
		lh.handleError(ctx, m.err)
		return
	}

	list, err := lh.service.FilterDeliverReceips(ctx, filter)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, mapList(list, newDeliverReceipResponse))
}

type deliveryLineRequest struct {
	ProductReceivedID uint64 `json:"id" binding:"required"`
	AmountDelivered   int64  `json:"amount_delivered"`
}

type deliveryRequest struct {
	PackageID json.RawMessage       `json:"package_where_was_send"`
	Lines     []deliveryLineRequest `json:"delivered_products" binding:"required,dive"`
}

// RecordDelivery hands received products over with the deliver receip in the path.
func (lh *LifecycleHandler) RecordDelivery(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		lh.handleError(ctx, err)
		return
	}

	req := deliveryRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		lh.handleValidationError(ctx, err)
		return
	}

	event := &domain.DeliveryEvent{
		DeliverReceipID: id,
		PackageID:       presentID(req.PackageID),
		Lines:           make([]domain.DeliveryLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		event.Lines = append(event.Lines, domain.DeliveryLine{
			ProductReceivedID: l.ProductReceivedID,
			AmountDelivered:   l.AmountDelivered,
		})
	}

	report, err := lh.service.RecordDelivery(ctx, event)
	if err != nil {
		lh.handleError(ctx, err)
		return
	}
	lh.handleSuccess(ctx, newDeliverReceipResponse(report))
}

// presentID reports a key that was sent at all, null included.
func presentID(raw json.RawMessage) *uint64 {
	if len(raw) == 0 {
		return nil
	}
	var id uint64
	_ = json.Unmarshal(raw, &id)
	return &id
}
