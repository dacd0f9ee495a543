package http

import (
	"net/http"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type productRequest struct {
	OrderID          uint64   `json:"order" binding:"required"`
	ShopName         string   `json:"shop" binding:"required"`
	SKU              string   `json:"sku"`
	Name             string   `json:"name" binding:"required"`
	Link             string   `json:"link"`
	Description      string   `json:"description"`
	Observation      string   `json:"observation"`
	Category         string   `json:"category"`
	Picture          string   `json:"product_pictures"`
	AmountRequested  int64    `json:"amount_requested" binding:"required"`
	ShopCost         float64  `json:"shop_cost"`
	ShopDeliveryCost float64  `json:"shop_delivery_cost"`
	ShopTaxes        float64  `json:"shop_taxes"`
	OwnTaxes         float64  `json:"own_taxes"`
	AddedTaxes       float64  `json:"added_taxes"`
	TotalCost        *float64 `json:"total_cost"`
}

// moneyField collects the first conversion error of a sequence of amounts.
type moneyField struct {
	err error
}

func (m *moneyField) value(field string, f float64) decimal.Decimal {
	if m.err != nil {
		return decimal.Zero
	}
	d, err := money(field, f)
	m.err = err
	return d
}

func (m *moneyField) ptr(field string, f *float64) *decimal.Decimal {
	if m.err != nil || f == nil {
		return nil
	}
	d := m.value(field, *f)
	if m.err != nil {
		return nil
	}
	return &d
}

func (ph *ProductHandler) CreateProduct(ctx *gin.Context) {
	req := productRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	m := moneyField{}
	product := &domain.Product{
		OrderID:          req.OrderID,
		ShopName:         req.ShopName,
		SKU:              req.SKU,
		Name:             req.Name,
		Link:             req.Link,
		Description:      req.Description,
		Observation:      req.Observation,
		Category:         req.Category,
		Picture:          req.Picture,
		AmountRequested:  req.AmountRequested,
		ShopCost:         m.value("shop_cost", req.ShopCost),
		ShopDeliveryCost: m.value("shop_delivery_cost", req.ShopDeliveryCost),
		ShopTaxes:        m.value("shop_taxes", req.ShopTaxes),
		OwnTaxes:         m.value("own_taxes", req.OwnTaxes),
		AddedTaxes:       m.value("added_taxes", req.AddedTaxes),
	}
	// zero total cost is replaced by the quoted cost
	if total := m.ptr("total_cost", req.TotalCost); total != nil {
		product.TotalCost = *total
	}
	if m.err != nil {
		ph.handleError(ctx, m.err)
		return
	}

	report, err := ph.service.CreateProduct(ctx, product)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccessWithStatus(ctx, newProductResponse(report), http.StatusCreated)
}

func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	report, err := ph.service.GetProduct(ctx, id)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, newProductResponse(report))
}

type productPatchRequest struct {
	ShopName         *string  `json:"shop"`
	SKU              *string  `json:"sku"`
	Name             *string  `json:"name"`
	Link             *string  `json:"link"`
	Description      *string  `json:"description"`
	Observation      *string  `json:"observation"`
	Category         *string  `json:"category"`
	Picture          *string  `json:"product_pictures"`
	AmountRequested  *int64   `json:"amount_requested"`
	ShopCost         *float64 `json:"shop_cost"`
	ShopDeliveryCost *float64 `json:"shop_delivery_cost"`
	ShopTaxes        *float64 `json:"shop_taxes"`
	OwnTaxes         *float64 `json:"own_taxes"`
	AddedTaxes       *float64 `json:"added_taxes"`
	TotalCost        *float64 `json:"total_cost"`
}

func (ph *ProductHandler) UpdateProduct(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	req := productPatchRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	m := moneyField{}
	patch := &domain.ProductPatch{
		SKU:              req.SKU,
		Name:             req.Name,
		Link:             req.Link,
		Description:      req.Description,
		Observation:      req.Observation,
		Category:         req.Category,
		Picture:          req.Picture,
		ShopName:         req.ShopName,
		AmountRequested:  req.AmountRequested,
		ShopCost:         m.ptr("shop_cost", req.ShopCost),
		ShopDeliveryCost: m.ptr("shop_delivery_cost", req.ShopDeliveryCost),
		ShopTaxes:        m.ptr("shop_taxes", req.ShopTaxes),
		OwnTaxes:         m.ptr("own_taxes", req.OwnTaxes),
		AddedTaxes:       m.ptr("added_taxes", req.AddedTaxes),
		TotalCost:        m.ptr("total_cost", req.TotalCost),
	}
	if m.err != nil {
		ph.handleError(ctx, m.err)
		return
	}

	report, err := ph.service.UpdateProduct(ctx, id, patch)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, newProductResponse(report))
}

func (ph *ProductHandler) DeleteProduct(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	if err := ph.service.DeleteProduct(ctx, id); err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

type productFilterQuery struct {
	Name        *string  `form:"name"`
	Description *string  `form:"description"`
	Category    *string  `form:"category"`
	SKU         *string  `form:"sku"`
	ShopName    *string  `form:"shop"`
	Status      *string  `form:"status"`
	OrderID     *uint64  `form:"order"`
	ClientID    *uint64  `form:"client"`
	MinCost     *float64 `form:"min_cost"`
	MaxCost     *float64 `form:"max_cost"`
}

func (ph *ProductHandler) FilterProducts(ctx *gin.Context) {
	q := productFilterQuery{}
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	m := moneyField{}
	filter := &domain.ProductFilter{
		Name:        q.Name,
		Description: q.Description,
		Category:    q.Category,
		SKU:         q.SKU,
		ShopName:    q.ShopName,
		OrderID:     q.OrderID,
		ClientID:    q.ClientID,
		MinCost:     m.ptr("min_cost", q.MinCost),
		MaxCost:     m.ptr("max_cost", q.MaxCost),
	}
	if q.Status != nil {
		status := domain.ProductStatus(*q.Status)
		filter.Status = &status
	}
	if m.err != nil {
		ph.handleError(ctx, m.err)
		return
	}

	list, err := ph.service.FilterProducts(ctx, filter)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, mapList(list, newProductResponse))
}

type recomputeResponse struct {
	Changed int `json:"changed"`
}

// RecomputeStatuses rewrites every stored product status from its history.
func (ph *ProductHandler) RecomputeStatuses(ctx *gin.Context) {
	changed, err := ph.service.RecomputeAllStatuses(ctx)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, recomputeResponse{Changed: changed})
}
