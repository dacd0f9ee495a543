package http

import (
	"net/http"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type orderRequest struct {
	ClientEmail string `json:"client" binding:"required"`
	Status      string `json:"status"`
	PayStatus   string `json:"pay_status"`
}

// CreateOrder makes the caller the sales manager of the new order.
func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := orderRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	report, err := oh.service.CreateOrder(ctx, getPrincipal(ctx), &domain.NewOrder{
		ClientEmail: req.ClientEmail,
		Status:      req.Status,
		PayStatus:   req.PayStatus,
	})
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccessWithStatus(ctx, newOrderResponse(report), http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	report, err := oh.service.GetOrder(ctx, id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderResponse(report))
}

type orderPatchRequest struct {
	ClientEmail    *string `json:"client"`
	SalesManagerID *uint64 `json:"sales_manager"`
	Status         *string `json:"status"`
	PayStatus      *string `json:"pay_status"`
}

func (oh *OrderHandler) UpdateOrder(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	req := orderPatchRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	report, err := oh.service.UpdateOrder(ctx, id, &domain.OrderPatch{
		ClientEmail:    req.ClientEmail,
		SalesManagerID: req.SalesManagerID,
		Status:         req.Status,
		PayStatus:      req.PayStatus,
	})
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderResponse(report))
}

func (oh *OrderHandler) DeleteOrder(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	if err := oh.service.DeleteOrder(ctx, id); err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

type orderFilterQuery struct {
	Client       *string    `form:"client"`
	SalesManager *string    `form:"sales_manager"`
	Status       *string    `form:"status"`
	MinCost      *float64   `form:"min_cost"`
	MaxCost      *float64   `form:"max_cost"`
	InitialDate  *time.Time `form:"initial_date" time_format:"2006-01-02"`
	FinalDate    *time.Time `form:"final_date" time_format:"2006-01-02"`
}

func (oh *OrderHandler) FilterOrders(ctx *gin.Context) {
	q := orderFilterQuery{}
	if err := ctx.ShouldBindQuery(&q); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	filter := &domain.OrderFilter{
		Client:       q.Client,
		SalesManager: q.SalesManager,
		Status:       q.Status,
		InitialDate:  q.InitialDate,
		FinalDate:    q.FinalDate,
	}
	var err error
	if filter.MinCost, err = moneyPtr("min_cost", q.MinCost); err != nil {
		oh.handleError(ctx, err)
		return
	}
	if filter.MaxCost, err = moneyPtr("max_cost", q.MaxCost); err != nil {
		oh.handleError(ctx, err)
		return
	}

	list, err := oh.service.FilterOrders(ctx, filter)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, mapList(list, newOrderResponse))
}
