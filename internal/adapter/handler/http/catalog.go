package http

import (
	"net/http"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	Handler
	service port.Service
}

func NewCatalogHandler(service port.Service, logger *zap.Logger) (*CatalogHandler, error) {
	return &CatalogHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type shopRequest struct {
	Name string `json:"name" binding:"required"`
	Link string `json:"link" binding:"required"`
}

func (ch *CatalogHandler) CreateShop(ctx *gin.Context) {
	req := shopRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	shop, err := ch.service.CreateShop(ctx, &domain.Shop{Name: req.Name, Link: req.Link})
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccessWithStatus(ctx, shopResponse{Name: shop.Name, Link: shop.Link}, http.StatusCreated)
}

func (ch *CatalogHandler) ListShops(ctx *gin.Context) {
	list, err := ch.service.ListShops(ctx)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, mapList(list, func(s *domain.Shop) shopResponse {
		return shopResponse{Name: s.Name, Link: s.Link}
	}))
}

func (ch *CatalogHandler) GetShop(ctx *gin.Context) {
	shop, err := ch.service.GetShop(ctx, ctx.Param("name"))
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, shopResponse{Name: shop.Name, Link: shop.Link})
}

func (ch *CatalogHandler) DeleteShop(ctx *gin.Context) {
	if err := ch.service.DeleteShop(ctx, ctx.Param("name")); err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

type buyingAccountRequest struct {
	AccountName string `json:"account_name" binding:"required"`
}

func (ch *CatalogHandler) CreateBuyingAccount(ctx *gin.Context) {
	req := buyingAccountRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	account, err := ch.service.CreateBuyingAccount(ctx, &domain.BuyingAccount{AccountName: req.AccountName})
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccessWithStatus(ctx, buyingAccountResponse{ID: account.ID, AccountName: account.AccountName},
		http.StatusCreated)
}

func (ch *CatalogHandler) ListBuyingAccounts(ctx *gin.Context) {
	list, err := ch.service.ListBuyingAccounts(ctx)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, mapList(list, func(a *domain.BuyingAccount) buyingAccountResponse {
		return buyingAccountResponse{ID: a.ID, AccountName: a.AccountName}
	}))
}

func (ch *CatalogHandler) GetRates(ctx *gin.Context) {
	rates, err := ch.service.GetRates(ctx)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, ratesResponse{ChangeRate: jsonDecimal(rates.ChangeRate),
		CostPerPound: jsonDecimal(rates.CostPerPound)})
}

type ratesRequest struct {
	ChangeRate   float64 `json:"change_rate"`
	CostPerPound float64 `json:"cost_per_pound"`
}

func (ch *CatalogHandler) UpdateRates(ctx *gin.Context) {
	req := ratesRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	changeRate, err := money("change_rate", req.ChangeRate)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	costPerPound, err := money("cost_per_pound", req.CostPerPound)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	rates, err := ch.service.UpdateRates(ctx, &domain.Rates{ChangeRate: changeRate, CostPerPound: costPerPound})
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, ratesResponse{ChangeRate: jsonDecimal(rates.ChangeRate),
		CostPerPound: jsonDecimal(rates.CostPerPound)})
}
