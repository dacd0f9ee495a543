package http

import (
	"net/http"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Handler
	service port.Service
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Name        string `json:"name" binding:"required"`
	LastName    string `json:"last_name"`
	HomeAddress string `json:"home_address"`
	PhoneNumber string `json:"phone_number"`
}

// RegisterUser creates an inactive account and sends the verification link.
func (uh *UserHandler) RegisterUser(ctx *gin.Context) {
	req := registerRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	user, err := uh.service.RegisterUser(ctx, &domain.User{
		Email:       req.Email,
		Name:        req.Name,
		LastName:    req.LastName,
		HomeAddress: req.HomeAddress,
		PhoneNumber: req.PhoneNumber,
	}, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccessWithStatus(ctx, newUserResponse(user), http.StatusCreated)
}

func (uh *UserHandler) VerifyUser(ctx *gin.Context) {
	if err := uh.service.VerifyUser(ctx, ctx.Param("secret")); err != nil {
		uh.handleError(ctx, err)
		return
	}
	uh.handleSuccess(ctx, gin.H{"message": "account verified"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (uh *UserHandler) LoginUser(ctx *gin.Context) {
	req := loginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, struct {
		Token string `json:"token"`
	}{Token: token})
}

type recoverRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (uh *UserHandler) RequestPasswordReset(ctx *gin.Context) {
	req := recoverRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	if err := uh.service.RequestPasswordReset(ctx, req.Email); err != nil {
		uh.handleError(ctx, err)
		return
	}
	uh.handleSuccessWithStatus(ctx, nil, http.StatusAccepted)
}

type resetRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (uh *UserHandler) ResetPassword(ctx *gin.Context) {
	req := resetRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	if err := uh.service.ResetPassword(ctx, ctx.Param("secret"), req.Password); err != nil {
		uh.handleError(ctx, err)
		return
	}
	uh.handleSuccess(ctx, gin.H{"message": "password changed"})
}

func (uh *UserHandler) Me(ctx *gin.Context) {
	user, err := uh.service.GetUser(ctx, getPrincipal(ctx).UserID)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}
	uh.handleSuccess(ctx, newUserResponse(user))
}

func (uh *UserHandler) GetUser(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	user, err := uh.service.GetUser(ctx, id)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}
	uh.handleSuccess(ctx, newUserResponse(user))
}

type userPatchRequest struct {
	Name         *string   `json:"name"`
	LastName     *string   `json:"last_name"`
	HomeAddress  *string   `json:"home_address"`
	PhoneNumber  *string   `json:"phone_number"`
	Capabilities *[]string `json:"capabilities"`
	AgentProfit  *float64  `json:"agent_profit"`
}

func (uh *UserHandler) UpdateUser(ctx *gin.Context) {
	id, err := idParam(ctx, "id")
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	req := userPatchRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	patch := &domain.UserPatch{
		Name:        req.Name,
		LastName:    req.LastName,
		HomeAddress: req.HomeAddress,
		PhoneNumber: req.PhoneNumber,
	}
	if patch.AgentProfit, err = moneyPtr("agent_profit", req.AgentProfit); err != nil {
		uh.handleError(ctx, err)
		return
	}
	if req.Capabilities != nil {
		caps := make([]domain.Capability, 0, len(*req.Capabilities))
		for _, name := range *req.Capabilities {
			c, ok := domain.ParseCapability(name)
			if !ok {
				uh.handleError(ctx, domain.NewValidationError("capabilities", "unknown capability "+name))
				return
			}
			caps = append(caps, c)
		}
		set := domain.NewCapabilities(caps...)
		patch.Capabilities = &set
	}

	user, err := uh.service.UpdateUser(ctx, id, patch)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}
	uh.handleSuccess(ctx, newUserResponse(user))
}

type userFilterQuery struct {
	Name        *string `form:"name"`
	HomeAddress *string `form:"home_address"`
	Email       *string `form:"email"`
	LastName    *string `form:"last_name"`
	IsAgent     *bool   `form:"is_agent"`
}

func (uh *UserHandler) FilterUsers(ctx *gin.Context) {
	q := userFilterQuery{}
	if err := ctx.ShouldBindQuery(&q); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	list, err := uh.service.FilterUsers(ctx, &domain.UserFilter{
		Name:        q.Name,
		HomeAddress: q.HomeAddress,
		Email:       q.Email,
		LastName:    q.LastName,
		IsAgent:     q.IsAgent,
	})
	if err != nil {
		uh.handleError(ctx, err)
		return
	}
	uh.handleSuccess(ctx, mapList(list, newUserResponse))
}
