package http

import (
	"slices"
	"strings"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/gin-gonic/gin"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const userPayloadKey = "user_payload"

func authCheck(tokenService port.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			handleAbort(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Fields(header)
		if len(words) != 2 {
			handleAbort(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			handleAbort(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		payload, err := tokenService.VerifyToken(words[1])
		if err != nil {
			handleAbort(ctx, err)
			return
		}

		ctx.Set(userPayloadKey, payload)

		ctx.Next()
	}
}

// requireCapability lets through callers holding at least one of caps.
// Staff passes every check.
func requireCapability(caps ...domain.Capability) gin.HandlerFunc {
	allowed := append(slices.Clone(caps), domain.CapStaff)
	return func(ctx *gin.Context) {
		principal := getPrincipal(ctx)
		if !principal.Capabilities.HasAny(allowed...) {
			handleAbort(ctx, domain.ErrForbidden)
			return
		}
		ctx.Next()
	}
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(userPayloadKey).(*port.TokenPayload)
}

func getPrincipal(ctx *gin.Context) domain.Principal {
	return getAuthPayload(ctx).Principal()
}
