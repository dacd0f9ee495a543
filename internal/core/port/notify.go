package port

import (
	"context"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

// Notifier delivers account messages. The secret is generated by the service.
//
//go:generate mockgen -source=notify.go -destination=mock/notify.go -package=mock
type Notifier interface {
	SendVerification(ctx context.Context, user *domain.User, secret string) error
	SendPasswordRecovery(ctx context.Context, user *domain.User, secret string) error
}
