package notify

import (
	"context"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"go.uber.org/zap"
)

// LogNotifier writes account messages to the log instead of sending them.
type LogNotifier struct {
	siteURL string
	logger  *zap.Logger
}

var _ port.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(siteURL string, logger *zap.Logger) *LogNotifier {
	return &LogNotifier{siteURL: siteURL, logger: logger}
}

func (n *LogNotifier) SendVerification(_ context.Context, user *domain.User, secret string) error {
	n.log(user, verificationMessage(n.siteURL, user, secret))
	return nil
}

func (n *LogNotifier) SendPasswordRecovery(_ context.Context, user *domain.User, secret string) error {
	n.log(user, recoveryMessage(n.siteURL, user, secret))
	return nil
}

func (n *LogNotifier) log(user *domain.User, m message) {
	n.logger.Info("email",
		zap.String("to", user.Email),
		zap.String("subject", m.subject),
		zap.String("body", m.body))
}
