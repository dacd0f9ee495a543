package notify

import (
	"context"
	"fmt"

	"github.com/MikeRez0/shoptrack/internal/adapter/config"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type SMTPNotifier struct {
	client  *mail.Client
	from    string
	siteURL string
	logger  *zap.Logger
}

var _ port.Notifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(conf *config.Mail, logger *zap.Logger) (*SMTPNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(conf.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if conf.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(conf.Username),
			mail.WithPassword(conf.Password),
		)
	}

	client, err := mail.NewClient(conf.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPNotifier{
		client:  client,
		from:    conf.From,
		siteURL: conf.SiteURL,
		logger:  logger,
	}, nil
}

func (n *SMTPNotifier) SendVerification(ctx context.Context, user *domain.User, secret string) error {
	return n.send(ctx, user, verificationMessage(n.siteURL, user, secret))
}

func (n *SMTPNotifier) SendPasswordRecovery(ctx context.Context, user *domain.User, secret string) error {
	return n.send(ctx, user, recoveryMessage(n.siteURL, user, secret))
}

func (n *SMTPNotifier) send(ctx context.Context, user *domain.User, m message) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("bad sender address: %w", err)
	}
	if err := msg.To(user.Email); err != nil {
		return fmt.Errorf("bad recipient address: %w", err)
	}
	msg.Subject(m.subject)
	msg.SetBodyString(mail.TypeTextPlain, m.body)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	n.logger.Debug("email sent", zap.String("to", user.Email), zap.String("subject", m.subject))
	return nil
}
