package port

import "github.com/MikeRez0/shoptrack/internal/core/domain"

type TokenPayload struct {
	UserID       uint64
	Capabilities domain.Capabilities
}

func (p *TokenPayload) Principal() domain.Principal {
	return domain.Principal{UserID: p.UserID, Capabilities: p.Capabilities}
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(user *domain.User) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
