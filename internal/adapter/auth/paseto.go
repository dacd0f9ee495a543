package auth

import (
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/MikeRez0/shoptrack/internal/adapter/config"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
)

type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
	ttl    time.Duration
}

// New builds the token service. Without a configured key tokens do not
// survive a restart.
func New(conf *config.Auth) (port.TokenService, error) {
	key := paseto.NewV4SymmetricKey()
	if conf.Key != "" {
		raw, err := conf.KeyBytes()
		if err != nil {
			return nil, err
		}
		key, err = paseto.V4SymmetricKeyFromBytes(raw)
		if err != nil {
			return nil, err
		}
	}

	parser := paseto.NewParserWithoutExpiryCheck()

	ttl := conf.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	s := PasetoToken{
		parser: &parser,
		key:    &key,
		ttl:    ttl,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(user *domain.User) (string, error) {
	token := paseto.NewToken()
	now := time.Now()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.ttl))

	payload := port.TokenPayload{UserID: user.ID, Capabilities: user.Capabilities}
	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	exp, err := parsedToken.GetExpiration()
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if time.Now().After(exp) {
		return nil, domain.ErrExpiredToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
