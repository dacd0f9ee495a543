package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	notifier     port.Notifier
	images       port.ImageStore
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewService wires the use cases. images may be nil when no object storage is configured.
func NewService(repo port.Repository, tokenService port.TokenService,
	notifier port.Notifier, images port.ImageStore, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		notifier:     notifier,
		images:       images,
		validate:     validator.New(),
		logger:       logger,
	}, nil
}

// errors that are safe to hand to the caller as is
var exposed = []error{
	domain.ErrInternal,
	domain.ErrValidation,
	domain.ErrDataNotFound,
	domain.ErrConflictingData,
	domain.ErrNoUpdatedData,
	domain.ErrInvalidCredentials,
	domain.ErrInactiveUser,
	domain.ErrTokenCreation,
	domain.ErrImmutableField,
	domain.ErrAlreadyDelivered,
	domain.ErrImageStoreDisabled,
}

// fail logs unexpected errors and hides them behind ErrInternal.
func (s *Service) fail(op string, err error) error {
	for _, e := range exposed {
		if errors.Is(err, e) {
			return err
		}
	}
	s.logger.Error(op, zap.Error(err))
	return domain.ErrInternal
}

// check runs struct tag validation and reports the first broken rule.
func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		return domain.NewValidationError(field, fmt.Sprintf("failed on the '%s' rule", fe.Tag()))
	}
	return domain.NewValidationError("", err.Error())
}

// rates returns the common information record, creating it on first use.
func (s *Service) rates(ctx context.Context, repo port.Repository) (*domain.Rates, error) {
	rates, err := repo.ReadRates(ctx)
	if err == nil {
		return rates, nil
	}
	if !errors.Is(err, domain.ErrDataNotFound) {
		return nil, err
	}
	return repo.SaveRates(ctx, &domain.Rates{})
}
