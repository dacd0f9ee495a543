package service

import (
	"context"
	"errors"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/MikeRez0/shoptrack/internal/core/utils"
	"go.uber.org/zap"
)

func (s *Service) RegisterUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user.Email == "" || user.Name == "" {
		return nil, domain.NewValidationError("email", "email and name must be set")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "must be set")
	}

	exUser, err := s.repo.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		return nil, s.fail("Get user", err)
	}
	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, s.fail("Hash password", err)
	}

	secret := utils.NewSecret()
	user.Password = hashed
	user.Capabilities = 0
	user.IsActive = false
	user.IsVerified = false
	user.VerificationSecret = secret
	user.SentVerificationEmail = true
	user.DateJoined = time.Now()

	var created *domain.User
	err = s.repo.Atomic(ctx, func(repo port.Repository) error {
		var err error
		created, err = repo.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		return s.notifier.SendVerification(ctx, created, secret)
	})
	if err != nil {
		return nil, s.fail("Create user", err)
	}

	return created, nil
}

func (s *Service) VerifyUser(ctx context.Context, secret string) error {
	if secret == "" {
		return domain.ErrDataNotFound
	}
	user, err := s.repo.GetUserByVerificationSecret(ctx, secret)
	if err != nil {
		return s.fail("Get user by verification secret", err)
	}

	user.Verify()
	_, err = s.repo.UpdateUser(ctx, user)
	if err != nil {
		return s.fail("Verify user", err)
	}
	s.logger.Info("user verified", zap.Uint64("user", user.ID))
	return nil
}

func (s *Service) LoginUser(ctx context.Context, email string, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", s.fail("Get user", err)
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", domain.ErrInactiveUser
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		user, err := repo.GetUserByEmail(ctx, email)
		if err != nil {
			return domain.RefError("email", err)
		}

		secret := utils.NewSecret()
		user.PasswordSecret = secret
		if _, err := repo.UpdateUser(ctx, user); err != nil {
			return err
		}
		return s.notifier.SendPasswordRecovery(ctx, user, secret)
	})
	if err != nil {
		return s.fail("Request password reset", err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, secret string, password string) error {
	if secret == "" {
		return domain.ErrDataNotFound
	}
	if password == "" {
		return domain.NewValidationError("password", "must be set")
	}

	user, err := s.repo.GetUserByPasswordSecret(ctx, secret)
	if err != nil {
		return s.fail("Get user by password secret", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return s.fail("Hash password", err)
	}
	user.Password = hashed
	user.PasswordSecret = ""

	_, err = s.repo.UpdateUser(ctx, user)
	if err != nil {
		return s.fail("Reset password", err)
	}
	return nil
}

func (s *Service) GetUser(ctx context.Context, userID uint64) (*domain.User, error) {
	user, err := s.repo.ReadUser(ctx, userID)
	if err != nil {
		return nil, s.fail("Get user", err)
	}
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, userID uint64, patch *domain.UserPatch) (*domain.User, error) {
	if patch.AgentProfit != nil && patch.AgentProfit.Sign() < 0 {
		return nil, domain.NewValidationError("agent_profit", "can not be negative")
	}

	var updated *domain.User
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		user, err := repo.ReadUser(ctx, userID)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.LastName != nil {
			user.LastName = *patch.LastName
		}
		if patch.HomeAddress != nil {
			user.HomeAddress = *patch.HomeAddress
		}
		if patch.PhoneNumber != nil {
			user.PhoneNumber = *patch.PhoneNumber
		}
		if patch.Capabilities != nil {
			user.Capabilities = *patch.Capabilities
		}
		if patch.AgentProfit != nil {
			user.AgentProfit = *patch.AgentProfit
		}

		updated, err = repo.UpdateUser(ctx, user)
		return err
	})
	if err != nil {
		return nil, s.fail("Update user", err)
	}
	return updated, nil
}

func (s *Service) FilterUsers(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error) {
	list, err := s.repo.ListUsers(ctx, filter)
	if err != nil {
		return nil, s.fail("Filter users", err)
	}
	return list, nil
}
