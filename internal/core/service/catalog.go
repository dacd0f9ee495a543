package service

import (
	"context"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

func (s *Service) CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	if err := s.check(shop); err != nil {
		return nil, err
	}
	created, err := s.repo.CreateShop(ctx, shop)
	if err != nil {
		return nil, s.fail("Create shop", err)
	}
	return created, nil
}

func (s *Service) ListShops(ctx context.Context) ([]*domain.Shop, error) {
	list, err := s.repo.ListShops(ctx)
	if err != nil {
		return nil, s.fail("List shops", err)
	}
	return list, nil
}

func (s *Service) GetShop(ctx context.Context, name string) (*domain.Shop, error) {
	shop, err := s.repo.ReadShop(ctx, name)
	if err != nil {
		return nil, s.fail("Get shop", err)
	}
	return shop, nil
}

func (s *Service) DeleteShop(ctx context.Context, name string) error {
	if err := s.repo.DeleteShop(ctx, name); err != nil {
		return s.fail("Delete shop", err)
	}
	return nil
}

func (s *Service) CreateBuyingAccount(ctx context.Context, account *domain.BuyingAccount) (*domain.BuyingAccount, error) {
	if err := s.check(account); err != nil {
		return nil, err
	}
	created, err := s.repo.CreateBuyingAccount(ctx, account)
	if err != nil {
		return nil, s.fail("Create buying account", err)
	}
	return created, nil
}

func (s *Service) ListBuyingAccounts(ctx context.Context) ([]*domain.BuyingAccount, error) {
	list, err := s.repo.ListBuyingAccounts(ctx)
	if err != nil {
		return nil, s.fail("List buying accounts", err)
	}
	return list, nil
}

func (s *Service) GetRates(ctx context.Context) (*domain.Rates, error) {
	rates, err := s.rates(ctx, s.repo)
	if err != nil {
		return nil, s.fail("Get rates", err)
	}
	return rates, nil
}

func (s *Service) UpdateRates(ctx context.Context, rates *domain.Rates) (*domain.Rates, error) {
	if rates.ChangeRate.Sign() < 0 {
		return nil, domain.NewValidationError("change_rate", "can not be negative")
	}
	if rates.CostPerPound.Sign() < 0 {
		return nil, domain.NewValidationError("cost_per_pound", "can not be negative")
	}

	saved, err := s.repo.SaveRates(ctx, rates)
	if err != nil {
		return nil, s.fail("Update rates", err)
	}
	return saved, nil
}
