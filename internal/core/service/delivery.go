package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"go.uber.org/zap"
)

// RecordDelivery links received products to a deliver receip, sets the
// delivered amounts and refreshes the status of the original products.
func (s *Service) RecordDelivery(ctx context.Context, event *domain.DeliveryEvent) (*domain.DeliverReport, error) {
	if event.PackageID != nil {
		return nil, &domain.ValidationError{
			Field:   "package_where_was_send",
			Message: domain.ErrConflictingTargets.Error(),
			Err:     domain.ErrConflictingTargets,
		}
	}
	if err := s.check(event); err != nil {
		return nil, err
	}

	var report *domain.DeliverReport
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		receip, err := repo.ReadDeliverReceip(ctx, event.DeliverReceipID)
		if err != nil {
			return domain.RefError("deliver_receip", err)
		}

		t := newTouched()
		for i, line := range event.Lines {
			field := fmt.Sprintf("delivered_products[%d]", i)

			pr, err := repo.ReadProductReceived(ctx, line.ProductReceivedID)
			if err != nil {
				return domain.RefError(field+".id", err)
			}
			if pr.DeliverReceipID != nil && *pr.DeliverReceipID != receip.ID {
				return fmt.Errorf("%s: %w", field, domain.ErrAlreadyDelivered)
			}
			if pr.Product != nil && pr.Product.OrderID != receip.OrderID {
				return domain.NewValidationError(field+".id", "product belongs to another order")
			}
			if line.AmountDelivered > pr.AmountReceived {
				return domain.NewValidationError(field+".amount_delivered", "can not exceed the amount received")
			}

			id := receip.ID
			pr.DeliverReceipID = &id
			pr.AmountDelivered = line.AmountDelivered
			if _, err := repo.UpdateProductReceived(ctx, pr); err != nil {
				return err
			}
			t.add(pr.ProductID)
		}

		if err := s.refreshAll(ctx, repo, t); err != nil {
			return err
		}

		receip, err = repo.ReadDeliverReceip(ctx, event.DeliverReceipID)
		if err != nil {
			return err
		}
		rates, err := s.rates(ctx, repo)
		if err != nil {
			return err
		}
		report, err = domain.NewDeliverReport(receip, rates)
		return err
	})
	if err != nil {
		return nil, s.fail("Record delivery", err)
	}

	s.logger.Info("delivery recorded",
		zap.Uint64("deliver_receip", event.DeliverReceipID), zap.Int("lines", len(event.Lines)))
	return report, nil
}

func (s *Service) CreateDeliverReceip(ctx context.Context, receip *domain.DeliverReceip) (*domain.DeliverReport, error) {
	if receip.Weight.Sign() < 0 {
		return nil, domain.NewValidationError("weight", "can not be negative")
	}
	if receip.DeliverDate.IsZero() {
		receip.DeliverDate = time.Now()
	}
	receip.Products = nil

	var report *domain.DeliverReport
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		if _, err := repo.ReadOrder(ctx, receip.OrderID); err != nil {
			return domain.RefError("order", err)
		}
		created, err := repo.CreateDeliverReceip(ctx, receip)
		if err != nil {
			return err
		}
		rates, err := s.rates(ctx, repo)
		if err != nil {
			return err
		}
		report, err = domain.NewDeliverReport(created, rates)
		return err
	})
	if err != nil {
		return nil, s.fail("Create deliver receip", err)
	}
	return report, nil
}

func (s *Service) GetDeliverReceip(ctx context.Context, receipID uint64) (*domain.DeliverReport, error) {
	receip, err := s.repo.ReadDeliverReceip(ctx, receipID)
	if err != nil {
		return nil, s.fail("Get deliver receip", err)
	}
	rates, err := s.rates(ctx, s.repo)
	if err != nil {
		return nil, s.fail("Get rates", err)
	}
	report, err := domain.NewDeliverReport(receip, rates)
	if err != nil {
		return nil, s.fail("Deliver report", err)
	}
	return report, nil
}

func (s *Service) FilterDeliverReceips(ctx context.Context,
	filter *domain.DeliverReceipFilter) ([]*domain.DeliverReport, error) {
	list, err := s.repo.ListDeliverReceips(ctx, filter)
	if err != nil {
		return nil, s.fail("Filter deliver receips", err)
	}
	rates, err := s.rates(ctx, s.repo)
	if err != nil {
		return nil, s.fail("Get rates", err)
	}

	result := make([]*domain.DeliverReport, 0, len(list))
	for _, d := range list {
		r, err := domain.NewDeliverReport(d, rates)
		if err != nil {
			return nil, s.fail("Deliver report", err)
		}
		result = append(result, r)
	}
	return result, nil
}
