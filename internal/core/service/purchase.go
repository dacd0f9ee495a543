package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"go.uber.org/zap"
)

// touched keeps the ids of products changed by an event in first-seen order.
type touched struct {
	seen map[uint64]struct{}
	ids  []uint64
}

func newTouched() *touched {
	return &touched{seen: make(map[uint64]struct{})}
}

func (t *touched) add(id uint64) {
	if _, ok := t.seen[id]; ok {
		return
	}
	t.seen[id] = struct{}{}
	t.ids = append(t.ids, id)
}

func (s *Service) refreshAll(ctx context.Context, repo port.Repository, t *touched) error {
	for _, id := range t.ids {
		if _, err := s.refreshStatus(ctx, repo, id); err != nil {
			return fmt.Errorf("refresh status of product %d: %w", id, err)
		}
	}
	return nil
}

// RecordPurchase stores a shopping receip with all its line items and
// refreshes the status of every purchased product. Nothing is stored when
// any line fails.
func (s *Service) RecordPurchase(ctx context.Context, event *domain.PurchaseEvent) (*domain.ShoppingReport, error) {
	if err := s.check(event); err != nil {
		return nil, err
	}

	buyDate := event.BuyDate
	if buyDate.IsZero() {
		buyDate = time.Now()
	}

	var receip *domain.ShoppingReceip
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		if _, err := repo.ReadBuyingAccount(ctx, event.BuyingAccountID); err != nil {
			return domain.RefError("shopping_account", err)
		}
		if _, err := repo.ReadShop(ctx, event.ShopName); err != nil {
			return domain.RefError("shop_of_buy", err)
		}

		created, err := repo.CreateShoppingReceip(ctx, &domain.ShoppingReceip{
			BuyingAccountID: event.BuyingAccountID,
			ShopName:        event.ShopName,
			Status:          event.Status,
			BuyDate:         buyDate,
		})
		if err != nil {
			return err
		}

		t := newTouched()
		for i, line := range event.Lines {
			if _, err := repo.ReadProduct(ctx, line.ProductID); err != nil {
				return domain.RefError(fmt.Sprintf("buyed_products[%d].original_product", i), err)
			}

			pb := &domain.ProductBuyed{
				ProductID:        line.ProductID,
				ShoppingReceipID: created.ID,
				AmountBuyed:      line.AmountBuyed,
				ActualCost:       line.ActualCost,
				ShopDiscount:     line.ShopDiscount,
				OfferDiscount:    line.OfferDiscount,
				BuyDate:          buyDate,
				Observation:      line.Observation,
			}
			if err := pb.ComputeRealCost(); err != nil {
				if ve, ok := err.(*domain.ValidationError); ok {
					ve.Field = fmt.Sprintf("buyed_products[%d].%s", i, ve.Field)
				}
				return err
			}

			pb, err = repo.CreateProductBuyed(ctx, pb)
			if err != nil {
				return err
			}
			created.Products = append(created.Products, pb)
			t.add(line.ProductID)
		}

		if err := s.refreshAll(ctx, repo, t); err != nil {
			return err
		}
		receip = created
		return nil
	})
	if err != nil {
		return nil, s.fail("Record purchase", err)
	}

	s.logger.Info("purchase recorded",
		zap.Uint64("shopping_receip", receip.ID), zap.Int("lines", len(receip.Products)))

	report, err := domain.NewShoppingReport(receip)
	if err != nil {
		return nil, s.fail("Shopping report", err)
	}
	return report, nil
}

func (s *Service) GetShoppingReceip(ctx context.Context, receipID uint64) (*domain.ShoppingReport, error) {
	receip, err := s.repo.ReadShoppingReceip(ctx, receipID)
	if err != nil {
		return nil, s.fail("Get shopping receip", err)
	}
	report, err := domain.NewShoppingReport(receip)
	if err != nil {
		return nil, s.fail("Shopping report", err)
	}
	return report, nil
}

func (s *Service) FilterShoppingReceips(ctx context.Context,
	filter *domain.ShoppingReceipFilter) ([]*domain.ShoppingReport, error) {
	if len(filter.BuyedProducts) > 0 {
		n, err := s.repo.CountProductsBuyed(ctx, filter.BuyedProducts)
		if err != nil {
			return nil, s.fail("Count products buyed", err)
		}
		if n != len(unique(filter.BuyedProducts)) {
			return nil, domain.NewValidationError("buyed_products", "some of the listed product ids do not exist")
		}
	}

	list, err := s.repo.ListShoppingReceips(ctx, filter)
	if err != nil {
		return nil, s.fail("Filter shopping receips", err)
	}

	result := make([]*domain.ShoppingReport, 0, len(list))
	for _, r := range list {
		report, err := domain.NewShoppingReport(r)
		if err != nil {
			return nil, s.fail("Shopping report", err)
		}
		result = append(result, report)
	}
	return result, nil
}

func unique(ids []uint64) []uint64 {
	t := newTouched()
	for _, id := range ids {
		t.add(id)
	}
	return t.ids
}
