package service

import (
	"context"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"go.uber.org/zap"
)

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.ProductReport, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Product
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		if _, err := repo.ReadOrder(ctx, product.OrderID); err != nil {
			return domain.RefError("order", err)
		}
		if _, err := repo.ReadShop(ctx, product.ShopName); err != nil {
			return domain.RefError("shop", err)
		}

		if product.TotalCost.IsZero() {
			quoted, err := product.QuotedCost()
			if err != nil {
				return err
			}
			product.TotalCost = quoted
		}
		product.Status = domain.ProductStatusOrdered
		product.Buyed = nil
		product.Received = nil

		var err error
		created, err = repo.CreateProduct(ctx, product)
		return err
	})
	if err != nil {
		return nil, s.fail("Create product", err)
	}

	return s.reportProduct(created)
}

func (s *Service) GetProduct(ctx context.Context, productID uint64) (*domain.ProductReport, error) {
	product, err := s.repo.ReadProduct(ctx, productID)
	if err != nil {
		return nil, s.fail("Get product", err)
	}
	return s.reportProduct(product)
}

// UpdateProduct edits the request data of a product. Status is never taken
// from the caller; it is derived again when the requested amount changes.
func (s *Service) UpdateProduct(ctx context.Context, productID uint64,
	patch *domain.ProductPatch) (*domain.ProductReport, error) {
	var updated *domain.Product
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		product, err := repo.ReadProduct(ctx, productID)
		if err != nil {
			return err
		}

		patch.Apply(product)
		if err := product.Validate(); err != nil {
			return err
		}
		if patch.ShopName != nil {
			if _, err := repo.ReadShop(ctx, product.ShopName); err != nil {
				return domain.RefError("shop", err)
			}
		}

		if _, err := repo.UpdateProduct(ctx, product); err != nil {
			return err
		}
		if _, err := s.refreshStatus(ctx, repo, productID); err != nil {
			return err
		}

		updated, err = repo.ReadProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, s.fail("Update product", err)
	}
	return s.reportProduct(updated)
}

func (s *Service) DeleteProduct(ctx context.Context, productID uint64) error {
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return s.fail("Delete product", err)
	}
	return nil
}

func (s *Service) FilterProducts(ctx context.Context, filter *domain.ProductFilter) ([]*domain.ProductReport, error) {
	list, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, s.fail("Filter products", err)
	}

	result := make([]*domain.ProductReport, 0, len(list))
	for _, p := range list {
		r, err := s.reportProduct(p)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// RecomputeAllStatuses derives the status of every product again and returns
// how many of them changed.
func (s *Service) RecomputeAllStatuses(ctx context.Context) (int, error) {
	list, err := s.repo.ListProducts(ctx, &domain.ProductFilter{})
	if err != nil {
		return 0, s.fail("List products", err)
	}

	changed := 0
	for _, p := range list {
		err := s.repo.Atomic(ctx, func(repo port.Repository) error {
			ok, err := s.refreshStatus(ctx, repo, p.ID)
			if ok {
				changed++
			}
			return err
		})
		if err != nil {
			return changed, s.fail("Recompute status", err)
		}
	}

	s.logger.Info("product statuses recomputed",
		zap.Int("products", len(list)), zap.Int("changed", changed))
	return changed, nil
}

// refreshStatus rewrites the stored status of a product from its aggregated
// counters. It must run in the same transaction as the event that changed them.
func (s *Service) refreshStatus(ctx context.Context, repo port.Repository, productID uint64) (bool, error) {
	product, err := repo.ReadProduct(ctx, productID)
	if err != nil {
		return false, err
	}
	counters, err := repo.ProductCounters(ctx, productID)
	if err != nil {
		return false, err
	}

	status := domain.DeriveStatus(product.AmountRequested, counters)
	if status == product.Status {
		return false, nil
	}

	s.logger.Debug("product status changed",
		zap.Uint64("product", productID),
		zap.String("from", string(product.Status)),
		zap.String("to", string(status)))

	return true, repo.UpdateProductStatus(ctx, productID, status)
}

func (s *Service) reportProduct(p *domain.Product) (*domain.ProductReport, error) {
	r, err := domain.NewProductReport(p)
	if err != nil {
		return nil, s.fail("Product report", err)
	}
	return r, nil
}
