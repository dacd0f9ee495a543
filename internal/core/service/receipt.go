package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"go.uber.org/zap"
)

// RecordReceipt stores the products that arrived with a package and
// refreshes their status.
func (s *Service) RecordReceipt(ctx context.Context, event *domain.ReceiptEvent) (*domain.Package, error) {
	if err := s.check(event); err != nil {
		return nil, err
	}

	receptionDate := event.ReceptionDate
	if receptionDate.IsZero() {
		receptionDate = time.Now()
	}

	var pkg *domain.Package
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		if _, err := repo.ReadPackage(ctx, event.PackageID); err != nil {
			return domain.RefError("package_where_was_send", err)
		}

		t := newTouched()
		for i, line := range event.Lines {
			if _, err := repo.ReadProduct(ctx, line.ProductID); err != nil {
				return domain.RefError(fmt.Sprintf("contained_products[%d].original_product", i), err)
			}

			_, err := repo.CreateProductReceived(ctx, &domain.ProductReceived{
				ProductID:      line.ProductID,
				PackageID:      event.PackageID,
				AmountReceived: line.AmountReceived,
				Observation:    line.Observation,
				ReceptionDate:  receptionDate,
			})
			if err != nil {
				return err
			}
			t.add(line.ProductID)
		}

		if err := s.refreshAll(ctx, repo, t); err != nil {
			return err
		}

		var err error
		pkg, err = repo.ReadPackage(ctx, event.PackageID)
		return err
	})
	if err != nil {
		return nil, s.fail("Record receipt", err)
	}

	s.logger.Info("receipt recorded",
		zap.Uint64("package", event.PackageID), zap.Int("lines", len(event.Lines)))
	return pkg, nil
}

func (s *Service) CreatePackage(ctx context.Context, pkg *domain.Package) (*domain.Package, error) {
	pkg.Products = nil
	created, err := s.repo.CreatePackage(ctx, pkg)
	if err != nil {
		return nil, s.fail("Create package", err)
	}
	return created, nil
}

func (s *Service) GetPackage(ctx context.Context, packageID uint64) (*domain.Package, error) {
	pkg, err := s.repo.ReadPackage(ctx, packageID)
	if err != nil {
		return nil, s.fail("Get package", err)
	}
	return pkg, nil
}

func (s *Service) FilterPackages(ctx context.Context, filter *domain.PackageFilter) ([]*domain.Package, error) {
	if len(filter.ContainedProducts) > 0 {
		n, err := s.repo.CountProductsReceived(ctx, filter.ContainedProducts)
		if err != nil {
			return nil, s.fail("Count products received", err)
		}
		if n != len(unique(filter.ContainedProducts)) {
			return nil, domain.NewValidationError("contained_products", "some of the listed product ids do not exist")
		}
	}

	list, err := s.repo.ListPackages(ctx, filter)
	if err != nil {
		return nil, s.fail("Filter packages", err)
	}
	return list, nil
}
