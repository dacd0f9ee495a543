package service

import (
	"context"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
)

// CreateOrder opens an order for a client. The caller becomes the sales
// manager and has to be an agent.
func (s *Service) CreateOrder(ctx context.Context, principal domain.Principal,
	in *domain.NewOrder) (*domain.OrderReport, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	if !principal.Capabilities.Has(domain.CapAgent) {
		return nil, &domain.ValidationError{
			Field:   "sales_manager",
			Message: domain.ErrNotAnAgent.Error(),
			Err:     domain.ErrNotAnAgent,
		}
	}

	client, err := s.repo.GetUserByEmail(ctx, in.ClientEmail)
	if err != nil {
		return nil, s.fail("Get client", domain.RefError("client", err))
	}

	status := in.Status
	if status == "" {
		status = domain.OrderStatusOrdered
	}

	order, err := s.repo.CreateOrder(ctx, &domain.Order{
		ClientID:       client.ID,
		SalesManagerID: principal.UserID,
		Status:         status,
		PayStatus:      in.PayStatus,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return nil, s.fail("Create order", err)
	}

	return s.reportOrder(ctx, s.repo, order)
}

func (s *Service) GetOrder(ctx context.Context, orderID uint64) (*domain.OrderReport, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, s.fail("Get order", err)
	}
	return s.reportOrder(ctx, s.repo, order)
}

// UpdateOrder changes client, status or payment status. The sales manager is immutable.
func (s *Service) UpdateOrder(ctx context.Context, orderID uint64,
	patch *domain.OrderPatch) (*domain.OrderReport, error) {
	if err := s.check(patch); err != nil {
		return nil, err
	}

	var report *domain.OrderReport
	err := s.repo.Atomic(ctx, func(repo port.Repository) error {
		order, err := repo.ReadOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if patch.SalesManagerID != nil && *patch.SalesManagerID != order.SalesManagerID {
			return domain.ErrImmutableField
		}
		if patch.ClientEmail != nil {
			client, err := repo.GetUserByEmail(ctx, *patch.ClientEmail)
			if err != nil {
				return domain.RefError("client", err)
			}
			order.ClientID = client.ID
		}
		if patch.Status != nil {
			order.Status = *patch.Status
		}
		if patch.PayStatus != nil {
			order.PayStatus = *patch.PayStatus
		}

		if _, err := repo.UpdateOrder(ctx, order); err != nil {
			return err
		}
		order, err = repo.ReadOrder(ctx, orderID)
		if err != nil {
			return err
		}
		report, err = s.reportOrder(ctx, repo, order)
		return err
	})
	if err != nil {
		return nil, s.fail("Update order", err)
	}
	return report, nil
}

// DeleteOrder removes the order with its products and their history.
func (s *Service) DeleteOrder(ctx context.Context, orderID uint64) error {
	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		return s.fail("Delete order", err)
	}
	return nil
}

func (s *Service) FilterOrders(ctx context.Context, filter *domain.OrderFilter) ([]*domain.OrderReport, error) {
	list, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, s.fail("Filter orders", err)
	}

	rates, err := s.rates(ctx, s.repo)
	if err != nil {
		return nil, s.fail("Get rates", err)
	}

	result := make([]*domain.OrderReport, 0, len(list))
	for _, o := range list {
		r, err := domain.NewOrderReport(o, rates)
		if err != nil {
			return nil, s.fail("Order report", err)
		}
		result = append(result, r)
	}
	return result, nil
}

func (s *Service) reportOrder(ctx context.Context, repo port.Repository, order *domain.Order) (*domain.OrderReport, error) {
	rates, err := s.rates(ctx, repo)
	if err != nil {
		return nil, s.fail("Get rates", err)
	}
	report, err := domain.NewOrderReport(order, rates)
	if err != nil {
		return nil, s.fail("Order report", err)
	}
	return report, nil
}
