package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// ShoppingReceip is one shopping trip made with a buying account in a shop.
type ShoppingReceip struct {
	ID              uint64
	BuyingAccountID uint64
	ShopName        string
	Status          string
	BuyDate         time.Time

	Products []*ProductBuyed
}

// ProductBuyed is a purchase line item. It is never updated after creation.
type ProductBuyed struct {
	ID               uint64
	ProductID        uint64
	ShoppingReceipID uint64
	AmountBuyed      int64
	ActualCost       decimal.Decimal
	ShopDiscount     decimal.Decimal
	OfferDiscount    decimal.Decimal
	RealCost         decimal.Decimal
	BuyDate          time.Time
	Observation      string
}

// ComputeRealCost sets RealCost to actual cost × amount minus both discounts.
func (pb *ProductBuyed) ComputeRealCost() error {
	if pb.AmountBuyed <= 0 {
		return NewValidationError("amount_buyed", "must be a positive number")
	}
	if pb.ActualCost.Sign() < 0 {
		return NewValidationError("actual_cost_of_product", "can not be negative")
	}
	if pb.ShopDiscount.Sign() < 0 || pb.OfferDiscount.Sign() < 0 {
		return NewValidationError("discounts", "can not be negative")
	}

	gross, err := pb.ActualCost.Mul(decimal.MustNew(pb.AmountBuyed, 0))
	if err != nil {
		return err
	}
	net, err := gross.Sub(pb.ShopDiscount)
	if err != nil {
		return err
	}
	net, err = net.Sub(pb.OfferDiscount)
	if err != nil {
		return err
	}
	pb.RealCost = net
	return nil
}

type PurchaseLine struct {
	ProductID     uint64 `validate:"required"`
	AmountBuyed   int64  `validate:"gt=0"`
	ActualCost    decimal.Decimal
	ShopDiscount  decimal.Decimal
	OfferDiscount decimal.Decimal
	Observation   string
}

// PurchaseEvent records a shopping receip together with its line items.
type PurchaseEvent struct {
	BuyingAccountID uint64 `validate:"required"`
	ShopName        string `validate:"required"`
	Status          string
	BuyDate         time.Time
	Lines           []PurchaseLine `validate:"dive"`
}
