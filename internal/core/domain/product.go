package domain

import (
	"github.com/govalues/decimal"
)

type Product struct {
	ID               uint64
	OrderID          uint64
	ShopName         string
	SKU              string
	Name             string
	Link             string
	Description      string
	Observation      string
	Category         string
	Picture          string
	AmountRequested  int64
	ShopCost         decimal.Decimal
	ShopDeliveryCost decimal.Decimal
	ShopTaxes        decimal.Decimal
	OwnTaxes         decimal.Decimal
	AddedTaxes       decimal.Decimal
	TotalCost        decimal.Decimal
	Status           ProductStatus

	Buyed    []*ProductBuyed
	Received []*ProductReceived
}

// Validate checks the numeric constraints of a product.
func (p *Product) Validate() error {
	if p.AmountRequested <= 0 {
		return NewValidationError("amount_requested", "must be a positive number")
	}
	if p.ShopCost.Sign() < 0 {
		return NewValidationError("shop_cost", "can not be negative")
	}
	if p.TotalCost.Sign() < 0 {
		return NewValidationError("total_cost", "can not be negative")
	}
	return nil
}

// QuotedCost is the cost announced by the shop:
// shop cost × amount requested + delivery cost + all taxes.
func (p *Product) QuotedCost() (decimal.Decimal, error) {
	total, err := p.ShopCost.Mul(decimal.MustNew(p.AmountRequested, 0))
	if err != nil {
		return decimal.Zero, err
	}
	return sum(total, p.ShopDeliveryCost, p.ShopTaxes, p.OwnTaxes, p.AddedTaxes)
}

type ProductPatch struct {
	SKU              *string
	Name             *string
	Link             *string
	Description      *string
	Observation      *string
	Category         *string
	Picture          *string
	ShopName         *string
	AmountRequested  *int64
	ShopCost         *decimal.Decimal
	ShopDeliveryCost *decimal.Decimal
	ShopTaxes        *decimal.Decimal
	OwnTaxes         *decimal.Decimal
	AddedTaxes       *decimal.Decimal
	TotalCost        *decimal.Decimal
}

// Apply copies the set fields of the patch into p.
func (pp *ProductPatch) Apply(p *Product) {
	setString(&p.SKU, pp.SKU)
	setString(&p.Name, pp.Name)
	setString(&p.Link, pp.Link)
	setString(&p.Description, pp.Description)
	setString(&p.Observation, pp.Observation)
	setString(&p.Category, pp.Category)
	setString(&p.Picture, pp.Picture)
	setString(&p.ShopName, pp.ShopName)
	if pp.AmountRequested != nil {
		p.AmountRequested = *pp.AmountRequested
	}
	setDecimal(&p.ShopCost, pp.ShopCost)
	setDecimal(&p.ShopDeliveryCost, pp.ShopDeliveryCost)
	setDecimal(&p.ShopTaxes, pp.ShopTaxes)
	setDecimal(&p.OwnTaxes, pp.OwnTaxes)
	setDecimal(&p.AddedTaxes, pp.AddedTaxes)
	setDecimal(&p.TotalCost, pp.TotalCost)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}
