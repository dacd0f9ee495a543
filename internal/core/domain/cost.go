package domain

import (
	"fmt"

	"github.com/govalues/decimal"
)

// CostPerProduct is the purchase-weighted average unit cost. Zero when nothing was bought.
func (p *Product) CostPerProduct() (decimal.Decimal, error) {
	var amount int64
	spent := decimal.Zero
	for _, b := range p.Buyed {
		line, err := b.ActualCost.Mul(decimal.MustNew(b.AmountBuyed, 0))
		if err != nil {
			return decimal.Zero, fmt.Errorf("math error: %w", err)
		}
		spent, err = spent.Add(line)
		if err != nil {
			return decimal.Zero, fmt.Errorf("math error: %w", err)
		}
		amount += b.AmountBuyed
	}
	if amount == 0 {
		return decimal.Zero, nil
	}

	avg, err := spent.Quo(decimal.MustNew(amount, 0))
	if err != nil {
		return decimal.Zero, fmt.Errorf("math error: %w", err)
	}
	return avg, nil
}

// TotalCostOfShopping sums the real cost of every purchase line.
func (s *ShoppingReceip) TotalCostOfShopping() (decimal.Decimal, error) {
	costs := make([]decimal.Decimal, 0, len(s.Products))
	for _, b := range s.Products {
		costs = append(costs, b.RealCost)
	}
	return sum(costs...)
}

// TotalCostOfDeliver is weight × cost per pound plus the purchase value of
// every delivered line. Each line must carry its original product with the
// purchase history loaded.
func (d *DeliverReceip) TotalCostOfDeliver(rates *Rates) (decimal.Decimal, error) {
	if rates == nil {
		return decimal.Zero, ErrRatesNotInitialized
	}

	total, err := d.Weight.Mul(rates.CostPerPound)
	if err != nil {
		return decimal.Zero, fmt.Errorf("math error: %w", err)
	}
	for _, pr := range d.Products {
		if pr.Product == nil {
			return decimal.Zero, fmt.Errorf("product received %d: %w", pr.ID, ErrIncompleteAggregate)
		}
		unit, err := pr.Product.CostPerProduct()
		if err != nil {
			return decimal.Zero, err
		}
		line, err := unit.Mul(decimal.MustNew(pr.AmountReceived, 0))
		if err != nil {
			return decimal.Zero, fmt.Errorf("math error: %w", err)
		}
		total, err = total.Add(line)
		if err != nil {
			return decimal.Zero, fmt.Errorf("math error: %w", err)
		}
	}
	return total, nil
}

// TotalCost sums the total cost of the order's products.
func (o *Order) TotalCost() (decimal.Decimal, error) {
	costs := make([]decimal.Decimal, 0, len(o.Products))
	for _, p := range o.Products {
		costs = append(costs, p.TotalCost)
	}
	return sum(costs...)
}

// ReceivedValueOfClient sums the cost of every delivery made for the order.
func (o *Order) ReceivedValueOfClient(rates *Rates) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range o.DeliverReceips {
		c, err := d.TotalCostOfDeliver(rates)
		if err != nil {
			return decimal.Zero, err
		}
		total, err = total.Add(c)
		if err != nil {
			return decimal.Zero, fmt.Errorf("math error: %w", err)
		}
	}
	return total, nil
}

// ExtraPayments is positive when the client overpaid and negative when underpaid.
func (o *Order) ExtraPayments(rates *Rates) (decimal.Decimal, error) {
	received, err := o.ReceivedValueOfClient(rates)
	if err != nil {
		return decimal.Zero, err
	}
	cost, err := o.TotalCost()
	if err != nil {
		return decimal.Zero, err
	}
	extra, err := received.Sub(cost)
	if err != nil {
		return decimal.Zero, fmt.Errorf("math error: %w", err)
	}
	return extra, nil
}

func sum(values ...decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range values {
		var err error
		total, err = total.Add(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("math error: %w", err)
		}
	}
	return total, nil
}
