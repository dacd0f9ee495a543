package domain

import "github.com/govalues/decimal"

// OrderReport is an order with its derived money figures.
type OrderReport struct {
	Order                 *Order
	TotalCost             decimal.Decimal
	ReceivedValueOfClient decimal.Decimal
	ExtraPayments         decimal.Decimal
	ReceivedProducts      int64
}

func NewOrderReport(o *Order, rates *Rates) (*OrderReport, error) {
	total, err := o.TotalCost()
	if err != nil {
		return nil, err
	}
	received, err := o.ReceivedValueOfClient(rates)
	if err != nil {
		return nil, err
	}
	extra, err := received.Sub(total)
	if err != nil {
		return nil, err
	}

	var receivedProducts int64
	for _, p := range o.Products {
		receivedProducts += p.AmountReceived()
	}

	return &OrderReport{
		Order:                 o,
		TotalCost:             total,
		ReceivedValueOfClient: received,
		ExtraPayments:         extra,
		ReceivedProducts:      receivedProducts,
	}, nil
}

type DeliverReport struct {
	DeliverReceip      *DeliverReceip
	TotalCostOfDeliver decimal.Decimal
}

func NewDeliverReport(d *DeliverReceip, rates *Rates) (*DeliverReport, error) {
	total, err := d.TotalCostOfDeliver(rates)
	if err != nil {
		return nil, err
	}
	return &DeliverReport{DeliverReceip: d, TotalCostOfDeliver: total}, nil
}

type ShoppingReport struct {
	ShoppingReceip      *ShoppingReceip
	TotalCostOfShopping decimal.Decimal
}

func NewShoppingReport(s *ShoppingReceip) (*ShoppingReport, error) {
	total, err := s.TotalCostOfShopping()
	if err != nil {
		return nil, err
	}
	return &ShoppingReport{ShoppingReceip: s, TotalCostOfShopping: total}, nil
}

type ProductReport struct {
	Product         *Product
	CostPerProduct  decimal.Decimal
	AmountBuyed     int64
	AmountReceived  int64
	AmountDelivered int64
}

func NewProductReport(p *Product) (*ProductReport, error) {
	unit, err := p.CostPerProduct()
	if err != nil {
		return nil, err
	}
	return &ProductReport{
		Product:         p,
		CostPerProduct:  unit,
		AmountBuyed:     p.AmountBuyed(),
		AmountReceived:  p.AmountReceived(),
		AmountDelivered: p.AmountDelivered(),
	}, nil
}
