package domain

import (
	"time"
)

const OrderStatusOrdered = "Ordered"

type Order struct {
	ID             uint64
	ClientID       uint64
	SalesManagerID uint64
	Status         string
	PayStatus      string
	CreatedAt      time.Time

	Client         *User
	SalesManager   *User
	Products       []*Product
	DeliverReceips []*DeliverReceip
}

// NewOrder is the input of order creation. The sales manager is taken from the caller.
type NewOrder struct {
	ClientEmail string `validate:"required,email"`
	Status      string
	PayStatus   string
}

type OrderPatch struct {
	ClientEmail    *string `validate:"omitempty,email"`
	SalesManagerID *uint64
	Status         *string
	PayStatus      *string
}
