package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// DeliverReceip is a hand-over of received products to the client of an order.
type DeliverReceip struct {
	ID          uint64
	OrderID     uint64
	Weight      decimal.Decimal
	Status      string
	DeliverDate time.Time
	Picture     string

	Products []*ProductReceived
}

type DeliveryLine struct {
	ProductReceivedID uint64 `validate:"required"`
	AmountDelivered   int64  `validate:"gte=0"`
}

// DeliveryEvent links received products to a deliver receip.
// PackageID must stay nil: delivery and receipt are separate events.
type DeliveryEvent struct {
	DeliverReceipID uint64 `validate:"required"`
	PackageID       *uint64
	Lines           []DeliveryLine `validate:"required,dive"`
}
