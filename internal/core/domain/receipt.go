package domain

import "time"

// Package is a shipment that brings products to the warehouse.
type Package struct {
	ID             uint64
	AgencyName     string
	TrackingNumber string
	Status         string
	ArrivalDate    time.Time

	Products []*ProductReceived
}

// ProductReceived is a receipt line item. DeliverReceipID stays nil until the
// product is handed over to the client.
type ProductReceived struct {
	ID              uint64
	ProductID       uint64
	PackageID       uint64
	DeliverReceipID *uint64
	AmountReceived  int64
	AmountDelivered int64
	Observation     string
	ReceptionDate   time.Time

	Product *Product
}

type ReceiptLine struct {
	ProductID      uint64 `validate:"required"`
	AmountReceived int64  `validate:"gt=0"`
	Observation    string
}

// ReceiptEvent records products arriving with a package.
type ReceiptEvent struct {
	PackageID     uint64 `validate:"required"`
	ReceptionDate time.Time
	Lines         []ReceiptLine `validate:"dive"`
}
