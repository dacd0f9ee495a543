package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// Filter fields are optional: a nil field does not restrict the result.
// Date bounds are inclusive and compared by calendar day.

type OrderFilter struct {
	Client       *string
	SalesManager *string
	Status       *string
	MinCost      *decimal.Decimal
	MaxCost      *decimal.Decimal
	InitialDate  *time.Time
	FinalDate    *time.Time
}

type ProductFilter struct {
	Name        *string
	Description *string
	Category    *string
	SKU         *string
	ShopName    *string
	Status      *ProductStatus
	OrderID     *uint64
	ClientID    *uint64
	MinCost     *decimal.Decimal
	MaxCost     *decimal.Decimal
}

type ShoppingReceipFilter struct {
	ShoppingAccount *string
	ShopName        *string
	Status          *string
	BuyDate         *time.Time
	InitialDate     *time.Time
	FinalDate       *time.Time
	MinCost         *decimal.Decimal
	MaxCost         *decimal.Decimal
	BuyedProducts   []uint64
}

type PackageFilter struct {
	AgencyName        *string
	TrackingNumber    *string
	Status            *string
	ContainedProducts []uint64
}

type DeliverReceipFilter struct {
	OrderID     *uint64
	ClientID    *uint64
	Status      *string
	DeliverDate *time.Time
	InitialDate *time.Time
	FinalDate   *time.Time
	MinWeight   *decimal.Decimal
	MaxWeight   *decimal.Decimal
}

type UserFilter struct {
	Name        *string
	HomeAddress *string
	Email       *string
	LastName    *string
	IsAgent     *bool
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextDay is the exclusive upper bound for an inclusive calendar-day filter.
func NextDay(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}
