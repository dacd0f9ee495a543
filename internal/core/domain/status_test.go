package domain_test

import (
	"testing"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	type statusTest struct {
		name      string
		requested int64
		counters  domain.Counters
		expStatus domain.ProductStatus
	}

	tests := []statusTest{
		{
			name:      "nothing happened",
			requested: 10,
			expStatus: domain.ProductStatusOrdered,
		},
		{
			name:      "partially bought",
			requested: 10,
			counters:  domain.Counters{Bought: 3},
			expStatus: domain.ProductStatusPartiallyBought,
		},
		{
			name:      "bought",
			requested: 10,
			counters:  domain.Counters{Bought: 10},
			expStatus: domain.ProductStatusBought,
		},
		{
			name:      "partially received",
			requested: 10,
			counters:  domain.Counters{Bought: 10, Received: 4},
			expStatus: domain.ProductStatusPartiallyReceived,
		},
		{
			name:      "received",
			requested: 10,
			counters:  domain.Counters{Bought: 10, Received: 10},
			expStatus: domain.ProductStatusReceived,
		},
		{
			name:      "partially delivered",
			requested: 10,
			counters:  domain.Counters{Bought: 10, Received: 10, Delivered: 6},
			expStatus: domain.ProductStatusPartiallyDelivered,
		},
		{
			name:      "delivered",
			requested: 10,
			counters:  domain.Counters{Bought: 10, Received: 10, Delivered: 10},
			expStatus: domain.ProductStatusDelivered,
		},
		{
			name:      "delivered wins over any other counter",
			requested: 5,
			counters:  domain.Counters{Bought: 2, Received: 1, Delivered: 5},
			expStatus: domain.ProductStatusDelivered,
		},
		{
			name:      "received without purchase history",
			requested: 5,
			counters:  domain.Counters{Received: 5},
			expStatus: domain.ProductStatusReceived,
		},
		{
			name:      "partial receipt before full purchase stays partially bought",
			requested: 10,
			counters:  domain.Counters{Bought: 6, Received: 6},
			expStatus: domain.ProductStatusPartiallyBought,
		},
		{
			name:      "overbought is only partially bought",
			requested: 10,
			counters:  domain.Counters{Bought: 12},
			expStatus: domain.ProductStatusPartiallyBought,
		},
		{
			name:      "partial delivery of partial receipt",
			requested: 10,
			counters:  domain.Counters{Bought: 10, Received: 6, Delivered: 2},
			expStatus: domain.ProductStatusPartiallyReceived,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expStatus, domain.DeriveStatus(test.requested, test.counters))
		})
	}
}

func TestProduct_Counters(t *testing.T) {
	deliverID := uint64(7)
	p := domain.Product{
		AmountRequested: 10,
		Buyed: []*domain.ProductBuyed{
			{AmountBuyed: 4},
			{AmountBuyed: 6},
		},
		Received: []*domain.ProductReceived{
			{AmountReceived: 3, AmountDelivered: 3, DeliverReceipID: &deliverID},
			{AmountReceived: 7},
		},
	}

	c := p.Counters()
	assert.Equal(t, domain.Counters{Bought: 10, Received: 10, Delivered: 3}, c)
	assert.Equal(t, domain.ProductStatusPartiallyDelivered, domain.DeriveStatus(p.AmountRequested, c))
}
