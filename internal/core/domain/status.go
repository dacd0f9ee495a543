package domain

type ProductStatus string

const (
	ProductStatusOrdered            ProductStatus = "Ordered"
	ProductStatusPartiallyBought    ProductStatus = "Partially Bought"
	ProductStatusBought             ProductStatus = "Bought"
	ProductStatusPartiallyReceived  ProductStatus = "Partially Received"
	ProductStatusReceived           ProductStatus = "Received"
	ProductStatusPartiallyDelivered ProductStatus = "Partially Delivered"
	ProductStatusDelivered          ProductStatus = "Delivered"
)

// Counters are the summed quantities of a product's purchase and receipt history.
type Counters struct {
	Bought    int64
	Received  int64
	Delivered int64
}

// DeriveStatus maps counters to a status. The most complete stage is checked first.
func DeriveStatus(requested int64, c Counters) ProductStatus {
	switch {
	case c.Delivered == requested:
		return ProductStatusDelivered
	case c.Received == requested && c.Delivered > 0:
		return ProductStatusPartiallyDelivered
	case c.Received == requested:
		return ProductStatusReceived
	case c.Bought == requested && c.Received > 0:
		return ProductStatusPartiallyReceived
	case c.Bought == requested:
		return ProductStatusBought
	case c.Bought > 0:
		return ProductStatusPartiallyBought
	default:
		return ProductStatusOrdered
	}
}

// Counters sums the loaded purchase and receipt history of the product.
func (p *Product) Counters() Counters {
	return Counters{
		Bought:    p.AmountBuyed(),
		Received:  p.AmountReceived(),
		Delivered: p.AmountDelivered(),
	}
}

func (p *Product) AmountBuyed() int64 {
	var n int64
	for _, b := range p.Buyed {
		n += b.AmountBuyed
	}
	return n
}

func (p *Product) AmountReceived() int64 {
	var n int64
	for _, r := range p.Received {
		n += r.AmountReceived
	}
	return n
}

func (p *Product) AmountDelivered() int64 {
	var n int64
	for _, r := range p.Received {
		n += r.AmountDelivered
	}
	return n
}
