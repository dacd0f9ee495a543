package memory

import (
	"github.com/MikeRez0/shoptrack/internal/core/domain"
)

// The loaders below build aggregates from the flat maps. Callers hold the lock.

func (s *state) product(id uint64) (*domain.Product, bool) {
	p, ok := s.products[id]
	if !ok {
		return nil, false
	}
	p.Buyed = make([]*domain.ProductBuyed, 0)
	for _, bid := range sortedIDs(s.buyed) {
		if b := s.buyed[bid]; b.ProductID == id {
			p.Buyed = append(p.Buyed, &b)
		}
	}
	p.Received = make([]*domain.ProductReceived, 0)
	for _, rid := range sortedIDs(s.received) {
		if pr := s.received[rid]; pr.ProductID == id {
			p.Received = append(p.Received, &pr)
		}
	}
	return &p, true
}

func (s *state) productReceived(id uint64) (*domain.ProductReceived, bool) {
	pr, ok := s.received[id]
	if !ok {
		return nil, false
	}
	pr.Product, _ = s.product(pr.ProductID)
	return &pr, true
}

func (s *state) deliverReceip(id uint64) (*domain.DeliverReceip, bool) {
	d, ok := s.delivers[id]
	if !ok {
		return nil, false
	}
	d.Products = make([]*domain.ProductReceived, 0)
	for _, rid := range sortedIDs(s.received) {
		if pr := s.received[rid]; pr.DeliverReceipID != nil && *pr.DeliverReceipID == id {
			full, _ := s.productReceived(rid)
			d.Products = append(d.Products, full)
		}
	}
	return &d, true
}

func (s *state) order(id uint64) (*domain.Order, bool) {
	o, ok := s.orders[id]
	if !ok {
		return nil, false
	}
	if u, ok := s.users[o.ClientID]; ok {
		o.Client = &u
	}
	if u, ok := s.users[o.SalesManagerID]; ok {
		o.SalesManager = &u
	}
	o.Products = make([]*domain.Product, 0)
	for _, pid := range sortedIDs(s.products) {
		if s.products[pid].OrderID == id {
			p, _ := s.product(pid)
			o.Products = append(o.Products, p)
		}
	}
	o.DeliverReceips = make([]*domain.DeliverReceip, 0)
	for _, did := range sortedIDs(s.delivers) {
		if s.delivers[did].OrderID == id {
			d, _ := s.deliverReceip(did)
			o.DeliverReceips = append(o.DeliverReceips, d)
		}
	}
	return &o, true
}

func (s *state) shoppingReceip(id uint64) (*domain.ShoppingReceip, bool) {
	sr, ok := s.receips[id]
	if !ok {
		return nil, false
	}
	sr.Products = make([]*domain.ProductBuyed, 0)
	for _, bid := range sortedIDs(s.buyed) {
		if b := s.buyed[bid]; b.ShoppingReceipID == id {
			sr.Products = append(sr.Products, &b)
		}
	}
	return &sr, true
}

func (s *state) pkg(id uint64) (*domain.Package, bool) {
	p, ok := s.packages[id]
	if !ok {
		return nil, false
	}
	p.Products = make([]*domain.ProductReceived, 0)
	for _, rid := range sortedIDs(s.received) {
		if pr := s.received[rid]; pr.PackageID == id {
			p.Products = append(p.Products, &pr)
		}
	}
	return &p, true
}

// deleteProduct removes a product with its purchase and receipt history.
func (s *state) deleteProduct(id uint64) {
	for bid, b := range s.buyed {
		if b.ProductID == id {
			delete(s.buyed, bid)
		}
	}
	for rid, pr := range s.received {
		if pr.ProductID == id {
			delete(s.received, rid)
		}
	}
	delete(s.products, id)
}
