// Package memory is a process-local implementation of port.Repository.
// It is used when no database is configured and in tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
)

type state struct {
	seq      uint64
	users    map[uint64]domain.User
	shops    map[string]domain.Shop
	accounts map[uint64]domain.BuyingAccount
	rates    *domain.Rates
	orders   map[uint64]domain.Order
	products map[uint64]domain.Product
	receips  map[uint64]domain.ShoppingReceip
	buyed    map[uint64]domain.ProductBuyed
	packages map[uint64]domain.Package
	received map[uint64]domain.ProductReceived
	delivers map[uint64]domain.DeliverReceip
	images   map[string]domain.EvidenceImage
}

func newState() *state {
	return &state{
		users:    make(map[uint64]domain.User),
		shops:    make(map[string]domain.Shop),
		accounts: make(map[uint64]domain.BuyingAccount),
		orders:   make(map[uint64]domain.Order),
		products: make(map[uint64]domain.Product),
		receips:  make(map[uint64]domain.ShoppingReceip),
		buyed:    make(map[uint64]domain.ProductBuyed),
		packages: make(map[uint64]domain.Package),
		received: make(map[uint64]domain.ProductReceived),
		delivers: make(map[uint64]domain.DeliverReceip),
		images:   make(map[string]domain.EvidenceImage),
	}
}

// Entities are stored by value without their child slices, so a shallow
// copy of every map is a full snapshot.
func (s *state) clone() *state {
	c := &state{
		seq:      s.seq,
		users:    maps.Clone(s.users),
		shops:    maps.Clone(s.shops),
		accounts: maps.Clone(s.accounts),
		orders:   maps.Clone(s.orders),
		products: maps.Clone(s.products),
		receips:  maps.Clone(s.receips),
		buyed:    maps.Clone(s.buyed),
		packages: maps.Clone(s.packages),
		received: maps.Clone(s.received),
		delivers: maps.Clone(s.delivers),
		images:   maps.Clone(s.images),
	}
	if s.rates != nil {
		r := *s.rates
		c.rates = &r
	}
	return c
}

func (s *state) nextID() uint64 {
	s.seq++
	return s.seq
}

type store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state
}

type Repository struct {
	store *store
	inTx  bool
}

var _ port.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{store: &store{st: newState()}}
}

// enter serializes access. Outside a transaction the caller also waits for
// running transactions to finish.
func (r *Repository) enter() (*state, func()) {
	if r.inTx {
		r.store.mu.Lock()
		return r.store.st, r.store.mu.Unlock
	}
	r.store.txMu.Lock()
	r.store.mu.Lock()
	return r.store.st, func() {
		r.store.mu.Unlock()
		r.store.txMu.Unlock()
	}
}

func (r *Repository) Atomic(ctx context.Context, fn func(repo port.Repository) error) (err error) {
	if r.inTx {
		return fn(r)
	}

	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.Lock()
	snapshot := r.store.st.clone()
	r.store.mu.Unlock()

	rollback := func() {
		r.store.mu.Lock()
		r.store.st = snapshot
		r.store.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	err = fn(&Repository{store: r.store, inTx: true})
	if err != nil {
		rollback()
	}
	return err
}

func sortedIDs[V any](m map[uint64]V) []uint64 {
	return slices.Sorted(maps.Keys(m))
}

func has(ids []uint64, id uint64) bool {
	return slices.Contains(ids, id)
}
