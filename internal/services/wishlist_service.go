package services

import (
	"context"
	"sync"
	"time"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
	"arcticfresh/internal/wishlist"
)

// StorageFactory returns the wishlist storage of one browser session.
type StorageFactory func(sessionID string) wishlist.Storage

// DefaultWishlistIdle is how long an unobserved store stays cached.
const DefaultWishlistIdle = 30 * time.Minute

type wishlistEntry struct {
	store    *wishlist.Store
	lastUsed time.Time
}

// WishlistService owns one wishlist.Store per browser session. Every tab of
// a browser shares the session's store, so all of them observe the same
// membership.
type WishlistService struct {
	Prods   ProductStore
	storage StorageFactory
	idle    time.Duration
	now     func() time.Time

	mu        sync.Mutex
	stores    map[string]*wishlistEntry
	lastSweep time.Time
}

func NewWishlistService(storage StorageFactory, prods ProductStore) *WishlistService {
	return &WishlistService{
		Prods:   prods,
		storage: storage,
		idle:    DefaultWishlistIdle,
		now:     time.Now,
		stores:  map[string]*wishlistEntry{},
	}
}

// For returns the store of sessionID, creating it on first use.
func (s *WishlistService) For(sessionID string) *wishlist.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= s.idle {
		s.sweepLocked(now)
	}
	e, ok := s.stores[sessionID]
	if !ok {
		var st wishlist.Storage
		if s.storage != nil {
			st = s.storage(sessionID)
		}
		e = &wishlistEntry{store: wishlist.New(st)}
		s.stores[sessionID] = e
	}
	e.lastUsed = now
	return e.store
}

// Sweep drops cached stores idle for longer than the idle window and with
// no subscribers. Persisted lists reload on next use.
func (s *WishlistService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *WishlistService) sweepLocked(now time.Time) int {
	s.lastSweep = now
	n := 0
	for sid, e := range s.stores {
		if now.Sub(e.lastUsed) > s.idle && e.store.Subscribers() == 0 {
			delete(s.stores, sid)
			n++
		}
	}
	return n
}

// Cached returns the number of stores currently held.
func (s *WishlistService) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

// Resolve maps refs onto active products of locale, in list order. A ref
// matches a slug first, then a document id of either locale. Unresolved and
// inactive refs are skipped but stay in the list.
func (s *WishlistService) Resolve(ctx context.Context, refs []string, locale domain.Locale) ([]domain.Product, error) {
	if len(refs) == 0 {
		return []domain.Product{}, nil
	}
	all, _, err := s.Prods.ListProducts(ctx, domain.ProductQuery{AllLocales: true, Sort: domain.SortNewest})
	if err != nil {
		return nil, errs.Internal(err)
	}
	bySlug := map[string]domain.Product{}
	idToSlug := map[string]string{}
	for _, p := range all {
		idToSlug[p.ID] = p.Slug
		if p.Locale == locale && p.Active {
			bySlug[p.Slug] = p
		}
	}
	out := make([]domain.Product, 0, len(refs))
	seen := map[string]bool{}
	for _, ref := range refs {
		slug := ref
		if _, ok := bySlug[slug]; !ok {
			slug = idToSlug[ref]
		}
		p, ok := bySlug[slug]
		if !ok || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, p)
	}
	return out, nil
}
