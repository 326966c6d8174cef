package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
)

type naturalKey struct {
	MarketID    int64
	CommodityID int64
	Date        string
}

// MemoryStore is a map-backed implementation of the ledger and catalog ports.
// It backs importer tests; semantics mirror the SQLite store, including the
// coalesce rule for optional fields.
type MemoryStore struct {
	mu          sync.RWMutex
	prices      map[naturalKey]*model.PriceRecord
	commodities []model.Commodity
	markets     []model.Market

	// FailWith, when set, makes every write return that error.
	FailWith error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prices: make(map[naturalKey]*model.PriceRecord)}
}

// SetCatalog replaces both catalogs.
func (s *MemoryStore) SetCatalog(commodities []model.Commodity, markets []model.Market) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commodities = commodities
	s.markets = markets
}

// ListCommodities returns the commodity catalog.
func (s *MemoryStore) ListCommodities() ([]model.Commodity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Commodity(nil), s.commodities...), nil
}

// ListMarkets returns the market catalog.
func (s *MemoryStore) ListMarkets() ([]model.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Market(nil), s.markets...), nil
}

// UpsertPrice inserts or updates by natural key.
func (s *MemoryStore) UpsertPrice(rec *model.PriceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	key := naturalKey{rec.MarketID, rec.CommodityID, rec.Date}
	now := time.Now()

	existing, ok := s.prices[key]
	if !ok {
		cp := *rec
		cp.CreatedAt = now
		cp.UpdatedAt = now
		if cp.Status == "" {
			cp.Status = "ok"
		}
		s.prices[key] = &cp
		return nil
	}

	existing.Price = rec.Price
	if rec.Note != "" {
		existing.Note = rec.Note
	}
	if rec.Photo != "" {
		existing.Photo = rec.Photo
	}
	if rec.Geo != "" {
		existing.Geo = rec.Geo
	}
	existing.UpdatedAt = now
	return nil
}

// DeletePrices removes every record for one market and month.
func (s *MemoryStore) DeletePrices(marketID int64, year, month int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return 0, s.FailWith
	}

	from, to := monthBounds(year, month)
	var n int64
	for key := range s.prices {
		if key.MarketID == marketID && key.Date >= from && key.Date < to {
			delete(s.prices, key)
			n++
		}
	}
	return n, nil
}

// Prices returns all records sorted by (market, date, commodity), for
// assertions.
func (s *MemoryStore) Prices() []*model.PriceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.PriceRecord, 0, len(s.prices))
	for _, rec := range s.prices {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MarketID != b.MarketID {
			return a.MarketID < b.MarketID
		}
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c < 0
		}
		return a.CommodityID < b.CommodityID
	})
	return out
}
