package store

import (
	"fmt"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
)

// ListCommodities returns the full commodity catalog, ordered by name.
func (s *Store) ListCommodities() ([]model.Commodity, error) {
	rows, err := s.db.Query(`SELECT id, name FROM commodities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query commodities: %w", err)
	}
	defer rows.Close()

	var out []model.Commodity
	for rows.Next() {
		var c model.Commodity
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan commodity: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commodities: %w", err)
	}
	return out, nil
}

// ListMarkets returns the full market catalog, ordered by name.
func (s *Store) ListMarkets() ([]model.Market, error) {
	rows, err := s.db.Query(`SELECT id, name FROM markets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query markets: %w", err)
	}
	defer rows.Close()

	var out []model.Market
	for rows.Next() {
		var m model.Market
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate markets: %w", err)
	}
	return out, nil
}

// InsertCommodity adds a catalog entry. Catalog management proper lives in an
// external surface; this exists for seeding and tests.
func (s *Store) InsertCommodity(name string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO commodities (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert commodity: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// InsertMarket adds a market entry. Same caveat as InsertCommodity.
func (s *Store) InsertMarket(name string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO markets (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert market: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}
