package store

import (
	"fmt"
	"time"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
)

// UpsertPrice writes one ledger entry by natural key. An existing record is
// updated in place: the price always wins, optional metadata only replaces
// what is stored when the new value is non-empty (coalesce, not overwrite).
func (s *Store) UpsertPrice(rec *model.PriceRecord) error {
	status := rec.Status
	if status == "" {
		status = "ok"
	}

	_, err := s.db.Exec(`
		INSERT INTO prices (market_id, commodity_id, date, price, note, photo, geo, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(market_id, commodity_id, date) DO UPDATE SET
			price  = excluded.price,
			note   = CASE WHEN excluded.note  <> '' THEN excluded.note  ELSE prices.note  END,
			photo  = CASE WHEN excluded.photo <> '' THEN excluded.photo ELSE prices.photo END,
			geo    = CASE WHEN excluded.geo   <> '' THEN excluded.geo   ELSE prices.geo   END,
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`, rec.MarketID, rec.CommodityID, rec.Date, rec.Price, rec.Note, rec.Photo, rec.Geo, status)
	if err != nil {
		return s.classifyErr(fmt.Errorf("upsert price: %w", err))
	}
	return nil
}

// DeletePrices removes every record for one market and month, the truncate
// half of truncate-then-reload. Returns the number of deleted records.
func (s *Store) DeletePrices(marketID int64, year, month int) (int64, error) {
	from, to := monthBounds(year, month)
	res, err := s.db.Exec(`
		DELETE FROM prices WHERE market_id = ? AND date >= ? AND date < ?
	`, marketID, from, to)
	if err != nil {
		return 0, s.classifyErr(fmt.Errorf("delete prices: %w", err))
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// PriceQueryOptions filters ListPrices.
type PriceQueryOptions struct {
	MarketID    int64
	CommodityID int64
	Year        int
	Month       int
}

// ListPrices returns the ledger slice matching the options, ordered by date
// then commodity.
func (s *Store) ListPrices(opts PriceQueryOptions) ([]*model.PriceRecord, error) {
	query := `
		SELECT id, market_id, commodity_id, date, price, note, photo, geo, status, created_at, updated_at
		FROM prices WHERE 1=1`
	args := []interface{}{}

	if opts.MarketID != 0 {
		query += " AND market_id = ?"
		args = append(args, opts.MarketID)
	}
	if opts.CommodityID != 0 {
		query += " AND commodity_id = ?"
		args = append(args, opts.CommodityID)
	}
	if opts.Year != 0 && opts.Month != 0 {
		from, to := monthBounds(opts.Year, opts.Month)
		query += " AND date >= ? AND date < ?"
		args = append(args, from, to)
	}
	query += " ORDER BY date, commodity_id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var out []*model.PriceRecord
	for rows.Next() {
		rec := &model.PriceRecord{}
		if err := rows.Scan(&rec.ID, &rec.MarketID, &rec.CommodityID, &rec.Date, &rec.Price,
			&rec.Note, &rec.Photo, &rec.Geo, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prices: %w", err)
	}
	return out, nil
}

// CountPrices counts ledger entries for one market and month.
func (s *Store) CountPrices(marketID int64, year, month int) (int, error) {
	from, to := monthBounds(year, month)
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(1) FROM prices WHERE market_id = ? AND date >= ? AND date < ?
	`, marketID, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count prices: %w", err)
	}
	return n, nil
}

// monthBounds returns [first day of month, first day of next month) as
// YYYY-MM-DD strings.
func monthBounds(year, month int) (string, string) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from.Format("2006-01-02"), from.AddDate(0, 1, 0).Format("2006-01-02")
}
