package store

import "fmt"

// MonthStat is one (market, year, month) combination present in the ledger.
type MonthStat struct {
	MarketID int64 `json:"marketId"`
	Year     int   `json:"year"`
	Month    int   `json:"month"`
	Records  int   `json:"records"`
}

// ListAvailableMonths lists the market/month combinations that have data,
// newest first. Dashboards use this to offer a month picker.
func (s *Store) ListAvailableMonths() ([]MonthStat, error) {
	rows, err := s.db.Query(`
		SELECT market_id,
			CAST(strftime('%Y', date) AS INTEGER) AS y,
			CAST(strftime('%m', date) AS INTEGER) AS m,
			COUNT(1)
		FROM prices
		GROUP BY market_id, y, m
		ORDER BY y DESC, m DESC, market_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query available months failed: %w", err)
	}
	defer rows.Close()

	var out []MonthStat
	for rows.Next() {
		var it MonthStat
		if err := rows.Scan(&it.MarketID, &it.Year, &it.Month, &it.Records); err != nil {
			return nil, fmt.Errorf("scan available months failed: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate available months failed: %w", err)
	}
	return out, nil
}
