package parser

import (
	"strings"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/normalize"
)

// Header token sets. Matching goes through normalize.Key, so annotations like
// "Harga (Rp)" reduce to their bare token before comparison.
var (
	dateTokens      = tokenSet("tanggal", "day", "hari", "tgl", "week", "minggu")
	weekTokens      = tokenSet("week", "minggu")
	commodityTokens = tokenSet("komoditas", "komoditi", "commodity", "nama komoditas", "nama barang", "barang")
	priceTokens     = tokenSet("harga", "price", "rp", "hrg")
	noteTokens      = tokenSet("keterangan", "catatan", "note", "ket")
	photoTokens     = tokenSet("foto", "photo", "gambar")
	geoTokens       = tokenSet("lokasi", "koordinat", "geo", "titik")
)

func tokenSet(tokens ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func matchToken(cell string, set map[string]struct{}) bool {
	_, ok := set[normalize.Key(cell)]
	return ok
}

// findColumn returns the first column whose header matches the token set,
// or -1. Shared by both layouts so header aliases never diverge.
func findColumn(headers []string, set map[string]struct{}) int {
	for i, h := range headers {
		if matchToken(h, set) {
			return i
		}
	}
	return -1
}

// findHeaderRow scans from the hinted row down for the first row whose first
// non-empty leading cell is a date/week token. Returns -1 when no header
// exists (the sheet is then empty for import purposes).
func findHeaderRow(grid Grid, start int) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(grid); i++ {
		row := grid[i]
		if len(row) == 0 {
			continue
		}
		if matchToken(row[0], dateTokens) {
			return i
		}
	}
	return -1
}

// ExtractSheet locates the header row, classifies the sheet as wide or long
// and flattens it into (date, commodity, price) observations. Bad dates drop
// the row, bad prices drop the cell (wide) or the row (long); both are
// recorded as rejects, never as errors. Month is echoed from hints or
// inferred from the first observation.
func ExtractSheet(name string, grid Grid, hints Hints) Result {
	res := Result{Layout: LayoutWide, Year: hints.Year, Month: hints.Month}

	headerIdx := findHeaderRow(grid, hints.HeaderRow)
	if headerIdx < 0 {
		return res
	}
	headers := grid[headerIdx]

	// A sheet with explicit commodity and price columns is long; anything
	// else fans prices out across the commodity columns.
	commodityCol := findColumn(headers, commodityTokens)
	priceCol := findColumn(headers, priceTokens)
	if commodityCol >= 0 && priceCol >= 0 {
		res.Layout = LayoutLong
		extractLong(name, grid, headerIdx, headers, hints, &res)
	} else {
		extractWide(name, grid, headerIdx, headers, hints, &res)
	}

	// Detect month (and year) from data when the caller had none.
	if len(res.Observations) > 0 {
		if first, ok := ParseDate(res.Observations[0].Date, 0, 0); ok {
			if res.Month == 0 {
				res.Month = int(first.Month())
			}
			if res.Year == 0 {
				res.Year = first.Year()
			}
		}
	}

	return res
}

// extractWide walks one row per date, one column per commodity.
func extractWide(sheet string, grid Grid, headerIdx int, headers []string, hints Hints, res *Result) {
	dateCol := 0
	dataStart := 1
	if matchToken(headers[0], weekTokens) {
		// Week label in column 0, the actual date sits in column 1.
		dateCol = 1
		dataStart = 2
	} else if c := findColumn(headers, dateTokens); c >= 0 {
		dateCol = c
		dataStart = c + 1
	}

	for i := headerIdx + 1; i < len(grid); i++ {
		row := grid[i]
		if isBlankRow(row) {
			continue
		}

		dateRaw := cellAt(row, dateCol)
		date, ok := ParseDate(dateRaw, hints.Year, hints.Month)
		if !ok {
			res.Rejects = append(res.Rejects, Reject{Row: i + 1, Raw: dateRaw, Reason: RejectBadDate})
			continue
		}

		for col := dataStart; col < len(headers); col++ {
			header := strings.TrimSpace(cellAt(headers, col))
			if header == "" {
				continue
			}
			cell := strings.TrimSpace(cellAt(row, col))
			if cell == "" {
				continue
			}

			name := normalize.StripUnit(header)
			price, ok := ParsePrice(cell)
			if !ok {
				// Bad cell only; the row's other columns still count.
				res.Rejects = append(res.Rejects, Reject{Row: i + 1, Commodity: name, Raw: cell, Reason: RejectBadPrice})
				continue
			}

			res.Observations = append(res.Observations, model.Observation{
				Date:        date.Format(DateLayout),
				Commodity:   name,
				Price:       price,
				SourceSheet: sheet,
				SourceRow:   i + 1,
			})
		}
	}
}

// extractLong walks one observation per row with explicit columns.
func extractLong(sheet string, grid Grid, headerIdx int, headers []string, hints Hints, res *Result) {
	dateCol := findColumn(headers, dateTokens)
	commodityCol := findColumn(headers, commodityTokens)
	priceCol := findColumn(headers, priceTokens)
	noteCol := findColumn(headers, noteTokens)
	photoCol := findColumn(headers, photoTokens)
	geoCol := findColumn(headers, geoTokens)

	for i := headerIdx + 1; i < len(grid); i++ {
		row := grid[i]
		if isBlankRow(row) {
			continue
		}

		dateRaw := cellAt(row, dateCol)
		date, ok := ParseDate(dateRaw, hints.Year, hints.Month)
		if !ok {
			res.Rejects = append(res.Rejects, Reject{Row: i + 1, Raw: dateRaw, Reason: RejectBadDate})
			continue
		}

		name := normalize.StripUnit(cellAt(row, commodityCol))
		if name == "" {
			res.Rejects = append(res.Rejects, Reject{Row: i + 1, Reason: RejectNoName})
			continue
		}

		priceRaw := cellAt(row, priceCol)
		price, ok := ParsePrice(priceRaw)
		if !ok {
			res.Rejects = append(res.Rejects, Reject{Row: i + 1, Commodity: name, Raw: priceRaw, Reason: RejectBadPrice})
			continue
		}

		obs := model.Observation{
			Date:        date.Format(DateLayout),
			Commodity:   name,
			Price:       price,
			SourceSheet: sheet,
			SourceRow:   i + 1,
		}
		if noteCol >= 0 {
			obs.Note = strings.TrimSpace(cellAt(row, noteCol))
		}
		if photoCol >= 0 {
			obs.Photo = strings.TrimSpace(cellAt(row, photoCol))
		}
		if geoCol >= 0 {
			obs.Geo = strings.TrimSpace(cellAt(row, geoCol))
		}
		res.Observations = append(res.Observations, obs)
	}
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
