package parser

import "github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"

// Grid is one sheet as a 2-D array of cell strings, the form the spreadsheet
// library hands back.
type Grid [][]string

// Layout classifies a sheet's shape.
type Layout string

const (
	// LayoutWide has one row per date and one column per commodity.
	LayoutWide Layout = "wide"
	// LayoutLong has one row per (date, commodity, price) observation.
	LayoutLong Layout = "long"
)

// Hints carries caller-supplied context for extraction. Year/Month feed the
// date parser for bare-day cells; HeaderRow shifts the header scan start.
type Hints struct {
	Year      int
	Month     int
	HeaderRow int
}

// RejectReason tags why a row or cell was dropped.
type RejectReason string

const (
	RejectBadDate  RejectReason = "bad_date"
	RejectBadPrice RejectReason = "bad_price"
	RejectNoName   RejectReason = "no_commodity"
)

// Reject records one dropped row/cell so the anomaly gate can account for it.
type Reject struct {
	Row       int          `json:"row"` // 1-based sheet row
	Commodity string       `json:"commodity,omitempty"`
	Raw       string       `json:"raw,omitempty"`
	Reason    RejectReason `json:"reason"`
}

// Result is the outcome of extracting one sheet.
type Result struct {
	Layout       Layout
	Observations []model.Observation
	Rejects      []Reject
	Year         int // detected (or echoed) data year
	Month        int // detected (or echoed) data month; 0 = unknown
}
