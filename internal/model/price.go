package model

import "time"

// PriceRecord is one persisted ledger entry. Natural key:
// (MarketID, CommodityID, Date) — at most one record per key, a second write
// updates in place.
type PriceRecord struct {
	ID          int64     `json:"id"`
	MarketID    int64     `json:"marketId"`
	CommodityID int64     `json:"commodityId"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Price       int64     `json:"price"` // rupiah, smallest unit

	// Optional pass-through metadata. Empty means "keep whatever is stored".
	Note   string `json:"note,omitempty"`
	Photo  string `json:"photo,omitempty"`
	Geo    string `json:"geo,omitempty"`
	Status string `json:"status,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Observation is one extracted (date, commodity, price) tuple before
// reconciliation. Produced by the sheet extractor, consumed by the importer.
type Observation struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Commodity string `json:"commodity"` // raw name from the sheet, unit annotation stripped
	Price     int64  `json:"price"`

	// Pass-through fields, not interpreted by the engine.
	Note  string `json:"note,omitempty"`
	Photo string `json:"photo,omitempty"`
	Geo   string `json:"geo,omitempty"`

	SourceSheet string `json:"sourceSheet,omitempty"`
	SourceRow   int    `json:"sourceRow,omitempty"`
}
