package model

import "time"

// CommodityStat counts imports and skips for one normalized commodity key.
type CommodityStat struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// SheetResult records how one sheet of the workbook fared.
type SheetResult struct {
	SheetName string `json:"sheetName"`
	Layout    string `json:"layout"` // wide/long
	Status    string `json:"status"` // imported/skipped/error
	Imported  int    `json:"imported"`
	Skipped   int    `json:"skipped"`
	Month     int    `json:"month,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// GateIssue is one row flagged by the anomaly gate.
type GateIssue struct {
	Row       int    `json:"row,omitempty"`
	Commodity string `json:"commodity,omitempty"`
	Raw       string `json:"raw,omitempty"`
	Reason    string `json:"reason"`
}

// GateReport summarizes pre-commit validation for gated (flexible) imports.
type GateReport struct {
	Valid    int         `json:"valid"`
	Warnings []GateIssue `json:"warnings,omitempty"`
	Invalid  []GateIssue `json:"invalid,omitempty"`
	Blocked  bool        `json:"blocked"` // invalid rows present and commit not forced
}

// ImportReport is the complete outcome of one import run. The caller either
// gets this (possibly with many skips) or a single fatal error, never both.
type ImportReport struct {
	MarketID      int64                    `json:"marketId"`
	DetectedYear  int                      `json:"detectedYear"`
	DetectedMonth int                      `json:"detectedMonth"`
	Imported      int                      `json:"imported"`
	Skipped       int                      `json:"skipped"`
	Truncated     int64                    `json:"truncated,omitempty"` // records deleted before reload
	PerCommodity  map[string]*CommodityStat `json:"perCommodity"`
	UnknownNames  []string                 `json:"unknownNames"`
	Sheets        []SheetResult            `json:"sheets,omitempty"`
	Committed     bool                     `json:"committed"`
	Gate          *GateReport              `json:"gate,omitempty"`
	Duration      time.Duration            `json:"duration"`
}

// AddImported bumps the imported counters under a normalized commodity key.
func (r *ImportReport) AddImported(key string) {
	r.Imported++
	r.stat(key).Imported++
}

// AddSkipped bumps the skipped counters under a normalized commodity key.
func (r *ImportReport) AddSkipped(key string) {
	r.Skipped++
	r.stat(key).Skipped++
}

func (r *ImportReport) stat(key string) *CommodityStat {
	if r.PerCommodity == nil {
		r.PerCommodity = make(map[string]*CommodityStat)
	}
	s, ok := r.PerCommodity[key]
	if !ok {
		s = &CommodityStat{}
		r.PerCommodity[key] = s
	}
	return s
}
