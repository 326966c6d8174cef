package importer

import (
	"fmt"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/alias"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/parser"
)

// Gate is the pre-commit plausibility band for flexible imports. Prices
// outside [MinPlausible, MaxPlausible] rupiah warn; structurally broken rows
// (unparseable price/date, unresolvable commodity) are invalid and block the
// commit unless forced.
type Gate struct {
	MinPlausible int64
	MaxPlausible int64
}

// DefaultGate returns the reference band: below 200 or above 1,000,000
// rupiah is implausible for a daily market price.
func DefaultGate() Gate {
	return Gate{MinPlausible: 200, MaxPlausible: 1_000_000}
}

// GateCheck is the outcome of validating one sheet.
type GateCheck struct {
	Valid    int
	Warnings []model.GateIssue
	Invalid  []model.GateIssue
}

// Check classifies one sheet's rows. Extraction rejects are invalid by
// construction; extracted observations are invalid when their commodity does
// not resolve, warned when the price falls outside the band, valid otherwise
// (warned rows still count as committable).
func (g Gate) Check(res parser.Result, index *alias.Index) GateCheck {
	var check GateCheck

	for _, rej := range res.Rejects {
		check.Invalid = append(check.Invalid, model.GateIssue{
			Row:       rej.Row,
			Commodity: rej.Commodity,
			Raw:       rej.Raw,
			Reason:    string(rej.Reason),
		})
	}

	for _, obs := range res.Observations {
		if _, ok := index.Resolve(obs.Commodity); !ok {
			check.Invalid = append(check.Invalid, model.GateIssue{
				Row:       obs.SourceRow,
				Commodity: obs.Commodity,
				Reason:    "unknown_commodity",
			})
			continue
		}
		if obs.Price < g.MinPlausible || obs.Price > g.MaxPlausible {
			check.Warnings = append(check.Warnings, model.GateIssue{
				Row:       obs.SourceRow,
				Commodity: obs.Commodity,
				Raw:       fmt.Sprintf("%d", obs.Price),
				Reason:    "implausible_price",
			})
		}
		check.Valid++
	}

	return check
}
