// Package importer sequences one import run: extract sheets, resolve the
// market and commodities, optionally truncate, upsert every observation and
// report per-item accounting. Runs are request-scoped and strictly
// sequential; the natural-key upsert is the only concurrency mechanism.
package importer

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/alias"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/market"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/normalize"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/notify"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/observability"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/parser"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/store"
)

var (
	// ErrYearRequired means no target year was supplied or inferable.
	ErrYearRequired = errors.New("importer: target year is required")
	// ErrMonthUndetected means a single-sheet run could not settle on a month.
	ErrMonthUndetected = errors.New("importer: month not supplied and not detectable from sheet")
	// ErrSheetEmpty means the (only) sheet produced no observations.
	ErrSheetEmpty = errors.New("importer: no observations extracted")
)

// PriceStore is the ledger write port.
type PriceStore interface {
	UpsertPrice(rec *model.PriceRecord) error
	DeletePrices(marketID int64, year, month int) (int64, error)
}

// Catalog is the read port onto the external commodity/market catalogs.
type Catalog interface {
	ListCommodities() ([]model.Commodity, error)
	ListMarkets() ([]model.Market, error)
}

// Options parameterizes one run. Exactly one of MarketID/MarketName targets
// the market. Truncate makes the run a full replacement for each touched
// (market, month). AllSheets walks the whole workbook; otherwise Sheet (or
// the first sheet) is processed alone. Gated enables the anomaly gate;
// DryRun/Force only apply then.
type Options struct {
	MarketID   int64
	MarketName string
	Year       int
	Month      int
	Truncate   bool
	AllSheets  bool
	Sheet      string
	Gated      bool
	DryRun     bool
	Force      bool
}

// Importer orchestrates import runs against its ports.
type Importer struct {
	store    PriceStore
	catalog  Catalog
	notifier notify.Notifier
	manual   map[string]string
	gate     Gate
}

// New wires an importer with the default manual alias table and gate band.
func New(st PriceStore, catalog Catalog, notifier notify.Notifier) *Importer {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Importer{
		store:    st,
		catalog:  catalog,
		notifier: notifier,
		manual:   alias.DefaultManualAliases,
		gate:     DefaultGate(),
	}
}

// WithManualAliases swaps the manual alias table (tests use a minimal set).
func (imp *Importer) WithManualAliases(manual map[string]string) *Importer {
	imp.manual = manual
	return imp
}

// WithGate swaps the plausibility band.
func (imp *Importer) WithGate(g Gate) *Importer {
	imp.gate = g
	return imp
}

// sheetExtract pairs a sheet name with its extraction result.
type sheetExtract struct {
	name string
	res  parser.Result
}

// Run executes one import. Fatal outcomes (bad parameters, unknown market,
// unreachable store) return an error and no report; everything row-level is
// a counted skip inside the returned report.
func (imp *Importer) Run(f *excelize.File, opts Options) (*model.ImportReport, error) {
	start := time.Now()

	if opts.Year == 0 {
		return nil, ErrYearRequired
	}

	markets, err := imp.catalog.ListMarkets()
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	marketID, err := market.Resolve(markets, opts.MarketID, opts.MarketName)
	if err != nil {
		return nil, err
	}

	commodities, err := imp.catalog.ListCommodities()
	if err != nil {
		return nil, fmt.Errorf("list commodities: %w", err)
	}
	index := alias.BuildIndex(commodities, imp.manual)

	extracts, report, err := imp.extractSheets(f, opts)
	if err != nil {
		return nil, err
	}
	report.MarketID = marketID
	report.DetectedYear = opts.Year

	// Month of the run: caller's, or the first sheet's detection.
	for _, ex := range extracts {
		if ex.res.Month != 0 {
			report.DetectedMonth = ex.res.Month
			break
		}
	}

	// Gated (flexible) imports validate everything before the first write.
	if opts.Gated {
		blocked := imp.applyGate(extracts, index, report, opts)
		if blocked || opts.DryRun {
			report.Duration = time.Since(start)
			observability.ImportRunsTotal.WithLabelValues("blocked").Inc()
			return report, nil
		}
	}

	if err := imp.commit(extracts, index, marketID, opts, report); err != nil {
		observability.ImportRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	report.Committed = true
	report.Duration = time.Since(start)

	observability.ImportRunsTotal.WithLabelValues("ok").Inc()
	observability.RowsImportedTotal.Add(float64(report.Imported))
	observability.RowsSkippedTotal.Add(float64(report.Skipped))

	imp.notifyMonths(marketID, opts.Year, report)

	return report, nil
}

// extractSheets turns the workbook into per-sheet extraction results.
// Single-sheet mode is strict (empty sheet or unknown month is fatal); bulk
// mode skips useless sheets and keeps going.
func (imp *Importer) extractSheets(f *excelize.File, opts Options) ([]sheetExtract, *model.ImportReport, error) {
	report := &model.ImportReport{PerCommodity: map[string]*model.CommodityStat{}, UnknownNames: []string{}}
	hints := parser.Hints{Year: opts.Year, Month: opts.Month}

	if !opts.AllSheets {
		name := opts.Sheet
		if name == "" {
			name = parser.FirstSheet(f)
		}
		if name == "" {
			return nil, nil, ErrSheetEmpty
		}
		grid, err := parser.SheetGrid(f, name)
		if err != nil {
			return nil, nil, err
		}
		res := parser.ExtractSheet(name, grid, hints)
		if len(res.Observations) == 0 {
			return nil, nil, fmt.Errorf("%w: sheet %q", ErrSheetEmpty, name)
		}
		if res.Month == 0 {
			return nil, nil, ErrMonthUndetected
		}
		return []sheetExtract{{name: name, res: res}}, report, nil
	}

	var extracts []sheetExtract
	for _, name := range f.GetSheetList() {
		grid, err := parser.SheetGrid(f, name)
		if err != nil {
			report.Sheets = append(report.Sheets, model.SheetResult{
				SheetName: name, Status: "error", Errors: []string{err.Error()},
			})
			continue
		}
		res := parser.ExtractSheet(name, grid, hints)
		if len(res.Observations) == 0 || res.Month == 0 {
			// Not an error in bulk mode; the sheet just has nothing usable.
			report.Sheets = append(report.Sheets, model.SheetResult{
				SheetName: name, Layout: string(res.Layout), Status: "skipped",
			})
			continue
		}
		extracts = append(extracts, sheetExtract{name: name, res: res})
	}
	return extracts, report, nil
}

// applyGate runs pre-commit validation across all sheets. Returns true when
// commit is blocked (invalid rows present and not forced). A forced commit
// proceeds unchanged: the commit loop already skips (and accounts for)
// exactly the rows the gate calls invalid.
func (imp *Importer) applyGate(extracts []sheetExtract, index *alias.Index, report *model.ImportReport, opts Options) bool {
	gate := &model.GateReport{}
	for _, ex := range extracts {
		check := imp.gate.Check(ex.res, index)
		gate.Valid += check.Valid
		gate.Warnings = append(gate.Warnings, check.Warnings...)
		gate.Invalid = append(gate.Invalid, check.Invalid...)
	}
	report.Gate = gate

	if len(gate.Invalid) > 0 && !opts.Force {
		gate.Blocked = true
		return true
	}
	return false
}

// commit truncates each touched month once, then upserts every observation.
// Unknown commodities and individual write failures are skips; a store that
// stops responding aborts the run.
func (imp *Importer) commit(extracts []sheetExtract, index *alias.Index, marketID int64, opts Options, report *model.ImportReport) error {
	truncated := map[int]bool{}

	for _, ex := range extracts {
		sheetRes := model.SheetResult{SheetName: ex.name, Layout: string(ex.res.Layout), Month: ex.res.Month}

		// Truncate once per (market, month), fully before the month's
		// first upsert.
		if opts.Truncate && !truncated[ex.res.Month] {
			n, err := imp.store.DeletePrices(marketID, opts.Year, ex.res.Month)
			if err != nil {
				return fmt.Errorf("truncate market %d month %d: %w", marketID, ex.res.Month, err)
			}
			report.Truncated += n
			truncated[ex.res.Month] = true
		}

		for _, obs := range ex.res.Observations {
			key := normalize.Key(obs.Commodity)

			commodityID, ok := index.Resolve(obs.Commodity)
			if !ok {
				report.AddSkipped(key)
				sheetRes.Skipped++
				report.UnknownNames = appendUnique(report.UnknownNames, obs.Commodity)
				continue
			}

			err := imp.store.UpsertPrice(&model.PriceRecord{
				MarketID:    marketID,
				CommodityID: commodityID,
				Date:        obs.Date,
				Price:       obs.Price,
				Note:        obs.Note,
				Photo:       obs.Photo,
				Geo:         obs.Geo,
			})
			if err != nil {
				if errors.Is(err, store.ErrUnavailable) {
					return err
				}
				log.Printf("importer: upsert %s/%s failed: %v", obs.Date, obs.Commodity, err)
				report.AddSkipped(key)
				sheetRes.Skipped++
				continue
			}

			report.AddImported(key)
			sheetRes.Imported++
		}

		// Extraction rejects count as skips in the totals; they have no
		// resolved commodity so only named ones hit the per-commodity map.
		for _, rej := range ex.res.Rejects {
			if rej.Commodity != "" {
				report.AddSkipped(normalize.Key(rej.Commodity))
			} else {
				report.Skipped++
			}
			sheetRes.Skipped++
		}

		if sheetRes.Imported > 0 {
			sheetRes.Status = "imported"
		} else {
			sheetRes.Status = "skipped"
		}
		report.Sheets = append(report.Sheets, sheetRes)
	}
	return nil
}

// notifyMonths emits one change event per month that actually imported rows.
// Fire-and-forget: the notifier swallows its own failures.
func (imp *Importer) notifyMonths(marketID int64, year int, report *model.ImportReport) {
	seen := map[int]bool{}
	for _, sheet := range report.Sheets {
		if sheet.Status != "imported" || seen[sheet.Month] {
			continue
		}
		seen[sheet.Month] = true
		imp.notifier.PricesChanged(notify.NewEvent("import", marketID, year, sheet.Month))
	}
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
