package importer

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/notify"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/store"
)

// namedSheet keeps workbook sheet order deterministic in tests.
type namedSheet struct {
	name string
	rows [][]interface{}
}

func buildWorkbook(t *testing.T, sheets []namedSheet) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for r, row := range sheet.rows {
			cell := fmt.Sprintf("A%d", r+1)
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	return f
}

func newTestStore() *store.MemoryStore {
	st := store.NewMemoryStore()
	st.SetCatalog(
		[]model.Commodity{{ID: 1, Name: "Beras"}, {ID: 2, Name: "Gula"}},
		[]model.Market{{ID: 1, Name: "Pasar A"}},
	)
	return st
}

// captureNotifier records published events.
type captureNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *captureNotifier) PricesChanged(evt notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
}

func (n *captureNotifier) all() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, []namedSheet{{
		name: "Juni",
		rows: [][]interface{}{
			{"Tanggal", "Beras", "Gula"},
			{"2024-06-01", "12000", "15000"},
			{"2024-06-02", "", "16000"},
		},
	}})

	st := newTestStore()
	nf := &captureNotifier{}
	imp := New(st, st, nf).WithManualAliases(nil)

	report, err := imp.Run(f, Options{MarketName: "Pasar A", Year: 2024, Truncate: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Imported != 3 || report.Skipped != 0 {
		t.Fatalf("counts: imported=%d skipped=%d", report.Imported, report.Skipped)
	}
	if len(report.UnknownNames) != 0 {
		t.Fatalf("unknown names: %v", report.UnknownNames)
	}
	if report.DetectedMonth != 6 || report.DetectedYear != 2024 {
		t.Fatalf("detected ym: %d-%02d", report.DetectedYear, report.DetectedMonth)
	}
	if !report.Committed {
		t.Fatalf("run should commit")
	}

	recs := st.Prices()
	if len(recs) != 3 {
		t.Fatalf("store should hold 3 records, got %d", len(recs))
	}
	want := []struct {
		commodity int64
		date      string
		price     int64
	}{
		{1, "2024-06-01", 12000},
		{2, "2024-06-01", 15000},
		{2, "2024-06-02", 16000},
	}
	for i, w := range want {
		got := recs[i]
		if got.MarketID != 1 || got.CommodityID != w.commodity || got.Date != w.date || got.Price != w.price {
			t.Fatalf("record %d: %+v", i, got)
		}
	}

	events := nf.all()
	if len(events) != 1 {
		t.Fatalf("want 1 notification, got %d", len(events))
	}
	if events[0].MarketID != 1 || events[0].Year != 2024 || events[0].Month != 6 || events[0].Reason != "import" {
		t.Fatalf("event: %+v", events[0])
	}
}

func TestRun_IdempotentTruncateReload(t *testing.T) {
	t.Parallel()

	sheet := namedSheet{
		name: "Juni",
		rows: [][]interface{}{
			{"Tanggal", "Beras", "Gula"},
			{"2024-06-01", "12000", "15000"},
		},
	}

	st := newTestStore()
	imp := New(st, st, nil)

	for i := 0; i < 2; i++ {
		f := buildWorkbook(t, []namedSheet{sheet})
		if _, err := imp.Run(f, Options{MarketID: 1, Year: 2024, Truncate: true}); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	recs := st.Prices()
	if len(recs) != 2 {
		t.Fatalf("store should converge to 2 records, got %d", len(recs))
	}
}

func TestRun_TruncateReplacesNotMerges(t *testing.T) {
	t.Parallel()

	st := newTestStore()
	// Five records from an earlier month upload.
	for day := 1; day <= 5; day++ {
		_ = st.UpsertPrice(&model.PriceRecord{
			MarketID: 1, CommodityID: 1, Date: fmt.Sprintf("2024-06-%02d", day), Price: 1000,
		})
	}

	f := buildWorkbook(t, []namedSheet{{
		name: "Juni",
		rows: [][]interface{}{
			{"Tanggal", "Beras"},
			{"2024-06-01", "12000"},
			{"2024-06-02", "12500"},
		},
	}})

	imp := New(st, st, nil)
	report, err := imp.Run(f, Options{MarketID: 1, Year: 2024, Truncate: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Truncated != 5 {
		t.Fatalf("truncated: %d", report.Truncated)
	}

	recs := st.Prices()
	if len(recs) != 2 {
		t.Fatalf("ledger should hold exactly the new sheet's records, got %d", len(recs))
	}
}

func TestRun_UnknownCommodityAccounting(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, []namedSheet{{
		name: "Juni",
		rows: [][]interface{}{
			{"Tanggal", "Beras", "Jagung"},
			{"2024-06-01", "12000", "8000"},
			{"2024-06-02", "12100", "8100"},
		},
	}})

	st := newTestStore()
	imp := New(st, st, nil).WithManualAliases(nil)

	report, err := imp.Run(f, Options{MarketID: 1, Year: 2024})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Skipped != 2 {
		t.Fatalf("skipped: %d", report.Skipped)
	}
	if len(report.UnknownNames) != 1 || report.UnknownNames[0] != "Jagung" {
		t.Fatalf("unknown names: %v", report.UnknownNames)
	}
	if stat := report.PerCommodity["jagung"]; stat == nil || stat.Skipped != 2 {
		t.Fatalf("per-commodity jagung: %+v", stat)
	}
	if stat := report.PerCommodity["beras"]; stat == nil || stat.Imported != 2 {
		t.Fatalf("per-commodity beras: %+v", stat)
	}
}

func TestRun_MarketFatal(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, []namedSheet{{
		name: "Juni",
		rows: [][]interface{}{
			{"Tanggal", "Beras"},
			{"2024-06-01", "12000"},
		},
	}})

	st := newTestStore()
	imp := New(st, st, nil)

	if _, err := imp.Run(f, Options{MarketName: "Pasar Tiada", Year: 2024}); err == nil {
		t.Fatalf("unknown market should be fatal")
	}
	if _, err := imp.Run(f, Options{Year: 2024}); err == nil {
		t.Fatalf("missing market parameter should be fatal")
	}
	if len(st.Prices()) != 0 {
		t.Fatalf("fatal errors must abort before any writes")
	}
}

func TestRun_YearRequired(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, []namedSheet{{name: "Juni", rows: [][]interface{}{{"Tanggal", "Beras"}}}})
	st := newTestStore()
	imp := New(st, st, nil)

	if _, err := imp.Run(f, Options{MarketID: 1}); !errors.Is(err, ErrYearRequired) {
		t.Fatalf("want ErrYearRequired, got %v", err)
	}
}

func TestRun_SingleSheetMonthUndetected(t *testing.T) {
	t.Parallel()

	// Bare-day dates cannot parse without a month hint, so the sheet comes
	// out empty.
	f := buildWorkbook(t, []namedSheet{{
		name: "Lembar1",
		rows: [][]interface{}{
			{"Tgl", "Beras"},
			{"1", "12000"},
		},
	}})

	st := newTestStore()
	imp := New(st, st, nil)

	if _, err := imp.Run(f, Options{MarketID: 1, Year: 2024}); !errors.Is(err, ErrSheetEmpty) {
		t.Fatalf("want ErrSheetEmpty, got %v", err)
	}

	// With a month hint the same sheet imports.
	f2 := buildWorkbook(t, []namedSheet{{
		name: "Lembar1",
		rows: [][]interface{}{
			{"Tgl", "Beras"},
			{"1", "12000"},
		},
	}})
	report, err := imp.Run(f2, Options{MarketID: 1, Year: 2024, Month: 6})
	if err != nil {
		t.Fatalf("run with month hint: %v", err)
	}
	if report.Imported != 1 || report.DetectedMonth != 6 {
		t.Fatalf("report: %+v", report)
	}
}

func TestRun_BulkSkipsUselessSheets(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, []namedSheet{
		{
			name: "Juni",
			rows: [][]interface{}{
				{"Tanggal", "Beras"},
				{"2024-06-01", "12000"},
			},
		},
		{
			name: "Catatan",
			rows: [][]interface{}{{"bukan data"}},
		},
		{
			name: "Juli",
			rows: [][]interface{}{
				{"Tanggal", "Gula"},
				{"2024-07-01", "15000"},
			},
		},
	})

	st := newTestStore()
	nf := &captureNotifier{}
	imp := New(st, st, nf)

	report, err := imp.Run(f, Options{MarketID: 1, Year: 2024, AllSheets: true, Truncate: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Imported != 2 {
		t.Fatalf("imported: %d", report.Imported)
	}
	if len(report.Sheets) != 3 {
		t.Fatalf("sheet results: %+v", report.Sheets)
	}

	// One notification per imported month.
	if len(nf.all()) != 2 {
		t.Fatalf("notifications: %+v", nf.all())
	}
}

func TestRun_StoreUnavailableAborts(t *testing.T) {
	t.Parallel()

	f := buildWorkbook(t, []namedSheet{{
		name: "Juni",
		rows: [][]interface{}{
			{"Tanggal", "Beras"},
			{"2024-06-01", "12000"},
		},
	}})

	st := newTestStore()
	st.FailWith = fmt.Errorf("%w: disk gone", store.ErrUnavailable)
	imp := New(st, st, nil)

	if _, err := imp.Run(f, Options{MarketID: 1, Year: 2024}); !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
