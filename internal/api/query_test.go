package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
)

func seedLedger(t *testing.T, r http.Handler) {
	t.Helper()

	wb := workbookBytes(t, [][]interface{}{
		{"Tanggal", "Beras", "Gula"},
		{"2024-06-01", "12000", "15000"},
		{"2024-06-02", "12500", "15500"},
	})
	body, contentType := multipartBody(t, "harga.xlsx", wb, map[string]string{
		"marketId": "1",
		"year":     "2024",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("seed import failed: %d body=%s", w.Code, w.Body.String())
	}
}

func getJSON(t *testing.T, r http.Handler, path string, out interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: %d body=%s", path, w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("unmarshal %s: %v body=%s", path, err, w.Body.String())
	}
}

func TestListPrices_FiltersByMarketAndMonth(t *testing.T) {
	r, _ := newTestRouter(t)
	seedLedger(t, r)

	var resp struct {
		Items []*model.PriceRecord `json:"items"`
		Total int                  `json:"total"`
	}
	getJSON(t, r, "/api/prices?marketId=1&year=2024&month=6", &resp)

	if resp.Total != 4 {
		t.Fatalf("unexpected total: %d", resp.Total)
	}
	for _, rec := range resp.Items {
		if rec.MarketID != 1 {
			t.Fatalf("unexpected market: %d", rec.MarketID)
		}
	}

	getJSON(t, r, "/api/prices?marketId=1&year=2024&month=7", &resp)
	if resp.Total != 0 {
		t.Fatalf("expected empty month, got %d", resp.Total)
	}
}

func TestListPrices_InvalidMonthIsBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/prices?month=13", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestListMonths_ReflectsImports(t *testing.T) {
	r, _ := newTestRouter(t)
	seedLedger(t, r)

	var resp struct {
		Items []struct {
			MarketID int64 `json:"marketId"`
			Year     int   `json:"year"`
			Month    int   `json:"month"`
			Records  int   `json:"records"`
		} `json:"items"`
		Total int `json:"total"`
	}
	getJSON(t, r, "/api/months", &resp)

	if resp.Total != 1 {
		t.Fatalf("unexpected months: %d", resp.Total)
	}
	it := resp.Items[0]
	if it.MarketID != 1 || it.Year != 2024 || it.Month != 6 || it.Records != 4 {
		t.Fatalf("unexpected month stat: %+v", it)
	}
}

func TestGetStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	var before StatusResponse
	getJSON(t, r, "/api/status", &before)
	if before.Initialized {
		t.Fatalf("fresh store reports initialized")
	}
	if before.Markets != 1 || before.Commodities != 2 {
		t.Fatalf("unexpected catalog counts: %+v", before)
	}

	seedLedger(t, r)

	var after StatusResponse
	getJSON(t, r, "/api/status", &after)
	if !after.Initialized || after.PriceRecords != 4 || after.Months != 1 {
		t.Fatalf("unexpected status: %+v", after)
	}
}

func TestListCatalogs(t *testing.T) {
	r, _ := newTestRouter(t)

	var commodities struct {
		Items []model.Commodity `json:"items"`
		Total int               `json:"total"`
	}
	getJSON(t, r, "/api/commodities", &commodities)
	if commodities.Total != 2 {
		t.Fatalf("unexpected commodities: %d", commodities.Total)
	}

	var markets struct {
		Items []model.Market `json:"items"`
		Total int            `json:"total"`
	}
	getJSON(t, r, "/api/markets", &markets)
	if markets.Total != 1 || markets.Items[0].Name != "Pasar A" {
		t.Fatalf("unexpected markets: %+v", markets.Items)
	}
}
