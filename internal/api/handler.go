package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/importer"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/notify"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/store"
)

// Handler serves the price-ledger API.
type Handler struct {
	store    *store.Store
	notifier notify.Notifier
	gate     importer.Gate
	dataDir  string
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, notifier notify.Notifier, gate importer.Gate, dataDir string) *Handler {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Handler{
		store:    st,
		notifier: notifier,
		gate:     gate,
		dataDir:  dataDir,
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// System status
	router.GET("/status", h.GetStatus)
	// Available months
	router.GET("/months", h.ListMonths)

	// Workbook import
	router.POST("/import", h.Import)
	router.POST("/import/bulk", h.ImportBulk)
	router.POST("/import/flexible", h.ImportFlexible)

	// Catalog reads
	router.GET("/commodities", h.ListCommodities)
	router.GET("/markets", h.ListMarkets)

	// Ledger reads
	router.GET("/prices", h.ListPrices)
}

// newImporter wires a request-scoped importer. The alias index is rebuilt
// from the live catalog on every run so catalog edits take effect at once.
func (h *Handler) newImporter() *importer.Importer {
	return importer.New(h.store, h.store, h.notifier).WithGate(h.gate)
}
