package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/store"
)

// ListPrices returns the reconciled ledger slice matching the query.
// GET /api/prices?marketId=&commodityId=&year=&month=
func (h *Handler) ListPrices(c *gin.Context) {
	var opts store.PriceQueryOptions

	if v := c.Query("marketId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid marketId"})
			return
		}
		opts.MarketID = id
	}
	if v := c.Query("commodityId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commodityId"})
			return
		}
		opts.CommodityID = id
	}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		opts.Year = year
	}
	if v := c.Query("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		opts.Month = month
	}

	items, err := h.store.ListPrices(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}
