package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCommodities lists the commodity catalog.
// GET /api/commodities
func (h *Handler) ListCommodities(c *gin.Context) {
	items, err := h.store.ListCommodities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// ListMarkets lists the market catalog.
// GET /api/markets
func (h *Handler) ListMarkets(c *gin.Context) {
	items, err := h.store.ListMarkets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}
