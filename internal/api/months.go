package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMonths lists the (market, year, month) combinations with data.
// GET /api/months
func (h *Handler) ListMonths(c *gin.Context) {
	items, err := h.store.ListAvailableMonths()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}
