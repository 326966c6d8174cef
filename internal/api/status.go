package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the system status payload.
type StatusResponse struct {
	Initialized  bool `json:"initialized"`  // ledger has data
	Markets      int  `json:"markets"`      // market catalog size
	Commodities  int  `json:"commodities"`  // commodity catalog size
	PriceRecords int  `json:"priceRecords"` // total ledger records
	Months       int  `json:"months"`       // distinct (market, month) slices
}

// GetStatus reports catalog and ledger counts.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	markets, err := h.store.ListMarkets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	commodities, err := h.store.ListCommodities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	months, err := h.store.ListAvailableMonths()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total := 0
	for _, m := range months {
		total += m.Records
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:  total > 0,
		Markets:      len(markets),
		Commodities:  len(commodities),
		PriceRecords: total,
		Months:       len(months),
	})
}
