package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight/internal/domain"
	"freight/internal/marketdata"
)

// RatesHandler exposes the market-data feed for operational inspection.
type RatesHandler struct {
	provider marketdata.Provider
}

// NewRatesHandler creates a new RatesHandler.
func NewRatesHandler(provider marketdata.Provider) *RatesHandler {
	return &RatesHandler{provider: provider}
}

// GetSpotRate handles GET /v1/rates/spot
func (h *RatesHandler) GetSpotRate(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	equipment := c.DefaultQuery("equipment", string(domain.EquipmentVan))

	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "origin and destination are required"})
		return
	}

	rate, err := h.provider.GetSpotRate(c.Request.Context(), origin, destination, domain.EquipmentType(equipment))
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "rate feed unavailable"})
		return
	}
	if rate == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no benchmark for lane"})
		return
	}

	respondJSON(c, http.StatusOK, MarketRateResponse{
		Lane:      rate.Lane,
		Equipment: string(rate.Equipment),
		AvgRate:   round2(rate.AvgRate),
		LowRate:   round2(rate.LowRate),
		HighRate:  round2(rate.HighRate),
		Timestamp: rate.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	})
}
