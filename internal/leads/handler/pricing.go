package handler

import (
	"net/http"

	"care_portal_backend/internal/leads/pricing"
	"care_portal_backend/internal/leads/transport"
	"care_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// PricingHandler exposes read-only rate lookups against the rate table.
type PricingHandler struct {
	rates *pricing.Table
}

func NewPricingHandler(rates *pricing.Table) *PricingHandler {
	return &PricingHandler{rates: rates}
}

func (h *PricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rate", h.Rate)
}

func (h *PricingHandler) Rate(c *gin.Context) {
	duration := c.Query("duration")
	roomType := c.Query("roomType")
	careLevel := c.Query("careLevel")
	if duration == "" || roomType == "" || careLevel == "" {
		httpkit.Error(c, http.StatusBadRequest, "duration, roomType and careLevel query parameters are required", nil)
		return
	}

	rate, ok := h.rates.DailyRate(duration, roomType, careLevel)
	if !ok {
		httpkit.Error(c, http.StatusNotFound, "no rate for this duration/room/care level combination", nil)
		return
	}

	httpkit.OK(c, transport.RateResponse{
		Facility:  h.rates.Facility,
		Currency:  h.rates.Currency,
		Duration:  duration,
		RoomType:  roomType,
		CareLevel: careLevel,
		DailyRate: rate,
	})
}
