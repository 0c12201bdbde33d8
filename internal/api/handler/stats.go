package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type StatsResponse struct {
	Count       int64     `json:"count" example:"42"`
	BuyCount    int64     `json:"buy_count" example:"30"`
	SellCount   int64     `json:"sell_count" example:"12"`
	TotalVolume string    `json:"total_volume" example:"15230.5"`
	BuyVolume   string    `json:"buy_volume" example:"10000"`
	SellVolume  string    `json:"sell_volume" example:"5230.5"`
	TotalFees   string    `json:"total_fees" example:"420000"`
	TotalProfit string    `json:"total_profit" example:"1205000"`
	UpdatedAt   time.Time `json:"updated_at" example:"2025-01-02T15:04:05Z"`
}

// GetStats godoc
// @Summary Transaction statistics
// @Description Running totals over every recorded calculation
// @Tags Stats
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} errorResponse
// @Router /stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Summary(r.Context())
	if err != nil {
		msg := "ups, couldn't get stats this time"
		logrus.WithError(err).WithField("handler", "GetStats").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Count:       s.Count,
		BuyCount:    s.BuyCount,
		SellCount:   s.SellCount,
		TotalVolume: s.TotalVolume.String(),
		BuyVolume:   s.BuyVolume.String(),
		SellVolume:  s.SellVolume.String(),
		TotalFees:   s.TotalFees.String(),
		TotalProfit: s.TotalProfit.String(),
		UpdatedAt:   s.UpdatedAt,
	})
}
