package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"usdtcalc/internal/domain"

	"github.com/sirupsen/logrus"
)

type RateResponse struct {
	ID             int64     `json:"id" example:"12"`
	BuyRate        string    `json:"buy_rate" example:"16250.5"`
	SellRate       string    `json:"sell_rate" example:"16100"`
	EffectiveSince time.Time `json:"effective_since" example:"2025-01-02T15:04:05Z"`
}

type RateHistoryResponse struct {
	Items []RateResponse `json:"items"`
}

func toRateResponse(r domain.RateConfig) RateResponse {
	return RateResponse{
		ID:             r.ID,
		BuyRate:        r.BuyRate.String(),
		SellRate:       r.SellRate.String(),
		EffectiveSince: r.EffectiveSince,
	}
}

// GetRates godoc
// @Summary Current rates
// @Description Get the buy and sell rates currently applied to calculations
// @Tags Rates
// @Produce json
// @Success 200 {object} RateResponse
// @Failure 404 {object} errorResponse "rates not configured"
// @Failure 500 {object} errorResponse
// @Router /rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	rate, err := h.config.CurrentRates(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrConfigMissing) {
			writeError(w, http.StatusNotFound, "rates not configured")
			return
		}
		msg := "ups, couldn't get rates this time"
		logrus.WithError(err).WithField("handler", "GetRates").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusOK, toRateResponse(rate))
}

// GetRateHistory godoc
// @Summary Rate history
// @Description List rate changes, most recent first
// @Tags Rates
// @Produce json
// @Param limit query int false "Number of entries (1-100, default 10)"
// @Success 200 {object} RateHistoryResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/history [get]
func (h *Handler) GetRateHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	history, err := h.config.RateHistory(r.Context(), limit)
	if err != nil {
		msg := "ups, couldn't get rate history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRateHistory", "limit": limit}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := RateHistoryResponse{Items: make([]RateResponse, 0, len(history))}
	for _, rate := range history {
		res.Items = append(res.Items, toRateResponse(rate))
	}
	writeJSON(w, http.StatusOK, res)
}
