package handler

import (
	"net/http"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type FeeRangeResponse struct {
	Min     string  `json:"min" example:"0"`
	Max     *string `json:"max,omitempty" example:"100"`
	Flat    *string `json:"flat,omitempty" example:"2.5"`
	Percent *string `json:"percent,omitempty" example:"1"`
}

type FeeScheduleResponse struct {
	Ranges []FeeRangeResponse `json:"ranges"`
}

func optionalString(v *decimal.Decimal) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

// GetFees godoc
// @Summary Fee schedule
// @Description List fee ranges in ascending order; a range without max is unbounded
// @Tags Fees
// @Produce json
// @Success 200 {object} FeeScheduleResponse
// @Failure 500 {object} errorResponse
// @Router /fees [get]
func (h *Handler) GetFees(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.config.FeeSchedule(r.Context())
	if err != nil {
		msg := "ups, couldn't get fee schedule this time"
		logrus.WithError(err).WithField("handler", "GetFees").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := FeeScheduleResponse{Ranges: make([]FeeRangeResponse, 0, len(ranges))}
	for _, fr := range ranges {
		res.Ranges = append(res.Ranges, toFeeRangeResponse(fr))
	}
	writeJSON(w, http.StatusOK, res)
}

func toFeeRangeResponse(fr domain.FeeRange) FeeRangeResponse {
	return FeeRangeResponse{
		Min:     fr.Min.String(),
		Max:     optionalString(fr.Max),
		Flat:    optionalString(fr.Flat),
		Percent: optionalString(fr.Percent),
	}
}
