package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"usdtcalc/internal/api/handler"
	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubConfig struct{}

func (stubConfig) CurrentRates(context.Context) (domain.RateConfig, error) {
	return domain.RateConfig{}, domain.ErrConfigMissing
}

func (stubConfig) RateHistory(context.Context, int) ([]domain.RateConfig, error) {
	return nil, nil
}

func (stubConfig) FeeSchedule(context.Context) ([]domain.FeeRange, error) {
	return []domain.FeeRange{{Min: decimal.Zero, Flat: &decimal.Zero}}, nil
}

type stubStats struct{}

func (stubStats) Summary(context.Context) (domain.StatsSummary, error) {
	return domain.StatsSummary{}, nil
}

func TestRouter_Routes(t *testing.T) {
	router := NewRouter(handler.NewHandler(stubConfig{}, stubStats{}))

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/v1/rates", http.StatusNotFound},
		{http.MethodGet, "/api/v1/rates/history", http.StatusOK},
		{http.MethodGet, "/api/v1/rates/history?limit=x", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/fees", http.StatusOK},
		{http.MethodGet, "/api/v1/stats", http.StatusOK},
		{http.MethodPost, "/api/v1/rates", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			require.Equal(t, tc.want, rr.Code)
		})
	}
}
