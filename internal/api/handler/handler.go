package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"usdtcalc/internal/domain"
)

type ConfigReader interface {
	CurrentRates(ctx context.Context) (domain.RateConfig, error)
	RateHistory(ctx context.Context, limit int) ([]domain.RateConfig, error)
	FeeSchedule(ctx context.Context) ([]domain.FeeRange, error)
}

type StatsReader interface {
	Summary(ctx context.Context) (domain.StatsSummary, error)
}

type Handler struct {
	config ConfigReader
	stats  StatsReader
}

func NewHandler(config ConfigReader, stats StatsReader) *Handler {
	return &Handler{config: config, stats: stats}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
