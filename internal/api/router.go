package api

import (
	_ "usdtcalc/docs"
	"usdtcalc/internal/api/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/api/v1/rates", h.GetRates)
	router.Get("/api/v1/rates/history", h.GetRateHistory)
	router.Get("/api/v1/fees", h.GetFees)
	router.Get("/api/v1/stats", h.GetStats)
	return router
}
