package main

import (
	"usdtcalc/internal/app"

	"github.com/sirupsen/logrus"
)

// @title USDT Calculator API
// @version 1.0
// @description Read-only operations API for the USDT calculator bot.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped with error")
	}
}
