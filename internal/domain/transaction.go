package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Buy, Sell:
		return d, nil
	}
	return "", ErrInvalidDirection
}

type Transaction struct {
	ID            uuid.UUID
	UserID        int64
	Direction     Direction
	USDTAmount    decimal.Decimal
	Rate          decimal.Decimal
	CounterAmount decimal.Decimal
	FeeCharged    decimal.Decimal
	Profit        decimal.Decimal
	CreatedAt     time.Time
}

type StatsSummary struct {
	Count       int64
	BuyCount    int64
	SellCount   int64
	TotalVolume decimal.Decimal
	BuyVolume   decimal.Decimal
	SellVolume  decimal.Decimal
	TotalFees   decimal.Decimal
	TotalProfit decimal.Decimal
	UpdatedAt   time.Time
}

// Equal compares the aggregate values, ignoring UpdatedAt.
func (s StatsSummary) Equal(o StatsSummary) bool {
	return s.Count == o.Count &&
		s.BuyCount == o.BuyCount &&
		s.SellCount == o.SellCount &&
		s.TotalVolume.Equal(o.TotalVolume) &&
		s.BuyVolume.Equal(o.BuyVolume) &&
		s.SellVolume.Equal(o.SellVolume) &&
		s.TotalFees.Equal(o.TotalFees) &&
		s.TotalProfit.Equal(o.TotalProfit)
}

// Add returns the summary with tx applied.
func (s StatsSummary) Add(tx Transaction) StatsSummary {
	s.Count++
	s.TotalVolume = s.TotalVolume.Add(tx.USDTAmount)
	s.TotalFees = s.TotalFees.Add(tx.FeeCharged)
	s.TotalProfit = s.TotalProfit.Add(tx.Profit)
	if tx.Direction == Buy {
		s.BuyCount++
		s.BuyVolume = s.BuyVolume.Add(tx.USDTAmount)
	} else {
		s.SellCount++
		s.SellVolume = s.SellVolume.Add(tx.USDTAmount)
	}
	return s
}
