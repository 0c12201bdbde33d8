package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	cmd, args, rest := splitCommand("  /BUY@UsdtCalcBot  100  ")
	require.Equal(t, "/buy", cmd)
	require.Equal(t, []string{"100"}, args)
	require.Equal(t, "100", rest)

	cmd, args, rest = splitCommand("/setfees\n0-100:1%\n100-:2")
	require.Equal(t, "/setfees", cmd)
	require.Equal(t, []string{"0-100:1%", "100-:2"}, args)
	require.Equal(t, "0-100:1%\n100-:2", rest)

	cmd, args, rest = splitCommand("/stats")
	require.Equal(t, "/stats", cmd)
	require.Empty(t, args)
	require.Empty(t, rest)

	cmd, args, _ = splitCommand("hello")
	require.Empty(t, cmd)
	require.Nil(t, args)
}

func TestDispatcher_Help(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	userReply := f.disp.HandleMessage(ctx, userID, "/start")
	require.Contains(t, userReply, "/buy")
	require.NotContains(t, userReply, "/setrates")

	adminReply := f.disp.HandleMessage(ctx, adminID, "/help")
	require.Contains(t, adminReply, "/setrates")
	require.Contains(t, adminReply, "/stats")
}

func TestDispatcher_BlankAndUnknown(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.Empty(t, f.disp.HandleMessage(ctx, userID, "   "))
	require.Equal(t, replyUnknown, f.disp.HandleMessage(ctx, userID, "/moon"))
	require.Equal(t, replyUnknown, f.disp.HandleMessage(ctx, userID, "100"))
}

func TestDispatcher_BuyScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.On("Calculate", ctx, userID, mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(decimal.NewFromInt(100))
	}), domain.Buy).Return(domain.Transaction{
		Direction:     domain.Buy,
		USDTAmount:    decimal.NewFromInt(100),
		Rate:          decimal.RequireFromString("1.05"),
		FeeCharged:    decimal.RequireFromString("1"),
		CounterAmount: decimal.RequireFromString("106"),
	}, nil).Once()

	reply := f.disp.HandleMessage(ctx, userID, "/buy 100")
	require.Contains(t, reply, "Total to pay: `Rp 106.00`")
	require.Contains(t, reply, "Fee: Rp 1.00")
	f.engine.AssertExpectations(t)
}

func TestDispatcher_SellWithLocaleNumber(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.On("Calculate", ctx, userID, mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(decimal.RequireFromString("1234.56"))
	}), domain.Sell).Return(domain.Transaction{
		Direction:     domain.Sell,
		USDTAmount:    decimal.RequireFromString("1234.56"),
		Rate:          decimal.RequireFromString("0.95"),
		FeeCharged:    decimal.RequireFromString("1"),
		CounterAmount: decimal.RequireFromString("1171.83"),
	}, nil).Once()

	reply := f.disp.HandleMessage(ctx, userID, "/sell 1.234,56")
	require.Contains(t, reply, "Total to receive: `Rp 1,171.83`")
	f.engine.AssertExpectations(t)
}

func TestDispatcher_Rates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("CurrentRates", ctx).Return(domain.RateConfig{
		BuyRate:        decimal.RequireFromString("16250"),
		SellRate:       decimal.RequireFromString("16100"),
		EffectiveSince: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}, nil).Once()

	reply := f.disp.HandleMessage(ctx, userID, "/rates")
	require.Contains(t, reply, "Buy: Rp 16,250 / 1 USDT")
	require.Contains(t, reply, "Sell: Rp 16,100 / 1 USDT")
}

func TestDispatcher_FeesEmptyScheduleIsConfigMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("FeeSchedule", ctx).Return([]domain.FeeRange{}, nil).Once()

	require.Equal(t, replyConfigMissing, f.disp.HandleMessage(ctx, userID, "/fees"))
}

func TestDispatcher_NonAdminCommandsAreDenied(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, text := range []string{"/setrates 2 1", "/setrates", "/setfees 0-:1", "/stats"} {
		require.Equal(t, replyAccessDenied, f.disp.HandleMessage(ctx, userID, text), text)
	}
	f.assertNoMutations(t)
}

func TestDispatcher_SetRates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("SetRates", ctx,
		mock.MatchedBy(func(b decimal.Decimal) bool { return b.Equal(decimal.RequireFromString("16250.5")) }),
		mock.MatchedBy(func(s decimal.Decimal) bool { return s.Equal(decimal.NewFromInt(16100)) }),
	).Return(domain.RateConfig{
		ID:       2,
		BuyRate:  decimal.RequireFromString("16250.5"),
		SellRate: decimal.NewFromInt(16100),
	}, nil).Once()

	reply := f.disp.HandleMessage(ctx, adminID, "/setrates 16.250,5 16100")
	require.Contains(t, reply, "✅ Rates updated.")
	require.Contains(t, reply, "Rp 16,250.5 / 1 USDT")
	f.store.AssertExpectations(t)
}

func TestDispatcher_SetFees(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("SetFeeSchedule", ctx, mock.MatchedBy(func(r []domain.FeeRange) bool {
		return len(r) == 3 && r[0].IsPercent() && !r[1].IsPercent()
	})).Return(func() []domain.FeeRange {
		ranges, _ := ParseFeeSchedule("0-100:1%; 100-500:2.5; 500-:1%")
		normalized, _ := domain.NormalizeFeeSchedule(ranges)
		return normalized
	}(), nil).Once()

	reply := f.disp.HandleMessage(ctx, adminID, "/setfees 0-100:1%; 100-500:2.5; 500-:1%")
	require.Contains(t, reply, "✅ Fee schedule updated.")
	require.Contains(t, reply, "500+ USDT: 1%")
	f.store.AssertExpectations(t)
}

func TestDispatcher_Stats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.stats.On("Summary", ctx).Return(domain.StatsSummary{
		Count:       3,
		BuyCount:    2,
		SellCount:   1,
		TotalVolume: decimal.NewFromInt(300),
		BuyVolume:   decimal.NewFromInt(200),
		SellVolume:  decimal.NewFromInt(100),
		TotalFees:   decimal.NewFromInt(3),
		TotalProfit: decimal.NewFromInt(13),
	}, nil).Once()

	reply := f.disp.HandleMessage(ctx, adminID, "/stats")
	require.Contains(t, reply, "Transactions: 3 (buy 2, sell 1)")
	require.Contains(t, reply, "Profit: Rp 13.00")
}

func TestDispatcher_UsageReplies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.Contains(t, f.disp.HandleMessage(ctx, userID, "/buy"), "/buy <amount>")
	require.Contains(t, f.disp.HandleMessage(ctx, userID, "/sellidr"), "/sellidr <value>")
	require.Contains(t, f.disp.HandleMessage(ctx, adminID, "/setrates 1"), "/setrates <buy> <sell>")
	require.Contains(t, f.disp.HandleMessage(ctx, adminID, "/setfees"), "/setfees")
	f.assertNoMutations(t)
}

func TestDispatcher_EveryErrorKindHasItsOwnReply(t *testing.T) {
	f := newFixture()
	kinds := []error{
		usageError{usage: "/x"},
		domain.ErrAccessDenied,
		ErrInvalidNumber,
		domain.ErrInvalidAmount,
		domain.ErrInvalidRate,
		domain.ErrInvalidFeeSchedule,
		domain.ErrInvalidDirection,
		domain.ErrConfigMissing,
		domain.ErrNoMatchingFeeRange,
		domain.ErrFeeExceedsPayout,
		errors.New("connection refused"),
	}

	seen := make(map[string]error, len(kinds))
	for _, kind := range kinds {
		reply := f.disp.errorReply(userID, "/test", fmt.Errorf("wrapped: %w", kind))
		require.NotEmpty(t, reply)
		prev, dup := seen[reply]
		require.False(t, dup, "%v and %v share reply %q", prev, kind, reply)
		seen[reply] = kind
	}
}

func TestDispatcher_EngineErrorsMapToReplies(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{err: domain.ErrInvalidAmount, want: replyInvalidAmount},
		{err: domain.ErrConfigMissing, want: replyConfigMissing},
		{err: fmt.Errorf("%w: amount 5", domain.ErrNoMatchingFeeRange), want: replyNoMatchingRange},
		{err: errors.New("db down"), want: replyInternal},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			f := newFixture()
			f.engine.On("Calculate", mock.Anything, userID, mock.Anything, domain.Buy).
				Return(domain.Transaction{}, tc.err).Once()

			require.Equal(t, tc.want, f.disp.HandleMessage(context.Background(), userID, "/buy -5"))
		})
	}
}

func TestDispatcher_InvalidNumberNeverReachesEngine(t *testing.T) {
	f := newFixture()

	require.Equal(t, replyInvalidNumber, f.disp.HandleMessage(context.Background(), userID, "/buy lots"))
	f.engine.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_InvalidFeeScheduleIsEscaped(t *testing.T) {
	f := newFixture()

	reply := f.disp.HandleMessage(context.Background(), adminID, "/setfees 0-1_x:1")
	require.Contains(t, reply, "invalid fee schedule")
	require.Contains(t, reply, `1\_x`)
	f.assertNoMutations(t)
}

func TestDispatcher_SetFeesOneRangePerLine(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("SetFeeSchedule", ctx, mock.MatchedBy(func(r []domain.FeeRange) bool {
		return len(r) == 2 &&
			r[0].IsPercent() && r[0].Max.Equal(decimal.NewFromInt(100)) &&
			r[1].Flat != nil && r[1].Flat.Equal(decimal.NewFromInt(2))
	})).Return(func() []domain.FeeRange {
		ranges, _ := ParseFeeSchedule("0-100:1%; 100-:2")
		normalized, _ := domain.NormalizeFeeSchedule(ranges)
		return normalized
	}(), nil).Once()

	reply := f.disp.HandleMessage(ctx, adminID, "/setfees\n0-100:1%\n100-:2")
	require.Contains(t, reply, "✅ Fee schedule updated.")
	f.store.AssertExpectations(t)

	f.store.On("SetFeeSchedule", ctx, mock.Anything).Return([]domain.FeeRange{}, nil).Once()
	reply = f.disp.HandleMessage(ctx, adminID, "/setfees 0-100:1%\n100-:2")
	require.Contains(t, reply, "✅ Fee schedule updated.")
}

func TestDispatcher_FeesShowsEditableLineToAdmins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ranges, err := ParseFeeSchedule("0-100:1%; 100-:2.5")
	require.NoError(t, err)
	f.store.On("FeeSchedule", ctx).Return(ranges, nil).Twice()

	userReply := f.disp.HandleMessage(ctx, userID, "/fees")
	require.Contains(t, userReply, "0 to 100 USDT: 1%")
	require.NotContains(t, userReply, "/setfees")

	adminReply := f.disp.HandleMessage(ctx, adminID, "/fees")
	require.Contains(t, adminReply, "`/setfees 0-100:1%; 100-:2.5`")
}

func TestDispatcher_BuyAndSellFromCounterValue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	isMillion := mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(decimal.NewFromInt(1000000)) })

	f.engine.On("CalculateFromCounter", ctx, userID, isMillion, domain.Buy).Return(domain.Transaction{
		Direction:     domain.Buy,
		USDTAmount:    decimal.RequireFromString("61.53846154"),
		Rate:          decimal.NewFromInt(16250),
		FeeCharged:    decimal.NewFromInt(5000),
		CounterAmount: decimal.NewFromInt(1005000),
	}, nil).Once()
	f.engine.On("CalculateFromCounter", ctx, userID, isMillion, domain.Sell).Return(domain.Transaction{
		Direction:     domain.Sell,
		USDTAmount:    decimal.RequireFromString("62.11180124"),
		Rate:          decimal.NewFromInt(16100),
		FeeCharged:    decimal.NewFromInt(5000),
		CounterAmount: decimal.NewFromInt(995000),
	}, nil).Once()

	buy := f.disp.HandleMessage(ctx, userID, "/buyidr 1.000.000")
	require.Contains(t, buy, "Value: Rp 1,000,000.00")
	require.Contains(t, buy, "61.53846154 USDT")
	require.Contains(t, buy, "Total to pay: `Rp 1,005,000.00`")

	sell := f.disp.HandleMessage(ctx, userID, "/sellidr 1,000,000")
	require.Contains(t, sell, "Total to receive: `Rp 995,000.00`")
	f.engine.AssertExpectations(t)
	f.engine.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_SellFeeExceedingPayout(t *testing.T) {
	f := newFixture()
	f.engine.On("Calculate", mock.Anything, userID, mock.Anything, domain.Sell).
		Return(domain.Transaction{}, fmt.Errorf("%w: fee 5000", domain.ErrFeeExceedsPayout)).Once()

	require.Equal(t, replyFeeExceedsPay, f.disp.HandleMessage(context.Background(), userID, "/sell 0.1"))
}
