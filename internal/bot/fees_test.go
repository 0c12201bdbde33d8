package bot

import (
	"testing"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseFeeSchedule_DocumentedSyntax(t *testing.T) {
	ranges, err := ParseFeeSchedule("0-100:1%; 100-500:2.5; 500-:1%")
	require.NoError(t, err)
	require.Len(t, ranges, 3)

	require.True(t, ranges[0].IsPercent())
	require.True(t, ranges[0].Percent.Equal(decimal.NewFromInt(1)))
	require.True(t, ranges[0].Max.Equal(decimal.NewFromInt(100)))

	require.False(t, ranges[1].IsPercent())
	require.True(t, ranges[1].Flat.Equal(decimal.RequireFromString("2.5")))

	require.Nil(t, ranges[2].Max)

	_, err = domain.NormalizeFeeSchedule(ranges)
	require.NoError(t, err)
}

func TestParseFeeSchedule_NewlinesAndLocaleNumbers(t *testing.T) {
	ranges, err := ParseFeeSchedule("0 - 1 000 : 5 000\n1 000-:0,5%\n")
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	require.True(t, ranges[0].Max.Equal(decimal.NewFromInt(1000)))
	require.True(t, ranges[0].Flat.Equal(decimal.NewFromInt(5000)))
	require.True(t, ranges[1].Percent.Equal(decimal.RequireFromString("0.5")))
}

func TestParseFeeSchedule_Errors(t *testing.T) {
	for _, input := range []string{"", " ; ", "0-100", "0:1", "-5-10:1", "0-abc:1", "0-10:x%"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseFeeSchedule(input)
			require.ErrorIs(t, err, domain.ErrInvalidFeeSchedule)
		})
	}
}

func TestFormatFeeSchedule_RoundTrip(t *testing.T) {
	const input = "0-100:1%; 100-500:2.5; 500-:0.75%"

	ranges, err := ParseFeeSchedule(input)
	require.NoError(t, err)
	require.Equal(t, input, FormatFeeSchedule(ranges))

	again, err := ParseFeeSchedule(FormatFeeSchedule(ranges))
	require.NoError(t, err)
	require.Equal(t, len(ranges), len(again))
	for i := range ranges {
		require.True(t, ranges[i].Min.Equal(again[i].Min))
		require.Equal(t, ranges[i].IsPercent(), again[i].IsPercent())
	}
}
