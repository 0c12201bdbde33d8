package bot

import (
	"fmt"
	"strings"
	"time"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
)

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// escapeMarkdown makes user supplied text safe inside a Markdown reply.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// groupThousands inserts commas into the integer part of a plain decimal
// string, e.g. "-1234567.50" becomes "-1,234,567.50".
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

type formatter struct {
	currency  string
	precision int32
}

func (f formatter) money(v decimal.Decimal) string {
	return f.currency + " " + groupThousands(v.StringFixed(f.precision))
}

// rate keeps every configured digit; rates are not rounded for display.
func (f formatter) rate(v decimal.Decimal) string {
	return f.currency + " " + groupThousands(v.String())
}

func (f formatter) usdt(v decimal.Decimal) string {
	return groupThousands(v.String()) + " USDT"
}

func (f formatter) timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func (f formatter) transaction(tx domain.Transaction) string {
	return f.writeTransaction(tx, nil)
}

// transactionFromCounter also shows the counter currency amount the user typed.
func (f formatter) transactionFromCounter(tx domain.Transaction, counter decimal.Decimal) string {
	return f.writeTransaction(tx, &counter)
}

func (f formatter) writeTransaction(tx domain.Transaction, counter *decimal.Decimal) string {
	title, total := "BUY USDT", "Total to pay"
	if tx.Direction == domain.Sell {
		title, total = "SELL USDT", "Total to receive"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", title)
	if counter != nil {
		fmt.Fprintf(&b, "• Value: %s\n", f.money(*counter))
	}
	fmt.Fprintf(&b, "• Amount: %s\n", f.usdt(tx.USDTAmount))
	fmt.Fprintf(&b, "• Rate: %s\n", f.rate(tx.Rate))
	fmt.Fprintf(&b, "• Fee: %s\n", f.money(tx.FeeCharged))
	fmt.Fprintf(&b, "➤ %s: `%s`", total, f.money(tx.CounterAmount))
	return b.String()
}

func (f formatter) rates(r domain.RateConfig) string {
	var b strings.Builder
	b.WriteString("*Current rates*\n")
	fmt.Fprintf(&b, "• Buy: %s / 1 USDT\n", f.rate(r.BuyRate))
	fmt.Fprintf(&b, "• Sell: %s / 1 USDT\n", f.rate(r.SellRate))
	fmt.Fprintf(&b, "Updated %s", f.timestamp(r.EffectiveSince))
	return b.String()
}

func (f formatter) feeSchedule(ranges []domain.FeeRange) string {
	var b strings.Builder
	b.WriteString("*Fees*\n")
	for _, fr := range ranges {
		bounds := groupThousands(fr.Min.String()) + "+"
		if fr.Max != nil {
			bounds = groupThousands(fr.Min.String()) + " to " + groupThousands(fr.Max.String())
		}
		fee := fr.Percent.String() + "%"
		if !fr.IsPercent() {
			fee = f.money(*fr.Flat)
		}
		fmt.Fprintf(&b, "• %s USDT: %s\n", bounds, fee)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (f formatter) summary(s domain.StatsSummary) string {
	var b strings.Builder
	b.WriteString("*Statistics*\n")
	fmt.Fprintf(&b, "• Transactions: %d (buy %d, sell %d)\n", s.Count, s.BuyCount, s.SellCount)
	fmt.Fprintf(&b, "• USDT bought: %s\n", f.usdt(s.BuyVolume))
	fmt.Fprintf(&b, "• USDT sold: %s\n", f.usdt(s.SellVolume))
	fmt.Fprintf(&b, "• Total volume: %s\n", f.usdt(s.TotalVolume))
	fmt.Fprintf(&b, "• Fees collected: %s\n", f.money(s.TotalFees))
	fmt.Fprintf(&b, "• Profit: %s", f.money(s.TotalProfit))
	return b.String()
}
