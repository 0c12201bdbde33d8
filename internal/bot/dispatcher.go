package bot

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"usdtcalc/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	replyAccessDenied    = "⛔ This command is available to admins only."
	replyInvalidAmount   = "❌ Amount must be greater than zero."
	replyInvalidRate     = "❌ Rates must be greater than zero."
	replyInvalidNumber   = "❌ That is not a number. Examples: `100`, `1.234,56`, `1,234.56`."
	replyConfigMissing   = "⚠️ Rates are not configured yet, please try again later."
	replyNoMatchingRange = "⚠️ No fee is configured for this amount. The admins have been notified."
	replyInvalidDir      = "❌ Unknown direction, use /buy or /sell."
	replyFeeExceedsPay   = "❌ The fee is higher than the payout for this amount, please sell a larger amount."
	replyInternal        = "⚠️ Something went wrong, please try again later."
	replyUnknown         = "🤔 Unknown command. Send /help to see what I can do."
)

const userHelp = `👋 *USDT calculator*
/rates - current buy and sell rates
/fees - fee schedule
/buy <amount> - price of buying USDT
/sell <amount> - payout for selling USDT
/buyidr <value> - USDT you get for a rupiah value
/sellidr <value> - USDT to sell for a rupiah value`

const adminHelp = `

*Admin*
/setrates <buy> <sell> - set new rates
/setfees <ranges> - replace fees, e.g. ` + "`0-100:1%; 100-500:2.5; 500-:1%`" + `
/stats - transaction statistics`

// usageError is returned when a command's arguments are malformed.
type usageError struct {
	usage string
}

func (e usageError) Error() string { return "usage: " + e.usage }

// Dispatcher turns chat text into Service calls and replies.
type Dispatcher struct {
	svc *Service
	fmt formatter
}

// HandleMessage returns the Markdown reply for one inbound message. Blank
// messages get an empty reply, which means nothing should be sent.
func (d *Dispatcher) HandleMessage(ctx context.Context, userID int64, text string) string {
	cmd, args, rest := splitCommand(text)
	if cmd == "" {
		if strings.TrimSpace(text) == "" {
			return ""
		}
		return replyUnknown
	}

	var (
		reply string
		err   error
	)
	switch cmd {
	case "/start", "/help":
		reply = d.help(userID)
	case "/rates":
		reply, err = d.rates(ctx)
	case "/fees":
		reply, err = d.fees(ctx, userID)
	case "/buy":
		reply, err = d.calculate(ctx, userID, domain.Buy, args)
	case "/sell":
		reply, err = d.calculate(ctx, userID, domain.Sell, args)
	case "/buyidr":
		reply, err = d.calculateFromCounter(ctx, userID, domain.Buy, args)
	case "/sellidr":
		reply, err = d.calculateFromCounter(ctx, userID, domain.Sell, args)
	case "/setrates":
		reply, err = d.setRates(ctx, userID, args)
	case "/setfees":
		reply, err = d.setFees(ctx, userID, rest)
	case "/stats":
		reply, err = d.stats(ctx, userID)
	default:
		reply = replyUnknown
	}

	if err != nil {
		return d.errorReply(userID, cmd, err)
	}
	return reply
}

func (d *Dispatcher) help(userID int64) string {
	if d.svc.IsAdmin(userID) {
		return userHelp + adminHelp
	}
	return userHelp
}

func (d *Dispatcher) rates(ctx context.Context) (string, error) {
	r, err := d.svc.Rates(ctx)
	if err != nil {
		return "", err
	}
	return d.fmt.rates(r), nil
}

// fees shows the schedule; admins also get it as a ready to edit /setfees line.
func (d *Dispatcher) fees(ctx context.Context, userID int64) (string, error) {
	ranges, err := d.svc.FeeSchedule(ctx)
	if err != nil {
		return "", err
	}
	if len(ranges) == 0 {
		return "", domain.ErrConfigMissing
	}
	reply := d.fmt.feeSchedule(ranges)
	if d.svc.IsAdmin(userID) {
		reply += "\n\n`/setfees " + FormatFeeSchedule(ranges) + "`"
	}
	return reply, nil
}

func (d *Dispatcher) calculate(ctx context.Context, userID int64, dir domain.Direction, args []string) (string, error) {
	if len(args) == 0 {
		return "", usageError{usage: "/" + string(dir) + " <amount>"}
	}
	amount, err := ParseNumber(strings.Join(args, ""))
	if err != nil {
		return "", err
	}
	tx, err := d.svc.HandleUserCalculate(ctx, userID, amount, dir)
	if err != nil {
		return "", err
	}
	return d.fmt.transaction(tx), nil
}

func (d *Dispatcher) calculateFromCounter(ctx context.Context, userID int64, dir domain.Direction, args []string) (string, error) {
	if len(args) == 0 {
		return "", usageError{usage: "/" + string(dir) + "idr <value>"}
	}
	counter, err := ParseNumber(strings.Join(args, ""))
	if err != nil {
		return "", err
	}
	tx, err := d.svc.HandleUserCalculateFromCounter(ctx, userID, counter, dir)
	if err != nil {
		return "", err
	}
	return d.fmt.transactionFromCounter(tx, counter), nil
}

func (d *Dispatcher) setRates(ctx context.Context, userID int64, args []string) (string, error) {
	if !d.svc.IsAdmin(userID) {
		return "", domain.ErrAccessDenied
	}
	if len(args) != 2 {
		return "", usageError{usage: "/setrates <buy> <sell>"}
	}
	buy, err := ParseNumber(args[0])
	if err != nil {
		return "", err
	}
	sell, err := ParseNumber(args[1])
	if err != nil {
		return "", err
	}

	r, err := d.svc.HandleAdminSetRates(ctx, userID, buy, sell)
	if err != nil {
		return "", err
	}
	return "✅ Rates updated.\n\n" + d.fmt.rates(r), nil
}

// setFees reads the raw text after the command so one range per line works.
func (d *Dispatcher) setFees(ctx context.Context, userID int64, input string) (string, error) {
	if !d.svc.IsAdmin(userID) {
		return "", domain.ErrAccessDenied
	}
	if input == "" {
		return "", usageError{usage: "/setfees 0-100:1%; 100-500:2.5; 500-:1%"}
	}
	ranges, err := ParseFeeSchedule(input)
	if err != nil {
		return "", err
	}

	stored, err := d.svc.HandleAdminSetFees(ctx, userID, ranges)
	if err != nil {
		return "", err
	}
	return "✅ Fee schedule updated.\n\n" + d.fmt.feeSchedule(stored), nil
}

func (d *Dispatcher) stats(ctx context.Context, userID int64) (string, error) {
	s, err := d.svc.HandleAdminGetStats(ctx, userID)
	if err != nil {
		return "", err
	}
	return d.fmt.summary(s), nil
}

func (d *Dispatcher) errorReply(userID int64, cmd string, err error) string {
	var usage usageError
	switch {
	case errors.As(err, &usage):
		return "ℹ️ Usage: `" + usage.usage + "`"
	case errors.Is(err, domain.ErrAccessDenied):
		return replyAccessDenied
	case errors.Is(err, ErrInvalidNumber):
		return replyInvalidNumber
	case errors.Is(err, domain.ErrInvalidAmount):
		return replyInvalidAmount
	case errors.Is(err, domain.ErrInvalidRate):
		return replyInvalidRate
	case errors.Is(err, domain.ErrInvalidFeeSchedule):
		return "❌ " + escapeMarkdown(err.Error())
	case errors.Is(err, domain.ErrInvalidDirection):
		return replyInvalidDir
	case errors.Is(err, domain.ErrConfigMissing):
		return replyConfigMissing
	case errors.Is(err, domain.ErrNoMatchingFeeRange):
		return replyNoMatchingRange
	case errors.Is(err, domain.ErrFeeExceedsPayout):
		return replyFeeExceedsPay
	}

	logrus.WithError(err).WithFields(logrus.Fields{"user_id": userID, "command": cmd}).Error("Command failed")
	return replyInternal
}

// splitCommand lowercases the command and drops a "@botname" suffix. rest is
// the trimmed text after the command with its line breaks intact. Text that
// is not a command yields an empty command.
func splitCommand(text string) (cmd string, args []string, rest string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", nil, ""
	}
	token := text
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		token, rest = text[:i], strings.TrimSpace(text[i:])
	}
	cmd, _, _ = strings.Cut(strings.ToLower(token), "@")
	return cmd, strings.Fields(rest), rest
}

func NewDispatcher(svc *Service, currency string, precision int32) *Dispatcher {
	if currency == "" {
		currency = "Rp"
	}
	return &Dispatcher{svc: svc, fmt: formatter{currency: currency, precision: precision}}
}
