package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	defaultWorkers  = 8
	perMessageLimit = 15 * time.Second
)

// MessageHandler produces the reply for one chat message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, userID int64, text string) string
}

// BotAPI is the part of *tgbotapi.BotAPI the runner uses.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Runner long-polls Telegram and hands every message to a fixed pool of workers.
type Runner struct {
	api         BotAPI
	handler     MessageHandler
	workers     int
	pollTimeout int
}

// Run blocks until ctx is canceled, then waits for in-flight messages.
func (r *Runner) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = r.pollTimeout
	updates := r.api.GetUpdatesChan(u)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.runWorker(ctx, workerID, updates)
		}(i)
	}
	logrus.WithField("workers", r.workers).Info("Telegram polling started")

	<-ctx.Done()
	r.api.StopReceivingUpdates()
	wg.Wait()
	logrus.Info("Telegram polling stopped")
	return nil
}

func (r *Runner) runWorker(ctx context.Context, workerID int, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			r.handleUpdate(ctx, workerID, upd)
		}
	}
}

func (r *Runner) handleUpdate(ctx context.Context, workerID int, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}

	// Shutdown lets an in-flight message finish within its own limit.
	msgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), perMessageLimit)
	defer cancel()

	reply := r.handler.HandleMessage(msgCtx, msg.From.ID, msg.Text)
	if reply == "" {
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ParseMode = tgbotapi.ModeMarkdown
	out.ReplyToMessageID = msg.MessageID
	if _, err := r.api.Send(out); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"worker":  workerID,
			"chat_id": msg.Chat.ID,
			"user_id": msg.From.ID,
		}).Error("Failed to send reply")
	}
}

// NewBot authenticates against the Bot API with token.
func NewBot(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	api.Debug = debug
	logrus.WithField("username", api.Self.UserName).Info("✅ Telegram bot authorized")
	return api, nil
}

func NewRunner(api BotAPI, handler MessageHandler, workers, pollTimeoutSec int) *Runner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if pollTimeoutSec < 0 {
		pollTimeoutSec = 0
	}
	return &Runner{api: api, handler: handler, workers: workers, pollTimeout: pollTimeoutSec}
}
