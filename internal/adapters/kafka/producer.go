package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"usdtcalc/internal/domain"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

// TransactionRecorded is the event emitted for every stored calculation.
type TransactionRecorded struct {
	TransactionID string    `json:"transaction_id"`
	UserID        int64     `json:"user_id"`
	Direction     string    `json:"direction"`
	USDTAmount    string    `json:"usdt_amount"`
	Rate          string    `json:"rate"`
	CounterAmount string    `json:"counter_amount"`
	FeeCharged    string    `json:"fee_charged"`
	Profit        string    `json:"profit"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewTransactionRecorded(tx domain.Transaction) TransactionRecorded {
	return TransactionRecorded{
		TransactionID: tx.ID.String(),
		UserID:        tx.UserID,
		Direction:     string(tx.Direction),
		USDTAmount:    tx.USDTAmount.String(),
		Rate:          tx.Rate.String(),
		CounterAmount: tx.CounterAmount.String(),
		FeeCharged:    tx.FeeCharged.String(),
		Profit:        tx.Profit.String(),
		Timestamp:     tx.CreatedAt,
	}
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func (p *Producer) PublishTransaction(ctx context.Context, tx domain.Transaction) error {
	payload, err := json.Marshal(NewTransactionRecorded(tx))
	if err != nil {
		return fmt.Errorf("failed to marshal transaction event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(tx.ID.String()),
		Value: sarama.ByteEncoder(payload),
	}

	type result struct {
		partition int32
		offset    int64
		err       error
	}
	resultCh := make(chan result, 1)

	go func() {
		partition, offset, sendErr := p.producer.SendMessage(msg)
		resultCh <- result{partition, offset, sendErr}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return fmt.Errorf("failed to send transaction %s: %w", tx.ID, res.err)
		}
		logrus.WithFields(logrus.Fields{
			"tx_id":     tx.ID,
			"partition": res.partition,
			"offset":    res.offset,
		}).Debug("Transaction event sent")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return newProducer(producer, topic), nil
}

func newProducer(producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: producer, topic: topic}
}

// NoOpProducer drops events; used when kafka is disabled.
type NoOpProducer struct{}

func (NoOpProducer) PublishTransaction(_ context.Context, tx domain.Transaction) error {
	logrus.WithField("tx_id", tx.ID).Debug("Kafka disabled, transaction event skipped")
	return nil
}

func (NoOpProducer) Close() error { return nil }
