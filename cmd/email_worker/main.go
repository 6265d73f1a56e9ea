package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/config"
	"github.com/oksasatya/campus-events/pkg/helpers"
	"github.com/oksasatya/campus-events/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	sender := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			settle(msg, process(ctx, sender, msg.Body), logger)
		}
		close(done)
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// outcome decides how a delivery is settled.
type outcome int

const (
	ack outcome = iota
	drop
	retry
)

// process decodes and sends one job. Malformed or unrenderable jobs are
// dropped; send failures are requeued.
func process(ctx context.Context, s mailer.Sender, body []byte) result {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return result{drop, fmt.Errorf("bad message: %w", err)}
	}
	subject, text, html, err := job.Content()
	if err != nil {
		return result{drop, fmt.Errorf("render %q: %w", job.Template, err)}
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s.Send(c, job.To, subject, text, html); err != nil {
		return result{retry, fmt.Errorf("send failed: %w", err)}
	}
	return result{ack, nil}
}

type result struct {
	outcome outcome
	err     error
}

func settle(msg amqp.Delivery, res result, logger *logrus.Logger) {
	entry := logger.WithField("message_id", msg.MessageId)
	switch res.outcome {
	case ack:
		_ = msg.Ack(false)
	case drop:
		entry.WithError(res.err).Warn("dropping email job")
		_ = msg.Nack(false, false)
	case retry:
		entry.WithError(res.err).Error("email delivery failed; requeueing")
		_ = msg.Nack(false, true)
	}
}
