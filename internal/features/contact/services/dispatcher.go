package services

import (
	"context"
	"fmt"
	"time"

	"learnhub/internal/core"
	"learnhub/internal/features/contact/models"

	"github.com/go-co-op/gocron"
)

// MessageTemplate is the mailer template used for contact messages
const MessageTemplate = "contact_message.tmpl"

// DefaultBatchSize is the number of pending messages sent per run
const DefaultBatchSize = 20

// Sender delivers a templated email
type Sender interface {
	Send(ctx context.Context, recipient, replyTo, templateFile string, data any) error
}

// Dispatcher periodically delivers pending contact messages
type Dispatcher struct {
	store     *MessageStore
	sender    Sender
	recipient string
	interval  time.Duration
	batchSize int
	scheduler *gocron.Scheduler
	logger    *core.Logger
	now       func() time.Time
}

// NewDispatcher creates a dispatcher sending to recipient every interval
func NewDispatcher(store *MessageStore, sender Sender, recipient string, interval time.Duration, logger *core.Logger) *Dispatcher {
	return &Dispatcher{
		store:     store,
		sender:    sender,
		recipient: recipient,
		interval:  interval,
		batchSize: DefaultBatchSize,
		logger:    logger,
		now:       time.Now,
	}
}

// Start schedules DispatchPending. Runs never overlap.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info("Starting contact dispatcher", "interval", d.interval)

	d.scheduler = gocron.NewScheduler(time.UTC)
	d.scheduler.SingletonModeAll()

	_, err := d.scheduler.Every(d.interval).Do(func() {
		if _, _, err := d.DispatchPending(ctx); err != nil {
			d.logger.Error("Contact dispatch failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule contact dispatch: %w", err)
	}

	d.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and waits for a running dispatch to finish
func (d *Dispatcher) Stop() {
	if d.scheduler == nil {
		return
	}
	d.logger.Info("Stopping contact dispatcher")
	d.scheduler.Stop()
	d.scheduler = nil
}

// DispatchPending sends one batch of pending messages and returns how many
// were sent and how many failed
func (d *Dispatcher) DispatchPending(ctx context.Context) (sent, failed int, err error) {
	pending, err := d.store.Pending(ctx, d.batchSize)
	if err != nil {
		return 0, 0, err
	}
	if len(pending) == 0 {
		return 0, 0, nil
	}

	d.logger.Debug("Dispatching contact messages", "count", len(pending))

	for i := range pending {
		msg := &pending[i]
		if ctx.Err() != nil {
			return sent, failed, ctx.Err()
		}

		sendErr := d.sender.Send(ctx, d.recipient, msg.Email, MessageTemplate, msg)
		if sendErr == nil {
			if err := d.store.MarkSent(ctx, msg.ID, d.now()); err != nil {
				return sent, failed, err
			}
			sent++
			continue
		}

		failed++
		status, err := d.store.RecordFailure(ctx, msg.ID, sendErr, models.MaxDeliveryAttempts)
		if err != nil {
			return sent, failed, err
		}
		if status == models.StatusFailed {
			d.logger.Error("Giving up on contact message", "message_id", msg.ID, "error", sendErr)
		} else {
			d.logger.Warn("Contact message delivery failed", "message_id", msg.ID, "error", sendErr)
		}
	}

	d.logger.Info("Contact dispatch completed", "sent", sent, "failed", failed)
	return sent, failed, nil
}
