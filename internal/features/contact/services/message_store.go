package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"learnhub/internal/core"
	"learnhub/internal/features/contact/models"
)

// MessageStore persists contact messages in SQLite. Timestamps are stored
// as unix seconds.
type MessageStore struct {
	db     *core.Database
	logger *core.Logger
}

// NewMessageStore creates a new message store
func NewMessageStore(db *core.Database, logger *core.Logger) *MessageStore {
	return &MessageStore{
		db:     db,
		logger: logger,
	}
}

const messageColumns = `id, name, email, subject, message, ip_hash, status, attempts, last_error, created_at, sent_at`

// ErrLimitReached is returned by CreateWithinLimit when the sender has no
// messages left in the window
var ErrLimitReached = errors.New("contact message limit reached")

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create stores a new pending message
func (s *MessageStore) Create(ctx context.Context, form models.ContactForm, ipHash string, now time.Time) (*models.Message, error) {
	return insertMessage(ctx, s.db, form, ipHash, now)
}

// CreateWithinLimit stores a new pending message unless ipHash already has
// limit messages created at or after since. The count and the insert share
// one transaction. The count seen before inserting is always returned;
// ErrLimitReached reports a rejected message.
func (s *MessageStore) CreateWithinLimit(ctx context.Context, form models.ContactForm, ipHash string, now, since time.Time, limit int) (*models.Message, int, error) {
	var (
		msg   *models.Message
		count int
	)
	err := s.db.Transaction(ctx, func(tx *sql.Tx) error {
		var err error
		count, err = countSince(ctx, tx, ipHash, since)
		if err != nil {
			return err
		}
		if count >= limit {
			return ErrLimitReached
		}
		msg, err = insertMessage(ctx, tx, form, ipHash, now)
		return err
	})
	if err != nil {
		return nil, count, err
	}
	return msg, count, nil
}

func insertMessage(ctx context.Context, db execQuerier, form models.ContactForm, ipHash string, now time.Time) (*models.Message, error) {
	query := `INSERT INTO contact_messages (name, email, subject, message, ip_hash, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := db.ExecContext(ctx, query,
		form.Name, form.Email, form.Subject, form.Message, ipHash, models.StatusPending, now.Unix())
	if err != nil {
		return nil, core.NewDatabaseError("failed to store contact message", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, core.NewDatabaseError("failed to get message id", err)
	}

	return &models.Message{
		ID:        id,
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Body:      form.Message,
		IPHash:    ipHash,
		Status:    models.StatusPending,
		CreatedAt: time.Unix(now.Unix(), 0).UTC(),
	}, nil
}

// Get returns a message by id
func (s *MessageStore) Get(ctx context.Context, id int64) (*models.Message, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id)
	msg, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError(fmt.Sprintf("contact message %d not found", id), err)
	}
	if err != nil {
		return nil, core.NewDatabaseError("failed to get contact message", err)
	}
	return msg, nil
}

// CountSince counts messages from ipHash created at or after since
func (s *MessageStore) CountSince(ctx context.Context, ipHash string, since time.Time) (int, error) {
	return countSince(ctx, s.db, ipHash, since)
}

func countSince(ctx context.Context, db execQuerier, ipHash string, since time.Time) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE ip_hash = ? AND created_at >= ?`,
		ipHash, since.Unix(),
	).Scan(&count)
	if err != nil {
		return 0, core.NewDatabaseError("failed to count contact messages", err)
	}
	return count, nil
}

// CountByStatus counts messages in the given delivery state
func (s *MessageStore) CountByStatus(ctx context.Context, status models.MessageStatus) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE status = ?`, status,
	).Scan(&count)
	if err != nil {
		return 0, core.NewDatabaseError("failed to count contact messages", err)
	}
	return count, nil
}

// Pending returns up to limit undelivered messages, oldest first
func (s *MessageStore) Pending(ctx context.Context, limit int) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages WHERE status = ? ORDER BY created_at, id LIMIT ?`,
		models.StatusPending, limit,
	)
	if err != nil {
		return nil, core.NewDatabaseError("failed to query pending messages", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, core.NewDatabaseError("failed to scan contact message", err)
		}
		messages = append(messages, *msg)
	}

	return messages, rows.Err()
}

// MarkSent records a successful delivery
func (s *MessageStore) MarkSent(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE contact_messages SET status = ?, attempts = attempts + 1, last_error = '', sent_at = ? WHERE id = ?`,
		models.StatusSent, at.Unix(), id,
	)
	if err != nil {
		return core.NewDatabaseError("failed to mark message sent", err)
	}
	return nil
}

// RecordFailure counts a failed delivery. The message is marked failed once
// it has used up maxAttempts; the resulting status is returned.
func (s *MessageStore) RecordFailure(ctx context.Context, id int64, cause error, maxAttempts int) (models.MessageStatus, error) {
	var status models.MessageStatus
	err := s.db.Transaction(ctx, func(tx *sql.Tx) error {
		var attempts int
		if err := tx.QueryRowContext(ctx, `SELECT attempts FROM contact_messages WHERE id = ?`, id).Scan(&attempts); err != nil {
			return err
		}

		attempts++
		status = models.StatusPending
		if attempts >= maxAttempts {
			status = models.StatusFailed
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE contact_messages SET status = ?, attempts = ?, last_error = ? WHERE id = ?`,
			status, attempts, cause.Error(), id,
		)
		return err
	})
	if err != nil {
		return "", core.NewDatabaseError("failed to record delivery failure", err)
	}
	return status, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*models.Message, error) {
	var (
		msg       models.Message
		status    string
		createdAt int64
		sentAt    sql.NullInt64
	)
	err := row.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body, &msg.IPHash,
		&status, &msg.Attempts, &msg.LastError, &createdAt, &sentAt)
	if err != nil {
		return nil, err
	}

	msg.Status = models.MessageStatus(status)
	msg.CreatedAt = time.Unix(createdAt, 0).UTC()
	if sentAt.Valid {
		t := time.Unix(sentAt.Int64, 0).UTC()
		msg.SentAt = &t
	}
	return &msg, nil
}
