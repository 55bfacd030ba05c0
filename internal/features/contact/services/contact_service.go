package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub/internal/core"
	"learnhub/internal/features/contact/models"

	"github.com/go-playground/validator/v10"
)

// FormError carries per-field validation messages for the contact form
type FormError struct {
	Fields models.FieldErrors
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "invalid fields: " + strings.Join(keys, ", ")
}

// ContactService validates, rate limits and stores contact submissions
type ContactService struct {
	store    *MessageStore
	hasher   *IPHasher
	limit    int
	window   time.Duration
	validate *validator.Validate
	logger   *core.Logger
	now      func() time.Time
}

// NewContactService creates a contact service allowing limit messages per
// client per hour
func NewContactService(store *MessageStore, hasher *IPHasher, limit int, logger *core.Logger) *ContactService {
	return &ContactService{
		store:    store,
		hasher:   hasher,
		limit:    limit,
		window:   time.Hour,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Validate checks the form and returns a *FormError for invalid input
func (s *ContactService) Validate(form *models.ContactForm) error {
	form.Normalize()

	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(models.FieldErrors, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if _, seen := fields[name]; !seen {
			fields[name] = fieldMessage(fe)
		}
	}
	return &FormError{Fields: fields}
}

// Submit stores a valid form from the client at remoteAddr. It returns a
// validation error wrapping *FormError for invalid input and a rate-limited
// error once the client has sent too many messages within the hour.
func (s *ContactService) Submit(ctx context.Context, form models.ContactForm, remoteAddr string) (*models.Message, error) {
	if err := s.Validate(&form); err != nil {
		return nil, core.NewValidationError("please correct the highlighted fields", err)
	}

	now := s.now()
	ipHash := s.hasher.Hash(remoteAddr)

	msg, count, err := s.store.CreateWithinLimit(ctx, form, ipHash, now, now.Add(-s.window), s.limit)
	if errors.Is(err, ErrLimitReached) {
		s.logger.Warn("Contact rate limit reached", "ip_hash", ipHash[:12], "count", count)
		return nil, core.NewRateLimitedError(
			fmt.Sprintf("You have sent %d messages in the last hour. Please try again later.", count), nil)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Contact message received", "message_id", msg.ID)
	return msg, nil
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please enter your %s.", label)
	case "email":
		return "Please enter a valid email address."
	case "min":
		return fmt.Sprintf("Your %s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("Your %s must be at most %s characters.", label, fe.Param())
	default:
		return fmt.Sprintf("Your %s is invalid.", label)
	}
}
