package models

import (
	"strings"
	"time"
)

// ContactForm is a submission of the contact form
type ContactForm struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"max=150"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Normalize trims surrounding whitespace from every field
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

// FieldErrors maps a form field to its validation message
type FieldErrors map[string]string

// MessageStatus is the delivery state of a stored message
type MessageStatus string

const (
	StatusPending MessageStatus = "pending"
	StatusSent    MessageStatus = "sent"
	StatusFailed  MessageStatus = "failed"
)

// MaxDeliveryAttempts is how often delivery is tried before a message is
// marked failed
const MaxDeliveryAttempts = 5

// Message is a stored contact form submission
type Message struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Body      string        `json:"message"`
	IPHash    string        `json:"-"`
	Status    MessageStatus `json:"status"`
	Attempts  int           `json:"attempts"`
	LastError string        `json:"last_error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	SentAt    *time.Time    `json:"sent_at,omitempty"`
}

// DisplaySubject falls back to a generic subject when none was given
func (m Message) DisplaySubject() string {
	if m.Subject == "" {
		return "New message from the contact form"
	}
	return m.Subject
}

// OfficeMap locates the office on a static map
type OfficeMap struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	ImageURL  string  `json:"image_url"`
	LinkURL   string  `json:"link_url"`
}
