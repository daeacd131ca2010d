package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyBody is returned when a message has no content.
	ErrEmptyBody = errors.New("message body is required")
	// ErrInvalidEmail is returned for a missing or malformed email.
	ErrInvalidEmail = errors.New("a valid email is required")
)

const maxBodyLength = 5000

// Service handles the contact form and the admin inbox.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Submit stores an inbound message.
func (s *Service) Submit(ctx context.Context, userID, name, email, subject, body string) (Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Message{}, ErrEmptyBody
	}
	if len(body) > maxBodyLength {
		body = body[:maxBodyLength]
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return Message{}, ErrInvalidEmail
	}

	m := Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Email:     email,
		Subject:   strings.TrimSpace(subject),
		Body:      body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// List returns inbox messages, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Message, error) {
	return s.Repo.List(ctx, limit, offset)
}

// MarkRead flips the read flag on a message.
func (s *Service) MarkRead(ctx context.Context, id string, read bool) error {
	return s.Repo.MarkRead(ctx, id, read)
}

// Delete removes a message from the inbox.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
