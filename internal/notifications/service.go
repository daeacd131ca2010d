package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyTitle is returned when a notification is created or updated
// without a title.
var ErrEmptyTitle = errors.New("notification title is required")

// Service manages announcements.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Create publishes a new notification.
func (s *Service) Create(ctx context.Context, title, body string, active bool) (Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Notification{}, ErrEmptyTitle
	}
	now := s.now().UTC()
	n := Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      strings.TrimSpace(body),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// Update replaces a notification's content and active flag.
func (s *Service) Update(ctx context.Context, id, title, body string, active bool) (Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Notification{}, ErrEmptyTitle
	}
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	existing.Title = title
	existing.Body = strings.TrimSpace(body)
	existing.Active = active
	existing.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Notification{}, err
	}
	return existing, nil
}

// Delete removes a notification.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// ListActive returns the announcements users should currently see.
func (s *Service) ListActive(ctx context.Context) ([]Notification, error) {
	return s.Repo.ListActive(ctx)
}

// ListAll returns every announcement for the admin console.
func (s *Service) ListAll(ctx context.Context) ([]Notification, error) {
	return s.Repo.ListAll(ctx)
}
