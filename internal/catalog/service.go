package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyName is returned when an item has no name.
	ErrEmptyName = errors.New("item name is required")
	// ErrInvalidKind is returned for kinds other than product/service.
	ErrInvalidKind = errors.New("item kind must be product or service")
)

// Input carries the editable fields of a catalog item.
type Input struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	URL         string `json:"url"`
	Active      bool   `json:"active"`
	SortOrder   int    `json:"sortOrder"`
}

// Service manages the products and services catalog.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Create adds a catalog item.
func (s *Service) Create(ctx context.Context, in Input) (Item, error) {
	item, err := s.validate(in)
	if err != nil {
		return Item{}, err
	}
	now := s.now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.Repo.Create(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Update replaces an item's editable fields.
func (s *Service) Update(ctx context.Context, id string, in Input) (Item, error) {
	item, err := s.validate(in)
	if err != nil {
		return Item{}, err
	}
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Item{}, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// ListPublic returns active items for the storefront.
func (s *Service) ListPublic(ctx context.Context) ([]Item, error) {
	return s.Repo.List(ctx, true)
}

// ListAll returns every item for the admin console.
func (s *Service) ListAll(ctx context.Context) ([]Item, error) {
	return s.Repo.List(ctx, false)
}

func (s *Service) validate(in Input) (Item, error) {
	kind, ok := ParseKind(in.Kind)
	if !ok {
		return Item{}, ErrInvalidKind
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Item{}, ErrEmptyName
	}
	return Item{
		Kind:        kind,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       strings.TrimSpace(in.Price),
		URL:         strings.TrimSpace(in.URL),
		Active:      in.Active,
		SortOrder:   in.SortOrder,
	}, nil
}
