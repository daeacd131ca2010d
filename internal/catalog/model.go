package catalog

import "time"

// ItemKind distinguishes products from services in the catalog.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindService ItemKind = "service"
)

// ParseKind validates a kind string.
func ParseKind(s string) (ItemKind, bool) {
	switch ItemKind(s) {
	case KindProduct, KindService:
		return ItemKind(s), true
	default:
		return "", false
	}
}

// Item is a catalog entry managed from the admin console.
type Item struct {
	ID          string    `json:"id"`
	Kind        ItemKind  `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price,omitempty"`
	URL         string    `json:"url,omitempty"`
	Active      bool      `json:"active"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
