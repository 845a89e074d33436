package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Authorizer is the slice of the membership service this module depends on.
type Authorizer interface {
	RequireMember(ctx context.Context, projectID string, userID string) error
	RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error
}

// VisitedLocation is a place the household has been to.
type VisitedLocation struct {
	LocationID string
	ProjectID  string
	AuthorID   string
	Name       string
	Date       time.Time
	Notes      string
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WishlistLocation is a place the household wants to go to. Lower priority
// values sort first.
type WishlistLocation struct {
	LocationID string
	ProjectID  string
	AuthorID   string
	Name       string
	Priority   int
	Notes      string
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreateVisitedInput struct {
	Name  string
	Date  time.Time
	Notes string
	Tags  []string
}

type UpdateVisitedInput struct {
	Name  *string
	Date  *time.Time
	Notes *string
	Tags  []string
}

type CreateWishlistInput struct {
	Name     string
	Priority int
	Notes    string
	Tags     []string
}

type UpdateWishlistInput struct {
	Name     *string
	Priority *int
	Notes    *string
	Tags     []string
}

// Repository lookups are always scoped by project. A location ID from another
// project must behave exactly like an ID that never existed. The visited and
// wishlist collections are disjoint; IDs never cross between them.
type Repository interface {
	ListVisited(ctx context.Context, projectID string) ([]VisitedLocation, error)
	CreateVisited(ctx context.Context, location VisitedLocation) (VisitedLocation, error)
	GetVisited(ctx context.Context, projectID string, locationID string) (VisitedLocation, error)
	UpdateVisited(ctx context.Context, projectID string, locationID string, input UpdateVisitedInput, now time.Time) (VisitedLocation, error)
	DeleteVisited(ctx context.Context, projectID string, locationID string) (VisitedLocation, error)

	ListWishlist(ctx context.Context, projectID string) ([]WishlistLocation, error)
	CreateWishlist(ctx context.Context, location WishlistLocation) (WishlistLocation, error)
	GetWishlist(ctx context.Context, projectID string, locationID string) (WishlistLocation, error)
	UpdateWishlist(ctx context.Context, projectID string, locationID string, input UpdateWishlistInput, now time.Time) (WishlistLocation, error)
	DeleteWishlist(ctx context.Context, projectID string, locationID string) (WishlistLocation, error)
}
