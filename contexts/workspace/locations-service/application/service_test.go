package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"hearth/contexts/workspace/locations-service/adapters/memory"
	domainerrors "hearth/contexts/workspace/locations-service/domain/errors"
	"hearth/contexts/workspace/locations-service/ports"
)

var (
	errNotMember     = errors.New("not a member")
	errAuthorOrAdmin = errors.New("author or admin required")
)

type fakeAuthorizer struct {
	members map[string]string
}

func (f fakeAuthorizer) RequireMember(ctx context.Context, projectID string, userID string) error {
	if _, ok := f.members[userID]; !ok {
		return errNotMember
	}
	return nil
}

func (f fakeAuthorizer) RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error {
	if userID == authorID || f.members[userID] == "admin" {
		return nil
	}
	return errAuthorOrAdmin
}

func newLocationsService() Service {
	store := memory.NewStore()
	return Service{
		Repo: store,
		Authorizer: fakeAuthorizer{members: map[string]string{
			"user_admin": "admin",
			"user_alice": "member",
			"user_bob":   "member",
		}},
		Clock:       store,
		IDGenerator: store,
	}
}

func TestVisitedListedNewestDateFirst(t *testing.T) {
	service := newLocationsService()
	ctx := context.Background()

	older := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	if _, err := service.CreateVisited(ctx, "proj_1", "user_alice", ports.CreateVisitedInput{Name: "Lisbon", Date: older}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateVisited(ctx, "proj_1", "user_bob", ports.CreateVisitedInput{Name: "Kyoto", Date: newer}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	visited, err := service.ListVisited(ctx, "proj_1", "user_alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(visited) != 2 || visited[0].Name != "Kyoto" || visited[1].Name != "Lisbon" {
		t.Fatalf("expected newest visit first, got %+v", visited)
	}
}

func TestVisitedValidation(t *testing.T) {
	service := newLocationsService()
	ctx := context.Background()

	if _, err := service.CreateVisited(ctx, "proj_1", "user_alice", ports.CreateVisitedInput{Name: "Lisbon"}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for missing date, got %v", err)
	}
	if _, err := service.CreateVisited(ctx, "proj_1", "user_alice", ports.CreateVisitedInput{Date: time.Now()}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for missing name, got %v", err)
	}
	if _, err := service.CreateVisited(ctx, "proj_1", "user_stranger", ports.CreateVisitedInput{Name: "Lisbon", Date: time.Now()}); !errors.Is(err, errNotMember) {
		t.Fatalf("expected membership gate, got %v", err)
	}
}

func TestWishlistOrderedByPriority(t *testing.T) {
	service := newLocationsService()
	ctx := context.Background()

	if _, err := service.CreateWishlist(ctx, "proj_1", "user_alice", ports.CreateWishlistInput{Name: "Patagonia", Priority: 3}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateWishlist(ctx, "proj_1", "user_bob", ports.CreateWishlistInput{Name: "Iceland", Priority: 1}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	wishlist, err := service.ListWishlist(ctx, "proj_1", "user_alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// Lower priority values sort first.
	if len(wishlist) != 2 || wishlist[0].Name != "Iceland" || wishlist[1].Name != "Patagonia" {
		t.Fatalf("expected priority order, got %+v", wishlist)
	}

	if _, err := service.CreateWishlist(ctx, "proj_1", "user_alice", ports.CreateWishlistInput{Name: "Nowhere", Priority: -1}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for negative priority, got %v", err)
	}
}

func TestWishlistOwnership(t *testing.T) {
	service := newLocationsService()
	ctx := context.Background()

	location, err := service.CreateWishlist(ctx, "proj_1", "user_alice", ports.CreateWishlistInput{Name: "Iceland", Priority: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	priority := 2
	if _, err := service.UpdateWishlist(ctx, "proj_1", location.LocationID, "user_bob", ports.UpdateWishlistInput{Priority: &priority}); !errors.Is(err, errAuthorOrAdmin) {
		t.Fatalf("expected ownership gate, got %v", err)
	}
	if _, err := service.UpdateWishlist(ctx, "proj_1", location.LocationID, "user_admin", ports.UpdateWishlistInput{Priority: &priority}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if _, err := service.DeleteWishlist(ctx, "proj_1", location.LocationID, "user_alice"); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if _, err := service.GetWishlist(ctx, "proj_1", location.LocationID, "user_alice"); !errors.Is(err, domainerrors.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound after delete, got %v", err)
	}
}

func TestLocationsScopedByProject(t *testing.T) {
	service := newLocationsService()
	ctx := context.Background()

	visited, err := service.CreateVisited(ctx, "proj_1", "user_alice", ports.CreateVisitedInput{Name: "Lisbon", Date: time.Now()})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.GetVisited(ctx, "proj_2", visited.LocationID, "user_alice"); !errors.Is(err, domainerrors.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound across projects, got %v", err)
	}
}
