package application

import (
	"context"
	"errors"
	"testing"

	"hearth/contexts/workspace/motd-service/adapters/memory"
	domainerrors "hearth/contexts/workspace/motd-service/domain/errors"
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

func (f fakeAuthorizer) IsMember(ctx context.Context, projectID string, userID string) (bool, error) {
	_, ok := f.members[userID]
	return ok, nil
}

func (f fakeAuthorizer) RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error {
	if userID == authorID {
		return nil
	}
	if f.members[userID] == "admin" {
		return nil
	}
	if _, ok := f.members[userID]; !ok {
		return errNotMember
	}
	return errAuthorOrAdmin
}

func newMotdService() Service {
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

func TestSetMotdRequiresMemberTarget(t *testing.T) {
	service := newMotdService()
	ctx := context.Background()

	if _, err := service.SetMotd(ctx, "proj_1", "user_alice", "user_stranger", "hi"); !errors.Is(err, domainerrors.ErrTargetNotMember) {
		t.Fatalf("expected ErrTargetNotMember, got %v", err)
	}
	if _, err := service.SetMotd(ctx, "proj_1", "user_stranger", "user_bob", "hi"); !errors.Is(err, errNotMember) {
		t.Fatalf("expected membership gate for sender, got %v", err)
	}
	if _, err := service.SetMotd(ctx, "proj_1", "user_alice", "user_bob", "  "); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for blank message, got %v", err)
	}
}

func TestSetMotdReplacesPerPair(t *testing.T) {
	service := newMotdService()
	ctx := context.Background()

	first, err := service.SetMotd(ctx, "proj_1", "user_alice", "user_bob", "good morning")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	second, err := service.SetMotd(ctx, "proj_1", "user_alice", "user_bob", "good evening")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if second.MotdID != first.MotdID {
		t.Fatalf("pair must keep one record: %s vs %s", second.MotdID, first.MotdID)
	}
	if second.Message != "good evening" {
		t.Fatalf("expected replaced message, got %q", second.Message)
	}

	// A different sender to the same addressee is a separate record.
	other, err := service.SetMotd(ctx, "proj_1", "user_admin", "user_bob", "hello")
	if err != nil {
		t.Fatalf("set from other sender failed: %v", err)
	}
	if other.MotdID == first.MotdID {
		t.Fatal("distinct pairs must not share a record")
	}

	inbox, err := service.ListForUser(ctx, "proj_1", "user_bob")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("expected 2 messages for bob, got %d", len(inbox))
	}
}

func TestListForUserOnlyReturnsAddressee(t *testing.T) {
	service := newMotdService()
	ctx := context.Background()

	if _, err := service.SetMotd(ctx, "proj_1", "user_alice", "user_bob", "for bob"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	inbox, err := service.ListForUser(ctx, "proj_1", "user_alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(inbox) != 0 {
		t.Fatalf("alice sent the message, she must not receive it: %d", len(inbox))
	}
	if _, err := service.ListForUser(ctx, "proj_1", "user_stranger"); !errors.Is(err, errNotMember) {
		t.Fatalf("expected membership gate, got %v", err)
	}
}

func TestUpdateMotdOwnership(t *testing.T) {
	service := newMotdService()
	ctx := context.Background()

	motd, err := service.SetMotd(ctx, "proj_1", "user_alice", "user_bob", "good morning")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// The addressee is not the author; they cannot rewrite their own inbox.
	if _, err := service.UpdateMotd(ctx, "proj_1", motd.MotdID, "user_bob", "better message"); !errors.Is(err, errAuthorOrAdmin) {
		t.Fatalf("expected ownership gate, got %v", err)
	}

	updated, err := service.UpdateMotd(ctx, "proj_1", motd.MotdID, "user_alice", "good evening")
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Message != "good evening" {
		t.Fatalf("expected updated message, got %q", updated.Message)
	}
	if _, err := service.UpdateMotd(ctx, "proj_1", motd.MotdID, "user_admin", "admin override"); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestDeleteMotdScopedByProject(t *testing.T) {
	service := newMotdService()
	ctx := context.Background()

	motd, err := service.SetMotd(ctx, "proj_1", "user_alice", "user_bob", "good morning")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if _, err := service.DeleteMotd(ctx, "proj_2", motd.MotdID, "user_alice"); !errors.Is(err, domainerrors.ErrMotdNotFound) {
		t.Fatalf("expected ErrMotdNotFound across projects, got %v", err)
	}
	if _, err := service.DeleteMotd(ctx, "proj_1", motd.MotdID, "user_alice"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.UpdateMotd(ctx, "proj_1", motd.MotdID, "user_alice", "again"); !errors.Is(err, domainerrors.ErrMotdNotFound) {
		t.Fatalf("expected ErrMotdNotFound after delete, got %v", err)
	}
}
