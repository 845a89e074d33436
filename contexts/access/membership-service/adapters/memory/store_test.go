package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainerrors "hearth/contexts/access/membership-service/domain/errors"
	"hearth/contexts/access/membership-service/ports"
)

func seedProject(t *testing.T, store *Store) ports.Project {
	t.Helper()
	project := ports.Project{ProjectID: "proj_1", Name: "Household", CreatedAt: time.Now().UTC()}
	creator := ports.Membership{
		MembershipID: "mem_admin",
		ProjectID:    "proj_1",
		UserID:       "user_alice",
		Role:         ports.RoleAdmin,
		CreatedAt:    project.CreatedAt,
	}
	if _, err := store.CreateProject(context.Background(), project, creator); err != nil {
		t.Fatalf("seed project failed: %v", err)
	}
	return project
}

func seedCodeInvite(t *testing.T, store *Store, projectID string, code string) ports.Invite {
	t.Helper()
	invite := ports.Invite{
		InviteID:  "inv_" + code,
		ProjectID: projectID,
		Mode:      ports.InviteModeCode,
		Code:      code,
		Status:    ports.InviteStatusPending,
		CreatedBy: "user_alice",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := store.CreateInvite(context.Background(), invite); err != nil {
		t.Fatalf("seed invite failed: %v", err)
	}
	return invite
}

func TestCreateInviteRejectsDuplicateCode(t *testing.T) {
	store := NewStore()
	project := seedProject(t, store)
	seedCodeInvite(t, store, project.ProjectID, "AAAA2222")

	dup := ports.Invite{
		InviteID:  "inv_dup",
		ProjectID: project.ProjectID,
		Mode:      ports.InviteModeCode,
		Code:      "AAAA2222",
		Status:    ports.InviteStatusPending,
	}
	if _, err := store.CreateInvite(context.Background(), dup); !errors.Is(err, domainerrors.ErrCodeCollision) {
		t.Fatalf("expected ErrCodeCollision, got %v", err)
	}
}

func TestConcurrentCodeRedemptionAdmitsOne(t *testing.T) {
	store := NewStore()
	project := seedProject(t, store)
	seedCodeInvite(t, store, project.ProjectID, "BBBB3333")

	users := []string{"user_bob", "user_carol", "user_dave", "user_erin"}
	var wg sync.WaitGroup
	results := make([]error, len(users))
	for i, userID := range users {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			membership := ports.Membership{
				MembershipID: "mem_" + userID,
				UserID:       userID,
				Role:         ports.RoleMember,
				CreatedAt:    time.Now().UTC(),
			}
			_, results[i] = store.AcceptInviteByCode(context.Background(), "BBBB3333", membership, time.Now())
		}(i, userID)
	}
	wg.Wait()

	accepted := 0
	for _, err := range results {
		if err == nil {
			accepted++
		} else if !errors.Is(err, domainerrors.ErrInviteNotFound) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly one winner, got %d", accepted)
	}

	memberships, err := store.ListMemberships(context.Background(), project.ProjectID)
	if err != nil {
		t.Fatalf("list memberships failed: %v", err)
	}
	// Creator plus the single winner.
	if len(memberships) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(memberships))
	}
}

func TestAcceptKeepsExistingMembership(t *testing.T) {
	store := NewStore()
	project := seedProject(t, store)
	seedCodeInvite(t, store, project.ProjectID, "CCCC4444")

	// The creator redeems a code for a project they already belong to.
	membership := ports.Membership{
		MembershipID: "mem_replacement",
		UserID:       "user_alice",
		Role:         ports.RoleMember,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := store.AcceptInviteByCode(context.Background(), "CCCC4444", membership, time.Now()); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	existing, found, err := store.FindMembership(context.Background(), project.ProjectID, "user_alice")
	if err != nil || !found {
		t.Fatalf("membership lookup failed: found=%v err=%v", found, err)
	}
	if existing.MembershipID != "mem_admin" || existing.Role != ports.RoleAdmin {
		t.Fatalf("existing membership was clobbered: %+v", existing)
	}
}

func TestInviteLookupScopedByProject(t *testing.T) {
	store := NewStore()
	project := seedProject(t, store)
	invite := seedCodeInvite(t, store, project.ProjectID, "DDDD5555")

	if _, err := store.GetInvite(context.Background(), "proj_other", invite.InviteID); !errors.Is(err, domainerrors.ErrInviteNotFound) {
		t.Fatalf("expected ErrInviteNotFound, got %v", err)
	}
}

func TestLastAdminGuard(t *testing.T) {
	store := NewStore()
	project := seedProject(t, store)

	ctx := context.Background()
	if _, err := store.UpdateMemberRole(ctx, project.ProjectID, "mem_admin", ports.RoleMember); !errors.Is(err, domainerrors.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin on demote, got %v", err)
	}
	if _, err := store.RemoveMembership(ctx, project.ProjectID, "mem_admin"); !errors.Is(err, domainerrors.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin on removal, got %v", err)
	}

	seedCodeInvite(t, store, project.ProjectID, "GGGG8888")
	second := ports.Membership{
		MembershipID: "mem_bob",
		UserID:       "user_bob",
		Role:         ports.RoleMember,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := store.AcceptInviteByCode(ctx, "GGGG8888", second, time.Now()); err != nil {
		t.Fatalf("seed second member failed: %v", err)
	}
	if _, err := store.UpdateMemberRole(ctx, project.ProjectID, "mem_bob", ports.RoleAdmin); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if _, err := store.RemoveMembership(ctx, project.ProjectID, "mem_admin"); err != nil {
		t.Fatalf("removal with second admin failed: %v", err)
	}
}

func TestAuditLogReturnsTail(t *testing.T) {
	store := NewStore()
	project := seedProject(t, store)
	seedCodeInvite(t, store, project.ProjectID, "EEEE6666")
	seedCodeInvite(t, store, project.ProjectID, "FFFF7777")

	entries, err := store.ListAuditLog(context.Background(), project.ProjectID, 2)
	if err != nil {
		t.Fatalf("audit log failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != "invite.issued" || entries[1].Action != "invite.issued" {
		t.Fatalf("expected the newest entries, got %s and %s", entries[0].Action, entries[1].Action)
	}
}
