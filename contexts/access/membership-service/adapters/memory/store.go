package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "hearth/contexts/access/membership-service/domain/errors"
	"hearth/contexts/access/membership-service/ports"
)

// Store is an in-memory adapter implementing the membership repository. It is
// used by tests and local development wiring; the single mutex stands in for
// the storage engine's transaction isolation.
type Store struct {
	mu sync.Mutex

	projectsByID              map[string]ports.Project
	membershipsByID           map[string]ports.Membership
	membershipIDByProjectUser map[string]string
	invitesByID               map[string]ports.Invite
	inviteIDByCode            map[string]string
	auditByProjectID          map[string][]ports.AuditEntry

	sequence uint64
}

func NewStore() *Store {
	return &Store{
		projectsByID:              make(map[string]ports.Project),
		membershipsByID:           make(map[string]ports.Membership),
		membershipIDByProjectUser: make(map[string]string),
		invitesByID:               make(map[string]ports.Invite),
		inviteIDByCode:            make(map[string]string),
		auditByProjectID:          make(map[string][]ports.AuditEntry),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("id_%06d", s.sequence), nil
}

func (s *Store) ListProjects(ctx context.Context, userID string) ([]ports.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := make([]ports.Project, 0)
	for _, membership := range s.membershipsByID {
		if membership.UserID != userID {
			continue
		}
		if project, ok := s.projectsByID[membership.ProjectID]; ok {
			projects = append(projects, project)
		}
	}
	sort.Slice(projects, func(i int, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *Store) CreateProject(ctx context.Context, project ports.Project, creator ports.Membership) (ports.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projectsByID[project.ProjectID] = project
	s.membershipsByID[creator.MembershipID] = creator
	s.membershipIDByProjectUser[projectUserKey(creator.ProjectID, creator.UserID)] = creator.MembershipID
	s.appendAuditLocked(project.ProjectID, creator.UserID, "project.created", project.ProjectID, project.CreatedAt)
	return project, nil
}

func (s *Store) GetProject(ctx context.Context, projectID string) (ports.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projectsByID[projectID]
	if !ok {
		return ports.Project{}, domainerrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Store) UpdateProject(ctx context.Context, projectID string, input ports.UpdateProjectInput, now time.Time) (ports.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projectsByID[projectID]
	if !ok {
		return ports.Project{}, domainerrors.ErrProjectNotFound
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		project.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	s.projectsByID[projectID] = project
	return project, nil
}

func (s *Store) ArchiveProject(ctx context.Context, projectID string, now time.Time) (ports.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projectsByID[projectID]
	if !ok {
		return ports.Project{}, domainerrors.ErrProjectNotFound
	}
	if project.ArchivedAt == nil {
		archivedAt := now.UTC()
		project.ArchivedAt = &archivedAt
		s.projectsByID[projectID] = project
	}
	return project, nil
}

func (s *Store) FindMembership(ctx context.Context, projectID string, userID string) (ports.Membership, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	membershipID, ok := s.membershipIDByProjectUser[projectUserKey(projectID, userID)]
	if !ok {
		return ports.Membership{}, false, nil
	}
	return s.membershipsByID[membershipID], true, nil
}

func (s *Store) ListMemberships(ctx context.Context, projectID string) ([]ports.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memberships := make([]ports.Membership, 0)
	for _, membership := range s.membershipsByID {
		if membership.ProjectID == projectID {
			memberships = append(memberships, membership)
		}
	}
	sort.Slice(memberships, func(i int, j int) bool {
		return memberships[i].CreatedAt.Before(memberships[j].CreatedAt)
	})
	return memberships, nil
}

func (s *Store) UpdateMemberRole(ctx context.Context, projectID string, membershipID string, role string) (ports.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership, ok := s.membershipsByID[membershipID]
	if !ok || membership.ProjectID != projectID {
		return ports.Membership{}, domainerrors.ErrMemberNotFound
	}
	if membership.Role == ports.RoleAdmin && role != ports.RoleAdmin && s.adminCountLocked(projectID) == 1 {
		return ports.Membership{}, domainerrors.ErrLastAdmin
	}
	membership.Role = role
	s.membershipsByID[membershipID] = membership
	s.appendAuditLocked(projectID, membership.UserID, "member.role_changed", membershipID, time.Now().UTC())
	return membership, nil
}

func (s *Store) RemoveMembership(ctx context.Context, projectID string, membershipID string) (ports.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership, ok := s.membershipsByID[membershipID]
	if !ok || membership.ProjectID != projectID {
		return ports.Membership{}, domainerrors.ErrMemberNotFound
	}
	if membership.Role == ports.RoleAdmin && s.adminCountLocked(projectID) == 1 {
		return ports.Membership{}, domainerrors.ErrLastAdmin
	}
	delete(s.membershipsByID, membershipID)
	delete(s.membershipIDByProjectUser, projectUserKey(projectID, membership.UserID))
	s.appendAuditLocked(projectID, membership.UserID, "member.removed", membershipID, time.Now().UTC())
	return membership, nil
}

func (s *Store) CreateInvite(ctx context.Context, invite ports.Invite) (ports.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projectsByID[invite.ProjectID]; !ok {
		return ports.Invite{}, domainerrors.ErrProjectNotFound
	}
	if invite.Mode == ports.InviteModeCode {
		if _, taken := s.inviteIDByCode[invite.Code]; taken {
			return ports.Invite{}, domainerrors.ErrCodeCollision
		}
		s.inviteIDByCode[invite.Code] = invite.InviteID
	}
	s.invitesByID[invite.InviteID] = invite
	s.appendAuditLocked(invite.ProjectID, invite.CreatedBy, "invite.issued", invite.InviteID, invite.CreatedAt)
	return invite, nil
}

func (s *Store) AcceptInviteByCode(ctx context.Context, code string, membership ports.Membership, now time.Time) (ports.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inviteID, ok := s.inviteIDByCode[code]
	if !ok {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}
	invite := s.invitesByID[inviteID]
	if invite.Status != ports.InviteStatusPending {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}

	membership.ProjectID = invite.ProjectID
	s.acceptLocked(&invite, membership, now)
	return invite, nil
}

func (s *Store) DeclineInviteByCode(ctx context.Context, code string, actorUserID string, now time.Time) (ports.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inviteID, ok := s.inviteIDByCode[code]
	if !ok {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}
	invite := s.invitesByID[inviteID]
	if invite.Status != ports.InviteStatusPending {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}
	s.declineLocked(&invite, actorUserID, now)
	return invite, nil
}

func (s *Store) GetInvite(ctx context.Context, projectID string, inviteID string) (ports.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite, ok := s.invitesByID[inviteID]
	if !ok || invite.ProjectID != projectID {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}
	return invite, nil
}

func (s *Store) AcceptInviteByID(ctx context.Context, projectID string, inviteID string, membership ports.Membership, now time.Time) (ports.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite, ok := s.invitesByID[inviteID]
	if !ok || invite.ProjectID != projectID || invite.Status != ports.InviteStatusPending {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}

	membership.ProjectID = invite.ProjectID
	s.acceptLocked(&invite, membership, now)
	return invite, nil
}

func (s *Store) DeclineInviteByID(ctx context.Context, projectID string, inviteID string, actorUserID string, now time.Time) (ports.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite, ok := s.invitesByID[inviteID]
	if !ok || invite.ProjectID != projectID || invite.Status != ports.InviteStatusPending {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}
	s.declineLocked(&invite, actorUserID, now)
	return invite, nil
}

func (s *Store) ListAuditLog(ctx context.Context, projectID string, limit int) ([]ports.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.auditByProjectID[projectID]
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]ports.AuditEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// acceptLocked applies the single-use transition and the membership upsert as
// one unit under the store mutex. An existing membership for the pair is left
// unchanged so concurrent redemptions for the same user never conflict.
func (s *Store) acceptLocked(invite *ports.Invite, membership ports.Membership, now time.Time) {
	resolvedAt := now.UTC()
	invite.Status = ports.InviteStatusAccepted
	invite.ResolvedAt = &resolvedAt
	s.invitesByID[invite.InviteID] = *invite

	key := projectUserKey(membership.ProjectID, membership.UserID)
	if _, exists := s.membershipIDByProjectUser[key]; !exists {
		s.membershipsByID[membership.MembershipID] = membership
		s.membershipIDByProjectUser[key] = membership.MembershipID
	}
	s.appendAuditLocked(invite.ProjectID, membership.UserID, "invite.accepted", invite.InviteID, resolvedAt)
}

func (s *Store) declineLocked(invite *ports.Invite, actorUserID string, now time.Time) {
	resolvedAt := now.UTC()
	invite.Status = ports.InviteStatusDeclined
	invite.ResolvedAt = &resolvedAt
	s.invitesByID[invite.InviteID] = *invite
	s.appendAuditLocked(invite.ProjectID, actorUserID, "invite.declined", invite.InviteID, resolvedAt)
}

func (s *Store) adminCountLocked(projectID string) int {
	count := 0
	for _, membership := range s.membershipsByID {
		if membership.ProjectID == projectID && membership.Role == ports.RoleAdmin {
			count++
		}
	}
	return count
}

func (s *Store) appendAuditLocked(projectID string, actorUserID string, action string, targetID string, at time.Time) {
	s.sequence++
	s.auditByProjectID[projectID] = append(s.auditByProjectID[projectID], ports.AuditEntry{
		AuditID:     fmt.Sprintf("audit_%06d", s.sequence),
		ProjectID:   projectID,
		ActorUserID: actorUserID,
		Action:      action,
		TargetID:    targetID,
		CreatedAt:   at.UTC(),
	})
}

func projectUserKey(projectID string, userID string) string {
	return projectID + "|" + userID
}
