package application

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "hearth/contexts/access/membership-service/domain/errors"
	"hearth/contexts/access/membership-service/ports"
)

const inviteCodeLength = 8

// Excludes 0/O/1/I so codes survive being read aloud or scribbled on paper.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type Service struct {
	Repo        ports.Repository
	Users       ports.UserDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Membership resolves the caller's membership row for a project.
// Absence is a Forbidden condition, not a NotFound one: the caller is
// authenticated but outside the project.
func (s Service) Membership(ctx context.Context, projectID string, userID string) (ports.Membership, error) {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(userID) == "" {
		return ports.Membership{}, domainerrors.ErrInvalidRequest
	}
	membership, found, err := s.Repo.FindMembership(ctx, strings.TrimSpace(projectID), strings.TrimSpace(userID))
	if err != nil {
		return ports.Membership{}, err
	}
	if !found {
		return ports.Membership{}, domainerrors.ErrNotMember
	}
	return membership, nil
}

// IsMember reports membership without gating. Callers that need a
// yes/no answer about a third user (not the actor) use this instead of
// RequireMember so absence can map to not-found rather than forbidden.
func (s Service) IsMember(ctx context.Context, projectID string, userID string) (bool, error) {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(userID) == "" {
		return false, domainerrors.ErrInvalidRequest
	}
	_, found, err := s.Repo.FindMembership(ctx, strings.TrimSpace(projectID), strings.TrimSpace(userID))
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s Service) RequireMember(ctx context.Context, projectID string, userID string) error {
	_, err := s.Membership(ctx, projectID, userID)
	return err
}

func (s Service) RequireAdmin(ctx context.Context, projectID string, userID string) error {
	membership, err := s.Membership(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if membership.Role != ports.RoleAdmin {
		return domainerrors.ErrAdminRequired
	}
	return nil
}

// RequireAuthorOrAdmin passes without any lookup when the caller authored the
// record. An admin who demoted themselves can still edit their own old
// content, so the self-author branch is behavior, not just a shortcut.
func (s Service) RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(authorID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	if userID == authorID {
		return nil
	}
	membership, err := s.Membership(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if membership.Role != ports.RoleAdmin {
		return domainerrors.ErrAuthorOrAdmin
	}
	return nil
}

func (s Service) ListProjects(ctx context.Context, userID string) ([]ports.Project, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListProjects(ctx, strings.TrimSpace(userID))
}

func (s Service) CreateProject(ctx context.Context, userID string, input ports.CreateProjectInput) (ports.Project, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(input.Name) == "" {
		return ports.Project{}, domainerrors.ErrInvalidRequest
	}
	now := s.now()
	projectID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Project{}, err
	}
	membershipID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Project{}, err
	}

	project := ports.Project{
		ProjectID:   projectID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
	}
	creator := ports.Membership{
		MembershipID: membershipID,
		ProjectID:    projectID,
		UserID:       strings.TrimSpace(userID),
		Role:         ports.RoleAdmin,
		CreatedAt:    now,
	}
	created, err := s.Repo.CreateProject(ctx, project, creator)
	if err != nil {
		return ports.Project{}, err
	}
	resolveLogger(s.Logger).Info("project created",
		"event", "membership_project_created",
		"module", "access/membership-service",
		"layer", "application",
		"project_id", created.ProjectID,
		"user_id", userID,
	)
	return created, nil
}

// GetProject scopes by membership: a project the caller does not belong to is
// reported absent, never forbidden, so project IDs cannot be probed.
func (s Service) GetProject(ctx context.Context, projectID string, userID string) (ports.Project, error) {
	if _, err := s.membershipOrProjectNotFound(ctx, projectID, userID); err != nil {
		return ports.Project{}, err
	}
	return s.Repo.GetProject(ctx, strings.TrimSpace(projectID))
}

func (s Service) UpdateProject(ctx context.Context, projectID string, userID string, input ports.UpdateProjectInput) (ports.Project, error) {
	if err := s.RequireAdmin(ctx, projectID, userID); err != nil {
		return ports.Project{}, err
	}
	return s.Repo.UpdateProject(ctx, strings.TrimSpace(projectID), input, s.now())
}

func (s Service) ArchiveProject(ctx context.Context, projectID string, userID string) (ports.Project, error) {
	if err := s.RequireAdmin(ctx, projectID, userID); err != nil {
		return ports.Project{}, err
	}
	return s.Repo.ArchiveProject(ctx, strings.TrimSpace(projectID), s.now())
}

func (s Service) ListMembers(ctx context.Context, projectID string, userID string) ([]ports.Member, error) {
	if err := s.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	memberships, err := s.Repo.ListMemberships(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(memberships))
	for _, membership := range memberships {
		userIDs = append(userIDs, membership.UserID)
	}
	profiles, err := s.Users.ListProfiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	profileByID := make(map[string]ports.UserProfile, len(profiles))
	for _, profile := range profiles {
		profileByID[profile.UserID] = profile
	}

	members := make([]ports.Member, 0, len(memberships))
	for _, membership := range memberships {
		member := ports.Member{Membership: membership}
		if profile, ok := profileByID[membership.UserID]; ok {
			member.Email = profile.Email
			member.DisplayName = profile.DisplayName
		}
		members = append(members, member)
	}
	return members, nil
}

func (s Service) UpdateMemberRole(ctx context.Context, projectID string, membershipID string, actorUserID string, role string) (ports.Membership, error) {
	if !ports.IsValidRole(role) || strings.TrimSpace(membershipID) == "" {
		return ports.Membership{}, domainerrors.ErrInvalidRequest
	}
	if err := s.RequireAdmin(ctx, projectID, actorUserID); err != nil {
		return ports.Membership{}, err
	}
	updated, err := s.Repo.UpdateMemberRole(ctx, strings.TrimSpace(projectID), strings.TrimSpace(membershipID), role)
	if err != nil {
		return ports.Membership{}, err
	}
	resolveLogger(s.Logger).Info("member role updated",
		"event", "membership_role_updated",
		"module", "access/membership-service",
		"layer", "application",
		"project_id", projectID,
		"membership_id", membershipID,
		"actor_user_id", actorUserID,
		"role", role,
	)
	return updated, nil
}

func (s Service) RemoveMember(ctx context.Context, projectID string, membershipID string, actorUserID string) (ports.Membership, error) {
	if strings.TrimSpace(membershipID) == "" {
		return ports.Membership{}, domainerrors.ErrInvalidRequest
	}
	if err := s.RequireAdmin(ctx, projectID, actorUserID); err != nil {
		return ports.Membership{}, err
	}
	removed, err := s.Repo.RemoveMembership(ctx, strings.TrimSpace(projectID), strings.TrimSpace(membershipID))
	if err != nil {
		return ports.Membership{}, err
	}
	resolveLogger(s.Logger).Info("member removed",
		"event", "membership_member_removed",
		"module", "access/membership-service",
		"layer", "application",
		"project_id", projectID,
		"membership_id", membershipID,
		"actor_user_id", actorUserID,
	)
	return removed, nil
}

// CreateInvite issues a code invite when recipientEmail is empty and an
// email-bound invite otherwise. Issuance always requires admin.
func (s Service) CreateInvite(ctx context.Context, projectID string, actorUserID string, recipientEmail string) (ports.Invite, error) {
	if err := s.RequireAdmin(ctx, projectID, actorUserID); err != nil {
		return ports.Invite{}, err
	}
	now := s.now()
	inviteID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Invite{}, err
	}

	invite := ports.Invite{
		InviteID:  inviteID,
		ProjectID: strings.TrimSpace(projectID),
		Status:    ports.InviteStatusPending,
		CreatedBy: strings.TrimSpace(actorUserID),
		CreatedAt: now,
	}
	if strings.TrimSpace(recipientEmail) == "" {
		invite.Mode = ports.InviteModeCode
		code, err := newInviteCode()
		if err != nil {
			return ports.Invite{}, err
		}
		invite.Code = code
	} else {
		invite.Mode = ports.InviteModeEmail
		invite.RecipientEmail = strings.ToLower(strings.TrimSpace(recipientEmail))
		token, err := s.IDGenerator.NewID(ctx)
		if err != nil {
			return ports.Invite{}, err
		}
		invite.Token = token
	}

	created, err := s.Repo.CreateInvite(ctx, invite)
	if errors.Is(err, domainerrors.ErrCodeCollision) && invite.Mode == ports.InviteModeCode {
		// One re-roll; at 32^8 codes a second collision means the store is lying.
		code, rollErr := newInviteCode()
		if rollErr != nil {
			return ports.Invite{}, rollErr
		}
		invite.Code = code
		created, err = s.Repo.CreateInvite(ctx, invite)
	}
	if err != nil {
		return ports.Invite{}, err
	}
	resolveLogger(s.Logger).Info("invite issued",
		"event", "membership_invite_issued",
		"module", "access/membership-service",
		"layer", "application",
		"project_id", projectID,
		"invite_id", created.InviteID,
		"mode", created.Mode,
		"actor_user_id", actorUserID,
	)
	return created, nil
}

// AcceptInviteByCode redeems an anonymous code invite for the calling user.
// The status flip and the membership upsert commit in one transaction; a
// concurrent redeemer of the same code observes ErrInviteNotFound.
func (s Service) AcceptInviteByCode(ctx context.Context, code string, userID string) (ports.Invite, error) {
	if strings.TrimSpace(code) == "" || strings.TrimSpace(userID) == "" {
		return ports.Invite{}, domainerrors.ErrInvalidRequest
	}
	membershipID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Invite{}, err
	}
	membership := ports.Membership{
		MembershipID: membershipID,
		UserID:       strings.TrimSpace(userID),
		Role:         ports.RoleMember,
		CreatedAt:    s.now(),
	}
	invite, err := s.Repo.AcceptInviteByCode(ctx, normalizeCode(code), membership, s.now())
	if err != nil {
		return ports.Invite{}, err
	}
	resolveLogger(s.Logger).Info("invite accepted",
		"event", "membership_invite_accepted",
		"module", "access/membership-service",
		"layer", "application",
		"project_id", invite.ProjectID,
		"invite_id", invite.InviteID,
		"mode", invite.Mode,
		"user_id", userID,
	)
	return invite, nil
}

// DeclineInviteByCode requires an authenticated caller. The source system let
// anyone decline by guessing a code; that was judged a bug, not a feature.
func (s Service) DeclineInviteByCode(ctx context.Context, code string, userID string) (ports.Invite, error) {
	if strings.TrimSpace(code) == "" || strings.TrimSpace(userID) == "" {
		return ports.Invite{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.DeclineInviteByCode(ctx, normalizeCode(code), strings.TrimSpace(userID), s.now())
}

// AcceptInviteByID redeems an email-bound invite. The caller's verified email
// must match the recipient, case-insensitively; a mismatch leaves the invite
// pending and never redeems under the wrong identity.
func (s Service) AcceptInviteByID(ctx context.Context, projectID string, inviteID string, userID string, userEmail string) (ports.Invite, error) {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(inviteID) == "" || strings.TrimSpace(userID) == "" {
		return ports.Invite{}, domainerrors.ErrInvalidRequest
	}
	invite, err := s.Repo.GetInvite(ctx, strings.TrimSpace(projectID), strings.TrimSpace(inviteID))
	if err != nil {
		return ports.Invite{}, err
	}
	if invite.Status != ports.InviteStatusPending {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}
	if invite.Mode != ports.InviteModeEmail || !emailMatches(invite.RecipientEmail, userEmail) {
		return ports.Invite{}, domainerrors.ErrEmailMismatch
	}

	membershipID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Invite{}, err
	}
	membership := ports.Membership{
		MembershipID: membershipID,
		ProjectID:    invite.ProjectID,
		UserID:       strings.TrimSpace(userID),
		Role:         ports.RoleMember,
		CreatedAt:    s.now(),
	}
	accepted, err := s.Repo.AcceptInviteByID(ctx, invite.ProjectID, invite.InviteID, membership, s.now())
	if err != nil {
		return ports.Invite{}, err
	}
	resolveLogger(s.Logger).Info("invite accepted",
		"event", "membership_invite_accepted",
		"module", "access/membership-service",
		"layer", "application",
		"project_id", accepted.ProjectID,
		"invite_id", accepted.InviteID,
		"mode", accepted.Mode,
		"user_id", userID,
	)
	return accepted, nil
}

func (s Service) DeclineInviteByID(ctx context.Context, projectID string, inviteID string, userID string, userEmail string) (ports.Invite, error) {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(inviteID) == "" || strings.TrimSpace(userID) == "" {
		return ports.Invite{}, domainerrors.ErrInvalidRequest
	}
	invite, err := s.Repo.GetInvite(ctx, strings.TrimSpace(projectID), strings.TrimSpace(inviteID))
	if err != nil {
		return ports.Invite{}, err
	}
	if invite.Status != ports.InviteStatusPending {
		return ports.Invite{}, domainerrors.ErrInviteNotFound
	}
	if invite.Mode != ports.InviteModeEmail || !emailMatches(invite.RecipientEmail, userEmail) {
		return ports.Invite{}, domainerrors.ErrEmailMismatch
	}
	return s.Repo.DeclineInviteByID(ctx, invite.ProjectID, invite.InviteID, strings.TrimSpace(userID), s.now())
}

func (s Service) ListAuditLog(ctx context.Context, projectID string, userID string, limit int) ([]ports.AuditEntry, error) {
	if err := s.RequireAdmin(ctx, projectID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Repo.ListAuditLog(ctx, strings.TrimSpace(projectID), limit)
}

// membershipOrProjectNotFound converts the Forbidden membership miss into
// NotFound for read paths that must not disclose project existence.
func (s Service) membershipOrProjectNotFound(ctx context.Context, projectID string, userID string) (ports.Membership, error) {
	membership, err := s.Membership(ctx, projectID, userID)
	if errors.Is(err, domainerrors.ErrNotMember) {
		return ports.Membership{}, domainerrors.ErrProjectNotFound
	}
	return membership, err
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func emailMatches(recipientEmail string, userEmail string) bool {
	return strings.EqualFold(strings.TrimSpace(recipientEmail), strings.TrimSpace(userEmail))
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func newInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, inviteCodeLength)
	for i, b := range buf {
		code[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(code), nil
}
