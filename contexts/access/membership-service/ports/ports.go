package ports

import (
	"context"
	"time"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

func IsValidRole(role string) bool {
	return role == RoleMember || role == RoleAdmin
}

const (
	InviteModeCode  = "code"
	InviteModeEmail = "email"
)

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Project struct {
	ProjectID   string
	Name        string
	Description string
	CreatedAt   time.Time
	ArchivedAt  *time.Time
}

type Membership struct {
	MembershipID string
	ProjectID    string
	UserID       string
	Role         string
	CreatedAt    time.Time
}

// Member is a membership joined with the user directory projection.
type Member struct {
	Membership
	Email       string
	DisplayName string
}

// Invite carries one of two addressing modes. Code invites are redeemable by
// any authenticated user holding the code; email invites only by a user whose
// verified email matches RecipientEmail.
type Invite struct {
	InviteID       string
	ProjectID      string
	Mode           string
	Code           string
	RecipientEmail string
	Token          string
	Status         string
	CreatedBy      string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

type AuditEntry struct {
	AuditID     string
	ProjectID   string
	ActorUserID string
	Action      string
	TargetID    string
	CreatedAt   time.Time
}

type CreateProjectInput struct {
	Name        string
	Description string
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// UserProfile is the read-only slice of the identity service's user record
// that member listings join against.
type UserProfile struct {
	UserID      string
	Email       string
	DisplayName string
}

// UserDirectory is implemented by the identity service adapters.
type UserDirectory interface {
	ListProfiles(ctx context.Context, userIDs []string) ([]UserProfile, error)
}

// Repository is the transactional boundary for projects, memberships, and
// invites. Accept operations must commit the status flip and the membership
// upsert in one transaction: a resolved invite with no membership row must be
// impossible. Admin gating happens in the application layer before these are
// called; the repository enforces only structural invariants (uniqueness,
// single-use status transitions, minimum one admin).
type Repository interface {
	ListProjects(ctx context.Context, userID string) ([]Project, error)
	CreateProject(ctx context.Context, project Project, creator Membership) (Project, error)
	GetProject(ctx context.Context, projectID string) (Project, error)
	UpdateProject(ctx context.Context, projectID string, input UpdateProjectInput, now time.Time) (Project, error)
	ArchiveProject(ctx context.Context, projectID string, now time.Time) (Project, error)

	FindMembership(ctx context.Context, projectID string, userID string) (Membership, bool, error)
	ListMemberships(ctx context.Context, projectID string) ([]Membership, error)
	UpdateMemberRole(ctx context.Context, projectID string, membershipID string, role string) (Membership, error)
	RemoveMembership(ctx context.Context, projectID string, membershipID string) (Membership, error)

	CreateInvite(ctx context.Context, invite Invite) (Invite, error)
	AcceptInviteByCode(ctx context.Context, code string, membership Membership, now time.Time) (Invite, error)
	DeclineInviteByCode(ctx context.Context, code string, actorUserID string, now time.Time) (Invite, error)
	GetInvite(ctx context.Context, projectID string, inviteID string) (Invite, error)
	AcceptInviteByID(ctx context.Context, projectID string, inviteID string, membership Membership, now time.Time) (Invite, error)
	DeclineInviteByID(ctx context.Context, projectID string, inviteID string, actorUserID string, now time.Time) (Invite, error)

	ListAuditLog(ctx context.Context, projectID string, limit int) ([]AuditEntry, error)
}
