package postgresadapter

import (
	"time"

	"github.com/google/uuid"

	"hearth/contexts/access/membership-service/ports"
)

type projectModel struct {
	ProjectID   string     `gorm:"column:project_id;primaryKey"`
	Name        string     `gorm:"column:name"`
	Description string     `gorm:"column:description"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	ArchivedAt  *time.Time `gorm:"column:archived_at"`
}

func (projectModel) TableName() string {
	return "projects"
}

func (m projectModel) toEntity() ports.Project {
	return ports.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		ArchivedAt:  m.ArchivedAt,
	}
}

func projectModelFromEntity(item ports.Project) *projectModel {
	return &projectModel{
		ProjectID:   item.ProjectID,
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt.UTC(),
		ArchivedAt:  item.ArchivedAt,
	}
}

// membershipModel carries a unique index on (project_id, user_id); the accept
// path's OnConflict upsert targets it.
type membershipModel struct {
	MembershipID string    `gorm:"column:membership_id;primaryKey"`
	ProjectID    string    `gorm:"column:project_id;uniqueIndex:idx_project_user"`
	UserID       string    `gorm:"column:user_id;uniqueIndex:idx_project_user"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (membershipModel) TableName() string {
	return "project_members"
}

func (m membershipModel) toEntity() ports.Membership {
	return ports.Membership{
		MembershipID: m.MembershipID,
		ProjectID:    m.ProjectID,
		UserID:       m.UserID,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
	}
}

func membershipModelFromEntity(item ports.Membership) *membershipModel {
	return &membershipModel{
		MembershipID: item.MembershipID,
		ProjectID:    item.ProjectID,
		UserID:       item.UserID,
		Role:         item.Role,
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

type inviteModel struct {
	InviteID       string     `gorm:"column:invite_id;primaryKey"`
	ProjectID      string     `gorm:"column:project_id"`
	Mode           string     `gorm:"column:mode"`
	Code           *string    `gorm:"column:code;uniqueIndex"`
	RecipientEmail string     `gorm:"column:recipient_email"`
	Token          string     `gorm:"column:token"`
	Status         string     `gorm:"column:status"`
	CreatedBy      string     `gorm:"column:created_by"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at"`
}

func (inviteModel) TableName() string {
	return "project_invites"
}

func (m inviteModel) toEntity() ports.Invite {
	item := ports.Invite{
		InviteID:       m.InviteID,
		ProjectID:      m.ProjectID,
		Mode:           m.Mode,
		RecipientEmail: m.RecipientEmail,
		Token:          m.Token,
		Status:         m.Status,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		ResolvedAt:     m.ResolvedAt,
	}
	if m.Code != nil {
		item.Code = *m.Code
	}
	return item
}

func inviteModelFromEntity(item ports.Invite) *inviteModel {
	row := &inviteModel{
		InviteID:       item.InviteID,
		ProjectID:      item.ProjectID,
		Mode:           item.Mode,
		RecipientEmail: item.RecipientEmail,
		Token:          item.Token,
		Status:         item.Status,
		CreatedBy:      item.CreatedBy,
		CreatedAt:      item.CreatedAt.UTC(),
		ResolvedAt:     item.ResolvedAt,
	}
	// NULL rather than empty string keeps the unique code index from
	// rejecting every email invite after the first.
	if item.Code != "" {
		code := item.Code
		row.Code = &code
	}
	return row
}

type auditModel struct {
	AuditID     string    `gorm:"column:audit_id;primaryKey"`
	ProjectID   string    `gorm:"column:project_id"`
	ActorUserID string    `gorm:"column:actor_user_id"`
	Action      string    `gorm:"column:action"`
	TargetID    string    `gorm:"column:target_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (auditModel) TableName() string {
	return "project_audit_logs"
}

func (m auditModel) toEntity() ports.AuditEntry {
	return ports.AuditEntry{
		AuditID:     m.AuditID,
		ProjectID:   m.ProjectID,
		ActorUserID: m.ActorUserID,
		Action:      m.Action,
		TargetID:    m.TargetID,
		CreatedAt:   m.CreatedAt,
	}
}

func newAuditID() string {
	return uuid.NewString()
}
