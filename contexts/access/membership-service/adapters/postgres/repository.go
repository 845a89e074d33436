package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "hearth/contexts/access/membership-service/domain/errors"
	"hearth/contexts/access/membership-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListProjects(ctx context.Context, userID string) ([]ports.Project, error) {
	var rows []projectModel
	err := r.db.WithContext(ctx).
		Joins("JOIN project_members ON project_members.project_id = projects.project_id").
		Where("project_members.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateProject(ctx context.Context, project ports.Project, creator ports.Membership) (ports.Project, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(projectModelFromEntity(project)).Error; err != nil {
			return err
		}
		if err := tx.Create(membershipModelFromEntity(creator)).Error; err != nil {
			return err
		}
		return appendAudit(tx, project.ProjectID, creator.UserID, "project.created", project.ProjectID, project.CreatedAt)
	})
	if err != nil {
		return ports.Project{}, err
	}
	return project, nil
}

func (r *Repository) GetProject(ctx context.Context, projectID string) (ports.Project, error) {
	var row projectModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Project{}, domainerrors.ErrProjectNotFound
		}
		return ports.Project{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateProject(ctx context.Context, projectID string, input ports.UpdateProjectInput, now time.Time) (ports.Project, error) {
	updates := map[string]any{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&projectModel{}).
			Where("project_id = ?", projectID).
			Updates(updates)
		if result.Error != nil {
			return ports.Project{}, result.Error
		}
		if result.RowsAffected == 0 {
			return ports.Project{}, domainerrors.ErrProjectNotFound
		}
	}
	return r.GetProject(ctx, projectID)
}

func (r *Repository) ArchiveProject(ctx context.Context, projectID string, now time.Time) (ports.Project, error) {
	result := r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("project_id = ? AND archived_at IS NULL", projectID).
		Update("archived_at", now.UTC())
	if result.Error != nil {
		return ports.Project{}, result.Error
	}
	return r.GetProject(ctx, projectID)
}

func (r *Repository) FindMembership(ctx context.Context, projectID string, userID string) (ports.Membership, bool, error) {
	var row membershipModel
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Membership{}, false, nil
		}
		return ports.Membership{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListMemberships(ctx context.Context, projectID string) ([]ports.Membership, error) {
	var rows []membershipModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.Membership, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateMemberRole(ctx context.Context, projectID string, membershipID string, role string) (ports.Membership, error) {
	var out ports.Membership
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockMembership(tx, projectID, membershipID)
		if err != nil {
			return err
		}
		if row.Role == ports.RoleAdmin && role != ports.RoleAdmin {
			if err := requireAnotherAdmin(tx, projectID, row.MembershipID); err != nil {
				return err
			}
		}
		if err := tx.Model(&membershipModel{}).
			Where("membership_id = ?", row.MembershipID).
			Update("role", role).
			Error; err != nil {
			return err
		}
		row.Role = role
		out = row.toEntity()
		return appendAudit(tx, projectID, row.UserID, "member.role_changed", row.MembershipID, time.Now().UTC())
	})
	if err != nil {
		return ports.Membership{}, err
	}
	return out, nil
}

func (r *Repository) RemoveMembership(ctx context.Context, projectID string, membershipID string) (ports.Membership, error) {
	var out ports.Membership
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockMembership(tx, projectID, membershipID)
		if err != nil {
			return err
		}
		if row.Role == ports.RoleAdmin {
			if err := requireAnotherAdmin(tx, projectID, row.MembershipID); err != nil {
				return err
			}
		}
		if err := tx.Where("membership_id = ?", row.MembershipID).
			Delete(&membershipModel{}).
			Error; err != nil {
			return err
		}
		out = row.toEntity()
		return appendAudit(tx, projectID, row.UserID, "member.removed", row.MembershipID, time.Now().UTC())
	})
	if err != nil {
		return ports.Membership{}, err
	}
	return out, nil
}

func (r *Repository) CreateInvite(ctx context.Context, invite ports.Invite) (ports.Invite, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inviteModelFromEntity(invite)).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrCodeCollision
			}
			return err
		}
		return appendAudit(tx, invite.ProjectID, invite.CreatedBy, "invite.issued", invite.InviteID, invite.CreatedAt)
	})
	if err != nil {
		return ports.Invite{}, err
	}
	return invite, nil
}

func (r *Repository) AcceptInviteByCode(ctx context.Context, code string, membership ports.Membership, now time.Time) (ports.Invite, error) {
	return r.accept(ctx, membership, now, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("code = ?", code)
	})
}

func (r *Repository) AcceptInviteByID(ctx context.Context, projectID string, inviteID string, membership ports.Membership, now time.Time) (ports.Invite, error) {
	return r.accept(ctx, membership, now, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("invite_id = ? AND project_id = ?", inviteID, projectID)
	})
}

// accept commits the pending->accepted flip and the membership upsert in one
// transaction. The invite row is locked and the status checked inside the
// transaction, so exactly one of two concurrent redeemers wins; the loser sees
// ErrInviteNotFound. The membership insert ignores a conflicting existing row,
// collapsing concurrent redemptions for the same user into one membership.
func (r *Repository) accept(ctx context.Context, membership ports.Membership, now time.Time, scope func(*gorm.DB) *gorm.DB) (ports.Invite, error) {
	var out ports.Invite
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row inviteModel
		if err := scope(tx.Clauses(clause.Locking{Strength: "UPDATE"})).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInviteNotFound
			}
			return err
		}
		if row.Status != ports.InviteStatusPending {
			return domainerrors.ErrInviteNotFound
		}

		resolvedAt := now.UTC()
		result := tx.Model(&inviteModel{}).
			Where("invite_id = ? AND status = ?", row.InviteID, ports.InviteStatusPending).
			Updates(map[string]any{
				"status":      ports.InviteStatusAccepted,
				"resolved_at": resolvedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrInviteNotFound
		}

		membership.ProjectID = row.ProjectID
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(membershipModelFromEntity(membership)).Error; err != nil {
			return err
		}

		row.Status = ports.InviteStatusAccepted
		row.ResolvedAt = &resolvedAt
		out = row.toEntity()
		return appendAudit(tx, row.ProjectID, membership.UserID, "invite.accepted", row.InviteID, resolvedAt)
	})
	if err != nil {
		return ports.Invite{}, err
	}
	return out, nil
}

func (r *Repository) DeclineInviteByCode(ctx context.Context, code string, actorUserID string, now time.Time) (ports.Invite, error) {
	return r.decline(ctx, actorUserID, now, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("code = ?", code)
	})
}

func (r *Repository) DeclineInviteByID(ctx context.Context, projectID string, inviteID string, actorUserID string, now time.Time) (ports.Invite, error) {
	return r.decline(ctx, actorUserID, now, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("invite_id = ? AND project_id = ?", inviteID, projectID)
	})
}

func (r *Repository) decline(ctx context.Context, actorUserID string, now time.Time, scope func(*gorm.DB) *gorm.DB) (ports.Invite, error) {
	var out ports.Invite
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row inviteModel
		if err := scope(tx.Clauses(clause.Locking{Strength: "UPDATE"})).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInviteNotFound
			}
			return err
		}
		if row.Status != ports.InviteStatusPending {
			return domainerrors.ErrInviteNotFound
		}

		resolvedAt := now.UTC()
		result := tx.Model(&inviteModel{}).
			Where("invite_id = ? AND status = ?", row.InviteID, ports.InviteStatusPending).
			Updates(map[string]any{
				"status":      ports.InviteStatusDeclined,
				"resolved_at": resolvedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrInviteNotFound
		}

		row.Status = ports.InviteStatusDeclined
		row.ResolvedAt = &resolvedAt
		out = row.toEntity()
		return appendAudit(tx, row.ProjectID, actorUserID, "invite.declined", row.InviteID, resolvedAt)
	})
	if err != nil {
		return ports.Invite{}, err
	}
	return out, nil
}

func (r *Repository) GetInvite(ctx context.Context, projectID string, inviteID string) (ports.Invite, error) {
	var row inviteModel
	err := r.db.WithContext(ctx).
		Where("invite_id = ? AND project_id = ?", inviteID, projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Invite{}, domainerrors.ErrInviteNotFound
		}
		return ports.Invite{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListAuditLog(ctx context.Context, projectID string, limit int) ([]ports.AuditEntry, error) {
	var rows []auditModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.AuditEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func lockMembership(tx *gorm.DB, projectID string, membershipID string) (membershipModel, error) {
	var row membershipModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("membership_id = ? AND project_id = ?", membershipID, projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return membershipModel{}, domainerrors.ErrMemberNotFound
		}
		return membershipModel{}, err
	}
	return row, nil
}

// requireAnotherAdmin guards the minimum-one-admin invariant inside the
// mutation transaction.
func requireAnotherAdmin(tx *gorm.DB, projectID string, excludeMembershipID string) error {
	var count int64
	err := tx.Model(&membershipModel{}).
		Where("project_id = ? AND role = ? AND membership_id <> ?", projectID, ports.RoleAdmin, excludeMembershipID).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrLastAdmin
	}
	return nil
}

func appendAudit(tx *gorm.DB, projectID string, actorUserID string, action string, targetID string, at time.Time) error {
	return tx.Create(&auditModel{
		AuditID:     newAuditID(),
		ProjectID:   projectID,
		ActorUserID: actorUserID,
		Action:      action,
		TargetID:    targetID,
		CreatedAt:   at.UTC(),
	}).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
