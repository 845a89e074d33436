package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "hearth/contexts/workspace/motd-service/domain/errors"
	"hearth/contexts/workspace/motd-service/ports"
)

type Service struct {
	Repo        ports.Repository
	Authorizer  ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// ListForUser returns the messages addressed to the caller, newest first.
func (s Service) ListForUser(ctx context.Context, projectID string, userID string) ([]ports.Motd, error) {
	if err := s.Authorizer.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListForUser(ctx, strings.TrimSpace(projectID), userID)
}

// SetMotd creates or replaces the caller's message for the addressee. An
// addressee outside the project reads as not-found, the same as an unknown
// user ID.
func (s Service) SetMotd(ctx context.Context, projectID string, fromUserID string, toUserID string, message string) (ports.Motd, error) {
	toUserID = strings.TrimSpace(toUserID)
	if toUserID == "" || strings.TrimSpace(message) == "" {
		return ports.Motd{}, domainerrors.ErrInvalidRequest
	}
	if err := s.Authorizer.RequireMember(ctx, projectID, fromUserID); err != nil {
		return ports.Motd{}, err
	}
	isMember, err := s.Authorizer.IsMember(ctx, projectID, toUserID)
	if err != nil {
		return ports.Motd{}, err
	}
	if !isMember {
		return ports.Motd{}, domainerrors.ErrTargetNotMember
	}

	motdID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.Motd{}, err
	}
	now := s.now()
	motd, err := s.Repo.Upsert(ctx, ports.Motd{
		MotdID:     motdID,
		ProjectID:  strings.TrimSpace(projectID),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return ports.Motd{}, err
	}

	resolveLogger(s.Logger).Info("motd set",
		"event", "motd_set",
		"module", "workspace/motd-service",
		"layer", "application",
		"project_id", motd.ProjectID,
		"motd_id", motd.MotdID,
	)
	return motd, nil
}

func (s Service) UpdateMotd(ctx context.Context, projectID string, motdID string, userID string, message string) (ports.Motd, error) {
	if strings.TrimSpace(message) == "" {
		return ports.Motd{}, domainerrors.ErrInvalidRequest
	}
	motd, err := s.Repo.GetMotd(ctx, strings.TrimSpace(projectID), strings.TrimSpace(motdID))
	if err != nil {
		return ports.Motd{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, motd.FromUserID); err != nil {
		return ports.Motd{}, err
	}
	return s.Repo.UpdateMessage(ctx, motd.ProjectID, motd.MotdID, message, s.now())
}

func (s Service) DeleteMotd(ctx context.Context, projectID string, motdID string, userID string) (ports.Motd, error) {
	motd, err := s.Repo.GetMotd(ctx, strings.TrimSpace(projectID), strings.TrimSpace(motdID))
	if err != nil {
		return ports.Motd{}, err
	}
	if err := s.Authorizer.RequireAuthorOrAdmin(ctx, projectID, userID, motd.FromUserID); err != nil {
		return ports.Motd{}, err
	}

	deleted, err := s.Repo.DeleteMotd(ctx, motd.ProjectID, motd.MotdID)
	if err != nil {
		return ports.Motd{}, err
	}
	resolveLogger(s.Logger).Info("motd deleted",
		"event", "motd_deleted",
		"module", "workspace/motd-service",
		"layer", "application",
		"project_id", deleted.ProjectID,
		"motd_id", deleted.MotdID,
	)
	return deleted, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
