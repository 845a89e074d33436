package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hearth/contexts/access/membership-service/application"
	"hearth/contexts/access/membership-service/ports"
	httptransport "hearth/contexts/access/membership-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListProjectsHandler(ctx context.Context, userID string) (httptransport.ProjectListResponse, error) {
	items, err := h.Service.ListProjects(ctx, userID)
	if err != nil {
		return httptransport.ProjectListResponse{}, err
	}
	resp := httptransport.ProjectListResponse{Status: "success", Data: []httptransport.ProjectPayload{}}
	for _, item := range items {
		resp.Data = append(resp.Data, projectPayload(item))
	}
	return resp, nil
}

func (h Handler) CreateProjectHandler(ctx context.Context, userID string, req httptransport.CreateProjectRequest) (httptransport.ProjectResponse, error) {
	item, err := h.Service.CreateProject(ctx, userID, ports.CreateProjectInput{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return httptransport.ProjectResponse{Status: "success", Data: projectPayload(item)}, nil
}

func (h Handler) GetProjectHandler(ctx context.Context, projectID string, userID string) (httptransport.ProjectResponse, error) {
	item, err := h.Service.GetProject(ctx, strings.TrimSpace(projectID), userID)
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return httptransport.ProjectResponse{Status: "success", Data: projectPayload(item)}, nil
}

func (h Handler) UpdateProjectHandler(ctx context.Context, projectID string, userID string, req httptransport.UpdateProjectRequest) (httptransport.ProjectResponse, error) {
	item, err := h.Service.UpdateProject(ctx, strings.TrimSpace(projectID), userID, ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return httptransport.ProjectResponse{Status: "success", Data: projectPayload(item)}, nil
}

func (h Handler) ArchiveProjectHandler(ctx context.Context, projectID string, userID string) (httptransport.ProjectResponse, error) {
	item, err := h.Service.ArchiveProject(ctx, strings.TrimSpace(projectID), userID)
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return httptransport.ProjectResponse{Status: "success", Data: projectPayload(item)}, nil
}

func (h Handler) ListMembersHandler(ctx context.Context, projectID string, userID string) (httptransport.MemberListResponse, error) {
	items, err := h.Service.ListMembers(ctx, strings.TrimSpace(projectID), userID)
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	resp := httptransport.MemberListResponse{Status: "success", Data: []httptransport.MemberPayload{}}
	for _, item := range items {
		resp.Data = append(resp.Data, httptransport.MemberPayload{
			MembershipID: item.MembershipID,
			ProjectID:    item.ProjectID,
			UserID:       item.UserID,
			Role:         item.Role,
			Email:        item.Email,
			DisplayName:  item.DisplayName,
			CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) UpdateMemberRoleHandler(ctx context.Context, projectID string, membershipID string, userID string, req httptransport.UpdateMemberRoleRequest) (httptransport.MemberResponse, error) {
	item, err := h.Service.UpdateMemberRole(ctx, strings.TrimSpace(projectID), strings.TrimSpace(membershipID), userID, strings.TrimSpace(req.Role))
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return httptransport.MemberResponse{Status: "success", Data: memberPayload(item)}, nil
}

func (h Handler) RemoveMemberHandler(ctx context.Context, projectID string, membershipID string, userID string) (httptransport.MemberResponse, error) {
	item, err := h.Service.RemoveMember(ctx, strings.TrimSpace(projectID), strings.TrimSpace(membershipID), userID)
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return httptransport.MemberResponse{Status: "success", Data: memberPayload(item)}, nil
}

func (h Handler) CreateInviteHandler(ctx context.Context, projectID string, userID string, req httptransport.CreateInviteRequest) (httptransport.InviteResponse, error) {
	item, err := h.Service.CreateInvite(ctx, strings.TrimSpace(projectID), userID, strings.TrimSpace(req.Email))
	if err != nil {
		return httptransport.InviteResponse{}, err
	}
	return httptransport.InviteResponse{Status: "success", Data: invitePayload(item)}, nil
}

func (h Handler) AcceptInviteByIDHandler(ctx context.Context, projectID string, inviteID string, userID string, userEmail string) (httptransport.InviteResponse, error) {
	item, err := h.Service.AcceptInviteByID(ctx, strings.TrimSpace(projectID), strings.TrimSpace(inviteID), userID, userEmail)
	if err != nil {
		return httptransport.InviteResponse{}, err
	}
	return httptransport.InviteResponse{Status: "success", Data: invitePayload(item)}, nil
}

func (h Handler) DeclineInviteByIDHandler(ctx context.Context, projectID string, inviteID string, userID string, userEmail string) (httptransport.InviteResponse, error) {
	item, err := h.Service.DeclineInviteByID(ctx, strings.TrimSpace(projectID), strings.TrimSpace(inviteID), userID, userEmail)
	if err != nil {
		return httptransport.InviteResponse{}, err
	}
	return httptransport.InviteResponse{Status: "success", Data: invitePayload(item)}, nil
}

func (h Handler) AcceptInviteByCodeHandler(ctx context.Context, userID string, req httptransport.RedeemCodeRequest) (httptransport.InviteResponse, error) {
	item, err := h.Service.AcceptInviteByCode(ctx, strings.TrimSpace(req.Code), userID)
	if err != nil {
		return httptransport.InviteResponse{}, err
	}
	return httptransport.InviteResponse{Status: "success", Data: invitePayload(item)}, nil
}

func (h Handler) DeclineInviteByCodeHandler(ctx context.Context, userID string, req httptransport.RedeemCodeRequest) (httptransport.InviteResponse, error) {
	item, err := h.Service.DeclineInviteByCode(ctx, strings.TrimSpace(req.Code), userID)
	if err != nil {
		return httptransport.InviteResponse{}, err
	}
	return httptransport.InviteResponse{Status: "success", Data: invitePayload(item)}, nil
}

func (h Handler) ListAuditLogHandler(ctx context.Context, projectID string, userID string, limit int) (httptransport.AuditLogResponse, error) {
	items, err := h.Service.ListAuditLog(ctx, strings.TrimSpace(projectID), userID, limit)
	if err != nil {
		return httptransport.AuditLogResponse{}, err
	}
	resp := httptransport.AuditLogResponse{Status: "success", Data: []httptransport.AuditEntryPayload{}}
	for _, item := range items {
		resp.Data = append(resp.Data, httptransport.AuditEntryPayload{
			AuditID:     item.AuditID,
			ActorUserID: item.ActorUserID,
			Action:      item.Action,
			TargetID:    item.TargetID,
			CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func projectPayload(item ports.Project) httptransport.ProjectPayload {
	payload := httptransport.ProjectPayload{
		ProjectID:   item.ProjectID,
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.ArchivedAt != nil {
		payload.ArchivedAt = item.ArchivedAt.UTC().Format(time.RFC3339)
	}
	return payload
}

func memberPayload(item ports.Membership) httptransport.MemberPayload {
	return httptransport.MemberPayload{
		MembershipID: item.MembershipID,
		ProjectID:    item.ProjectID,
		UserID:       item.UserID,
		Role:         item.Role,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func invitePayload(item ports.Invite) httptransport.InvitePayload {
	payload := httptransport.InvitePayload{
		InviteID:       item.InviteID,
		ProjectID:      item.ProjectID,
		Mode:           item.Mode,
		Code:           item.Code,
		RecipientEmail: item.RecipientEmail,
		Status:         item.Status,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.ResolvedAt != nil {
		payload.ResolvedAt = item.ResolvedAt.UTC().Format(time.RFC3339)
	}
	return payload
}
