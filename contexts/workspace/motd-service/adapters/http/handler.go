package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hearth/contexts/workspace/motd-service/application"
	"hearth/contexts/workspace/motd-service/ports"
	httptransport "hearth/contexts/workspace/motd-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListMotdsHandler(ctx context.Context, projectID string, userID string) (httptransport.MotdListResponse, error) {
	motds, err := h.Service.ListForUser(ctx, strings.TrimSpace(projectID), userID)
	if err != nil {
		return httptransport.MotdListResponse{}, err
	}
	resp := httptransport.MotdListResponse{Status: "success", Data: []httptransport.MotdPayload{}}
	for _, motd := range motds {
		resp.Data = append(resp.Data, motdPayload(motd))
	}
	return resp, nil
}

func (h Handler) SetMotdHandler(ctx context.Context, projectID string, userID string, req httptransport.SetMotdRequest) (httptransport.MotdResponse, error) {
	motd, err := h.Service.SetMotd(ctx, strings.TrimSpace(projectID), userID, strings.TrimSpace(req.ToUserID), req.Message)
	if err != nil {
		return httptransport.MotdResponse{}, err
	}
	return httptransport.MotdResponse{Status: "success", Data: motdPayload(motd)}, nil
}

func (h Handler) UpdateMotdHandler(ctx context.Context, projectID string, motdID string, userID string, req httptransport.UpdateMotdRequest) (httptransport.MotdResponse, error) {
	motd, err := h.Service.UpdateMotd(ctx, strings.TrimSpace(projectID), strings.TrimSpace(motdID), userID, req.Message)
	if err != nil {
		return httptransport.MotdResponse{}, err
	}
	return httptransport.MotdResponse{Status: "success", Data: motdPayload(motd)}, nil
}

func (h Handler) DeleteMotdHandler(ctx context.Context, projectID string, motdID string, userID string) (httptransport.MotdResponse, error) {
	motd, err := h.Service.DeleteMotd(ctx, strings.TrimSpace(projectID), strings.TrimSpace(motdID), userID)
	if err != nil {
		return httptransport.MotdResponse{}, err
	}
	return httptransport.MotdResponse{Status: "success", Data: motdPayload(motd)}, nil
}

func motdPayload(motd ports.Motd) httptransport.MotdPayload {
	return httptransport.MotdPayload{
		ID:         motd.MotdID,
		ProjectID:  motd.ProjectID,
		FromUserID: motd.FromUserID,
		ToUserID:   motd.ToUserID,
		Message:    motd.Message,
		CreatedAt:  motd.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  motd.UpdatedAt.Format(time.RFC3339),
	}
}
