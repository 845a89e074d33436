package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"hearth/contexts/access/identity-service/application"
	"hearth/contexts/access/identity-service/ports"
	httptransport "hearth/contexts/access/identity-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) MeHandler(ctx context.Context, userID string) (httptransport.MeResponse, error) {
	user, err := h.Service.GetUser(ctx, userID)
	if err != nil {
		return httptransport.MeResponse{}, err
	}
	return httptransport.MeResponse{Status: "success", Data: userPayload(user)}, nil
}

func userPayload(user ports.User) httptransport.UserPayload {
	return httptransport.UserPayload{
		ID:          user.UserID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.Format(time.RFC3339),
	}
}
