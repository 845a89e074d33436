package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "hearth/contexts/access/identity-service/domain/errors"
	"hearth/contexts/access/identity-service/ports"
)

type Service struct {
	Mode        string
	Verifier    ports.TokenVerifier
	Users       ports.UserRepository
	Profiles    ports.ProfileSink
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Resolve turns an inbound credential into a stable user record, creating it
// on first sight. Email and display name are refreshed on every call, so
// identity metadata drifts to match the latest login, never the reverse.
func (s Service) Resolve(ctx context.Context, credential ports.Credential) (ports.User, error) {
	claims, err := s.verify(ctx, credential)
	if err != nil {
		return ports.User{}, err
	}

	candidateID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.User{}, err
	}
	now := s.now()
	user, err := s.Users.UpsertBySubject(ctx, ports.User{
		UserID:          candidateID,
		ExternalSubject: claims.Subject,
		Email:           strings.ToLower(strings.TrimSpace(claims.Email)),
		DisplayName:     strings.TrimSpace(claims.DisplayName),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return ports.User{}, err
	}

	if s.Profiles != nil {
		if err := s.Profiles.SyncProfile(ctx, user.UserID, user.Email, user.DisplayName); err != nil {
			return ports.User{}, err
		}
	}
	return user, nil
}

func (s Service) GetUser(ctx context.Context, userID string) (ports.User, error) {
	if strings.TrimSpace(userID) == "" {
		return ports.User{}, domainerrors.ErrInvalidRequest
	}
	return s.Users.GetUser(ctx, strings.TrimSpace(userID))
}

func (s Service) verify(ctx context.Context, credential ports.Credential) (ports.Claims, error) {
	switch s.Mode {
	case ports.ModeBearer:
		token := strings.TrimSpace(credential.BearerToken)
		if token == "" {
			return ports.Claims{}, domainerrors.ErrUnauthenticated
		}
		claims, err := s.Verifier.Verify(ctx, token)
		if err != nil {
			resolveLogger(s.Logger).Warn("bearer token rejected",
				"event", "identity_token_rejected",
				"module", "access/identity-service",
				"layer", "application",
				"error", err.Error(),
			)
			return ports.Claims{}, domainerrors.ErrUnauthenticated
		}
		if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.Email) == "" {
			return ports.Claims{}, domainerrors.ErrUnauthenticated
		}
		return claims, nil
	default:
		// Header mode trusts the gateway to have verified the token and
		// forwarded the subject/email/name claims.
		subject := strings.TrimSpace(credential.HeaderSubject)
		email := strings.TrimSpace(credential.HeaderEmail)
		if subject == "" || email == "" {
			return ports.Claims{}, domainerrors.ErrUnauthenticated
		}
		return ports.Claims{
			Subject:     subject,
			Email:       email,
			DisplayName: strings.TrimSpace(credential.HeaderName),
		}, nil
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
