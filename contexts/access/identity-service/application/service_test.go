package application

import (
	"context"
	"errors"
	"testing"

	"hearth/contexts/access/identity-service/adapters/memory"
	domainerrors "hearth/contexts/access/identity-service/domain/errors"
	"hearth/contexts/access/identity-service/ports"
)

type recordingSink struct {
	userIDs []string
	emails  []string
}

func (r *recordingSink) SyncProfile(ctx context.Context, userID string, email string, displayName string) error {
	r.userIDs = append(r.userIDs, userID)
	r.emails = append(r.emails, email)
	return nil
}

func newHeaderService(sink ports.ProfileSink) Service {
	store := memory.NewStore()
	return Service{
		Mode:        ports.ModeHeader,
		Users:       store,
		Profiles:    sink,
		Clock:       store,
		IDGenerator: store,
	}
}

func TestResolveCreatesUserOnFirstSight(t *testing.T) {
	sink := &recordingSink{}
	service := newHeaderService(sink)

	user, err := service.Resolve(context.Background(), ports.Credential{
		HeaderSubject: "auth0|abc",
		HeaderEmail:   "Alice@Example.com",
		HeaderName:    "Alice",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if user.UserID == "" {
		t.Fatal("expected a generated user ID")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if len(sink.userIDs) != 1 || sink.userIDs[0] != user.UserID {
		t.Fatalf("expected one profile sync for %s, got %v", user.UserID, sink.userIDs)
	}
}

func TestResolveKeepsUserIDStableAcrossLogins(t *testing.T) {
	service := newHeaderService(nil)

	first, err := service.Resolve(context.Background(), ports.Credential{
		HeaderSubject: "auth0|abc",
		HeaderEmail:   "alice@example.com",
		HeaderName:    "Alice",
	})
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}

	second, err := service.Resolve(context.Background(), ports.Credential{
		HeaderSubject: "auth0|abc",
		HeaderEmail:   "alice.new@example.com",
		HeaderName:    "Alice N",
	})
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if second.UserID != first.UserID {
		t.Fatalf("user ID changed across logins: %s vs %s", second.UserID, first.UserID)
	}
	if second.Email != "alice.new@example.com" || second.DisplayName != "Alice N" {
		t.Fatalf("expected refreshed metadata, got %+v", second)
	}
	if second.CreatedAt != first.CreatedAt {
		t.Fatal("creation time must not move on refresh")
	}
}

func TestResolveRejectsMissingHeaders(t *testing.T) {
	service := newHeaderService(nil)

	cases := []ports.Credential{
		{},
		{HeaderSubject: "auth0|abc"},
		{HeaderEmail: "alice@example.com"},
	}
	for _, credential := range cases {
		if _, err := service.Resolve(context.Background(), credential); !errors.Is(err, domainerrors.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for %+v, got %v", credential, err)
		}
	}
}

type staticVerifier struct {
	claims ports.Claims
	err    error
}

func (v staticVerifier) Verify(ctx context.Context, token string) (ports.Claims, error) {
	return v.claims, v.err
}

func TestBearerModeRequiresValidToken(t *testing.T) {
	store := memory.NewStore()
	service := Service{
		Mode:        ports.ModeBearer,
		Verifier:    staticVerifier{err: errors.New("bad signature")},
		Users:       store,
		Clock:       store,
		IDGenerator: store,
	}

	if _, err := service.Resolve(context.Background(), ports.Credential{}); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty token, got %v", err)
	}
	if _, err := service.Resolve(context.Background(), ports.Credential{BearerToken: "xxx"}); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for rejected token, got %v", err)
	}

	service.Verifier = staticVerifier{claims: ports.Claims{Subject: "auth0|abc", Email: "alice@example.com"}}
	user, err := service.Resolve(context.Background(), ports.Credential{BearerToken: "xxx"})
	if err != nil {
		t.Fatalf("resolve with valid token failed: %v", err)
	}
	if user.ExternalSubject != "auth0|abc" {
		t.Fatalf("expected claims subject carried through, got %q", user.ExternalSubject)
	}
}

func TestGetUser(t *testing.T) {
	service := newHeaderService(nil)
	user, err := service.Resolve(context.Background(), ports.Credential{
		HeaderSubject: "auth0|abc",
		HeaderEmail:   "alice@example.com",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if _, err := service.GetUser(context.Background(), ""); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := service.GetUser(context.Background(), "user_missing"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	got, err := service.GetUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}
