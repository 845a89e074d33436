package ports

import (
	"context"
	"time"
)

const (
	ModeHeader = "header"
	ModeBearer = "bearer"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type User struct {
	UserID          string
	ExternalSubject string
	Email           string
	DisplayName     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Claims is the verified slice of an identity-provider assertion.
type Claims struct {
	Subject     string
	Email       string
	DisplayName string
}

// Credential carries the raw material of either resolution mode; the
// configured mode decides which fields matter.
type Credential struct {
	BearerToken   string
	HeaderSubject string
	HeaderEmail   string
	HeaderName    string
}

// TokenVerifier validates a bearer token's signature, issuer, audience, and
// expiry against the identity provider's key set.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// UserRepository upserts keyed by external subject: the candidate UserID is
// used only when the subject is new; an existing row keeps its ID and has
// email/display name refreshed.
type UserRepository interface {
	UpsertBySubject(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, userID string) (User, error)
	ListUsers(ctx context.Context, userIDs []string) ([]User, error)
}

// ProfileSink receives the refreshed identity projection after each upsert.
// Wiring may leave it nil when the directory reads the users table directly.
type ProfileSink interface {
	SyncProfile(ctx context.Context, userID string, email string, displayName string) error
}
