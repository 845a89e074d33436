package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Authorizer is the slice of the membership service this module depends on.
// IsMember answers a yes/no question about the addressee, so its absence can
// surface as not-found instead of forbidden.
type Authorizer interface {
	RequireMember(ctx context.Context, projectID string, userID string) error
	RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error
	IsMember(ctx context.Context, projectID string, userID string) (bool, error)
}

// Motd is a message of the day from one member to another. A sender keeps at
// most one message per addressee per project; setting again replaces it.
type Motd struct {
	MotdID     string
	ProjectID  string
	FromUserID string
	ToUserID   string
	Message    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Repository lookups are always scoped by project. Upsert keys on
// (project, sender, addressee) and must preserve the existing row's ID when
// it replaces the message.
type Repository interface {
	ListForUser(ctx context.Context, projectID string, toUserID string) ([]Motd, error)
	Upsert(ctx context.Context, motd Motd) (Motd, error)
	GetMotd(ctx context.Context, projectID string, motdID string) (Motd, error)
	UpdateMessage(ctx context.Context, projectID string, motdID string, message string, now time.Time) (Motd, error)
	DeleteMotd(ctx context.Context, projectID string, motdID string) (Motd, error)
}
