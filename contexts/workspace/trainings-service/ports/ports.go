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
type Authorizer interface {
	RequireMember(ctx context.Context, projectID string, userID string) error
	RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error
}

// Training is a logged workout session. Intensity is optional and kept as a
// pointer so zero is distinguishable from unset.
type Training struct {
	TrainingID string
	ProjectID  string
	AuthorID   string
	Title      string
	Date       time.Time
	Duration   int
	Type       string
	Intensity  *int
	Notes      string
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreateTrainingInput struct {
	Title     string
	Date      time.Time
	Duration  int
	Type      string
	Intensity *int
	Notes     string
	Tags      []string
}

type UpdateTrainingInput struct {
	Title     *string
	Date      *time.Time
	Duration  *int
	Type      *string
	Intensity *int
	Notes     *string
	Tags      []string
}

// ListTrainingsFilter narrows a listing; zero value means no filtering.
type ListTrainingsFilter struct {
	AuthorID string
}

// Repository lookups are always scoped by project. A training ID from another
// project must behave exactly like an ID that never existed.
type Repository interface {
	ListTrainings(ctx context.Context, projectID string, filter ListTrainingsFilter) ([]Training, error)
	CreateTraining(ctx context.Context, training Training) (Training, error)
	GetTraining(ctx context.Context, projectID string, trainingID string) (Training, error)
	UpdateTraining(ctx context.Context, projectID string, trainingID string, input UpdateTrainingInput, now time.Time) (Training, error)
	DeleteTraining(ctx context.Context, projectID string, trainingID string) (Training, error)
}
