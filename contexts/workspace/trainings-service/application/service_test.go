package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"hearth/contexts/workspace/trainings-service/adapters/memory"
	domainerrors "hearth/contexts/workspace/trainings-service/domain/errors"
	"hearth/contexts/workspace/trainings-service/ports"
)

var errNotMember = errors.New("not a member")

type fakeAuthorizer struct {
	members map[string]string
}

func (f fakeAuthorizer) RequireMember(ctx context.Context, projectID string, userID string) error {
	if _, ok := f.members[userID]; !ok {
		return errNotMember
	}
	return nil
}

func (f fakeAuthorizer) RequireAuthorOrAdmin(ctx context.Context, projectID string, userID string, authorID string) error {
	if userID == authorID || f.members[userID] == "admin" {
		return nil
	}
	return errors.New("author or admin required")
}

func newTrainingsService() Service {
	store := memory.NewStore()
	return Service{
		Repo: store,
		Authorizer: fakeAuthorizer{members: map[string]string{
			"user_alice": "member",
			"user_bob":   "member",
		}},
		Clock:       store,
		IDGenerator: store,
	}
}

func validInput(title string, date time.Time) ports.CreateTrainingInput {
	return ports.CreateTrainingInput{
		Title:    title,
		Date:     date,
		Duration: 45,
		Type:     "run",
		Tags:     []string{"outdoor", " ", "easy "},
	}
}

func TestCreateTrainingValidation(t *testing.T) {
	service := newTrainingsService()
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	cases := []ports.CreateTrainingInput{
		{Date: date, Duration: 45, Type: "run"},
		{Title: "Morning run", Duration: 45, Type: "run"},
		{Title: "Morning run", Date: date, Type: "run"},
		{Title: "Morning run", Date: date, Duration: -5, Type: "run"},
		{Title: "Morning run", Date: date, Duration: 45},
	}
	for i, input := range cases {
		if _, err := service.CreateTraining(ctx, "proj_1", "user_alice", input); !errors.Is(err, domainerrors.ErrInvalidRequest) {
			t.Fatalf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}

	training, err := service.CreateTraining(ctx, "proj_1", "user_alice", validInput("Morning run", date))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if training.AuthorID != "user_alice" {
		t.Fatalf("expected author user_alice, got %s", training.AuthorID)
	}
	if len(training.Tags) != 2 || training.Tags[0] != "outdoor" || training.Tags[1] != "easy" {
		t.Fatalf("expected cleaned tags, got %v", training.Tags)
	}
}

func TestListTrainingsNewestFirstWithAuthorFilter(t *testing.T) {
	service := newTrainingsService()
	ctx := context.Background()

	older := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	if _, err := service.CreateTraining(ctx, "proj_1", "user_alice", validInput("Long ride", older)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateTraining(ctx, "proj_1", "user_bob", validInput("Morning run", newer)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	trainings, err := service.ListTrainings(ctx, "proj_1", "user_alice", ports.ListTrainingsFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(trainings) != 2 || !trainings[0].Date.After(trainings[1].Date) {
		t.Fatalf("expected newest first, got %+v", trainings)
	}

	mine, err := service.ListTrainings(ctx, "proj_1", "user_alice", ports.ListTrainingsFilter{AuthorID: "user_alice"})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(mine) != 1 || mine[0].AuthorID != "user_alice" {
		t.Fatalf("expected only alice's trainings, got %+v", mine)
	}
}

func TestUpdateTrainingPartial(t *testing.T) {
	service := newTrainingsService()
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	training, err := service.CreateTraining(ctx, "proj_1", "user_alice", validInput("Morning run", date))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	duration := 60
	intensity := 7
	updated, err := service.UpdateTraining(ctx, "proj_1", training.TrainingID, "user_alice", ports.UpdateTrainingInput{
		Duration:  &duration,
		Intensity: &intensity,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Duration != 60 || updated.Intensity == nil || *updated.Intensity != 7 {
		t.Fatalf("expected patched fields, got %+v", updated)
	}
	if updated.Title != "Morning run" {
		t.Fatalf("untouched fields must survive, got %q", updated.Title)
	}

	badDuration := 0
	if _, err := service.UpdateTraining(ctx, "proj_1", training.TrainingID, "user_alice", ports.UpdateTrainingInput{Duration: &badDuration}); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for zero duration, got %v", err)
	}
}

func TestTrainingScopedByProject(t *testing.T) {
	service := newTrainingsService()
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	training, err := service.CreateTraining(ctx, "proj_1", "user_alice", validInput("Morning run", date))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.GetTraining(ctx, "proj_2", training.TrainingID, "user_alice"); !errors.Is(err, domainerrors.ErrTrainingNotFound) {
		t.Fatalf("expected ErrTrainingNotFound across projects, got %v", err)
	}
	if _, err := service.DeleteTraining(ctx, "proj_2", training.TrainingID, "user_alice"); !errors.Is(err, domainerrors.ErrTrainingNotFound) {
		t.Fatalf("expected ErrTrainingNotFound across projects, got %v", err)
	}
}
