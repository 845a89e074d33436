package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainerrors "hearth/contexts/workspace/trainings-service/domain/errors"
	"hearth/contexts/workspace/trainings-service/ports"
)

// Store is the in-memory training repository used by tests and local wiring.
type Store struct {
	mu            sync.Mutex
	trainingsByID map[string]ports.Training
	sequence      uint64
}

func NewStore() *Store {
	return &Store{
		trainingsByID: make(map[string]ports.Training),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("training_%06d", s.sequence), nil
}

func (s *Store) ListTrainings(ctx context.Context, projectID string, filter ports.ListTrainingsFilter) ([]ports.Training, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trainings := make([]ports.Training, 0)
	for _, training := range s.trainingsByID {
		if training.ProjectID != projectID {
			continue
		}
		if filter.AuthorID != "" && training.AuthorID != filter.AuthorID {
			continue
		}
		trainings = append(trainings, training)
	}
	sort.Slice(trainings, func(i int, j int) bool {
		if trainings[i].Date.Equal(trainings[j].Date) {
			return trainings[i].TrainingID > trainings[j].TrainingID
		}
		return trainings[i].Date.After(trainings[j].Date)
	})
	return trainings, nil
}

func (s *Store) CreateTraining(ctx context.Context, training ports.Training) (ports.Training, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trainingsByID[training.TrainingID] = training
	return training, nil
}

func (s *Store) GetTraining(ctx context.Context, projectID string, trainingID string) (ports.Training, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(projectID, trainingID)
}

func (s *Store) UpdateTraining(ctx context.Context, projectID string, trainingID string, input ports.UpdateTrainingInput, now time.Time) (ports.Training, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	training, err := s.getLocked(projectID, trainingID)
	if err != nil {
		return ports.Training{}, err
	}
	if input.Title != nil {
		training.Title = *input.Title
	}
	if input.Date != nil {
		training.Date = input.Date.UTC()
	}
	if input.Duration != nil {
		training.Duration = *input.Duration
	}
	if input.Type != nil {
		training.Type = *input.Type
	}
	if input.Intensity != nil {
		training.Intensity = input.Intensity
	}
	if input.Notes != nil {
		training.Notes = *input.Notes
	}
	if input.Tags != nil {
		training.Tags = input.Tags
	}
	training.UpdatedAt = now
	s.trainingsByID[training.TrainingID] = training
	return training, nil
}

func (s *Store) DeleteTraining(ctx context.Context, projectID string, trainingID string) (ports.Training, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	training, err := s.getLocked(projectID, trainingID)
	if err != nil {
		return ports.Training{}, err
	}
	delete(s.trainingsByID, training.TrainingID)
	return training, nil
}

// getLocked scopes the lookup by project so foreign IDs read as absent.
func (s *Store) getLocked(projectID string, trainingID string) (ports.Training, error) {
	training, ok := s.trainingsByID[trainingID]
	if !ok || training.ProjectID != projectID {
		return ports.Training{}, domainerrors.ErrTrainingNotFound
	}
	return training, nil
}
