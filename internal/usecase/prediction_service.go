package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
	"github.com/typerliga/prediction-league/internal/domain/prediction"
	"github.com/typerliga/prediction-league/internal/domain/usergroup"
)

type CreatePredictionInput struct {
	UserID        string
	GroupID       int64
	FixtureID     int64
	PredictedHome int
	PredictedAway int
}

type UpdatePredictionInput struct {
	UserID        string
	PredictionID  int64
	PredictedHome int
	PredictedAway int
}

// PredictionService handles the user-facing prediction writes. The
// fixture-still-open check and the (user, group, fixture) uniqueness are
// enforced by the repository atomically with the write; the service's own
// checks exist to produce precise errors, not to guarantee the invariant.
type PredictionService struct {
	groupRepo      usergroup.Repository
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
}

func NewPredictionService(
	groupRepo usergroup.Repository,
	fixtureRepo fixture.Repository,
	predictionRepo prediction.Repository,
) *PredictionService {
	return &PredictionService{
		groupRepo:      groupRepo,
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
	}
}

func (s *PredictionService) Create(ctx context.Context, input CreatePredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.GroupID <= 0 || input.FixtureID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: group id and fixture id are required", ErrInvalidInput)
	}
	if input.PredictedHome < 0 || input.PredictedAway < 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: predicted scores must not be negative", ErrInvalidInput)
	}

	group, exists, err := s.groupRepo.GetByID(ctx, input.GroupID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get group by id: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: group_id=%d", ErrNotFound, input.GroupID)
	}

	isMember, err := s.groupRepo.IsMember(ctx, group.ID, input.UserID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("check group member: %w", err)
	}
	if !isMember {
		return prediction.Prediction{}, fmt.Errorf("%w: group_id=%d", ErrNotAMember, group.ID)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, input.FixtureID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get fixture by id: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture_id=%d", ErrNotFound, input.FixtureID)
	}

	if group.SeasonID != nil && *group.SeasonID != item.SeasonID {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture belongs to a different season than the group", ErrInvalidInput)
	}
	if !group.AllowsRound(item.Round) {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture round is outside the group's round range", ErrInvalidInput)
	}
	if !fixture.IsOpenForPredictions(item.Status) {
		return prediction.Prediction{}, prediction.ErrFixtureNotOpen
	}

	created, err := s.predictionRepo.Create(ctx, prediction.Prediction{
		UserID:        input.UserID,
		GroupID:       input.GroupID,
		FixtureID:     input.FixtureID,
		PredictedHome: input.PredictedHome,
		PredictedAway: input.PredictedAway,
	})
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("create prediction: %w", err)
	}

	return created, nil
}

func (s *PredictionService) Update(ctx context.Context, input UpdatePredictionInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Update")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.PredictionID <= 0 {
		return fmt.Errorf("%w: prediction id is required", ErrInvalidInput)
	}
	if input.PredictedHome < 0 || input.PredictedAway < 0 {
		return fmt.Errorf("%w: predicted scores must not be negative", ErrInvalidInput)
	}

	if err := s.predictionRepo.UpdateScoreline(ctx, input.PredictionID, input.UserID, input.PredictedHome, input.PredictedAway); err != nil {
		return fmt.Errorf("update prediction: %w", err)
	}

	return nil
}

// ListMine returns the requesting user's predictions within one group.
func (s *PredictionService) ListMine(ctx context.Context, groupID int64, userID string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if groupID <= 0 {
		return nil, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("check group member: %w", err)
	}
	if !isMember {
		return nil, fmt.Errorf("%w: group_id=%d", ErrNotAMember, groupID)
	}

	items, err := s.predictionRepo.ListByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("list predictions by group and user: %w", err)
	}

	return items, nil
}
