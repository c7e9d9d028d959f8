package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/typerliga/prediction-league/internal/domain/prediction"
	"github.com/typerliga/prediction-league/internal/domain/usergroup"
)

// RankingEntry is one row of a group leaderboard.
type RankingEntry struct {
	UserID      string
	TotalPoints int
	Rank        int
}

// RankingService aggregates awarded points per group member.
type RankingService struct {
	groupRepo      usergroup.Repository
	predictionRepo prediction.Repository
}

func NewRankingService(groupRepo usergroup.Repository, predictionRepo prediction.Repository) *RankingService {
	return &RankingService{
		groupRepo:      groupRepo,
		predictionRepo: predictionRepo,
	}
}

// Rank returns the leaderboard of the group behind accessCode, descending by
// total points. Members with no scored predictions appear with zero. Equal
// totals are ordered by user id ascending so the output is deterministic.
func (s *RankingService) Rank(ctx context.Context, accessCode, requestingUserID string) ([]RankingEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Rank")
	defer span.End()

	accessCode = strings.ToUpper(strings.TrimSpace(accessCode))
	requestingUserID = strings.TrimSpace(requestingUserID)
	if accessCode == "" {
		return nil, fmt.Errorf("%w: access code is required", ErrInvalidInput)
	}
	if requestingUserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	group, exists, err := s.groupRepo.GetByAccessCode(ctx, accessCode)
	if err != nil {
		return nil, fmt.Errorf("get group by access code: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccessCode, accessCode)
	}

	isMember, err := s.groupRepo.IsMember(ctx, group.ID, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("check group member: %w", err)
	}
	if !isMember {
		return nil, fmt.Errorf("%w: group_id=%d", ErrNotAMember, group.ID)
	}

	members, err := s.groupRepo.ListMembers(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}

	totals, err := s.predictionRepo.TotalsByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("sum points by group: %w", err)
	}

	totalByUser := make(map[string]int, len(totals))
	for _, row := range totals {
		totalByUser[row.UserID] = row.TotalPoints
	}

	entries := make([]RankingEntry, 0, len(members))
	for _, member := range members {
		entries = append(entries, RankingEntry{
			UserID:      member.UserID,
			TotalPoints: totalByUser[member.UserID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID < entries[j].UserID
	})

	// Dense rank: equal totals share a rank.
	lastPoints := 0
	currentRank := 0
	for idx := range entries {
		if idx == 0 || entries[idx].TotalPoints != lastPoints {
			currentRank++
			lastPoints = entries[idx].TotalPoints
		}
		entries[idx].Rank = currentRank
	}

	return entries, nil
}
