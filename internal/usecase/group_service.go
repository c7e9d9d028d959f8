package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/typerliga/prediction-league/internal/domain/usergroup"
	"github.com/typerliga/prediction-league/internal/platform/accesscode"
)

type CreateGroupInput struct {
	Name        string
	Description string
	AdminUserID string
	SeasonID    *int64
	StartRound  *int
	EndRound    *int
}

type JoinGroupInput struct {
	UserID     string
	AccessCode string
}

// GroupService creates prediction pools and handles membership. Groups are
// never deleted here; the core only grows them.
type GroupService struct {
	groupRepo usergroup.Repository
	codeGen   accesscode.Generator
}

func NewGroupService(groupRepo usergroup.Repository, codeGen accesscode.Generator) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		codeGen:   codeGen,
	}
}

func (s *GroupService) Create(ctx context.Context, input CreateGroupInput) (usergroup.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.AdminUserID = strings.TrimSpace(input.AdminUserID)
	if input.Name == "" {
		return usergroup.Group{}, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}
	if input.AdminUserID == "" {
		return usergroup.Group{}, fmt.Errorf("%w: admin user id is required", ErrInvalidInput)
	}

	code, err := s.codeGen.NewCode()
	if err != nil {
		return usergroup.Group{}, fmt.Errorf("generate access code: %w", err)
	}

	group := usergroup.Group{
		Name:        input.Name,
		AccessCode:  code,
		Description: strings.TrimSpace(input.Description),
		SeasonID:    input.SeasonID,
		AdminUserID: &input.AdminUserID,
		StartRound:  input.StartRound,
		EndRound:    input.EndRound,
	}
	if err := group.Validate(); err != nil {
		return usergroup.Group{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.groupRepo.Create(ctx, group)
	if err != nil {
		return usergroup.Group{}, fmt.Errorf("create group: %w", err)
	}

	if err := s.groupRepo.AddMember(ctx, created.ID, input.AdminUserID); err != nil {
		return usergroup.Group{}, fmt.Errorf("add group admin as member: %w", err)
	}

	return created, nil
}

// Join adds the user to the group behind the access code. Joining a group the
// user already belongs to is a no-op.
func (s *GroupService) Join(ctx context.Context, input JoinGroupInput) (usergroup.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupService.Join")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.AccessCode = strings.ToUpper(strings.TrimSpace(input.AccessCode))
	if input.UserID == "" {
		return usergroup.Group{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.AccessCode == "" {
		return usergroup.Group{}, fmt.Errorf("%w: access code is required", ErrInvalidInput)
	}

	group, exists, err := s.groupRepo.GetByAccessCode(ctx, input.AccessCode)
	if err != nil {
		return usergroup.Group{}, fmt.Errorf("get group by access code: %w", err)
	}
	if !exists {
		return usergroup.Group{}, fmt.Errorf("%w: %s", ErrInvalidAccessCode, input.AccessCode)
	}

	if err := s.groupRepo.AddMember(ctx, group.ID, input.UserID); err != nil {
		return usergroup.Group{}, fmt.Errorf("add group member: %w", err)
	}

	return group, nil
}
