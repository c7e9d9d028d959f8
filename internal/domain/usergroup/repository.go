package usergroup

import "context"

// Repository describes prediction-group persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, group Group) (Group, error)
	GetByID(ctx context.Context, groupID int64) (Group, bool, error)
	GetByAccessCode(ctx context.Context, accessCode string) (Group, bool, error)
	IsMember(ctx context.Context, groupID int64, userID string) (bool, error)
	// AddMember joins a user to the group. Joining twice is a no-op.
	AddMember(ctx context.Context, groupID int64, userID string) error
	ListMembers(ctx context.Context, groupID int64) ([]Member, error)
}
