package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/typerliga/prediction-league/internal/domain/usergroup"
)

const userGroupColumns = `id, name, access_code, description, season_id, admin_user_id, start_round, end_round, created_at`

type UserGroupRepository struct {
	db *sqlx.DB
}

func NewUserGroupRepository(db *sqlx.DB) *UserGroupRepository {
	return &UserGroupRepository{db: db}
}

func (r *UserGroupRepository) Create(ctx context.Context, group usergroup.Group) (usergroup.Group, error) {
	const insert = `
		INSERT INTO user_groups (name, access_code, description, season_id, admin_user_id, start_round, end_round)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userGroupColumns

	var row userGroupTableModel
	err := r.db.GetContext(ctx, &row, insert,
		group.Name,
		group.AccessCode,
		group.Description,
		ptrToNullInt64(group.SeasonID),
		ptrToNullString(group.AdminUserID),
		ptrToNullInt(group.StartRound),
		ptrToNullInt(group.EndRound),
	)
	if err != nil {
		return usergroup.Group{}, fmt.Errorf("insert user group: %w", err)
	}

	return mapUserGroupRow(row), nil
}

func (r *UserGroupRepository) GetByID(ctx context.Context, groupID int64) (usergroup.Group, bool, error) {
	query := `SELECT ` + userGroupColumns + ` FROM user_groups WHERE id = $1`

	var row userGroupTableModel
	if err := r.db.GetContext(ctx, &row, query, groupID); err != nil {
		if isNotFound(err) {
			return usergroup.Group{}, false, nil
		}
		return usergroup.Group{}, false, fmt.Errorf("select user group by id: %w", err)
	}

	return mapUserGroupRow(row), true, nil
}

func (r *UserGroupRepository) GetByAccessCode(ctx context.Context, accessCode string) (usergroup.Group, bool, error) {
	query := `SELECT ` + userGroupColumns + ` FROM user_groups WHERE access_code = $1`

	var row userGroupTableModel
	if err := r.db.GetContext(ctx, &row, query, accessCode); err != nil {
		if isNotFound(err) {
			return usergroup.Group{}, false, nil
		}
		return usergroup.Group{}, false, fmt.Errorf("select user group by access code: %w", err)
	}

	return mapUserGroupRow(row), true, nil
}

func (r *UserGroupRepository) IsMember(ctx context.Context, groupID int64, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_group_members WHERE group_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, groupID, userID); err != nil {
		return false, fmt.Errorf("select group membership: %w", err)
	}

	return exists, nil
}

func (r *UserGroupRepository) AddMember(ctx context.Context, groupID int64, userID string) error {
	const insert = `
		INSERT INTO user_group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, insert, groupID, userID); err != nil {
		return fmt.Errorf("insert group member: %w", err)
	}

	return nil
}

func (r *UserGroupRepository) ListMembers(ctx context.Context, groupID int64) ([]usergroup.Member, error) {
	const query = `SELECT group_id, user_id, joined_at FROM user_group_members WHERE group_id = $1 ORDER BY user_id`

	var rows []groupMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, groupID); err != nil {
		return nil, fmt.Errorf("select group members: %w", err)
	}

	out := make([]usergroup.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, usergroup.Member{
			GroupID:  row.GroupID,
			UserID:   row.UserID,
			JoinedAt: row.JoinedAt,
		})
	}

	return out, nil
}

func mapUserGroupRow(row userGroupTableModel) usergroup.Group {
	return usergroup.Group{
		ID:          row.ID,
		Name:        row.Name,
		AccessCode:  row.AccessCode,
		Description: row.Description,
		SeasonID:    nullInt64ToPtr(row.SeasonID),
		AdminUserID: nullStringToPtr(row.AdminUserID),
		StartRound:  nullIntToPtr(row.StartRound),
		EndRound:    nullIntToPtr(row.EndRound),
		CreatedAt:   row.CreatedAt,
	}
}
