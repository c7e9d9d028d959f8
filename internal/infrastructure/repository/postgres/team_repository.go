package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/typerliga/prediction-league/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID int64) (team.Team, bool, error) {
	const query = `SELECT id, name, api_id FROM teams WHERE api_id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, externalID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by api id: %w", err)
	}

	return mapTeamRow(row), true, nil
}

func (r *TeamRepository) GetOrCreate(ctx context.Context, item team.Team) (team.Team, bool, error) {
	const insert = `
		INSERT INTO teams (name, api_id)
		VALUES ($1, $2)
		ON CONFLICT (api_id) DO NOTHING
		RETURNING id, name, api_id`

	var row teamTableModel
	err := r.db.GetContext(ctx, &row, insert, item.Name, item.ExternalID)
	if err == nil {
		return mapTeamRow(row), true, nil
	}
	if !isNotFound(err) {
		return team.Team{}, false, fmt.Errorf("insert team: %w", err)
	}

	const query = `SELECT id, name, api_id FROM teams WHERE api_id = $1`
	if err := r.db.GetContext(ctx, &row, query, item.ExternalID); err != nil {
		return team.Team{}, false, fmt.Errorf("select team after conflict: %w", err)
	}

	return mapTeamRow(row), false, nil
}

func (r *TeamRepository) AddSeason(ctx context.Context, teamID, seasonID int64) error {
	const insert = `
		INSERT INTO team_seasons (team_id, season_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, season_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, insert, teamID, seasonID); err != nil {
		return fmt.Errorf("insert team season link: %w", err)
	}

	return nil
}

func mapTeamRow(row teamTableModel) team.Team {
	return team.Team{
		ID:         row.ID,
		Name:       row.Name,
		ExternalID: row.APIID,
	}
}
