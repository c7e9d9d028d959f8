package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/typerliga/prediction-league/internal/domain/league"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	const query = `SELECT id, name, country, level, api_id FROM leagues ORDER BY country, level, name`

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapLeagueRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByExternalID(ctx context.Context, externalID int64) (league.League, bool, error) {
	const query = `SELECT id, name, country, level, api_id FROM leagues WHERE api_id = $1`

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, externalID); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("select league by api id: %w", err)
	}

	return mapLeagueRow(row), true, nil
}

func mapLeagueRow(row leagueTableModel) league.League {
	return league.League{
		ID:         row.ID,
		Name:       row.Name,
		Country:    row.Country,
		Level:      row.Level,
		ExternalID: row.APIID,
	}
}
