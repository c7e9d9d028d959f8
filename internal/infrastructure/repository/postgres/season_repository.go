package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/typerliga/prediction-league/internal/domain/season"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByLeagueExternalIDAndYear(ctx context.Context, leagueExternalID int64, startYear int) (season.Season, bool, error) {
	const query = `
		SELECT s.id, s.league_id, s.year, s.start_year
		FROM seasons s
		JOIN leagues l ON l.id = s.league_id
		WHERE l.api_id = $1 AND s.start_year = $2`

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueExternalID, startYear); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season by league api id and year: %w", err)
	}

	return mapSeasonRow(row), true, nil
}

func (r *SeasonRepository) GetOrCreate(ctx context.Context, item season.Season) (season.Season, bool, error) {
	const insert = `
		INSERT INTO seasons (league_id, year, start_year)
		VALUES ($1, $2, $3)
		ON CONFLICT (league_id, start_year) DO NOTHING
		RETURNING id, league_id, year, start_year`

	var row seasonTableModel
	err := r.db.GetContext(ctx, &row, insert, item.LeagueID, item.Year, item.StartYear)
	if err == nil {
		return mapSeasonRow(row), true, nil
	}
	if !isNotFound(err) {
		return season.Season{}, false, fmt.Errorf("insert season: %w", err)
	}

	// Conflict path: the row already exists, read it back.
	const query = `SELECT id, league_id, year, start_year FROM seasons WHERE league_id = $1 AND start_year = $2`
	if err := r.db.GetContext(ctx, &row, query, item.LeagueID, item.StartYear); err != nil {
		return season.Season{}, false, fmt.Errorf("select season after conflict: %w", err)
	}

	return mapSeasonRow(row), false, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID int64) (season.Season, bool, error) {
	const query = `SELECT id, league_id, year, start_year FROM seasons WHERE id = $1`

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, seasonID); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season by id: %w", err)
	}

	return mapSeasonRow(row), true, nil
}

func mapSeasonRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		Year:      row.Year,
		StartYear: row.StartYear,
	}
}
