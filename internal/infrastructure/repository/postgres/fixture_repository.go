package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
)

const fixtureColumns = `id, season_id, kickoff_at, home_team_id, away_team_id, home_score, away_score, api_id, status, round, round_name`

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE id = $1`

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, fixtureID); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}

	return mapFixtureRow(row), true, nil
}

func (r *FixtureRepository) GetByExternalID(ctx context.Context, externalID int64) (fixture.Fixture, bool, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE api_id = $1`

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, externalID); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by api id: %w", err)
	}

	return mapFixtureRow(row), true, nil
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, seasonID int64) ([]fixture.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE season_id = $1 ORDER BY kickoff_at, api_id`

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("select fixtures by season: %w", err)
	}

	return mapFixtureRows(rows), nil
}

func (r *FixtureRepository) ListBySeasonAndRound(ctx context.Context, seasonID int64, round int) ([]fixture.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE season_id = $1 AND round = $2 ORDER BY kickoff_at, api_id`

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, seasonID, round); err != nil {
		return nil, fmt.Errorf("select fixtures by season and round: %w", err)
	}

	return mapFixtureRows(rows), nil
}

// Upsert refreshes the row keyed by the provider id. The statement is a
// single INSERT ... ON CONFLICT, so concurrent upserts of different fixtures
// never conflict and re-running the same payload only rewrites the same
// fields.
func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) error {
	const upsert = `
		INSERT INTO fixtures (season_id, kickoff_at, home_team_id, away_team_id, home_score, away_score, api_id, status, round, round_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (api_id) DO UPDATE SET
			season_id = EXCLUDED.season_id,
			kickoff_at = EXCLUDED.kickoff_at,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			status = EXCLUDED.status,
			round = EXCLUDED.round,
			round_name = EXCLUDED.round_name`

	_, err := r.db.ExecContext(ctx, upsert,
		item.SeasonID,
		item.KickoffAt,
		item.HomeTeamID,
		item.AwayTeamID,
		ptrToNullInt(item.HomeScore),
		ptrToNullInt(item.AwayScore),
		item.ExternalID,
		item.Status,
		ptrToNullInt(item.Round),
		newNullString(item.RoundName),
	)
	if err != nil {
		return fmt.Errorf("upsert fixture api_id=%d: %w", item.ExternalID, err)
	}

	return nil
}

func mapFixtureRows(rows []fixtureTableModel) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapFixtureRow(row))
	}
	return out
}

func mapFixtureRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:         row.ID,
		SeasonID:   row.SeasonID,
		KickoffAt:  row.KickoffAt,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  nullIntToPtr(row.HomeScore),
		AwayScore:  nullIntToPtr(row.AwayScore),
		ExternalID: row.APIID,
		Status:     row.Status,
		Round:      nullIntToPtr(row.Round),
		RoundName:  row.RoundName.String,
	}
}
