package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Country string `db:"country"`
	Level   int    `db:"level"`
	APIID   int64  `db:"api_id"`
}

type seasonTableModel struct {
	ID        int64  `db:"id"`
	LeagueID  int64  `db:"league_id"`
	Year      string `db:"year"`
	StartYear int    `db:"start_year"`
}

type teamTableModel struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	APIID int64  `db:"api_id"`
}

type fixtureTableModel struct {
	ID         int64          `db:"id"`
	SeasonID   int64          `db:"season_id"`
	KickoffAt  time.Time      `db:"kickoff_at"`
	HomeTeamID int64          `db:"home_team_id"`
	AwayTeamID int64          `db:"away_team_id"`
	HomeScore  sql.NullInt64  `db:"home_score"`
	AwayScore  sql.NullInt64  `db:"away_score"`
	APIID      int64          `db:"api_id"`
	Status     string         `db:"status"`
	Round      sql.NullInt64  `db:"round"`
	RoundName  sql.NullString `db:"round_name"`
}

type userGroupTableModel struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	AccessCode  string         `db:"access_code"`
	Description string         `db:"description"`
	SeasonID    sql.NullInt64  `db:"season_id"`
	AdminUserID sql.NullString `db:"admin_user_id"`
	StartRound  sql.NullInt64  `db:"start_round"`
	EndRound    sql.NullInt64  `db:"end_round"`
	CreatedAt   time.Time      `db:"created_at"`
}

type groupMemberTableModel struct {
	GroupID  int64     `db:"group_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

type predictionTableModel struct {
	ID            int64         `db:"id"`
	UserID        string        `db:"user_id"`
	GroupID       int64         `db:"group_id"`
	FixtureID     int64         `db:"fixture_id"`
	PredictedHome int           `db:"predicted_home"`
	PredictedAway int           `db:"predicted_away"`
	PointsAwarded sql.NullInt64 `db:"points_awarded"`
	CreatedAt     time.Time     `db:"created_at"`
}

func nullIntToPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	out := int(value.Int64)
	return &out
}

func ptrToNullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullInt64ToPtr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	out := value.Int64
	return &out
}

func ptrToNullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func newNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullStringToPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}

func ptrToNullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
