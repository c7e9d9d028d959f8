package memory

import (
	"github.com/typerliga/prediction-league/internal/domain/league"
	"github.com/typerliga/prediction-league/internal/domain/season"
	"github.com/typerliga/prediction-league/internal/domain/team"
)

// Seed data for running the API without a database. External ids follow the
// provider's numbering for the Polish top flight.
func SeedLeagues() []league.League {
	return []league.League{
		{ID: 1, Name: "Ekstraklasa", Country: "Poland", Level: 1, ExternalID: 106},
	}
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{ID: 1, LeagueID: 1, Year: "2021-2022", StartYear: 2021},
		{ID: 2, LeagueID: 1, Year: "2022-2023", StartYear: 2022},
		{ID: 3, LeagueID: 1, Year: "2023-2024", StartYear: 2023},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Legia Warszawa", ExternalID: 339},
		{ID: 2, Name: "Lech Poznań", ExternalID: 347},
		{ID: 3, Name: "Raków Częstochowa", ExternalID: 3491},
		{ID: 4, Name: "Pogoń Szczecin", ExternalID: 348},
		{ID: 5, Name: "Górnik Zabrze", ExternalID: 340},
		{ID: 6, Name: "Wisła Płock", ExternalID: 346},
	}
}
