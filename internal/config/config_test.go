package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "prediction-league-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "prediction-league-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_ProviderConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("API_FOOTBALL_BASE_URL", "")
		t.Setenv("API_FOOTBALL_TIMEOUT", "")
		t.Setenv("API_FOOTBALL_MAX_RETRIES", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.APIFootballBaseURL != "https://v3.football.api-sports.io" {
			t.Fatalf("unexpected default provider base url: %q", cfg.APIFootballBaseURL)
		}
		if cfg.APIFootballTimeout != 20*time.Second {
			t.Fatalf("unexpected default provider timeout: %s", cfg.APIFootballTimeout)
		}
		if cfg.APIFootballMaxRetries != 0 {
			t.Fatalf("unexpected default provider retries: %d", cfg.APIFootballMaxRetries)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv("API_FOOTBALL_TIMEOUT", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid API_FOOTBALL_TIMEOUT")
		}
	})

	t.Run("negative retries", func(t *testing.T) {
		t.Setenv("API_FOOTBALL_TIMEOUT", "20s")
		t.Setenv("API_FOOTBALL_MAX_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative API_FOOTBALL_MAX_RETRIES")
		}
	})
}

func TestLoad_SyncConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SYNC_WORKERS", "")
		t.Setenv("SYNC_ALLOWED_SEASON_YEARS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SyncWorkers != 4 {
			t.Fatalf("unexpected default sync workers: %d", cfg.SyncWorkers)
		}
		if len(cfg.SyncAllowedSeasonYears) != 3 {
			t.Fatalf("unexpected default allowed season years: %+v", cfg.SyncAllowedSeasonYears)
		}
	})

	t.Run("custom year list", func(t *testing.T) {
		t.Setenv("SYNC_ALLOWED_SEASON_YEARS", " 2022 , 2023 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.SyncAllowedSeasonYears) != 2 || cfg.SyncAllowedSeasonYears[0] != 2022 || cfg.SyncAllowedSeasonYears[1] != 2023 {
			t.Fatalf("unexpected allowed season years: %+v", cfg.SyncAllowedSeasonYears)
		}
	})

	t.Run("invalid year", func(t *testing.T) {
		t.Setenv("SYNC_ALLOWED_SEASON_YEARS", "last-season")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid SYNC_ALLOWED_SEASON_YEARS")
		}
	})

	t.Run("zero workers", func(t *testing.T) {
		t.Setenv("SYNC_ALLOWED_SEASON_YEARS", "2023")
		t.Setenv("SYNC_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SYNC_WORKERS=0")
		}
	})
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}
