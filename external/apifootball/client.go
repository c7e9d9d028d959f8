package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/typerliga/prediction-league/internal/platform/logging"
	"github.com/typerliga/prediction-league/internal/usecase"
)

const (
	defaultBaseURL   = "https://v3.football.api-sports.io"
	apiKeyHeader     = "x-apisports-key"
	queryDateLayout  = "2006-01-02"
	maxResponseBytes = 6 << 20
)

var apiKeyHeaderRegex = regexp.MustCompile(`(?i)x-apisports-key:\s*\S+`)
var errTransient = crerr.New("api-football transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client calls the API-Football v3 HTTP surface. A non-2xx status or an empty
// response array is a failure for that call; retries are opt-in through
// MaxRetries and never change the terminal-failure semantics of a call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (c *Client) FetchSeasonYears(ctx context.Context) ([]int, error) {
	var envelope seasonsEnvelope
	if err := c.doJSON(ctx, "/leagues/seasons", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch season years: %w", err)
	}
	if len(envelope.Response) == 0 {
		return nil, fmt.Errorf("fetch season years: empty provider response")
	}

	out := make([]int, 0, len(envelope.Response))
	for _, year := range envelope.Response {
		if year > 0 {
			out = append(out, year)
		}
	}
	return out, nil
}

func (c *Client) FetchTeams(ctx context.Context, leagueExternalID int64, seasonYear int) ([]usecase.ExternalTeam, error) {
	if leagueExternalID <= 0 {
		return nil, fmt.Errorf("league external id must be greater than zero")
	}

	query := map[string]string{
		"league": strconv.FormatInt(leagueExternalID, 10),
		"season": strconv.Itoa(seasonYear),
	}

	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/teams", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams league=%d season=%d: %w", leagueExternalID, seasonYear, err)
	}
	if len(envelope.Response) == 0 {
		return nil, fmt.Errorf("fetch teams league=%d season=%d: empty provider response", leagueExternalID, seasonYear)
	}

	out := make([]usecase.ExternalTeam, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Team.ID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalTeam{
			ExternalID: item.Team.ID,
			Name:       strings.TrimSpace(item.Team.Name),
		})
	}
	return out, nil
}

func (c *Client) FetchFixtures(ctx context.Context, query usecase.FixtureQuery) ([]usecase.ExternalFixture, error) {
	if query.LeagueExternalID <= 0 {
		return nil, fmt.Errorf("league external id must be greater than zero")
	}

	params := map[string]string{
		"league": strconv.FormatInt(query.LeagueExternalID, 10),
		"season": strconv.Itoa(query.SeasonYear),
	}
	if !query.From.IsZero() {
		params["from"] = query.From.Format(queryDateLayout)
	}
	if !query.To.IsZero() {
		params["to"] = query.To.Format(queryDateLayout)
	}

	var envelope fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", params, &envelope); err != nil {
		return nil, fmt.Errorf("fetch fixtures league=%d season=%d: %w", query.LeagueExternalID, query.SeasonYear, err)
	}
	if len(envelope.Response) == 0 {
		return nil, fmt.Errorf("fetch fixtures league=%d season=%d: empty provider response", query.LeagueExternalID, query.SeasonYear)
	}

	out := make([]usecase.ExternalFixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Fixture.ID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalFixture{
			ExternalID:         item.Fixture.ID,
			KickoffAt:          parseProviderDate(item.Fixture.Date),
			Status:             strings.ToUpper(strings.TrimSpace(item.Fixture.Status.Short)),
			HomeTeamExternalID: item.Teams.Home.ID,
			AwayTeamExternalID: item.Teams.Away.ID,
			HomeScore:          item.Goals.Home,
			AwayScore:          item.Goals.Away,
			RoundLabel:         strings.TrimSpace(item.League.Round),
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	value := strings.TrimSpace(string(raw))
	if len(value) > 256 {
		value = value[:256] + "..."
	}
	return value
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyHeaderRegex.ReplaceAllString(value, apiKeyHeader+": REDACTED")
}

// parseProviderDate keeps the provider-reported offset; the time-split policy
// compares the local calendar date the provider published.
func parseProviderDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &parsed
}
