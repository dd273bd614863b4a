package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-draft/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-draft/internal/usecase"
)

const defaultBaseURL = "https://api.football-data.example/v3"

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errFootballDataTransient = crerr.New("football data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is the football-data provider boundary. It performs transport,
// retry and code normalization only; scoring semantics live in usecase.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) Rounds(ctx context.Context) ([]usecase.ExternalRound, error) {
	var envelope roundsEnvelope
	if _, err := c.doJSON(ctx, "/rounds", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch rounds: %w", err)
	}

	out := make([]usecase.ExternalRound, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		if item.ID <= 0 {
			continue
		}
		external := usecase.ExternalRound{
			ProviderRoundID: item.ID,
			Name:            strings.TrimSpace(item.Name),
			Number:          item.Number,
			IsCurrent:       item.IsCurrent,
		}
		if parsed := parseProviderDateTime(item.StartingAt); parsed != nil {
			external.StartsAt = *parsed
		}
		if parsed := parseProviderDateTime(item.EndingAt); parsed != nil {
			external.EndsAt = *parsed
		}
		out = append(out, external)
	}
	return out, nil
}

func (c *Client) FixturesForRound(ctx context.Context, providerRoundID int64) (usecase.ExternalRoundFixtures, error) {
	if providerRoundID <= 0 {
		return usecase.ExternalRoundFixtures{}, fmt.Errorf("provider round id must be greater than zero")
	}

	path := fmt.Sprintf("/rounds/%d", providerRoundID)
	query := map[string]string{"include": "fixtures"}

	var envelope roundDetailEnvelope
	if _, err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return usecase.ExternalRoundFixtures{}, fmt.Errorf("fetch round fixtures round_id=%d: %w", providerRoundID, err)
	}

	out := usecase.ExternalRoundFixtures{
		ProviderRoundID: providerRoundID,
		Matchday:        envelope.Data.Number,
		FixtureIDs:      make([]int64, 0, len(envelope.Data.Fixtures)),
	}
	for _, fixture := range envelope.Data.Fixtures {
		if fixture.ID <= 0 {
			continue
		}
		out.FixtureIDs = append(out.FixtureIDs, fixture.ID)
	}
	return out, nil
}

func (c *Client) Lineups(ctx context.Context, fixtureID int64) ([]usecase.ExternalLineupEntry, error) {
	if fixtureID <= 0 {
		return nil, fmt.Errorf("fixture id must be greater than zero")
	}

	path := fmt.Sprintf("/fixtures/%d/lineups", fixtureID)
	var envelope lineupsEnvelope
	if _, err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch lineups fixture_id=%d: %w", fixtureID, err)
	}

	out := make([]usecase.ExternalLineupEntry, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		if item.PlayerID <= 0 && strings.TrimSpace(item.PlayerName) == "" {
			continue
		}
		out = append(out, usecase.ExternalLineupEntry{
			PlayerRefID: item.PlayerID,
			PlayerName:  strings.TrimSpace(item.PlayerName),
			TeamRefID:   item.TeamID,
			Position:    resolveLineupPosition(item),
			IsStarter:   item.TypeID == lineupTypeStarting,
		})
	}
	return out, nil
}

func (c *Client) Events(ctx context.Context, fixtureID int64) ([]usecase.ExternalFixtureEvent, error) {
	if fixtureID <= 0 {
		return nil, fmt.Errorf("fixture id must be greater than zero")
	}

	path := fmt.Sprintf("/fixtures/%d/events", fixtureID)
	var envelope eventsEnvelope
	if _, err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch events fixture_id=%d: %w", fixtureID, err)
	}

	out := make([]usecase.ExternalFixtureEvent, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		eventType, known := resolveEventType(item)
		if !known {
			// Unknown provider codes never reach the scoring engine.
			continue
		}
		minute := 0
		if item.Minute != nil && *item.Minute > 0 {
			minute = *item.Minute
		}
		out = append(out, usecase.ExternalFixtureEvent{
			Type:              eventType,
			PlayerRefID:       item.PlayerID,
			PlayerName:        strings.TrimSpace(item.PlayerName),
			RelatedPlayerRef:  item.RelatedPlayerID,
			RelatedPlayerName: strings.TrimSpace(item.RelatedPlayerName),
			TeamRefID:         item.ParticipantID,
			Minute:            minute,
		})
	}
	return out, nil
}

func (c *Client) Statistics(ctx context.Context, fixtureID int64) ([]usecase.ExternalFixtureStatistic, error) {
	if fixtureID <= 0 {
		return nil, fmt.Errorf("fixture id must be greater than zero")
	}

	path := fmt.Sprintf("/fixtures/%d/statistics", fixtureID)
	var envelope statisticsEnvelope
	if _, err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch statistics fixture_id=%d: %w", fixtureID, err)
	}

	out := make([]usecase.ExternalFixtureStatistic, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		statType, known := resolveStatType(item)
		if !known || item.ParticipantID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalFixtureStatistic{
			Type:      statType,
			TeamRefID: item.ParticipantID,
			Value:     item.numericValue(),
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football data circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: match data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_token", c.token)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isFootballDataCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootballDataTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
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
	c.logger.WarnContext(ctx, "football data request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isFootballDataCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFootballDataTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

func parseProviderDateTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}
