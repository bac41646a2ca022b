package oddsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sameerfidai/FiveLegFlex/internal/platform/logging"
	"github.com/sameerfidai/FiveLegFlex/internal/platform/resilience"
	"github.com/sameerfidai/FiveLegFlex/internal/usecase"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com"
	defaultRegions = "us"
)

var apiKeyParamRegex = regexp.MustCompile(`apiKey=[^&\s"']+`)
var errOddsAPITransient = crerr.New("odds api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Regions        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to The Odds API v4. It implements
// usecase.OddsBoardProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	regions        string
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
	regions := strings.TrimSpace(cfg.Regions)
	if regions == "" {
		regions = defaultRegions
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		regions:        regions,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type eventItem struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
}

type outcomeItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Point       float64 `json:"point"`
}

type marketItem struct {
	Key      string        `json:"key"`
	Outcomes []outcomeItem `json:"outcomes"`
}

type bookmakerItem struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []marketItem `json:"markets"`
}

type eventOddsEnvelope struct {
	ID         string          `json:"id"`
	Bookmakers []bookmakerItem `json:"bookmakers"`
}

func (c *Client) UpcomingGames(ctx context.Context, sportKey string) ([]usecase.ExternalGame, error) {
	sportKey = strings.TrimSpace(sportKey)
	if sportKey == "" {
		return nil, fmt.Errorf("sport key is required")
	}

	path := fmt.Sprintf("/v4/sports/%s/events", url.PathEscape(sportKey))
	query := map[string]string{
		"dateFormat": "iso",
	}

	var events []eventItem
	if _, err := c.doJSON(ctx, path, query, &events); err != nil {
		return nil, fmt.Errorf("fetch events sport=%s: %w", sportKey, err)
	}

	out := make([]usecase.ExternalGame, 0, len(events))
	for _, item := range events {
		if item.ID == "" {
			continue
		}
		out = append(out, usecase.ExternalGame{
			ID:           item.ID,
			HomeTeam:     item.HomeTeam,
			AwayTeam:     item.AwayTeam,
			CommenceTime: item.CommenceTime,
		})
	}
	return out, nil
}

func (c *Client) GameOdds(ctx context.Context, sportKey, gameID string, marketCodes []string) (usecase.ExternalGameOdds, error) {
	sportKey = strings.TrimSpace(sportKey)
	gameID = strings.TrimSpace(gameID)
	if sportKey == "" || gameID == "" {
		return usecase.ExternalGameOdds{}, fmt.Errorf("sport key and game id are required")
	}
	if len(marketCodes) == 0 {
		return usecase.ExternalGameOdds{}, fmt.Errorf("at least one market is required")
	}

	path := fmt.Sprintf("/v4/sports/%s/events/%s/odds", url.PathEscape(sportKey), url.PathEscape(gameID))
	query := map[string]string{
		"regions":    c.regions,
		"markets":    strings.Join(marketCodes, ","),
		"oddsFormat": "american",
	}

	var envelope eventOddsEnvelope
	if _, err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return usecase.ExternalGameOdds{}, fmt.Errorf("fetch event odds sport=%s game_id=%s: %w", sportKey, gameID, err)
	}

	out := usecase.ExternalGameOdds{
		GameID:     gameID,
		Bookmakers: make([]usecase.ExternalBookmaker, 0, len(envelope.Bookmakers)),
	}
	for _, bookmaker := range envelope.Bookmakers {
		mapped := usecase.ExternalBookmaker{
			Key:     bookmaker.Key,
			Title:   bookmaker.Title,
			Markets: make([]usecase.ExternalMarket, 0, len(bookmaker.Markets)),
		}
		for _, market := range bookmaker.Markets {
			outcomes := make([]usecase.ExternalOutcome, 0, len(market.Outcomes))
			for _, outcome := range market.Outcomes {
				outcomes = append(outcomes, usecase.ExternalOutcome{
					Side:   outcome.Name,
					Player: strings.TrimSpace(outcome.Description),
					Price:  int(math.Round(outcome.Price)),
					Line:   outcome.Point,
				})
			}
			mapped.Markets = append(mapped.Markets, usecase.ExternalMarket{
				Code:     market.Key,
				Outcomes: outcomes,
			})
		}
		out.Bookmakers = append(out.Bookmakers, mapped)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "odds api circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: odds board is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("apiKey", c.apiKey)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("oddsapi.path", path),
			attribute.String("oddsapi.request_curl_preview", buildCurlPreview(redactAPIURL(fullURL))),
		)
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil {
				if isOddsAPICircuitFailure(reqErr) {
					c.breaker.RecordFailure()
				} else {
					c.breaker.RecordSuccess()
				}
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
			lastErr = fmt.Errorf("%w: send request: %s", errOddsAPITransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errOddsAPITransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errOddsAPITransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
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
	c.logger.WarnContext(ctx, "odds api request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isOddsAPICircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errOddsAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apiKey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("apiKey") {
		query.Set("apiKey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func buildCurlPreview(redactedURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -H 'accept: application/json' ")
	_, _ = buf.WriteString(shellQuote(redactedURL))
	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
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
