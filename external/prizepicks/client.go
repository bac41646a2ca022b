package prizepicks

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/sameerfidai/FiveLegFlex/internal/platform/logging"
	"github.com/sameerfidai/FiveLegFlex/internal/platform/resilience"
	"github.com/sameerfidai/FiveLegFlex/internal/usecase"
)

const (
	defaultBaseURL = "https://partner-api.prizepicks.com"
	defaultTimeout = 15 * time.Second
	perPage        = 250
)

var errPrizePicksTransient = crerr.New("prizepicks transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads projection boards from the PrizePicks partner API. It
// implements usecase.ProjectionsProvider.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
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
		httpClient = &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type relationshipData struct {
	Data struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"data"`
}

type projectionItem struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		LineScore float64 `json:"line_score"`
		StatType  string  `json:"stat_type"`
		OddsType  string  `json:"odds_type"`
	} `json:"attributes"`
	Relationships struct {
		NewPlayer relationshipData `json:"new_player"`
	} `json:"relationships"`
}

type includedItem struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Team        string `json:"team"`
		Market      string `json:"market"`
		Position    string `json:"position"`
		ImageURL    string `json:"image_url"`
	} `json:"attributes"`
}

type projectionsEnvelope struct {
	Data     []projectionItem `json:"data"`
	Included []includedItem   `json:"included"`
}

// Projections fetches the board for one league and joins each projection
// to its player via the JSON:API included set.
func (c *Client) Projections(ctx context.Context, leagueID int) ([]usecase.ExternalProjection, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}

	path := fmt.Sprintf("/projections?league_id=%d&per_page=%d&single_stat=true", leagueID, perPage)
	raw, err := c.doGET(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch projections league_id=%d: %w", leagueID, err)
	}

	var envelope projectionsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode projections payload: %w", err)
	}

	playersByID := make(map[string]includedItem, len(envelope.Included))
	for _, item := range envelope.Included {
		if item.Type != "new_player" || item.ID == "" {
			continue
		}
		playersByID[item.ID] = item
	}

	out := make([]usecase.ExternalProjection, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		player, ok := playersByID[item.Relationships.NewPlayer.Data.ID]
		if !ok {
			continue
		}
		name := strings.TrimSpace(player.Attributes.Name)
		if name == "" {
			name = strings.TrimSpace(player.Attributes.DisplayName)
		}
		if name == "" || item.Attributes.StatType == "" {
			continue
		}
		out = append(out, usecase.ExternalProjection{
			Player:   name,
			StatType: item.Attributes.StatType,
			Line:     item.Attributes.LineScore,
			Team:     strings.TrimSpace(player.Attributes.Team),
			Market:   strings.TrimSpace(player.Attributes.Market),
			Position: strings.TrimSpace(player.Attributes.Position),
			ImageURL: strings.TrimSpace(player.Attributes.ImageURL),
			OddsType: item.Attributes.OddsType,
		})
	}
	return out, nil
}

func (c *Client) doGET(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "prizepicks circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: projections provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil {
				if isPrizePicksCircuitFailure(reqErr) {
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
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		req.SetRequestURI(fullURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("Accept", "application/json")

		err := c.httpClient.DoTimeout(req, resp, c.timeout)
		statusCode := resp.StatusCode()
		var raw []byte
		if err == nil {
			raw = append([]byte(nil), resp.Body()...)
		}
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errPrizePicksTransient, err)
		} else if statusCode >= 200 && statusCode < 300 {
			return raw, nil
		} else if isRetryableStatus(statusCode) {
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errPrizePicksTransient, statusCode, abbreviateBody(raw))
		} else {
			return nil, fmt.Errorf("provider status=%d body=%s", statusCode, abbreviateBody(raw))
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
	c.logger.WarnContext(ctx, "prizepicks request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isPrizePicksCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errPrizePicksTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
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
