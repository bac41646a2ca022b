package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sameerfidai/FiveLegFlex/internal/domain/odds"
	"github.com/sameerfidai/FiveLegFlex/internal/domain/props"
	"github.com/sameerfidai/FiveLegFlex/internal/usecase"
)

// The public payload pins game times to US-Eastern regardless of where
// the service runs; slates are published in Eastern time.
var displayZone = loadDisplayZone()

func loadDisplayZone() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

type bestPropsQuery struct {
	IncludeReference bool
	Limit            int `validate:"min=0,max=500"`
}

type quoteDTO struct {
	Book       string   `json:"book"`
	Line       float64  `json:"line"`
	OverPrice  int      `json:"over_price,omitempty"`
	UnderPrice int      `json:"under_price,omitempty"`
	OverProb   *float64 `json:"over_probability,omitempty"`
	UnderProb  *float64 `json:"under_probability,omitempty"`
}

type bestBetDTO struct {
	Player     string     `json:"player"`
	Team       string     `json:"team,omitempty"`
	Position   string     `json:"position,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	HomeTeam   string     `json:"home_team"`
	AwayTeam   string     `json:"away_team"`
	GameID     string     `json:"game_id"`
	GameTime   string     `json:"game_time"`
	Category   string     `json:"stat_type"`
	Line       float64    `json:"line"`
	BookLine   float64    `json:"book_line"`
	Side       string     `json:"best_side"`
	Book       string     `json:"best_book"`
	Price      int        `json:"best_price"`
	Confidence *float64   `json:"confidence,omitempty"`
	Source     string     `json:"source"`
	Quotes     []quoteDTO `json:"quotes,omitempty"`
}

type bestPropsDTO struct {
	Sport   string       `json:"sport"`
	Label   string       `json:"label"`
	Source  string       `json:"source"`
	Message string       `json:"message,omitempty"`
	Bets    []bestBetDTO `json:"bets"`
}

func (h *Handler) GetBestProps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBestProps")
	defer span.End()

	query, err := parseBestPropsQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	sportKey := r.PathValue("sport")
	result, err := h.bestPropsService.BestProps(ctx, usecase.BestPropsInput{
		Sport:            sportKey,
		IncludeReference: query.IncludeReference,
		Limit:            query.Limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "best props lookup failed", "sport", sportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toBestPropsDTO(result))
}

func parseBestPropsQuery(r *http.Request) (bestPropsQuery, error) {
	query := bestPropsQuery{IncludeReference: true}

	if raw := strings.TrimSpace(r.URL.Query().Get("include_reference")); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return query, fmt.Errorf("%w: include_reference must be a boolean, got %q", usecase.ErrInvalidInput, raw)
		}
		query.IncludeReference = include
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, fmt.Errorf("%w: limit must be an integer, got %q", usecase.ErrInvalidInput, raw)
		}
		query.Limit = limit
	}

	return query, nil
}

func toBestPropsDTO(result usecase.BestPropsResult) bestPropsDTO {
	dto := bestPropsDTO{
		Sport:   result.Sport,
		Label:   result.Label,
		Source:  string(result.Source),
		Message: result.Message,
		Bets:    make([]bestBetDTO, 0, len(result.Bets)),
	}
	for _, bet := range result.Bets {
		dto.Bets = append(dto.Bets, toBestBetDTO(bet))
	}
	return dto
}

func toBestBetDTO(bet props.BestBet) bestBetDTO {
	dto := bestBetDTO{
		Player:     bet.Player,
		Team:       bet.Team,
		Position:   bet.Position,
		ImageURL:   bet.ImageURL,
		HomeTeam:   bet.HomeTeam,
		AwayTeam:   bet.AwayTeam,
		GameID:     bet.GameID,
		GameTime:   formatGameTime(bet.GameTime),
		Category:   bet.Category,
		Line:       bet.Line,
		BookLine:   bet.BookLine,
		Side:       string(bet.Side),
		Book:       bet.Book,
		Price:      bet.Price,
		Confidence: probabilityValue(bet.Confidence),
		Source:     string(bet.Source),
		Quotes:     make([]quoteDTO, 0, len(bet.Quotes)),
	}
	for _, quote := range bet.Quotes {
		dto.Quotes = append(dto.Quotes, quoteDTO{
			Book:       quote.Book,
			Line:       quote.Line,
			OverPrice:  quote.OverPrice,
			UnderPrice: quote.UnderPrice,
			OverProb:   probabilityValue(quote.OverProb),
			UnderProb:  probabilityValue(quote.UnderProb),
		})
	}
	return dto
}

func probabilityValue(p odds.Probability) *float64 {
	if !p.Valid {
		return nil
	}
	value := p.Value
	return &value
}

func formatGameTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(displayZone).Format("January 02, 2006, 03:04 PM") + " EST"
}
