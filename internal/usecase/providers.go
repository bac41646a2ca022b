package usecase

import (
	"context"
	"time"
)

// ExternalGame is one upcoming event as reported by the odds board.
type ExternalGame struct {
	ID           string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
}

// ExternalOutcome is a single priced side within a bookmaker market.
// Player carries the participant name exactly as the board spells it.
type ExternalOutcome struct {
	Side   string // "Over" or "Under"
	Player string
	Price  int
	Line   float64
}

type ExternalMarket struct {
	Code     string
	Outcomes []ExternalOutcome
}

type ExternalBookmaker struct {
	Key     string
	Title   string
	Markets []ExternalMarket
}

// ExternalGameOdds is the full per-game odds payload across bookmakers.
type ExternalGameOdds struct {
	GameID     string
	Bookmakers []ExternalBookmaker
}

// OddsBoardProvider fetches the upcoming slate and per-game player prop
// quotes for one sport.
type OddsBoardProvider interface {
	UpcomingGames(ctx context.Context, sportKey string) ([]ExternalGame, error)
	GameOdds(ctx context.Context, sportKey, gameID string, marketCodes []string) (ExternalGameOdds, error)
}

// ExternalProjection is one reference line from the projections provider.
// StatType uses the provider's display vocabulary, which the sport
// profile's market labels are aligned to.
type ExternalProjection struct {
	Player   string
	StatType string
	Line     float64
	Team     string
	// Market is the provider's competition/club attribute. Shared boards
	// carry the club here rather than in Team.
	Market   string
	Position string
	ImageURL string
	OddsType string
}

// ProjectionsProvider fetches reference lines for one provider league
// board.
type ProjectionsProvider interface {
	Projections(ctx context.Context, leagueID int) ([]ExternalProjection, error)
}
