package props

import (
	"fmt"
	"time"

	"github.com/sameerfidai/FiveLegFlex/internal/domain/odds"
)

// Side is the outcome a wager is placed on.
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// Source records which pipeline produced a best bet.
type Source string

const (
	// SourceReference means the bet was matched against a projections
	// provider reference line.
	SourceReference Source = "reference"
	// SourceConsensus means the bet was derived from bookmaker quotes
	// alone, with no reference line involved.
	SourceConsensus Source = "consensus"
)

// Game is one upcoming event on a sport's slate.
type Game struct {
	ID           string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.CommenceTime.IsZero() {
		return fmt.Errorf("game commence time is required")
	}
	return nil
}

// Quote is one bookmaker's offer for a player and statistic at a single
// line. Probabilities are computed once at construction and never mutated:
// a two-sided quote carries the vig-adjusted pair (summing to 1.0), a
// single-sided quote carries the raw implied probability on its priced side.
type Quote struct {
	Book       string
	Line       float64
	OverPrice  int // American odds; 0 means the side is not offered
	UnderPrice int
	OverProb   odds.Probability
	UnderProb  odds.Probability
}

// NewQuote builds a Quote from raw American prices. A quote with no book
// or no priced side is rejected rather than allowed to surface as a
// missing-field failure downstream.
func NewQuote(book string, line float64, overPrice, underPrice int) (Quote, error) {
	if book == "" {
		return Quote{}, fmt.Errorf("quote book is required")
	}
	if overPrice == 0 && underPrice == 0 {
		return Quote{}, fmt.Errorf("quote for book %s has no priced side", book)
	}

	q := Quote{
		Book:       book,
		Line:       line,
		OverPrice:  overPrice,
		UnderPrice: underPrice,
	}
	over := odds.Implied(overPrice)
	under := odds.Implied(underPrice)
	if over.Valid && under.Valid {
		q.OverProb, q.UnderProb = odds.Devig(over, under)
	} else {
		q.OverProb, q.UnderProb = over, under
	}
	return q, nil
}

// TwoSided reports whether both sides carry a defined probability.
func (q Quote) TwoSided() bool {
	return q.OverProb.Valid && q.UnderProb.Valid
}

func (q Quote) SideProb(side Side) odds.Probability {
	if side == SideUnder {
		return q.UnderProb
	}
	return q.OverProb
}

func (q Quote) SidePrice(side Side) int {
	if side == SideUnder {
		return q.UnderPrice
	}
	return q.OverPrice
}

// ReferenceLine is the projections provider's suggested line for one
// player and statistic category.
type ReferenceLine struct {
	Player           string
	NormalizedPlayer string
	Category         string
	Line             float64
	Team             string
	Position         string
	ImageURL         string
}

func (r ReferenceLine) Validate() error {
	if r.Player == "" {
		return fmt.Errorf("reference line player is required")
	}
	if r.Category == "" {
		return fmt.Errorf("reference line category is required")
	}
	return nil
}

// Key identifies one player/statistic/game combination within a slate.
// Two games on the same slate involving the same player never collide.
type Key struct {
	Player   string // normalized
	Category string
	GameID   string
}

// Bundle collects every bookmaker quote for one player and one statistic
// category within one game, plus the matched reference line when the
// projections provider carries one.
type Bundle struct {
	Player           string // raw display name from the odds board
	NormalizedPlayer string
	Category         string
	Game             Game
	Quotes           []Quote
	Reference        *ReferenceLine
}

func (b Bundle) Key() Key {
	return Key{Player: b.NormalizedPlayer, Category: b.Category, GameID: b.Game.ID}
}

// BestBet is the chosen outcome for one bundle. Quotes keeps the full
// contributing set for auditability.
type BestBet struct {
	Player     string
	Team       string
	Position   string
	ImageURL   string
	HomeTeam   string
	AwayTeam   string
	GameID     string
	GameTime   time.Time
	Category   string
	Line       float64 // the line the bet is graded against
	BookLine   float64 // the winning book's line; differs under tolerance windows
	Side       Side
	Book       string
	Price      int
	Confidence odds.Probability
	Source     Source
	Quotes     []Quote
}
