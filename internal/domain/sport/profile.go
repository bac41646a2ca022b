package sport

import (
	"fmt"

	"github.com/sameerfidai/FiveLegFlex/internal/domain/identity"
	"github.com/sameerfidai/FiveLegFlex/internal/domain/props"
)

// Market maps an odds-board market code to the display label the
// projections provider uses for the same statistic. The label doubles as
// the join key against reference lines, so it must match the provider's
// vocabulary exactly.
type Market struct {
	Code  string
	Label string
}

// Profile carries everything sport-specific the ranking engine needs.
// One engine, many profiles; no per-sport code paths.
type Profile struct {
	Key   string
	Label string

	// OddsKey is the odds board's sport identifier, e.g. basketball_nba.
	OddsKey string
	// ProjectionsLeagueID selects the projections provider board.
	ProjectionsLeagueID int

	Markets    []Market
	Tolerance  props.Tolerance
	Confidence props.ConfidencePolicy
	SideMode   props.SideMode

	// TopN caps the ranked output; 0 means unbounded.
	TopN int
	// LookaheadDays bounds the slate to games starting before end of day
	// N days out, US-Eastern; 0 means any future game.
	LookaheadDays int

	ExcludedBooks     []string
	ExcludedOddsTypes []string
	// TeamAllowlist filters a shared projections board down to one
	// competition; empty means no filtering.
	TeamAllowlist []string

	NameReplacements []identity.Replacement
	FallbackImageURL string
}

func (p Profile) Validate() error {
	if p.Key == "" {
		return fmt.Errorf("profile key is required")
	}
	if p.OddsKey == "" {
		return fmt.Errorf("profile %s: odds board sport key is required", p.Key)
	}
	if p.ProjectionsLeagueID <= 0 {
		return fmt.Errorf("profile %s: projections league id is required", p.Key)
	}
	if len(p.Markets) == 0 {
		return fmt.Errorf("profile %s: at least one market is required", p.Key)
	}
	for _, m := range p.Markets {
		if m.Code == "" || m.Label == "" {
			return fmt.Errorf("profile %s: market code and label are required", p.Key)
		}
	}
	switch p.Tolerance {
	case props.ToleranceExact, props.ToleranceHalfPoint:
	default:
		return fmt.Errorf("profile %s: invalid tolerance %q", p.Key, p.Tolerance)
	}
	switch p.Confidence {
	case props.ConfidenceWeighted, props.ConfidenceSimple:
	default:
		return fmt.Errorf("profile %s: invalid confidence policy %q", p.Key, p.Confidence)
	}
	switch p.SideMode {
	case props.SideModeTwoSided, props.SideModeOverOnly:
	default:
		return fmt.Errorf("profile %s: invalid side mode %q", p.Key, p.SideMode)
	}
	if p.TopN < 0 {
		return fmt.Errorf("profile %s: top-n cap cannot be negative", p.Key)
	}
	if p.LookaheadDays < 0 {
		return fmt.Errorf("profile %s: lookahead days cannot be negative", p.Key)
	}
	return nil
}

// MarketLabel resolves a market code to its display label; unknown codes
// pass through unchanged.
func (p Profile) MarketLabel(code string) string {
	for _, m := range p.Markets {
		if m.Code == code {
			return m.Label
		}
	}
	return code
}

func (p Profile) BookExcluded(book string) bool {
	for _, b := range p.ExcludedBooks {
		if b == book {
			return true
		}
	}
	return false
}

func (p Profile) OddsTypeExcluded(oddsType string) bool {
	for _, t := range p.ExcludedOddsTypes {
		if t == oddsType {
			return true
		}
	}
	return false
}

func (p Profile) TeamAllowed(team string) bool {
	if len(p.TeamAllowlist) == 0 {
		return true
	}
	for _, t := range p.TeamAllowlist {
		if t == team {
			return true
		}
	}
	return false
}

func (p Profile) Normalizer() *identity.Normalizer {
	return identity.NewNormalizer(p.NameReplacements)
}
