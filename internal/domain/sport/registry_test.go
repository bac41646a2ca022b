package sport

import (
	"testing"

	"github.com/sameerfidai/FiveLegFlex/internal/domain/props"
)

func TestAllProfilesValidate(t *testing.T) {
	for _, p := range All() {
		if err := p.Validate(); err != nil {
			t.Fatalf("profile %s failed validation: %v", p.Key, err)
		}
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("nba")
	if !ok {
		t.Fatalf("expected nba profile")
	}
	if p.OddsKey != "basketball_nba" || p.ProjectionsLeagueID != 7 {
		t.Fatalf("unexpected nba profile: %+v", p)
	}
	if _, ok := Lookup("cricket"); ok {
		t.Fatalf("unknown sport must not resolve")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != 6 {
		t.Fatalf("expected 6 registered sports, got %d: %v", len(keys), keys)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}

func TestPolicyAssignments(t *testing.T) {
	cases := []struct {
		key        string
		tolerance  props.Tolerance
		confidence props.ConfidencePolicy
		sideMode   props.SideMode
		topN       int
	}{
		{"nba", props.ToleranceExact, props.ConfidenceWeighted, props.SideModeTwoSided, 10},
		{"nfl", props.ToleranceExact, props.ConfidenceWeighted, props.SideModeTwoSided, 100},
		{"mlb", props.ToleranceExact, props.ConfidenceSimple, props.SideModeTwoSided, 100},
		{"epl", props.ToleranceHalfPoint, props.ConfidenceSimple, props.SideModeOverOnly, 0},
		{"mls", props.ToleranceExact, props.ConfidenceSimple, props.SideModeOverOnly, 0},
		{"euros", props.ToleranceExact, props.ConfidenceSimple, props.SideModeOverOnly, 0},
	}

	for _, tc := range cases {
		p, ok := Lookup(tc.key)
		if !ok {
			t.Fatalf("missing profile %s", tc.key)
		}
		if p.Tolerance != tc.tolerance || p.Confidence != tc.confidence || p.SideMode != tc.sideMode || p.TopN != tc.topN {
			t.Fatalf("profile %s = %+v, want %+v", tc.key, p, tc)
		}
	}
}

func TestMarketLabelFallsThrough(t *testing.T) {
	p, _ := Lookup("nba")
	if got := p.MarketLabel("player_points"); got != "Points" {
		t.Fatalf("MarketLabel(player_points) = %q", got)
	}
	if got := p.MarketLabel("player_dunks"); got != "player_dunks" {
		t.Fatalf("unknown code must pass through, got %q", got)
	}
}

func TestExclusions(t *testing.T) {
	p, _ := Lookup("mlb")
	if !p.BookExcluded("betrivers") || !p.BookExcluded("unibet_us") {
		t.Fatalf("betrivers and unibet_us must be excluded")
	}
	if p.BookExcluded("fanduel") {
		t.Fatalf("fanduel must not be excluded")
	}
	if !p.OddsTypeExcluded("demon") || !p.OddsTypeExcluded("goblin") {
		t.Fatalf("promotional odds types must be excluded")
	}
	if p.OddsTypeExcluded("standard") {
		t.Fatalf("standard odds type must not be excluded")
	}
}

func TestTeamAllowlist(t *testing.T) {
	epl, _ := Lookup("epl")
	if !epl.TeamAllowed("Arsenal FC") {
		t.Fatalf("Arsenal FC must be allowed for epl")
	}
	if epl.TeamAllowed("LA Galaxy") {
		t.Fatalf("LA Galaxy must be filtered from the epl board")
	}

	mls, _ := Lookup("mls")
	if !mls.TeamAllowed("LA Galaxy") {
		t.Fatalf("empty allowlist must admit every team")
	}
}

func TestNormalizerPerProfile(t *testing.T) {
	mls, _ := Lookup("mls")
	if got := mls.Normalizer().Normalize("Martin Ojeda"); got != "Martín Ojeda" {
		t.Fatalf("Normalize(Martin Ojeda) = %q", got)
	}
	nba, _ := Lookup("nba")
	if got := nba.Normalizer().Normalize("CJ McCollum"); got != "CJ McCollum" {
		t.Fatalf("Normalize(CJ McCollum) = %q", got)
	}
}
