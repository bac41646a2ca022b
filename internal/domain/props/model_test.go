package props

import (
	"math"
	"testing"
)

func TestNewQuoteTwoSidedDevigs(t *testing.T) {
	q, err := NewQuote("fanduel", 24.5, -110, -110)
	if err != nil {
		t.Fatalf("NewQuote: %v", err)
	}
	if !q.TwoSided() {
		t.Fatalf("expected two-sided quote")
	}
	if math.Abs(q.OverProb.Value-0.5) > 1e-9 || math.Abs(q.UnderProb.Value-0.5) > 1e-9 {
		t.Fatalf("even juice must adjust to 0.5/0.5, got %f/%f", q.OverProb.Value, q.UnderProb.Value)
	}
	if sum := q.OverProb.Value + q.UnderProb.Value; math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("adjusted pair sums to %f, want 1.0", sum)
	}
}

func TestNewQuoteSingleSidedKeepsRawImplied(t *testing.T) {
	q, err := NewQuote("draftkings", 1.5, 130, 0)
	if err != nil {
		t.Fatalf("NewQuote: %v", err)
	}
	if q.TwoSided() {
		t.Fatalf("expected single-sided quote")
	}
	want := 100.0 / 230.0
	if math.Abs(q.OverProb.Value-want) > 1e-9 {
		t.Fatalf("over prob = %f, want %f", q.OverProb.Value, want)
	}
	if q.UnderProb.Valid {
		t.Fatalf("under side must stay undefined")
	}
}

func TestNewQuoteRejectsUnpriced(t *testing.T) {
	if _, err := NewQuote("fanduel", 24.5, 0, 0); err == nil {
		t.Fatalf("expected error for quote with no priced side")
	}
	if _, err := NewQuote("", 24.5, -110, -110); err == nil {
		t.Fatalf("expected error for quote with no book")
	}
}

func TestBundleKeySeparatesGames(t *testing.T) {
	a := Bundle{NormalizedPlayer: "LeBron James", Category: "Points", Game: Game{ID: "g1"}}
	b := Bundle{NormalizedPlayer: "LeBron James", Category: "Points", Game: Game{ID: "g2"}}
	if a.Key() == b.Key() {
		t.Fatalf("same player/stat in different games must not collide")
	}
}
