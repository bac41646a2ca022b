package props

import (
	"math"
	"testing"

	"github.com/sameerfidai/FiveLegFlex/internal/domain/odds"
)

func TestSelectBestPicksStrongestSide(t *testing.T) {
	// Book A -110/-110 adjusts to 0.5/0.5. Book B +100/-120 adjusts to
	// ~0.4783/~0.5217, so the best side overall is Book B's under.
	quotes := []Quote{
		mustQuote(t, "bookA", 24.5, -110, -110),
		mustQuote(t, "bookB", 24.5, 100, -120),
	}

	pick, ok := SelectBest(quotes, SideModeTwoSided, ConfidenceWeighted)
	if !ok {
		t.Fatalf("expected a pick")
	}
	if pick.Side != SideUnder || pick.Book != "bookB" {
		t.Fatalf("pick = %+v, want bookB under", pick)
	}
	if pick.Price != -120 {
		t.Fatalf("pick price = %d, want -120", pick.Price)
	}

	// Weighted average: (0.5*(1/110) + 0.5217*(1/120)) / (1/110 + 1/120).
	wantConf := (0.5*(1.0/110) + (0.5454545454545454/1.0454545454545454)*(1.0/120)) / (1.0/110 + 1.0/120)
	if !pick.Confidence.Valid || math.Abs(pick.Confidence.Value-wantConf) > 1e-9 {
		t.Fatalf("confidence = %+v, want %f", pick.Confidence, wantConf)
	}
}

func TestSelectBestEmptyInput(t *testing.T) {
	if _, ok := SelectBest(nil, SideModeTwoSided, ConfidenceWeighted); ok {
		t.Fatalf("no eligible quotes must yield no pick")
	}
}

func TestSelectBestFirstMaximalWinsTies(t *testing.T) {
	quotes := []Quote{
		mustQuote(t, "first", 10.5, -110, -110),
		mustQuote(t, "second", 10.5, -110, -110),
	}

	pick, ok := SelectBest(quotes, SideModeTwoSided, ConfidenceSimple)
	if !ok || pick.Book != "first" {
		t.Fatalf("tie must resolve to the first quote, got %+v", pick)
	}
	// Equal sides resolve to under, mirroring the strict-greater test for over.
	if pick.Side != SideUnder {
		t.Fatalf("equal sides must land on under, got %s", pick.Side)
	}
}

func TestSelectBestOverOnlyAlwaysOver(t *testing.T) {
	quotes := []Quote{
		mustQuote(t, "fanduel", 2.5, 240, 0),
		mustQuote(t, "draftkings", 2.5, 180, 0),
	}

	pick, ok := SelectBest(quotes, SideModeOverOnly, ConfidenceSimple)
	if !ok {
		t.Fatalf("expected a pick")
	}
	if pick.Side != SideOver {
		t.Fatalf("single-sided market must pick over, got %s", pick.Side)
	}
	if pick.Book != "draftkings" {
		t.Fatalf("draftkings has the shorter price and higher probability, got %s", pick.Book)
	}

	want := (100.0/340 + 100.0/280) / 2
	if math.Abs(pick.Confidence.Value-want) > 1e-9 {
		t.Fatalf("simple average = %f, want %f", pick.Confidence.Value, want)
	}
}

func TestConfidenceWeightFavorsEvenMoney(t *testing.T) {
	far := []Quote{
		mustQuote(t, "anchor", 24.5, -110, -110),
		mustQuote(t, "mover", 24.5, -300, 230),
	}
	near := []Quote{
		mustQuote(t, "anchor", 24.5, -110, -110),
		mustQuote(t, "mover", 24.5, -150, 125),
	}

	// Moving the over price toward even money raises the mover's weight,
	// pulling the weighted average further from the anchor's value.
	confFar := Confidence(far, SideOver, ConfidenceWeighted)
	confNear := Confidence(near, SideOver, ConfidenceWeighted)
	if !confFar.Valid || !confNear.Valid {
		t.Fatalf("expected defined confidences")
	}

	anchor := 0.5
	if math.Abs(confNear.Value-anchor) <= math.Abs(confFar.Value-anchor) {
		// The -150 quote carries weight 1/150 vs 1/300 for -300.
		t.Fatalf("near-even price must weigh more: far=%f near=%f", confFar.Value, confNear.Value)
	}
}

func TestConfidenceZeroWeightUndefined(t *testing.T) {
	q := Quote{Book: "manual", Line: 1.5, OverProb: odds.Defined(0.6)}
	if got := Confidence([]Quote{q}, SideOver, ConfidenceWeighted); got.Valid {
		t.Fatalf("zero total weight must yield undefined confidence, got %+v", got)
	}
	if got := Confidence([]Quote{q}, SideOver, ConfidenceSimple); !got.Valid {
		t.Fatalf("simple average ignores prices and must stay defined")
	}
}

func TestSelectBestUndefinedConfidenceStillEmitted(t *testing.T) {
	q := Quote{Book: "manual", Line: 1.5, OverProb: odds.Defined(0.6)}
	pick, ok := SelectBest([]Quote{q}, SideModeOverOnly, ConfidenceWeighted)
	if !ok {
		t.Fatalf("a pick must still be emitted with undefined confidence")
	}
	if pick.Confidence.Valid {
		t.Fatalf("confidence must be undefined, got %+v", pick.Confidence)
	}
}
