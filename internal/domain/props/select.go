package props

import "github.com/sameerfidai/FiveLegFlex/internal/domain/odds"

// ConfidencePolicy picks how a bet's aggregate confidence is computed
// across the eligible quotes. The choice is per sport, not per call.
type ConfidencePolicy string

const (
	// ConfidenceWeighted averages the winning side's probabilities
	// weighted by 1/|price|, favoring quotes priced near even money.
	ConfidenceWeighted ConfidencePolicy = "weighted"
	// ConfidenceSimple is the unweighted arithmetic mean.
	ConfidenceSimple ConfidencePolicy = "simple"
)

// Pick is the winning side and quote chosen from a bundle's eligible
// quotes, plus the aggregate confidence.
type Pick struct {
	Side       Side
	Book       string
	Price      int
	Line       float64
	Confidence odds.Probability
}

// SelectBest produces exactly one Pick from a set of eligible quotes, or
// none when the set is empty. The winning quote is the one with the
// maximum probability on its better side, first maximal winning ties;
// the winning side is that quote's better side. Over-only markets always
// land on over. An undefined confidence is still emitted so the caller
// can rank it last rather than drop the bet.
func SelectBest(eligible []Quote, mode SideMode, policy ConfidencePolicy) (Pick, bool) {
	if len(eligible) == 0 {
		return Pick{}, false
	}

	best := eligible[0]
	bestVal := quoteCeiling(best, mode)
	for _, q := range eligible[1:] {
		if v := quoteCeiling(q, mode); v.Greater(bestVal) {
			best = q
			bestVal = v
		}
	}

	side := SideOver
	if mode == SideModeTwoSided && !best.OverProb.Greater(best.UnderProb) {
		side = SideUnder
	}

	return Pick{
		Side:       side,
		Book:       best.Book,
		Price:      best.SidePrice(side),
		Line:       best.Line,
		Confidence: Confidence(eligible, side, policy),
	}, true
}

// quoteCeiling is the quote's best showing: its larger side for
// two-sided markets, its over probability otherwise.
func quoteCeiling(q Quote, mode SideMode) odds.Probability {
	if mode == SideModeOverOnly {
		return q.OverProb
	}
	if q.UnderProb.Greater(q.OverProb) {
		return q.UnderProb
	}
	return q.OverProb
}

// Confidence aggregates the chosen side's probability across quotes
// under the given policy. Quotes without a defined probability or,
// for the weighted policy, without a usable price on that side are
// skipped; if nothing contributes the result is undefined.
func Confidence(quotes []Quote, side Side, policy ConfidencePolicy) odds.Probability {
	if policy == ConfidenceWeighted {
		var weightedSum, totalWeight float64
		for _, q := range quotes {
			p := q.SideProb(side)
			price := q.SidePrice(side)
			if !p.Valid || price == 0 {
				continue
			}
			w := 1 / abs(price)
			weightedSum += p.Value * w
			totalWeight += w
		}
		if totalWeight == 0 {
			return odds.Undefined()
		}
		return odds.Defined(weightedSum / totalWeight)
	}

	var sum float64
	var n int
	for _, q := range quotes {
		if p := q.SideProb(side); p.Valid {
			sum += p.Value
			n++
		}
	}
	if n == 0 {
		return odds.Undefined()
	}
	return odds.Defined(sum / float64(n))
}

func abs(price int) float64 {
	if price < 0 {
		return float64(-price)
	}
	return float64(price)
}
