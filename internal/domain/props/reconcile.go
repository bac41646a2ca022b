package props

import "math"

// Tolerance controls how bookmaker lines are matched against a
// reference line.
type Tolerance string

const (
	// ToleranceExact requires line equality.
	ToleranceExact Tolerance = "exact"
	// ToleranceHalfPoint absorbs half-point rounding drift between
	// providers: a whole-number reference line L also accepts L-0.5,
	// a fractional one also accepts L+0.5.
	ToleranceHalfPoint Tolerance = "half_point"
)

// SideMode says whether a sport's props are quoted over/under at one
// fixed line or as single-sided over totals.
type SideMode string

const (
	SideModeTwoSided SideMode = "two_sided"
	SideModeOverOnly SideMode = "over_only"
)

// LineMatches reports whether a bookmaker line is comparable to the
// reference line under the given tolerance.
func LineMatches(quoteLine, refLine float64, tol Tolerance) bool {
	if tol == ToleranceHalfPoint {
		if refLine == math.Trunc(refLine) {
			return quoteLine >= refLine-0.5 && quoteLine <= refLine
		}
		return quoteLine >= refLine && quoteLine <= refLine+0.5
	}
	return quoteLine == refLine
}

// EligibleQuotes selects the subset of a bundle's quotes fit for
// comparison. With a reference line, a quote must match the line under
// tol and carry a defined probability on the side(s) the mode needs.
// Without one (bookmaker-consensus mode) every fully two-sided quote is
// eligible regardless of line. Input order is preserved; ties downstream
// resolve to the first quote encountered.
func EligibleQuotes(quotes []Quote, ref *ReferenceLine, tol Tolerance, mode SideMode) []Quote {
	eligible := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if ref == nil {
			if q.TwoSided() {
				eligible = append(eligible, q)
			}
			continue
		}
		if !LineMatches(q.Line, ref.Line, tol) {
			continue
		}
		if mode == SideModeOverOnly {
			if q.OverProb.Valid {
				eligible = append(eligible, q)
			}
			continue
		}
		if q.TwoSided() {
			eligible = append(eligible, q)
		}
	}
	return eligible
}
