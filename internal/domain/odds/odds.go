package odds

// Probability is an implied win probability. The zero value is absent:
// a missing side or a price of zero never yields a usable number, and
// absent probabilities sort after every defined one.
type Probability struct {
	Value float64
	Valid bool
}

func Defined(v float64) Probability {
	return Probability{Value: v, Valid: true}
}

func Undefined() Probability {
	return Probability{}
}

// Greater reports whether p outranks other. Any defined probability
// outranks an undefined one.
func (p Probability) Greater(other Probability) bool {
	if p.Valid != other.Valid {
		return p.Valid
	}
	return p.Value > other.Value
}

// Implied converts an American price into its implied win probability.
// Negative prices risk |price| to win 100; positive prices win price on
// a 100 stake. A price of zero is undefined.
func Implied(price int) Probability {
	switch {
	case price < 0:
		risked := float64(-price)
		return Defined(risked / (risked + 100))
	case price > 0:
		return Defined(100 / (float64(price) + 100))
	default:
		return Undefined()
	}
}

// Devig rescales a two-sided pair of raw implied probabilities so they
// sum to exactly 1.0, removing the bookmaker margin. If either side is
// undefined the pair cannot be adjusted and both results are undefined.
func Devig(over, under Probability) (Probability, Probability) {
	if !over.Valid || !under.Valid {
		return Undefined(), Undefined()
	}
	total := over.Value + under.Value
	if total == 0 {
		return Undefined(), Undefined()
	}
	return Defined(over.Value / total), Defined(under.Value / total)
}
