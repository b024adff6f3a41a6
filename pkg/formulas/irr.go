package formulas

import "math"

// IRR solver bounds. The bracket is intentionally wide: -99% to +100% annual
// return covers every realistic property scenario.
const (
	irrLowerBound = -0.99
	irrUpperBound = 1.00
)

// NPV calculates the net present value of a cash-flow sequence at rate r.
// cashFlows[0] is the time-0 flow (typically -equity) and is not discounted.
func NPV(rate float64, cashFlows []float64) float64 {
	var npv float64
	for i, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(i))
	}
	return npv
}

// IRR solves for the internal rate of return of a cash-flow sequence.
//
// The solver runs Newton's method seeded from the bracket midpoint and falls
// back to plain bisection whenever a Newton step leaves the bracket or the
// derivative vanishes. Convergence is |NPV| < tolerance (1 yen in practice).
//
// Returns nil when the sequence has no sign change inside the bracket or the
// iteration budget is exhausted; callers render nil as "N/A" rather than
// extrapolating.
func IRR(cashFlows []float64, maxIterations int, tolerance float64) *float64 {
	if len(cashFlows) < 2 || maxIterations <= 0 {
		return nil
	}

	lo, hi := irrLowerBound, irrUpperBound
	npvLo := NPV(lo, cashFlows)
	npvHi := NPV(hi, cashFlows)

	// No root bracketed: do not extrapolate
	if npvLo*npvHi > 0 {
		return nil
	}

	r := (lo + hi) / 2
	for i := 0; i < maxIterations; i++ {
		npv := NPV(r, cashFlows)
		if math.Abs(npv) < tolerance {
			return &r
		}

		// Shrink the bracket around the sign change
		if npv*npvLo < 0 {
			hi = r
		} else {
			lo = r
			npvLo = npv
		}

		next := r - npv/npvDerivative(r, cashFlows)
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= lo || next >= hi {
			next = (lo + hi) / 2
		}
		r = next
	}

	return nil
}

// npvDerivative is d(NPV)/dr, used by the Newton step.
func npvDerivative(rate float64, cashFlows []float64) float64 {
	var d float64
	for i := 1; i < len(cashFlows); i++ {
		d -= float64(i) * cashFlows[i] / math.Pow(1+rate, float64(i+1))
	}
	return d
}
