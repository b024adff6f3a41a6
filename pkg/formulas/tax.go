package formulas

// CapitalGainsRates holds the long-term and short-term transfer income tax
// scalars in percent. Values come from configuration, not from this package.
type CapitalGainsRates struct {
	LongTermPercent  float64 // holding ≥ 5 years (長期譲渡所得)
	ShortTermPercent float64 // holding < 5 years (短期譲渡所得)
}

// IncomeTax calculates the income tax on annual real-estate income at a flat
// effective rate. Negative taxable income yields zero tax; there is no loss
// carry-back here.
func IncomeTax(taxableIncome float64, effectiveRatePercent float64) float64 {
	if taxableIncome <= 0 || effectiveRatePercent <= 0 {
		return 0
	}
	return taxableIncome * effectiveRatePercent / 100
}

// CapitalGainsTax calculates the tax on a sale gain. The long-term scalar
// applies when the holding period is at least five years, the short-term
// scalar otherwise. Non-positive gains are untaxed.
func CapitalGainsTax(gain float64, holdingYears int, rates CapitalGainsRates) float64 {
	if gain <= 0 {
		return 0
	}

	rate := rates.ShortTermPercent
	if holdingYears >= 5 {
		rate = rates.LongTermPercent
	}
	if rate <= 0 {
		return 0
	}

	return gain * rate / 100
}
