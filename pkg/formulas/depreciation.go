package formulas

// AnnualDepreciation calculates straight-line depreciation for one year.
//
// Args:
//
//	assetPrice: Depreciable basis in yen
//	lifeYears: Useful life in years
//	year: 1-based year index
//
// Returns:
//
//	assetPrice / lifeYears while year ≤ lifeYears, else 0
func AnnualDepreciation(assetPrice float64, lifeYears int, year int) float64 {
	if assetPrice <= 0 || lifeYears <= 0 || year < 1 || year > lifeYears {
		return 0
	}
	return assetPrice / float64(lifeYears)
}

// AccumulatedDepreciation sums straight-line depreciation through year k.
func AccumulatedDepreciation(assetPrice float64, lifeYears int, k int) float64 {
	if assetPrice <= 0 || lifeYears <= 0 || k < 1 {
		return 0
	}
	if k > lifeYears {
		k = lifeYears
	}
	return assetPrice / float64(lifeYears) * float64(k)
}
