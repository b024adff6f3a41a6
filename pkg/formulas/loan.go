package formulas

import "math"

// LoanType selects the amortisation method.
type LoanType string

const (
	// LoanTypeEqualPayment is 元利均等: constant total payment each month.
	LoanTypeEqualPayment LoanType = "元利均等"
	// LoanTypeEqualPrincipal is 元金均等: constant principal each month.
	LoanTypeEqualPrincipal LoanType = "元金均等"
)

// MonthlyPayment calculates the level monthly payment for a 元利均等 loan.
//
// Args:
//
//	principal: Loan principal in yen
//	annualRate: Annual interest rate in percent (e.g., 2.0 for 2%)
//	years: Loan term in years
//
// Returns:
//
//	Monthly payment in yen, or 0 for degenerate inputs (zero term or principal)
func MonthlyPayment(principal float64, annualRate float64, years int) float64 {
	if years <= 0 || principal <= 0 {
		return 0
	}

	n := float64(years * 12)
	m := annualRate / 12 / 100

	// Zero-rate limit: straight division, no NaN
	if m == 0 {
		return principal / n
	}

	return principal * m / (1 - math.Pow(1+m, -n))
}

// AnnualPayment calculates the total debt service for a given year of the loan.
// For 元利均等 the payment is identical every year; for 元金均等 it tapers as
// the interest component shrinks.
//
// year is 1-based. Years past the loan term return 0.
func AnnualPayment(principal float64, annualRate float64, years int, year int, loanType LoanType) float64 {
	if years <= 0 || principal <= 0 || year < 1 || year > years {
		return 0
	}

	if loanType == LoanTypeEqualPrincipal {
		return equalPrincipalYearPayment(principal, annualRate, years, year)
	}

	return MonthlyPayment(principal, annualRate, years) * 12
}

// equalPrincipalYearPayment sums the 12 monthly payments of the given year
// for a 元金均等 loan. Interest each month accrues on the remaining balance.
func equalPrincipalYearPayment(principal float64, annualRate float64, years int, year int) float64 {
	n := years * 12
	monthlyPrincipal := principal / float64(n)
	m := annualRate / 12 / 100

	var total float64
	for t := (year-1)*12 + 1; t <= year*12; t++ {
		remaining := principal - monthlyPrincipal*float64(t-1)
		total += monthlyPrincipal + remaining*m
	}

	return total
}

// RemainingBalance calculates the outstanding principal at the end of year k.
//
// 元利均等 uses the closed form P(1+m)^(12k) − A·((1+m)^(12k)−1)/m; 元金均等
// subtracts the constant principal repaid so far. k ≥ years clamps to 0 and
// k ≤ 0 returns the full principal.
func RemainingBalance(principal float64, annualRate float64, years int, k int, loanType LoanType) float64 {
	if years <= 0 || principal <= 0 {
		return 0
	}
	if k <= 0 {
		return principal
	}
	if k >= years {
		return 0
	}

	if loanType == LoanTypeEqualPrincipal {
		monthlyPrincipal := principal / float64(years*12)
		return principal - monthlyPrincipal*float64(k*12)
	}

	m := annualRate / 12 / 100
	if m == 0 {
		return principal * (1 - float64(k)/float64(years))
	}

	payment := MonthlyPayment(principal, annualRate, years)
	factor := math.Pow(1+m, float64(k*12))
	balance := principal*factor - payment*(factor-1)/m

	if balance < 0 {
		return 0
	}
	return balance
}
