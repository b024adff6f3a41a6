package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fudosan-media/invest-simulator/internal/config"
	"github.com/fudosan-media/invest-simulator/pkg/formulas"
)

func runResults(t *testing.T, p *PropertyInput, rates config.Rates) Results {
	t.Helper()
	rows := buildTable(p, rates)
	require.NotEmpty(t, rows)
	return computeResults(p, rows, rates)
}

func TestComputeResults_GrossYieldAndNOI(t *testing.T) {
	results := runResults(t, baseInput(), config.DefaultRates())

	assert.InDelta(t, 6.0, results.GrossYield, 1e-9)
	assert.InDelta(t, 1_004_000, results.NOI, 1e-6)
}

func TestComputeResults_DSCR(t *testing.T) {
	p := baseInput()
	results := runResults(t, p, config.DefaultRates())

	annualPayment := formulas.AnnualPayment(p.LoanAmount, p.InterestRate, p.LoanYears, 1, p.LoanType)
	require.NotNil(t, results.DSCR)
	assert.InDelta(t, 1_004_000/annualPayment, *results.DSCR, 1e-9)
	assert.InDelta(t, annualPayment, results.AnnualLoanPayment, 1e-6)
}

func TestComputeResults_DSCRNilWithoutDebtService(t *testing.T) {
	p := baseInput()
	p.LoanAmount = 10_000_000
	p.InterestRate = 0
	p.LoanYears = 0
	results := runResults(t, p, config.DefaultRates())

	assert.Nil(t, results.DSCR)
	assert.Zero(t, results.AnnualLoanPayment)
}

func TestComputeResults_LTVPurchasePriceFallback(t *testing.T) {
	results := runResults(t, baseInput(), config.DefaultRates())

	require.NotNil(t, results.LTV)
	assert.InDelta(t, 80.0, *results.LTV, 1e-9)
	assert.Equal(t, LTVMethodPurchasePrice, results.LTVMethod)
}

func TestComputeResults_LTVAssessedWhenConfigured(t *testing.T) {
	p := baseInput()
	p.LandArea = 100
	p.RoadPrice = 150_000
	p.BuildingArea = 80

	rates := config.DefaultRates()
	rates.BuildingUnitAssessedPrice = 100_000

	results := runResults(t, p, rates)

	// 100*150,000 + 80*100,000 = 23,000,000 assessed
	require.NotNil(t, results.LTV)
	assert.InDelta(t, 16_000_000.0/23_000_000.0*100, *results.LTV, 1e-9)
	assert.Equal(t, LTVMethodAssessed, results.LTVMethod)
}

func TestComputeResults_EquityRatios(t *testing.T) {
	p := baseInput()
	rows := buildTable(p, config.DefaultRates())
	results := computeResults(p, rows, config.DefaultRates())

	// Equity = 20M - 16M
	assert.InDelta(t, 4_000_000, results.Equity, 1e-6)

	require.NotNil(t, results.CCRFirstYear)
	assert.InDelta(t, rows[0].OperatingCF/4_000_000*100, *results.CCRFirstYear, 1e-9)

	var sum float64
	for _, row := range rows {
		sum += row.OperatingCF
	}
	mean := sum / float64(len(rows))

	require.NotNil(t, results.CCRFullPeriod)
	assert.InDelta(t, mean/4_000_000*100, *results.CCRFullPeriod, 1e-6)

	// ROI divides by total capital in, loan-agnostic
	require.NotNil(t, results.ROIFirstYear)
	assert.InDelta(t, rows[0].OperatingCF/20_000_000*100, *results.ROIFirstYear, 1e-9)
	require.NotNil(t, results.ROIFullPeriod)
	assert.InDelta(t, mean/20_000_000*100, *results.ROIFullPeriod, 1e-6)
}

func TestComputeResults_NonPositiveEquityNullsRatios(t *testing.T) {
	p := baseInput()
	p.LoanAmount = 25_000_000 // over-loan
	results := runResults(t, p, config.DefaultRates())

	assert.Negative(t, results.Equity)
	assert.Nil(t, results.CCRFirstYear)
	assert.Nil(t, results.CCRFullPeriod)
	assert.Nil(t, results.ROIFirstYear)
	assert.Nil(t, results.ROIFullPeriod)

	// Debt-side metrics survive the equity guard
	assert.NotNil(t, results.DSCR)
	assert.NotNil(t, results.LTV)
}

func TestComputeResults_IRRReflectsHolding(t *testing.T) {
	p := baseInput()
	expected := 22_000_000.0
	p.ExpectedSalePrice = &expected
	results := runResults(t, p, config.DefaultRates())

	// Positive cash flows plus a sale above the entry price must clear zero
	require.NotNil(t, results.IRR)
	assert.Greater(t, *results.IRR, 0.0)
	assert.Less(t, *results.IRR, 100.0)
}

func TestComputeResults_IRRNilWhenNeverRecovered(t *testing.T) {
	p := baseInput()
	p.LoanAmount = 0
	p.MonthlyRent = 10_000 // deeply cash-negative every year
	p.MarketValue = 0      // and nothing back at exit
	results := runResults(t, p, config.DefaultRates())

	assert.Nil(t, results.IRR)
}

func TestComputeResults_SaleFieldsComeFromFinalYear(t *testing.T) {
	p := baseInput()
	rates := config.DefaultRates()
	rows := buildTable(p, rates)
	results := computeResults(p, rows, rates)

	last := rows[len(rows)-1]
	assert.Equal(t, last.SalePrice, results.SalePrice)
	assert.Equal(t, last.RemainingLoan, results.RemainingDebt)
	assert.Equal(t, last.SaleCost, results.SaleCost)
	assert.Equal(t, last.NetSaleProceeds, results.SaleProfit)
}
