package simulation

import (
	"math"

	"github.com/fudosan-media/invest-simulator/internal/config"
	"github.com/fudosan-media/invest-simulator/pkg/formulas"
)

// applyExit fills the sale fields of a year row: what selling at the end of
// that year would produce.
//
// Sale price path, in priority order: an explicit expected sale price decayed
// by the price decline rate; a terminal value backed out of that year's NOI
// at the exit cap rate; the market value decayed by the price decline rate.
func applyExit(row *YearRow, p *PropertyInput, rates config.Rates, noi float64, accumulatedDep float64) {
	y := row.Year
	decay := math.Pow(1-p.PriceDeclineRate/100, float64(y-1))

	var salePrice float64
	switch {
	case p.ExpectedSalePrice != nil:
		salePrice = *p.ExpectedSalePrice * decay
	case p.ExitCapRate > 0:
		salePrice = noi / (p.ExitCapRate / 100)
	default:
		salePrice = p.MarketValue * decay
	}
	if salePrice < 0 {
		salePrice = 0
	}

	remainingLoan := formulas.RemainingBalance(p.LoanAmount, p.InterestRate, p.LoanYears, y, p.LoanType)

	saleCostRate := rates.SaleCostRatePercent
	if p.SaleCostRate != nil {
		saleCostRate = *p.SaleCostRate
	}
	saleCost := salePrice * saleCostRate / 100

	// Transfer income: sale proceeds net of transfer costs, against the
	// acquisition basis reduced by depreciation taken so far
	basis := p.PurchasePrice + p.OtherCosts + p.RenovationCost - accumulatedDep
	gain := salePrice - saleCost - basis
	gainsTax := formulas.CapitalGainsTax(gain, y, formulas.CapitalGainsRates{
		LongTermPercent:  rates.LongTermGainsPercent,
		ShortTermPercent: rates.ShortTermGainsPercent,
	})

	row.SalePrice = salePrice
	row.RemainingLoan = remainingLoan
	row.SaleCost = saleCost
	row.NetSaleProceeds = salePrice - remainingLoan - saleCost - gainsTax
	row.CumulativeCFOnSale = row.CumulativeCF + row.NetSaleProceeds
}
