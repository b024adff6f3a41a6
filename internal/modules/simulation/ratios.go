package simulation

import (
	"github.com/fudosan-media/invest-simulator/internal/config"
	"github.com/fudosan-media/invest-simulator/pkg/formulas"
)

// computeResults derives the flat metric map from the finished cash-flow
// table. The table must be complete and year-ordered; ratios never read a
// partial table. Ratios with zero or non-positive denominators are nil.
func computeResults(p *PropertyInput, rows []YearRow, rates config.Rates) Results {
	first := rows[0]
	last := rows[len(rows)-1]

	results := Results{
		NOI:               first.EffectiveRent - first.Expenses,
		Equity:            p.Equity(),
		AnnualLoanPayment: first.DebtService,
		SalePrice:         last.SalePrice,
		RemainingDebt:     last.RemainingLoan,
		SaleCost:          last.SaleCost,
		SaleProfit:        last.NetSaleProceeds,
	}

	// Gross yield on year-1 gross rent; purchase price is validated > 0
	results.GrossYield = first.GrossRent / p.PurchasePrice * 100

	if first.DebtService > 0 {
		dscr := results.NOI / first.DebtService
		results.DSCR = &dscr
	}

	results.LTV, results.LTVMethod = loanToValue(p, rates)

	operatingCFs := make([]float64, len(rows))
	for i, row := range rows {
		operatingCFs[i] = row.OperatingCF
	}
	meanCF := formulas.Mean(operatingCFs)

	if results.Equity > 0 {
		ccrFirst := first.OperatingCF / results.Equity * 100
		ccrFull := meanCF / results.Equity * 100
		results.CCRFirstYear = &ccrFirst
		results.CCRFullPeriod = &ccrFull

		if capital := p.TotalCapitalIn(); capital > 0 {
			roiFirst := first.OperatingCF / capital * 100
			roiFull := meanCF / capital * 100
			results.ROIFirstYear = &roiFirst
			results.ROIFullPeriod = &roiFull
		}
	}

	results.IRR = internalRateOfReturn(results.Equity, rows, rates)

	return results
}

// loanToValue computes LTV against the assessed land+building value when the
// config carries a building unit price, falling back to the purchase price
// otherwise. The method used is always reported next to the ratio.
func loanToValue(p *PropertyInput, rates config.Rates) (*float64, string) {
	if rates.BuildingUnitAssessedPrice > 0 {
		landValue := p.LandArea * p.RoadPrice
		buildingValue := p.BuildingArea * rates.BuildingUnitAssessedPrice
		if assessed := landValue + buildingValue; assessed > 0 {
			ltv := p.LoanAmount / assessed * 100
			return &ltv, LTVMethodAssessed
		}
	}

	if p.PurchasePrice > 0 {
		ltv := p.LoanAmount / p.PurchasePrice * 100
		return &ltv, LTVMethodPurchasePrice
	}

	return nil, LTVMethodPurchasePrice
}

// internalRateOfReturn solves the IRR of the full holding: equity out at
// time 0, operating cash flows each year, sale proceeds added to the final
// year. Nil when the solver finds no root in its bracket.
func internalRateOfReturn(equity float64, rows []YearRow, rates config.Rates) *float64 {
	flows := make([]float64, 0, len(rows)+1)
	flows = append(flows, -equity)
	for i, row := range rows {
		cf := row.OperatingCF
		if i == len(rows)-1 {
			cf += row.NetSaleProceeds
		}
		flows = append(flows, cf)
	}

	irr := formulas.IRR(flows, rates.IRRMaxIterations, rates.IRRToleranceYen)
	if irr == nil {
		return nil
	}

	percent := *irr * 100
	return &percent
}
