package simulation

import (
	"math"

	"github.com/fudosan-media/invest-simulator/internal/config"
	"github.com/fudosan-media/invest-simulator/pkg/formulas"
)

// buildTable produces one YearRow per holding year, in strictly increasing
// year order. All arithmetic is in yen. Exit fields are populated on every
// row so each row self-describes a sale at the end of that year.
func buildTable(p *PropertyInput, rates config.Rates) []YearRow {
	rows := make([]YearRow, 0, p.HoldingYears)

	// Fixed cash expenses do not scale with rent
	expenses := 12*(p.ManagementFee+p.FixedCost) + p.PropertyTax

	var cumulativeCF float64
	var accumulatedDep float64

	for y := 1; y <= p.HoldingYears; y++ {
		grossRent := p.MonthlyRent * 12 * math.Pow(1-p.RentDecline/100, float64(y-1))
		effectiveRent := grossRent * (1 - p.VacancyRate/100)

		depreciation := p.depreciationForYear(y)
		accumulatedDep += depreciation

		taxableIncome := effectiveRent - expenses - depreciation
		tax := formulas.IncomeTax(taxableIncome, p.EffectiveTaxRate)

		debtService := formulas.AnnualPayment(p.LoanAmount, p.InterestRate, p.LoanYears, y, p.LoanType)

		var majorRepair float64
		if p.MajorRepairCycle > 0 && y%p.MajorRepairCycle == 0 {
			majorRepair = p.MajorRepairCost
		}

		// Acquisition renovation is a one-off year-1 outflow, distinct from
		// the recurring repair cycle
		var initialRenovation float64
		if y == 1 {
			initialRenovation = p.RenovationCost
		}

		operatingCF := effectiveRent - expenses - debtService - tax - majorRepair - initialRenovation
		cumulativeCF += operatingCF

		row := YearRow{
			Year:              y,
			GrossRent:         grossRent,
			EffectiveRent:     effectiveRent,
			Expenses:          expenses,
			Depreciation:      depreciation,
			TaxableIncome:     taxableIncome,
			Tax:               tax,
			DebtService:       debtService,
			MajorRepair:       majorRepair,
			InitialRenovation: initialRenovation,
			OperatingCF:       operatingCF,
			CumulativeCF:      cumulativeCF,
		}

		noi := effectiveRent - expenses
		applyExit(&row, p, rates, noi, accumulatedDep)

		rows = append(rows, row)
	}

	return rows
}

// depreciationForYear sums the building and renovation straight-line charges
// for the given year. Renovation capex follows the building schedule unless
// it has its own life.
func (p *PropertyInput) depreciationForYear(y int) float64 {
	dep := formulas.AnnualDepreciation(p.BuildingPrice, p.DepreciationYears, y)

	if p.RenovationCost > 0 {
		life := p.RenovationLife
		if life == 0 {
			life = p.DepreciationYears
		}
		dep += formulas.AnnualDepreciation(p.RenovationCost, life, y)
	}

	return dep
}
