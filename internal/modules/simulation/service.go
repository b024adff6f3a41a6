package simulation

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/fudosan-media/invest-simulator/internal/apperrors"
	"github.com/fudosan-media/invest-simulator/internal/config"
)

// Service wires the request contract around the simulation core. It is
// stateless per request; the rates are a frozen value object set at startup.
type Service struct {
	rates  config.Rates
	strict bool
	log    zerolog.Logger
	now    func() time.Time
}

// NewService creates a simulation service
func NewService(rates config.Rates, strict bool, log zerolog.Logger) *Service {
	return &Service{
		rates:  rates,
		strict: strict,
		log:    log.With().Str("service", "simulation").Logger(),
		now:    time.Now,
	}
}

// Run parses, validates, and simulates a raw request payload.
func (s *Service) Run(payload []byte) (*SimulationResult, error) {
	input, err := ParseInput(payload, s.strict, s.now(), s.rates)
	if err != nil {
		return nil, err
	}

	result, err := Simulate(input, s.rates)
	if err != nil {
		s.log.Error().Err(err).Str("property", input.PropertyName).Msg("Simulation failed")
		return nil, err
	}

	return result, nil
}

// Simulate runs the core projection for an already-validated input. It is
// transport-free so tests and other callers can invoke it directly. The
// result is either complete or an error; partial tables are never returned.
func Simulate(p *PropertyInput, rates config.Rates) (*SimulationResult, error) {
	if p.HoldingYears < 1 {
		return nil, apperrors.New(apperrors.CodeInvalidParameter)
	}

	rows := buildTable(p, rates)
	results := computeResults(p, rows, rates)

	// Last-resort guard: the components pre-check their denominators, so a
	// non-finite value here means an input slipped past the contract
	if !finiteRows(rows) || !finiteResults(results) {
		return nil, apperrors.New(apperrors.CodeOverflow)
	}

	return &SimulationResult{
		Results:       results,
		CashFlowTable: rows,
	}, nil
}

func finiteRows(rows []YearRow) bool {
	for _, row := range rows {
		values := []float64{
			row.GrossRent, row.EffectiveRent, row.Expenses, row.Depreciation,
			row.TaxableIncome, row.Tax, row.DebtService, row.OperatingCF,
			row.CumulativeCF, row.SalePrice, row.RemainingLoan, row.SaleCost,
			row.NetSaleProceeds, row.CumulativeCFOnSale,
		}
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

func finiteResults(r Results) bool {
	values := []float64{r.GrossYield, r.NOI, r.Equity, r.AnnualLoanPayment, r.SalePrice, r.RemainingDebt, r.SaleCost, r.SaleProfit}
	for _, p := range []*float64{r.DSCR, r.LTV, r.CCRFirstYear, r.CCRFullPeriod, r.ROIFirstYear, r.ROIFullPeriod, r.IRR} {
		if p != nil {
			values = append(values, *p)
		}
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
