package simulation

import "github.com/fudosan-media/invest-simulator/pkg/formulas"

// Structure is the building construction type. It drives the statutory
// useful-life default when the request omits depreciation years.
type Structure string

const (
	StructureWood  Structure = "wood"
	StructureSteel Structure = "steel"
	StructureRC    Structure = "rc"
	StructureSRC   Structure = "src"
	StructureOther Structure = "other"
)

// Ownership is the holding entity type.
type Ownership string

const (
	OwnershipIndividual Ownership = "個人"
	OwnershipCorporate  Ownership = "法人"
)

// PropertyInput is the validated, canonical simulation request. All monetary
// fields are in yen; 10k-yen request fields are converted exactly once during
// normalisation.
type PropertyInput struct {
	// Identity
	PropertyName string
	Location     string
	PropertyURL  string
	Memo         string

	// Price and sizes
	PurchasePrice     float64  // yen
	MarketValue       float64  // yen
	ExpectedSalePrice *float64 // yen; nil = derive from cap rate or market value
	LandArea          float64  // ㎡
	BuildingArea      float64  // ㎡
	RoadPrice         float64  // yen/㎡
	BuildingPrice     float64  // yen

	// Building
	BuildingYear      int
	BuildingStructure Structure
	DepreciationYears int

	// Revenue
	MonthlyRent float64 // yen/month
	VacancyRate float64 // %
	RentDecline float64 // %/yr, compounding

	// Operating
	ManagementFee float64 // yen/month
	FixedCost     float64 // yen/month
	PropertyTax   float64 // yen/yr, constant over the holding period

	// Financing
	LoanAmount   float64 // yen
	InterestRate float64 // %/yr
	LoanYears    int
	LoanType     formulas.LoanType

	// Capex
	OtherCosts       float64 // yen, acquisition incidentals
	RenovationCost   float64 // yen, year-1 cash outflow
	RenovationLife   int     // years; 0 = depreciate on the building schedule
	MajorRepairCycle int     // years; 0 disables
	MajorRepairCost  float64 // yen

	// Scenario
	HoldingYears     int
	ExitCapRate      float64  // %
	PriceDeclineRate float64  // %/yr
	EffectiveTaxRate float64  // %
	SaleCostRate     *float64 // % override; nil = config default
	OwnershipType    Ownership
}

// Equity is the owner's cash-in at acquisition. It can go non-positive under
// full-loan or over-loan scenarios; equity-denominated ratios are then null.
func (p *PropertyInput) Equity() float64 {
	return p.PurchasePrice + p.OtherCosts + p.RenovationCost - p.LoanAmount
}

// TotalCapitalIn is the ROI denominator: everything paid to acquire and
// ready the property, regardless of how it was financed.
func (p *PropertyInput) TotalCapitalIn() float64 {
	return p.PurchasePrice + p.OtherCosts + p.RenovationCost
}

// YearRow is one holding year of the cash-flow table. Exit fields describe
// what a sale at the end of that year would produce, so every row is
// self-contained. All values in yen.
type YearRow struct {
	Year               int     `json:"year"`
	GrossRent          float64 `json:"gross_rent"`
	EffectiveRent      float64 `json:"effective_rent"`
	Expenses           float64 `json:"expenses"`
	Depreciation       float64 `json:"depreciation"`
	TaxableIncome      float64 `json:"taxable_income"`
	Tax                float64 `json:"tax"`
	DebtService        float64 `json:"debt_service"`
	MajorRepair        float64 `json:"major_repair"`
	InitialRenovation  float64 `json:"initial_renovation"`
	OperatingCF        float64 `json:"operating_cf"`
	CumulativeCF       float64 `json:"cumulative_cf"`
	SalePrice          float64 `json:"sale_price"`
	RemainingLoan      float64 `json:"remaining_loan"`
	SaleCost           float64 `json:"sale_cost"`
	NetSaleProceeds    float64 `json:"net_sale_proceeds"`
	CumulativeCFOnSale float64 `json:"cumulative_cf_on_sale"`
}

// Results is the flat metric map of a simulation. Ratios whose denominator is
// zero or non-positive are nil and serialise as JSON null, never as sentinel
// numbers. Yield, CCR, ROI, IRR and LTV are percentages; DSCR is a multiple.
type Results struct {
	GrossYield        float64  `json:"gross_yield"`
	NOI               float64  `json:"noi"`
	DSCR              *float64 `json:"dscr"`
	LTV               *float64 `json:"ltv"`
	LTVMethod         string   `json:"ltv_method"`
	Equity            float64  `json:"equity"`
	AnnualLoanPayment float64  `json:"annual_loan_payment"`
	CCRFirstYear      *float64 `json:"ccr_first_year"`
	CCRFullPeriod     *float64 `json:"ccr_full_period"`
	ROIFirstYear      *float64 `json:"roi_first_year"`
	ROIFullPeriod     *float64 `json:"roi_full_period"`
	IRR               *float64 `json:"irr"`
	SalePrice         float64  `json:"sale_price"`
	RemainingDebt     float64  `json:"remaining_debt"`
	SaleCost          float64  `json:"sale_cost"`
	SaleProfit        float64  `json:"sale_profit"`
}

// LTV denominator methods reported alongside the ratio.
const (
	LTVMethodAssessed      = "assessed"
	LTVMethodPurchasePrice = "purchase_price"
)

// SimulationResult is the full response payload: the flat metric map plus the
// ordered per-year table.
type SimulationResult struct {
	Results       Results   `json:"results"`
	CashFlowTable []YearRow `json:"cash_flow_table"`
}
