package simulation

import (
	"strconv"
	"time"

	"github.com/fudosan-media/invest-simulator/internal/apperrors"
	"github.com/fudosan-media/invest-simulator/internal/config"
	"github.com/fudosan-media/invest-simulator/pkg/formulas"
)

// Text field length caps, in runes.
const (
	maxPropertyNameLen = 100
	maxLocationLen     = 200
	maxURLLen          = 500
	maxMemoLen         = 2000
)

// Numeric bounds in request units (10k-yen for prices and rents).
const (
	maxPrice10k       = 100000 // 10億円
	maxMonthlyRent10k = 10000
	maxAreaSqm        = 1000000
	maxRoadPriceYen   = 100000000
)

// ParseInput turns a raw request body into a validated canonical
// PropertyInput. Validation problems are collected and returned together as
// apperrors.ValidationErrors; malformed JSON returns a single AppError.
func ParseInput(data []byte, strict bool, now time.Time, rates config.Rates) (*PropertyInput, error) {
	d, errs, err := decodePayload(data, strict)
	if err != nil {
		return nil, err
	}

	errs = append(errs, d.sanitize(strict)...)
	errs = append(errs, d.validate(now)...)
	if errs.HasErrors() {
		return nil, errs
	}

	return d.build(rates), nil
}

// sanitize cleans every text field in place. In strict mode, fields that
// carried markup are reported instead of silently cleaned.
func (d *decodedInput) sanitize(strict bool) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	texts := map[string]*string{
		"property_name": &d.propertyName,
		"location":      &d.location,
		"memo":          &d.memo,
		"property_url":  &d.propertyURL,
	}
	for field, value := range texts {
		if strict && containsHTML(*value) {
			errs = append(errs, apperrors.ValidationError{
				Code:    apperrors.CodeHTMLDetected,
				Field:   field,
				Message: apperrors.Message(apperrors.CodeHTMLDetected),
			})
			continue
		}
		*value = sanitizeText(*value)
	}

	return errs
}

// validate checks bounds, enums, and payload sizes against the request
// contract. All offending fields are reported in one pass.
func (d *decodedInput) validate(now time.Time) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	required := func(field string) {
		errs = append(errs, apperrors.ValidationError{
			Code:    apperrors.CodeRequiredFieldMissing,
			Field:   field,
			Message: apperrors.Message(apperrors.CodeRequiredFieldMissing),
		})
	}
	outOfRange := func(field string, value float64) {
		errs = append(errs, apperrors.ValidationError{
			Code:    apperrors.CodeOutOfRange,
			Field:   field,
			Message: apperrors.Message(apperrors.CodeOutOfRange),
			Value:   strconv.FormatFloat(value, 'f', -1, 64),
		})
	}
	inRange := func(field string, value, lo, hi float64) {
		if value < lo || value > hi {
			outOfRange(field, value)
		}
	}

	// Required scenario anchors. Blank-coerced zeros count as missing, not
	// as out of range, so the form shows the right message.
	if d.purchasePrice == 0 {
		required("purchase_price")
	} else {
		inRange("purchase_price", d.purchasePrice, 1, maxPrice10k)
	}
	if d.holdingYears == 0 {
		required("holding_years")
	} else {
		inRange("holding_years", float64(d.holdingYears), 1, 50)
	}

	inRange("monthly_rent", d.monthlyRent, 0, maxMonthlyRent10k)
	inRange("interest_rate", d.interestRate, 0, 20)
	inRange("loan_years", float64(d.loanYears), 0, 50)
	inRange("loan_amount", d.loanAmount, 0, maxPrice10k)
	inRange("market_value", d.marketValue, 0, maxPrice10k)
	inRange("building_price", d.buildingPrice, 0, maxPrice10k)
	inRange("other_costs", d.otherCosts, 0, maxPrice10k)
	inRange("renovation_cost", d.renovationCost, 0, maxPrice10k)
	inRange("major_repair_cost", d.majorRepairCost, 0, maxPrice10k)
	inRange("vacancy_rate", d.vacancyRate, 0, 100)
	inRange("rent_decline", d.rentDecline, 0, 100)
	inRange("price_decline_rate", d.priceDeclineRate, 0, 100)
	inRange("exit_cap_rate", d.exitCapRate, 0, 100)
	inRange("effective_tax_rate", d.effectiveTaxRate, 0, 60)
	inRange("management_fee", d.managementFee, 0, 10000000)
	inRange("fixed_cost", d.fixedCost, 0, 10000000)
	inRange("property_tax", d.propertyTax, 0, 100000000)
	inRange("land_area", d.landArea, 0, maxAreaSqm)
	inRange("building_area", d.buildingArea, 0, maxAreaSqm)
	inRange("road_price", d.roadPrice, 0, maxRoadPriceYen)
	inRange("major_repair_cycle", float64(d.majorRepairCycle), 0, 50)
	inRange("renovation_life", float64(d.renovationLife), 0, 100)

	if d.depreciationYears != 0 {
		inRange("depreciation_years", float64(d.depreciationYears), 1, 100)
	}
	if d.buildingYear != 0 && d.buildingYear > now.Year() {
		outOfRange("building_year", float64(d.buildingYear))
	}
	if d.expectedSalePrice != nil {
		inRange("expected_sale_price", *d.expectedSalePrice, 0, maxPrice10k)
	}
	if d.saleCostRate != nil {
		inRange("sale_cost_rate", *d.saleCostRate, 0, 100)
	}

	// Text lengths, after sanitisation
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"property_name", d.propertyName, maxPropertyNameLen},
		{"location", d.location, maxLocationLen},
		{"property_url", d.propertyURL, maxURLLen},
		{"memo", d.memo, maxMemoLen},
	}
	for _, l := range lengths {
		if len([]rune(l.value)) > l.max {
			errs = append(errs, apperrors.ValidationError{
				Code:    apperrors.CodeStringTooLong,
				Field:   l.field,
				Message: apperrors.Message(apperrors.CodeStringTooLong),
			})
		}
	}

	if d.propertyURL != "" && !validURLScheme(d.propertyURL) {
		errs = append(errs, apperrors.ValidationError{
			Code:    apperrors.CodeURLInvalid,
			Field:   "property_url",
			Message: apperrors.Message(apperrors.CodeURLInvalid),
		})
	}

	if _, imgErr := decodeImage(d.propertyImage); imgErr != nil {
		errs = append(errs, *imgErr)
	}

	// Enums: absent values take defaults in build(); present values must be
	// recognised.
	if d.buildingStructure != "" && !validStructure(d.buildingStructure) {
		errs = append(errs, badFormat("building_structure"))
	}
	if d.loanType != "" && !validLoanType(d.loanType) {
		errs = append(errs, badFormat("loan_type"))
	}
	if d.ownershipType != "" && !validOwnership(d.ownershipType) {
		errs = append(errs, badFormat("ownership_type"))
	}

	return errs
}

func validStructure(s string) bool {
	switch Structure(s) {
	case StructureWood, StructureSteel, StructureRC, StructureSRC, StructureOther:
		return true
	}
	return false
}

func validLoanType(s string) bool {
	switch formulas.LoanType(s) {
	case formulas.LoanTypeEqualPayment, formulas.LoanTypeEqualPrincipal:
		return true
	}
	return false
}

func validOwnership(s string) bool {
	switch Ownership(s) {
	case OwnershipIndividual, OwnershipCorporate:
		return true
	}
	return false
}

// build converts the validated request-unit values into the canonical
// yen-denominated PropertyInput and fills enum and useful-life defaults.
// 10k-yen fields are multiplied here and nowhere else.
func (d *decodedInput) build(rates config.Rates) *PropertyInput {
	const man = 10000.0

	p := &PropertyInput{
		PropertyName: d.propertyName,
		Location:     d.location,
		PropertyURL:  d.propertyURL,
		Memo:         d.memo,

		PurchasePrice: d.purchasePrice * man,
		MarketValue:   d.marketValue * man,
		LandArea:      d.landArea,
		BuildingArea:  d.buildingArea,
		RoadPrice:     d.roadPrice,
		BuildingPrice: d.buildingPrice * man,

		BuildingYear:      d.buildingYear,
		BuildingStructure: Structure(d.buildingStructure),
		DepreciationYears: d.depreciationYears,

		MonthlyRent: d.monthlyRent * man,
		VacancyRate: d.vacancyRate,
		RentDecline: d.rentDecline,

		ManagementFee: d.managementFee,
		FixedCost:     d.fixedCost,
		PropertyTax:   d.propertyTax,

		LoanAmount:   d.loanAmount * man,
		InterestRate: d.interestRate,
		LoanYears:    d.loanYears,
		LoanType:     formulas.LoanType(d.loanType),

		OtherCosts:       d.otherCosts * man,
		RenovationCost:   d.renovationCost * man,
		RenovationLife:   d.renovationLife,
		MajorRepairCycle: d.majorRepairCycle,
		MajorRepairCost:  d.majorRepairCost * man,

		HoldingYears:     d.holdingYears,
		ExitCapRate:      d.exitCapRate,
		PriceDeclineRate: d.priceDeclineRate,
		EffectiveTaxRate: d.effectiveTaxRate,
		SaleCostRate:     d.saleCostRate,
		OwnershipType:    Ownership(d.ownershipType),
	}

	if d.expectedSalePrice != nil && *d.expectedSalePrice > 0 {
		yen := *d.expectedSalePrice * man
		p.ExpectedSalePrice = &yen
	}

	if p.BuildingStructure == "" {
		p.BuildingStructure = StructureOther
	}
	if p.LoanType == "" {
		p.LoanType = formulas.LoanTypeEqualPayment
	}
	if p.OwnershipType == "" {
		p.OwnershipType = OwnershipIndividual
	}

	// Statutory useful life when the form leaves depreciation years blank
	if p.DepreciationYears == 0 {
		if life, ok := rates.StatutoryLifeYears[string(p.BuildingStructure)]; ok {
			p.DepreciationYears = life
		} else {
			p.DepreciationYears = rates.StatutoryLifeYears["other"]
		}
	}

	return p
}
