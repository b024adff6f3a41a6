package simulation

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fudosan-media/invest-simulator/internal/apperrors"
)

// maxImageBytes bounds the property image after base64 decoding.
const maxImageBytes = 5 * 1024 * 1024

// fieldAliases is the authoritative camelCase → snake_case mapping. The web
// form posts snake_case, the Next.js frontend posts camelCase; both fold to
// the canonical names below. This table is the only place the translation
// lives.
var fieldAliases = map[string]string{
	"propertyName":      "property_name",
	"propertyUrl":       "property_url",
	"propertyImage":     "property_image",
	"purchasePrice":     "purchase_price",
	"marketValue":       "market_value",
	"expectedSalePrice": "expected_sale_price",
	"landArea":          "land_area",
	"buildingArea":      "building_area",
	"roadPrice":         "road_price",
	"buildingPrice":     "building_price",
	"buildingYear":      "building_year",
	"buildingStructure": "building_structure",
	"depreciationYears": "depreciation_years",
	"monthlyRent":       "monthly_rent",
	"vacancyRate":       "vacancy_rate",
	"rentDecline":       "rent_decline",
	"managementFee":     "management_fee",
	"fixedCost":         "fixed_cost",
	"propertyTax":       "property_tax",
	"loanAmount":        "loan_amount",
	"interestRate":      "interest_rate",
	"loanYears":         "loan_years",
	"loanType":          "loan_type",
	"otherCosts":        "other_costs",
	"renovationCost":    "renovation_cost",
	"renovationLife":    "renovation_life",
	"majorRepairCycle":  "major_repair_cycle",
	"majorRepairCost":   "major_repair_cost",
	"holdingYears":      "holding_years",
	"exitCapRate":       "exit_cap_rate",
	"priceDeclineRate":  "price_decline_rate",
	"effectiveTaxRate":  "effective_tax_rate",
	"saleCostRate":      "sale_cost_rate",
	"ownershipType":     "ownership_type",
}

// knownFields is the set of canonical field names.
var knownFields = buildKnownFields()

func buildKnownFields() map[string]bool {
	known := map[string]bool{
		"location": true,
		"memo":     true,
	}
	for _, canonical := range fieldAliases {
		known[canonical] = true
	}
	return known
}

// canonicalKey folds a payload key to its snake_case canonical form. The
// second return reports whether the key belongs to the contract at all.
func canonicalKey(key string) (string, bool) {
	if knownFields[key] {
		return key, true
	}
	if canonical, ok := fieldAliases[key]; ok {
		return canonical, true
	}
	return key, false
}

// decodedInput carries request-unit values between decoding and validation.
// Monetary amounts stay in the units the form uses (10k-yen for prices and
// rents, yen for fees and taxes) until build() converts them.
type decodedInput struct {
	propertyName  string
	location      string
	propertyURL   string
	memo          string
	propertyImage string

	purchasePrice     float64  // 10k-yen
	marketValue       float64  // 10k-yen
	expectedSalePrice *float64 // 10k-yen, nil = not provided
	landArea          float64
	buildingArea      float64
	roadPrice         float64 // yen/㎡
	buildingPrice     float64 // 10k-yen

	buildingYear      int
	buildingStructure string
	depreciationYears int

	monthlyRent float64 // 10k-yen/month
	vacancyRate float64
	rentDecline float64

	managementFee float64 // yen/month
	fixedCost     float64 // yen/month
	propertyTax   float64 // yen/yr

	loanAmount   float64 // 10k-yen
	interestRate float64
	loanYears    int
	loanType     string

	otherCosts       float64 // 10k-yen
	renovationCost   float64 // 10k-yen
	renovationLife   int
	majorRepairCycle int
	majorRepairCost  float64 // 10k-yen

	holdingYears     int
	exitCapRate      float64
	priceDeclineRate float64
	effectiveTaxRate float64
	saleCostRate     *float64 // %, nil = config default
	ownershipType    string
}

// decodePayload parses the raw JSON body into a decodedInput, folding key
// case and coercing blank numerics to zero. Unknown keys are ignored for
// forward compatibility unless strict mode rejects them. Type-level problems
// are collected, not short-circuited.
func decodePayload(data []byte, strict bool) (*decodedInput, apperrors.ValidationErrors, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeBadFormat, err)
	}

	fields := make(map[string]json.RawMessage, len(raw))
	var errs apperrors.ValidationErrors

	for key, value := range raw {
		canonical, ok := canonicalKey(key)
		if !ok {
			if strict {
				errs = append(errs, apperrors.ValidationError{
					Code:    apperrors.CodeBadFormat,
					Field:   key,
					Message: apperrors.Message(apperrors.CodeBadFormat),
				})
			}
			continue
		}
		fields[canonical] = value
	}

	d := &decodedInput{}

	numbers := map[string]*float64{
		"purchase_price":     &d.purchasePrice,
		"market_value":       &d.marketValue,
		"land_area":          &d.landArea,
		"building_area":      &d.buildingArea,
		"road_price":         &d.roadPrice,
		"building_price":     &d.buildingPrice,
		"monthly_rent":       &d.monthlyRent,
		"vacancy_rate":       &d.vacancyRate,
		"rent_decline":       &d.rentDecline,
		"management_fee":     &d.managementFee,
		"fixed_cost":         &d.fixedCost,
		"property_tax":       &d.propertyTax,
		"loan_amount":        &d.loanAmount,
		"interest_rate":      &d.interestRate,
		"other_costs":        &d.otherCosts,
		"renovation_cost":    &d.renovationCost,
		"major_repair_cost":  &d.majorRepairCost,
		"exit_cap_rate":      &d.exitCapRate,
		"price_decline_rate": &d.priceDeclineRate,
		"effective_tax_rate": &d.effectiveTaxRate,
	}
	for field, dst := range numbers {
		if raw, ok := fields[field]; ok {
			value, err := numberValue(raw)
			if err != nil {
				errs = append(errs, badFormat(field))
				continue
			}
			*dst = value
		}
	}

	integers := map[string]*int{
		"building_year":      &d.buildingYear,
		"depreciation_years": &d.depreciationYears,
		"loan_years":         &d.loanYears,
		"renovation_life":    &d.renovationLife,
		"major_repair_cycle": &d.majorRepairCycle,
		"holding_years":      &d.holdingYears,
	}
	for field, dst := range integers {
		if raw, ok := fields[field]; ok {
			value, err := numberValue(raw)
			if err != nil {
				errs = append(errs, badFormat(field))
				continue
			}
			*dst = int(value)
		}
	}

	optionals := map[string]**float64{
		"expected_sale_price": &d.expectedSalePrice,
		"sale_cost_rate":      &d.saleCostRate,
	}
	for field, dst := range optionals {
		if raw, ok := fields[field]; ok {
			value, present, err := optionalNumberValue(raw)
			if err != nil {
				errs = append(errs, badFormat(field))
				continue
			}
			if present {
				*dst = &value
			}
		}
	}

	texts := map[string]*string{
		"property_name":      &d.propertyName,
		"location":           &d.location,
		"property_url":       &d.propertyURL,
		"memo":               &d.memo,
		"property_image":     &d.propertyImage,
		"building_structure": &d.buildingStructure,
		"loan_type":          &d.loanType,
		"ownership_type":     &d.ownershipType,
	}
	for field, dst := range texts {
		if raw, ok := fields[field]; ok {
			value, err := stringValue(raw)
			if err != nil {
				errs = append(errs, badFormat(field))
				continue
			}
			*dst = value
		}
	}

	return d, errs, nil
}

// numberValue decodes a numeric JSON value with the web form's "blank means
// zero" semantics: null, "", and whitespace-only strings coerce to 0.
// Numeric strings are accepted because HTML forms post everything as text.
func numberValue(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}

	if string(raw) == "null" {
		return 0, nil
	}

	return 0, apperrors.New(apperrors.CodeBadFormat)
}

// optionalNumberValue is numberValue for nullable fields: blanks and nulls
// mean "not provided" rather than zero.
func optionalNumberValue(raw json.RawMessage) (float64, bool, error) {
	if string(raw) == "null" {
		return 0, false, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) == "" {
		return 0, false, nil
	}

	value, err := numberValue(raw)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// stringValue decodes a JSON string; null becomes "". Numbers posted into
// text fields are stringified rather than rejected.
func stringValue(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	if string(raw) == "null" {
		return "", nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}

	return "", apperrors.New(apperrors.CodeBadFormat)
}

func badFormat(field string) apperrors.ValidationError {
	return apperrors.ValidationError{
		Code:    apperrors.CodeBadFormat,
		Field:   field,
		Message: apperrors.Message(apperrors.CodeBadFormat),
	}
}

// decodeImage validates the optional base64 image payload. A data-URI prefix
// is tolerated and stripped before decoding.
func decodeImage(payload string) (int, *apperrors.ValidationError) {
	if payload == "" {
		return 0, nil
	}

	if idx := strings.Index(payload, ";base64,"); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		e := badFormat("property_image")
		return 0, &e
	}

	if len(decoded) > maxImageBytes {
		return len(decoded), &apperrors.ValidationError{
			Code:    apperrors.CodeImageTooLarge,
			Field:   "property_image",
			Message: apperrors.Message(apperrors.CodeImageTooLarge),
		}
	}

	return len(decoded), nil
}
