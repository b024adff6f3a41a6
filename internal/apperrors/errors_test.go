package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_EveryCodeHasMessageAndSolution(t *testing.T) {
	codes := []Code{
		CodeRequiredFieldMissing, CodeOutOfRange, CodeBadFormat,
		CodeHTMLDetected, CodeURLInvalid, CodeImageTooLarge, CodeStringTooLong,
		CodeDivisionByZero, CodeInvalidParameter, CodeOverflow,
		CodeNegativeValue, CodeLoanCalculation, CodeIRRNotConverged,
		CodeTaxCalculation, CodeDepreciation,
		CodeGeneral, CodeTimeout, CodeMemory, CodeDependency,
		CodeUnauthorized, CodeForbidden, CodeMethodNotAllowed,
	}

	for _, code := range codes {
		assert.NotEmpty(t, Message(code), "code %s has no message", code)
		assert.NotEmpty(t, Solution(code), "code %s has no solution", code)
	}
}

func TestMessage_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, Message(CodeGeneral), Message(Code("9999")))
	assert.Equal(t, Solution(CodeGeneral), Solution(Code("9999")))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(CodeGeneral, cause)
	assert.ErrorIs(t, err, cause)
}

func TestValidationErrors_JoinsMessages(t *testing.T) {
	errs := ValidationErrors{
		{Code: CodeRequiredFieldMissing, Field: "purchase_price", Message: Message(CodeRequiredFieldMissing)},
		{Code: CodeOutOfRange, Field: "vacancy_rate", Message: Message(CodeOutOfRange)},
	}
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs.Error(), "purchase_price")
	assert.Contains(t, errs.Error(), "vacancy_rate")

	assert.False(t, ValidationErrors{}.HasErrors())
}

func TestWriteError_ValidationBundle(t *testing.T) {
	errs := ValidationErrors{
		{Code: CodeRequiredFieldMissing, Field: "purchase_price", Message: Message(CodeRequiredFieldMissing)},
		{Code: CodeOutOfRange, Field: "vacancy_rate", Message: Message(CodeOutOfRange), Value: "150"},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/simulation/run", nil)
	WriteError(w, r, errs, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// First failing field is promoted to the top level
	assert.Equal(t, CodeRequiredFieldMissing, resp.ErrorCode)
	assert.Equal(t, "purchase_price", resp.Field)
	assert.Len(t, resp.Errors, 2)
	assert.NotEmpty(t, resp.RequestID)
}

func TestWriteError_AppErrorDetailGatedByDevMode(t *testing.T) {
	err := Wrap(CodeOverflow, fmt.Errorf("NaN in cash flow table"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	WriteError(w, r, err, false)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeOverflow, resp.ErrorCode)
	assert.Empty(t, resp.Detail, "raw cause must not leak in production")

	w = httptest.NewRecorder()
	WriteError(w, r, err, true)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NaN in cash flow table", resp.Detail)
}

func TestWriteError_UnknownErrorIsGeneral(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(w, r, errors.New("boom"), false)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeGeneral, resp.ErrorCode)
	assert.Empty(t, resp.Detail)
	assert.NotEmpty(t, resp.RequestID)
}

func TestHTTPStatus_CodeFamilies(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeRequiredFieldMissing, http.StatusBadRequest},
		{CodeOutOfRange, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeOverflow, http.StatusInternalServerError},
		{CodeGeneral, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			WriteCode(w, r, tt.code)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
