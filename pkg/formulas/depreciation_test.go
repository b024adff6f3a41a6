package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnualDepreciation_WithinLife(t *testing.T) {
	assert.InDelta(t, 500_000, AnnualDepreciation(15_000_000, 30, 1), 1e-6)
	assert.InDelta(t, 500_000, AnnualDepreciation(15_000_000, 30, 30), 1e-6)
}

func TestAnnualDepreciation_PastLifeIsZero(t *testing.T) {
	assert.Equal(t, 0.0, AnnualDepreciation(15_000_000, 30, 31))
}

func TestAnnualDepreciation_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, AnnualDepreciation(0, 30, 1))
	assert.Equal(t, 0.0, AnnualDepreciation(15_000_000, 0, 1))
	assert.Equal(t, 0.0, AnnualDepreciation(15_000_000, 30, 0))
}

func TestAccumulatedDepreciation_CapsAtFullBasis(t *testing.T) {
	assert.InDelta(t, 1_500_000, AccumulatedDepreciation(15_000_000, 30, 3), 1e-6)
	assert.InDelta(t, 15_000_000, AccumulatedDepreciation(15_000_000, 30, 30), 1e-6)
	assert.InDelta(t, 15_000_000, AccumulatedDepreciation(15_000_000, 30, 50), 1e-6)
}
