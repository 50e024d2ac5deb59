package allocation_test

import (
	"testing"

	"github.com/diillson/finops-rateio/internal/domain/allocation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomFactors_StayInRangeAndRepeatPerSeed(t *testing.T) {
	a := allocation.NewRandomFactors(99)
	b := allocation.NewRandomFactors(99)
	require.Equal(t, uint64(99), a.Seed())

	for i := 0; i < 500; i++ {
		fa, fb := a.Factor("x"), b.Factor("x")
		require.True(t, fa.Equal(fb))
		require.True(t, fa.GreaterThanOrEqual(allocation.FactorMin), fa.String())
		require.True(t, fa.LessThan(allocation.FactorMax), fa.String())
	}
}

func TestRandomFactors_DifferentSeedsDiverge(t *testing.T) {
	a := allocation.NewRandomFactors(1)
	b := allocation.NewRandomFactors(2)
	assert.False(t, a.Factor("x").Equal(b.Factor("x")))
}

func TestFactorTable_FallsBack(t *testing.T) {
	table := allocation.FactorTable{
		Factors:  map[string]decimal.Decimal{"A": dec("0.99")},
		Fallback: allocation.FixedFactor(dec("0.985")),
	}
	assert.Equal(t, "0.99", table.Factor("A").String())
	assert.Equal(t, "0.985", table.Factor("B").String())

	assert.True(t, allocation.FactorTable{}.Factor("A").IsZero())
}
