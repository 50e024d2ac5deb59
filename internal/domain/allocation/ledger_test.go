package allocation_test

import (
	"testing"

	"github.com/diillson/finops-rateio/internal/domain/allocation"
	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T, projects ...entity.ProjectInput) *allocation.Ledger {
	t.Helper()
	l, err := allocation.NewLedger(projects, allocation.FixedFactor(decimal.NewFromInt(1)))
	require.NoError(t, err)
	return l
}

func TestLedger_RankedByAdjustedCeilingWithStableTies(t *testing.T) {
	l := newLedger(t,
		project("First", "500", false),
		project("Biggest", "900", false),
		project("Second", "500", false),
		project("Small", "10", false),
	)

	var names []string
	for _, p := range l.Ranked() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"Biggest", "First", "Second", "Small"}, names)

	names = names[:0]
	for _, p := range l.Projects() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"First", "Biggest", "Second", "Small"}, names)
}

func TestLedger_AdjustedCeilingIsRounded(t *testing.T) {
	l, err := allocation.NewLedger(
		[]entity.ProjectInput{project("A", "1000", false)},
		allocation.FixedFactor(dec("0.987654")),
	)
	require.NoError(t, err)

	p, ok := l.Project("A")
	require.True(t, ok)
	assert.Equal(t, "987.65", p.CeilingAdjusted().StringFixed(2))
	assert.Equal(t, "987.65", p.RemainingCapacity().StringFixed(2))
}

func TestLedger_RejectsDuplicateNames(t *testing.T) {
	_, err := allocation.NewLedger(
		[]entity.ProjectInput{project("A", "1", false), project("A", "2", false)},
		allocation.FixedFactor(decimal.NewFromInt(1)),
	)
	require.ErrorIs(t, err, types.ErrDuplicateProject)
}

func TestProjectLedger_CommitCapsAtInvoiceAllowance(t *testing.T) {
	p, _ := newLedger(t, project("A", "1000", false)).Project("A")
	line := expense("T1", "Material", "50")

	got := p.Commit(dec("100"), line, dec("20"), true)
	assert.Equal(t, "30.00", got.StringFixed(2))

	got = p.Commit(dec("10"), line, dec("50"), true)
	assert.True(t, got.IsZero())
	assert.Len(t, p.Allocations(), 1)
}

func TestProjectLedger_CommitNeverExceedsLockedCeiling(t *testing.T) {
	p, _ := newLedger(t, project("A", "100", false)).Project("A")
	line := expense("T1", "Material", "500")

	got := p.Commit(dec("500"), line, decimal.Zero, false)
	assert.Equal(t, "100.00", got.StringFixed(2))
	assert.False(t, p.ExceededCeiling())

	got = p.Commit(dec("1"), line, dec("100"), false)
	assert.True(t, got.IsZero())
	assert.True(t, p.RemainingCapacity().IsZero())
}

func TestProjectLedger_CommitOverCeilingFlagsExceedable(t *testing.T) {
	p, _ := newLedger(t, project("A", "100", true)).Project("A")
	line := expense("T1", "Material", "500")

	got := p.Commit(dec("80"), line, decimal.Zero, false)
	assert.Equal(t, "80.00", got.StringFixed(2))
	assert.False(t, p.ExceededCeiling(), "still under the ceiling")

	got = p.Commit(dec("40"), line, dec("80"), false)
	assert.Equal(t, "40.00", got.StringFixed(2))
	assert.True(t, p.ExceededCeiling())
	assert.Equal(t, "120.00", p.TotalAllocated().StringFixed(2))
	assert.True(t, p.RemainingCapacity().IsZero())
}

func TestProjectLedger_CommitIgnoresNonPositiveAmounts(t *testing.T) {
	p, _ := newLedger(t, project("A", "100", false)).Project("A")
	line := expense("T1", "Material", "10")

	assert.True(t, p.Commit(decimal.Zero, line, decimal.Zero, true).IsZero())
	assert.True(t, p.Commit(dec("-3"), line, decimal.Zero, true).IsZero())
	assert.True(t, p.Commit(dec("0.004"), line, decimal.Zero, true).IsZero())
	assert.Empty(t, p.Allocations())
}

func TestEligibleProjects_PreservesRankedOrder(t *testing.T) {
	l := newLedger(t,
		project("A", "100", false, "Viagens"),
		project("B", "300", false),
		project("C", "200", false, "Material"),
	)

	var names []string
	for _, p := range allocation.EligibleProjects("Material", l.Ranked()) {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"B", "A"}, names)
	assert.Empty(t, allocation.EligibleProjects("Viagens", []*allocation.ProjectLedger{}))
}
