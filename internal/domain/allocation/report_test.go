package allocation_test

import (
	"testing"

	"github.com/diillson/finops-rateio/internal/domain/allocation"
	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport_Views(t *testing.T) {
	projects := []entity.ProjectInput{
		{Name: "A", CeilingOriginal: dec("600"), PlannedValue: dec("3000")},
		{Name: "B", CeilingOriginal: dec("400"), PlannedValue: dec("1000")},
		{Name: "C", CeilingOriginal: dec("50"), PlannedValue: dec("0"), ExcludedCategories: []string{"Material"}},
	}
	lines := []entity.ExpenseLine{
		expense("T1", "Material", "1000"),
		expense("T2", "Material", "25"),
		expense("T3", "Viagens", "10"),
	}
	res, err := allocation.Allocate(projects, lines, unitFactor())
	require.NoError(t, err)

	report := allocation.BuildReport(res)

	require.Len(t, report.Summary, 3)
	a, b, c := report.Summary[0], report.Summary[1], report.Summary[2]
	assert.Equal(t, "A", a.ProjectName)
	assert.Equal(t, "75.00", a.PlanSharePct.StringFixed(2))
	assert.Equal(t, "20.00", a.CeilingToPlanPct.StringFixed(2))
	assert.Equal(t, "600.00", a.AllocatedThisMonth.StringFixed(2))
	assert.Equal(t, "25.00", b.PlanSharePct.StringFixed(2))
	assert.Equal(t, "40.00", b.CeilingToPlanPct.StringFixed(2))
	assert.Equal(t, "400.00", b.AllocatedThisMonth.StringFixed(2))
	assert.Equal(t, "0.00", c.PlanSharePct.StringFixed(2))
	assert.True(t, c.CeilingToPlanPct.IsZero(), "zero planned value yields zero")
	assert.Equal(t, "10.00", c.AllocatedThisMonth.StringFixed(2))

	assert.Equal(t, "59.41", a.AllocatedSharePct.StringFixed(2))
	assert.Equal(t, "39.60", b.AllocatedSharePct.StringFixed(2))
	assert.Equal(t, "0.99", c.AllocatedSharePct.StringFixed(2))

	require.Len(t, report.Unallocated, 1)
	assert.Equal(t, "T2", report.Unallocated[0].InvoiceID)
	assert.Equal(t, entity.ReasonCapacityExhausted, report.Unallocated[0].Reason)

	assert.Equal(t, "1010.00", report.Totals.Allocated.StringFixed(2))
	assert.Equal(t, "25.00", report.Totals.Unallocated.StringFixed(2))
	assert.Equal(t, "1035.00", report.Totals.InvoiceTotal.StringFixed(2))
	assert.Equal(t, "4000.00", report.Totals.PlanTotal.StringFixed(2))

	for _, rec := range report.Allocated {
		assert.NotEmpty(t, rec.ProjectName)
		assert.True(t, rec.AmountAllocated.IsPositive())
	}
}

func TestBuildReport_IsIdempotent(t *testing.T) {
	res, err := allocation.Allocate(
		[]entity.ProjectInput{project("A", "100", true), project("B", "50", false)},
		[]entity.ExpenseLine{expense("T1", "Material", "400"), expense("T2", "Material", "3.33")},
		unitFactor(),
	)
	require.NoError(t, err)

	require.Equal(t, allocation.BuildReport(res), allocation.BuildReport(res))
}

func TestBuildReport_NothingAllocated(t *testing.T) {
	res, err := allocation.Allocate(
		[]entity.ProjectInput{project("A", "100", false, "Material")},
		[]entity.ExpenseLine{expense("T1", "Material", "40")},
		unitFactor(),
	)
	require.NoError(t, err)

	report := allocation.BuildReport(res)
	require.Len(t, report.Summary, 1)
	assert.True(t, report.Summary[0].AllocatedSharePct.IsZero())
	assert.Empty(t, report.Allocated)
	assert.Equal(t, "40.00", report.Totals.InvoiceTotal.StringFixed(2))
}
