package allocation

import (
	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/pkg/money"
	"github.com/shopspring/decimal"
)

// BuildReport projeta o estado final do ledger nas três visões da memória de
// cálculo. Não altera o resultado; chamadas repetidas produzem o mesmo relatório.
// Os metadados do run (Report.Run) ficam a cargo de quem chama.
func BuildReport(res *Result) entity.Report {
	projects := res.Ledger.Projects()

	report := entity.Report{
		Allocated:   []entity.AllocationRecord{},
		Unallocated: make([]entity.UnallocatedRecord, len(res.Unallocated)),
		Summary:     make([]entity.ProjectSummary, 0, len(projects)),
	}
	copy(report.Unallocated, res.Unallocated)

	planTotal := decimal.Zero
	grandAllocated := decimal.Zero
	allocatedBy := make([]decimal.Decimal, len(projects))
	for i, p := range projects {
		planTotal = planTotal.Add(p.PlannedValue())

		sum := decimal.Zero
		for _, rec := range p.Allocations() {
			report.Allocated = append(report.Allocated, rec)
			sum = sum.Add(rec.AmountAllocated)
		}
		allocatedBy[i] = money.Round(sum)
		grandAllocated = grandAllocated.Add(allocatedBy[i])
	}
	planTotal = money.Round(planTotal)
	grandAllocated = money.Round(grandAllocated)

	for i, p := range projects {
		summary := entity.ProjectSummary{
			ProjectName:        p.Name(),
			PlannedValue:       p.PlannedValue(),
			PlanSharePct:       money.PercentOrZero(p.PlannedValue(), planTotal),
			CeilingOriginal:    p.CeilingOriginal(),
			CeilingFactor:      p.CeilingFactor(),
			CeilingAdjusted:    p.CeilingAdjusted(),
			CeilingToPlanPct:   money.PercentOrZero(p.CeilingOriginal(), p.PlannedValue()),
			AllocatedThisMonth: allocatedBy[i],
			AllocatedSharePct:  money.PercentOrZero(allocatedBy[i], grandAllocated),
			ExceededCeiling:    p.ExceededCeiling(),
		}
		if summary.ExceededCeiling {
			report.Totals.ProjectsOverCeiling++
		}
		report.Summary = append(report.Summary, summary)
	}

	unallocated := decimal.Zero
	for _, u := range res.Unallocated {
		unallocated = unallocated.Add(u.AmountRemaining)
	}

	report.Totals.PlanTotal = planTotal
	report.Totals.Allocated = grandAllocated
	report.Totals.Unallocated = money.Round(unallocated)
	report.Totals.InvoiceTotal = money.Sum(grandAllocated, unallocated)
	return report
}
