package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectSummary é a linha do resumo por projeto.
type ProjectSummary struct {
	ProjectName        string          `json:"project_name"`
	PlannedValue       decimal.Decimal `json:"planned_value"`
	PlanSharePct       decimal.Decimal `json:"plan_share_pct"`
	CeilingOriginal    decimal.Decimal `json:"ceiling_original"`
	CeilingFactor      decimal.Decimal `json:"ceiling_factor"`
	CeilingAdjusted    decimal.Decimal `json:"ceiling_adjusted"`
	CeilingToPlanPct   decimal.Decimal `json:"ceiling_to_plan_pct"`
	AllocatedThisMonth decimal.Decimal `json:"allocated_this_month"`
	AllocatedSharePct  decimal.Decimal `json:"allocated_share_pct"`
	ExceededCeiling    bool            `json:"exceeded_ceiling"`
}

// ReportTotals consolida os valores do run.
type ReportTotals struct {
	PlanTotal           decimal.Decimal `json:"plan_total"`
	InvoiceTotal        decimal.Decimal `json:"invoice_total"`
	Allocated           decimal.Decimal `json:"allocated"`
	Unallocated         decimal.Decimal `json:"unallocated"`
	ProjectsOverCeiling int             `json:"projects_over_ceiling"`
}

// RunInfo identifica um run para auditoria e reprodução.
type RunInfo struct {
	ID          string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Seed        *uint64   `json:"seed,omitempty"`
}

// Report reúne as três visões da memória de cálculo.
type Report struct {
	Run         RunInfo             `json:"run"`
	Allocated   []AllocationRecord  `json:"allocated"`
	Unallocated []UnallocatedRecord `json:"unallocated"`
	Summary     []ProjectSummary    `json:"summary"`
	Totals      ReportTotals        `json:"totals"`
}
