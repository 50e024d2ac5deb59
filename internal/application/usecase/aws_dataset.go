package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/diillson/finops-rateio/pkg/money"
)

const periodLayout = "2006-01"

// billingPeriod devolve o intervalo [start, end) do mês pedido. No mês corrente
// o fim é amanhã, como o Cost Explorer espera para dados parciais.
func billingPeriod(period string, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if period != "" {
		parsed, err := time.Parse(periodLayout, period)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q (expected YYYY-MM): %w", period, err)
		}
		start = parsed
	}

	end := start.AddDate(0, 1, 0)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if end.After(tomorrow) {
		end = tomorrow
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("period %s has no billing data yet", start.Format(periodLayout))
	}
	return start, end, nil
}

// loadAWSDataset usa os budgets da conta como projetos e o gasto por serviço
// do período como títulos de despesa.
func (uc *RateioUseCase) loadAWSDataset(ctx context.Context, args *types.CLIArgs, status types.StatusHandle) (*dataset, error) {
	start, end, err := billingPeriod(args.Period, uc.now())
	if err != nil {
		return nil, err
	}

	status.Update(fmt.Sprintf("Fetching budgets for %s...", start.Format(periodLayout)))
	budgets, err := uc.awsRepo.GetBudgets(ctx, args.Profile, start)
	if err != nil {
		return nil, fmt.Errorf("error loading budgets: %w", err)
	}
	projects := budgetsToProjects(budgets, args.OverflowBudgets, args.BudgetExclusions)

	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.Name] = true
	}
	for _, name := range args.OverflowBudgets {
		if !known[name] {
			uc.console.LogWarning("Overflow budget '%s' not found in account; ignored", name)
		}
	}
	for name := range args.BudgetExclusions {
		if !known[name] {
			uc.console.LogWarning("Exclusion references unknown budget '%s'; ignored", name)
		}
	}

	status.Update("Fetching cost by service...")
	costData, err := uc.awsRepo.GetServiceCosts(ctx, args.Profile, start, end, args.Tag)
	if err != nil {
		return nil, fmt.Errorf("error loading service costs: %w", err)
	}

	return &dataset{projects: projects, lines: costsToExpenses(costData, start)}, nil
}

func budgetsToProjects(budgets []entity.BudgetInfo, overflow []string, exclusions map[string][]string) []entity.ProjectInput {
	canExceed := make(map[string]bool, len(overflow))
	for _, name := range overflow {
		canExceed[name] = true
	}

	projects := make([]entity.ProjectInput, 0, len(budgets))
	for _, b := range budgets {
		var excluded []string
		if cats := exclusions[b.Name]; len(cats) > 0 {
			excluded = append(excluded, cats...)
		}
		projects = append(projects, entity.ProjectInput{
			Name:               b.Name,
			CeilingOriginal:    money.FromFloat(b.Limit),
			ExcludedCategories: excluded,
			CanExceedCeiling:   canExceed[b.Name],
			PlannedValue:       money.FromFloat(b.Planned),
		})
	}
	return projects
}

// costsToExpenses gera um título por serviço: fornecedor "AWS <conta>",
// natureza = serviço e número <conta>-<AAAAMM>-<n>.
func costsToExpenses(costData entity.CostData, start time.Time) []entity.ExpenseLine {
	account := costData.AccountID
	if account == "" {
		account = "unknown"
	}
	supplier := "AWS " + account

	lines := make([]entity.ExpenseLine, 0, len(costData.ServiceCosts))
	for _, sc := range costData.ServiceCosts {
		total := money.FromFloat(sc.Cost)
		if !total.IsPositive() {
			continue
		}
		lines = append(lines, entity.ExpenseLine{
			Supplier:     supplier,
			Category:     sc.ServiceName,
			InvoiceID:    fmt.Sprintf("%s-%s-%d", account, start.Format("200601"), len(lines)+1),
			InvoiceTotal: total,
		})
	}
	return lines
}
