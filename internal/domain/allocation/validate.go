package allocation

import (
	"strings"

	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/diillson/finops-rateio/pkg/money"
)

// ValidateProjects rejeita o conjunto inteiro no primeiro projeto malformado.
func ValidateProjects(projects []entity.ProjectInput) error {
	seen := make(map[string]bool, len(projects))
	for i, p := range projects {
		record := i + 1
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return types.NewInputError("projects", record, "name", types.ErrMissingField)
		}
		if seen[name] {
			return types.NewInputError("projects", record, "name", types.ErrDuplicateProject)
		}
		seen[name] = true

		if p.CeilingOriginal.IsNegative() {
			return types.NewInputError("projects", record, "ceiling_original", types.ErrNegativeAmount)
		}
		if p.PlannedValue.IsNegative() {
			return types.NewInputError("projects", record, "planned_value", types.ErrNegativeAmount)
		}
	}
	return nil
}

// ValidateExpenses exige natureza, título e valor positivo em centavos.
func ValidateExpenses(lines []entity.ExpenseLine) error {
	for i, line := range lines {
		record := i + 1
		if strings.TrimSpace(line.Category) == "" {
			return types.NewInputError("expenses", record, "category", types.ErrMissingField)
		}
		if strings.TrimSpace(line.InvoiceID) == "" {
			return types.NewInputError("expenses", record, "invoice_id", types.ErrMissingField)
		}
		total := money.Round(line.InvoiceTotal)
		if total.IsNegative() {
			return types.NewInputError("expenses", record, "invoice_total", types.ErrNegativeAmount)
		}
		if total.IsZero() {
			return types.NewInputError("expenses", record, "invoice_total", types.ErrNonPositive)
		}
	}
	return nil
}
