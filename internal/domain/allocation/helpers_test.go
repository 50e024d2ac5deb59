package allocation_test

import (
	"github.com/diillson/finops-rateio/internal/domain/allocation"
	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func unitFactor() allocation.Option {
	return allocation.WithFactorSource(allocation.FixedFactor(decimal.NewFromInt(1)))
}

func project(name, ceiling string, canExceed bool, excluded ...string) entity.ProjectInput {
	return entity.ProjectInput{
		Name:               name,
		CeilingOriginal:    dec(ceiling),
		ExcludedCategories: excluded,
		CanExceedCeiling:   canExceed,
		PlannedValue:       dec(ceiling),
	}
}

func expense(invoiceID, category, total string) entity.ExpenseLine {
	return entity.ExpenseLine{
		Supplier:     "Fornecedor " + invoiceID,
		Category:     category,
		InvoiceID:    invoiceID,
		InvoiceTotal: dec(total),
	}
}

func allocatedTo(res *allocation.Result, name string) string {
	p, ok := res.Ledger.Project(name)
	if !ok {
		return "missing"
	}
	return p.TotalAllocated().StringFixed(2)
}
