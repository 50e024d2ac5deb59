package allocation

import (
	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/pkg/money"
	"github.com/shopspring/decimal"
)

// invoiceTally é o rascunho de uma linha de despesa: quanto falta ratear e
// quanto do título já foi gravado em projetos.
type invoiceTally struct {
	line      entity.ExpenseLine
	remaining decimal.Decimal
	committed decimal.Decimal
}

func newInvoiceTally(line entity.ExpenseLine) *invoiceTally {
	line.InvoiceTotal = money.Round(line.InvoiceTotal)
	return &invoiceTally{
		line:      line,
		remaining: line.InvoiceTotal,
		committed: decimal.Zero,
	}
}

func (t *invoiceTally) record(amount decimal.Decimal) {
	t.committed = money.Round(t.committed.Add(amount))
	t.remaining = money.Round(t.remaining.Sub(amount))
}

func (t *invoiceTally) pending() bool {
	return t.remaining.IsPositive()
}
