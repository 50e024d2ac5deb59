package allocation

import (
	"math/rand/v2"

	"github.com/diillson/finops-rateio/internal/domain/entity"
)

// Result é o estado final de um run: o ledger, agora somente leitura, e os
// saldos que não couberam em nenhum projeto.
type Result struct {
	Ledger      *Ledger
	Unallocated []entity.UnallocatedRecord
}

// Option configura um run.
type Option func(*options)

type options struct {
	factors FactorSource
}

// WithFactorSource define a origem dos fatores de teto.
func WithFactorSource(src FactorSource) Option {
	return func(o *options) {
		if src != nil {
			o.factors = src
		}
	}
}

// Allocate valida todo o conjunto de entrada e só então rateia as despesas, uma
// a uma, na ordem recebida. A capacidade dos projetos é compartilhada entre as
// linhas, portanto a ordem das despesas faz parte da entrada.
func Allocate(projects []entity.ProjectInput, lines []entity.ExpenseLine, opts ...Option) (*Result, error) {
	o := options{factors: NewRandomFactors(rand.Uint64())}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ValidateExpenses(lines); err != nil {
		return nil, err
	}
	ledger, err := NewLedger(projects, o.factors)
	if err != nil {
		return nil, err
	}

	orch := &orchestrator{ledger: ledger}
	for _, line := range lines {
		orch.process(line)
	}

	return &Result{Ledger: ledger, Unallocated: orch.unallocated}, nil
}

type orchestrator struct {
	ledger      *Ledger
	unallocated []entity.UnallocatedRecord
}

func (o *orchestrator) process(line entity.ExpenseLine) {
	tally := newInvoiceTally(line)
	if !tally.pending() {
		return
	}

	eligible := EligibleProjects(line.Category, o.ledger.ranked)
	if len(eligible) == 0 {
		o.leave(tally, entity.ReasonCategoryNotPermitted)
		return
	}

	distribute(eligible, tally)
	if tally.pending() {
		spill(eligible, tally)
	}
	if tally.pending() {
		o.leave(tally, entity.ReasonCapacityExhausted)
	}
}

func (o *orchestrator) leave(tally *invoiceTally, reason entity.UnallocatedReason) {
	o.unallocated = append(o.unallocated, entity.UnallocatedRecord{
		Supplier:        tally.line.Supplier,
		Category:        tally.line.Category,
		InvoiceID:       tally.line.InvoiceID,
		AmountRemaining: tally.remaining,
		Reason:          reason,
	})
}
