package allocation

import (
	"sort"
	"strings"

	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/diillson/finops-rateio/pkg/money"
	"github.com/shopspring/decimal"
)

// ProjectLedger guarda o estado de rateio de um projeto durante um run.
type ProjectLedger struct {
	name             string
	ceilingOriginal  decimal.Decimal
	ceilingFactor    decimal.Decimal
	ceilingAdjusted  decimal.Decimal
	excluded         map[string]struct{}
	canExceedCeiling bool
	plannedValue     decimal.Decimal

	totalAllocated  decimal.Decimal
	exceededCeiling bool
	allocations     []entity.AllocationRecord
}

func newProjectLedger(in entity.ProjectInput, factor decimal.Decimal) *ProjectLedger {
	excluded := make(map[string]struct{}, len(in.ExcludedCategories))
	for _, c := range in.ExcludedCategories {
		excluded[strings.TrimSpace(c)] = struct{}{}
	}
	ceiling := money.Round(in.CeilingOriginal)
	return &ProjectLedger{
		name:             strings.TrimSpace(in.Name),
		ceilingOriginal:  ceiling,
		ceilingFactor:    factor,
		ceilingAdjusted:  money.Round(ceiling.Mul(factor)),
		excluded:         excluded,
		canExceedCeiling: in.CanExceedCeiling,
		plannedValue:     money.Round(in.PlannedValue),
		totalAllocated:   decimal.Zero,
	}
}

func (p *ProjectLedger) Name() string                     { return p.name }
func (p *ProjectLedger) CeilingOriginal() decimal.Decimal { return p.ceilingOriginal }
func (p *ProjectLedger) CeilingFactor() decimal.Decimal   { return p.ceilingFactor }
func (p *ProjectLedger) CeilingAdjusted() decimal.Decimal { return p.ceilingAdjusted }
func (p *ProjectLedger) CanExceedCeiling() bool           { return p.canExceedCeiling }
func (p *ProjectLedger) PlannedValue() decimal.Decimal    { return p.plannedValue }
func (p *ProjectLedger) TotalAllocated() decimal.Decimal  { return p.totalAllocated }
func (p *ProjectLedger) ExceededCeiling() bool            { return p.exceededCeiling }

// Allocations retorna uma cópia das parcelas atribuídas, na ordem em que foram gravadas.
func (p *ProjectLedger) Allocations() []entity.AllocationRecord {
	out := make([]entity.AllocationRecord, len(p.allocations))
	copy(out, p.allocations)
	return out
}

// RemainingCapacity é max(0, teto ajustado - total rateado).
func (p *ProjectLedger) RemainingCapacity() decimal.Decimal {
	return decimal.Max(decimal.Zero, money.Round(p.ceilingAdjusted.Sub(p.totalAllocated)))
}

// Accepts indica se a natureza não está entre as proibidas do projeto.
func (p *ProjectLedger) Accepts(category string) bool {
	_, excluded := p.excluded[category]
	return !excluded
}

// Commit grava até amount desta despesa no projeto e devolve o valor efetivamente
// gravado. invoiceCommitted é quanto do título já foi rateado em outros projetos;
// a soma nunca passa de InvoiceTotal. Com enforceCeiling, ou quando o projeto não
// pode ultrapassar o teto, o valor é limitado à capacidade restante.
func (p *ProjectLedger) Commit(amount decimal.Decimal, line entity.ExpenseLine, invoiceCommitted decimal.Decimal, enforceCeiling bool) decimal.Decimal {
	allowance := money.Round(line.InvoiceTotal.Sub(invoiceCommitted))
	if !allowance.IsPositive() {
		return decimal.Zero
	}

	value := money.Round(money.Min(amount, allowance))
	if enforceCeiling || !p.canExceedCeiling {
		value = money.Min(value, p.RemainingCapacity())
	}
	if !value.IsPositive() {
		return decimal.Zero
	}

	p.totalAllocated = money.Round(p.totalAllocated.Add(value))
	if !enforceCeiling && p.totalAllocated.GreaterThan(p.ceilingAdjusted) {
		p.exceededCeiling = true
	}
	p.allocations = append(p.allocations, entity.AllocationRecord{
		ProjectName:     p.name,
		Supplier:        line.Supplier,
		Category:        line.Category,
		InvoiceID:       line.InvoiceID,
		InvoiceTotal:    line.InvoiceTotal,
		AmountAllocated: value,
	})
	return value
}

// Ledger é o conjunto de projetos de um run, indexado por nome.
type Ledger struct {
	byName     map[string]*ProjectLedger
	inputOrder []*ProjectLedger
	ranked     []*ProjectLedger
}

// NewLedger cria os projetos na ordem de entrada, consultando factors uma vez
// por projeto, e fixa a ordem decrescente de teto ajustado usada em todo o run.
func NewLedger(projects []entity.ProjectInput, factors FactorSource) (*Ledger, error) {
	if err := ValidateProjects(projects); err != nil {
		return nil, err
	}

	l := &Ledger{
		byName:     make(map[string]*ProjectLedger, len(projects)),
		inputOrder: make([]*ProjectLedger, 0, len(projects)),
	}
	for i, in := range projects {
		name := strings.TrimSpace(in.Name)
		factor := factors.Factor(name)
		if !validFactor(factor) {
			return nil, types.NewInputError("projects", i+1, "ceiling_factor", types.ErrInvalidFactor)
		}
		p := newProjectLedger(in, factor)
		l.byName[p.name] = p
		l.inputOrder = append(l.inputOrder, p)
	}

	l.ranked = make([]*ProjectLedger, len(l.inputOrder))
	copy(l.ranked, l.inputOrder)
	sort.SliceStable(l.ranked, func(i, j int) bool {
		return l.ranked[i].ceilingAdjusted.GreaterThan(l.ranked[j].ceilingAdjusted)
	})
	return l, nil
}

// Project busca um projeto pelo nome.
func (l *Ledger) Project(name string) (*ProjectLedger, bool) {
	p, ok := l.byName[name]
	return p, ok
}

// Projects retorna os projetos na ordem de entrada.
func (l *Ledger) Projects() []*ProjectLedger {
	out := make([]*ProjectLedger, len(l.inputOrder))
	copy(out, l.inputOrder)
	return out
}

// Ranked retorna os projetos por teto ajustado decrescente (empate: ordem de entrada).
func (l *Ledger) Ranked() []*ProjectLedger {
	out := make([]*ProjectLedger, len(l.ranked))
	copy(out, l.ranked)
	return out
}
