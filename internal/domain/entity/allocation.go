package entity

import "github.com/shopspring/decimal"

// UnallocatedReason explica por que parte de uma despesa ficou sem projeto.
type UnallocatedReason string

const (
	ReasonCategoryNotPermitted UnallocatedReason = "category_not_permitted"
	ReasonCapacityExhausted    UnallocatedReason = "capacity_exhausted"
)

// Description retorna o texto exibido nos relatórios.
func (r UnallocatedReason) Description() string {
	switch r {
	case ReasonCategoryNotPermitted:
		return "Natureza não permitida"
	case ReasonCapacityExhausted:
		return "Não foi possível alocar todo o valor"
	default:
		return string(r)
	}
}

// AllocationRecord é a parcela de uma despesa atribuída a um projeto.
type AllocationRecord struct {
	ProjectName     string          `json:"project_name"`
	Supplier        string          `json:"supplier"`
	Category        string          `json:"category"`
	InvoiceID       string          `json:"invoice_id"`
	InvoiceTotal    decimal.Decimal `json:"invoice_total"`
	AmountAllocated decimal.Decimal `json:"amount_allocated"`
}

// UnallocatedRecord é o saldo de uma despesa que nenhum projeto absorveu.
type UnallocatedRecord struct {
	Supplier        string            `json:"supplier"`
	Category        string            `json:"category"`
	InvoiceID       string            `json:"invoice_id"`
	AmountRemaining decimal.Decimal   `json:"amount_remaining"`
	Reason          UnallocatedReason `json:"reason"`
}
