package entity

import "github.com/shopspring/decimal"

// ExpenseLine é uma linha de despesa (título) a ser rateada.
type ExpenseLine struct {
	Supplier     string          `json:"supplier" yaml:"supplier"`
	Category     string          `json:"category" yaml:"category"`
	InvoiceID    string          `json:"invoice_id" yaml:"invoice_id"`
	InvoiceTotal decimal.Decimal `json:"invoice_total" yaml:"invoice_total"`
}
