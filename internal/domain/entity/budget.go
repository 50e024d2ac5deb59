package entity

// BudgetInfo represents an AWS budget that can act as a project ceiling.
type BudgetInfo struct {
	Name    string  `json:"name"`
	Limit   float64 `json:"limit"`
	Planned float64 `json:"planned,omitempty"`
	Actual  float64 `json:"actual"`
}
