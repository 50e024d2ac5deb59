package entity

import "time"

// ServiceCost represents a cost amount for a specific AWS service.
type ServiceCost struct {
	ServiceName string  `json:"service_name"`
	Cost        float64 `json:"cost"`
}

// CostData contains the service spend of one account for a billing period.
type CostData struct {
	AccountID    string        `json:"account_id,omitempty"`
	PeriodStart  time.Time     `json:"period_start"`
	PeriodEnd    time.Time     `json:"period_end"`
	ServiceCosts []ServiceCost `json:"service_costs"`
}
