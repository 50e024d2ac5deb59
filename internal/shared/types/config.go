package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Source     string `json:"source" yaml:"source" toml:"source"`
	Projects   string `json:"projects" yaml:"projects" toml:"projects"`
	Exclusions string `json:"exclusions" yaml:"exclusions" toml:"exclusions"`
	Expenses   string `json:"expenses" yaml:"expenses" toml:"expenses"`

	Profile          string              `json:"profile" yaml:"profile" toml:"profile"`
	Period           string              `json:"period" yaml:"period" toml:"period"`
	Tag              []string            `json:"tag" yaml:"tag" toml:"tag"`
	OverflowBudgets  []string            `json:"overflow_budgets" yaml:"overflow_budgets" toml:"overflow_budgets"`
	BudgetExclusions map[string][]string `json:"budget_exclusions" yaml:"budget_exclusions" toml:"budget_exclusions"`

	Seed        *uint64            `json:"seed" yaml:"seed" toml:"seed"`
	FixedFactor *float64           `json:"fixed_factor" yaml:"fixed_factor" toml:"fixed_factor"`
	Factors     map[string]float64 `json:"factors" yaml:"factors" toml:"factors"`

	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`

	S3Bucket string `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix string `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
}
