package types

// Origens de dados suportadas.
const (
	SourceFiles = "files"
	SourceAWS   = "aws"
)

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string

	Source     string
	Projects   string
	Exclusions string
	Expenses   string

	Profile          string
	Period           string
	Tag              []string
	OverflowBudgets  []string
	BudgetExclusions map[string][]string

	Seed        *uint64
	FixedFactor *float64
	Factors     map[string]float64

	ReportName string
	ReportType []string
	Dir        string

	S3Bucket string
	S3Prefix string
}
