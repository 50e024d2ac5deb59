package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/finops-rateio/internal/application/usecase"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/diillson/finops-rateio/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	rateioUseCase *usecase.RateioUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:   "finops-rateio",
		Short: "Proportional expense allocation across projects with ceilings",
		Long: `finops-rateio distributes expense lines across projects in proportion to the
remaining capacity of each project's ceiling, honours category exclusions and
overflow permissions, and writes the calculation memory (allocated, unallocated
and per-project summary) as CSV, JSON or PDF.`,
		Version:       formattedVersion,
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "FinOps Rateio version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("source", "s", types.SourceFiles, "Data source: files (CSV/JSON/YAML) or aws (Budgets + Cost Explorer)")

	flags.StringP("projects", "p", "", "Projects file (Nome do Projeto, Valor Teto, Limite, Valor Plano)")
	flags.StringP("exclusions", "x", "", "Category exclusions file (Nome do Projeto, Naturezas Não Permitidas)")
	flags.StringP("expenses", "e", "", "Expenses file (Nome Fornece, Natureza, Vlr.Titulo, No. Titulo)")

	flags.String("profile", "", "AWS profile for the aws source and S3 upload")
	flags.String("period", "", "Billing month for the aws source, YYYY-MM (default: current month)")
	flags.StringSliceP("tag", "g", nil, "Cost allocation tag filter for the aws source, e.g., --tag Team=DevOps")
	flags.StringSlice("overflow-budgets", nil, "Budgets allowed to exceed their ceiling (comma-separated)")
	flags.StringArray("budget-exclusion", nil, "Service a budget must not receive, e.g., --budget-exclusion 'dados=Amazon S3' (repeatable)")

	flags.Uint64("seed", 0, "Seed for the ceiling safety factors; repeat a run by passing the seed it reported")
	flags.Float64("fixed-factor", 0, "Use the same ceiling factor for every project, in (0, 1]")
	flags.StringToString("factor", nil, "Ceiling factor per project, e.g., --factor 'Hospital Norte=0.99'")

	flags.StringP("report-name", "n", "", "Base name for the report files (default: rateio)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("s3-bucket", "", "Upload the exported reports to this S3 bucket")
	flags.String("s3-prefix", "", "Key prefix for the uploaded reports; the run id is appended")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs lê apenas as flags informadas; as demais ficam vazias para que o
// arquivo de configuração e os valores padrão possam preenchê-las.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	args := &types.CLIArgs{}

	args.ConfigFile, _ = flags.GetString("config-file")

	stringFlags := map[string]*string{
		"source":      &args.Source,
		"projects":    &args.Projects,
		"exclusions":  &args.Exclusions,
		"expenses":    &args.Expenses,
		"profile":     &args.Profile,
		"period":      &args.Period,
		"report-name": &args.ReportName,
		"dir":         &args.Dir,
		"s3-bucket":   &args.S3Bucket,
		"s3-prefix":   &args.S3Prefix,
	}
	for name, target := range stringFlags {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	if flags.Changed("tag") {
		args.Tag, _ = flags.GetStringSlice("tag")
	}
	if flags.Changed("overflow-budgets") {
		args.OverflowBudgets, _ = flags.GetStringSlice("overflow-budgets")
	}
	if flags.Changed("report-type") {
		args.ReportType, _ = flags.GetStringSlice("report-type")
	}

	if flags.Changed("budget-exclusion") {
		raw, _ := flags.GetStringArray("budget-exclusion")
		exclusions, err := parseBudgetExclusions(raw)
		if err != nil {
			return nil, err
		}
		args.BudgetExclusions = exclusions
	}

	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		args.Seed = &seed
	}
	if flags.Changed("fixed-factor") {
		f, _ := flags.GetFloat64("fixed-factor")
		args.FixedFactor = &f
	}
	if flags.Changed("factor") {
		raw, _ := flags.GetStringToString("factor")
		factors, err := parseFactors(raw)
		if err != nil {
			return nil, err
		}
		args.Factors = factors
	}

	if args.Dir != "" {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// parseBudgetExclusions aceita "budget=Serviço"; o mesmo budget pode aparecer várias vezes.
func parseBudgetExclusions(raw []string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, item := range raw {
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("invalid --budget-exclusion %q (expected budget=Service)", item)
		}
		budget := strings.TrimSpace(parts[0])
		out[budget] = append(out[budget], strings.TrimSpace(parts[1]))
	}
	return out, nil
}

func parseFactors(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for name, value := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || f <= 0 || f > 1 {
			return nil, fmt.Errorf("--factor %s=%s: %w", name, value, types.ErrInvalidFactor)
		}
		out[strings.TrimSpace(name)] = f
	}
	return out, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go checkLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	_, err = app.rateioUseCase.RunAllocation(ctx, cliArgs)
	return err
}

// SetRateioUseCase sets the allocation use case for the CLI app.
func (app *CLIApp) SetRateioUseCase(useCase *usecase.RateioUseCase) {
	app.rateioUseCase = useCase
}
