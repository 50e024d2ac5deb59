package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/finops-rateio/internal/domain/allocation"
	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/domain/repository"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/diillson/finops-rateio/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultReportName = "rateio"
	defaultReportType = "csv"
)

// RateioUseCase conduz um run completo: entrada, rateio, memória de cálculo e exportação.
type RateioUseCase struct {
	awsRepo    repository.AWSRepository
	inputRepo  repository.InputRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface

	now      func() time.Time
	drawSeed func() uint64
	newRunID func() string
}

// NewRateioUseCase creates a new allocation use case.
func NewRateioUseCase(
	awsRepo repository.AWSRepository,
	inputRepo repository.InputRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *RateioUseCase {
	return &RateioUseCase{
		awsRepo:    awsRepo,
		inputRepo:  inputRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		now:        time.Now,
		drawSeed:   rand.Uint64,
		newRunID:   uuid.NewString,
	}
}

// dataset é a entrada já carregada de um run.
type dataset struct {
	projects []entity.ProjectInput
	lines    []entity.ExpenseLine
}

// RunAllocation executa o rateio descrito por args e retorna a memória de cálculo.
// Entradas malformadas interrompem o run antes de qualquer alocação.
func (uc *RateioUseCase) RunAllocation(ctx context.Context, args *types.CLIArgs) (*entity.Report, error) {
	if err := uc.applyConfig(args); err != nil {
		return nil, err
	}

	status := uc.console.Status("Loading allocation data...")
	data, err := uc.loadDataset(ctx, args, status)
	status.Stop()
	if err != nil {
		return nil, err
	}
	uc.console.LogInfo("Loaded %d projects and %d expense lines", len(data.projects), len(data.lines))

	factors, seed, err := uc.factorSource(args)
	if err != nil {
		return nil, err
	}
	if seed != nil {
		uc.console.LogInfo("Ceiling factor seed: %d (replay with --seed %d)", *seed, *seed)
	}

	result, err := allocation.Allocate(data.projects, data.lines, allocation.WithFactorSource(factors))
	if err != nil {
		return nil, fmt.Errorf("allocation rejected: %w", err)
	}

	report := allocation.BuildReport(result)
	report.Run = entity.RunInfo{
		ID:          uc.newRunID(),
		GeneratedAt: uc.now(),
		Source:      args.Source,
		Seed:        seed,
	}

	uc.displayReport(report)

	paths := uc.exportReport(report, args)
	if args.S3Bucket != "" && len(paths) > 0 {
		prefix := path.Join(args.S3Prefix, report.Run.ID)
		uris, err := uc.awsRepo.UploadReports(ctx, args.Profile, args.S3Bucket, prefix, paths)
		for _, uri := range uris {
			uc.console.LogSuccess("Uploaded report to %s", uri)
		}
		if err != nil {
			return &report, fmt.Errorf("failed to upload reports: %w", err)
		}
	}

	return &report, nil
}

// applyConfig completa args com o arquivo de configuração e os valores padrão.
// Flags informadas explicitamente já chegam preenchidas e prevalecem.
func (uc *RateioUseCase) applyConfig(args *types.CLIArgs) error {
	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		mergeConfig(args, cfg, filepath.Dir(args.ConfigFile))
		uc.console.LogInfo("Using configuration from %s", args.ConfigFile)
	}

	args.Source = strings.ToLower(strings.TrimSpace(args.Source))
	if args.Source == "" {
		args.Source = types.SourceFiles
	}
	switch args.Source {
	case types.SourceFiles, types.SourceAWS:
	default:
		return fmt.Errorf("%w: %q (use %s or %s)", types.ErrUnknownSource, args.Source, types.SourceFiles, types.SourceAWS)
	}

	if args.ReportName == "" {
		args.ReportName = defaultReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = []string{defaultReportType}
	}
	return nil
}

// mergeConfig preenche apenas os campos vazios; caminhos relativos do arquivo
// são resolvidos a partir do diretório dele.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	if args.Source == "" {
		args.Source = cfg.Source
	}
	if args.Projects == "" {
		args.Projects = resolve(cfg.Projects)
	}
	if args.Exclusions == "" {
		args.Exclusions = resolve(cfg.Exclusions)
	}
	if args.Expenses == "" {
		args.Expenses = resolve(cfg.Expenses)
	}
	if args.Profile == "" {
		args.Profile = cfg.Profile
	}
	if args.Period == "" {
		args.Period = cfg.Period
	}
	if len(args.Tag) == 0 {
		args.Tag = cfg.Tag
	}
	if len(args.OverflowBudgets) == 0 {
		args.OverflowBudgets = cfg.OverflowBudgets
	}
	if len(args.BudgetExclusions) == 0 {
		args.BudgetExclusions = cfg.BudgetExclusions
	}
	if args.Seed == nil {
		args.Seed = cfg.Seed
	}
	if args.FixedFactor == nil {
		args.FixedFactor = cfg.FixedFactor
	}
	if len(args.Factors) == 0 {
		args.Factors = cfg.Factors
	}
	if args.ReportName == "" {
		args.ReportName = cfg.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = cfg.ReportType
	}
	if args.Dir == "" {
		args.Dir = resolve(cfg.Dir)
	}
	if args.S3Bucket == "" {
		args.S3Bucket = cfg.S3Bucket
	}
	if args.S3Prefix == "" {
		args.S3Prefix = cfg.S3Prefix
	}
}

func (uc *RateioUseCase) loadDataset(ctx context.Context, args *types.CLIArgs, status types.StatusHandle) (*dataset, error) {
	var (
		data *dataset
		err  error
	)
	if args.Source == types.SourceAWS {
		data, err = uc.loadAWSDataset(ctx, args, status)
	} else {
		data, err = uc.loadFileDataset(args, status)
	}
	if err != nil {
		return nil, err
	}
	if len(data.projects) == 0 {
		return nil, types.ErrNoProjects
	}
	return data, nil
}

func (uc *RateioUseCase) loadFileDataset(args *types.CLIArgs, status types.StatusHandle) (*dataset, error) {
	if args.Projects == "" || args.Expenses == "" {
		return nil, types.ErrMissingInputPath
	}

	status.Update("Reading projects...")
	projects, err := uc.inputRepo.LoadProjects(args.Projects)
	if err != nil {
		return nil, fmt.Errorf("error loading projects: %w", err)
	}

	if args.Exclusions != "" {
		status.Update("Reading category exclusions...")
		exclusions, err := uc.inputRepo.LoadExclusions(args.Exclusions)
		if err != nil {
			return nil, fmt.Errorf("error loading exclusions: %w", err)
		}
		for _, name := range entity.MergeExclusions(projects, exclusions) {
			uc.console.LogWarning("Exclusion references unknown project '%s'; ignored", name)
		}
	}

	status.Update("Reading expenses...")
	lines, err := uc.inputRepo.LoadExpenses(args.Expenses)
	if err != nil {
		return nil, fmt.Errorf("error loading expenses: %w", err)
	}

	return &dataset{projects: projects, lines: lines}, nil
}

// factorSource monta a fonte dos fatores do teto. Sem fator fixo, o sorteio é
// sempre semeado e a semente volta para o relatório.
func (uc *RateioUseCase) factorSource(args *types.CLIArgs) (allocation.FactorSource, *uint64, error) {
	var (
		base allocation.FactorSource
		seed *uint64
	)

	if args.FixedFactor != nil {
		f := decimal.NewFromFloat(*args.FixedFactor)
		if !f.IsPositive() || f.GreaterThan(decimal.NewFromInt(1)) {
			return nil, nil, fmt.Errorf("fixed factor %v: %w", *args.FixedFactor, types.ErrInvalidFactor)
		}
		base = allocation.FixedFactor(f)
	} else {
		s := uc.drawSeed()
		if args.Seed != nil {
			s = *args.Seed
		}
		seed = &s
		base = allocation.NewRandomFactors(s)
	}

	if len(args.Factors) == 0 {
		return base, seed, nil
	}

	table := allocation.FactorTable{Factors: make(map[string]decimal.Decimal, len(args.Factors)), Fallback: base}
	for name, f := range args.Factors {
		table.Factors[name] = decimal.NewFromFloat(f)
	}
	return table, seed, nil
}

func (uc *RateioUseCase) displayReport(report entity.Report) {
	summary := uc.console.CreateTable()
	for _, col := range []string{"Projeto", "Plano", "% Plano", "Teto", "Fator", "Teto Ajustado", "Rateado", "% Rateado", "Status"} {
		summary.AddColumn(col)
	}
	bars := make([]types.AllocationBar, 0, len(report.Summary))
	for _, s := range report.Summary {
		state := "OK"
		if s.ExceededCeiling {
			state = "Acima do teto"
		}
		summary.AddRow(
			s.ProjectName,
			money.Format(s.PlannedValue),
			money.Format(s.PlanSharePct),
			money.Format(s.CeilingOriginal),
			s.CeilingFactor.String(),
			money.Format(s.CeilingAdjusted),
			money.Format(s.AllocatedThisMonth),
			money.Format(s.AllocatedSharePct),
			state,
		)
		bars = append(bars, types.AllocationBar{
			Project:   s.ProjectName,
			Allocated: s.AllocatedThisMonth.InexactFloat64(),
			Ceiling:   s.CeilingAdjusted.InexactFloat64(),
			Exceeded:  s.ExceededCeiling,
		})
	}
	uc.console.Print(summary.Render())
	uc.console.DisplayAllocationBars(bars)

	for _, s := range report.Summary {
		if s.ExceededCeiling {
			uc.console.LogWarning("Project '%s' exceeded its adjusted ceiling: %s allocated against %s",
				s.ProjectName, money.Format(s.AllocatedThisMonth), money.Format(s.CeilingAdjusted))
		}
	}

	if len(report.Unallocated) > 0 {
		unallocated := uc.console.CreateTable()
		for _, col := range []string{"Fornecedor", "Natureza", "Título", "Não Alocado", "Justificativa"} {
			unallocated.AddColumn(col)
		}
		for _, u := range report.Unallocated {
			unallocated.AddRow(u.Supplier, u.Category, u.InvoiceID, money.Format(u.AmountRemaining), u.Reason.Description())
		}
		uc.console.Print(unallocated.Render())
		uc.console.LogWarning("%d expense lines left %s unallocated", len(report.Unallocated), money.Format(report.Totals.Unallocated))
	}

	uc.console.LogSuccess("Allocated %s of %s across %d projects (run %s)",
		money.Format(report.Totals.Allocated), money.Format(report.Totals.InvoiceTotal), len(report.Summary), report.Run.ID)
}

// exportReport grava os formatos pedidos; falhas de um formato não impedem os demais.
func (uc *RateioUseCase) exportReport(report entity.Report, args *types.CLIArgs) []string {
	var paths []string
	for _, reportType := range args.ReportType {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "csv":
			csvPaths, err := uc.exportRepo.ExportReportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
				continue
			}
			for _, p := range csvPaths {
				uc.console.LogSuccess("Successfully exported to CSV: %s", p)
			}
			paths = append(paths, csvPaths...)
		case "json":
			jsonPath, err := uc.exportRepo.ExportReportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
				continue
			}
			uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			paths = append(paths, jsonPath)
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportReportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
				continue
			}
			uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			paths = append(paths, pdfPath)
		default:
			uc.console.LogWarning("Unknown report type '%s'; use csv, json or pdf", reportType)
		}
	}
	return paths
}
