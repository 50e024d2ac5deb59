package cli

import (
	"path/filepath"
	"testing"

	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, argv ...string) (*types.CLIArgs, error) {
	t.Helper()
	app := NewCLIApp("test")
	require.NoError(t, app.rootCmd.ParseFlags(argv))
	return app.parseArgs()
}

func TestParseArgs_OnlyExplicitFlags(t *testing.T) {
	args, err := parse(t, "--projects", "projetos.csv", "-e", "despesas.csv")
	require.NoError(t, err)

	assert.Equal(t, "projetos.csv", args.Projects)
	assert.Equal(t, "despesas.csv", args.Expenses)
	assert.Empty(t, args.Source, "defaults stay empty so the config file can fill them")
	assert.Empty(t, args.ReportType)
	assert.Nil(t, args.Seed)
	assert.Nil(t, args.FixedFactor)
	assert.Empty(t, args.Dir)
}

func TestParseArgs_AllFlags(t *testing.T) {
	args, err := parse(t,
		"-C", "rateio.toml",
		"--source", "aws",
		"--profile", "finance",
		"--period", "2026-03",
		"--tag", "Team=core",
		"--overflow-budgets", "dados,legado",
		"--budget-exclusion", "dados=Amazon S3",
		"--budget-exclusion", "dados=AWS KMS",
		"--seed", "42",
		"--fixed-factor", "0.99",
		"--factor", "Hospital Norte=0.98",
		"--report-name", "memoria",
		"-y", "json,pdf",
		"--dir", "out",
		"--s3-bucket", "relatorios",
		"--s3-prefix", "rateio",
	)
	require.NoError(t, err)

	assert.Equal(t, "rateio.toml", args.ConfigFile)
	assert.Equal(t, "aws", args.Source)
	assert.Equal(t, "finance", args.Profile)
	assert.Equal(t, "2026-03", args.Period)
	assert.Equal(t, []string{"Team=core"}, args.Tag)
	assert.Equal(t, []string{"dados", "legado"}, args.OverflowBudgets)
	assert.Equal(t, map[string][]string{"dados": {"Amazon S3", "AWS KMS"}}, args.BudgetExclusions)
	require.NotNil(t, args.Seed)
	assert.Equal(t, uint64(42), *args.Seed)
	require.NotNil(t, args.FixedFactor)
	assert.InDelta(t, 0.99, *args.FixedFactor, 1e-12)
	assert.InDelta(t, 0.98, args.Factors["Hospital Norte"], 1e-12)
	assert.Equal(t, "memoria", args.ReportName)
	assert.Equal(t, []string{"json", "pdf"}, args.ReportType)
	assert.True(t, filepath.IsAbs(args.Dir))
	assert.Equal(t, "out", filepath.Base(args.Dir))
	assert.Equal(t, "relatorios", args.S3Bucket)
	assert.Equal(t, "rateio", args.S3Prefix)
}

func TestParseArgs_SeedZeroIsExplicit(t *testing.T) {
	args, err := parse(t, "--seed", "0")
	require.NoError(t, err)
	require.NotNil(t, args.Seed)
	assert.Zero(t, *args.Seed)
}

func TestParseArgs_InvalidValues(t *testing.T) {
	_, err := parse(t, "--factor", "A=1.2")
	require.ErrorIs(t, err, types.ErrInvalidFactor)

	_, err = parse(t, "--factor", "A=abc")
	require.ErrorIs(t, err, types.ErrInvalidFactor)

	_, err = parse(t, "--budget-exclusion", "semservico")
	require.Error(t, err)
}
