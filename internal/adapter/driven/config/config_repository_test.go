package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile_TOML(t *testing.T) {
	path := writeFile(t, "rateio.toml", `
source = "aws"
profile = "finance"
seed = 1234
overflow_budgets = ["Corporate"]
report_type = ["csv", "pdf"]

[budget_exclusions]
Marketing = ["AWS Support (Business)"]

[factors]
Corporate = 0.99
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, types.SourceAWS, cfg.Source)
	assert.Equal(t, "finance", cfg.Profile)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(1234), *cfg.Seed)
	assert.Equal(t, []string{"Corporate"}, cfg.OverflowBudgets)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
	assert.Equal(t, []string{"AWS Support (Business)"}, cfg.BudgetExclusions["Marketing"])
	assert.InDelta(t, 0.99, cfg.Factors["Corporate"], 1e-9)
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := writeFile(t, "rateio.yaml", `
projects: data/projetos.csv
exclusions: data/naturezas.csv
expenses: data/despesas.csv
fixed_factor: 1
report_name: rateio
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "data/projetos.csv", cfg.Projects)
	assert.Equal(t, "data/naturezas.csv", cfg.Exclusions)
	assert.Equal(t, "data/despesas.csv", cfg.Expenses)
	require.NotNil(t, cfg.FixedFactor)
	assert.Equal(t, 1.0, *cfg.FixedFactor)
	assert.Equal(t, "rateio", cfg.ReportName)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := writeFile(t, "rateio.json", `{"source": "files", "dir": "out", "s3_bucket": "reports"}`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Dir)
	assert.Equal(t, "reports", cfg.S3Bucket)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = repo.LoadConfigFile(t.TempDir())
	require.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "rateio.ini", "x=1"))
	require.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = repo.LoadConfigFile(writeFile(t, "typo.yaml", "projetcs: a.csv\n"))
	require.Error(t, err)

	_, err = repo.LoadConfigFile(writeFile(t, "typo.json", `{"sed": 1}`))
	require.Error(t, err)

	_, err = repo.LoadConfigFile(writeFile(t, "source.json", `{"source": "ftp"}`))
	require.ErrorIs(t, err, types.ErrUnknownSource)

	_, err = repo.LoadConfigFile(writeFile(t, "factor.yaml", "fixed_factor: 1.5\n"))
	require.ErrorIs(t, err, types.ErrInvalidFactor)
}
