package mocks

import (
	"context"
	"time"

	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/stretchr/testify/mock"
)

// AWSRepository is a mock for repository.AWSRepository.
type AWSRepository struct {
	mock.Mock
}

func (m *AWSRepository) GetAccountID(ctx context.Context, profile string) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

func (m *AWSRepository) GetBudgets(ctx context.Context, profile string, period time.Time) ([]entity.BudgetInfo, error) {
	args := m.Called(ctx, profile, period)
	if list, ok := args.Get(0).([]entity.BudgetInfo); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AWSRepository) GetServiceCosts(ctx context.Context, profile string, start, end time.Time, tags []string) (entity.CostData, error) {
	args := m.Called(ctx, profile, start, end, tags)
	if data, ok := args.Get(0).(entity.CostData); ok {
		return data, args.Error(1)
	}
	return entity.CostData{}, args.Error(1)
}

func (m *AWSRepository) UploadReports(ctx context.Context, profile, bucket, prefix string, paths []string) ([]string, error) {
	args := m.Called(ctx, profile, bucket, prefix, paths)
	if uris, ok := args.Get(0).([]string); ok {
		return uris, args.Error(1)
	}
	return nil, args.Error(1)
}

// InputRepository is a mock for repository.InputRepository.
type InputRepository struct {
	mock.Mock
}

func (m *InputRepository) LoadProjects(path string) ([]entity.ProjectInput, error) {
	args := m.Called(path)
	if list, ok := args.Get(0).([]entity.ProjectInput); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InputRepository) LoadExclusions(path string) ([]entity.CategoryExclusion, error) {
	args := m.Called(path)
	if list, ok := args.Get(0).([]entity.CategoryExclusion); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InputRepository) LoadExpenses(path string) ([]entity.ExpenseLine, error) {
	args := m.Called(path)
	if list, ok := args.Get(0).([]entity.ExpenseLine); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExportRepository is a mock for repository.ExportRepository.
type ExportRepository struct {
	mock.Mock
}

func (m *ExportRepository) ExportReportToCSV(report entity.Report, filename, outputDir string) ([]string, error) {
	args := m.Called(report, filename, outputDir)
	if paths, ok := args.Get(0).([]string); ok {
		return paths, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExportRepository) ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	args := m.Called(report, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *ExportRepository) ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	args := m.Called(report, filename, outputDir)
	return args.String(0), args.Error(1)
}

// ConfigRepository is a mock for repository.ConfigRepository.
type ConfigRepository struct {
	mock.Mock
}

func (m *ConfigRepository) LoadConfigFile(filePath string) (*types.Config, error) {
	args := m.Called(filePath)
	if cfg, ok := args.Get(0).(*types.Config); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}
