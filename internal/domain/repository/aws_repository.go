package repository

import (
	"context"
	"time"

	"github.com/diillson/finops-rateio/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	GetAccountID(ctx context.Context, profile string) (string, error)

	// Budgets servem de projetos; o período define qual limite planejado usar.
	GetBudgets(ctx context.Context, profile string, period time.Time) ([]entity.BudgetInfo, error)

	// Gasto por serviço no período [start, end), usado como despesas.
	GetServiceCosts(ctx context.Context, profile string, start, end time.Time, tags []string) (entity.CostData, error)

	// UploadReports envia os arquivos exportados e retorna as URIs s3:// criadas.
	UploadReports(ctx context.Context, profile, bucket, prefix string, paths []string) ([]string, error)
}
