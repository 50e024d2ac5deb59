package repository

import (
	"github.com/diillson/finops-rateio/internal/domain/entity"
)

// ExportRepository grava a memória de cálculo; cada método retorna os caminhos absolutos criados.
type ExportRepository interface {
	ExportReportToCSV(report entity.Report, filename, outputDir string) ([]string, error)
	ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error)
	ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error)
}
