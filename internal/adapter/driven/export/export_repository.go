package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/domain/repository"
	"github.com/diillson/finops-rateio/pkg/money"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// Cabeçalhos das três abas da memória de cálculo.
var (
	allocatedHeaders = []string{
		"Nome do Projeto", "Nome Fornece", "Natureza", "Valor Rateado", "Valor Titulo", "No. Titulo",
	}
	unallocatedHeaders = []string{
		"Nome Fornece", "Natureza", "Valor Não Alocado", "No. Titulo", "Justificativa",
	}
	summaryHeaders = []string{
		"Nome do Projeto",
		"Valor Mensal do Plano de Trabalho",
		"% Do Plano",
		"Valor Corporativo em Plano de Trabalho",
		"Fator do Teto",
		"Teto Ajustado",
		"% Rateio sobre Plano",
		"Valor Rateado no Mês",
		"% Assumido pelo Rateio no Mês",
		"Ultrapassou o Teto",
	}
)

func allocatedRows(report entity.Report) [][]string {
	rows := make([][]string, 0, len(report.Allocated))
	for _, a := range report.Allocated {
		rows = append(rows, []string{
			a.ProjectName, a.Supplier, a.Category,
			money.Format(a.AmountAllocated), money.Format(a.InvoiceTotal), a.InvoiceID,
		})
	}
	return rows
}

func unallocatedRows(report entity.Report) [][]string {
	rows := make([][]string, 0, len(report.Unallocated))
	for _, u := range report.Unallocated {
		rows = append(rows, []string{
			u.Supplier, u.Category, money.Format(u.AmountRemaining), u.InvoiceID, u.Reason.Description(),
		})
	}
	return rows
}

func summaryRows(report entity.Report) [][]string {
	rows := make([][]string, 0, len(report.Summary))
	for _, s := range report.Summary {
		exceeded := "Não"
		if s.ExceededCeiling {
			exceeded = "Sim"
		}
		rows = append(rows, []string{
			s.ProjectName,
			money.Format(s.PlannedValue),
			money.Format(s.PlanSharePct),
			money.Format(s.CeilingOriginal),
			s.CeilingFactor.String(),
			money.Format(s.CeilingAdjusted),
			money.Format(s.CeilingToPlanPct),
			money.Format(s.AllocatedThisMonth),
			money.Format(s.AllocatedSharePct),
			exceeded,
		})
	}
	return rows
}

// ExportReportToCSV grava uma planilha por aba: _alocadas, _nao_alocadas e _resumo.
func (r *ExportRepositoryImpl) ExportReportToCSV(report entity.Report, filename, outputDir string) ([]string, error) {
	sheets := []struct {
		suffix  string
		headers []string
		rows    [][]string
	}{
		{"_alocadas", allocatedHeaders, allocatedRows(report)},
		{"_nao_alocadas", unallocatedHeaders, unallocatedRows(report)},
		{"_resumo", summaryHeaders, summaryRows(report)},
	}

	generatedFiles := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		path, err := writeCSV(filename+sheet.suffix, outputDir, sheet.headers, sheet.rows)
		if err != nil {
			return generatedFiles, err
		}
		generatedFiles = append(generatedFiles, path)
	}
	return generatedFiles, nil
}

func writeCSV(base, outputDir string, headers []string, rows [][]string) (string, error) {
	outputFilename, err := generateFilename(base, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("error writing CSV rows: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportReportToJSON grava o relatório completo, incluindo os metadados do run.
func (r *ExportRepositoryImpl) ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportReportToPDF gera um documento paisagem com capa de totais e as três seções.
func (r *ExportRepositoryImpl) ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}
	pageWidth := 277.0

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by FinOps Rateio | run %s | %s", report.Run.ID, report.Run.GeneratedAt.Format("2006-01-02 15:04"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	drawTable := func(title string, headers []string, widths []float64, rows [][]string) {
		pdf.AddPage()
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")
		pdf.Ln(4)

		writeHeader := func() {
			pdf.SetFont("Arial", "B", 8)
			pdf.SetFillColor(240, 240, 240)
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
			pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
			for i, h := range headers {
				pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont("Arial", "", 8)
		}
		writeHeader()

		if len(rows) == 0 {
			pdf.CellFormat(pageWidth, 7, tr("Nenhum registro."), "1", 1, "C", false, 0, "")
			return
		}
		for _, row := range rows {
			if pdf.GetY() > 185 {
				pdf.AddPage()
				writeHeader()
			}
			for i, cell := range row {
				align := "L"
				if isNumericColumn(headers[i]) {
					align = "R"
				}
				pdf.CellFormat(widths[i], 6, tr(truncate(cleanRichTags(cell), widths[i])), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	// Capa
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 20, tr("Memória de Cálculo do Rateio"))
	pdf.Ln(18)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Run: %s", report.Run.ID)))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Gerado em: %s", report.Run.GeneratedAt.Format("2006-01-02 15:04:05"))))
	pdf.Ln(7)
	if report.Run.Source != "" {
		pdf.Cell(0, 8, tr(fmt.Sprintf("Origem: %s", report.Run.Source)))
		pdf.Ln(7)
	}
	if report.Run.Seed != nil {
		pdf.Cell(0, 8, tr(fmt.Sprintf("Seed: %d", *report.Run.Seed)))
		pdf.Ln(7)
	}
	pdf.Ln(6)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pageWidth, pdf.GetY())
	pdf.Ln(6)

	totals := [][2]string{
		{"Total do Plano de Trabalho", money.Format(report.Totals.PlanTotal)},
		{"Total das Despesas", money.Format(report.Totals.InvoiceTotal)},
		{"Total Rateado", money.Format(report.Totals.Allocated)},
		{"Total Não Alocado", money.Format(report.Totals.Unallocated)},
		{"Projetos acima do Teto", fmt.Sprintf("%d", report.Totals.ProjectsOverCeiling)},
	}
	for _, t := range totals {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(90, 9, tr(t[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(60, 9, tr(t[1]), "", 1, "R", false, 0, "")
	}

	drawTable("Despesas Rateadas", allocatedHeaders,
		[]float64{60, 60, 50, 35, 35, 37}, allocatedRows(report))
	drawTable("Despesas Não Alocadas", unallocatedHeaders,
		[]float64{65, 55, 35, 40, 82}, unallocatedRows(report))
	drawTable("Resumo Projetos", summaryHeaders,
		[]float64{47, 26, 18, 30, 20, 26, 26, 30, 30, 24}, summaryRows(report))

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

var numericColumn = regexp.MustCompile(`^(%|Valor|Fator|Teto)`)

func isNumericColumn(header string) bool {
	return numericColumn.MatchString(header)
}

// truncate corta o texto para caber na célula (aprox. 1.6mm por caractere em fonte 8).
func truncate(text string, width float64) string {
	limit := int(width*10) / 16
	runes := []rune(text)
	if limit < 4 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
