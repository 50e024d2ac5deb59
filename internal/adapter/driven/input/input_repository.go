package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/domain/repository"
	"github.com/diillson/finops-rateio/internal/shared/types"
	"gopkg.in/yaml.v3"
)

// InputRepositoryImpl implementa o InputRepository para CSV, JSON e YAML.
type InputRepositoryImpl struct{}

// NewInputRepository cria uma nova implementação do InputRepository.
func NewInputRepository() repository.InputRepository {
	return &InputRepositoryImpl{}
}

type projectRecord struct {
	Name               string   `json:"name" yaml:"name"`
	CeilingOriginal    rawField `json:"ceiling_original" yaml:"ceiling_original"`
	CanExceedCeiling   rawField `json:"can_exceed_ceiling" yaml:"can_exceed_ceiling"`
	PlannedValue       rawField `json:"planned_value" yaml:"planned_value"`
	ExcludedCategories []string `json:"excluded_categories" yaml:"excluded_categories"`
}

type exclusionRecord struct {
	ProjectName string `json:"project_name" yaml:"project_name"`
	Category    string `json:"category" yaml:"category"`
}

type expenseRecord struct {
	Supplier     string   `json:"supplier" yaml:"supplier"`
	Category     string   `json:"category" yaml:"category"`
	InvoiceID    rawField `json:"invoice_id" yaml:"invoice_id"`
	InvoiceTotal rawField `json:"invoice_total" yaml:"invoice_total"`
}

// LoadProjects lê a planilha de projetos (Nome do Projeto, Valor Teto, Limite, Valor Plano).
func (r *InputRepositoryImpl) LoadProjects(path string) ([]entity.ProjectInput, error) {
	data, ext, err := readInputFile(path)
	if err != nil {
		return nil, err
	}
	source := filepath.Base(path)

	if ext == ".csv" {
		table, err := readCSV(source, bytes.NewReader(data), projectColumns, "name", "ceiling_original")
		if err != nil {
			return nil, err
		}
		projects := make([]entity.ProjectInput, 0, len(table.rows))
		for i := range table.rows {
			p, err := buildProject(source, i+1, projectRecord{
				Name:             table.cell(i, "name"),
				CeilingOriginal:  rawField{value: table.cell(i, "ceiling_original"), set: true},
				CanExceedCeiling: rawField{value: table.cell(i, "can_exceed_ceiling"), set: true},
				PlannedValue:     rawField{value: table.cell(i, "planned_value"), set: true},
			})
			if err != nil {
				return nil, err
			}
			projects = append(projects, p)
		}
		return projects, nil
	}

	var records []projectRecord
	if err := decodeStructured(source, ext, data, &records); err != nil {
		return nil, err
	}
	projects := make([]entity.ProjectInput, 0, len(records))
	for i, rec := range records {
		p, err := buildProject(source, i+1, rec)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// LoadExclusions lê a planilha de naturezas não permitidas, uma linha por par projeto/natureza.
func (r *InputRepositoryImpl) LoadExclusions(path string) ([]entity.CategoryExclusion, error) {
	data, ext, err := readInputFile(path)
	if err != nil {
		return nil, err
	}
	source := filepath.Base(path)

	var records []exclusionRecord
	if ext == ".csv" {
		table, err := readCSV(source, bytes.NewReader(data), exclusionColumns, "project_name", "category")
		if err != nil {
			return nil, err
		}
		for i := range table.rows {
			records = append(records, exclusionRecord{
				ProjectName: table.cell(i, "project_name"),
				Category:    table.cell(i, "category"),
			})
		}
	} else if err := decodeStructured(source, ext, data, &records); err != nil {
		return nil, err
	}

	exclusions := make([]entity.CategoryExclusion, 0, len(records))
	for i, rec := range records {
		name, err := requireText(source, i+1, "project_name", rec.ProjectName)
		if err != nil {
			return nil, err
		}
		category, err := requireText(source, i+1, "category", rec.Category)
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, entity.CategoryExclusion{ProjectName: name, Category: category})
	}
	return exclusions, nil
}

// LoadExpenses lê a planilha de despesas (Nome Fornece, Natureza, Vlr.Titulo, No. Titulo)
// preservando a ordem das linhas, que influencia o rateio.
func (r *InputRepositoryImpl) LoadExpenses(path string) ([]entity.ExpenseLine, error) {
	data, ext, err := readInputFile(path)
	if err != nil {
		return nil, err
	}
	source := filepath.Base(path)

	var records []expenseRecord
	if ext == ".csv" {
		table, err := readCSV(source, bytes.NewReader(data), expenseColumns, "category", "invoice_total", "invoice_id")
		if err != nil {
			return nil, err
		}
		for i := range table.rows {
			records = append(records, expenseRecord{
				Supplier:     table.cell(i, "supplier"),
				Category:     table.cell(i, "category"),
				InvoiceID:    rawField{value: table.cell(i, "invoice_id"), set: true},
				InvoiceTotal: rawField{value: table.cell(i, "invoice_total"), set: true},
			})
		}
	} else if err := decodeStructured(source, ext, data, &records); err != nil {
		return nil, err
	}

	lines := make([]entity.ExpenseLine, 0, len(records))
	for i, rec := range records {
		record := i + 1
		category, err := requireText(source, record, "category", rec.Category)
		if err != nil {
			return nil, err
		}
		invoiceID, err := requireText(source, record, "invoice_id", rec.InvoiceID.value)
		if err != nil {
			return nil, err
		}
		total, err := parseAmount(source, record, "invoice_total", rec.InvoiceTotal.value, true)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.ExpenseLine{
			Supplier:     strings.TrimSpace(rec.Supplier),
			Category:     category,
			InvoiceID:    invoiceID,
			InvoiceTotal: total,
		})
	}
	return lines, nil
}

func buildProject(source string, record int, rec projectRecord) (entity.ProjectInput, error) {
	name, err := requireText(source, record, "name", rec.Name)
	if err != nil {
		return entity.ProjectInput{}, err
	}
	if rec.CeilingOriginal.blank() {
		return entity.ProjectInput{}, types.NewInputError(source, record, "ceiling_original", types.ErrMissingField)
	}
	ceiling, err := parseAmount(source, record, "ceiling_original", rec.CeilingOriginal.value, true)
	if err != nil {
		return entity.ProjectInput{}, err
	}
	planned, err := parseAmount(source, record, "planned_value", rec.PlannedValue.value, false)
	if err != nil {
		return entity.ProjectInput{}, err
	}
	canExceed, err := parseFlag(source, record, "can_exceed_ceiling", rec.CanExceedCeiling.value)
	if err != nil {
		return entity.ProjectInput{}, err
	}

	var excluded []string
	for _, c := range rec.ExcludedCategories {
		if c = strings.TrimSpace(c); c != "" {
			excluded = append(excluded, c)
		}
	}

	return entity.ProjectInput{
		Name:               name,
		CeilingOriginal:    ceiling,
		ExcludedCategories: excluded,
		CanExceedCeiling:   canExceed,
		PlannedValue:       planned,
	}, nil
}

func readInputFile(path string) ([]byte, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".json", ".yaml", ".yml":
	default:
		return nil, "", fmt.Errorf("%w: %s (use .csv, .json or .yaml)", types.ErrUnsupportedFormat, path)
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("error accessing input file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("error reading input file: %w", err)
	}
	return data, ext, nil
}

func decodeStructured(source, ext string, data []byte, out interface{}) error {
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: error parsing JSON file: %w", source, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: error parsing YAML file: %w", source, err)
		}
	}
	return nil
}
