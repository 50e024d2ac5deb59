package input

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/diillson/finops-rateio/internal/shared/types"
)

// Colunas aceitas por campo: primeiro o cabeçalho das planilhas originais, depois os aliases.
var (
	projectColumns = map[string][]string{
		"name":               {"nome do projeto", "projeto", "project", "name"},
		"ceiling_original":   {"valor teto", "teto", "ceiling_original", "ceiling"},
		"can_exceed_ceiling": {"limite", "pode ultrapassar", "can_exceed_ceiling", "can_exceed"},
		"planned_value":      {"valor plano", "plano", "planned_value", "planned"},
	}
	exclusionColumns = map[string][]string{
		"project_name": {"nome do projeto", "projeto", "project_name", "project"},
		"category":     {"naturezas não permitidas", "naturezas nao permitidas", "natureza", "excluded_category", "category"},
	}
	expenseColumns = map[string][]string{
		"supplier":      {"nome fornece", "fornecedor", "supplier"},
		"category":      {"natureza", "category"},
		"invoice_total": {"vlr.titulo", "vlr. titulo", "valor", "invoice_total", "amount"},
		"invoice_id":    {"no. titulo", "nº titulo", "titulo", "invoice_id", "invoice"},
	}
)

// csvTable é um CSV com cabeçalho já resolvido para nomes de campo. Linhas em
// branco são descartadas; o registro N é a N-ésima linha de dados.
type csvTable struct {
	source  string
	columns map[string]int
	rows    [][]string
}

func readCSV(source string, r io.Reader, known map[string][]string, required ...string) (*csvTable, error) {
	br := bufio.NewReader(r)
	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty file", source)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: error reading CSV header: %w", source, err)
	}

	table := &csvTable{source: source, columns: resolveColumns(header, known)}
	for _, field := range required {
		if _, ok := table.columns[field]; !ok {
			return nil, types.NewInputError(source, 0, field, fmt.Errorf("%w: no column matches %q", types.ErrMissingField, known[field][0]))
		}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: error reading CSV: %w", source, err)
		}
		if blankRow(row) {
			continue
		}
		table.rows = append(table.rows, row)
	}
	return table, nil
}

// detectDelimiter olha a primeira linha: planilhas em pt-BR costumam exportar com ';'.
func detectDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	first := string(peek)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func resolveColumns(header []string, known map[string][]string) map[string]int {
	normalized := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := normalized[key]; !dup {
			normalized[key] = i
		}
	}

	columns := make(map[string]int, len(known))
	for field, aliases := range known {
		for _, alias := range aliases {
			if i, ok := normalized[alias]; ok {
				columns[field] = i
				break
			}
		}
	}
	return columns
}

// cell retorna o valor do campo na linha, ou "" quando a coluna não existe ou a linha é curta.
func (t *csvTable) cell(row int, field string) string {
	i, ok := t.columns[field]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
