package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BoldRed       = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed     = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	// Use o pterm para criar uma tabela visualmente agradável
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// barWidth é o comprimento de uma barra que consome o teto inteiro.
const barWidth = 40

// consumption retorna a fração do teto já consumida; sem teto, qualquer valor conta como 100%.
func consumption(b types.AllocationBar) float64 {
	if b.Ceiling <= 0 {
		if b.Allocated > 0 {
			return 1
		}
		return 0
	}
	return b.Allocated / b.Ceiling
}

// renderBar desenha a barra limitada a barWidth; o excedente aparece como "+".
func renderBar(ratio float64) string {
	filled := int(math.Round(math.Min(ratio, 1) * barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	if ratio > 1 {
		bar += "+"
	}
	return bar
}

// DisplayAllocationBars exibe quanto do teto ajustado cada projeto consumiu no mês.
func (c *Console) DisplayAllocationBars(bars []types.AllocationBar) {
	if len(bars) == 0 {
		pterm.Warning.Println("No projects to display")
		return
	}

	tableData := pterm.TableData{
		{"Project", "Allocated", "Ceiling", "", "Usage"},
	}

	for _, b := range bars {
		ratio := consumption(b)
		bar := renderBar(ratio)

		var barColor, usage string
		switch {
		case b.Exceeded || ratio > 1:
			barColor = pterm.FgRed.Sprint(bar)
			usage = pterm.FgRed.Sprintf("%.2f%% (exceeded)", ratio*100)
		case ratio >= 0.95:
			barColor = pterm.FgYellow.Sprint(bar)
			usage = pterm.FgYellow.Sprintf("%.2f%%", ratio*100)
		default:
			barColor = pterm.FgGreen.Sprint(bar)
			usage = pterm.FgGreen.Sprintf("%.2f%%", ratio*100)
		}

		tableData = append(tableData, []string{
			b.Project,
			fmt.Sprintf("%.2f", b.Allocated),
			fmt.Sprintf("%.2f", b.Ceiling),
			barColor,
			usage,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("Ceiling Usage per Project").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
