package console

import (
	"strings"
	"testing"

	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

func TestConsumption(t *testing.T) {
	assert.InDelta(t, 0.5, consumption(types.AllocationBar{Allocated: 50, Ceiling: 100}), 1e-9)
	assert.InDelta(t, 1.2, consumption(types.AllocationBar{Allocated: 120, Ceiling: 100}), 1e-9)
	assert.Zero(t, consumption(types.AllocationBar{}))
	assert.Equal(t, 1.0, consumption(types.AllocationBar{Allocated: 10}))
}

func TestRenderBar(t *testing.T) {
	half := renderBar(0.5)
	assert.Equal(t, barWidth/2, strings.Count(half, "█"))
	assert.Equal(t, barWidth/2, strings.Count(half, "░"))

	full := renderBar(1)
	assert.Equal(t, barWidth, strings.Count(full, "█"))
	assert.False(t, strings.HasSuffix(full, "+"))

	over := renderBar(1.5)
	assert.Equal(t, barWidth, strings.Count(over, "█"))
	assert.True(t, strings.HasSuffix(over, "+"))
}

func TestTableRender(t *testing.T) {
	table := NewConsole().CreateTable()
	table.AddColumn("Projeto")
	table.AddColumn("Valor")
	table.AddRow("Hospital Norte", "100.00")

	out := table.Render()
	assert.Contains(t, out, "Hospital Norte")
	assert.Contains(t, out, "100.00")
}
