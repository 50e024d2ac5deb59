package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diillson/finops-rateio/internal/shared/types"
	"github.com/diillson/finops-rateio/pkg/money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// rawField guarda o texto de um escalar JSON/YAML, seja número, string ou booleano,
// para que a conversão aconteça em um único lugar com o contexto do registro.
type rawField struct {
	value string
	set   bool
}

func (f *rawField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.value, f.set = s, true
		return nil
	}
	f.value, f.set = string(data), true
	return nil
}

func (f *rawField) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		return nil
	}
	f.value, f.set = node.Value, true
	return nil
}

func (f rawField) blank() bool {
	return !f.set || strings.TrimSpace(f.value) == ""
}

// parseAmount converte um valor monetário; campos opcionais em branco valem zero.
func parseAmount(source string, record int, field, raw string, required bool) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		if required {
			return decimal.Zero, types.NewInputError(source, record, field, types.ErrMissingField)
		}
		return decimal.Zero, nil
	}
	d, err := money.Parse(raw)
	if err != nil {
		return decimal.Zero, types.NewInputError(source, record, field, fmt.Errorf("%w: %v", types.ErrInvalidAmount, err))
	}
	if d.IsNegative() {
		return decimal.Zero, types.NewInputError(source, record, field, types.ErrNegativeAmount)
	}
	return d, nil
}

// parseFlag interpreta a coluna "Limite": 1/true/sim/yes/x liberam o estouro do teto.
func parseFlag(source string, record int, field, raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "nao", "não", "no", "n":
		return false, nil
	case "1", "true", "sim", "yes", "s", "y", "x":
		return true, nil
	default:
		return false, types.NewInputError(source, record, field, fmt.Errorf("%w: %q", types.ErrInvalidFlag, raw))
	}
}

func requireText(source string, record int, field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", types.NewInputError(source, record, field, types.ErrMissingField)
	}
	return s, nil
}
