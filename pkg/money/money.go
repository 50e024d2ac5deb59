// Package money concentra a aritmética monetária do rateio: todo valor novo é
// arredondado para centavos antes de seguir adiante.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places é a quantidade de casas decimais de todo valor monetário.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Round arredonda para centavos (half away from zero).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Min retorna o menor dos valores informados.
func Min(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	return decimal.Min(first, rest...)
}

// Sum soma e arredonda.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round(total)
}

// PercentOrZero calcula round(num/den*100, 2), retornando zero quando den é zero.
func PercentOrZero(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Mul(hundred).DivRound(den, Places)
}

// FromFloat converte um float vindo de APIs externas, já em centavos.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// Format formata com duas casas, ex.: "1234.50".
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Parse interpreta um valor monetário como aparece em planilhas exportadas:
// "1234.56", "1.234,56", "1,234.56", com ou sem prefixo "R$"/"$".
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		// O separador que aparece por último é o decimal.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", raw)
	}
	return d, nil
}
