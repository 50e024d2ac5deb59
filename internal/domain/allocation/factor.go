package allocation

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// Faixa da margem de segurança aplicada ao teto nominal: [FactorMin, FactorMax).
var (
	FactorMin = decimal.RequireFromString("0.9845")
	FactorMax = decimal.RequireFromString("0.9992")
)

const factorPlaces = 6

// FactorSource fornece o fator multiplicativo do teto de cada projeto.
// É consultado uma única vez por projeto, na ordem de entrada.
type FactorSource interface {
	Factor(projectName string) decimal.Decimal
}

// RandomFactors sorteia fatores uniformes em [FactorMin, FactorMax) a partir de
// uma semente; a mesma semente com a mesma lista de projetos repete o run.
type RandomFactors struct {
	seed uint64
	rng  *rand.Rand
}

// NewRandomFactors cria um gerador PCG semeado.
func NewRandomFactors(seed uint64) *RandomFactors {
	return &RandomFactors{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed retorna a semente usada.
func (r *RandomFactors) Seed() uint64 {
	return r.seed
}

func (r *RandomFactors) Factor(string) decimal.Decimal {
	span := FactorMax.Sub(FactorMin)
	draw := decimal.NewFromFloat(r.rng.Float64())
	return FactorMin.Add(span.Mul(draw)).Truncate(factorPlaces)
}

// FixedFactor aplica o mesmo fator a todos os projetos.
type FixedFactor decimal.Decimal

func (f FixedFactor) Factor(string) decimal.Decimal {
	return decimal.Decimal(f)
}

// FactorTable usa fatores pré-calculados por projeto e recorre a Fallback para os demais.
type FactorTable struct {
	Factors  map[string]decimal.Decimal
	Fallback FactorSource
}

func (t FactorTable) Factor(projectName string) decimal.Decimal {
	if f, ok := t.Factors[projectName]; ok {
		return f
	}
	if t.Fallback == nil {
		return decimal.Zero
	}
	return t.Fallback.Factor(projectName)
}

func validFactor(f decimal.Decimal) bool {
	return f.IsPositive() && f.LessThanOrEqual(decimal.NewFromInt(1))
}
