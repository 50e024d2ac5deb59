package allocation

import (
	"github.com/diillson/finops-rateio/pkg/money"
	"github.com/shopspring/decimal"
)

type capacityEntry struct {
	project  *ProjectLedger
	capacity decimal.Decimal
	dropped  bool
}

// distribute rateia o saldo da linha entre os projetos elegíveis na proporção
// da capacidade restante de cada um, refazendo as proporções a cada rodada até
// o saldo acabar ou nenhum projeto ter capacidade. Um projeto descartado não
// volta a receber nesta linha.
func distribute(eligible []*ProjectLedger, tally *invoiceTally) {
	working := make([]*capacityEntry, 0, len(eligible))
	for _, p := range eligible {
		working = append(working, &capacityEntry{project: p})
	}

	for tally.pending() {
		// Snapshot da rodada: só entra quem ainda tem capacidade agora.
		round := working[:0:0]
		total := decimal.Zero
		for _, e := range working {
			e.capacity = e.project.RemainingCapacity()
			if !e.capacity.IsPositive() {
				continue
			}
			round = append(round, e)
			total = total.Add(e.capacity)
		}
		if len(round) == 0 || !total.IsPositive() {
			return
		}

		for _, e := range round {
			if !tally.pending() {
				break
			}
			share := money.Round(tally.remaining.Mul(e.capacity).Div(total))
			proposed := money.Min(share, e.capacity, tally.remaining)
			if !proposed.IsPositive() {
				e.dropped = true
				continue
			}

			committed := e.project.Commit(proposed, tally.line, tally.committed, true)
			if !committed.IsPositive() {
				e.dropped = true
				continue
			}
			tally.record(committed)
			e.capacity = money.Round(e.capacity.Sub(committed))
			if !e.capacity.IsPositive() {
				e.dropped = true
			}
		}

		working = round[:0:0]
		for _, e := range round {
			if !e.dropped {
				working = append(working, e)
			}
		}
	}
}
