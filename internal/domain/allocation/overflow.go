package allocation

// spill oferece o saldo inteiro, em sequência, aos projetos elegíveis que podem
// ultrapassar o teto, na mesma ordem de teto decrescente. O teto é ignorado;
// apenas o valor do título limita cada gravação.
func spill(eligible []*ProjectLedger, tally *invoiceTally) {
	for _, p := range eligible {
		if !tally.pending() {
			return
		}
		if !p.CanExceedCeiling() {
			continue
		}
		if committed := p.Commit(tally.remaining, tally.line, tally.committed, false); committed.IsPositive() {
			tally.record(committed)
		}
	}
}
