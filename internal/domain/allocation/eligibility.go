package allocation

// EligibleProjects filtra os projetos que aceitam a natureza, preservando a ordem recebida.
func EligibleProjects(category string, ranked []*ProjectLedger) []*ProjectLedger {
	eligible := make([]*ProjectLedger, 0, len(ranked))
	for _, p := range ranked {
		if p.Accepts(category) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}
