package entity

import "github.com/shopspring/decimal"

// ProjectInput são os metadados de um projeto que recebe rateio.
type ProjectInput struct {
	Name               string          `json:"name" yaml:"name"`
	CeilingOriginal    decimal.Decimal `json:"ceiling_original" yaml:"ceiling_original"`
	ExcludedCategories []string        `json:"excluded_categories,omitempty" yaml:"excluded_categories,omitempty"`
	CanExceedCeiling   bool            `json:"can_exceed_ceiling" yaml:"can_exceed_ceiling"`
	PlannedValue       decimal.Decimal `json:"planned_value" yaml:"planned_value"`
}

// CategoryExclusion proíbe uma natureza de despesa para um projeto.
type CategoryExclusion struct {
	ProjectName string `json:"project_name" yaml:"project_name"`
	Category    string `json:"category" yaml:"category"`
}

// MergeExclusions anexa as exclusões aos projetos correspondentes e devolve,
// sem repetição, os nomes de projeto que não existem na lista.
func MergeExclusions(projects []ProjectInput, exclusions []CategoryExclusion) []string {
	index := make(map[string]int, len(projects))
	for i, p := range projects {
		index[p.Name] = i
	}

	var unknown []string
	seen := make(map[string]bool)
	for _, ex := range exclusions {
		i, ok := index[ex.ProjectName]
		if !ok {
			if !seen[ex.ProjectName] {
				seen[ex.ProjectName] = true
				unknown = append(unknown, ex.ProjectName)
			}
			continue
		}
		projects[i].ExcludedCategories = append(projects[i].ExcludedCategories, ex.Category)
	}
	return unknown
}
