package repository

import (
	"github.com/diillson/finops-rateio/internal/domain/entity"
)

// InputRepository lê os conjuntos de dados do rateio de arquivos locais.
type InputRepository interface {
	LoadProjects(path string) ([]entity.ProjectInput, error)
	LoadExclusions(path string) ([]entity.CategoryExclusion, error)
	LoadExpenses(path string) ([]entity.ExpenseLine, error)
}
