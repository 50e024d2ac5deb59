package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput é a raiz de toda falha de entrada; um run rejeitado sempre a envolve.
	ErrInvalidInput = errors.New("invalid input")

	ErrMissingField     = fmt.Errorf("%w: missing required field", ErrInvalidInput)
	ErrInvalidAmount    = fmt.Errorf("%w: not a monetary value", ErrInvalidInput)
	ErrNegativeAmount   = fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	ErrNonPositive      = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	ErrDuplicateProject = fmt.Errorf("%w: duplicate project name", ErrInvalidInput)
	ErrInvalidFactor    = fmt.Errorf("%w: ceiling factor must be in (0, 1]", ErrInvalidInput)
	ErrInvalidFlag      = fmt.Errorf("%w: invalid boolean flag", ErrInvalidInput)

	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnknownSource     = errors.New("unknown data source")
	ErrNoProjects        = errors.New("no projects to allocate into")
	ErrMissingInputPath  = errors.New("projects and expenses files are required for the files source")
)

// InputError identifica o registro e o campo responsáveis por uma rejeição.
type InputError struct {
	Source string // "projects", "expenses", "exclusions" ou o caminho do arquivo
	Record int    // 1-based; 0 quando o erro não é de um registro específico
	Field  string
	Err    error
}

func (e *InputError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("%s record %d, field %q: %v", e.Source, e.Record, e.Field, e.Err)
	}
	return fmt.Sprintf("%s, field %q: %v", e.Source, e.Field, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError monta um InputError.
func NewInputError(source string, record int, field string, err error) *InputError {
	return &InputError{Source: source, Record: record, Field: field, Err: err}
}
