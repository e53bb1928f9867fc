// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

// Códigos SQLSTATE tratados como violação de integridade
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"

	// valor fora da faixa do tipo da coluna, ex.: soma acima de INTEGER
	pgNumericOutOfRange = "22003"
)

// classifyError converte erros do driver na taxonomia do domínio:
// violações de integridade viram ErrConstraint, estouro numérico vira
// ErrValidation e o resto vira ErrStore
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation:
			return &ConstraintViolation{
				Op:         op,
				Code:       string(pqErr.Code),
				Constraint: pqErr.Constraint,
				Err:        err,
			}
		case pgNumericOutOfRange:
			return &OutOfRange{Op: op, Err: err}
		}
		return fmt.Errorf("%w: %s: %w (código: %s)", domain.ErrStore, op, pqErr, pqErr.Code)
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrStore, op, err)
}

// ConstraintViolation identifica qual restrição do banco foi violada
type ConstraintViolation struct {
	Op         string
	Code       string
	Constraint string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s: %s", domain.ErrConstraint.Error(), e.Op, e.Constraint)
}

func (e *ConstraintViolation) Unwrap() []error {
	return []error{domain.ErrConstraint, e.Err}
}

func (e *ConstraintViolation) IsForeignKey() bool {
	return e.Code == pgForeignKeyViolation
}

func (e *ConstraintViolation) IsUnique() bool {
	return e.Code == pgUniqueViolation
}

// OutOfRange indica que o valor gravado excede a faixa da coluna
type OutOfRange struct {
	Op  string
	Err error
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("%s: %s: valor fora da faixa da coluna", domain.ErrValidation.Error(), e.Op)
}

func (e *OutOfRange) Unwrap() []error {
	return []error{domain.ErrValidation, e.Err}
}
