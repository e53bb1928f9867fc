package domain

import (
	"errors"
	"fmt"
)

// Taxonomia de erros do ledger
var (
	// Entrada malformada ou fora do intervalo, o chamador deve corrigir
	ErrValidation = errors.New("dados inválidos")

	// Violação referencial ou de unicidade no armazenamento
	ErrConstraint = errors.New("violação de integridade")

	// Falha de persistência ou conectividade, pode ser repetida
	ErrStore = errors.New("falha no armazenamento de fatos")

	// Menos de 2 pontos distintos: não é um erro de verdade, o chamador desenha a série crua
	ErrInsufficientData = errors.New("dados insuficientes para calcular tendência")

	ErrNoSalesData     = errors.New("nenhuma venda encontrada")
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrZoneNotFound    = errors.New("zona não encontrada")
)

// LedgerError é um erro com contexto adicional para operações do ledger
type LedgerError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Field   string // Campo envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *LedgerError) Error() string {
	if e.Field != "" && e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Err.Error(), e.Field, e.Details)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *LedgerError) Unwrap() error {
	return e.Err
}

func NewLedgerError(baseErr error, code string, details string) *LedgerError {
	return &LedgerError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewFieldError cria um erro de validação apontando o campo problemático
func NewFieldError(code string, field string, details string) *LedgerError {
	return &LedgerError{
		Err:     ErrValidation,
		Code:    code,
		Field:   field,
		Details: details,
	}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsConstraintError(err error) bool {
	return errors.Is(err, ErrConstraint)
}

func IsStoreError(err error) bool {
	return errors.Is(err, ErrStore)
}
