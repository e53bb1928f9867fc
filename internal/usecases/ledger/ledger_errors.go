package ledger

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
)

// translateStoreError converte o erro do repositório em LedgerError com o código de API correto
func translateStoreError(err error, details string) error {
	var violation *repository.ConstraintViolation
	if errors.As(err, &violation) {
		code := apiErrors.ErrOutOfRange
		switch {
		case violation.IsForeignKey():
			code = apiErrors.ErrReferenceNotFound
		case violation.IsUnique():
			code = apiErrors.ErrAlreadyExists
		}
		return &domain.LedgerError{
			Err:     err,
			Code:    code,
			Details: details,
		}
	}

	var outOfRange *repository.OutOfRange
	if errors.As(err, &outOfRange) {
		return &domain.LedgerError{
			Err:     err,
			Code:    apiErrors.ErrOutOfRange,
			Details: details,
		}
	}

	return domain.NewLedgerError(errors.Wrap(err, details), apiErrors.ErrDatabaseOperation, details)
}
