package handler

import (
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeLedgerError usa o código carregado pelo LedgerError e cai para a taxonomia do domínio
func writeLedgerError(w http.ResponseWriter, err error, fallbackMsg string) {
	var ledgerErr *domain.LedgerError
	if errors.As(err, &ledgerErr) {
		var details map[string]any
		if ledgerErr.Field != "" {
			details = map[string]any{"field": ledgerErr.Field}
		}
		message := ledgerErr.Error()
		// erros de servidor carregam texto do driver, que fica só no log
		if strings.HasPrefix(ledgerErr.Code, "SRV_") {
			logrus.WithError(err).WithField("code", ledgerErr.Code).Error(fallbackMsg)
			message = ledgerErr.Details
			if message == "" {
				message = fallbackMsg
			}
		}
		apiErrors.WriteError(w, ledgerErr.Code, message, details)
		return
	}

	switch {
	case domain.IsValidationError(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case domain.IsConstraintError(err):
		apiErrors.WriteError(w, apiErrors.ErrReferenceNotFound, err.Error(), nil)
	case domain.IsStoreError(err):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, fallbackMsg, nil)
	default:
		logrus.WithError(err).Error(fallbackMsg)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMsg, nil)
	}
}

// pathInt lê um parâmetro numérico da rota, respondendo 400 quando inválido
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(name)
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro obrigatório ausente", map[string]any{"field": name})
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro deve ser numérico", map[string]any{"field": name})
		return 0, false
	}

	return value, true
}
