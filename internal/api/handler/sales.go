package handler

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

// formValue aceita tanto número quanto texto no JSON, preservando o texto cru
// para que a validação aconteça no serviço
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}

	*v = formValue(data)
	return nil
}

type RecordSaleRequest struct {
	Month     formValue `json:"month"`
	ProductID formValue `json:"product_id"`
	Quantity  formValue `json:"quantity"`
	ZoneID    formValue `json:"zone_id"`
}

func (r RecordSaleRequest) toForm() domain.SaleForm {
	return domain.SaleForm{
		Month:     string(r.Month),
		ProductID: string(r.ProductID),
		Quantity:  string(r.Quantity),
		ZoneID:    string(r.ZoneID),
	}
}

// RecordSale aceita JSON ou formulário urlencoded com os quatro campos da venda
func RecordSale(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := decodeSaleForm(w, r)
		if !ok {
			return
		}

		outcome, err := service.RecordSaleInput(form)
		if err != nil {
			writeLedgerError(w, err, "Erro ao registrar venda")
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"operation":  outcome.Operation,
			"month":      outcome.Key.Month,
			"product_id": outcome.Key.ProductID,
			"zone_id":    outcome.Key.ZoneID,
			"quantity":   outcome.Quantity,
		}).Info("Venda registrada")

		status := http.StatusOK
		if outcome.Operation == domain.SaleInserted {
			status = http.StatusCreated
		}
		writeJSON(w, status, outcome)
	}
}

func decodeSaleForm(w http.ResponseWriter, r *http.Request) (domain.SaleForm, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			logrus.WithError(err).Warn("Formulário de venda inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return domain.SaleForm{}, false
		}
		return domain.SaleForm{
			Month:     strings.TrimSpace(r.PostForm.Get("month")),
			ProductID: strings.TrimSpace(r.PostForm.Get("product_id")),
			Quantity:  strings.TrimSpace(r.PostForm.Get("quantity")),
			ZoneID:    strings.TrimSpace(r.PostForm.Get("zone_id")),
		}, true
	}

	var req RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return domain.SaleForm{}, false
	}
	return req.toForm(), true
}
