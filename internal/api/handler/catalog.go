package handler

import (
	"net/http"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
)

func CreateProduct(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		product, err := service.AddProduct(req)
		if err != nil {
			writeLedgerError(w, err, "Erro ao cadastrar produto")
			return
		}

		writeJSON(w, http.StatusCreated, product)
	}
}

func ListProducts(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := service.ListProducts()
		if err != nil {
			writeLedgerError(w, err, "Erro ao listar produtos")
			return
		}

		writeJSON(w, http.StatusOK, products)
	}
}

func GetProduct(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := pathInt(w, r, "id")
		if !ok {
			return
		}

		product, err := service.GetProduct(productID)
		if err != nil {
			writeLedgerError(w, err, "Erro ao consultar produto")
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}

// LookupProduct busca o código do produto pelo nome exato informado em ?name=
func LookupProduct(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.LookupProductIDByName(r.URL.Query().Get("name"))
		if err != nil {
			writeLedgerError(w, err, "Erro ao buscar produto")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func CreateZone(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateZoneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		zone, err := service.AddZone(req)
		if err != nil {
			writeLedgerError(w, err, "Erro ao cadastrar zona")
			return
		}

		writeJSON(w, http.StatusCreated, zone)
	}
}

func ListZones(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zones, err := service.ListZones()
		if err != nil {
			writeLedgerError(w, err, "Erro ao listar zonas")
			return
		}

		writeJSON(w, http.StatusOK, zones)
	}
}

func GetZone(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zoneNumber, ok := pathInt(w, r, "number")
		if !ok {
			return
		}

		zone, err := service.GetZone(zoneNumber)
		if err != nil {
			writeLedgerError(w, err, "Erro ao consultar zona")
			return
		}

		writeJSON(w, http.StatusOK, zone)
	}
}

func LookupZone(service ledger.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.LookupZoneNumberByName(r.URL.Query().Get("name"))
		if err != nil {
			writeLedgerError(w, err, "Erro ao buscar zona")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
