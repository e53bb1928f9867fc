// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

type Zone struct {
	Number    int       `json:"zone_number"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	ID    int             `json:"product_id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type CreateZoneRequest struct {
	Number int    `json:"zone_number"`
	Name   string `json:"name"`
}

// LookupResult é o resultado de uma busca exata por nome.
// Found=false não é erro: apenas não existe registro com aquele nome.
type LookupResult struct {
	Name  string `json:"name"`
	ID    int    `json:"id,omitempty"`
	Found bool   `json:"found"`
}
