package domain

import (
	"math"
	"time"
)

const (
	MinMonth = 1
	MaxMonth = 12

	// MaxStoredValue é o maior valor aceito pelas colunas INTEGER do banco
	MaxStoredValue = math.MaxInt32
)

// SaleOperation indica se o registro de venda criou um fato novo ou acumulou em um existente
type SaleOperation string

const (
	SaleInserted SaleOperation = "insert"
	SaleUpdated  SaleOperation = "update"
)

// FactKey é a chave lógica de um fato de venda: no máximo um fato por chave
type FactKey struct {
	Month     int `json:"month"`
	ProductID int `json:"product_id"`
	ZoneID    int `json:"zone_id"`
}

type SalesFact struct {
	ID        int64     `json:"id"`
	Month     int       `json:"month"`
	ProductID int       `json:"product_id"`
	ZoneID    int       `json:"zone_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f SalesFact) Key() FactKey {
	return FactKey{Month: f.Month, ProductID: f.ProductID, ZoneID: f.ZoneID}
}

// SaleOutcome é o retorno de RecordSale, usado apenas para feedback ao usuário
type SaleOutcome struct {
	Operation SaleOperation `json:"operation"`
	Key       FactKey       `json:"key"`
	Added     int           `json:"added"`
	Quantity  int           `json:"quantity"`
}

// SaleForm carrega os campos crus vindos do formulário, ainda como texto
type SaleForm struct {
	Month     string `json:"month"`
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
	ZoneID    string `json:"zone_id"`
}

// FactFilter é o predicado de varredura dos fatos. Campos nil não filtram.
type FactFilter struct {
	ProductID *int
	ZoneID    *int
}
