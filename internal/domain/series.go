package domain

import (
	"fmt"
	"time"
)

// ZoneFilter representa o filtro opcional de zona.
// A zona 0 é uma zona válida, por isso a ausência de filtro é explícita.
type ZoneFilter struct {
	number int
	set    bool
}

func AllZones() ZoneFilter {
	return ZoneFilter{}
}

func OnlyZone(number int) ZoneFilter {
	return ZoneFilter{number: number, set: true}
}

// Zone retorna o número da zona e se o filtro está ativo
func (z ZoneFilter) Zone() (int, bool) {
	return z.number, z.set
}

func (z ZoneFilter) String() string {
	if !z.set {
		return "todas as zonas"
	}
	return fmt.Sprintf("zona %d", z.number)
}

// MonthlyTotal é um ponto da série agregada
type MonthlyTotal struct {
	Month    int `json:"month"`
	Quantity int `json:"total_quantity"`
}

// AggregateSeries é ordenada por mês de forma estritamente crescente, sem meses repetidos
type AggregateSeries []MonthlyTotal

func (s AggregateSeries) LastMonth() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Month
}

type ProductTotal struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"total_quantity"`
}

// MaxForecastHorizon é o teto absoluto de meses projetados, acima de qualquer configuração
const MaxForecastHorizon = 120

type ForecastPoint struct {
	Month     int     `json:"month"`
	Predicted float64 `json:"predicted_quantity"`
}

// TrendLine é a reta ajustada por mínimos quadrados, exposta como diagnóstico
type TrendLine struct {
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	RSquared  float64   `json:"r_squared"`
	Residuals []float64 `json:"residuals"`
}

func (t TrendLine) At(month int) float64 {
	return t.Intercept + t.Slope*float64(month)
}

// SalesTrend é a resposta da consulta de tendência de um produto
type SalesTrend struct {
	ProductID        int             `json:"product_id"`
	Zone             *int            `json:"zone,omitempty"`
	Series           AggregateSeries `json:"series"`
	Forecast         []ForecastPoint `json:"forecast,omitempty"`
	Trend            *TrendLine      `json:"trend,omitempty"`
	InsufficientData bool            `json:"insufficient_data"`
}

type ZoneRankingEntry struct {
	ID          int       `json:"id"`
	ZoneNumber  int       `json:"zone_number"`
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"total_quantity"`
	Position    int       `json:"position"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type ZoneRankingResponse struct {
	ZoneNumber  int                `json:"zone_number"`
	Ranking     []ZoneRankingEntry `json:"ranking"`
	LastRefresh time.Time          `json:"last_refresh"`
}
