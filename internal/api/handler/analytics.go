package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-ledger-api/internal/chart"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
)

type TrendResponse struct {
	Trend *domain.SalesTrend `json:"trend"`
	Chart *chart.Envelope    `json:"chart"`
}

type DistributionResponse struct {
	Totals []domain.ProductTotal `json:"totals"`
	Chart  *chart.Envelope       `json:"chart"`
}

// zoneFromQuery lê ?zone=; ausente significa todas as zonas
func zoneFromQuery(w http.ResponseWriter, r *http.Request) (domain.ZoneFilter, bool) {
	raw := r.URL.Query().Get("zone")
	if raw == "" {
		return domain.AllZones(), true
	}

	number, err := strconv.Atoi(raw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Zona deve ser numérica", map[string]any{"field": "zone"})
		return domain.ZoneFilter{}, false
	}
	if number < 0 {
		apiErrors.WriteError(w, apiErrors.ErrOutOfRange, "Zona deve ser >= 0", map[string]any{"field": "zone"})
		return domain.ZoneFilter{}, false
	}

	return domain.OnlyZone(number), true
}

func MonthlyTotals(service aggregating.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := pathInt(w, r, "id")
		if !ok {
			return
		}
		zone, ok := zoneFromQuery(w, r)
		if !ok {
			return
		}

		series, err := service.MonthlyTotals(productID, zone)
		if err != nil {
			writeLedgerError(w, err, "Erro ao agregar vendas do produto")
			return
		}

		writeJSON(w, http.StatusOK, series)
	}
}

// Forecast devolve a série, a tendência e o gráfico pronto para o frontend
func Forecast(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := pathInt(w, r, "id")
		if !ok {
			return
		}
		zone, ok := zoneFromQuery(w, r)
		if !ok {
			return
		}

		horizon := 0
		if raw := r.URL.Query().Get("horizon"); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Horizonte deve ser numérico", map[string]any{"field": "horizon"})
				return
			}
			if value < 1 || value > domain.MaxForecastHorizon {
				apiErrors.WriteError(w, apiErrors.ErrOutOfRange,
					fmt.Sprintf("Horizonte deve estar entre 1 e %d", domain.MaxForecastHorizon), map[string]any{"field": "horizon"})
				return
			}
			horizon = value
		}

		recorder := chart.NewRecorder()
		trend, err := service.SalesTrend(productID, zone, horizon, recorder)
		if err != nil {
			writeLedgerError(w, err, "Erro ao calcular tendência de vendas")
			return
		}

		writeJSON(w, http.StatusOK, TrendResponse{Trend: trend, Chart: recorder.Last()})
	}
}

func ProductTotalsForZone(service aggregating.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zoneNumber, ok := pathInt(w, r, "number")
		if !ok {
			return
		}

		totals, err := service.ProductTotalsForZone(zoneNumber)
		if err != nil {
			writeLedgerError(w, err, "Erro ao agregar vendas da zona")
			return
		}

		writeJSON(w, http.StatusOK, totals)
	}
}

func ZoneDistribution(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zoneNumber, ok := pathInt(w, r, "number")
		if !ok {
			return
		}

		recorder := chart.NewRecorder()
		totals, err := service.ZoneDistribution(zoneNumber, recorder)
		if err != nil {
			writeLedgerError(w, err, "Erro ao montar distribuição da zona")
			return
		}

		writeJSON(w, http.StatusOK, DistributionResponse{Totals: totals, Chart: recorder.Last()})
	}
}
