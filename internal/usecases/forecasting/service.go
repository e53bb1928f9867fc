package forecasting

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/internal/chart"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

const (
	salesSeriesLabel    = "Vendas"
	forecastSeriesLabel = "Previsão"
)

type Forecaster interface {
	SalesTrend(productID int, zone domain.ZoneFilter, horizon int, sink chart.Sink) (*domain.SalesTrend, error)
	ZoneDistribution(zoneID int, sink chart.Sink) ([]domain.ProductTotal, error)
}

type Service struct {
	aggregator aggregating.Aggregator
	cfg        *config.Config
}

func NewService(aggregator aggregating.Aggregator, cfg *config.Config) Forecaster {
	return &Service{
		aggregator: aggregator,
		cfg:        cfg,
	}
}

// maxHorizon devolve o limite configurado, nunca acima do teto absoluto
func (s *Service) maxHorizon() int {
	limit := s.cfg.Forecast.MaxHorizon
	if limit < 1 || limit > domain.MaxForecastHorizon {
		return domain.MaxForecastHorizon
	}
	return limit
}

// SalesTrend monta a série mensal do produto e, havendo ao menos 2 meses, a projeção.
// Com dados insuficientes a série crua vai para o gráfico sem linha de tendência.
// horizon 0 usa o horizonte configurado.
func (s *Service) SalesTrend(productID int, zone domain.ZoneFilter, horizon int, sink chart.Sink) (*domain.SalesTrend, error) {
	if horizon == 0 {
		horizon = s.cfg.Forecast.Horizon
	}
	maxHorizon := s.maxHorizon()
	if horizon < 1 || horizon > maxHorizon {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "horizon",
			fmt.Sprintf("o horizonte deve estar entre 1 e %d", maxHorizon))
	}

	series, err := s.aggregator.MonthlyTotals(productID, zone)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, domain.NewLedgerError(domain.ErrNoSalesData, apiErrors.ErrNoSalesData,
			fmt.Sprintf("produto %d em %s", productID, zone))
	}

	trend := &domain.SalesTrend{
		ProductID: productID,
		Series:    series,
	}
	if number, ok := zone.Zone(); ok {
		trend.Zone = &number
	}

	forecast, line, err := FitAndProject(series, horizon)
	switch {
	case errors.Is(err, domain.ErrInsufficientData):
		trend.InsufficientData = true
		logrus.WithFields(logrus.Fields{
			"product_id": productID,
			"zone":       zone.String(),
			"points":     len(series),
		}).Info("Dados insuficientes para tendência, exibindo série crua")
	case err != nil:
		return nil, err
	default:
		trend.Forecast = forecast
		trend.Trend = line
	}

	if err := sink.Line(trendChart(trend, zone)); err != nil {
		return nil, errors.Wrap(err, "erro ao enviar gráfico de tendência")
	}

	return trend, nil
}

func trendChart(trend *domain.SalesTrend, zone domain.ZoneFilter) chart.LineChart {
	sales := chart.LineSeries{
		Label:  salesSeriesLabel,
		Style:  "solid",
		Points: make([]chart.Point, 0, len(trend.Series)),
	}
	for _, p := range trend.Series {
		sales.Points = append(sales.Points, chart.Point{X: float64(p.Month), Y: float64(p.Quantity)})
	}

	line := chart.LineChart{
		Title:  fmt.Sprintf("Vendas do produto %d (%s)", trend.ProductID, zone),
		XLabel: "Mês",
		YLabel: "Quantidade",
		Series: []chart.LineSeries{sales},
	}

	if len(trend.Forecast) > 0 {
		// a projeção parte do último ponto observado para a linha ficar contínua
		last := trend.Series[len(trend.Series)-1]
		projection := chart.LineSeries{
			Label:  forecastSeriesLabel,
			Style:  "dashed",
			Points: []chart.Point{{X: float64(last.Month), Y: float64(last.Quantity)}},
		}
		for _, p := range trend.Forecast {
			projection.Points = append(projection.Points, chart.Point{
				X: float64(p.Month),
				Y: utils.RoundWithTwoDecimalPlace(p.Predicted),
			})
		}
		line.Series = append(line.Series, projection)
	}

	return line
}

// ZoneDistribution envia para o gráfico de pizza a participação de cada produto na zona
func (s *Service) ZoneDistribution(zoneID int, sink chart.Sink) ([]domain.ProductTotal, error) {
	totals, err := s.aggregator.ProductTotalsForZone(zoneID)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, domain.NewLedgerError(domain.ErrNoSalesData, apiErrors.ErrNoSalesData, fmt.Sprintf("zona %d", zoneID))
	}

	labels := make([]string, 0, len(totals))
	values := make([]float64, 0, len(totals))
	for _, total := range totals {
		labels = append(labels, total.ProductName)
		values = append(values, float64(total.Quantity))
	}

	if err := sink.Pie(chart.NewPieChart(fmt.Sprintf("Distribuição de vendas da zona %d", zoneID), labels, values)); err != nil {
		return nil, errors.Wrap(err, "erro ao enviar gráfico de distribuição")
	}

	return totals, nil
}
