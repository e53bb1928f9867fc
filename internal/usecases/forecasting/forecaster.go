package forecasting

import (
	"fmt"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
)

// Fit ajusta quantidade ~ mês por mínimos quadrados ordinários.
// Com menos de 2 pontos, ou todos no mesmo mês, devolve ErrInsufficientData.
func Fit(series domain.AggregateSeries) (*domain.TrendLine, error) {
	n := float64(len(series))
	if len(series) < 2 {
		return nil, domain.ErrInsufficientData
	}

	var sumX, sumY float64
	for _, p := range series {
		sumX += float64(p.Month)
		sumY += float64(p.Quantity)
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxy, sxx, syy float64
	for _, p := range series {
		dx := float64(p.Month) - meanX
		dy := float64(p.Quantity) - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	if sxx == 0 {
		return nil, domain.ErrInsufficientData
	}

	line := &domain.TrendLine{
		Slope: sxy / sxx,
	}
	line.Intercept = meanY - line.Slope*meanX

	var sse float64
	line.Residuals = make([]float64, 0, len(series))
	for _, p := range series {
		r := float64(p.Quantity) - line.At(p.Month)
		line.Residuals = append(line.Residuals, r)
		sse += r * r
	}

	// série constante: a reta horizontal explica tudo
	line.RSquared = 1
	if syy > 0 {
		line.RSquared = 1 - sse/syy
	}

	return line, nil
}

// FitAndProject ajusta a reta e projeta os horizon meses seguintes ao último mês observado.
// A projeção não é limitada a dezembro: o mês 13 é o primeiro mês após o fim da série.
func FitAndProject(series domain.AggregateSeries, horizon int) ([]domain.ForecastPoint, *domain.TrendLine, error) {
	if horizon < 1 || horizon > domain.MaxForecastHorizon {
		return nil, nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "horizon",
			fmt.Sprintf("o horizonte deve estar entre 1 e %d, recebido %d", domain.MaxForecastHorizon, horizon))
	}

	line, err := Fit(series)
	if err != nil {
		return nil, nil, err
	}

	lastMonth := series.LastMonth()
	points := make([]domain.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		month := lastMonth + i
		points = append(points, domain.ForecastPoint{
			Month:     month,
			Predicted: line.At(month),
		})
	}

	return points, line, nil
}
