package aggregating

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
)

// Aggregator consolida os fatos de venda. Nenhuma consulta grava nada e
// a ausência de fatos resulta em série vazia, nunca em erro.
type Aggregator interface {
	MonthlyTotals(productID int, zone domain.ZoneFilter) (domain.AggregateSeries, error)
	ProductTotalsForZone(zoneID int) ([]domain.ProductTotal, error)
}

type Service struct {
	salesRepo   repository.SalesFactRepository
	productRepo repository.ProductRepository
}

func NewService(salesRepo repository.SalesFactRepository, productRepo repository.ProductRepository) Aggregator {
	return &Service{
		salesRepo:   salesRepo,
		productRepo: productRepo,
	}
}

// MonthlyTotals soma as quantidades por mês do produto, opcionalmente restrito a uma zona.
// Meses sem venda não aparecem na série.
func (s *Service) MonthlyTotals(productID int, zone domain.ZoneFilter) (domain.AggregateSeries, error) {
	filter := domain.FactFilter{ProductID: &productID}
	if number, ok := zone.Zone(); ok {
		filter.ZoneID = &number
	}

	facts, err := s.salesRepo.Scan(filter)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"product_id": productID,
			"zone":       zone.String(),
			"error":      err,
		}).Error("Erro ao varrer vendas do produto")
		return nil, domain.NewLedgerError(errors.Wrap(err, "totais mensais"), apiErrors.ErrDatabaseOperation, "Falha ao consultar vendas do produto")
	}

	byMonth := make(map[int]int)
	for _, fact := range facts {
		byMonth[fact.Month] += fact.Quantity
	}

	series := make(domain.AggregateSeries, 0, len(byMonth))
	for month, total := range byMonth {
		series = append(series, domain.MonthlyTotal{Month: month, Quantity: total})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})

	return series, nil
}

// ProductTotalsForZone soma as quantidades por produto na zona, da maior para a menor.
// Empates mantêm a ordem em que o produto apareceu na varredura.
func (s *Service) ProductTotalsForZone(zoneID int) ([]domain.ProductTotal, error) {
	facts, err := s.salesRepo.Scan(domain.FactFilter{ZoneID: &zoneID})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"zone_id": zoneID,
			"error":   err,
		}).Error("Erro ao varrer vendas da zona")
		return nil, domain.NewLedgerError(errors.Wrap(err, "totais por produto"), apiErrors.ErrDatabaseOperation, "Falha ao consultar vendas da zona")
	}

	totals := make([]domain.ProductTotal, 0)
	index := make(map[int]int)
	for _, fact := range facts {
		i, seen := index[fact.ProductID]
		if !seen {
			i = len(totals)
			index[fact.ProductID] = i
			totals = append(totals, domain.ProductTotal{ProductID: fact.ProductID})
		}
		totals[i].Quantity += fact.Quantity
	}

	if len(totals) == 0 {
		return totals, nil
	}

	productIDs := make([]int, 0, len(totals))
	for _, total := range totals {
		productIDs = append(productIDs, total.ProductID)
	}

	products, err := s.productRepo.GetProductsByIDs(productIDs)
	if err != nil {
		return nil, domain.NewLedgerError(errors.Wrap(err, "nomes dos produtos"), apiErrors.ErrDatabaseOperation, "Falha ao consultar produtos da zona")
	}

	for i := range totals {
		if product, ok := products[totals[i].ProductID]; ok {
			totals[i].ProductName = product.Name
			continue
		}
		logrus.WithField("product_id", totals[i].ProductID).Warn("Produto sem cadastro encontrado nas vendas da zona")
		totals[i].ProductName = fmt.Sprintf("#%d", totals[i].ProductID)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Quantity > totals[j].Quantity
	})

	return totals, nil
}
