package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
)

type Manager interface {
	RecordSale(month, productID, zoneID, quantity int) (*domain.SaleOutcome, error)
	RecordSaleInput(form domain.SaleForm) (*domain.SaleOutcome, error)
	AddProduct(request domain.CreateProductRequest) (*domain.Product, error)
	AddZone(request domain.CreateZoneRequest) (*domain.Zone, error)
	GetProduct(productID int) (*domain.Product, error)
	GetZone(zoneNumber int) (*domain.Zone, error)
	LookupProductIDByName(name string) (*domain.LookupResult, error)
	LookupZoneNumberByName(name string) (*domain.LookupResult, error)
	ListProducts() ([]*domain.Product, error)
	ListZones() ([]*domain.Zone, error)
}

type Service struct {
	productRepo repository.ProductRepository
	zoneRepo    repository.ZoneRepository
	salesRepo   repository.SalesFactRepository
}

func NewService(
	productRepo repository.ProductRepository,
	zoneRepo repository.ZoneRepository,
	salesRepo repository.SalesFactRepository,
) Manager {
	return &Service{
		productRepo: productRepo,
		zoneRepo:    zoneRepo,
		salesRepo:   salesRepo,
	}
}

// RecordSale soma a quantidade ao fato da chave (mês, produto, zona), criando-o na primeira venda.
// A gravação é um único upsert no banco, então vendas concorrentes na mesma chave acumulam.
func (s *Service) RecordSale(month, productID, zoneID, quantity int) (*domain.SaleOutcome, error) {
	if month < domain.MinMonth || month > domain.MaxMonth {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "month", fmt.Sprintf("o mês deve estar entre %d e %d", domain.MinMonth, domain.MaxMonth))
	}
	if quantity < 0 {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "quantity", "a quantidade não pode ser negativa")
	}
	if quantity > domain.MaxStoredValue {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "quantity", fmt.Sprintf("a quantidade não pode passar de %d", domain.MaxStoredValue))
	}
	if productID < 0 || productID > domain.MaxStoredValue {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "product_id", fmt.Sprintf("o código do produto deve estar entre 0 e %d", domain.MaxStoredValue))
	}
	if zoneID < 0 || zoneID > domain.MaxStoredValue {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "zone_id", fmt.Sprintf("o número da zona deve estar entre 0 e %d", domain.MaxStoredValue))
	}

	fact := &domain.SalesFact{
		Month:     month,
		ProductID: productID,
		ZoneID:    zoneID,
		Quantity:  quantity,
	}

	inserted, err := s.salesRepo.Accumulate(fact)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"month":      month,
			"product_id": productID,
			"zone_id":    zoneID,
			"error":      err,
		}).Error("Erro ao registrar venda")
		var outOfRange *repository.OutOfRange
		if errors.As(err, &outOfRange) {
			return nil, &domain.LedgerError{
				Err:     err,
				Code:    apiErrors.ErrOutOfRange,
				Field:   "quantity",
				Details: fmt.Sprintf("a quantidade acumulada da chave passaria de %d", domain.MaxStoredValue),
			}
		}
		return nil, translateStoreError(err, "Falha ao registrar a venda")
	}

	operation := domain.SaleUpdated
	if inserted {
		operation = domain.SaleInserted
	}

	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"month":     month,
		"product":   productID,
		"zone":      zoneID,
		"added":     quantity,
		"total":     fact.Quantity,
	}).Info("Venda registrada")

	return &domain.SaleOutcome{
		Operation: operation,
		Key:       fact.Key(),
		Added:     quantity,
		Quantity:  fact.Quantity,
	}, nil
}

// RecordSaleInput converte os campos de texto do formulário antes de registrar a venda
func (s *Service) RecordSaleInput(form domain.SaleForm) (*domain.SaleOutcome, error) {
	month, err := parseField("month", form.Month)
	if err != nil {
		return nil, err
	}
	productID, err := parseField("product_id", form.ProductID)
	if err != nil {
		return nil, err
	}
	quantity, err := parseField("quantity", form.Quantity)
	if err != nil {
		return nil, err
	}
	zoneID, err := parseField("zone_id", form.ZoneID)
	if err != nil {
		return nil, err
	}

	return s.RecordSale(month, productID, zoneID, quantity)
}

func parseField(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.NewFieldError(apiErrors.ErrMissingRequiredData, field, "campo obrigatório")
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewFieldError(apiErrors.ErrInvalidFormat, field, fmt.Sprintf("valor não numérico: %q", raw))
	}

	return value, nil
}

func (s *Service) AddProduct(request domain.CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, domain.NewFieldError(apiErrors.ErrMissingRequiredData, "name", "o nome do produto é obrigatório")
	}
	if request.ID < 0 || request.ID > domain.MaxStoredValue {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "product_id", fmt.Sprintf("o código do produto deve estar entre 0 e %d", domain.MaxStoredValue))
	}
	if request.Price.IsNegative() {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "price", "o preço não pode ser negativo")
	}

	product := &domain.Product{
		ID:    request.ID,
		Name:  name,
		Price: request.Price.Round(2),
	}

	if err := s.productRepo.InsertProduct(product); err != nil {
		logrus.WithField("error", err).Error("Erro ao inserir produto")
		return nil, translateStoreError(err, fmt.Sprintf("Falha ao cadastrar o produto %d", request.ID))
	}

	return product, nil
}

func (s *Service) AddZone(request domain.CreateZoneRequest) (*domain.Zone, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, domain.NewFieldError(apiErrors.ErrMissingRequiredData, "name", "o nome da zona é obrigatório")
	}
	if request.Number < 0 || request.Number > domain.MaxStoredValue {
		return nil, domain.NewFieldError(apiErrors.ErrOutOfRange, "zone_number", fmt.Sprintf("o número da zona deve estar entre 0 e %d", domain.MaxStoredValue))
	}

	zone := &domain.Zone{
		Number: request.Number,
		Name:   name,
	}

	if err := s.zoneRepo.InsertZone(zone); err != nil {
		logrus.WithField("error", err).Error("Erro ao inserir zona")
		return nil, translateStoreError(err, fmt.Sprintf("Falha ao cadastrar a zona %d", request.Number))
	}

	return zone, nil
}

func (s *Service) GetProduct(productID int) (*domain.Product, error) {
	product, err := s.productRepo.GetProduct(productID)
	if err != nil {
		return nil, translateStoreError(err, "Falha ao consultar o produto")
	}
	if product == nil {
		return nil, domain.NewLedgerError(domain.ErrProductNotFound, apiErrors.ErrNotFound, fmt.Sprintf("produto %d", productID))
	}

	return product, nil
}

func (s *Service) GetZone(zoneNumber int) (*domain.Zone, error) {
	zone, err := s.zoneRepo.GetZone(zoneNumber)
	if err != nil {
		return nil, translateStoreError(err, "Falha ao consultar a zona")
	}
	if zone == nil {
		return nil, domain.NewLedgerError(domain.ErrZoneNotFound, apiErrors.ErrNotFound, fmt.Sprintf("zona %d", zoneNumber))
	}

	return zone, nil
}

// LookupProductIDByName busca pelo nome exato, sem aproximação. Ausência não é erro.
func (s *Service) LookupProductIDByName(name string) (*domain.LookupResult, error) {
	if name == "" {
		return nil, domain.NewFieldError(apiErrors.ErrMissingRequiredData, "name", "informe o nome do produto")
	}

	product, err := s.productRepo.FindByName(name)
	if err != nil {
		return nil, translateStoreError(err, "Falha ao buscar produto por nome")
	}

	result := &domain.LookupResult{Name: name}
	if product != nil {
		result.ID = product.ID
		result.Found = true
	}

	return result, nil
}

func (s *Service) LookupZoneNumberByName(name string) (*domain.LookupResult, error) {
	if name == "" {
		return nil, domain.NewFieldError(apiErrors.ErrMissingRequiredData, "name", "informe o nome da zona")
	}

	zone, err := s.zoneRepo.FindByName(name)
	if err != nil {
		return nil, translateStoreError(err, "Falha ao buscar zona por nome")
	}

	result := &domain.LookupResult{Name: name}
	if zone != nil {
		result.ID = zone.Number
		result.Found = true
	}

	return result, nil
}

func (s *Service) ListProducts() ([]*domain.Product, error) {
	products, err := s.productRepo.ListProducts()
	if err != nil {
		return nil, translateStoreError(err, "Falha ao listar produtos")
	}

	return products, nil
}

func (s *Service) ListZones() ([]*domain.Zone, error) {
	zones, err := s.zoneRepo.ListZones()
	if err != nil {
		return nil, translateStoreError(err, "Falha ao listar zonas")
	}

	return zones, nil
}
