package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/sales-ledger-api/internal/chart"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type testRepos struct {
	product *mocks.MockProductRepository
	zone    *mocks.MockZoneRepository
	sales   *mocks.MockSalesFactRepository
	ranking *mocks.MockZoneRankingRepository
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func intPtr(v int) *int {
	return &v
}

func newTestRouter(t *testing.T) (http.Handler, testRepos) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repos := testRepos{
		product: mocks.NewMockProductRepository(ctrl),
		zone:    mocks.NewMockZoneRepository(ctrl),
		sales:   mocks.NewMockSalesFactRepository(ctrl),
		ranking: mocks.NewMockZoneRankingRepository(ctrl),
	}

	cfg := &config.Config{Forecast: config.Forecast{Horizon: 3, MaxHorizon: 12}}
	ledgerService := ledger.NewService(repos.product, repos.zone, repos.sales)
	aggregator := aggregating.NewService(repos.sales, repos.product)
	forecaster := forecasting.NewService(aggregator, cfg)
	rankingService := ranking.NewZoneRankingService(repos.zone, repos.ranking)

	rt := router.New(
		router.WithRoutes(Healthcheck(stubPinger{})...),
		router.WithRoutes(Catalog(ledgerService)...),
		router.WithRoutes(Sales(ledgerService)...),
		router.WithRoutes(Analytics(aggregator, forecaster)...),
		router.WithRoutes(ZoneRanking(rankingService)...),
		router.WithRoutes(CronJobs(CronJobServices{})...),
	)

	return rt, repos
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

// acumula no mapa como o upsert do banco faria
func accumulateInMemory(store map[domain.FactKey]int) func(*domain.SalesFact) (bool, error) {
	return func(fact *domain.SalesFact) (bool, error) {
		current, exists := store[fact.Key()]
		store[fact.Key()] = current + fact.Quantity
		fact.Quantity = store[fact.Key()]
		return !exists, nil
	}
}

func TestRecordSale_JSON(t *testing.T) {
	h, repos := newTestRouter(t)
	store := map[domain.FactKey]int{}
	repos.sales.EXPECT().Accumulate(gomock.Any()).DoAndReturn(accumulateInMemory(store)).Times(2)

	first := serve(h, httptest.NewRequest(http.MethodPost, "/v1/sales",
		strings.NewReader(`{"month": 3, "product_id": 7, "zone_id": 0, "quantity": 5}`)))

	require.Equal(t, http.StatusCreated, first.Code)
	var outcome domain.SaleOutcome
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &outcome))
	assert.Equal(t, domain.SaleInserted, outcome.Operation)
	assert.Equal(t, 5, outcome.Quantity)

	// números como texto também são aceitos
	second := serve(h, httptest.NewRequest(http.MethodPost, "/v1/sales",
		strings.NewReader(`{"month": "3", "product_id": "7", "zone_id": "0", "quantity": "3"}`)))

	require.Equal(t, http.StatusOK, second.Code)
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &outcome))
	assert.Equal(t, domain.SaleUpdated, outcome.Operation)
	assert.Equal(t, 3, outcome.Added)
	assert.Equal(t, 8, outcome.Quantity)
}

func TestRecordSale_Form(t *testing.T) {
	h, repos := newTestRouter(t)
	repos.sales.EXPECT().Accumulate(gomock.Any()).DoAndReturn(accumulateInMemory(map[domain.FactKey]int{}))

	form := url.Values{"month": {"12"}, "product_id": {"1"}, "zone_id": {"2"}, "quantity": {"4"}}
	req := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(h, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"month":12`)
}

func TestRecordSale_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{name: "json malformado", body: `{"month":`, wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidRequest},
		{name: "mês fora do intervalo", body: `{"month": 13, "product_id": 1, "zone_id": 0, "quantity": 1}`, wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrOutOfRange, wantField: "month"},
		{name: "quantidade não numérica", body: `{"month": 1, "product_id": 1, "zone_id": 0, "quantity": "abc"}`, wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidFormat, wantField: "quantity"},
		{name: "campo ausente", body: `{"month": 1, "product_id": 1, "quantity": 2}`, wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrMissingRequiredData, wantField: "zone_id"},
		{name: "quantidade negativa", body: `{"month": 1, "product_id": 1, "zone_id": 0, "quantity": -1}`, wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrOutOfRange, wantField: "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t)

			rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			apiErr := decodeAPIError(t, rec)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			if tt.wantField != "" {
				assert.Equal(t, map[string]any{"field": tt.wantField}, apiErr.Details)
			}
		})
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("cadastra com preço arredondado", func(t *testing.T) {
		h, repos := newTestRouter(t)
		repos.product.EXPECT().
			InsertProduct(gomock.Any()).
			DoAndReturn(func(p *domain.Product) error {
				assert.Equal(t, "Caneta", p.Name)
				assert.True(t, decimal.RequireFromString("2.35").Equal(p.Price))
				return nil
			})

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/products",
			strings.NewReader(`{"product_id": 1, "name": " Caneta ", "price": "2.349"}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("falha no banco", func(t *testing.T) {
		h, repos := newTestRouter(t)
		repos.product.EXPECT().InsertProduct(gomock.Any()).Return(domain.ErrStore)

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/products",
			strings.NewReader(`{"product_id": 1, "name": "Caneta", "price": 2}`)))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, rec).Code)
	})

	t.Run("mensagem do driver não chega ao cliente", func(t *testing.T) {
		h, repos := newTestRouter(t)
		driverErr := fmt.Errorf("%w: inserir produto: %w", domain.ErrStore,
			&pq.Error{Code: "53300", Message: "too many connections for role \"ledger\""})
		repos.product.EXPECT().InsertProduct(gomock.Any()).Return(driverErr)

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/products",
			strings.NewReader(`{"product_id": 1, "name": "Caneta", "price": 2}`)))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq:")
		assert.NotContains(t, rec.Body.String(), "too many connections")
		apiErr := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, apiErr.Code)
		assert.Equal(t, "Falha ao cadastrar o produto 1", apiErr.Message)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("inexistente", func(t *testing.T) {
		h, repos := newTestRouter(t)
		repos.product.EXPECT().GetProduct(9).Return(nil, nil)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/9", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, decodeAPIError(t, rec).Code)
	})

	t.Run("id não numérico", func(t *testing.T) {
		h, _ := newTestRouter(t)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})
}

func TestLookup(t *testing.T) {
	h, repos := newTestRouter(t)
	repos.product.EXPECT().FindByName("Caneta").Return(&domain.Product{ID: 4, Name: "Caneta"}, nil)
	repos.zone.EXPECT().FindByName("Sul").Return(nil, nil)

	product := serve(h, httptest.NewRequest(http.MethodGet, "/v1/lookup/products?name=Caneta", nil))
	zone := serve(h, httptest.NewRequest(http.MethodGet, "/v1/lookup/zones?name=Sul", nil))

	require.Equal(t, http.StatusOK, product.Code)
	assert.JSONEq(t, `{"name":"Caneta","id":4,"found":true}`, product.Body.String())
	require.Equal(t, http.StatusOK, zone.Code)
	assert.JSONEq(t, `{"name":"Sul","found":false}`, zone.Body.String())
}

func TestMonthlyTotals_ZoneQuery(t *testing.T) {
	t.Run("zona 0 é um filtro válido", func(t *testing.T) {
		h, repos := newTestRouter(t)
		repos.sales.EXPECT().
			Scan(domain.FactFilter{ProductID: intPtr(7), ZoneID: intPtr(0)}).
			Return([]*domain.SalesFact{{Month: 2, ProductID: 7, Quantity: 4}, {Month: 1, ProductID: 7, Quantity: 1}}, nil)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/7/monthly-totals?zone=0", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"month":1,"total_quantity":1},{"month":2,"total_quantity":4}]`, rec.Body.String())
	})

	t.Run("sem zona soma todas", func(t *testing.T) {
		h, repos := newTestRouter(t)
		repos.sales.EXPECT().
			Scan(domain.FactFilter{ProductID: intPtr(7)}).
			Return([]*domain.SalesFact{{Month: 1, ProductID: 7, ZoneID: 0, Quantity: 1}, {Month: 1, ProductID: 7, ZoneID: 3, Quantity: 2}}, nil)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/7/monthly-totals", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"month":1,"total_quantity":3}]`, rec.Body.String())
	})

	t.Run("zona negativa", func(t *testing.T) {
		h, _ := newTestRouter(t)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/7/monthly-totals?zone=-1", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestForecast(t *testing.T) {
	t.Run("retorna tendência e gráfico", func(t *testing.T) {
		h, repos := newTestRouter(t)
		repos.sales.EXPECT().
			Scan(domain.FactFilter{ProductID: intPtr(1)}).
			Return([]*domain.SalesFact{
				{Month: 1, ProductID: 1, Quantity: 10},
				{Month: 2, ProductID: 1, Quantity: 20},
				{Month: 3, ProductID: 1, Quantity: 30},
			}, nil)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/1/forecast?horizon=2", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp TrendResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Trend.Forecast, 2)
		assert.Equal(t, 4, resp.Trend.Forecast[0].Month)
		assert.InDelta(t, 40.0, resp.Trend.Forecast[0].Predicted, 1e-9)
		require.NotNil(t, resp.Chart)
		assert.Equal(t, chart.KindLine, resp.Chart.Kind)
		assert.Len(t, resp.Chart.Line.Series, 2)
	})

	t.Run("produto sem vendas", func(t *testing.T) {
		h, repos := newTestRouter(t)
		repos.sales.EXPECT().Scan(gomock.Any()).Return(nil, nil)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/1/forecast", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNoSalesData, decodeAPIError(t, rec).Code)
	})

	t.Run("horizonte inválido", func(t *testing.T) {
		h, _ := newTestRouter(t)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/1/forecast?horizon=0", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrOutOfRange, decodeAPIError(t, rec).Code)
	})

	t.Run("horizonte gigante é rejeitado sem consultar o banco", func(t *testing.T) {
		h, _ := newTestRouter(t)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/1/forecast?horizon=1000000000000", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrOutOfRange, decodeAPIError(t, rec).Code)
	})

	t.Run("horizonte acima do máximo configurado", func(t *testing.T) {
		h, _ := newTestRouter(t)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products/1/forecast?horizon=13", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrOutOfRange, apiErr.Code)
		assert.Equal(t, map[string]any{"field": "horizon"}, apiErr.Details)
	})
}

func TestZoneDistribution(t *testing.T) {
	h, repos := newTestRouter(t)
	repos.sales.EXPECT().
		Scan(domain.FactFilter{ZoneID: intPtr(2)}).
		Return([]*domain.SalesFact{
			{Month: 1, ProductID: 1, ZoneID: 2, Quantity: 5},
			{Month: 2, ProductID: 1, ZoneID: 2, Quantity: 3},
			{Month: 1, ProductID: 2, ZoneID: 2, Quantity: 10},
		}, nil)
	repos.product.EXPECT().
		GetProductsByIDs([]int{1, 2}).
		Return(map[int]*domain.Product{1: {ID: 1, Name: "p1"}, 2: {ID: 2, Name: "p2"}}, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/zones/2/distribution", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DistributionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Totals, 2)
	assert.Equal(t, "p2", resp.Totals[0].ProductName)
	require.NotNil(t, resp.Chart)
	assert.Equal(t, chart.KindPie, resp.Chart.Kind)
	assert.Equal(t, 55.56, resp.Chart.Pie.Slices[0].Percent)
}

func TestGetZoneRanking(t *testing.T) {
	h, repos := newTestRouter(t)
	refreshed := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	repos.zone.EXPECT().GetZone(1).Return(&domain.Zone{Number: 1, Name: "Norte"}, nil)
	repos.ranking.EXPECT().GetZoneRanking(1).Return(&domain.ZoneRankingResponse{
		ZoneNumber:  1,
		Ranking:     []domain.ZoneRankingEntry{{ZoneNumber: 1, ProductID: 2, Quantity: 10, Position: 1}},
		LastRefresh: refreshed,
	}, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/zones/1/ranking", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"position":1`)
}

func TestCron_WithoutService(t *testing.T) {
	h, _ := newTestRouter(t)

	run := serve(h, httptest.NewRequest(http.MethodPost, "/v1/cron/run/zone-ranking", nil))
	unknown := serve(h, httptest.NewRequest(http.MethodPost, "/v1/cron/run/meta", nil))
	status := serve(h, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, run.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, http.StatusOK, status.Code)
}

func TestHealthcheck(t *testing.T) {
	ok := serve(HealthcheckHandler(stubPinger{}), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	down := serve(HealthcheckHandler(stubPinger{err: errors.New("connection refused")}), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, http.StatusServiceUnavailable, down.Code)
}

func TestFormValue_UnmarshalJSON(t *testing.T) {
	var req RecordSaleRequest
	require.NoError(t, json.Unmarshal([]byte(`{"month": 3, "product_id": " 7 ", "quantity": null}`), &req))

	form := req.toForm()
	assert.Equal(t, "3", form.Month)
	assert.Equal(t, " 7 ", form.ProductID)
	assert.Equal(t, "", form.Quantity)
	assert.Equal(t, "", form.ZoneID)
}

func TestListCatalog(t *testing.T) {
	h, repos := newTestRouter(t)
	repos.product.EXPECT().ListProducts().Return([]*domain.Product{{ID: 1, Name: "Caneta", Price: decimal.NewFromInt(2)}}, nil)
	repos.zone.EXPECT().ListZones().Return(nil, domain.ErrStore)

	products := serve(h, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
	zones := serve(h, httptest.NewRequest(http.MethodGet, "/v1/zones", nil))

	assert.Equal(t, http.StatusOK, products.Code)
	assert.Contains(t, products.Body.String(), "Caneta")
	assert.Equal(t, http.StatusServiceUnavailable, zones.Code)
}
