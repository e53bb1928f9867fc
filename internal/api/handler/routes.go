package handler

import (
	"net/http"

	"github.com/vfg2006/sales-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/ranking"
)

func Healthcheck(pinger Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(pinger),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Catalog(service ledger.Manager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/products",
			Method:  http.MethodGet,
			Handler: ListProducts(service),
		},
		{
			Path:    "/v1/products",
			Method:  http.MethodPost,
			Handler: CreateProduct(service),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodGet,
			Handler: GetProduct(service),
		},
		{
			Path:    "/v1/lookup/products",
			Method:  http.MethodGet,
			Handler: LookupProduct(service),
		},
		{
			Path:    "/v1/zones",
			Method:  http.MethodGet,
			Handler: ListZones(service),
		},
		{
			Path:    "/v1/zones",
			Method:  http.MethodPost,
			Handler: CreateZone(service),
		},
		{
			Path:    "/v1/zones/:number",
			Method:  http.MethodGet,
			Handler: GetZone(service),
		},
		{
			Path:    "/v1/lookup/zones",
			Method:  http.MethodGet,
			Handler: LookupZone(service),
		},
	}
}

func Sales(service ledger.Manager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodPost,
			Handler: RecordSale(service),
		},
	}
}

func Analytics(aggregator aggregating.Aggregator, forecaster forecasting.Forecaster) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/products/:id/monthly-totals",
			Method:  http.MethodGet,
			Handler: MonthlyTotals(aggregator),
		},
		{
			Path:    "/v1/products/:id/forecast",
			Method:  http.MethodGet,
			Handler: Forecast(forecaster),
		},
		{
			Path:    "/v1/zones/:number/product-totals",
			Method:  http.MethodGet,
			Handler: ProductTotalsForZone(aggregator),
		},
		{
			Path:    "/v1/zones/:number/distribution",
			Method:  http.MethodGet,
			Handler: ZoneDistribution(forecaster),
		},
	}
}

func ZoneRanking(service ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/zones/:number/ranking",
			Method:  http.MethodGet,
			Handler: GetZoneRanking(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/run/:type",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
