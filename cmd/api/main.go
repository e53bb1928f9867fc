package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/api"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/scheduler"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.Env, cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := postgres.RunMigrations(pgConn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	productRepo := repository.NewProductRepository(pgConn)
	zoneRepo := repository.NewZoneRepository(pgConn)
	salesRepo := repository.NewSalesFactRepository(pgConn)
	rankingRepo := repository.NewZoneRankingRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	if err := authenticator.EnsureCredential(); err != nil {
		logrus.WithError(err).Fatal("Erro ao provisionar credencial de acesso")
	}

	ledgerService := ledger.NewService(productRepo, zoneRepo, salesRepo)
	aggregator := aggregating.NewService(salesRepo, productRepo)
	forecaster := forecasting.NewService(aggregator, cfg)
	rankingService := ranking.NewZoneRankingService(zoneRepo, rankingRepo)

	zoneRankingSyncService := scheduler.NewZoneRankingSyncService(zoneRepo, rankingRepo, aggregator, cfg)
	if err := zoneRankingSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do ranking por zona")
	}

	server, err := api.New(
		cfg,
		ledgerService,
		aggregator,
		forecaster,
		rankingService,
		authenticator,
		zoneRankingSyncService,
		pgConn,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
