package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

func main() {
	steps := flag.Int("steps", 0, "quantidade de migrações para down (0 = todas)")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.Env, cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	m, err := postgres.NewMigrator(conn)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar migrações")
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
	default:
		logrus.Fatalf("Comando desconhecido: %s (use up, down ou version)", command)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.WithError(err).Fatalf("Erro ao executar %s", command)
	}

	version, dirty, err := postgres.SchemaVersion(m)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao consultar versão do schema")
	}

	logrus.WithFields(logrus.Fields{
		"command": command,
		"version": version,
		"dirty":   dirty,
	}).Info("Migração concluída")
}
