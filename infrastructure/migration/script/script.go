package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func main() {
	seed := flag.Bool("seed", false, "armazena o dataset de exemplo após a migração")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar logs")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logrus.Info("Iniciando script de migração...")
	startTime := time.Now()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := migration.Migrate(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migração")
	}

	if *seed {
		service := dashboarding.NewService(loading.NewCSVLoader(cfg.Upload.MaxBytes), repository.NewDatasetRepository(conn))

		dataset, err := service.CreateDataset("sample", nil)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao armazenar dataset de exemplo")
		}
		logrus.WithField("dataset_id", dataset.ID).Info("Dataset de exemplo armazenado")
	}

	logrus.WithField("elapsed", time.Since(startTime).String()).Info("Migração concluída")
}
