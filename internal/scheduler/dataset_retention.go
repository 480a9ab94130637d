package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

// DatasetRetentionConfig representa a configuração da limpeza de datasets
type DatasetRetentionConfig struct {
	CronSchedule  string
	RetentionDays int
	SyncEnabled   bool
}

// DatasetRetentionService remove periodicamente os datasets antigos
type DatasetRetentionService struct {
	scheduler           *gocron.Scheduler
	config              DatasetRetentionConfig
	datasetRepo         repository.DatasetRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastDeleted         int64
	lastError           string
}

func NewDatasetRetentionService(datasetRepo repository.DatasetRepository, appConfig *config.Config) *DatasetRetentionService {
	retentionConfig := DatasetRetentionConfig{
		CronSchedule:  appConfig.DatasetRetention.CronSchedule,
		RetentionDays: appConfig.DatasetRetention.Days,
		SyncEnabled:   appConfig.DatasetRetention.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.RetentionDays,
		"sync_enabled":   retentionConfig.SyncEnabled,
	}).Info("Configuração da limpeza de datasets carregada")

	return &DatasetRetentionService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      retentionConfig,
		datasetRepo: datasetRepo,
	}
}

// Start inicia o agendador; o contexto cancelado para o agendador
func (s *DatasetRetentionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Limpeza de datasets desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de datasets")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.purgeExpiredDatasets()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de datasets: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de datasets")
		s.scheduler.Stop()
	}()

	return nil
}

// purgeExpiredDatasets remove os datasets mais antigos que o período de retenção.
// Retorna false quando outra execução já está em andamento.
func (s *DatasetRetentionService) purgeExpiredDatasets() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de datasets já em andamento, ignorando")
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	deleted, err := s.datasetRepo.DeleteOlderThan(s.config.RetentionDays)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao remover datasets antigos")
		return true
	}

	s.lastError = ""
	s.lastDeleted = deleted
	metrics.ObserveRetention(deleted)

	logrus.WithFields(logrus.Fields{
		"deleted":        deleted,
		"retention_days": s.config.RetentionDays,
		"duration":       s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt).String(),
	}).Info("Limpeza de datasets concluída")

	return true
}

// TriggerManualSync dispara a limpeza fora do agendamento
func (s *DatasetRetentionService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de datasets já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de datasets")
	go s.purgeExpiredDatasets()
}

func (s *DatasetRetentionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_deleted":           s.lastDeleted,
		"last_error":             s.lastError,
	}
}
