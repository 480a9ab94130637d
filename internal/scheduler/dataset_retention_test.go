package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"go.uber.org/mock/gomock"
)

func retentionConfig(enabled bool) *config.Config {
	return &config.Config{
		DatasetRetention: config.DatasetRetention{
			CronSchedule: "0 3 * * *",
			Days:         30,
			Enabled:      enabled,
		},
	}
}

func TestDatasetRetentionService_Purge(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(repo *mocks.MockDatasetRepository)
		wantDeleted int64
		wantError   string
	}{
		{
			name: "remove datasets antigos",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().DeleteOlderThan(30).Return(int64(4), nil)
			},
			wantDeleted: 4,
		},
		{
			name: "nenhum dataset expirado",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().DeleteOlderThan(30).Return(int64(0), nil)
			},
		},
		{
			name: "erro de banco fica registrado no status",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().DeleteOlderThan(30).Return(int64(0), errors.New("connection reset"))
			},
			wantError: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockDatasetRepository(ctrl)
			tt.setup(repo)

			service := NewDatasetRetentionService(repo, retentionConfig(true))
			assert.True(t, service.purgeExpiredDatasets())

			status := service.GetStatus()
			assert.Equal(t, tt.wantDeleted, status["last_deleted"])
			assert.Equal(t, tt.wantError, status["last_error"])
			assert.Equal(t, false, status["running"])
			assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
		})
	}
}

func TestDatasetRetentionService_SkipsWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDatasetRepository(ctrl)
	service := NewDatasetRetentionService(repo, retentionConfig(true))
	service.syncRunning = true

	assert.False(t, service.purgeExpiredDatasets())
	service.TriggerManualSync()
}

func TestDatasetRetentionService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	done := make(chan struct{})
	repo := mocks.NewMockDatasetRepository(ctrl)
	repo.EXPECT().DeleteOlderThan(30).DoAndReturn(func(days int) (int64, error) {
		close(done)
		return 2, nil
	})

	service := NewDatasetRetentionService(repo, retentionConfig(false))
	service.TriggerManualSync()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("limpeza manual não foi executada")
	}

	require.Eventually(t, func() bool {
		return service.GetStatus()["last_deleted"] == int64(2)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDatasetRetentionService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDatasetRepository(ctrl)

	t.Run("desabilitado não agenda", func(t *testing.T) {
		service := NewDatasetRetentionService(repo, retentionConfig(false))
		require.NoError(t, service.Start(context.Background()))
		assert.False(t, service.scheduler.IsRunning())
	})

	t.Run("expressão cron inválida", func(t *testing.T) {
		cfg := retentionConfig(true)
		cfg.DatasetRetention.CronSchedule = "toda hora"

		service := NewDatasetRetentionService(repo, cfg)
		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("habilitado agenda e para com o contexto", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		service := NewDatasetRetentionService(repo, retentionConfig(true))
		require.NoError(t, service.Start(ctx))
		assert.True(t, service.scheduler.IsRunning())

		cancel()
		require.Eventually(t, func() bool {
			return !service.scheduler.IsRunning()
		}, 2*time.Second, 10*time.Millisecond)
	})
}
