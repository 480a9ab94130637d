// Package dashboarding calcula os indicadores do painel de vendas e gerencia os datasets enviados
package dashboarding

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const (
	// DefaultListLimit quantidade padrão de datasets retornados na listagem
	DefaultListLimit = 20

	maxIDAttempts = 3
)

type DashboardService interface {
	// SampleDashboard retorna o painel dos dados de exemplo
	SampleDashboard(annualGoal float64) (*domain.DashboardSummary, error)
	// PreviewDashboard carrega o arquivo e retorna o painel sem armazenar o dataset
	PreviewDashboard(name string, source io.Reader, annualGoal float64) (*domain.DashboardSummary, error)
	// CreateDataset carrega o arquivo e armazena o resultado
	CreateDataset(name string, source io.Reader) (*domain.Dataset, error)
	GetDataset(id string) (*domain.Dataset, error)
	ListDatasets(limit int) ([]*domain.Dataset, error)
	// GetDashboard retorna o painel de um dataset armazenado
	GetDashboard(id string, annualGoal float64) (*domain.DashboardSummary, error)
}

// dashboardQuery são os parâmetros informados pelo usuário do painel
type dashboardQuery struct {
	AnnualGoal float64 `validate:"gte=0"`
	Limit      int     `validate:"gte=0,lte=100"`
}

type Service struct {
	loader      loading.Loader
	datasetRepo repository.DatasetRepository
	validate    *validator.Validate
	generateID  func() (string, error)
	now         func() time.Time
}

func NewService(loader loading.Loader, datasetRepo repository.DatasetRepository) *Service {
	return &Service{
		loader:      loader,
		datasetRepo: datasetRepo,
		validate:    validator.New(),
		generateID:  utils.GenerateID,
		now:         time.Now,
	}
}

func (s *Service) SampleDashboard(annualGoal float64) (*domain.DashboardSummary, error) {
	if err := s.validateGoal(annualGoal); err != nil {
		return nil, err
	}

	dataset, err := s.load("", nil)
	if err != nil {
		return nil, err
	}

	return summarizeDataset(dataset, annualGoal), nil
}

func (s *Service) PreviewDashboard(name string, source io.Reader, annualGoal float64) (*domain.DashboardSummary, error) {
	if err := s.validateGoal(annualGoal); err != nil {
		return nil, err
	}

	dataset, err := s.load(name, source)
	if err != nil {
		return nil, err
	}

	return summarizeDataset(dataset, annualGoal), nil
}

func (s *Service) CreateDataset(name string, source io.Reader) (*domain.Dataset, error) {
	dataset, err := s.load(name, source)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		id, err := s.generateID()
		if err != nil {
			return nil, NewDatasetError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
		}
		dataset.ID = id

		err = s.datasetRepo.Save(dataset)
		if err == nil {
			break
		}

		if errors.Is(err, repository.ErrDuplicateID) && attempt < maxIDAttempts {
			logrus.WithField("dataset_id", id).Warn("dashboarding: ID de dataset duplicado, gerando outro")
			continue
		}

		logrus.WithError(err).WithField("dataset_id", id).Error("dashboarding: erro ao salvar dataset")
		return nil, NewDatasetErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"dataset_id":   dataset.ID,
		"name":         dataset.Name,
		"source":       dataset.Source,
		"records":      dataset.RecordCount,
		"dropped_rows": dataset.DroppedRows,
	}).Info("dashboarding: dataset armazenado")

	return dataset, nil
}

func (s *Service) GetDataset(id string) (*domain.Dataset, error) {
	if id == "" {
		return nil, NewDatasetError(ErrDatasetIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	dataset, err := s.datasetRepo.GetByID(id)
	if err != nil {
		logrus.WithError(err).WithField("dataset_id", id).Error("dashboarding: erro ao buscar dataset")
		return nil, NewDatasetErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	if dataset == nil {
		return nil, NewDatasetErrorWithID(ErrDatasetNotFound, apiErrors.ErrDatasetNotFound, id, "")
	}

	return dataset, nil
}

func (s *Service) ListDatasets(limit int) ([]*domain.Dataset, error) {
	if err := s.validate.Struct(dashboardQuery{Limit: limit}); err != nil {
		return nil, NewDatasetError(ErrInvalidLimit, apiErrors.ErrInvalidRequest, err.Error())
	}

	if limit == 0 {
		limit = DefaultListLimit
	}

	datasets, err := s.datasetRepo.List(limit)
	if err != nil {
		logrus.WithError(err).Error("dashboarding: erro ao listar datasets")
		return nil, NewDatasetError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return datasets, nil
}

func (s *Service) GetDashboard(id string, annualGoal float64) (*domain.DashboardSummary, error) {
	if err := s.validateGoal(annualGoal); err != nil {
		return nil, err
	}

	dataset, err := s.GetDataset(id)
	if err != nil {
		return nil, err
	}

	return summarizeDataset(dataset, annualGoal), nil
}

// load executa o loader e monta o dataset (ainda sem ID)
func (s *Service) load(name string, source io.Reader) (*domain.Dataset, error) {
	result, err := s.loader.Load(source)
	if err != nil {
		logrus.WithError(err).WithField("name", name).Warn("dashboarding: arquivo rejeitado")
		return nil, pkgerrors.Wrap(err, "dashboarding: erro ao carregar dataset")
	}

	metrics.ObserveLoad(string(result.Source), result.DroppedRows)

	if result.Warning != "" {
		logrus.WithFields(logrus.Fields{
			"name":    name,
			"warning": result.Warning,
		}).Warn("dashboarding: dataset substituído pelos dados de exemplo")
	}

	return &domain.Dataset{
		Name:        name,
		Source:      result.Source,
		Warning:     result.Warning,
		DroppedRows: result.DroppedRows,
		RecordCount: len(result.Records),
		Records:     result.Records,
		CreatedAt:   s.now().UTC(),
	}, nil
}

func (s *Service) validateGoal(annualGoal float64) error {
	if math.IsInf(annualGoal, 0) || math.IsNaN(annualGoal) {
		return NewDatasetError(ErrInvalidGoal, apiErrors.ErrInvalidRequest, "goal deve ser um número finito")
	}
	if err := s.validate.Struct(dashboardQuery{AnnualGoal: annualGoal}); err != nil {
		return NewDatasetError(ErrInvalidGoal, apiErrors.ErrInvalidRequest, err.Error())
	}
	return nil
}

func summarizeDataset(dataset *domain.Dataset, annualGoal float64) *domain.DashboardSummary {
	summary := Summarize(dataset.Records, annualGoal)

	header := *dataset
	header.Records = nil
	summary.Dataset = &header

	return summary
}
