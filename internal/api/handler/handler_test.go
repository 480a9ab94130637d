package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

const (
	testMaxBytes = 1024
	validCSV     = "월,매출액,전년동월,증감률\n2024-01,100,90,11.1\n2024-02,150,100,50\n"
)

func newTestRouter(repo *mocks.MockDatasetRepository) router.Router {
	service := dashboarding.NewService(loading.NewCSVLoader(testMaxBytes), repo)
	return router.New(
		router.WithRoutes(Healthcheck(nil)...),
		router.WithRoutes(Dashboards(service, testMaxBytes)...),
		router.WithRoutes(Datasets(service, testMaxBytes)...),
	)
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile(uploadField, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthcheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	newTestRouter(mocks.NewMockDatasetRepository(ctrl)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := time.Parse(time.RFC3339, rec.Body.String())
	assert.NoError(t, err)
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestHealthcheck_Banco(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
	}{
		{name: "banco disponível", db: fakePinger{}, wantStatus: http.StatusOK},
		{name: "banco indisponível", db: fakePinger{err: errors.New("connection refused")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := router.New(router.WithRoutes(Healthcheck(tt.db)...))

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, apiErrors.ErrDatabaseDown, decodeAPIError(t, rec).Code)
			}
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rt := newTestRouter(mocks.NewMockDatasetRepository(ctrl))
	rt.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/dashboard/sample", nil))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sales_dashboard_loads_total{source="sample"}`)
}

func TestGetSampleDashboard(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		wantGoal   bool
	}{
		{name: "sem meta", query: "", wantStatus: http.StatusOK},
		{name: "com meta", query: "?goal=300000000", wantStatus: http.StatusOK, wantGoal: true},
		{name: "meta não numérica", query: "?goal=abc", wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidFormat},
		{name: "meta negativa", query: "?goal=-1", wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidRequest},
		{name: "meta infinita", query: "?goal=Inf", wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidFormat},
		{name: "meta NaN", query: "?goal=NaN", wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/sample"+tt.query, nil)
			newTestRouter(mocks.NewMockDatasetRepository(ctrl)).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
				return
			}

			var summary domain.DashboardSummary
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
			assert.Equal(t, 237000000.0, summary.TotalRevenue)
			assert.Equal(t, domain.DatasetSourceSample, summary.Dataset.Source)
			assert.Len(t, summary.Records, 12)
			assert.Equal(t, tt.wantGoal, summary.Goal != nil)
		})
	}
}

func TestPreviewDashboard(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		contentType string
		wantStatus  int
		wantCode    string
		wantSource  domain.DatasetSource
		wantTotal   float64
	}{
		{
			name:       "arquivo válido",
			filename:   "vendas.csv",
			content:    validCSV,
			wantStatus: http.StatusOK,
			wantSource: domain.DatasetSourceUpload,
			wantTotal:  250,
		},
		{
			name:       "sem arquivo usa dados de exemplo",
			wantStatus: http.StatusOK,
			wantSource: domain.DatasetSourceSample,
			wantTotal:  237000000,
		},
		{
			name:       "colunas ausentes usa dados de exemplo",
			filename:   "outro.csv",
			content:    "a,b\n1,2\n",
			wantStatus: http.StatusOK,
			wantSource: domain.DatasetSourceFallback,
			wantTotal:  237000000,
		},
		{
			name:       "apenas cabeçalho",
			filename:   "cabecalho.csv",
			content:    "월,매출액,전년동월,증감률\n",
			wantStatus: http.StatusOK,
			wantSource: domain.DatasetSourceUpload,
			wantTotal:  0,
		},
		{
			name:       "arquivo vazio",
			filename:   "vazio.csv",
			content:    "",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrUnreadableFile,
		},
		{
			name:       "arquivo maior que o limite",
			filename:   "grande.csv",
			content:    validCSV + strings.Repeat("2024-03,1,1,1\n", 100),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   apiErrors.ErrFileTooLarge,
		},
		{
			name:        "requisição sem multipart",
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
			wantCode:    apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			body, contentType := multipartBody(t, tt.filename, tt.content)
			if tt.contentType != "" {
				contentType = tt.contentType
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/dashboard/preview", body)
			req.Header.Set("Content-Type", contentType)
			newTestRouter(mocks.NewMockDatasetRepository(ctrl)).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
				return
			}

			var summary domain.DashboardSummary
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
			assert.Equal(t, tt.wantSource, summary.Dataset.Source)
			assert.Equal(t, tt.wantTotal, summary.TotalRevenue)
		})
	}
}

func TestCreateDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDatasetRepository(ctrl)
	repo.EXPECT().Save(gomock.Any()).DoAndReturn(func(dataset *domain.Dataset) error {
		assert.Equal(t, "vendas.csv", dataset.Name)
		assert.Len(t, dataset.Records, 2)
		return nil
	})

	body, contentType := multipartBody(t, "vendas.csv", validCSV)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/datasets", body)
	req.Header.Set("Content-Type", contentType)
	newTestRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var dataset domain.Dataset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dataset))
	assert.Len(t, dataset.ID, 6)
	assert.Equal(t, "/v1/datasets/"+dataset.ID, rec.Header().Get("Location"))
	assert.Equal(t, 2, dataset.RecordCount)
	assert.Equal(t, domain.DatasetSourceUpload, dataset.Source)
}

func TestListDatasets(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(repo *mocks.MockDatasetRepository)
		wantStatus int
		wantCount  int
	}{
		{
			name:  "limite padrão",
			query: "",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().List(dashboarding.DefaultListLimit).Return([]*domain.Dataset{{ID: "abc123"}}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:  "limite informado",
			query: "?limit=5",
			setup: func(repo *mocks.MockDatasetRepository) {
				repo.EXPECT().List(5).Return([]*domain.Dataset{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "limite inválido",
			query:      "?limit=dez",
			setup:      func(repo *mocks.MockDatasetRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "limite fora do intervalo",
			query:      "?limit=500",
			setup:      func(repo *mocks.MockDatasetRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockDatasetRepository(ctrl)
			tt.setup(repo)

			rec := httptest.NewRecorder()
			newTestRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/datasets"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var datasets []*domain.Dataset
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &datasets))
			assert.Len(t, datasets, tt.wantCount)
		})
	}
}

func storedDataset() *domain.Dataset {
	records := loading.SampleRecords()
	return &domain.Dataset{
		ID:          "abc123",
		Name:        "vendas.csv",
		Source:      domain.DatasetSourceUpload,
		RecordCount: len(records),
		Records:     records,
		CreatedAt:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDatasetRepository(ctrl)
	repo.EXPECT().GetByID("abc123").Return(storedDataset(), nil)
	repo.EXPECT().GetByID("zzz999").Return(nil, nil)

	rt := newTestRouter(repo)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/datasets/abc123", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var dataset domain.Dataset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dataset))
	assert.Equal(t, "abc123", dataset.ID)
	assert.Len(t, dataset.Records, 12)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/datasets/zzz999", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, apiErrors.ErrDatasetNotFound, apiErr.Code)
	assert.Equal(t, map[string]any{"dataset_id": "zzz999"}, apiErr.Details)
}

func TestGetDatasetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDatasetRepository(ctrl)
	repo.EXPECT().GetByID("abc123").Return(storedDataset(), nil)

	rec := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/datasets/abc123/dashboard?goal=200000000", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "abc123", summary.Dataset.ID)
	require.NotNil(t, summary.Goal)
	assert.Equal(t, 1.0, summary.Goal.Ratio)
	assert.Equal(t, "2024-12", summary.BestMonth.Month)
}

func TestExportDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDatasetRepository(ctrl)
	repo.EXPECT().GetByID("abc123").Return(storedDataset(), nil)
	repo.EXPECT().GetByID("zzz999").Return(nil, nil)

	rt := newTestRouter(repo)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/datasets/abc123/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exporting.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sales-abc123.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exporting.SalesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 13)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/datasets/zzz999/export", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rt := newTestRouter(mocks.NewMockDatasetRepository(ctrl))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/inexistente", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrRouteNotFound, decodeAPIError(t, rec).Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/datasets", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, apiErrors.ErrMethodNotAllowed, decodeAPIError(t, rec).Code)
}
