package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
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

func Dashboards(service dashboarding.DashboardService, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard/sample",
			Method:  http.MethodGet,
			Handler: GetSampleDashboard(service),
		},
		{
			Path:    "/v1/dashboard/preview",
			Method:  http.MethodPost,
			Handler: PreviewDashboard(service, maxUploadBytes),
		},
	}
}

func Datasets(service dashboarding.DashboardService, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/datasets",
			Method:  http.MethodPost,
			Handler: CreateDataset(service, maxUploadBytes),
		},
		{
			Path:    "/v1/datasets",
			Method:  http.MethodGet,
			Handler: ListDatasets(service),
		},
		{
			Path:    "/v1/datasets/:id",
			Method:  http.MethodGet,
			Handler: GetDataset(service),
		},
		{
			Path:    "/v1/datasets/:id/dashboard",
			Method:  http.MethodGet,
			Handler: GetDatasetDashboard(service),
		},
		{
			Path:    "/v1/datasets/:id/export",
			Method:  http.MethodGet,
			Handler: ExportDataset(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
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
