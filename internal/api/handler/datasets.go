package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func CreateDataset(service dashboarding.DashboardService, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := readUpload(w, r, maxUploadBytes)
		if err != nil {
			writeUploadError(w, r, err)
			return
		}
		defer file.Close()

		dataset, err := service.CreateDataset(file.Name, file.Reader)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar dataset")
			return
		}

		w.Header().Set("Location", "/v1/datasets/"+dataset.ID)
		writeJSON(w, r, http.StatusCreated, dataset)
	}
}

func ListDatasets(service dashboarding.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um número inteiro", nil)
				return
			}
			limit = parsed
		}

		datasets, err := service.ListDatasets(limit)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar datasets")
			return
		}

		writeJSON(w, r, http.StatusOK, datasets)
	}
}

func GetDataset(service dashboarding.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		dataset, err := service.GetDataset(id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar dataset")
			return
		}

		writeJSON(w, r, http.StatusOK, dataset)
	}
}

func GetDatasetDashboard(service dashboarding.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		goal, err := parseGoal(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summary, err := service.GetDashboard(id, goal)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar painel do dataset")
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

// ExportDataset envia o painel do dataset como planilha XLSX
func ExportDataset(service dashboarding.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		goal, err := parseGoal(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summary, err := service.GetDashboard(id, goal)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar dataset")
			return
		}

		w.Header().Set("Content-Type", exporting.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "sales-"+id+".xlsx"))

		if err := exporting.WriteWorkbook(w, summary); err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("dataset_id", id).Error("Erro ao gerar planilha")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar planilha", nil)
			return
		}
	}
}
