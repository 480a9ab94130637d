package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// GetSampleDashboard retorna o painel calculado sobre os dados de exemplo
func GetSampleDashboard(service dashboarding.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, err := parseGoal(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summary, err := service.SampleDashboard(goal)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar painel de exemplo")
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

// PreviewDashboard calcula o painel do arquivo enviado sem armazená-lo
func PreviewDashboard(service dashboarding.DashboardService, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, err := parseGoal(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		file, err := readUpload(w, r, maxUploadBytes)
		if err != nil {
			writeUploadError(w, r, err)
			return
		}
		defer file.Close()

		summary, err := service.PreviewDashboard(file.Name, file.Reader, goal)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar painel do arquivo enviado")
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}
