package handler

import (
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	uploadField = "file"

	// espaço reservado para cabeçalhos e demais campos do formulário multipart
	multipartOverhead = 1 << 20
)

var errInvalidGoal = errors.New("goal deve ser um número")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz o erro do serviço para o código da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	code := dashboarding.ErrorCode(err)

	logger := log.ForContext(r.Context()).WithError(err)
	if apiErrors.StatusCode(code) >= http.StatusInternalServerError {
		logger.Error(message)
	} else {
		logger.Warn(message)
	}

	var details any
	var datasetErr *dashboarding.DatasetError
	if errors.As(err, &datasetErr) && datasetErr.DatasetID != "" {
		details = map[string]string{"dataset_id": datasetErr.DatasetID}
	}

	apiErrors.WriteError(w, code, err.Error(), details)
}

// parseGoal lê a meta anual da query; ausente equivale a zero
func parseGoal(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("goal")
	if raw == "" {
		return 0, nil
	}

	goal, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(goal, 0) || math.IsNaN(goal) {
		return 0, errInvalidGoal
	}
	return goal, nil
}

// upload é o arquivo enviado no campo "file"; Reader nil quando o campo não foi enviado
type upload struct {
	Name   string
	Reader io.Reader
	file   multipart.File
}

func (u *upload) Close() {
	if u.file != nil {
		u.file.Close()
	}
}

// readUpload interpreta o formulário multipart limitando o corpo da requisição
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) {
		return &upload{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &upload{Name: header.Filename, Reader: file, file: file}, nil
}

func writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		log.ForContext(r.Context()).WithError(err).Warn("Arquivo maior que o permitido")
		apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo maior que o permitido", map[string]int64{
			"limit_bytes": maxBytesErr.Limit,
		})
		return
	}

	log.ForContext(r.Context()).WithError(err).Warn("Formulário de upload inválido")
	apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Envie o arquivo CSV no campo 'file' (multipart/form-data)", nil)
}
