package dashboarding

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// Erros específicos para o contexto de datasets
var (
	// Erros de validação
	ErrDatasetIDRequired = errors.New("dataset ID is required")
	ErrInvalidGoal       = errors.New("annual goal must be zero or positive")
	ErrInvalidLimit      = errors.New("limit must be between 0 and 100")

	// Erros de dados
	ErrDatasetNotFound = errors.New("dataset not found")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating dataset ID")
)

// DatasetError é um erro com contexto adicional para datasets
type DatasetError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	DatasetID string // ID do dataset envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *DatasetError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *DatasetError) Unwrap() error {
	return e.Err
}

// NewDatasetError cria um novo DatasetError
func NewDatasetError(err error, code string, details string) *DatasetError {
	return &DatasetError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewDatasetErrorWithID cria um novo DatasetError com ID do dataset
func NewDatasetErrorWithID(err error, code string, datasetID string, details string) *DatasetError {
	return &DatasetError{
		Err:       err,
		Code:      code,
		DatasetID: datasetID,
		Details:   details,
	}
}

// ErrorCode retorna o código de API associado ao erro
func ErrorCode(err error) string {
	var datasetErr *DatasetError
	if errors.As(err, &datasetErr) {
		return datasetErr.Code
	}

	switch {
	case errors.Is(err, loading.ErrInputTooLarge):
		return apiErrors.ErrFileTooLarge
	case errors.Is(err, loading.ErrUnreadableInput):
		return apiErrors.ErrUnreadableFile
	}

	return apiErrors.ErrInternalServer
}
