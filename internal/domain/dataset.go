package domain

import "time"

// DatasetSource indica de onde vieram os registros de um dataset
type DatasetSource string

const (
	// DatasetSourceSample dados de exemplo (nenhum arquivo enviado)
	DatasetSourceSample DatasetSource = "sample"
	// DatasetSourceUpload dados do arquivo enviado
	DatasetSourceUpload DatasetSource = "upload"
	// DatasetSourceFallback arquivo enviado sem as colunas obrigatórias, substituído pelos dados de exemplo
	DatasetSourceFallback DatasetSource = "fallback"
)

// Dataset é o resultado de uma carga armazenado para consulta posterior
type Dataset struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Source      DatasetSource `json:"source"`
	Warning     string        `json:"warning,omitempty"`
	DroppedRows int           `json:"dropped_rows"`
	RecordCount int           `json:"record_count"`
	Records     []SalesRecord `json:"records,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
