// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=dataset.go -destination=mocks/dataset.go -package=mocks

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	datasetsTable = "sales_datasets sd"

	// pqUniqueViolation código do PostgreSQL para violação de chave única
	pqUniqueViolation = "23505"
)

// ErrDuplicateID indica que já existe um dataset com o mesmo ID
var ErrDuplicateID = errors.New("dataset com ID duplicado")

type DatasetRepository interface {
	Save(dataset *domain.Dataset) error
	GetByID(id string) (*domain.Dataset, error)
	List(limit int) ([]*domain.Dataset, error)
	DeleteOlderThan(days int) (int64, error)
}

type datasetRepository struct {
	conn *postgres.Connection
}

func NewDatasetRepository(conn *postgres.Connection) DatasetRepository {
	return &datasetRepository{
		conn: conn,
	}
}

func (r *datasetRepository) Save(dataset *domain.Dataset) error {
	recordsJSON, err := json.Marshal(dataset.Records)
	if err != nil {
		return fmt.Errorf("erro ao serializar registros para JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("sales_datasets").
		Columns("id", "name", "source", "warning", "dropped_rows", "record_count", "records", "created_at").
		Values(
			dataset.ID,
			dataset.Name,
			string(dataset.Source),
			dataset.Warning,
			dataset.DroppedRows,
			len(dataset.Records),
			recordsJSON,
			dataset.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == pqUniqueViolation {
				return ErrDuplicateID
			}
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *datasetRepository) GetByID(id string) (*domain.Dataset, error) {
	query, args, err := squirrel.
		Select("sd.id, sd.name, sd.source, sd.warning, sd.dropped_rows, sd.record_count, sd.records, sd.created_at").
		From(datasetsTable).
		Where(squirrel.Eq{"sd.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	dataset := &domain.Dataset{}
	var source string
	var recordsJSON []byte

	err = r.conn.QueryRow(query, args...).Scan(
		&dataset.ID,
		&dataset.Name,
		&source,
		&dataset.Warning,
		&dataset.DroppedRows,
		&dataset.RecordCount,
		&recordsJSON,
		&dataset.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear dataset: %w", err)
	}
	dataset.Source = domain.DatasetSource(source)

	if recordsJSON != nil {
		records := make([]domain.SalesRecord, 0, dataset.RecordCount)
		if err := json.Unmarshal(recordsJSON, &records); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de records: %w", err)
		}
		dataset.Records = records
	}

	return dataset, nil
}

// List retorna os datasets mais recentes sem os registros
func (r *datasetRepository) List(limit int) ([]*domain.Dataset, error) {
	builder := squirrel.
		Select("sd.id, sd.name, sd.source, sd.warning, sd.dropped_rows, sd.record_count, sd.created_at").
		From(datasetsTable).
		OrderBy("sd.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	datasets := make([]*domain.Dataset, 0)
	for rows.Next() {
		dataset := &domain.Dataset{}
		var source string

		err := rows.Scan(
			&dataset.ID,
			&dataset.Name,
			&source,
			&dataset.Warning,
			&dataset.DroppedRows,
			&dataset.RecordCount,
			&dataset.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear datasets: %w", err)
		}
		dataset.Source = domain.DatasetSource(source)

		datasets = append(datasets, dataset)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return datasets, nil
}

func (r *datasetRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("sales_datasets").
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
