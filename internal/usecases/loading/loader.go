// Package loading carrega o dataset de vendas mensais a partir de um CSV opcional
package loading

import (
	"bytes"
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	// DefaultMaxBytes limite padrão de leitura do arquivo enviado (10 MiB)
	DefaultMaxBytes int64 = 10 << 20

	rollingWindow = 3
)

// Loader define a carga do dataset de vendas
type Loader interface {
	// Load carrega o dataset. source nil significa que nenhum arquivo foi enviado.
	Load(source io.Reader) (*LoadResult, error)
}

// LoadResult é o dataset carregado junto com a origem dos dados e eventuais avisos
type LoadResult struct {
	Records     []domain.SalesRecord
	Source      domain.DatasetSource
	Warning     string
	DroppedRows int
}

// CSVLoader carrega o dataset a partir de arquivos CSV
type CSVLoader struct {
	maxBytes int64
}

// NewCSVLoader cria um loader com o limite de tamanho informado (<= 0 usa DefaultMaxBytes)
func NewCSVLoader(maxBytes int64) *CSVLoader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &CSVLoader{maxBytes: maxBytes}
}

// Load implementa Loader
func (l *CSVLoader) Load(source io.Reader) (*LoadResult, error) {
	if source == nil {
		return sampleResult(domain.DatasetSourceSample, ""), nil
	}

	raw, err := l.read(source)
	if err != nil {
		return nil, err
	}

	rows, err := readRecords(raw)
	if err != nil {
		return nil, err
	}

	header := append([]string(nil), rows[0]...)
	if _, missing := resolveColumns(header); len(missing) > 0 {
		return fallbackResult(header, missing), nil
	}

	if len(rows) == 1 {
		return &LoadResult{
			Records: []domain.SalesRecord{},
			Source:  domain.DatasetSourceUpload,
		}, nil
	}

	df := dataframe.LoadRecords(
		rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, errors.Wrapf(ErrUnreadableInput, "erro ao interpretar CSV: %v", df.Err)
	}

	// nomes duplicados são renomeados pelo dataframe
	columns, missing := resolveColumns(df.Names())
	if len(missing) > 0 {
		return fallbackResult(df.Names(), missing), nil
	}

	months := df.Col(columns[domain.ColumnMonth]).Records()
	revenues := df.Col(columns[domain.ColumnRevenue]).Records()
	priorYears := df.Col(columns[domain.ColumnPriorYear]).Records()
	changes := df.Col(columns[domain.ColumnYoYChange]).Records()

	records := make([]domain.SalesRecord, 0, len(months))
	dropped := 0
	for i, rawMonth := range months {
		month, ok := parseMonth(rawMonth)
		if !ok {
			dropped++
			continue
		}

		records = append(records, domain.SalesRecord{
			Month:            month,
			Revenue:          parseAmount(revenues[i]),
			PriorYearRevenue: parseAmount(priorYears[i]),
			YoYChangePct:     parseAmount(changes[i]),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Month.Before(records[j].Month)
	})

	applyRollingAverage(records, rollingWindow)

	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped_rows": dropped,
			"kept_rows":    len(records),
		}).Info("loading: linhas com mês inválido descartadas")
	}

	return &LoadResult{
		Records:     records,
		Source:      domain.DatasetSourceUpload,
		DroppedRows: dropped,
	}, nil
}

func (l *CSVLoader) read(source io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(source, l.maxBytes+1))
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableInput, "erro ao ler arquivo: %v", err)
	}

	if int64(len(raw)) > l.maxBytes {
		return nil, errors.Wrapf(ErrInputTooLarge, "limite de %d bytes", l.maxBytes)
	}

	raw, err = normalizeEncoding(raw)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.Wrap(ErrUnreadableInput, "arquivo vazio")
	}

	return raw, nil
}

// readRecords tokeniza o CSV. Linhas curtas são completadas com células vazias;
// linhas com mais campos que o cabeçalho tornam o arquivo ilegível.
func readRecords(raw []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadableInput, "erro ao interpretar CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrUnreadableInput, "arquivo vazio")
	}

	width := len(records[0])
	for i := 1; i < len(records); i++ {
		if len(records[i]) > width {
			return nil, errors.Wrapf(ErrUnreadableInput, "linha %d tem %d campos, esperado %d", i+1, len(records[i]), width)
		}
		for len(records[i]) < width {
			records[i] = append(records[i], "")
		}
	}

	return records, nil
}

func fallbackResult(names, missing []string) *LoadResult {
	logrus.WithFields(logrus.Fields{
		"missing_columns": missing,
		"columns":         names,
	}).Warn("loading: CSV sem as colunas obrigatórias, usando dados de exemplo")
	return sampleResult(domain.DatasetSourceFallback, MissingColumnsWarning)
}

// resolveColumns mapeia cada coluna obrigatória para o nome presente no cabeçalho
func resolveColumns(names []string) (map[string]string, []string) {
	columns := make(map[string]string, len(domain.RequiredColumns))
	for _, name := range names {
		label := strings.TrimSpace(name)
		if _, exists := columns[label]; !exists {
			columns[label] = name
		}
	}

	missing := make([]string, 0)
	for _, required := range domain.RequiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}

	return columns, missing
}

func sampleResult(source domain.DatasetSource, warning string) *LoadResult {
	return &LoadResult{
		Records: SampleRecords(),
		Source:  source,
		Warning: warning,
	}
}

// applyRollingAverage calcula a média móvel da receita. A janela encolhe no início da série
// e células ausentes são ignoradas; sem nenhum valor na janela a média fica ausente.
func applyRollingAverage(records []domain.SalesRecord, window int) {
	for i := range records {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		sum, count := 0.0, 0
		for _, r := range records[start : i+1] {
			if r.Revenue.Valid {
				sum += r.Revenue.Float64
				count++
			}
		}

		if count == 0 {
			records[i].RollingAvg3M = domain.MissingAmount
			continue
		}
		records[i].RollingAvg3M = domain.NewAmount(sum / float64(count))
	}
}
