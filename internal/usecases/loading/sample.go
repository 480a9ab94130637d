package loading

import (
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type sampleRow struct {
	year, month             int
	revenue, priorYear, yoy float64
}

// sampleRows são os 12 meses de exemplo exibidos quando nenhum arquivo é enviado
var sampleRows = []sampleRow{
	{2024, 1, 12000000, 10500000, 14.3},
	{2024, 2, 13500000, 11200000, 20.5},
	{2024, 3, 11000000, 12800000, -14.1},
	{2024, 4, 18000000, 15200000, 18.4},
	{2024, 5, 21000000, 18500000, 13.5},
	{2024, 6, 19500000, 17000000, 14.7},
	{2024, 7, 23000000, 20000000, 15.0},
	{2024, 8, 22000000, 19800000, 11.1},
	{2024, 9, 17500000, 15400000, 13.6},
	{2024, 10, 25000000, 22000000, 13.6},
	{2024, 11, 26500000, 23500000, 12.8},
	{2024, 12, 28000000, 24700000, 13.4},
}

// SampleRecords monta o dataset de exemplo já ordenado e com a média móvel calculada
func SampleRecords() []domain.SalesRecord {
	records := make([]domain.SalesRecord, 0, len(sampleRows))
	for _, row := range sampleRows {
		records = append(records, domain.SalesRecord{
			Month:            time.Date(row.year, time.Month(row.month), 1, 0, 0, 0, 0, time.UTC),
			Revenue:          domain.NewAmount(row.revenue),
			PriorYearRevenue: domain.NewAmount(row.priorYear),
			YoYChangePct:     domain.NewAmount(row.yoy),
		})
	}

	applyRollingAverage(records, rollingWindow)
	return records
}
