package dashboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
)

func record(year int, month time.Month, revenue, yoy domain.Amount) domain.SalesRecord {
	return domain.SalesRecord{
		Month:        time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Revenue:      revenue,
		YoYChangePct: yoy,
	}
}

func TestSummarize_SampleDataset(t *testing.T) {
	summary := Summarize(loading.SampleRecords(), 0)

	assert.Equal(t, 237000000.0, summary.TotalRevenue)
	assert.InDelta(t, 12.2333, summary.AverageYoY, 0.0001)

	require.NotNil(t, summary.BestMonth)
	assert.Equal(t, "2024-12", summary.BestMonth.Month)
	assert.Equal(t, 28000000.0, summary.BestMonth.Value)

	require.NotNil(t, summary.WorstMonth)
	assert.Equal(t, "2024-03", summary.WorstMonth.Month)
	assert.Equal(t, 11000000.0, summary.WorstMonth.Value)

	assert.Nil(t, summary.Goal)
	assert.Zero(t, summary.AnnualGoal)

	require.Len(t, summary.Trend, 12)
	require.Len(t, summary.YoY, 12)
	require.Len(t, summary.Cumulative, 12)

	assert.True(t, summary.YoY[2].Negative, "março tem variação negativa")
	assert.False(t, summary.YoY[0].Negative)

	last := summary.Cumulative[11]
	assert.Equal(t, "2024-12", last.Month)
	assert.Equal(t, domain.NewAmount(237000000), last.Revenue)
}

func TestGoalCompletion(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		goal      float64
		wantNil   bool
		wantRatio float64
	}{
		{name: "sem meta", total: 100, goal: 0, wantNil: true},
		{name: "meta negativa", total: 100, goal: -10, wantNil: true},
		{name: "meta parcial", total: 237000000, goal: 300000000, wantRatio: 0.79},
		{name: "meta superada é limitada a 1", total: 237000000, goal: 200000000, wantRatio: 1},
		{name: "receita negativa é limitada a 0", total: -50, goal: 100, wantRatio: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := GoalCompletion(tt.total, tt.goal)
			if tt.wantNil {
				assert.Nil(t, progress)
				return
			}

			require.NotNil(t, progress)
			assert.InDelta(t, tt.wantRatio, progress.Ratio, 1e-9)
			assert.InDelta(t, tt.wantRatio*100, progress.Percent, 1e-9)
		})
	}
}

func TestSummarize_WithGoal(t *testing.T) {
	summary := Summarize(loading.SampleRecords(), 300000000)

	assert.Equal(t, 300000000.0, summary.AnnualGoal)
	require.NotNil(t, summary.Goal)
	assert.InDelta(t, 0.79, summary.Goal.Ratio, 1e-9)
}

func TestSummarize_MissingCells(t *testing.T) {
	records := []domain.SalesRecord{
		record(2024, time.January, domain.NewAmount(100), domain.NewAmount(10)),
		record(2024, time.February, domain.MissingAmount, domain.MissingAmount),
		record(2024, time.March, domain.NewAmount(50), domain.NewAmount(-20)),
	}

	summary := Summarize(records, 0)

	assert.Equal(t, 150.0, summary.TotalRevenue)
	assert.Equal(t, -5.0, summary.AverageYoY)

	require.NotNil(t, summary.BestMonth)
	assert.Equal(t, "2024-01", summary.BestMonth.Month)
	require.NotNil(t, summary.WorstMonth)
	assert.Equal(t, "2024-03", summary.WorstMonth.Month)

	assert.Equal(t, []domain.CumulativePoint{
		{Month: "2024-01", Revenue: domain.NewAmount(100)},
		{Month: "2024-02", Revenue: domain.MissingAmount},
		{Month: "2024-03", Revenue: domain.NewAmount(150)},
	}, summary.Cumulative)

	assert.False(t, summary.YoY[1].Negative)
	assert.True(t, summary.YoY[2].Negative)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, 1000)

	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.AverageYoY)
	assert.Nil(t, summary.BestMonth)
	assert.Nil(t, summary.WorstMonth)
	assert.Empty(t, summary.Cumulative)

	require.NotNil(t, summary.Goal)
	assert.Zero(t, summary.Goal.Ratio)
}

func TestSummarize_TiesKeepFirstMonth(t *testing.T) {
	records := []domain.SalesRecord{
		record(2024, time.January, domain.NewAmount(200), domain.MissingAmount),
		record(2024, time.February, domain.NewAmount(100), domain.MissingAmount),
		record(2024, time.March, domain.NewAmount(200), domain.MissingAmount),
		record(2024, time.April, domain.NewAmount(100), domain.MissingAmount),
	}

	summary := Summarize(records, 0)

	assert.Equal(t, "2024-01", summary.BestMonth.Month)
	assert.Equal(t, "2024-02", summary.WorstMonth.Month)
	assert.Zero(t, summary.AverageYoY)
}
