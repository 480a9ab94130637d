package dashboarding

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Summarize calcula os indicadores do painel a partir dos registros já ordenados por mês.
// annualGoal <= 0 significa que nenhuma meta foi informada.
func Summarize(records []domain.SalesRecord, annualGoal float64) *domain.DashboardSummary {
	summary := &domain.DashboardSummary{
		Records:      records,
		TotalRevenue: TotalRevenue(records),
		AverageYoY:   AverageYoY(records),
		BestMonth:    bestMonth(records),
		WorstMonth:   worstMonth(records),
		Trend:        make([]domain.TrendPoint, 0, len(records)),
		YoY:          make([]domain.YoYPoint, 0, len(records)),
		Cumulative:   CumulativeRevenue(records),
	}

	if annualGoal > 0 {
		summary.AnnualGoal = annualGoal
		summary.Goal = GoalCompletion(summary.TotalRevenue, annualGoal)
	}

	for _, r := range records {
		summary.Trend = append(summary.Trend, domain.TrendPoint{
			Month:        r.MonthLabel(),
			Revenue:      r.Revenue,
			RollingAvg3M: r.RollingAvg3M,
		})

		summary.YoY = append(summary.YoY, domain.YoYPoint{
			Month:    r.MonthLabel(),
			Change:   r.YoYChangePct,
			Negative: r.YoYChangePct.Valid && r.YoYChangePct.Float64 < 0,
		})
	}

	return summary
}

// TotalRevenue soma a receita ignorando células ausentes
func TotalRevenue(records []domain.SalesRecord) float64 {
	total := 0.0
	for _, r := range records {
		if r.Revenue.Valid {
			total += r.Revenue.Float64
		}
	}
	return total
}

// AverageYoY é a média das variações presentes; 0 quando todas estão ausentes
func AverageYoY(records []domain.SalesRecord) float64 {
	sum, count := 0.0, 0
	for _, r := range records {
		if r.YoYChangePct.Valid {
			sum += r.YoYChangePct.Float64
			count++
		}
	}

	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}

// CumulativeRevenue é a receita acumulada mês a mês. Um mês sem receita fica ausente,
// mas os meses seguintes continuam somando o que já foi acumulado.
func CumulativeRevenue(records []domain.SalesRecord) []domain.CumulativePoint {
	points := make([]domain.CumulativePoint, 0, len(records))
	running := 0.0
	for _, r := range records {
		point := domain.CumulativePoint{Month: r.MonthLabel()}
		if r.Revenue.Valid {
			running += r.Revenue.Float64
			point.Revenue = domain.NewAmount(running)
		}
		points = append(points, point)
	}
	return points
}

// GoalCompletion é a razão receita/meta limitada a [0, 1]
func GoalCompletion(totalRevenue, annualGoal float64) *domain.GoalProgress {
	if annualGoal <= 0 {
		return nil
	}

	ratio := totalRevenue / annualGoal
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	return &domain.GoalProgress{
		Ratio:   ratio,
		Percent: ratio * 100,
	}
}

func bestMonth(records []domain.SalesRecord) *domain.MonthValue {
	return extremeMonth(records, func(candidate, current float64) bool { return candidate > current })
}

func worstMonth(records []domain.SalesRecord) *domain.MonthValue {
	return extremeMonth(records, func(candidate, current float64) bool { return candidate < current })
}

// extremeMonth mantém a primeira ocorrência em caso de empate
func extremeMonth(records []domain.SalesRecord, better func(candidate, current float64) bool) *domain.MonthValue {
	var found *domain.MonthValue
	for _, r := range records {
		if !r.Revenue.Valid {
			continue
		}

		if found == nil || better(r.Revenue.Float64, found.Value) {
			found = &domain.MonthValue{
				Month: r.MonthLabel(),
				Value: r.Revenue.Float64,
			}
		}
	}
	return found
}
