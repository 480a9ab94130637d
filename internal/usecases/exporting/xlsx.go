// Package exporting gera a planilha XLSX de um painel de vendas
package exporting

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	SalesSheet = "매출"
	KPISheet   = "KPI"

	// ContentType é o tipo MIME da planilha gerada
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var salesHeader = []any{
	domain.ColumnMonth,
	domain.ColumnRevenue,
	domain.ColumnPriorYear,
	domain.ColumnYoYChange,
	domain.ColumnRollingAvg3M,
	domain.ColumnCumulativeSales,
}

// Rótulos da aba de indicadores
const (
	LabelTotalRevenue = "총매출"
	LabelAverageYoY   = "평균 증감률"
	LabelBestMonth    = "최고 매출월"
	LabelWorstMonth   = "최저 매출월"
	LabelAnnualGoal   = "연간 목표"
	LabelGoalProgress = "목표 달성률"
)

// WriteWorkbook escreve em w a planilha com os registros e os indicadores do painel.
// Células ausentes ficam em branco.
func WriteWorkbook(w io.Writer, summary *domain.DashboardSummary) error {
	if summary == nil {
		return errors.New("exporting: painel vazio")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SalesSheet); err != nil {
		return errors.Wrap(err, "exporting: erro ao renomear aba")
	}

	if err := writeSalesSheet(f, summary); err != nil {
		return err
	}

	if _, err := f.NewSheet(KPISheet); err != nil {
		return errors.Wrap(err, "exporting: erro ao criar aba de indicadores")
	}

	if err := writeKPISheet(f, summary); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "exporting: erro ao escrever planilha")
	}

	return nil
}

func writeSalesSheet(f *excelize.File, summary *domain.DashboardSummary) error {
	if err := f.SetSheetRow(SalesSheet, "A1", &salesHeader); err != nil {
		return errors.Wrap(err, "exporting: erro ao escrever cabeçalho")
	}

	for i, r := range summary.Records {
		var cumulative domain.Amount
		if i < len(summary.Cumulative) {
			cumulative = summary.Cumulative[i].Revenue
		}

		row := []any{
			r.MonthLabel(),
			cellValue(r.Revenue),
			cellValue(r.PriorYearRevenue),
			cellValue(r.YoYChangePct),
			cellValue(r.RollingAvg3M),
			cellValue(cumulative),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "exporting: coordenada inválida")
		}

		if err := f.SetSheetRow(SalesSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "exporting: erro ao escrever mês %s", r.MonthLabel())
		}
	}

	return f.SetColWidth(SalesSheet, "A", "F", 14)
}

func writeKPISheet(f *excelize.File, summary *domain.DashboardSummary) error {
	rows := [][]any{
		{LabelTotalRevenue, summary.TotalRevenue},
		{LabelAverageYoY, summary.AverageYoY},
		monthRow(LabelBestMonth, summary.BestMonth),
		monthRow(LabelWorstMonth, summary.WorstMonth),
	}

	if summary.Goal != nil {
		rows = append(rows,
			[]any{LabelAnnualGoal, summary.AnnualGoal},
			[]any{LabelGoalProgress, summary.Goal.Ratio},
		)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "exporting: coordenada inválida")
		}

		if err := f.SetSheetRow(KPISheet, cell, &rows[i]); err != nil {
			return errors.Wrap(err, "exporting: erro ao escrever indicadores")
		}
	}

	return f.SetColWidth(KPISheet, "A", "C", 16)
}

// monthRow gera a linha rótulo, mês e valor; sem receita as colunas ficam em branco
func monthRow(label string, month *domain.MonthValue) []any {
	if month == nil {
		return []any{label}
	}
	return []any{label, month.Month, month.Value}
}

func cellValue(a domain.Amount) any {
	if !a.Valid {
		return nil
	}
	return a.Float64
}
