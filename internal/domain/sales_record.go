// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// Rótulos das colunas obrigatórias da planilha de vendas
const (
	ColumnMonth           = "월"
	ColumnRevenue         = "매출액"
	ColumnPriorYear       = "전년동월"
	ColumnYoYChange       = "증감률"
	ColumnRollingAvg3M    = "이동평균_3M"
	ColumnCumulativeSales = "누적매출"
)

// MonthLayout é o formato de exibição do mês (yyyy-mm)
const MonthLayout = "2006-01"

// RequiredColumns lista as colunas que precisam existir no CSV enviado
var RequiredColumns = []string{ColumnMonth, ColumnRevenue, ColumnPriorYear, ColumnYoYChange}

// SalesRecord representa uma linha (um mês) do conjunto de vendas
type SalesRecord struct {
	Month            time.Time `json:"month"`
	Revenue          Amount    `json:"revenue"`
	PriorYearRevenue Amount    `json:"prior_year_revenue"`
	YoYChangePct     Amount    `json:"yoy_change_pct"`
	RollingAvg3M     Amount    `json:"rolling_avg_3m"`
}

// MonthLabel retorna o mês no formato yyyy-mm
func (r SalesRecord) MonthLabel() string {
	return r.Month.Format(MonthLayout)
}
