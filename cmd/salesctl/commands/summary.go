package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "KPI 요약 출력",
		Long: `Mostra receita total, variação média, melhor e pior mês e o progresso da meta.

Example:
  go run ./cmd/salesctl summary --file vendas.csv --goal 300000000
  go run ./cmd/salesctl summary --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := buildSummary(opts)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := utils.PrettyJson(summary)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}

			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "saída em JSON")

	return cmd
}

func printSummary(w io.Writer, summary *domain.DashboardSummary) {
	p := message.NewPrinter(language.Korean)

	p.Fprintf(w, "=== 월별 매출 대시보드 (%s) ===\n", summary.Dataset.Source)
	if summary.Dataset.Warning != "" {
		p.Fprintf(w, "⚠ %s\n", summary.Dataset.Warning)
	}
	if summary.Dataset.DroppedRows > 0 {
		p.Fprintf(w, "제외된 행: %d\n", summary.Dataset.DroppedRows)
	}

	p.Fprintf(w, "기간: %d개월\n", len(summary.Records))
	p.Fprintf(w, "총매출: %.0f\n", summary.TotalRevenue)
	p.Fprintf(w, "평균 증감률: %.2f%%\n", utils.RoundWithTwoDecimalPlace(summary.AverageYoY))

	if summary.BestMonth != nil {
		p.Fprintf(w, "최고 매출월: %s (%.0f)\n", summary.BestMonth.Month, summary.BestMonth.Value)
	}
	if summary.WorstMonth != nil {
		p.Fprintf(w, "최저 매출월: %s (%.0f)\n", summary.WorstMonth.Month, summary.WorstMonth.Value)
	}

	if summary.Goal != nil {
		p.Fprintf(w, "연간 목표: %.0f\n", summary.AnnualGoal)
		p.Fprintf(w, "목표 달성률: %.1f%%\n", summary.Goal.Percent)
	}
}
