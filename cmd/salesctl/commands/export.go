package commands

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
)

func newExportCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "XLSX 내보내기",
		Long: `Gera a planilha com as abas 매출 e KPI.

Example:
  go run ./cmd/salesctl export --file vendas.csv --out painel.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := buildSummary(opts)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "erro ao criar arquivo de saída")
			}

			if err := exporting.WriteWorkbook(f, summary); err != nil {
				f.Close()
				return err
			}

			if err := f.Close(); err != nil {
				return errors.Wrap(err, "erro ao fechar arquivo de saída")
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "planilha gerada: %s (%d meses)\n", out, len(summary.Records))
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "arquivo XLSX de saída")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
