package commands

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
)

// options compartilhadas pelos subcomandos
type options struct {
	file     string
	goal     float64
	maxBytes int64
	verbose  bool
}

// NewRootCmd monta o comando raiz com todos os subcomandos
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "salesctl",
		Short: "월별 매출 대시보드 CLI",
		Long: `salesctl calcula os indicadores do painel de vendas mensais a partir de um CSV,
sem precisar do banco de dados.

Sem --file, usa os dados de exemplo.

Examples:
  go run ./cmd/salesctl summary --file vendas.csv --goal 300000000
  go run ./cmd/salesctl export --file vendas.csv --out painel.xlsx`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetLevel(logrus.WarnLevel)
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "arquivo CSV (padrão: dados de exemplo)")
	rootCmd.PersistentFlags().Float64VarP(&opts.goal, "goal", "g", 0, "meta anual de receita")
	rootCmd.PersistentFlags().Int64Var(&opts.maxBytes, "max-bytes", loading.DefaultMaxBytes, "tamanho máximo do arquivo")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "logs detalhados")

	rootCmd.AddCommand(newSummaryCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))

	return rootCmd
}

// Execute é chamado pelo main
func Execute() error {
	return NewRootCmd().Execute()
}

// buildSummary carrega o arquivo informado (ou os dados de exemplo) e calcula o painel
func buildSummary(opts *options) (*domain.DashboardSummary, error) {
	if opts.goal < 0 || math.IsInf(opts.goal, 0) || math.IsNaN(opts.goal) {
		return nil, dashboarding.ErrInvalidGoal
	}

	var source io.Reader
	name := "sample"
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao abrir arquivo")
		}
		defer f.Close()

		source = f
		name = opts.file
	}

	result, err := loading.NewCSVLoader(opts.maxBytes).Load(source)
	if err != nil {
		return nil, err
	}

	summary := dashboarding.Summarize(result.Records, opts.goal)
	summary.Dataset = &domain.Dataset{
		Name:        name,
		Source:      result.Source,
		Warning:     result.Warning,
		DroppedRows: result.DroppedRows,
		RecordCount: len(result.Records),
	}

	return summary, nil
}
