package main

import (
	"context"
	"fmt"
	"log"
	"marketdash/cmd"
	"marketdash/internal/domain"
	"marketdash/internal/service"
	"os"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var (
	symbolsFlag string
	periodFlag  string
	csvPathFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "marketdash",
		Short: "print risk and performance metrics for a set of tickers",
		RunE:  run,
	}
	rootCmd.Flags().StringVar(&symbolsFlag, "symbols", "AAPL,MSFT,GOOGL", "comma-separated ticker symbols")
	rootCmd.Flags().StringVar(&periodFlag, "period", "1Y", "lookback period (1M,3M,6M,1Y,2Y,5Y,MAX)")
	rootCmd.Flags().StringVar(&csvPathFlag, "csv", "", "write the risk table to this csv file instead of stdout")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cobraCmd *cobra.Command, args []string) error {
	handler, err := cmd.InitializeDependencies()
	if err != nil {
		return err
	}

	symbols := service.ParseSymbols(symbolsFlag)
	if len(symbols) == 0 {
		return fmt.Errorf("please enter at least one stock ticker")
	}
	period, err := domain.ParsePeriod(periodFlag, domain.PeriodOneYear)
	if err != nil {
		return err
	}

	ctx := context.Background()
	dashboard, err := handler.DashboardService.GetDashboard(ctx, symbols, period)
	if err != nil {
		return err
	}

	if csvPathFlag != "" {
		return writeRiskCsv(dashboard, csvPathFlag)
	}

	printDashboard(dashboard)
	return nil
}

type riskCsvRow struct {
	Symbol               string  `csv:"symbol"`
	CurrentPrice         float64 `csv:"current_price"`
	TotalReturn          float64 `csv:"total_return"`
	AnnualizedVolatility float64 `csv:"annualized_volatility"`
	SharpeRatio          float64 `csv:"sharpe_ratio"`
	MaxDrawdown          float64 `csv:"max_drawdown"`
	ValueAtRisk95        float64 `csv:"value_at_risk_95"`
}

func writeRiskCsv(dashboard *service.Dashboard, path string) error {
	varBySymbol := map[string]float64{}
	for _, row := range dashboard.Risk.VaR {
		varBySymbol[row.Symbol] = row.ValueAtRisk95
	}

	rows := []riskCsvRow{}
	for _, row := range dashboard.Risk.Rows {
		rows = append(rows, riskCsvRow{
			Symbol:               row.Symbol,
			CurrentPrice:         row.CurrentPrice,
			TotalReturn:          row.TotalReturn,
			AnnualizedVolatility: row.AnnualizedVolatility,
			SharpeRatio:          row.SharpeRatio,
			MaxDrawdown:          row.MaxDrawdown,
			ValueAtRisk95:        varBySymbol[row.Symbol],
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

func printDashboard(dashboard *service.Dashboard) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tRETURN\tVOL\tSHARPE\tMAX DD\tVAR 95")
	for _, row := range dashboard.Risk.Rows {
		var var95 float64
		for _, v := range dashboard.Risk.VaR {
			if v.Symbol == row.Symbol {
				var95 = v.ValueAtRisk95
			}
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f%%\t%.2f%%\t%.2f\t%.2f%%\t%.2f%%\n",
			row.Symbol,
			row.CurrentPrice,
			row.TotalReturn*100,
			row.AnnualizedVolatility*100,
			row.SharpeRatio,
			row.MaxDrawdown*100,
			var95*100,
		)
	}
	w.Flush()

	if dashboard.Portfolio.Message != "" {
		fmt.Println(dashboard.Portfolio.Message)
		return
	}
	fmt.Printf("portfolio (equal weight): return %.2f%%, vol %.2f%%, sharpe %.2f, max dd %.2f%%\n",
		dashboard.Portfolio.Metrics.TotalReturn*100,
		dashboard.Portfolio.Metrics.AnnualizedVolatility*100,
		dashboard.Portfolio.Metrics.SharpeRatio,
		dashboard.Portfolio.Metrics.MaxDrawdown*100,
	)
}
