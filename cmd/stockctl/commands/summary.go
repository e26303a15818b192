package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/application/stockregister"
	"github.com/jhoicas/Despacho-api/internal/infrastructure/export"
)

var (
	summaryFrom   string
	summaryTo     string
	summaryCode   string
	summaryFormat string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Registro de stock del período",
	Long: `Imprime por código: stock anterior, recibido, vendido y stock final.
Sin --from/--to usa el mes en curso hasta hoy.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "inicio YYYY-MM-DD")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "fin YYYY-MM-DD")
	summaryCmd.Flags().StringVar(&summaryCode, "code", "", "búsqueda parcial por código")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "table", "table | csv")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if summaryFormat != "table" && summaryFormat != "csv" {
		return fmt.Errorf("--format %q: use table o csv", summaryFormat)
	}
	rt, err := setup(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	out, err := rt.stock.Summary(cmd.Context(), dto.StockQuery{StartDate: summaryFrom, EndDate: summaryTo, Code: summaryCode})
	if err != nil {
		return err
	}

	if summaryFormat == "csv" {
		data, err := export.NewRenderer("").RenderSummary(cmd.Context(), stockregister.FormatCSV, out)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return printSummary(cmd.OutOrStdout(), out)
}

func printSummary(w io.Writer, s *dto.StockSummaryDTO) error {
	fmt.Fprintf(w, "Período %s a %s", s.Period.StartDate, s.Period.EndDate)
	if s.Code != "" {
		fmt.Fprintf(w, " (código contiene %q)", s.Code)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CODE\tPREVIOUS\tRECEIVED\tSOLD\tENDING\t")
	for _, r := range s.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.Code, r.PreviousStock, r.TotalReceived, r.TotalSold, r.EndingStock)
	}
	t := s.Totals
	fmt.Fprintf(tw, "TOTAL (%d)\t%s\t%s\t%s\t%s\t\n", t.Products, t.PreviousStock, t.TotalReceived, t.TotalSold, t.EndingStock)
	return tw.Flush()
}
