package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Despacho-api/internal/application/stockregister"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

var (
	importEncoding string
	importSheet    string
	importReplace  bool
)

var importCmd = &cobra.Command{
	Use:   "import <source> <file>",
	Short: "Cargar una planilla XLSX o CSV en una fuente",
	Long: `Carga las filas de la planilla en la tabla de la fuente
(sales | cost_center | received | adjustment).

La primera fila es el encabezado; se aceptan los nombres de columna de cada
tabla (Sales_Date, Received_Qty, ...) o los genéricos date/code/qty.
Cantidades: "1.250,5" y "1,250.5" valen 1250.5; "1,5" es 1.5; "1,250" es 1250.
Las fechas como serial de Excel sólo se aceptan en XLSX.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importEncoding, "encoding", "", "CSV: utf-8 (default) | latin1")
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "XLSX: hoja a leer (default la primera)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "vaciar la tabla antes de cargar")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	source, err := entity.ParseEventSource(args[0])
	if err != nil {
		return err
	}
	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("abrir planilla: %w", err)
	}
	defer f.Close()

	rt, err := setup(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.stock.Import(cmd.Context(), source, f, filepath.Base(args[1]), stockregister.ImportOptions{
		Encoding: importEncoding,
		Sheet:    importSheet,
		Replace:  importReplace,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d filas cargadas (sin código: %d, fecha inválida: %d, cantidad vacía: %d)\n",
		res.Source, res.Inserted, res.MissingCode, res.BadDate, res.NullQuantity)
	return nil
}
