package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RodCut/internal/export"
	"github.com/piwi3910/RodCut/internal/model"
)

func estimateCmd() *cobra.Command {
	var (
		cuts      []string
		cutsFile  string
		rodLength float64
		kerf      float64
		waste     float64
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate how many stock rods to buy for a cut list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rods, err := rodList(cuts, cutsFile, newLogger(false))
			if err != nil {
				return err
			}
			if len(rods) == 0 {
				return errors.New("no cuts: use --cuts or --cuts-file")
			}
			if !cmd.Flags().Changed("rod") {
				rodLength = cfg.DefaultStockLength
			}
			if !cmd.Flags().Changed("kerf") {
				kerf = cfg.DefaultKerfWidth
			}
			if rodLength <= 0 {
				return errors.New("--rod must be positive")
			}

			est := model.CalculatePurchaseEstimate(rods, rodLength, kerf, waste)
			u := cfg.Unit
			headerColor.Printf("Purchase estimate for %s rods\n\n", export.FormatLength(rodLength, u))
			fmt.Printf("Pieces:             %d\n", est.PiecesCount)
			fmt.Printf("Cut length:         %s\n", export.FormatLength(est.TotalCutLength, u))
			fmt.Printf("With kerf:          %s\n", export.FormatLength(est.TotalWithKerf, u))
			fmt.Printf("Rods (exact):       %s\n", export.FormatLength(est.RodsNeededExact, ""))
			fmt.Printf("Rods (minimum):     %d\n", est.RodsNeededMin)
			okColor.Printf("Rods to buy:        %d (+%s waste)\n", est.RodsWithWaste, export.FormatPercent(est.WastePercent))
			if len(est.Oversize) > 0 {
				warnColor.Fprintln(os.Stdout, "\nLonger than the rod, not counted:")
				for _, o := range est.Oversize {
					warnColor.Printf("  %s x %d\n", export.FormatLength(o.Length, u), o.Quantity)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&cuts, "cuts", nil, "Required cuts as [LABEL=]LENGTHxQTY (repeatable)")
	cmd.Flags().StringVar(&cutsFile, "cuts-file", "", "Import required cuts from a CSV, XLSX or DXF file")
	cmd.Flags().Float64Var(&rodLength, "rod", 0, "Stock rod length (default from config)")
	cmd.Flags().Float64Var(&kerf, "kerf", 0, "Blade thickness (default from config)")
	cmd.Flags().Float64Var(&waste, "waste", 10, "Waste allowance in percent")
	return cmd
}
