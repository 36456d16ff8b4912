package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/export"
)

func compareCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the plan against what-if scenarios",
		Long: `Runs the job as given and with a half-thickness blade, a deeper pattern
search and, when leftovers are present, fresh stock only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(false)
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			job, err := in.load(cmd, cfg, log)
			if err != nil {
				return err
			}

			results := engine.CompareScenarios(engine.BuildDefaultScenarios(job.Settings, job.Request()))
			if len(results) > 0 && results[0].Err != nil {
				return results[0].Err
			}

			best := -1
			for i, r := range results {
				if r.Err != nil {
					continue
				}
				if best < 0 || r.UnfulfilledCount < results[best].UnfulfilledCount ||
					(r.UnfulfilledCount == results[best].UnfulfilledCount && r.RodsUsed < results[best].RodsUsed) {
					best = i
				}
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tRODS\tCUTS\tWASTE\tUNFULFILLED")
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(tw, "%s\t-\t-\t-\t%v\n", r.Scenario.Name, r.Err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\n", r.Scenario.Name, r.RodsUsed, r.TotalCuts,
					export.FormatPercent(r.WastePercent), r.UnfulfilledCount)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if best >= 0 {
				bestRowColor.Printf("\nBest: %s\n", results[best].Scenario.Name)
			}
			return nil
		},
	}

	in.register(cmd)
	return cmd
}
