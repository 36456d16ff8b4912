package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RodCut/internal/export"
	"github.com/piwi3910/RodCut/internal/history"
)

func historyCmd() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and reopen recorded runs",
	}
	cmd.PersistentFlags().StringVar(&db, "db", "", "SQLite run history path (default from config)")

	open := func() (*history.Store, error) {
		if db == "" {
			cfg, err := loadConfig()
			if err != nil {
				return nil, err
			}
			db = cfg.HistoryDB
		}
		if db == "" {
			return nil, errors.New("no history database: set history_db in the config or pass --db")
		}
		return history.Open(db)
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				dimColor.Println("no runs recorded")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tNAME\tRODS\tPIECES\tWASTE\tUNFULFILLED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%d\n", r.ID, r.CreatedAt.Local().Format(time.DateTime),
					r.Name, r.RodsUsed, r.PiecesCut, export.FormatPercent(r.WastePercentage), r.Unfulfilled)
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs (0 for all)")

	var (
		out    string
		format string
		lang   string
	)
	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show a recorded run or write its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dimColor.Printf("Run %s %s at %s\n\n", run.ID, run.Name, run.CreatedAt.Local().Format(time.DateTime))
			printPlan(os.Stdout, run.Plan, cfg.Unit)
			if out == "" {
				return nil
			}
			opts := reportOptions(cfg, "", lang, run.Request.BladeThickness)
			if err := writeReport(cmd.Context(), out, formatFor(out, format), run.Plan, opts, cfg.ChromeExecutable); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			dimColor.Fprintf(os.Stderr, "wrote %s\n", out)
			return nil
		},
	}
	show.Flags().StringVarP(&out, "out", "o", "", "Write the run's report to a file")
	show.Flags().StringVar(&format, "format", "", "Force the report format")
	show.Flags().StringVar(&lang, "lang", "", "Report language: en or ar")

	remove := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Delete(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, show, remove)
	return cmd
}
