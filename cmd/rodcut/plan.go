package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/export"
	"github.com/piwi3910/RodCut/internal/history"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/project"
)

func planCmd() *cobra.Command {
	var (
		in          inputFlags
		out         []string
		format      string
		labels      string
		unit        string
		lang        string
		saveJob     string
		record      bool
		name        string
		keepOffcuts bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a cutting plan",
		Example: `  rodcut plan --stock 600x10 --cuts 55.5x50 --kerf 0.5
  rodcut plan --stock-file stock.csv --cuts-file cuts.xlsx --out plan.pdf --out plan.xlsx
  rodcut plan --job order.json --use-leftovers --keep-offcuts --record`,
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

			opt := engine.New(job.Settings)
			opt.Logger = log
			req := job.Request()
			plan, err := opt.Optimize(req)
			if err != nil {
				return err
			}

			if unit == "" {
				unit = job.Unit
			}
			if !quiet {
				printPlan(os.Stdout, plan, unit)
			}

			opts := reportOptions(cfg, unit, lang, req.BladeThickness)
			for _, path := range out {
				if err := writeReport(cmd.Context(), path, formatFor(path, format), plan, opts, cfg.ChromeExecutable); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				dimColor.Fprintf(os.Stderr, "wrote %s\n", path)
			}
			if labels != "" {
				if err := writeReport(cmd.Context(), labels, "labels", plan, opts, ""); err != nil {
					return fmt.Errorf("write %s: %w", labels, err)
				}
				dimColor.Fprintf(os.Stderr, "wrote %s\n", labels)
			}

			if record {
				if cfg.HistoryDB == "" {
					return fmt.Errorf("--record needs history_db in %s", flagConfig)
				}
				store, err := history.Open(cfg.HistoryDB)
				if err != nil {
					return err
				}
				defer store.Close()
				if name == "" {
					name = job.Name
				}
				run, err := store.Save(cmd.Context(), name, req, plan)
				if err != nil {
					return err
				}
				dimColor.Fprintf(os.Stderr, "recorded run %s\n", run.ID)
			}

			if keepOffcuts {
				if err := updateInventory(job, plan, cfg.MinOffcutLength); err != nil {
					return err
				}
			}

			if saveJob != "" {
				job.Result = &plan
				if err := project.SaveJob(saveJob, job); err != nil {
					return err
				}
				project.AddRecentJob(&cfg, saveJob)
				if err := project.SaveAppConfig(flagConfig, cfg); err != nil {
					log.Warn().Err(err).Msg("update recent jobs")
				}
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringSliceVarP(&out, "out", "o", nil, "Write the plan to a file; format from the extension (repeatable)")
	cmd.Flags().StringVar(&format, "format", "", "Force the report format: pdf, chrome, xlsx, dxf, html, md, json")
	cmd.Flags().StringVar(&labels, "labels", "", "Write QR piece labels to this PDF")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit shown in reports (default from job/config)")
	cmd.Flags().StringVar(&lang, "lang", "", "Report language: en or ar")
	cmd.Flags().StringVar(&saveJob, "save-job", "", "Save the job with its result to this file")
	cmd.Flags().BoolVar(&record, "record", false, "Record the run in the history database")
	cmd.Flags().StringVar(&name, "name", "", "Name of the recorded run")
	cmd.Flags().BoolVar(&keepOffcuts, "keep-offcuts", false, "Store reusable offcuts in the inventory and consume used leftovers")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the plan")
	return cmd
}

// updateInventory removes the leftovers the plan consumed and stores its
// reusable offcuts. A used stock length counts as a leftover when the job
// offered leftovers of that length.
func updateInventory(job model.Job, plan model.CuttingPlan, minOffcut float64) error {
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}

	var used []model.RodSpec
	for _, u := range plan.StockUsage() {
		for _, l := range job.Leftovers {
			if model.SameLength(u.Length, l.Length, model.DefaultTolerance) {
				used = append(used, model.RodSpec{Length: u.Length, Quantity: min(u.Quantity, l.Quantity)})
				break
			}
		}
	}
	inv.ConsumeLeftovers(used)

	offcuts := model.DetectOffcuts(plan, minOffcut)
	inv.AddLeftovers(model.GroupOffcuts(offcuts))
	if err := project.SaveInventory(path, inv); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	okColor.Fprintf(os.Stderr, "kept %d offcuts (%s total) in %s\n", len(offcuts), export.FormatLength(model.TotalOffcutLength(offcuts), job.Unit), path)
	return nil
}
