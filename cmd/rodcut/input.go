package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RodCut/internal/importer"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/project"
)

// inputFlags are the flags that describe a job on the command line.
type inputFlags struct {
	job          string
	template     string
	scale        int
	stock        []string
	leftovers    []string
	cuts         []string
	stockFile    string
	leftoverFile string
	cutsFile     string
	kerf         float64
	budget       int
	useLeftovers bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.job, "job", "", "Job file (JSON) to start from")
	fl.StringVar(&f.template, "template", "", "Saved template name to start from")
	fl.IntVar(&f.scale, "scale", 1, "Multiply template cut quantities by this factor")
	fl.StringSliceVar(&f.stock, "stock", nil, "Stock rods as LENGTHxQTY, e.g. 600x10 (repeatable)")
	fl.StringSliceVar(&f.leftovers, "leftover", nil, "Leftover rods as LENGTHxQTY (repeatable)")
	fl.StringSliceVar(&f.cuts, "cuts", nil, "Required cuts as [LABEL=]LENGTHxQTY, e.g. 55.5x50 (repeatable)")
	fl.StringVar(&f.stockFile, "stock-file", "", "Import stock rods from a CSV, XLSX or DXF file")
	fl.StringVar(&f.leftoverFile, "leftover-file", "", "Import leftover rods from a CSV, XLSX or DXF file")
	fl.StringVar(&f.cutsFile, "cuts-file", "", "Import required cuts from a CSV, XLSX or DXF file")
	fl.Float64Var(&f.kerf, "kerf", 0, "Blade thickness (default from config)")
	fl.IntVar(&f.budget, "budget", 0, "Pattern search budget per stock length (default from config)")
	fl.BoolVar(&f.useLeftovers, "use-leftovers", false, "Add the leftovers saved in the inventory")
}

// load builds the job described by the flags on top of the config defaults.
func (f *inputFlags) load(cmd *cobra.Command, cfg model.AppConfig, log zerolog.Logger) (model.Job, error) {
	job := cfg.NewJob()
	job.Cuts = nil

	switch {
	case f.job != "" && f.template != "":
		return model.Job{}, errors.New("--job and --template are mutually exclusive")
	case f.job != "":
		loaded, err := project.LoadJob(f.job)
		if err != nil {
			return model.Job{}, err
		}
		job = loaded
	case f.template != "":
		store, err := project.LoadTemplates(project.DefaultTemplatePath())
		if err != nil {
			return model.Job{}, fmt.Errorf("load templates: %w", err)
		}
		tmpl := store.FindByName(f.template)
		if tmpl == nil {
			return model.Job{}, fmt.Errorf("template %q not found", f.template)
		}
		job = tmpl.Scaled(max(f.scale, 1)).ToJob(f.template)
	}

	stock, err := rodList(f.stock, f.stockFile, log)
	if err != nil {
		return model.Job{}, fmt.Errorf("stock: %w", err)
	}
	if len(stock) > 0 {
		job.Stocks = stock
	}

	leftovers, err := rodList(f.leftovers, f.leftoverFile, log)
	if err != nil {
		return model.Job{}, fmt.Errorf("leftovers: %w", err)
	}
	job.Leftovers = append(job.Leftovers, leftovers...)

	cuts, err := rodList(f.cuts, f.cutsFile, log)
	if err != nil {
		return model.Job{}, fmt.Errorf("cuts: %w", err)
	}
	if len(cuts) > 0 {
		job.Cuts = cuts
	}
	if len(job.Cuts) == 0 {
		return model.Job{}, errors.New("no required cuts: use --cuts, --cuts-file, --job or --template")
	}

	if f.useLeftovers {
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			return model.Job{}, fmt.Errorf("load inventory: %w", err)
		}
		job.Leftovers = append(job.Leftovers, inv.Leftovers...)
	}

	if cmd.Flags().Changed("kerf") {
		job.Settings.KerfWidth = f.kerf
	}
	if cmd.Flags().Changed("budget") {
		job.Settings.SearchBudget = f.budget
	}
	return job, nil
}

// rodList combines rods given as flags with rods imported from a file.
func rodList(specs []string, file string, log zerolog.Logger) ([]model.RodSpec, error) {
	var rods []model.RodSpec
	for _, s := range specs {
		r, err := parseRodSpec(s)
		if err != nil {
			return nil, err
		}
		rods = append(rods, r)
	}
	if file == "" {
		return rods, nil
	}

	result := importer.ImportFile(file)
	for _, w := range result.Warnings {
		log.Warn().Str("file", file).Msg(w)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("import %s: %s", file, strings.Join(result.Errors, "; "))
	}
	return append(rods, result.Rods...), nil
}

// parseRodSpec parses [LABEL=]LENGTH[xQTY]. The length may use a decimal
// comma; the quantity defaults to 1.
func parseRodSpec(s string) (model.RodSpec, error) {
	label := ""
	body := strings.TrimSpace(s)
	if i := strings.IndexByte(body, '='); i >= 0 {
		label = strings.TrimSpace(body[:i])
		body = strings.TrimSpace(body[i+1:])
	}

	lengthStr, qtyStr := body, "1"
	if i := strings.LastIndexAny(body, "xX*"); i >= 0 {
		lengthStr, qtyStr = body[:i], body[i+1:]
	}

	length, err := importer.ParseLength(lengthStr)
	if err != nil {
		return model.RodSpec{}, fmt.Errorf("bad length in %q", s)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil {
		return model.RodSpec{}, fmt.Errorf("bad quantity in %q", s)
	}
	return model.NewRodSpec(label, length, qty), nil
}
