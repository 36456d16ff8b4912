package engine

import (
	"github.com/rs/zerolog"

	"github.com/piwi3910/RodCut/internal/model"
)

// Optimizer runs the 1D cutting-stock heuristic.
type Optimizer struct {
	Settings model.CutSettings
	Logger   zerolog.Logger
}

func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{Settings: settings, Logger: zerolog.Nop()}
}

// Optimize computes a cutting plan for the request.
//
// The blade thickness comes from the request; Settings only tune the search.
// Malformed requests fail with an error matching ErrInvalidInput. Demand that
// the stock cannot produce is not an error and is reported in the summary's
// unfulfilled cuts.
func (o *Optimizer) Optimize(req model.PlanRequest) (model.CuttingPlan, error) {
	settings := o.effectiveSettings()

	n, err := normalize(req, settings.Tolerance)
	if err != nil {
		return model.CuttingPlan{}, err
	}

	gen := &generator{
		lengths:       lengthsOf(n.demand),
		kerf:          n.kerf,
		tol:           settings.Tolerance,
		budget:        settings.SearchBudget,
		minRatio:      settings.MinEfficiencyRatio,
		maxCandidates: settings.MaxCandidates,
	}
	candidates := gen.generateAll(n.stock, countsOf(n.demand), settings.Parallel)

	o.Logger.Debug().
		Int("stock_classes", len(n.stock)).
		Int("demand_classes", len(n.demand)).
		Float64("kerf", n.kerf).
		Msg("generated candidate patterns")

	alloc := newAllocator(gen, n, candidates, max(settings.SearchBudget/4, 1), o.Logger)
	allocs, left := alloc.run()

	plan := assemble(allocs, gen.lengths, n.kerf, settings.Tolerance)

	unfulfilled := make([]model.UnfulfilledCut, 0, len(left))
	for _, c := range left {
		unfulfilled = append(unfulfilled, model.UnfulfilledCut{Length: c.length, Quantity: c.count})
	}

	result := model.CuttingPlan{Plan: plan, Summary: Summarize(plan, unfulfilled)}
	o.Logger.Info().
		Int("rods_used", result.RodsUsed()).
		Int("pieces_cut", result.PiecesCut()).
		Int("unfulfilled", result.Summary.UnfulfilledQuantity()).
		Float64("waste_pct", result.Summary.WastePercentage).
		Msg("optimization complete")
	return result, nil
}

// effectiveSettings replaces out-of-range search parameters with defaults.
func (o *Optimizer) effectiveSettings() model.CutSettings {
	s := o.Settings
	defaults := model.DefaultSettings()
	if !(s.Tolerance > 0 && s.Tolerance < 1) {
		s.Tolerance = defaults.Tolerance
	}
	if s.SearchBudget <= 0 {
		s.SearchBudget = defaults.SearchBudget
	}
	if !(s.MinEfficiencyRatio > 0 && s.MinEfficiencyRatio <= 1) {
		s.MinEfficiencyRatio = defaults.MinEfficiencyRatio
	}
	if s.MaxCandidates <= 0 {
		s.MaxCandidates = defaults.MaxCandidates
	}
	return s
}

// Optimize runs an optimizer with default search settings.
func Optimize(req model.PlanRequest) (model.CuttingPlan, error) {
	return New(model.DefaultSettings()).Optimize(req)
}
