package engine

import (
	"fmt"

	"github.com/piwi3910/RodCut/internal/model"
)

// ComparisonScenario defines a named request and search settings to compare.
type ComparisonScenario struct {
	Name     string            `json:"name"`
	Settings model.CutSettings `json:"settings"`
	Request  model.PlanRequest `json:"request"`
}

// ComparisonResult holds the optimization result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario         ComparisonScenario `json:"scenario"`
	Plan             model.CuttingPlan  `json:"plan"`
	RodsUsed         int                `json:"rods_used"`
	TotalCuts        int                `json:"total_cuts"`
	WastePercent     float64            `json:"waste_percent"`
	UnfulfilledCount int                `json:"unfulfilled_count"`
	Err              error              `json:"-"`
}

// CompareScenarios runs optimization for each scenario and returns the results
// in scenario order. A scenario with invalid input keeps its error in Err and
// does not stop the others.
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan, err := New(scenario.Settings).Optimize(scenario.Request)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		totalCuts := 0
		for _, u := range plan.Plan {
			totalCuts += len(u.Cuts)
		}

		results = append(results, ComparisonResult{
			Scenario:         scenario,
			Plan:             plan,
			RodsUsed:         plan.RodsUsed(),
			TotalCuts:        totalCuts,
			WastePercent:     plan.Summary.WastePercentage,
			UnfulfilledCount: plan.Summary.UnfulfilledQuantity(),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current request, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.CutSettings, req model.PlanRequest) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
			Request:  req,
		},
	}

	// Scenario: Thinner blade
	if req.BladeThickness > 0 {
		thin := req
		thin.BladeThickness = req.BladeThickness * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.2f (half)", thin.BladeThickness),
			Settings: base,
			Request:  thin,
		})
	}

	// Scenario: Spend more effort on pattern search
	deep := base
	if deep.SearchBudget <= 0 {
		deep.SearchBudget = model.DefaultSettings().SearchBudget
	}
	deep.SearchBudget *= 5
	scenarios = append(scenarios, ComparisonScenario{
		Name:     "Deep Search",
		Settings: deep,
		Request:  req,
	})

	// Scenario: Fresh stock only
	if len(req.LeftoverRods) > 0 {
		fresh := req
		fresh.LeftoverRods = nil
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Without Leftovers",
			Settings: base,
			Request:  fresh,
		})
	}

	return scenarios
}
