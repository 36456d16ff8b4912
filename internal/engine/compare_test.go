package engine

import (
	"testing"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	req := model.PlanRequest{
		BladeThickness: 0.5,
		StockRods:      rods(600, 10),
		RequiredCuts:   rods(55.5, 50),
	}

	scenarios := BuildDefaultScenarios(model.DefaultSettings(), req)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, 0.25, scenarios[1].Request.BladeThickness)
	assert.Equal(t, model.DefaultSettings().SearchBudget*5, scenarios[2].Settings.SearchBudget)

	req.LeftoverRods = rods(120, 2)
	scenarios = BuildDefaultScenarios(model.DefaultSettings(), req)
	require.Len(t, scenarios, 4)
	assert.Equal(t, "Without Leftovers", scenarios[3].Name)
	assert.Empty(t, scenarios[3].Request.LeftoverRods)
}

func TestCompareScenarios(t *testing.T) {
	req := model.PlanRequest{
		BladeThickness: 0.5,
		StockRods:      rods(600, 10),
		RequiredCuts:   rods(55.5, 50),
	}
	scenarios := BuildDefaultScenarios(model.DefaultSettings(), req)
	scenarios = append(scenarios, ComparisonScenario{Name: "Broken", Request: model.PlanRequest{}})

	results := CompareScenarios(scenarios)
	require.Len(t, results, len(scenarios))

	for _, r := range results[:3] {
		require.NoError(t, r.Err, r.Scenario.Name)
		assert.Equal(t, 5, r.RodsUsed)
		assert.Equal(t, 50, r.TotalCuts)
		assert.Zero(t, r.UnfulfilledCount)
	}
	assert.Less(t, results[1].Plan.Summary.TotalKerfWaste, results[0].Plan.Summary.TotalKerfWaste, "thinner blade loses less to kerf")
	assert.ErrorIs(t, results[3].Err, ErrInvalidInput)
}
