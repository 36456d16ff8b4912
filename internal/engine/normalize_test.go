package engine

import (
	"testing"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_GroupsAndSorts(t *testing.T) {
	req := model.PlanRequest{
		BladeThickness: 0.5,
		StockRods:      rods(300, 2, 600, 3),
		LeftoverRods:   rods(600, 1, 120, 2),
		RequiredCuts:   rods(55.5, 10, 100, 1, 55.5000000001, 5),
	}

	n, err := normalize(req, model.DefaultTolerance)
	require.NoError(t, err)

	assert.Equal(t, 0.5, n.kerf)
	assert.Equal(t, []float64{600, 300, 120}, lengthsOf(n.stock))
	assert.Equal(t, []int{4, 2, 2}, countsOf(n.stock))
	require.Len(t, n.demand, 2)
	assert.Equal(t, 100.0, n.demand[0].length)
	assert.Equal(t, 15, n.demand[1].count)
}

func TestNormalize_DropsInvalidEntries(t *testing.T) {
	req := model.PlanRequest{
		BladeThickness: 1,
		StockRods:      rods(600, 0, -5, 2, 400, 1),
		RequiredCuts:   rods(0, 3, 50, -1, 25, 2),
	}

	n, err := normalize(req, model.DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, []lengthClass{{400, 1}}, n.stock)
	assert.Equal(t, []lengthClass{{25, 2}}, n.demand)
}

func TestNormalize_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		req    model.PlanRequest
		reason string
	}{
		{"zero kerf", model.PlanRequest{StockRods: rods(600, 1), RequiredCuts: rods(10, 1)}, "blade thickness"},
		{"no stock", model.PlanRequest{BladeThickness: 1, RequiredCuts: rods(10, 1)}, "stock"},
		{"no demand", model.PlanRequest{BladeThickness: 1, StockRods: rods(600, 1)}, "required cuts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalize(tt.req, model.DefaultTolerance)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}
