package production_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/domnus-go/internal/domain/production"
)

func TestRationedAvailability(t *testing.T) {
	tests := []struct {
		name     string
		money    int64
		unitCost int
		max      int
		expected production.Availability
	}{
		{"affords everything", 1_000_000, 1581, 150, production.Availability{Max: 150, Current: 150}},
		{"affords part", 500, 100, 120, production.Availability{Max: 120, Current: 5}},
		{"no money", 0, 100, 120, production.Availability{Max: 120, Current: 0}},
		{"negative money", -50, 100, 120, production.Availability{Max: 120, Current: 0}},
		{"zero ceiling", 1_000_000, 100, 0, production.Availability{}},
		{"negative ceiling", 1_000_000, 100, -3, production.Availability{}},
		{"free unit", 1_000_000, 0, 10, production.Availability{Max: 10, Current: 0}},
		{"exact boundary", 237150, 1581, 150, production.Availability{Max: 150, Current: 150}},
		{"one short of boundary", 237149, 1581, 150, production.Availability{Max: 150, Current: 149}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := production.RationedAvailability(decimal.NewFromInt(tt.money), tt.unitCost, tt.max)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRationedAvailability_StaysWithinCeiling(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		money := decimal.NewFromFloat(rng.Float64() * 1e7).Round(2)
		unitCost := rng.Intn(5000) + 1
		max := rng.Intn(500) + 1

		got := production.RationedAvailability(money, unitCost, max)

		assert.GreaterOrEqual(t, got.Current, 0)
		assert.LessOrEqual(t, got.Current, got.Max)
		assert.Equal(t, max, got.Max)
		// whatever is available must be payable
		assert.True(t, decimal.NewFromInt(int64(got.Current*unitCost)).LessThanOrEqual(money))
	}
}

func TestFlatAvailability(t *testing.T) {
	assert.Equal(t, production.Availability{Max: 50, Current: 2}, production.FlatAvailability(decimal.NewFromInt(2500), 1000, 50))
	assert.Equal(t, production.Availability{Max: 1, Current: 1}, production.FlatAvailability(decimal.NewFromInt(2500), 1000, 1))
	assert.Equal(t, production.Availability{Max: 5, Current: 0}, production.FlatAvailability(decimal.NewFromInt(2500), 0, 5))
	assert.Equal(t, production.Availability{}, production.FlatAvailability(decimal.NewFromInt(2500), 1000, 0))
}

func TestCapacity_Free(t *testing.T) {
	assert.Equal(t, 20, production.Capacity{Max: 50, Used: 30}.Free())
	assert.Equal(t, 0, production.Capacity{Max: 50, Used: 80}.Free())
}
