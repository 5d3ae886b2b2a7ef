package catalog_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
)

func TestDefault_LoadsEmbeddedTables(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, []string{"attack", "defense", "flex", "big_flex", "recruits"}, c.UnitKinds())
	assert.Equal(t, []string{"homes", "mines", "fuel_plants", "hangars", "drone_factories", "missile_silos", "workshops"}, c.Structures())
	assert.Equal(t, []string{"planet_busters", "star_busters", "galaxy_busters"}, c.MissileKinds())
	assert.Len(t, c.ProjectKinds(), 10)

	flex, ok := c.Unit("flex")
	require.True(t, ok)
	assert.Equal(t, 900, flex.Cost)
	assert.Equal(t, 2, flex.HangarCapacity)

	recruits, ok := c.Unit(catalog.UnitRecruits)
	require.True(t, ok)
	assert.True(t, recruits.Pool)

	assert.Equal(t, time.Hour, c.Epoch())
}

func TestSettlePrice(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, 1581, c.SettlePrice(1000))
	assert.Equal(t, 0, c.SettlePrice(0))
	assert.Equal(t, 150, c.MaxSettle(1000))
}

func TestStructurePrice_UsesStructureMultiplier(t *testing.T) {
	c := catalog.Default()

	// floor(sqrt(1000) * 60) = floor(1897.36...)
	assert.Equal(t, 1897, c.StructurePrice(1000))
	assert.Equal(t, 600, c.StructurePrice(100))
}

func TestPopulationFractions(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, 120, c.MaxRecruits(1000))
	assert.Equal(t, 50, c.MaxEngineers(1000))
	assert.Equal(t, 0, c.MaxRecruits(-5))
}

func TestProjectMaxPoints(t *testing.T) {
	c := catalog.Default()

	pts, ok := c.ProjectMaxPoints("pop_bonus", 1000)
	require.True(t, ok)
	assert.Equal(t, 3162, pts)

	pts, ok = c.ProjectMaxPoints("galaxy_busters", 1000)
	require.True(t, ok)
	assert.Equal(t, 250000, pts)

	pts, ok = c.ProjectMaxPoints("pop_bonus", 0)
	require.True(t, ok)
	assert.Equal(t, 0, pts)

	_, ok = c.ProjectMaxPoints("unknown", 1000)
	assert.False(t, ok)
}

func TestLoadFile_EmptyPathReturnsDefaults(t *testing.T) {
	c, err := catalog.LoadFile("")

	require.NoError(t, err)
	assert.Equal(t, catalog.Default().UnitKinds(), c.UnitKinds())
}

func TestParse_RejectsDuplicateKinds(t *testing.T) {
	raw := []byte(`
units:
  - {kind: attack, offense: 5, cost: 300}
  - {kind: attack, offense: 5, cost: 300}
structures: [homes]
missiles:
  - {kind: planet_busters, cost: 2000}
projects:
  - {kind: pop_bonus, max_bonus: 0.25, scaled: true}
constants:
  epoch_seconds: 3600
  settle: {price_multiplier: 50, max_fraction: 0.15, time_multiplier: 12}
  structures: {price_multiplier: 60, time_multiplier: 8}
  recruits: {cost: 100, max_fraction: 0.12, time_multiplier: 12}
  specialists: {time_multiplier: 12}
  engineers: {cost: 1000, max_fraction: 0.05, time_multiplier: 12}
  missiles: {time_multiplier: 24}
  projects: {points_exponent: 1.5, points_divisor: 10}
`)

	_, err := catalog.Parse(raw)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate unit")
}

func TestParse_RejectsInvalidConstants(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units: []\n"), 0o600))

	_, err := catalog.LoadFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}
