// Package catalog holds the immutable game tables (unit, structure, missile and
// project definitions) and the base formulas derived from kingdom attributes.
package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// Unit kinds referenced by formulas
const (
	UnitRecruits  = "recruits"
	UnitEngineers = "engineers"
)

// Structure kinds referenced by capacity formulas
const (
	StructureHomes        = "homes"
	StructureHangars      = "hangars"
	StructureMissileSilos = "missile_silos"
	StructureWorkshops    = "workshops"
)

type UnitDef struct {
	Kind           string `yaml:"kind" json:"-" validate:"required"`
	Offense        int    `yaml:"offense" json:"offense" validate:"min=0"`
	Defense        int    `yaml:"defense" json:"defense" validate:"min=0"`
	Cost           int    `yaml:"cost" json:"cost" validate:"min=0"`
	Fuel           int    `yaml:"fuel" json:"fuel" validate:"min=0"`
	HangarCapacity int    `yaml:"hangar_capacity" json:"hangar_capacity" validate:"min=0"`
	// Pool marks an untrained reservoir (recruits) that cannot be ordered as a specialist
	Pool bool `yaml:"pool" json:"-"`
}

type MissileDef struct {
	Kind        string `yaml:"kind" json:"-" validate:"required"`
	StarsDamage int    `yaml:"stars_damage" json:"stars_damage" validate:"min=0"`
	FuelDamage  int    `yaml:"fuel_damage" json:"fuel_damage" validate:"min=0"`
	PopDamage   int    `yaml:"pop_damage" json:"pop_damage" validate:"min=0"`
	FuelCost    int    `yaml:"fuel_cost" json:"fuel_cost" validate:"min=0"`
	Cost        int    `yaml:"cost" json:"cost" validate:"min=0"`
}

// ProjectDef describes a project. Scaled projects derive max points from stars
// and grant up to MaxBonus; flat projects use a fixed MaxPoints threshold.
type ProjectDef struct {
	Kind      string  `yaml:"kind" validate:"required"`
	MaxBonus  float64 `yaml:"max_bonus" validate:"min=0,max=1"`
	Scaled    bool    `yaml:"scaled"`
	MaxPoints int     `yaml:"max_points" validate:"min=0"`
}

type Constants struct {
	EpochSeconds int `yaml:"epoch_seconds" validate:"min=1"`

	Settle struct {
		PriceMultiplier float64 `yaml:"price_multiplier" validate:"gt=0"`
		MaxFraction     float64 `yaml:"max_fraction" validate:"gt=0,lte=1"`
		TimeMultiplier  int     `yaml:"time_multiplier" validate:"min=1"`
	} `yaml:"settle"`

	Structures struct {
		PriceMultiplier float64 `yaml:"price_multiplier" validate:"gt=0"`
		TimeMultiplier  int     `yaml:"time_multiplier" validate:"min=1"`
	} `yaml:"structures"`

	Recruits struct {
		Cost           int     `yaml:"cost" validate:"min=0"`
		MaxFraction    float64 `yaml:"max_fraction" validate:"gt=0,lte=1"`
		TimeMultiplier int     `yaml:"time_multiplier" validate:"min=1"`
	} `yaml:"recruits"`

	Specialists struct {
		TimeMultiplier int `yaml:"time_multiplier" validate:"min=1"`
	} `yaml:"specialists"`

	Engineers struct {
		Cost           int     `yaml:"cost" validate:"min=0"`
		MaxFraction    float64 `yaml:"max_fraction" validate:"gt=0,lte=1"`
		TimeMultiplier int     `yaml:"time_multiplier" validate:"min=1"`
	} `yaml:"engineers"`

	Missiles struct {
		TimeMultiplier int `yaml:"time_multiplier" validate:"min=1"`
	} `yaml:"missiles"`

	Capacity struct {
		Homes        int `yaml:"homes" validate:"min=0"`
		Hangars      int `yaml:"hangars" validate:"min=0"`
		MissileSilos int `yaml:"missile_silos" validate:"min=0"`
		Workshops    int `yaml:"workshops" validate:"min=0"`
	} `yaml:"capacity"`

	Projects struct {
		PointsExponent float64 `yaml:"points_exponent" validate:"gt=0"`
		PointsDivisor  float64 `yaml:"points_divisor" validate:"gt=0"`
	} `yaml:"projects"`
}

type tablesFile struct {
	Units      []UnitDef    `yaml:"units" validate:"required,min=1,dive"`
	Structures []string     `yaml:"structures" validate:"required,min=1,dive,required"`
	Missiles   []MissileDef `yaml:"missiles" validate:"required,min=1,dive"`
	Projects   []ProjectDef `yaml:"projects" validate:"required,min=1,dive"`
	Constants  Constants    `yaml:"constants"`
}

// Catalog is the parsed, read-only view of the game tables.
// Kind slices preserve file order; maps are for lookup.
type Catalog struct {
	units        map[string]UnitDef
	unitKinds    []string
	structures   []string
	missiles     map[string]MissileDef
	missileKinds []string
	projects     map[string]ProjectDef
	projectKinds []string

	Constants Constants
}

// Default returns the catalog built from the embedded tables
func Default() *Catalog {
	c, err := Parse(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadFile reads a tables YAML file; an empty path returns the embedded defaults
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a tables document
func Parse(raw []byte) (*Catalog, error) {
	var f tablesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("tables.yaml: %w", err)
	}
	if err := validator.New().Struct(&f); err != nil {
		return nil, fmt.Errorf("tables.yaml failed validation: %w", err)
	}

	c := &Catalog{
		units:     make(map[string]UnitDef, len(f.Units)),
		missiles:  make(map[string]MissileDef, len(f.Missiles)),
		projects:  make(map[string]ProjectDef, len(f.Projects)),
		Constants: f.Constants,
	}
	for _, u := range f.Units {
		if _, dup := c.units[u.Kind]; dup {
			return nil, fmt.Errorf("tables.yaml: duplicate unit %q", u.Kind)
		}
		c.units[u.Kind] = u
		c.unitKinds = append(c.unitKinds, u.Kind)
	}
	seen := make(map[string]bool, len(f.Structures))
	for _, s := range f.Structures {
		if seen[s] {
			return nil, fmt.Errorf("tables.yaml: duplicate structure %q", s)
		}
		seen[s] = true
		c.structures = append(c.structures, s)
	}
	for _, m := range f.Missiles {
		if _, dup := c.missiles[m.Kind]; dup {
			return nil, fmt.Errorf("tables.yaml: duplicate missile %q", m.Kind)
		}
		c.missiles[m.Kind] = m
		c.missileKinds = append(c.missileKinds, m.Kind)
	}
	for _, p := range f.Projects {
		if _, dup := c.projects[p.Kind]; dup {
			return nil, fmt.Errorf("tables.yaml: duplicate project %q", p.Kind)
		}
		c.projects[p.Kind] = p
		c.projectKinds = append(c.projectKinds, p.Kind)
	}
	return c, nil
}

func (c *Catalog) UnitKinds() []string    { return append([]string(nil), c.unitKinds...) }
func (c *Catalog) Structures() []string   { return append([]string(nil), c.structures...) }
func (c *Catalog) MissileKinds() []string { return append([]string(nil), c.missileKinds...) }
func (c *Catalog) ProjectKinds() []string { return append([]string(nil), c.projectKinds...) }

func (c *Catalog) Unit(kind string) (UnitDef, bool) {
	u, ok := c.units[kind]
	return u, ok
}

func (c *Catalog) Missile(kind string) (MissileDef, bool) {
	m, ok := c.missiles[kind]
	return m, ok
}

func (c *Catalog) Project(kind string) (ProjectDef, bool) {
	p, ok := c.projects[kind]
	return p, ok
}

func (c *Catalog) IsStructure(kind string) bool {
	for _, s := range c.structures {
		if s == kind {
			return true
		}
	}
	return false
}

// Units returns the unit table keyed by kind
func (c *Catalog) Units() map[string]UnitDef {
	out := make(map[string]UnitDef, len(c.units))
	for k, v := range c.units {
		out[k] = v
	}
	return out
}

// Missiles returns the missile table keyed by kind
func (c *Catalog) Missiles() map[string]MissileDef {
	out := make(map[string]MissileDef, len(c.missiles))
	for k, v := range c.missiles {
		out[k] = v
	}
	return out
}

// Epoch is the base build-time unit every category multiplies
func (c *Catalog) Epoch() time.Duration {
	return time.Duration(c.Constants.EpochSeconds) * time.Second
}

// SettlePrice is floor(sqrt(stars) * settle multiplier)
func (c *Catalog) SettlePrice(stars int) int {
	return sqrtPrice(stars, c.Constants.Settle.PriceMultiplier)
}

// StructurePrice is floor(sqrt(stars) * structure multiplier)
func (c *Catalog) StructurePrice(stars int) int {
	return sqrtPrice(stars, c.Constants.Structures.PriceMultiplier)
}

// MaxSettle is floor(stars * settle fraction)
func (c *Catalog) MaxSettle(stars int) int {
	return floorFraction(stars, c.Constants.Settle.MaxFraction)
}

// MaxRecruits is floor(population * recruit fraction)
func (c *Catalog) MaxRecruits(population int) int {
	return floorFraction(population, c.Constants.Recruits.MaxFraction)
}

// MaxEngineers is floor(population * engineer fraction)
func (c *Catalog) MaxEngineers(population int) int {
	return floorFraction(population, c.Constants.Engineers.MaxFraction)
}

// ProjectMaxPoints returns the points needed to max out a project:
// floor(stars^exponent / divisor) for scaled projects, the fixed threshold otherwise.
func (c *Catalog) ProjectMaxPoints(kind string, stars int) (int, bool) {
	p, ok := c.projects[kind]
	if !ok {
		return 0, false
	}
	if !p.Scaled {
		return p.MaxPoints, true
	}
	if stars <= 0 {
		return 0, true
	}
	pts := math.Pow(float64(stars), c.Constants.Projects.PointsExponent) / c.Constants.Projects.PointsDivisor
	return int(math.Floor(pts)), true
}

func sqrtPrice(stars int, multiplier float64) int {
	if stars <= 0 {
		return 0
	}
	return int(math.Floor(math.Sqrt(float64(stars)) * multiplier))
}

func floorFraction(n int, fraction float64) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(float64(n) * fraction))
}
