package production_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

var now = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

func newSnapshot() *kingdom.Snapshot {
	return &kingdom.Snapshot{
		ID:         shared.MustNewKingdomID(1),
		Stars:      1000,
		Population: 1000,
		Money:      decimal.NewFromInt(1_000_000),
		Fuel:       decimal.NewFromInt(100_000),
		Structures: kingdom.Inventory{},
		Units:      kingdom.Inventory{},
		Missiles:   kingdom.Inventory{},
	}
}

func assertRejected(t *testing.T, err error, reason shared.RejectionReason) {
	t.Helper()
	var rejection *shared.Rejection
	require.True(t, errors.As(err, &rejection), "expected rejection, got %v", err)
	assert.Equal(t, reason, rejection.Reason)
}

func TestSettlement_ScenarioThousandStars(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()

	overview := production.Settlement(cat, now, snap, nil)

	assert.Equal(t, 1581, overview.Price)
	assert.Equal(t, 150, overview.Availability.Max)
	assert.Equal(t, 150, overview.Availability.Current)

	plan, err := production.ValidateSettlement(cat, snap, overview, 150)
	require.NoError(t, err)
	assert.True(t, plan.Cost.Equal(decimal.NewFromInt(237150)))
	assert.Equal(t, kingdom.QueueSettlement, plan.Category.Queue)
	assert.Equal(t, 12*time.Hour, plan.Category.Duration(cat.Epoch()))

	patch := plan.Patch(snap)
	assert.True(t, patch.Money.Equal(decimal.NewFromInt(1_000_000-237150)))
	assert.Nil(t, patch.Fuel)

	_, err = production.ValidateSettlement(cat, snap, overview, 151)
	assertRejected(t, err, shared.ReasonOverCapacity)
}

func TestSettlement_QueuedOrdersReduceCeiling(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	settles := []kingdom.PendingOrder{
		kingdom.NewAmountOrder(now.Add(2*time.Hour), 40),
		kingdom.NewAmountOrder(now.Add(48*time.Hour), 10),
	}

	overview := production.Settlement(cat, now, snap, settles)

	assert.Equal(t, 100, overview.Availability.Max)
	assert.Equal(t, 40, overview.Projection.At("hour_4").Get(kingdom.AmountKind))
}

func TestSettlement_ZeroCeilingClampsToZero(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Stars = 6 // floor(6*0.15) = 0

	overview := production.Settlement(cat, now, snap, nil)

	assert.Equal(t, production.Availability{}, overview.Availability)
	_, err := production.ValidateSettlement(cat, snap, overview, 1)
	assertRejected(t, err, shared.ReasonOverCapacity)
}

func TestSettlement_RejectsNonPositive(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	overview := production.Settlement(cat, now, snap, nil)

	_, err := production.ValidateSettlement(cat, snap, overview, 0)
	assertRejected(t, err, shared.ReasonEmptyOrder)

	_, err = production.ValidateSettlement(cat, snap, overview, -1)
	assertRejected(t, err, shared.ReasonNegativeQuantity)
	assert.Equal(t, "Please enter valid settle value", err.Error())
}

func TestRecruits_ScenarioNoMoney(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Money = decimal.Zero

	overview := production.Mobilization(cat, now, snap, nil)

	assert.Equal(t, 120, overview.Recruits.Max)
	assert.Equal(t, 0, overview.Recruits.Current)

	_, err := production.ValidateRecruits(cat, snap, overview.Units, 1)
	assertRejected(t, err, shared.ReasonOverCapacity)
	assert.Equal(t, "Please enter valid recruits value", err.Error())
}

func TestRecruits_TrainingWithinDayReducesCeiling(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	mobis := []kingdom.PendingOrder{
		kingdom.NewPendingOrder(now.Add(6*time.Hour), kingdom.Inventory{"recruits": 100}),
		kingdom.NewPendingOrder(now.Add(30*time.Hour), kingdom.Inventory{"recruits": 15}),
	}

	overview := production.Mobilization(cat, now, snap, mobis)

	assert.Equal(t, 20, overview.Recruits.Max)
	assert.Equal(t, 20, overview.Recruits.Current)

	plan, err := production.ValidateRecruits(cat, snap, overview.Units, 20)
	require.NoError(t, err)
	assert.True(t, plan.Cost.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, kingdom.Inventory{"recruits": 20}, plan.Payload)
}

func TestRecruits_ZeroPopulationClampsToZero(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Population = 0

	overview := production.Mobilization(cat, now, snap, nil)

	assert.Equal(t, production.Availability{}, overview.Recruits)
}

func TestCalcUnits_GeneralsAndHorizons(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Units = kingdom.Inventory{"attack": 10, "recruits": 5, "engineers": 3}
	snap.GeneralsOut = []kingdom.Inventory{{"attack": 2}, {"defense": 4}, {"flex": 1}}
	mobis := []kingdom.PendingOrder{
		kingdom.NewPendingOrder(now.Add(90*time.Minute), kingdom.Inventory{"defense": 7}),
	}

	units := production.CalcUnits(cat, now, snap, mobis)

	assert.Equal(t, []string{
		"current", "general_0", "general_1", "general_2", "current_total",
		"hour_1", "hour_2", "hour_4", "hour_8", "hour_24",
	}, units.Labels)
	assert.NotContains(t, units.Get("current"), "engineers")
	assert.Equal(t, 12, units.Get("current_total").Get("attack"))
	assert.Equal(t, 4, units.Get("current_total").Get("defense"))
	assert.Equal(t, 0, units.Get("hour_1").Get("defense"))
	assert.Equal(t, 7, units.Get("hour_2").Get("defense"))

	maxes := production.CalcMaxes(cat, units)
	assert.Equal(t, 10*5, maxes.Offense["current"])
	assert.Equal(t, 5*1, maxes.Defense["current"])
	assert.Equal(t, 12*5+6, maxes.Offense["current_total"])
	assert.Equal(t, 4*5+5*1+6, maxes.Defense["current_total"])
	assert.Equal(t, 35, maxes.Defense["hour_24"])
	assert.Len(t, maxes.Offense, len(units.Labels))
}

func TestHangarCapacity(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Structures = kingdom.Inventory{"hangars": 2}
	snap.Units = kingdom.Inventory{"attack": 10, "flex": 5}
	snap.GeneralsOut = []kingdom.Inventory{{"big_flex": 1}}
	mobis := []kingdom.PendingOrder{
		kingdom.NewPendingOrder(now.Add(time.Hour), kingdom.Inventory{"defense": 3}),
	}

	units := production.CalcUnits(cat, now, snap, mobis)
	hangar := production.HangarCapacity(cat, snap, units)

	assert.Equal(t, 150, hangar.Max)
	assert.Equal(t, 10+5*2+1*2+3, hangar.Used)
}

func TestSpecialists_TrainFromRecruits(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Units = kingdom.Inventory{"recruits": 50, "attack": 2}

	plan, err := production.ValidateSpecialists(cat, snap, kingdom.Inventory{"attack": 10, "flex": 5, "defense": 0})

	require.NoError(t, err)
	assert.True(t, plan.Cost.Equal(decimal.NewFromInt(10*300+5*900)))
	assert.Equal(t, kingdom.Inventory{"recruits": 35, "attack": 2}, plan.Units)
	assert.Equal(t, 50, snap.Units.Get("recruits"), "snapshot must stay untouched")

	patch := plan.Patch(snap)
	assert.Equal(t, 35, patch.Units.Get("recruits"))
}

func TestSpecialists_Rejections(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Units = kingdom.Inventory{"recruits": 10}

	_, err := production.ValidateSpecialists(cat, snap, kingdom.Inventory{"attack": 11})
	assertRejected(t, err, shared.ReasonOverCapacity)

	_, err = production.ValidateSpecialists(cat, snap, kingdom.Inventory{"attack": 0})
	assertRejected(t, err, shared.ReasonEmptyOrder)

	_, err = production.ValidateSpecialists(cat, snap, kingdom.Inventory{"attack": 3, "defense": -1})
	assertRejected(t, err, shared.ReasonNegativeQuantity)

	_, err = production.ValidateSpecialists(cat, snap, kingdom.Inventory{"recruits": 3})
	assertRejected(t, err, shared.ReasonUnknownKind)

	snap.Money = decimal.NewFromInt(899)
	_, err = production.ValidateSpecialists(cat, snap, kingdom.Inventory{"flex": 1})
	assertRejected(t, err, shared.ReasonInsufficientMoney)
	assert.Equal(t, "Please enter valid training values", err.Error())
}

func TestStructures_CeilingAndPrice(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Stars = 100
	snap.Structures = kingdom.Inventory{"homes": 40, "mines": 20}
	building := []kingdom.PendingOrder{
		kingdom.NewPendingOrder(now.Add(4*time.Hour), kingdom.Inventory{"hangars": 10}),
		kingdom.NewPendingOrder(now.Add(48*time.Hour), kingdom.Inventory{"hangars": 5}),
	}

	overview := production.Structures(cat, now, snap, building)

	assert.Equal(t, 600, overview.Price)
	assert.Equal(t, 30, overview.Availability.Max)
	assert.Equal(t, 30, overview.Availability.Current)
	assert.Equal(t, 40, overview.Projection.Current.Get("homes"))
	assert.Equal(t, 0, overview.Projection.Current.Get("workshops"))

	plan, err := production.ValidateStructures(cat, snap, overview, kingdom.Inventory{"workshops": 10, "missile_silos": 2})
	require.NoError(t, err)
	assert.True(t, plan.Cost.Equal(decimal.NewFromInt(12*600)))
	assert.Equal(t, 8*time.Hour, plan.Category.Duration(cat.Epoch()))

	_, err = production.ValidateStructures(cat, snap, overview, kingdom.Inventory{"homes": 31})
	assertRejected(t, err, shared.ReasonOverCapacity)

	_, err = production.ValidateStructures(cat, snap, overview, kingdom.Inventory{"homes": 0, "mines": 0})
	assertRejected(t, err, shared.ReasonEmptyOrder)

	_, err = production.ValidateStructures(cat, snap, overview, kingdom.Inventory{"castles": 1})
	assertRejected(t, err, shared.ReasonUnknownKind)
}

func TestStructures_ZeroCeilingClampsToZero(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Stars = 10
	snap.Structures = kingdom.Inventory{"homes": 12}

	overview := production.Structures(cat, now, snap, nil)

	assert.Equal(t, production.Availability{}, overview.Availability)
	_, err := production.ValidateStructures(cat, snap, overview, kingdom.Inventory{"homes": 1})
	assertRejected(t, err, shared.ReasonOverCapacity)
}

func TestMissiles_ScenarioOverSiloCapacity(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Structures = kingdom.Inventory{"missile_silos": 2}
	snap.Money = decimal.NewFromInt(1_000_000_000)
	snap.Fuel = decimal.NewFromInt(1_000_000_000)

	overview := production.Missiles(cat, now, snap, nil)
	assert.Equal(t, 2, overview.Capacity)
	assert.Equal(t, 2, overview.Available["planet_busters"].Max)

	_, err := production.ValidateMissiles(cat, snap, overview, kingdom.Inventory{"planet_busters": 3})
	assertRejected(t, err, shared.ReasonOverCapacity)
	assert.Equal(t, "Please enter valid missiles values", err.Error())
}

func TestMissiles_PerKindRoomAndBudgets(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Structures = kingdom.Inventory{"missile_silos": 3}
	snap.Missiles = kingdom.Inventory{"star_busters": 1}
	snap.Money = decimal.NewFromInt(20_000)
	snap.Fuel = decimal.NewFromInt(2_500)
	queue := []kingdom.PendingOrder{
		kingdom.NewPendingOrder(now.Add(30*time.Hour), kingdom.Inventory{"star_busters": 1}),
	}

	overview := production.Missiles(cat, now, snap, queue)

	assert.Equal(t, 1, overview.Building.Get("star_busters"))
	assert.Equal(t, 24*time.Hour, overview.BuildTime)
	assert.Equal(t, 1, overview.Available["star_busters"].Max)
	assert.Equal(t, 3, overview.Available["planet_busters"].Max)
	// money allows 3 planet busters, fuel only 2
	assert.Equal(t, 2, overview.Available["planet_busters"].Current)

	plan, err := production.ValidateMissiles(cat, snap, overview, kingdom.Inventory{"planet_busters": 2})
	require.NoError(t, err)
	assert.True(t, plan.Cost.Equal(decimal.NewFromInt(4000)))
	assert.True(t, plan.FuelCost.Equal(decimal.NewFromInt(2000)))
	patch := plan.Patch(snap)
	assert.True(t, patch.Fuel.Equal(decimal.NewFromInt(500)))

	_, err = production.ValidateMissiles(cat, snap, overview, kingdom.Inventory{"planet_busters": 3})
	assertRejected(t, err, shared.ReasonInsufficientFuel)

	_, err = production.ValidateMissiles(cat, snap, overview, kingdom.Inventory{"star_busters": 2})
	assertRejected(t, err, shared.ReasonOverCapacity)

	snap.Money = decimal.NewFromInt(3_999)
	_, err = production.ValidateMissiles(cat, snap, overview, kingdom.Inventory{"planet_busters": 2})
	assertRejected(t, err, shared.ReasonInsufficientMoney)
}

func TestMissiles_NoSilosClampsToZero(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()

	overview := production.Missiles(cat, now, snap, nil)

	for _, kind := range cat.MissileKinds() {
		assert.Equal(t, production.Availability{}, overview.Available[kind], kind)
	}
}

func TestEngineers_WorkshopAndPopulationLimits(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Structures = kingdom.Inventory{"workshops": 2}
	snap.Units = kingdom.Inventory{"engineers": 40}
	snap.Money = decimal.NewFromInt(25_500)
	training := []kingdom.PendingOrder{
		kingdom.NewAmountOrder(now.Add(5*time.Hour), 10),
	}

	overview := production.Engineers(cat, now, snap, training)

	assert.Equal(t, production.Capacity{Max: 100, Used: 50}, overview.Workshop)
	assert.Equal(t, 50, overview.Availability.Max)
	assert.Equal(t, 25, overview.Availability.Current)
	assert.Equal(t, 40, overview.Current)
	assert.Equal(t, 10, overview.Building)

	plan, err := production.ValidateEngineers(cat, snap, overview, 25)
	require.NoError(t, err)
	assert.True(t, plan.Cost.Equal(decimal.NewFromInt(25_000)))
	assert.Equal(t, kingdom.QueueEngineers, plan.Category.Queue)

	_, err = production.ValidateEngineers(cat, snap, overview, 26)
	assertRejected(t, err, shared.ReasonOverCapacity)
	assert.Equal(t, "Please enter valid engineers value", err.Error())
}

func TestEngineers_NoWorkshopsClampsToZero(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()

	overview := production.Engineers(cat, now, snap, nil)

	assert.Equal(t, production.Availability{}, overview.Availability)
	_, err := production.ValidateEngineers(cat, snap, overview, 0)
	assertRejected(t, err, shared.ReasonEmptyOrder)
}

func TestAcceptedPlansAreAffordable(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Money = decimal.NewFromInt(12_345)
	snap.Structures = kingdom.Inventory{"workshops": 5, "missile_silos": 4}

	settle := production.Settlement(cat, now, snap, nil)
	for n := 1; n <= settle.Availability.Current; n++ {
		plan, err := production.ValidateSettlement(cat, snap, settle, n)
		require.NoError(t, err)
		assert.True(t, plan.Cost.LessThanOrEqual(snap.Money))
	}

	structures := production.Structures(cat, now, snap, nil)
	for n := 1; n <= structures.Availability.Current; n++ {
		plan, err := production.ValidateStructures(cat, snap, structures, kingdom.Inventory{"homes": n})
		require.NoError(t, err)
		assert.True(t, plan.Cost.LessThanOrEqual(snap.Money))
	}

	missiles := production.Missiles(cat, now, snap, nil)
	for kind, avail := range missiles.Available {
		for n := 1; n <= avail.Current; n++ {
			plan, err := production.ValidateMissiles(cat, snap, missiles, kingdom.Inventory{kind: n})
			require.NoError(t, err)
			assert.True(t, plan.Cost.LessThanOrEqual(snap.Money))
			assert.True(t, plan.FuelCost.LessThanOrEqual(snap.Fuel))
		}
	}
}

func TestDescribe_UnknownCategory(t *testing.T) {
	_, err := production.Describe(catalog.Default(), "armies")
	assert.Error(t, err)

	name, err := production.ParseCategoryName("settle")
	require.NoError(t, err)
	assert.Equal(t, production.CategorySettlement, name)
}

func TestPerKindOrders_HugeQuantitiesCannotWrapTheSum(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.Stars = 100
	snap.Units = kingdom.Inventory{"recruits": 10}
	snap.Structures = kingdom.Inventory{"missile_silos": 2}
	huge := func(a, b string) kingdom.Inventory {
		return kingdom.Inventory{a: math.MaxInt, b: math.MaxInt}
	}

	structures := production.Structures(cat, now, snap, nil)
	_, err := production.ValidateStructures(cat, snap, structures, huge("homes", "mines"))
	assertRejected(t, err, shared.ReasonOverCapacity)

	_, err = production.ValidateSpecialists(cat, snap, huge("attack", "defense"))
	assertRejected(t, err, shared.ReasonOverCapacity)

	missiles := production.Missiles(cat, now, snap, nil)
	_, err = production.ValidateMissiles(cat, snap, missiles, huge("planet_busters", "star_busters"))
	assertRejected(t, err, shared.ReasonOverCapacity)

	// one value that fits and one that would push the sum past the ceiling
	_, err = production.ValidateStructures(cat, snap, structures, kingdom.Inventory{"homes": 2, "mines": math.MaxInt - 1})
	assertRejected(t, err, shared.ReasonOverCapacity)
	assert.True(t, snap.Money.Equal(decimal.NewFromInt(1_000_000)))
}
