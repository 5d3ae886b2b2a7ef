package kingdom_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
)

func TestInventory_NilIsEmpty(t *testing.T) {
	var inv kingdom.Inventory

	assert.Equal(t, 0, inv.Get("attack"))
	assert.Equal(t, 0, inv.Sum())
	assert.NotNil(t, inv.Clone())
}

func TestInventory_FilterAndPlus(t *testing.T) {
	inv := kingdom.Inventory{"attack": 3, "engineers": 4}

	filtered := inv.Filter([]string{"attack", "defense"})
	assert.Equal(t, kingdom.Inventory{"attack": 3, "defense": 0}, filtered)

	sum := filtered.Plus(kingdom.Inventory{"defense": 2, "flex": 1})
	assert.Equal(t, kingdom.Inventory{"attack": 3, "defense": 2, "flex": 1}, sum)
	assert.Equal(t, 0, filtered.Get("flex"), "Plus must not mutate the receiver")
	assert.Equal(t, 5, sum.SumOf([]string{"attack", "defense"}))
}

func TestNewPendingOrder_DropsZeroQuantities(t *testing.T) {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	order := kingdom.NewPendingOrder(at, kingdom.Inventory{"homes": 2, "mines": 0})

	assert.Equal(t, kingdom.Inventory{"homes": 2}, order.Payload)
	assert.Equal(t, at, order.CompletionTime())
	assert.Equal(t, 0, order.Quantity("mines"))
}

func TestNewAmountOrder(t *testing.T) {
	order := kingdom.NewAmountOrder(time.Now(), 7)

	assert.Equal(t, 7, order.Amount())
	assert.Equal(t, 7, order.Quantity(kingdom.AmountKind))
}

func TestDebit_FuelOnlyWhenPositive(t *testing.T) {
	snap := &kingdom.Snapshot{Money: decimal.NewFromInt(1000), Fuel: decimal.NewFromInt(500)}

	p := kingdom.Debit(snap, decimal.NewFromInt(300), decimal.Zero)
	assert.True(t, p.Money.Equal(decimal.NewFromInt(700)))
	assert.Nil(t, p.Fuel)

	p = kingdom.Debit(snap, decimal.NewFromInt(300), decimal.NewFromInt(200))
	assert.True(t, p.Fuel.Equal(decimal.NewFromInt(300)))
	assert.False(t, p.IsEmpty())
	assert.True(t, kingdom.Patch{}.IsEmpty())
}

func TestQueue_IsValid(t *testing.T) {
	assert.True(t, kingdom.QueueSettlement.IsValid())
	assert.False(t, kingdom.Queue("armies").IsValid())
}
