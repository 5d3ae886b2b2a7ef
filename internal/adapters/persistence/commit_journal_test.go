package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/adapters/persistence"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/test/helpers"
)

func TestGormCommitJournal_FindMissingReturnsNil(t *testing.T) {
	// Arrange
	journal := persistence.NewGormCommitJournal(helpers.NewTestDB(t))

	// Act
	entry, err := journal.Find(context.Background(), "no-such-request")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGormCommitJournal_SaveAdvancesState(t *testing.T) {
	// Arrange
	journal := persistence.NewGormCommitJournal(helpers.NewTestDB(t))
	completion := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	entry := &production.JournalEntry{
		RequestID:      "req-1",
		KingdomID:      shared.MustNewKingdomID(7),
		Category:       production.CategoryName("missiles"),
		Queue:          kingdom.QueueMissiles,
		Fingerprint:    "abc123",
		State:          production.JournalIntent,
		Cost:           decimal.NewFromInt(250000),
		FuelCost:       decimal.NewFromInt(300),
		Payload:        kingdom.Inventory{"planet_busters": 1},
		CompletionTime: completion,
		UpdatedAt:      completion.Add(-24 * time.Hour),
	}
	require.NoError(t, journal.Save(context.Background(), entry))

	// Act
	entry.State = production.JournalDebited
	require.NoError(t, journal.Save(context.Background(), entry))
	found, err := journal.Find(context.Background(), "req-1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, production.JournalDebited, found.State)
	assert.Equal(t, "abc123", found.Fingerprint)
	assert.Equal(t, kingdom.QueueMissiles, found.Queue)
	assert.True(t, entry.Cost.Equal(found.Cost))
	assert.True(t, entry.FuelCost.Equal(found.FuelCost))
	assert.Equal(t, entry.Payload, found.Payload)
	assert.True(t, completion.Equal(found.CompletionTime))
}
