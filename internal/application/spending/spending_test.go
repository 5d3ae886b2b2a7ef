package spending_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appSpending "github.com/andrescamacho/domnus-go/internal/application/spending"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/test/helpers"
)

func ptr(v float64) *float64 { return &v }

func seedStore() *helpers.MockKingdomStore {
	store := helpers.NewMockKingdomStore()
	store.SetKingdom(1, &kingdom.Snapshot{
		AutoSpending: map[string]float64{"settle": 30, "structures": 30},
	})
	return store
}

func TestUpdateSpending_KeepsOmittedValues(t *testing.T) {
	// Arrange
	store := seedStore()
	handler := appSpending.NewUpdateSpendingHandler(store)

	// Act
	resp, err := handler.Handle(context.Background(), &appSpending.UpdateSpendingCommand{
		KingdomID: shared.MustNewKingdomID(1),
		Military:  ptr(40),
	})

	// Assert
	require.NoError(t, err)
	allocation := resp.(*appSpending.UpdateSpendingResponse).Allocation
	assert.Equal(t, 100.0, allocation.Total())
	assert.Equal(t, map[string]float64{"settle": 30, "structures": 30, "military": 40, "engineers": 0}, store.Kingdom(1).AutoSpending)
}

func TestUpdateSpending_OverHundredRejected(t *testing.T) {
	// Arrange
	store := seedStore()
	handler := appSpending.NewUpdateSpendingHandler(store)

	// Act
	_, err := handler.Handle(context.Background(), &appSpending.UpdateSpendingCommand{
		KingdomID: shared.MustNewKingdomID(1),
		Military:  ptr(41),
	})

	// Assert
	var rejection *shared.Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, "Please enter valid spending percents", rejection.Message)
	assert.Empty(t, store.Patches())
}

func TestGetSpending_MissingKeysReadAsZero(t *testing.T) {
	// Arrange
	handler := appSpending.NewGetSpendingHandler(seedStore())

	// Act
	resp, err := handler.Handle(context.Background(), &appSpending.GetSpendingQuery{KingdomID: shared.MustNewKingdomID(1)})

	// Assert
	require.NoError(t, err)
	allocation := resp.(*appSpending.GetSpendingResponse).Allocation
	assert.Equal(t, 0.0, allocation["engineers"])
	assert.Equal(t, 30.0, allocation["settle"])
}
