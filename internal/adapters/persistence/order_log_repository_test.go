package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/adapters/persistence"
	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/test/helpers"
)

func TestOrderLogRepository_DeduplicatesWithinWindow(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormOrderLogRepository(helpers.NewTestDB(t), clock)
	ctx := context.Background()

	// Act
	require.NoError(t, repo.Log(ctx, 7, "Order rejected", common.LevelWarn, nil))
	clock.Advance(30 * time.Second)
	require.NoError(t, repo.Log(ctx, 7, "Order rejected", common.LevelWarn, nil))
	clock.Advance(31 * time.Second)
	require.NoError(t, repo.Log(ctx, 7, "Order rejected", common.LevelWarn, nil))

	// Assert
	logs, err := repo.GetLogs(ctx, 7, 10, nil, nil)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestOrderLogRepository_DistinctRequestsAreKept(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormOrderLogRepository(helpers.NewTestDB(t), clock)
	ctx := context.Background()

	// Act
	require.NoError(t, repo.Log(ctx, 7, "Order committed", common.LevelInfo, map[string]interface{}{"request_id": "a"}))
	require.NoError(t, repo.Log(ctx, 7, "Order committed", common.LevelInfo, map[string]interface{}{"request_id": "b"}))

	// Assert
	logs, err := repo.GetLogs(ctx, 7, 10, nil, nil)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "b", logs[0].Metadata["request_id"], "newest first")
}

func TestOrderLogRepository_FiltersByLevelAndKingdom(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormOrderLogRepository(helpers.NewTestDB(t), clock)
	ctx := context.Background()
	require.NoError(t, repo.Log(ctx, 7, "Order committed", common.LevelInfo, nil))
	require.NoError(t, repo.Log(ctx, 7, "Enqueue failed", common.LevelError, nil))
	require.NoError(t, repo.Log(ctx, 8, "Enqueue failed", common.LevelError, nil))
	level := common.LevelError

	// Act
	logs, err := repo.GetLogs(ctx, 7, 10, &level, nil)

	// Assert
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Enqueue failed", logs[0].Message)
	assert.Equal(t, 7, logs[0].KingdomID)
}

func TestOrderLogSink_PersistsKingdomEntriesOnly(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormOrderLogRepository(helpers.NewTestDB(t), clock)
	sink := persistence.NewOrderLogSink(repo, common.LevelInfo)

	// Act
	sink.Log(common.LevelInfo, "Order committed", map[string]interface{}{"kingdom_id": 7})
	sink.Log(common.LevelDebug, "Loaded kingdom", map[string]interface{}{"kingdom_id": 7})
	sink.Log(common.LevelInfo, "Server started", nil)

	// Assert
	logs, err := repo.GetLogs(context.Background(), 7, 10, nil, nil)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Order committed", logs[0].Message)
}
