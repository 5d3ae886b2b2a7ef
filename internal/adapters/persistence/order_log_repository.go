package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// OrderLogRepository manages order log persistence
type OrderLogRepository interface {
	// Log writes a log entry to the database with deduplication
	Log(ctx context.Context, kingdomID int, message, level string, metadata map[string]interface{}) error

	// GetLogs retrieves logs for a kingdom, newest first, with optional filtering
	GetLogs(ctx context.Context, kingdomID int, limit int, level *string, since *time.Time) ([]OrderLogEntry, error)
}

// OrderLogEntry represents a log entry
type OrderLogEntry struct {
	ID        int
	KingdomID int
	Timestamp time.Time
	Level     string
	Message   string
	Metadata  map[string]interface{}
}

// GormOrderLogRepository is a GORM-based implementation
type GormOrderLogRepository struct {
	db    *gorm.DB
	clock shared.Clock

	// Deduplication cache
	dedupCache   map[string]time.Time // key: kingdomID+message+request, value: last logged time
	dedupMu      sync.Mutex
	dedupWindow  time.Duration
	dedupMaxSize int
}

// NewGormOrderLogRepository creates a new order log repository
// If clock is nil, uses RealClock (production behavior)
func NewGormOrderLogRepository(db *gorm.DB, clock shared.Clock) *GormOrderLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormOrderLogRepository{
		db:           db,
		clock:        clock,
		dedupCache:   make(map[string]time.Time),
		dedupWindow:  60 * time.Second,
		dedupMaxSize: 10000,
	}
}

// Log writes a log entry with time-windowed deduplication. Entries carrying a
// request_id are only deduplicated against the same request.
func (r *GormOrderLogRepository) Log(ctx context.Context, kingdomID int, message, level string, metadata map[string]interface{}) error {
	now := r.clock.Now()
	cacheKey := fmt.Sprintf("%d|%s|%v", kingdomID, message, metadata["request_id"])

	r.dedupMu.Lock()

	if lastLogged, exists := r.dedupCache[cacheKey]; exists {
		if now.Sub(lastLogged) < r.dedupWindow {
			r.dedupMu.Unlock()
			return nil
		}
	}

	if len(r.dedupCache) >= r.dedupMaxSize {
		r.cleanupDedupCache()
	}

	r.dedupCache[cacheKey] = now
	r.dedupMu.Unlock()

	var metadataJSON string
	if len(metadata) > 0 {
		if jsonBytes, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	logEntry := &OrderLogModel{
		KingdomID: kingdomID,
		Timestamp: now,
		Level:     level,
		Message:   message,
		Metadata:  metadataJSON,
	}

	return r.db.WithContext(ctx).Create(logEntry).Error
}

// cleanupDedupCache removes old entries from the deduplication cache
// Must be called while holding dedupMu lock
func (r *GormOrderLogRepository) cleanupDedupCache() {
	cutoff := r.clock.Now().Add(-r.dedupWindow)
	for key, timestamp := range r.dedupCache {
		if timestamp.Before(cutoff) {
			delete(r.dedupCache, key)
		}
	}
}

// GetLogs retrieves logs for a kingdom with optional filtering
func (r *GormOrderLogRepository) GetLogs(ctx context.Context, kingdomID int, limit int, level *string, since *time.Time) ([]OrderLogEntry, error) {
	var models []OrderLogModel

	query := r.db.WithContext(ctx).Where("kingdom_id = ?", kingdomID)
	if level != nil {
		query = query.Where("level = ?", *level)
	}
	if since != nil {
		query = query.Where("timestamp > ?", *since)
	}
	query = query.Order("timestamp DESC, id DESC").Limit(limit)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]OrderLogEntry, len(models))
	for i, model := range models {
		var metadata map[string]interface{}
		if model.Metadata != "" {
			if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
				metadata = nil
			}
		}
		entries[i] = OrderLogEntry{
			ID:        model.ID,
			KingdomID: model.KingdomID,
			Timestamp: model.Timestamp,
			Level:     model.Level,
			Message:   model.Message,
			Metadata:  metadata,
		}
	}

	return entries, nil
}

// OrderLogSink is a common.Logger that persists entries tied to a kingdom.
// Entries without a kingdom_id in their metadata are dropped.
type OrderLogSink struct {
	repo     OrderLogRepository
	minLevel string
}

// NewOrderLogSink creates a sink writing entries at minLevel or above
func NewOrderLogSink(repo OrderLogRepository, minLevel string) *OrderLogSink {
	if minLevel == "" {
		minLevel = common.LevelInfo
	}
	return &OrderLogSink{repo: repo, minLevel: minLevel}
}

var levelRank = map[string]int{
	common.LevelDebug: 0,
	common.LevelInfo:  1,
	common.LevelWarn:  2,
	common.LevelError: 3,
}

// Log implements common.Logger
func (s *OrderLogSink) Log(level, message string, metadata map[string]interface{}) {
	if levelRank[level] < levelRank[s.minLevel] {
		return
	}
	kingdomID, ok := metadata["kingdom_id"].(int)
	if !ok {
		return
	}
	// Logging must not fail the request being logged
	_ = s.repo.Log(context.Background(), kingdomID, message, level, metadata)
}
