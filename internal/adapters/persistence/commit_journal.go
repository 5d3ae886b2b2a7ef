package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// GormCommitJournal persists commit progress keyed by request ID
type GormCommitJournal struct {
	db *gorm.DB
}

// NewGormCommitJournal creates a new commit journal
func NewGormCommitJournal(db *gorm.DB) *GormCommitJournal {
	return &GormCommitJournal{db: db}
}

// Find returns the entry for requestID, or nil when none exists
func (j *GormCommitJournal) Find(ctx context.Context, requestID string) (*production.JournalEntry, error) {
	var model CommitJournalModel
	result := j.db.WithContext(ctx).Where("request_id = ?", requestID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find journal entry: %w", result.Error)
	}

	var payload kingdom.Inventory
	if model.Payload != "" {
		if err := json.Unmarshal([]byte(model.Payload), &payload); err != nil {
			return nil, fmt.Errorf("failed to decode journal payload: %w", err)
		}
	}

	return &production.JournalEntry{
		RequestID:      model.RequestID,
		KingdomID:      shared.MustNewKingdomID(model.KingdomID),
		Category:       production.CategoryName(model.Category),
		Queue:          kingdom.Queue(model.Queue),
		Fingerprint:    model.Fingerprint,
		State:          production.JournalState(model.State),
		Cost:           model.Cost,
		FuelCost:       model.FuelCost,
		Payload:        payload,
		CompletionTime: model.CompletionTime.UTC(),
		UpdatedAt:      model.UpdatedAt,
	}, nil
}

// Save inserts or replaces the entry for entry.RequestID
func (j *GormCommitJournal) Save(ctx context.Context, entry *production.JournalEntry) error {
	payload, err := encodeJSON(entry.Payload)
	if err != nil {
		return err
	}
	model := &CommitJournalModel{
		RequestID:      entry.RequestID,
		KingdomID:      entry.KingdomID.Value(),
		Category:       string(entry.Category),
		Queue:          entry.Queue.String(),
		Fingerprint:    entry.Fingerprint,
		State:          string(entry.State),
		Cost:           entry.Cost,
		FuelCost:       entry.FuelCost,
		Payload:        payload,
		CompletionTime: entry.CompletionTime.UTC(),
		UpdatedAt:      entry.UpdatedAt,
	}
	result := j.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save journal entry: %w", result.Error)
	}
	return nil
}
