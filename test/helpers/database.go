package helpers

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/domnus-go/internal/adapters/persistence"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// KingdomDB bundles the gorm-backed store and journal over one test database
type KingdomDB struct {
	DB      *gorm.DB
	Store   *persistence.GormKingdomStore
	Journal *persistence.GormCommitJournal
}

// NewKingdomDB opens a test database and saves every given snapshot into it
func NewKingdomDB(t *testing.T, clock shared.Clock, snapshots ...*kingdom.Snapshot) *KingdomDB {
	t.Helper()
	db := NewTestDB(t)
	kdb := &KingdomDB{
		DB:      db,
		Store:   persistence.NewGormKingdomStore(db, clock),
		Journal: persistence.NewGormCommitJournal(db),
	}
	for _, snap := range snapshots {
		if err := kdb.Store.SaveKingdom(context.Background(), snap); err != nil {
			t.Fatalf("failed to seed kingdom %d: %v", snap.ID.Value(), err)
		}
	}
	return kdb
}
