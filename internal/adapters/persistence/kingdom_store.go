package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// GormKingdomStore is a database-backed kingdom.Store for local deployments
// and tests. Queued orders are kept until they are resolved elsewhere.
type GormKingdomStore struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormKingdomStore creates a new kingdom store
// If clock is nil, uses RealClock (production behavior)
func NewGormKingdomStore(db *gorm.DB, clock shared.Clock) *GormKingdomStore {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormKingdomStore{db: db, clock: clock}
}

// SaveKingdom inserts or replaces a whole snapshot
func (s *GormKingdomStore) SaveKingdom(ctx context.Context, snap *kingdom.Snapshot) error {
	model, err := s.snapshotToModel(snap)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save kingdom: %w", result.Error)
	}
	return nil
}

// GetKingdom reads the current snapshot
func (s *GormKingdomStore) GetKingdom(ctx context.Context, id shared.KingdomID) (*kingdom.Snapshot, error) {
	var model KingdomModel
	result := s.db.WithContext(ctx).Where("id = ?", id.Value()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewKingdomNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find kingdom: %w", result.Error)
	}
	return modelToSnapshot(&model)
}

// GetQueue reads every pending order in a queue, oldest completion first
func (s *GormKingdomStore) GetQueue(ctx context.Context, id shared.KingdomID, queue kingdom.Queue) ([]kingdom.PendingOrder, error) {
	var models []PendingOrderModel
	result := s.db.WithContext(ctx).
		Where("kingdom_id = ? AND queue = ?", id.Value(), queue.String()).
		Order("completion_time ASC, id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list %s queue: %w", queue, result.Error)
	}

	orders := make([]kingdom.PendingOrder, len(models))
	for i, m := range models {
		var payload kingdom.Inventory
		if err := json.Unmarshal([]byte(m.Payload), &payload); err != nil {
			return nil, shared.NewMalformedKingdomDataError(queue.String(), err)
		}
		orders[i] = kingdom.PendingOrder{Time: m.CompletionTime.UTC(), Payload: payload}
	}
	return orders, nil
}

// PatchKingdom applies a partial update inside a row-locked transaction
func (s *GormKingdomStore) PatchKingdom(ctx context.Context, id shared.KingdomID, patch kingdom.Patch) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model KingdomModel
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id.Value()).First(&model)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return shared.NewKingdomNotFoundError(id)
			}
			return fmt.Errorf("failed to find kingdom: %w", result.Error)
		}

		updates := map[string]interface{}{"updated_at": s.clock.Now()}
		if patch.Money != nil {
			updates["money"] = *patch.Money
		}
		if patch.Fuel != nil {
			updates["fuel"] = *patch.Fuel
		}
		columns := []struct {
			name  string
			value interface{}
			set   bool
		}{
			{"units", patch.Units, patch.Units != nil},
			{"structures", patch.Structures, patch.Structures != nil},
			{"projects_assigned", patch.ProjectsAssigned, patch.ProjectsAssigned != nil},
			{"auto_spending", patch.AutoSpending, patch.AutoSpending != nil},
		}
		for _, c := range columns {
			if !c.set {
				continue
			}
			encoded, err := encodeJSON(c.value)
			if err != nil {
				return err
			}
			updates[c.name] = encoded
		}

		if err := tx.Model(&KingdomModel{}).Where("id = ?", id.Value()).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to patch kingdom: %w", err)
		}
		return nil
	})
}

// AppendQueue inserts one pending order
func (s *GormKingdomStore) AppendQueue(ctx context.Context, id shared.KingdomID, queue kingdom.Queue, order kingdom.PendingOrder) error {
	if !queue.IsValid() {
		return fmt.Errorf("unknown queue %q", queue)
	}
	payload, err := encodeJSON(order.Payload)
	if err != nil {
		return err
	}
	model := &PendingOrderModel{
		KingdomID:      id.Value(),
		Queue:          queue.String(),
		CompletionTime: order.Time.UTC(),
		Payload:        payload,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append to %s queue: %w", queue, err)
	}
	return nil
}

func (s *GormKingdomStore) snapshotToModel(snap *kingdom.Snapshot) (*KingdomModel, error) {
	model := &KingdomModel{
		ID:         snap.ID.Value(),
		Stars:      snap.Stars,
		Population: snap.Population,
		Money:      snap.Money,
		Fuel:       snap.Fuel,
		UpdatedAt:  s.clock.Now(),
	}
	fields := []struct {
		dst *string
		src interface{}
	}{
		{&model.Structures, snap.Structures},
		{&model.Units, snap.Units},
		{&model.Missiles, snap.Missiles},
		{&model.GeneralsOut, snap.GeneralsOut},
		{&model.ProjectsPoints, snap.ProjectsPoints},
		{&model.ProjectsMaxPoints, snap.ProjectsMaxPoints},
		{&model.ProjectsAssigned, snap.ProjectsAssigned},
		{&model.AutoSpending, snap.AutoSpending},
	}
	for _, f := range fields {
		encoded, err := encodeJSON(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = encoded
	}
	return model, nil
}

func modelToSnapshot(m *KingdomModel) (*kingdom.Snapshot, error) {
	snap := &kingdom.Snapshot{
		ID:         shared.MustNewKingdomID(m.ID),
		Stars:      m.Stars,
		Population: m.Population,
		Money:      m.Money,
		Fuel:       m.Fuel,
	}
	fields := []struct {
		name string
		src  string
		dst  interface{}
	}{
		{"structures", m.Structures, &snap.Structures},
		{"units", m.Units, &snap.Units},
		{"missiles", m.Missiles, &snap.Missiles},
		{"generals_out", m.GeneralsOut, &snap.GeneralsOut},
		{"projects_points", m.ProjectsPoints, &snap.ProjectsPoints},
		{"projects_max_points", m.ProjectsMaxPoints, &snap.ProjectsMaxPoints},
		{"projects_assigned", m.ProjectsAssigned, &snap.ProjectsAssigned},
		{"auto_spending", m.AutoSpending, &snap.AutoSpending},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return nil, shared.NewMalformedKingdomDataError(f.name, err)
		}
	}
	return snap, nil
}

func encodeJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode column: %w", err)
	}
	return string(raw), nil
}
