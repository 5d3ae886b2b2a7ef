package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// KingdomModel represents the kingdoms table. Inventories are JSON objects
// stored as text.
type KingdomModel struct {
	ID                int             `gorm:"column:id;primaryKey;autoIncrement:false"`
	Stars             int             `gorm:"column:stars;not null;default:0"`
	Population        int             `gorm:"column:population;not null;default:0"`
	Money             decimal.Decimal `gorm:"column:money;type:numeric;not null"`
	Fuel              decimal.Decimal `gorm:"column:fuel;type:numeric;not null"`
	Structures        string          `gorm:"column:structures;type:text"`
	Units             string          `gorm:"column:units;type:text"`
	Missiles          string          `gorm:"column:missiles;type:text"`
	GeneralsOut       string          `gorm:"column:generals_out;type:text"` // JSON array of inventories
	ProjectsPoints    string          `gorm:"column:projects_points;type:text"`
	ProjectsMaxPoints string          `gorm:"column:projects_max_points;type:text"`
	ProjectsAssigned  string          `gorm:"column:projects_assigned;type:text"`
	AutoSpending      string          `gorm:"column:auto_spending;type:text"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;not null"`
}

func (KingdomModel) TableName() string {
	return "kingdoms"
}

// PendingOrderModel represents the pending_orders table: one row per queued order
type PendingOrderModel struct {
	ID             int       `gorm:"column:id;primaryKey;autoIncrement"`
	KingdomID      int       `gorm:"column:kingdom_id;not null;index:idx_pending_orders_kingdom_queue"`
	Queue          string    `gorm:"column:queue;not null;index:idx_pending_orders_kingdom_queue"`
	CompletionTime time.Time `gorm:"column:completion_time;not null"`
	Payload        string    `gorm:"column:payload;type:text;not null"` // JSON object kind -> quantity
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

func (PendingOrderModel) TableName() string {
	return "pending_orders"
}

// CommitJournalModel represents the commit_journal table, keyed by request ID
type CommitJournalModel struct {
	RequestID      string          `gorm:"column:request_id;primaryKey"`
	KingdomID      int             `gorm:"column:kingdom_id;not null"`
	Category       string          `gorm:"column:category;not null"`
	Queue          string          `gorm:"column:queue;not null"`
	Fingerprint    string          `gorm:"column:fingerprint;not null"`
	State          string          `gorm:"column:state;not null"`
	Cost           decimal.Decimal `gorm:"column:cost;type:numeric;not null"`
	FuelCost       decimal.Decimal `gorm:"column:fuel_cost;type:numeric;not null"`
	Payload        string          `gorm:"column:payload;type:text"`
	CompletionTime time.Time       `gorm:"column:completion_time"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;not null"`
}

func (CommitJournalModel) TableName() string {
	return "commit_journal"
}

// OrderLogModel represents the order_logs table
type OrderLogModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	KingdomID int       `gorm:"column:kingdom_id;not null;index"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
	Level     string    `gorm:"column:level;not null;default:'INFO'"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Metadata  string    `gorm:"column:metadata;type:text"` // JSON as text
}

func (OrderLogModel) TableName() string {
	return "order_logs"
}
