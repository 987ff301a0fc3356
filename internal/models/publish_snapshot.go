package models

import "time"

// PublishSnapshot is one row of the append-only publish ledger. The
// snapshot document itself lives in the object store; this records who
// published what, and when.
type PublishSnapshot struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SnapshotKey  string    `gorm:"size:300;not null" json:"snapshot_key"`
	ProjectCount int       `json:"project_count"`
	TriggeredBy  string    `gorm:"size:200" json:"triggered_by"`
	ErrorsJSON   string    `gorm:"column:errors_json;type:text" json:"errors_json"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (PublishSnapshot) TableName() string { return "publish_snapshots" }
