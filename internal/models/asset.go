package models

import "time"

// Asset is a media object owned by exactly one project. R2Key is the
// object-store locator and is immutable once set.
type Asset struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string    `gorm:"size:36;index;not null" json:"projectId"`
	Kind      string    `gorm:"size:20;not null" json:"kind"` // image, model3d, poster
	R2Key     string    `gorm:"column:r2_key;size:512;not null" json:"r2Key"`
	MimeType  string    `gorm:"size:100;not null" json:"mimeType"`
	Width     *int      `json:"width"`
	Height    *int      `json:"height"`
	AltText   string    `gorm:"type:text" json:"altText"`
	Caption   string    `gorm:"type:text" json:"caption"`
	Featured  bool      `gorm:"default:false" json:"featured"`
	SortOrder float64   `gorm:"default:0" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Asset) TableName() string { return "assets" }
