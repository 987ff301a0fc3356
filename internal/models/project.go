package models

import (
	"encoding/json"
	"time"
)

// Project is one portfolio case study. Palette and tags are stored as
// JSON arrays in their *_json columns; use the accessor methods.
type Project struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	Slug             string     `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Title            string     `gorm:"size:300;not null" json:"title"`
	Discipline       string     `gorm:"size:20;not null;default:graphic" json:"discipline"` // graphic, 3d
	Status           string     `gorm:"size:20;not null;index;default:draft" json:"status"` // draft, published
	StyleTemplate    string     `gorm:"size:30;not null;default:editorial" json:"styleTemplate"`
	CoverAssetID     *string    `gorm:"column:cover_asset_id;size:36" json:"coverAssetId"`
	DescriptionShort string     `gorm:"type:text" json:"descriptionShort"`
	DescriptionLong  string     `gorm:"type:text" json:"descriptionLong"`
	ThemeInspiration string     `gorm:"type:text" json:"themeInspiration"`
	StyleDirection   string     `gorm:"type:text" json:"styleDirection"`
	TypographyNotes  string     `gorm:"type:text" json:"typographyNotes"`
	MotifSummary     string     `gorm:"type:text" json:"motifSummary"`
	ToolingNotes     string     `gorm:"type:text" json:"toolingNotes"`
	MaterialNotes    string     `gorm:"type:text" json:"materialNotes"`
	PaletteJSON      string     `gorm:"column:palette_json;type:text" json:"-"`
	TagsJSON         string     `gorm:"column:tags_json;type:text" json:"-"`
	Year             *int       `json:"year"`
	SortOrder        float64    `gorm:"default:0" json:"sortOrder"`
	PublishedAt      *time.Time `json:"publishedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	Assets []Asset `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Project) TableName() string { return "projects" }

// Palette decodes the stored palette column. Malformed history decodes
// to an empty list rather than failing the read.
func (p *Project) Palette() []string {
	return decodeStringList(p.PaletteJSON)
}

func (p *Project) SetPalette(values []string) {
	p.PaletteJSON = encodeStringList(values)
}

func (p *Project) Tags() []string {
	return decodeStringList(p.TagsJSON)
}

func (p *Project) SetTags(values []string) {
	p.TagsJSON = encodeStringList(values)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}

func encodeStringList(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return string(b)
}
