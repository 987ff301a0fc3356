package models

import "time"

// SiteSettings is the singleton (id = 1) row backing the public site's
// hero and footer copy. It is lazily seeded on first read.
type SiteSettings struct {
	ID               int       `gorm:"primaryKey" json:"-"`
	HomeHeroTitle    string    `gorm:"column:home_hero_title;type:text;not null" json:"heroTitle"`
	HomeHeroSubtitle string    `gorm:"column:home_hero_subtitle;type:text;not null" json:"heroSubtitle"`
	HomeFooterText   string    `gorm:"column:home_footer_text;type:text;not null" json:"footerText"`
	UpdatedAt        time.Time `json:"-"`
}

func (SiteSettings) TableName() string { return "site_settings" }
