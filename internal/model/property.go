package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property is a rental listing row. The search engine never reads this type
// directly; the catalog loader converts rows into search records.
type Property struct {
	gorm.Model
	Title      string  `json:"title" gorm:"not null"`
	Slug       string  `json:"slug" gorm:"uniqueIndex;not null"`
	Type       string  `json:"property_type" gorm:"not null;index"`
	Furnishing string  `json:"furnishing" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"`
	Bedrooms   int     `json:"bedrooms" gorm:"not null"`

	// Location fields
	City      string  `json:"city" gorm:"not null;index"`
	Area      string  `json:"area"`
	Latitude  float64 `json:"lat" gorm:"not null"`
	Longitude float64 `json:"lng" gorm:"not null"`

	Amenities   datatypes.JSON `json:"amenities"` // ["wifi","parking"]
	IsAvailable bool           `json:"is_available" gorm:"not null"`
	IsVerified  bool           `json:"is_verified" gorm:"not null"`
	ViewCount   int64          `json:"view_count" gorm:"not null"`
	Rating      *float64       `json:"rating"`
}

// BeforeCreate fills in the slug from the title, suffixing the creation date
// when another listing already uses it.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Slug != "" {
		return nil
	}
	s := slug.Make(p.Title)

	var count int64
	tx.Model(&Property{}).Where("slug = ?", s).Count(&count)
	if count > 0 {
		created := p.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		s = s + "-" + created.Format("20060102150405")
	}

	p.Slug = s
	return nil
}
