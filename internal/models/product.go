package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Categories is the fixed catalog vocabulary shown to shoppers.
var Categories = []string{"Seeds", "Fertilizer", "Pesticides", "Tools", "Offers"}

// Units lists how products are measured and sold.
var Units = []string{"kg", "gram", "bag", "liter", "ml", "piece", "packet"}

// Product is a catalog item. Prices are whole rupees.
type Product struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `gorm:"index;not null" json:"category"`
	Price     int64     `gorm:"not null" json:"price"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	Unit      string    `gorm:"default:'kg'" json:"unit"`
	ImageURL  string    `json:"image_url"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ValidCategory reports whether c is in the catalog vocabulary.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidUnit reports whether u is a known unit label.
func ValidUnit(u string) bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}
