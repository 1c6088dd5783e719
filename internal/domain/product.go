package domain

import (
	"strings"
	"time"
)

// Product is a sellable catalog entry. The slug is the public lookup key and
// is globally unique. Child collections are owned by composition and are
// replaced wholesale on update.
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"index" json:"name"`
	Slug          string         `gorm:"uniqueIndex;size:200" json:"slug"`
	Description   string         `json:"description"`
	Details       string         `json:"details"`
	Notes         string         `json:"notes"`
	Specification *Specification `gorm:"constraint:OnDelete:CASCADE" json:"specifications"`
	Highlights    []Highlight    `gorm:"constraint:OnDelete:CASCADE" json:"highlights"`
	Images        []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// Specification holds the at-most-one spec sheet of a product. All fields are
// free-text display strings; price is not a numeric amount.
type Specification struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"uniqueIndex" json:"product_id"`
	Size      string `json:"size"`
	Finishing string `json:"finishing"`
	Material  string `json:"material"`
	Price     string `json:"price"`
}

// TableName Specify table name
func (Specification) TableName() string {
	return "product_specifications"
}

// IsEmpty reports whether every field is blank. An empty specification is
// never persisted; the product simply has no spec row.
func (s Specification) IsEmpty() bool {
	return strings.TrimSpace(s.Size) == "" &&
		strings.TrimSpace(s.Finishing) == "" &&
		strings.TrimSpace(s.Material) == "" &&
		strings.TrimSpace(s.Price) == ""
}

// Highlight is an ordered bullet point. Insertion order is display order.
type Highlight struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"index" json:"product_id"`
	Icon      string `gorm:"size:64" json:"icon"`
	Text      string `json:"text"`
}

// TableName Specify table name
func (Highlight) TableName() string {
	return "product_highlights"
}

// ProductImage associates an uploaded image with a product. Featured
// exclusivity is enforced by the admin form, not here.
type ProductImage struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64  `gorm:"index" json:"product_id"`
	ImageURL   string `gorm:"size:1024" json:"imageUrl"`
	IsFeatured bool   `json:"isFeatured"`
	IsCatalog  bool   `json:"isCatalog"`
}

// TableName Specify table name
func (ProductImage) TableName() string {
	return "product_images"
}
