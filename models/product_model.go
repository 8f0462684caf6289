package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"productId,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Brand       string             `bson:"brand" json:"brand"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Category    string             `bson:"category" json:"category"`
	Images      []string           `bson:"images" json:"images"`
	Stock       int                `bson:"stock" json:"stock"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// HasSize reports whether size is in the product's whitelist. A product with
// no sizes accepts any size label.
func (p Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// FirstImage returns the primary product image or "" when none is set.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
