package models

import "time"

// Product represents a product in the store.
type Product struct {
	ProductID int64     `json:"productId" bson:"productId" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" bson:"name" gorm:"not null"`
	Category  string    `json:"category" bson:"category" gorm:"not null"`
	Price     float64   `json:"price" bson:"price" gorm:"not null"`
	Tags      []string  `json:"tags" bson:"tags" gorm:"type:text;serializer:json"`
	Reviews   []Review  `json:"reviews" bson:"reviews" gorm:"type:text;serializer:json"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Review is embedded in a Product and has no identity of its own.
type Review struct {
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	User      string    `json:"user" bson:"user"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
