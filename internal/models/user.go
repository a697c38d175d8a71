package models

import "time"

// User represents a registered customer of the store.
type User struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" bson:"password" gorm:"type:varchar(255);not null"` // argon2id hash, never plaintext
	Image     string    `json:"-" bson:"image" gorm:"type:text;not null"`            // base64 of the uploaded avatar
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
