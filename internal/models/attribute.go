package models

import (
	"time"

	"github.com/google/uuid"
)

// Attribute represents a named product dimension (e.g. Color, Length) with a
// catalog of possible terms. The variation matrix reads these; it never
// writes them. Attributes and terms are hard deleted: Name is unique, so a
// soft-deleted row would block the name from ever being reused, and the DB
// cascade to terms only fires on a real delete.
type Attribute struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string          `json:"name" gorm:"not null;uniqueIndex"`
	Terms     []AttributeTerm `json:"terms" gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AttributeTerm represents one selectable value of an attribute
// (e.g. "Jet Black" for Color, "14\"" for Length)
type AttributeTerm struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AttributeID uuid.UUID `json:"attributeId" gorm:"type:uuid;not null;index;uniqueIndex:idx_terms_attribute_name"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex:idx_terms_attribute_name"`
	Image       *string   `json:"image,omitempty"`
	Position    int       `json:"position" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateAttributeRequest represents a request to create an attribute
type CreateAttributeRequest struct {
	Name  string   `json:"name" binding:"required"`
	Terms []string `json:"terms,omitempty"`
}

// CreateAttributeTermRequest represents a request to add a term to an attribute
type CreateAttributeTermRequest struct {
	Name     string  `json:"name" binding:"required"`
	Image    *string `json:"image,omitempty"`
	Position *int    `json:"position,omitempty"`
}

type AttributeResponse struct {
	Success bool       `json:"success"`
	Data    *Attribute `json:"data"`
	Message *string    `json:"message,omitempty"`
}

type AttributeListResponse struct {
	Success bool        `json:"success"`
	Data    []Attribute `json:"data"`
}

// TableName returns the table name for the Attribute model
func (Attribute) TableName() string {
	return "attributes"
}

// TableName returns the table name for the AttributeTerm model
func (AttributeTerm) TableName() string {
	return "attribute_terms"
}
