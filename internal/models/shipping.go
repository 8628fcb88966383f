package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingZone represents a delivery area with a flat fee and an optional
// free-shipping threshold. A nil threshold means shipping is never free for
// the zone.
type ShippingZone struct {
	ID                       uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name                     string          `json:"name" gorm:"not null;uniqueIndex"`
	Regions                  *JSONArray      `json:"regions,omitempty" gorm:"type:jsonb"`
	FeeGhs                   float64         `json:"feeGhs" gorm:"not null;default:0"`
	FreeShippingThresholdGhs *float64        `json:"freeShippingThresholdGhs,omitempty"`
	EstimatedDays            *int            `json:"estimatedDays,omitempty"`
	IsActive                 *bool           `json:"isActive" gorm:"column:is_active;default:true"`
	Position                 int             `json:"position" gorm:"not null;default:1"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
	DeletedAt                *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// CreateShippingZoneRequest represents a request to create a shipping zone
type CreateShippingZoneRequest struct {
	Name                     string   `json:"name" binding:"required"`
	Regions                  []string `json:"regions,omitempty"`
	FeeGhs                   float64  `json:"feeGhs"`
	FreeShippingThresholdGhs *float64 `json:"freeShippingThresholdGhs,omitempty"`
	EstimatedDays            *int     `json:"estimatedDays,omitempty"`
	Position                 *int     `json:"position,omitempty"`
}

// UpdateShippingZoneRequest represents a request to update a shipping zone
type UpdateShippingZoneRequest struct {
	Name                     *string  `json:"name,omitempty"`
	Regions                  []string `json:"regions,omitempty"`
	FeeGhs                   *float64 `json:"feeGhs,omitempty"`
	FreeShippingThresholdGhs *float64 `json:"freeShippingThresholdGhs,omitempty"`
	EstimatedDays            *int     `json:"estimatedDays,omitempty"`
	Position                 *int     `json:"position,omitempty"`
	IsActive                 *bool    `json:"isActive,omitempty"`
}

// TableName returns the table name for the ShippingZone model
func (ShippingZone) TableName() string {
	return "shipping_zones"
}
