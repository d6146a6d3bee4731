package models

import (
	"time"

	"gorm.io/gorm"
)

// SupplyOrder tracks an outbound purchase/logistics order (parts, materials).
type SupplyOrder struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Reference      string         `gorm:"uniqueIndex;size:64;not null" json:"reference"`
	Supplier       string         `gorm:"size:255;not null" json:"supplier"`
	Description    string         `gorm:"type:text" json:"description"`
	Carrier        string         `gorm:"size:120" json:"carrier"`
	TrackingNumber string         `gorm:"size:120" json:"tracking_number"`
	Status         string         `gorm:"size:20;not null;index" json:"status"` // PLACED, SHIPPED, IN_TRANSIT, DELIVERED, DELAYED
	ExpectedAt     *time.Time     `json:"expected_at"`
	DeliveredAt    *time.Time     `json:"delivered_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SupplyOrder) TableName() string {
	return "supply_orders"
}
