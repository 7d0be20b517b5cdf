package models

import (
	"time"

	"goldlinks/internal/hours"

	"github.com/google/uuid"
)

// Store kinds
const (
	StoreKindLocal  = "local"
	StoreKindOnline = "online"
)

// Store is a jewelry store listing managed by a business owner
type Store struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null;constraint:OnDelete:RESTRICT" json:"owner_id"`
	Name        string    `gorm:"not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`
	Kind        string    `gorm:"not null;default:'local';check:kind IN ('local','online')" json:"kind"`

	Street  string `json:"street"`
	City    string `gorm:"index" json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `gorm:"default:'US'" json:"country"`
	Phone   string `json:"phone"`
	Website string `json:"website"`

	Latitude  *float64 `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude *float64 `gorm:"type:decimal(11,8)" json:"longitude"`

	// Timezone is the IANA zone the store's hours are expressed in.
	Timezone string `json:"timezone"`
	// HoursText is the free-form hours line, e.g. "Mon-Sat: 10AM-6PM, Sun: Closed".
	// Structured StoreHours rows take precedence when present.
	HoursText string `gorm:"type:text" json:"hours_text"`

	LogoURL  string `json:"logo_url"`
	LogoKey  string `json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Hours []StoreHours `gorm:"foreignKey:StoreID" json:"hours,omitempty"`
}

// StoreHours is one structured opening-hours row of a store
type StoreHours struct {
	BaseModel
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"store_id"`
	DayOfWeek string    `gorm:"not null" json:"day_of_week"` // Monday..Sunday
	OpenTime  string    `json:"open_time"`                   // HH:MM, 24h
	CloseTime string    `json:"close_time"`                  // HH:MM, 24h
	IsClosed  bool      `gorm:"default:false" json:"is_closed"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
}

// Record converts the row to the hours engine's structured record.
func (h StoreHours) Record() hours.Record {
	return hours.Record{
		Day:       h.DayOfWeek,
		OpenTime:  h.OpenTime,
		CloseTime: h.CloseTime,
		IsClosed:  h.IsClosed,
	}
}

// CreateStoreRequest is the payload for a new store listing
type CreateStoreRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description"`
	Kind        string   `json:"kind" validate:"omitempty,oneof=local online"`
	Street      string   `json:"street"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	ZipCode     string   `json:"zip_code"`
	Country     string   `json:"country"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website" validate:"omitempty,url"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	Timezone    string   `json:"timezone"`
	HoursText   string   `json:"hours_text"`
}

// UpdateStoreRequest is a partial store update
type UpdateStoreRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=120"`
	Description *string  `json:"description"`
	Kind        *string  `json:"kind" validate:"omitempty,oneof=local online"`
	Street      *string  `json:"street"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	ZipCode     *string  `json:"zip_code"`
	Country     *string  `json:"country"`
	Phone       *string  `json:"phone"`
	Website     *string  `json:"website" validate:"omitempty,url"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	Timezone    *string  `json:"timezone"`
	HoursText   *string  `json:"hours_text"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateHoursRequest replaces a store's hours from rows, a per-day schedule or text
type UpdateHoursRequest struct {
	Records  []hours.Record     `json:"records" validate:"omitempty,max=14,dive"`
	Schedule *hours.DaySchedule `json:"schedule"`
	Text     string             `json:"text" validate:"max=1000"`
}

// StoreListFilter narrows the public store listing
type StoreListFilter struct {
	Search  string
	Kind    string
	City    string
	Page    int
	PerPage int
}

// StoreStatus is the open/closed answer for one store at one instant
type StoreStatus struct {
	StoreID     uuid.UUID      `json:"store_id"`
	IsOpen      bool           `json:"is_open"`
	NextChange  string         `json:"next_change"`
	NextOpening *hours.Opening `json:"next_opening,omitempty"`
	Timezone    string         `json:"timezone"`
	Source      string         `json:"source"` // records, text or none
	EvaluatedAt time.Time      `json:"evaluated_at"`
}

// StoreHoursView is a store's structured hours plus display lines
type StoreHoursView struct {
	StoreID  uuid.UUID          `json:"store_id"`
	Timezone string             `json:"timezone"`
	Source   string             `json:"source"`
	Records  []hours.Record     `json:"records"`
	Summary  []hours.DaySummary `json:"summary"`
}

// StoreWithStatus is a store listing enriched with its current status
type StoreWithStatus struct {
	Store
	Status StoreStatus `json:"status"`
}

// ParseHoursRequest asks the engine to read a free-text hours line
type ParseHoursRequest struct {
	Text     string `json:"text" validate:"required,max=1000"`
	At       string `json:"at"`       // optional RFC3339 instant to evaluate
	Timezone string `json:"timezone"` // zone the hours are expressed in
}

// ParseHoursResponse is the parsed week, plus a status when At was given
type ParseHoursResponse struct {
	Records     []hours.Record      `json:"records"`
	Summary     []hours.DaySummary  `json:"summary"`
	Status      *hours.StatusResult `json:"status,omitempty"`
	NextOpening *hours.Opening      `json:"next_opening,omitempty"`
	Timezone    string              `json:"timezone"`
}
