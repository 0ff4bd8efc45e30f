package models

import (
	"time"
)

// Card is a specific printing/variant of a trading card.
// IDProduct is the price guide's product identifier; it is optional
// (manually entered cards may not have one) but unique when present.
type Card struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	IDProduct *int64    `json:"id_product" gorm:"uniqueIndex"`
	Name      string    `json:"name" gorm:"not null;index"`
	SetCode   string    `json:"set_code"`
	Number    string    `json:"number"`
	Language  string    `json:"language"`
	IsFoil    bool      `json:"is_foil" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCardRequest struct {
	IDProduct *int64 `json:"id_product"`
	Name      string `json:"name" binding:"required"`
	SetCode   string `json:"set_code"`
	Number    string `json:"number"`
	Language  string `json:"language"`
	IsFoil    bool   `json:"is_foil"`
}

type UpdateCardRequest struct {
	IDProduct *int64  `json:"id_product"`
	Name      *string `json:"name"`
	SetCode   *string `json:"set_code"`
	Number    *string `json:"number"`
	Language  *string `json:"language"`
	IsFoil    *bool   `json:"is_foil"`
}
