package models

import (
	"time"
)

type Condition string

const (
	ConditionMint     Condition = "M"
	ConditionNearMint Condition = "NM"
	ConditionExcel    Condition = "EX"
	ConditionGood     Condition = "GD"
	ConditionPlayed   Condition = "PL"
	ConditionPoor     Condition = "PO"
)

// Holding is a quantity of a card owned by the user. Deleting the card
// cascades to its holdings.
type Holding struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CardID    uint      `json:"card_id" gorm:"not null;index"`
	Card      Card      `json:"card" gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	Condition Condition `json:"condition" gorm:"default:'NM'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AddHoldingRequest struct {
	CardID    uint      `json:"card_id" binding:"required"`
	Quantity  int       `json:"quantity"`
	Condition Condition `json:"condition"`
}

type UpdateHoldingRequest struct {
	Quantity  *int       `json:"quantity"`
	Condition *Condition `json:"condition"`
}
