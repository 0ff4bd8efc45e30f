package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cardvault/internal/database"
	"cardvault/internal/models"
)

type CardHandler struct{}

func NewCardHandler() *CardHandler {
	return &CardHandler{}
}

func (h *CardHandler) ListCards(c *gin.Context) {
	db := database.GetDB()

	var cards []models.Card
	query := db.Order("name ASC")

	if set := c.Query("set"); set != "" {
		query = query.Where("set_code = ?", set)
	}

	if err := query.Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cards)
}

// CreateCard registers a card. When a product id is supplied and a card
// with that id already exists, the existing card is updated instead
// (id_product is unique).
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req models.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	if req.IDProduct != nil {
		var existing models.Card
		if err := db.First(&existing, "id_product = ?", *req.IDProduct).Error; err == nil {
			existing.Name = req.Name
			existing.SetCode = req.SetCode
			existing.Number = req.Number
			existing.Language = req.Language
			existing.IsFoil = req.IsFoil
			if err := db.Save(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, existing)
			return
		}
	}

	card := models.Card{
		IDProduct: req.IDProduct,
		Name:      req.Name,
		SetCode:   req.SetCode,
		Number:    req.Number,
		Language:  req.Language,
		IsFoil:    req.IsFoil,
	}

	if err := db.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, card)
}

func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req models.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var card models.Card
	if err := db.First(&card, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	if req.IDProduct != nil {
		card.IDProduct = req.IDProduct
	}
	if req.Name != nil {
		card.Name = *req.Name
	}
	if req.SetCode != nil {
		card.SetCode = *req.SetCode
	}
	if req.Number != nil {
		card.Number = *req.Number
	}
	if req.Language != nil {
		card.Language = *req.Language
	}
	if req.IsFoil != nil {
		card.IsFoil = *req.IsFoil
	}

	if err := db.Save(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, card)
}

// DeleteCard removes a card and its holdings. The delete runs in a
// transaction because SQLite does not enforce the cascade constraint.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	db := database.GetDB()

	var card models.Card
	if err := db.First(&card, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", card.ID).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		return tx.Delete(&card).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
