package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cardvault/internal/database"
	"cardvault/internal/models"
)

// Maximum quantity allowed per holding
const maxQuantity = 9999

type HoldingHandler struct{}

func NewHoldingHandler() *HoldingHandler {
	return &HoldingHandler{}
}

func (h *HoldingHandler) ListHoldings(c *gin.Context) {
	db := database.GetDB()

	var holdings []models.Holding
	if err := db.Preload("Card").Order("created_at DESC").Find(&holdings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, holdings)
}

func (h *HoldingHandler) AddHolding(c *gin.Context) {
	var req models.AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var card models.Card
	if err := db.First(&card, req.CardID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card not found, please register it first"})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}
	if quantity > maxQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity exceeds maximum allowed (9999)"})
		return
	}
	condition := req.Condition
	if condition == "" {
		condition = models.ConditionNearMint
	}

	holding := models.Holding{
		CardID:    req.CardID,
		Quantity:  quantity,
		Condition: condition,
	}

	if err := db.Create(&holding).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	db.Preload("Card").First(&holding, holding.ID)
	c.JSON(http.StatusCreated, holding)
}

func (h *HoldingHandler) UpdateHolding(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req models.UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var holding models.Holding
	if err := db.First(&holding, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
		return
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}
		if *req.Quantity > maxQuantity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity exceeds maximum allowed (9999)"})
			return
		}
		holding.Quantity = *req.Quantity
	}
	if req.Condition != nil {
		holding.Condition = *req.Condition
	}

	if err := db.Save(&holding).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	db.Preload("Card").First(&holding, holding.ID)
	c.JSON(http.StatusOK, holding)
}

func (h *HoldingHandler) DeleteHolding(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	db := database.GetDB()

	result := db.Delete(&models.Holding{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
