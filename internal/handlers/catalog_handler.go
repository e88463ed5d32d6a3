package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homeserve/booking-backend/internal/database"
	"github.com/homeserve/booking-backend/internal/models"
)

// CatalogHandler handles service catalog browsing
type CatalogHandler struct {
	services *database.ServiceRepository
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(services *database.ServiceRepository) *CatalogHandler {
	return &CatalogHandler{services: services}
}

// timeSlots is the fixed half-hour booking grid: a morning block and an
// afternoon block. Slot availability is not tracked server-side.
var timeSlots = []string{
	"8:00 AM", "8:30 AM", "9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "12:00 PM", "12:30 PM",
	"1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM",
	"4:00 PM", "4:30 PM", "5:00 PM", "5:30 PM", "6:00 PM", "6:30 PM",
	"7:00 PM", "7:30 PM",
}

// ListServices returns all services in one category
func (h *CatalogHandler) ListServices(c *gin.Context) {
	category := models.ServiceCategory(c.Param("category"))
	if !models.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Unknown service category",
		})
		return
	}

	services, err := h.services.ListByCategory(category)
	if err != nil {
		respondError(c, err)
		return
	}

	if services == nil {
		services = []models.ServiceDefinition{}
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "services": services})
}

// GetService resolves a service id across all categories
func (h *CatalogHandler) GetService(c *gin.Context) {
	serviceID := c.Param("id")

	svc, err := h.services.Resolve(serviceID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Service not found in any category",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

// ListTimeSlots returns the fixed half-hour booking grid
func (h *CatalogHandler) ListTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"time_slots": timeSlots})
}

// ListPaymentMethods returns the supported payment method labels
func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"payment_methods": []string{"GPay", "Cash on Delivery"}})
}
