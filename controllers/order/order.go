package orderControllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beneaug/dtfstickers/models"
)

// CustomerDetails is what the payment provider reports about the paying
// customer when a session completes.
type CustomerDetails struct {
	Email           string
	Name            string
	Phone           string
	ShippingAddress string // serialized JSON, may be empty
}

// ApplyCheckoutCompleted attaches customer details to every order row of
// a session and marks them completed. Re-applying the same confirmation
// is idempotent: the update sets the same values again, and a completed
// order never reverts.
func ApplyCheckoutCompleted(db *gorm.DB, sessionID string, details CustomerDetails) error {
	if sessionID == "" {
		return errors.New("session id is required")
	}
	return db.Model(&models.StickerOrder{}).
		Where("stripe_session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"customer_email":   details.Email,
			"customer_name":    details.Name,
			"customer_phone":   details.Phone,
			"shipping_address": details.ShippingAddress,
			"status":           models.OrderStatusCompleted,
		}).Error
}

// stripeEvent is the slice of the webhook envelope this service reads.
type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID              string `json:"id"`
			CustomerDetails *struct {
				Email string `json:"email"`
				Name  string `json:"name"`
				Phone string `json:"phone"`
			} `json:"customer_details"`
			ShippingDetails *struct {
				Name    string          `json:"name"`
				Address json.RawMessage `json:"address"`
			} `json:"shipping_details"`
		} `json:"object"`
	} `json:"data"`
}

// POST /payment/webhook
// Handles checkout.session.completed; all other event types are
// acknowledged and ignored.
func StripeWebhookHandler(db *gorm.DB, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event stripeEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse webhook payload"})
			return
		}

		if event.Type != "checkout.session.completed" {
			c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
			return
		}

		session := event.Data.Object
		if session.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing session id"})
			return
		}

		var details CustomerDetails
		if session.CustomerDetails != nil {
			details.Email = session.CustomerDetails.Email
			details.Name = session.CustomerDetails.Name
			details.Phone = session.CustomerDetails.Phone
		}
		if session.ShippingDetails != nil {
			shipping, err := json.Marshal(session.ShippingDetails)
			if err == nil {
				details.ShippingAddress = string(shipping)
			}
		}

		if err := ApplyCheckoutCompleted(db, session.ID, details); err != nil {
			log.Errorw("failed to apply checkout confirmation", "error", err, "session_id", session.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		log.Infow("order completed", "session_id", session.ID)

		var completed []models.StickerOrder
		if err := db.Where("stripe_session_id = ?", session.ID).Find(&completed).Error; err == nil {
			for _, order := range completed {
				broadcastOrderCompleted(order)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order completed"})
	}
}

// GET /orders/session/:sessionID
func GetOrderBySessionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionID")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionID is required"})
			return
		}

		var order models.StickerOrder
		if err := db.Where("stripe_session_id = ?", sessionID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/cart/:cartID
// All rows of the cart correlation id, most recent first.
func GetOrdersByCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.Param("cartID")
		if cartID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cartID is required"})
			return
		}

		orders := []models.StickerOrder{}
		if err := db.
			Where("cart_order_id = ?", cartID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders := []models.StickerOrder{}
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
