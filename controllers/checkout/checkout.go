package checkoutControllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beneaug/dtfstickers/models"
	"github.com/beneaug/dtfstickers/payments"
	"github.com/beneaug/dtfstickers/pricing"
)

// PlaceOrderRequest is the single-item checkout payload. Prices arrive
// precomputed from the order form's calculator step and are validated,
// not recomputed, matching the sticker order form contract.
type PlaceOrderRequest struct {
	JobName         string `json:"jobName"`
	Material        string `json:"material"`
	MaterialID      string `json:"materialId"`
	Size            string `json:"size"`
	Cutting         string `json:"cutting"`
	CuttingID       string `json:"cuttingId"`
	Quantity        int    `json:"quantity"`
	Notes           string `json:"notes"`
	FileURL         string `json:"fileUrl"`
	FileKey         string `json:"fileKey"`
	FileName        string `json:"fileName"`
	UnitPriceCents  int    `json:"unitPriceCents"`
	TotalPriceCents int    `json:"totalPriceCents"`
}

// POST /orders/place
// Creates a one-line-item checkout session and persists the order row.
func PlaceOrderHandler(db *gorm.DB, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if req.JobName == "" || req.Material == "" || req.MaterialID == "" ||
			req.Size == "" || req.Cutting == "" || req.CuttingID == "" || req.Quantity == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		if req.FileURL == "" || req.FileKey == "" || req.FileName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File must be uploaded before checkout"})
			return
		}
		if req.UnitPriceCents == 0 || req.TotalPriceCents == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Pricing information required"})
			return
		}
		if !pricing.ValidQuantity(req.Quantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		if req.UnitPriceCents < 0 || req.TotalPriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pricing"})
			return
		}

		session, err := payments.CreateCheckoutSession(c.Request.Context(), payments.SessionParams{
			LineItems: []payments.LineItem{
				{
					Name:            "Custom Stickers: " + req.JobName,
					Description:     fmt.Sprintf("%s · %s · %s · Qty: %d", req.Size, req.Material, req.Cutting, req.Quantity),
					UnitAmountCents: req.UnitPriceCents,
					Quantity:        req.Quantity,
					Metadata: map[string]string{
						"type":     "sticker",
						"jobName":  req.JobName,
						"material": req.Material,
						"size":     req.Size,
						"cutting":  req.Cutting,
						"quantity": fmt.Sprintf("%d", req.Quantity),
					},
				},
			},
			SuccessURL: payments.SuccessURL(""),
			CancelURL:  payments.CancelURL(),
			Metadata: map[string]string{
				"type":       "sticker",
				"jobName":    req.JobName,
				"materialId": req.MaterialID,
				"material":   req.Material,
				"size":       req.Size,
				"cuttingId":  req.CuttingID,
				"cutting":    req.Cutting,
				"quantity":   fmt.Sprintf("%d", req.Quantity),
				"fileKey":    req.FileKey,
				"fileUrl":    req.FileURL,
				"fileName":   req.FileName,
			},
		})
		if err != nil {
			log.Errorw("checkout session creation failed", "error", err, "job", req.JobName)
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "Failed to create order",
				"message": "payment provider unavailable",
			})
			return
		}

		order := models.StickerOrder{
			ItemType:        "sticker",
			JobName:         req.JobName,
			MaterialID:      req.MaterialID,
			MaterialName:    req.Material,
			Size:            req.Size,
			CuttingID:       req.CuttingID,
			CuttingName:     req.Cutting,
			Quantity:        req.Quantity,
			Notes:           req.Notes,
			FileKey:         req.FileKey,
			FileURL:         req.FileURL,
			FileName:        req.FileName,
			UnitPriceCents:  req.UnitPriceCents,
			TotalPriceCents: req.TotalPriceCents,
			StripeSessionID: session.ID,
			CartOrderID:     nil,
			Status:          models.OrderStatusCreated,
		}

		resp := gin.H{
			"checkoutUrl": session.URL,
			"sessionId":   session.ID,
		}

		// The session already exists, so a failed insert must not fail
		// the checkout; reconciliation happens offline.
		if err := db.Create(&order).Error; err != nil {
			log.Errorw("order row insert failed after session creation",
				"error", err, "session_id", session.ID)
			resp["warning"] = "order record could not be saved"
		}

		c.JSON(http.StatusOK, resp)
	}
}
