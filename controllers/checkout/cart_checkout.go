package checkoutControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beneaug/dtfstickers/models"
	"github.com/beneaug/dtfstickers/payments"
	"github.com/beneaug/dtfstickers/pricing"
)

// UploadedFile is one artwork file reference on a composite item.
type UploadedFile struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
}

// CartCheckoutItem is one cart entry submitted for checkout. Type is the
// discriminator: "gang-sheet" items carry SheetSize and possibly multiple
// uploaded files; everything else prices as a single image.
type CartCheckoutItem struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	TransferName  string          `json:"transferName"`
	Size          string          `json:"size"`
	SheetSize     string          `json:"sheetSize"`
	Quantity      int             `json:"quantity"`
	GarmentColor  string          `json:"garmentColor"`
	Notes         string          `json:"notes"`
	FileURL       string          `json:"fileUrl"`
	FileKey       string          `json:"fileKey"`
	FileName      string          `json:"fileName"`
	FileType      string          `json:"fileType"`
	UploadedFiles []UploadedFile  `json:"uploadedFiles"`
	GangSheetData json.RawMessage `json:"gangSheetData"`
}

type CartCheckoutRequest struct {
	Items []CartCheckoutItem `json:"items"`
}

// ProcessedItem mirrors the submitted item with server-computed prices.
type ProcessedItem struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Name            string          `json:"name"`
	Size            string          `json:"size"`
	Quantity        int             `json:"quantity"`
	UnitPriceCents  int             `json:"unitPriceCents"`
	TotalPriceCents int             `json:"totalPriceCents"`
	GarmentColor    string          `json:"garmentColor"`
	Notes           string          `json:"notes"`
	TransferName    string          `json:"transferName"`
	GangSheetData   json.RawMessage `json:"gangSheetData"`
	FileURL         string          `json:"fileUrl,omitempty"`
	FileKey         string          `json:"fileKey,omitempty"`
	FileName        string          `json:"fileName,omitempty"`
	FileType        string          `json:"fileType,omitempty"`
}

func generateCartID() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("cart_%d_%s", time.Now().UnixMilli(), token)
}

// POST /cart/checkout
// Reprices every item server-side, creates one checkout session with one
// line item per cart item, and persists one order row per item keyed by
// the session id and a generated cart correlation id. Any unpriceable
// item fails the whole request with its 1-based index.
func CartCheckoutHandler(db *gorm.DB, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		cartID := generateCartID()

		lineItems := make([]payments.LineItem, 0, len(req.Items))
		processed := make([]ProcessedItem, 0, len(req.Items))
		orders := make([]models.StickerOrder, 0, len(req.Items))
		cartTotalCents := 0

		for i, item := range req.Items {
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}

			var normalizedSize string
			if item.Type == pricing.ItemTypeGangSheet {
				size := item.SheetSize
				if size == "" {
					size = item.Size
				}
				normalizedSize = pricing.NormalizeSheetSize(size)
			} else {
				normalizedSize = item.Size
			}

			price, err := pricing.CalculateForType(item.Type, normalizedSize, qty)
			if err != nil {
				log.Errorw("invalid pricing for cart item",
					"index", i, "type", item.Type, "size", normalizedSize, "quantity", qty, "error", err)
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("Invalid pricing for item %d (%s - %s)", i+1, item.Type, normalizedSize),
				})
				return
			}

			var name, description string
			if item.Type == pricing.ItemTypeGangSheet {
				name = item.Name
				if name == "" {
					name = fmt.Sprintf("Gang Sheet (%s)", normalizedSize)
				}
				description = fmt.Sprintf("%s gang sheet", normalizedSize)
			} else {
				name = item.TransferName
				if name == "" {
					name = item.Name
				}
				if name == "" {
					name = "DTF Transfer"
				}
				description = fmt.Sprintf("%s · Qty: %d", item.Size, qty)
			}

			cartTotalCents += price.TotalPriceCents

			filesJSON := buildFilesJSON(item)

			itemType := item.Type
			if itemType == "" {
				itemType = pricing.ItemTypeSingleImage
			}

			// The session metadata field is too small for full cart
			// contents, so each line item carries its own fulfillment
			// metadata.
			lineItems = append(lineItems, payments.LineItem{
				Name:            name,
				Description:     description,
				UnitAmountCents: price.UnitPriceCents,
				Quantity:        qty,
				Metadata: map[string]string{
					"cartItemIndex":    fmt.Sprintf("%d", i),
					"itemType":         itemType,
					"size":             normalizedSize,
					"quantity":         fmt.Sprintf("%d", qty),
					"garmentColor":     item.GarmentColor,
					"transferName":     name,
					"notes":            item.Notes,
					"files":            filesJSON,
					"hasGangSheetData": fmt.Sprintf("%t", len(item.GangSheetData) > 0),
				},
			})

			gangSheetData := item.GangSheetData
			if item.Type == pricing.ItemTypeGangSheet && len(gangSheetData) == 0 {
				// Uploaded sheets arrive without layout data.
				gangSheetData = json.RawMessage(`{"type":"uploaded-sheet"}`)
			}

			processed = append(processed, ProcessedItem{
				ID:              item.ID,
				Type:            itemType,
				Name:            name,
				Size:            normalizedSize,
				Quantity:        qty,
				UnitPriceCents:  price.UnitPriceCents,
				TotalPriceCents: price.TotalPriceCents,
				GarmentColor:    item.GarmentColor,
				Notes:           item.Notes,
				TransferName:    name,
				GangSheetData:   gangSheetData,
				FileURL:         item.FileURL,
				FileKey:         item.FileKey,
				FileName:        item.FileName,
				FileType:        item.FileType,
			})

			orders = append(orders, models.StickerOrder{
				ItemType:        itemType,
				JobName:         name,
				Size:            normalizedSize,
				Quantity:        qty,
				Notes:           item.Notes,
				FileKey:         item.FileKey,
				FileURL:         item.FileURL,
				FileName:        item.FileName,
				UnitPriceCents:  price.UnitPriceCents,
				TotalPriceCents: price.TotalPriceCents,
				CartOrderID:     &cartID,
				Status:          models.OrderStatusCreated,
			})
		}

		log.Infow("processing cart checkout",
			"cart_id", cartID, "items", len(req.Items), "total_cents", cartTotalCents)

		session, err := payments.CreateCheckoutSession(c.Request.Context(), payments.SessionParams{
			LineItems:  lineItems,
			SuccessURL: payments.SuccessURL(cartID),
			CancelURL:  payments.CancelURL(),
			Metadata: map[string]string{
				"cartId":      cartID,
				"itemCount":   fmt.Sprintf("%d", len(req.Items)),
				"isCartOrder": "true",
			},
			CollectShipping: true,
			CollectPhone:    true,
		})
		if err != nil {
			log.Errorw("cart checkout session creation failed", "error", err, "cart_id", cartID)
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "Failed to create checkout session",
				"message": "payment provider unavailable",
			})
			return
		}

		resp := gin.H{
			"checkoutUrl":    session.URL,
			"sessionId":      session.ID,
			"cartId":         cartID,
			"processedItems": processed,
		}

		for i := range orders {
			orders[i].StripeSessionID = session.ID
		}
		// Session creation already succeeded; a failed insert is logged
		// and surfaced as a warning, never a checkout failure.
		if err := db.Create(&orders).Error; err != nil {
			log.Errorw("cart order rows insert failed after session creation",
				"error", err, "session_id", session.ID, "cart_id", cartID)
			resp["warning"] = "order records could not be saved"
		}

		c.JSON(http.StatusOK, resp)
	}
}

// buildFilesJSON serializes the item's file references for line-item
// metadata, working for both single and multi-file items.
func buildFilesJSON(item CartCheckoutItem) string {
	files := make([]UploadedFile, 0, len(item.UploadedFiles))
	if len(item.UploadedFiles) > 0 {
		files = append(files, item.UploadedFiles...)
	} else if item.FileKey != "" {
		filename := item.FileName
		if filename == "" {
			filename = "artwork"
		}
		mimetype := item.FileType
		if mimetype == "" {
			mimetype = "image/png"
		}
		files = append(files, UploadedFile{Key: item.FileKey, Filename: filename, Mimetype: mimetype})
	}

	data, err := json.Marshal(files)
	if err != nil {
		return "[]"
	}
	return string(data)
}
