package cartControllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beneaug/dtfstickers/cart"
	"github.com/beneaug/dtfstickers/catalog"
	"github.com/beneaug/dtfstickers/pricing"
)

type AddCartItemInput struct {
	Name       string  `json:"name" binding:"required"`
	SizeInches float64 `json:"size_inches" binding:"required"`
	MaterialID string  `json:"material_id"`
	CuttingID  string  `json:"cutting_id"`
	Quantity   int     `json:"quantity" binding:"required"`
	Notes      string  `json:"notes"`
	FileURL    string  `json:"file_url"`
	FileKey    string  `json:"file_key"`
	FileName   string  `json:"file_name"`
}

// POST /cart
// Prices the configuration server-side and appends it to the cart.
func AddCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if !pricing.ValidSize(input.SizeInches) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("size must be between %g and %g inches", pricing.MinSizeInches, pricing.MaxSizeInches),
			})
			return
		}
		if !pricing.ValidQuantity(input.Quantity) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("quantity must be between %d and %d", pricing.MinQuantity, pricing.MaxQuantity),
			})
			return
		}

		material := catalog.GetMaterial(input.MaterialID)
		cutting := catalog.GetCuttingOption(input.CuttingID)
		breakdown := pricing.Calculate(input.SizeInches, input.Quantity, material.PriceModifier, cutting.PriceCents)

		item := store.Add(cart.Item{
			Type:            "sticker",
			Name:            input.Name,
			SizeInches:      pricing.SnapSize(input.SizeInches),
			MaterialID:      material.ID,
			MaterialName:    material.Name,
			CuttingID:       cutting.ID,
			CuttingName:     cutting.Name,
			Quantity:        input.Quantity,
			Notes:           input.Notes,
			UnitPriceCents:  breakdown.UnitPriceCents,
			TotalPriceCents: breakdown.TotalPriceCents,
			FileURL:         input.FileURL,
			FileKey:         input.FileKey,
			FileName:        input.FileName,
		})

		c.JSON(http.StatusCreated, gin.H{
			"item":      item,
			"breakdown": breakdown,
			"next_tier": pricing.NextTierHint(input.Quantity),
		})
	}
}

// GET /cart
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"items":       store.Items(),
			"count":       store.Count(),
			"total_cents": store.TotalCents(),
			"tiers":       pricing.Tiers(),
		})
	}
}

// DELETE /cart/:itemID
// Removing an id that is not in the cart is a no-op, not an error.
func DeleteCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Remove(c.Param("itemID"))
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// DELETE /cart
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
