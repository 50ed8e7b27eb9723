package catalogControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beneaug/dtfstickers/catalog"
	"github.com/beneaug/dtfstickers/pricing"
)

// GET /catalog
// Everything the order form needs to render: materials, cutting options
// and the quantity discount tiers.
func GetCatalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"materials":       catalog.Materials(),
			"cutting_options": catalog.CuttingOptions(),
			"tiers":           pricing.Tiers(),
		})
	}
}

// GET /pricing/quote?size=3&quantity=50&material=premium-vinyl&cutting=die-cut
func QuoteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		size, err := strconv.ParseFloat(c.Query("size"), 64)
		if err != nil || !pricing.ValidSize(size) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and 12 inches"})
			return
		}
		quantity, err := strconv.Atoi(c.Query("quantity"))
		if err != nil || !pricing.ValidQuantity(quantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be between 1 and 9999"})
			return
		}

		material := catalog.GetMaterial(c.Query("material"))
		cutting := catalog.GetCuttingOption(c.Query("cutting"))

		breakdown := pricing.Calculate(size, quantity, material.PriceModifier, cutting.PriceCents)
		c.JSON(http.StatusOK, gin.H{
			"breakdown": breakdown,
			"material":  material,
			"cutting":   cutting,
			"next_tier": pricing.NextTierHint(quantity),
		})
	}
}
