package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beneaug/dtfstickers/cart"
	"github.com/beneaug/dtfstickers/storage"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store *cart.Store, up storage.Uploader, log *zap.SugaredLogger) {
	// pricing and catalog lookups (public, no state)
	SetupPricingRoutes(r)

	// artwork uploads
	SetupUploadRoutes(r, up, log)

	// server-side cart
	SetupCartRoutes(r, db, store, log)

	// checkout and order queries
	SetupOrderRoutes(r, db, log)

	// payment provider webhook
	SetupPaymentRoutes(r, db, log)
}
