package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beneaug/dtfstickers/cart"
	cartControllers "github.com/beneaug/dtfstickers/controllers/cart"
	checkoutControllers "github.com/beneaug/dtfstickers/controllers/checkout"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB, store *cart.Store, log *zap.SugaredLogger) {
	group := r.Group("/cart")
	{
		group.GET("", cartControllers.GetCart(store))
		group.POST("", cartControllers.AddCartItem(store))
		group.DELETE("/:itemID", cartControllers.DeleteCartItem(store))
		group.DELETE("", cartControllers.ClearCart(store))

		// Stateless checkout of a client-held cart. Items are repriced
		// server side; the server-side cart store is not consulted.
		group.POST("/checkout", checkoutControllers.CartCheckoutHandler(db, log))
	}
}
