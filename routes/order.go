package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	checkoutControllers "github.com/beneaug/dtfstickers/controllers/checkout"
	orderControllers "github.com/beneaug/dtfstickers/controllers/order"
	"github.com/beneaug/dtfstickers/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, log *zap.SugaredLogger) {
	orders := r.Group("/orders")
	{
		// Create a single-item checkout session
		orders.POST("/place", checkoutControllers.PlaceOrderHandler(db, log))

		// Order lookups after checkout
		orders.GET("/session/:sessionID", orderControllers.GetOrderBySessionHandler(db))
		orders.GET("/cart/:cartID", orderControllers.GetOrdersByCartHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Admin (API-key-protected)
		orders.GET("", middleware.ValidateAPIKey, orderControllers.GetAllOrdersHandler(db))
		orders.GET("/export", middleware.ValidateAPIKey, orderControllers.ExportOrdersToExcel(db))
	}
}
