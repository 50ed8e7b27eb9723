package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orderControllers "github.com/beneaug/dtfstickers/controllers/order"
	"github.com/beneaug/dtfstickers/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, log *zap.SugaredLogger) {
	payment := r.Group("/payment")
	{
		// Webhook endpoint: middleware handles sandbox/prod verification
		payment.POST("/webhook",
			middleware.StripeWebhookAuth(),
			orderControllers.StripeWebhookHandler(db, log),
		)
	}
}
