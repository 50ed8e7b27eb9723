package routes

import (
	"github.com/gin-gonic/gin"

	catalogControllers "github.com/beneaug/dtfstickers/controllers/catalog"
)

func SetupPricingRoutes(r *gin.Engine) {
	r.GET("/catalog", catalogControllers.GetCatalog())
	r.GET("/pricing/quote", catalogControllers.QuoteHandler())
}
