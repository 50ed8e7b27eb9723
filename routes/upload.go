package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	uploadControllers "github.com/beneaug/dtfstickers/controllers/upload"
	"github.com/beneaug/dtfstickers/storage"
)

func SetupUploadRoutes(r *gin.Engine, up storage.Uploader, log *zap.SugaredLogger) {
	r.POST("/upload", uploadControllers.HandleFileUpload(up, log))
}
