package uploadControllers

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beneaug/dtfstickers/storage"
)

const (
	maxFileSize   = 50 << 20 // 50MB
	uploadTimeout = 60 * time.Second
)

var allowedMimeTypes = map[string]bool{
	"image/png":                true,
	"image/jpeg":               true,
	"image/jpg":                true,
	"image/svg+xml":            true,
	"application/pdf":          true,
	"image/gif":                true,
	"image/bmp":                true,
	"image/tiff":               true,
	"application/octet-stream": true, // allow if we couldn't determine type
}

var extMimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

var unsafeChars = regexp.MustCompile(`[^\w\d\-_\.]`)

// inferMimeType falls back to the filename extension when the transport
// did not supply a content type.
func inferMimeType(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return "application/octet-stream"
	}
	ext := strings.ToLower(filename[idx+1:])
	if mt, ok := extMimeTypes[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}

// HandleFileUpload accepts one multipart file under the "file" field and
// stores it. Only the first file part is processed; extras are discarded.
func HandleFileUpload(up storage.Uploader, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
			return
		}

		files := form.File["file"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No file provided. Make sure the form field is named 'file'.",
			})
			return
		}
		if len(files) > 1 {
			log.Warnw("extra file parts discarded", "count", len(files)-1)
		}
		file := files[0]

		if file.Size > maxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("File size %d exceeds 50MB limit", file.Size),
			})
			return
		}

		cleanName := unsafeChars.ReplaceAllString(file.Filename, "_")
		if cleanName == "" || cleanName == "unknown" || file.Size == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file - no filename or empty file"})
			return
		}

		mimetype := file.Header.Get("Content-Type")
		if mt, _, err := mime.ParseMediaType(mimetype); err == nil {
			mimetype = mt
		}
		mimetype = strings.ToLower(mimetype)
		if mimetype == "" {
			mimetype = inferMimeType(cleanName)
		}
		if !allowedMimeTypes[mimetype] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type: " + mimetype})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File upload error: " + err.Error()})
			return
		}
		defer src.Close()

		key := fmt.Sprintf("dtf-orders/%d-%s-%s",
			time.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9], cleanName)

		ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
		defer cancel()

		url, err := up.Upload(ctx, key, mimetype, src)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				c.JSON(http.StatusRequestTimeout, gin.H{"error": "Upload timeout."})
				return
			}
			log.Errorw("failed to store uploaded file", "error", err, "key", key, "filename", cleanName)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
			return
		}

		log.Infow("file uploaded", "key", key, "filename", cleanName, "size", file.Size)

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"url":      url,
			"key":      key,
			"filename": cleanName,
			"mimetype": mimetype,
			"size":     file.Size,
		})
	}
}
