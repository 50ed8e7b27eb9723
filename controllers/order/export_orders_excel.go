package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/beneaug/dtfstickers/models"
	"github.com/beneaug/dtfstickers/pricing"
)

// GET /orders/export (admin)
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.StickerOrder
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "ItemType", "JobName", "Material", "Size", "Cutting",
			"Quantity", "UnitPrice", "TotalPrice", "Status",
			"StripeSessionID", "CartOrderID", "CustomerEmail",
			"CustomerName", "CustomerPhone", "FileURL", "Notes", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.ItemType)
			row.AddCell().SetValue(o.JobName)
			row.AddCell().SetValue(o.MaterialName)
			row.AddCell().SetValue(o.Size)
			row.AddCell().SetValue(o.CuttingName)
			row.AddCell().SetValue(o.Quantity)
			row.AddCell().SetValue(pricing.FormatCents(o.UnitPriceCents))
			row.AddCell().SetValue(pricing.FormatCents(o.TotalPriceCents))
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.StripeSessionID)

			cartID := ""
			if o.CartOrderID != nil {
				cartID = *o.CartOrderID
			}
			row.AddCell().SetValue(cartID)

			row.AddCell().SetValue(o.CustomerEmail)
			row.AddCell().SetValue(o.CustomerName)
			row.AddCell().SetValue(o.CustomerPhone)
			row.AddCell().SetValue(o.FileURL)
			row.AddCell().SetValue(o.Notes)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
