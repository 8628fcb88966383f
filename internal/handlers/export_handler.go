package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/models"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/repository"
)

// ExportHandler produces catalog spreadsheets for offline editing
type ExportHandler struct {
	repo   *repository.ProductsRepository
	logger *logrus.Entry
}

func NewExportHandler(repo *repository.ProductsRepository, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{
		repo:   repo,
		logger: logger.WithField("component", "export"),
	}
}

// ExportProducts streams the full catalog as an xlsx workbook: one Products
// sheet, one Variants sheet with each variant's (name, value) encoding so
// re-imports round-trip the combination link.
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	req := &models.SearchProductsRequest{Page: 1, Limit: 10000}
	products, _, err := h.repo.GetProducts(req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load products for export")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EXPORT_FAILED",
				Message: "Failed to export products",
			},
		})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	const productsSheet = "Products"
	f.SetSheetName("Sheet1", productsSheet)

	productHeaders := []string{"ID", "Name", "Slug", "SKU", "Type", "Status", "Price (GHS)", "Compare At (GHS)", "Stock", "Featured", "Created"}
	for i, header := range productHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(productsSheet, cell, header)
		f.SetCellStyle(productsSheet, cell, cell, headerStyle)
	}

	for row, p := range products {
		values := []interface{}{
			p.ID.String(),
			p.Name,
			derefString(p.Slug),
			derefString(p.SKU),
			string(p.ProductType),
			string(p.Status),
			p.PriceGhs,
			derefFloat(p.CompareAtPriceGhs),
			p.Stock,
			p.IsFeatured,
			p.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(productsSheet, cell, v)
		}
	}

	const variantsSheet = "Variants"
	f.NewSheet(variantsSheet)

	variantHeaders := []string{"Variant ID", "Product ID", "Product Name", "Name", "Value", "Price (GHS)", "Sale Price (GHS)", "Stock", "SKU"}
	for i, header := range variantHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(variantsSheet, cell, header)
		f.SetCellStyle(variantsSheet, cell, cell, headerStyle)
	}

	row := 2
	for _, p := range products {
		for _, v := range p.Variants {
			if v == nil {
				continue
			}
			values := []interface{}{
				v.ID.String(),
				p.ID.String(),
				p.Name,
				v.Name,
				v.Value,
				v.PriceGhs,
				derefFloat(v.CompareAtPriceGhs),
				v.Stock,
				derefString(v.SKU),
			}
			for col, val := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(variantsSheet, cell, val)
			}
			row++
		}
	}

	fileName := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		h.logger.WithError(err).Error("Failed to stream export")
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}
