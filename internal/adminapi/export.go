package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
)

// productExportRow flattens a product and its children into one line.
type productExportRow struct {
	ID          int64  `csv:"id"`
	Name        string `csv:"name"`
	Slug        string `csv:"slug"`
	Description string `csv:"description"`
	Size        string `csv:"size"`
	Finishing   string `csv:"finishing"`
	Material    string `csv:"material"`
	Price       string `csv:"price"`
	Highlights  string `csv:"highlights"`
	Images      string `csv:"images"`
	CreatedAt   string `csv:"created_at"`
}

func registerExportRoutes() {
	webserver.ApiGET("/admin/products/export", exportProducts)
}

func exportProducts(c echo.Context) error {
	var products []domain.Product
	err := GetDB(c).
		Preload("Specification").
		Preload("Highlights", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	rows := make([]productExportRow, 0, len(products))
	for _, p := range products {
		row := productExportRow{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if p.Specification != nil {
			row.Size = p.Specification.Size
			row.Finishing = p.Specification.Finishing
			row.Material = p.Specification.Material
			row.Price = p.Specification.Price
		}
		texts := make([]string, 0, len(p.Highlights))
		for _, h := range p.Highlights {
			texts = append(texts, h.Text)
		}
		row.Highlights = strings.Join(texts, "; ")
		urls := make([]string, 0, len(p.Images))
		for _, img := range p.Images {
			urls = append(urls, img.ImageURL)
		}
		row.Images = strings.Join(urls, "; ")
		rows = append(rows, row)
	}

	switch strings.ToLower(c.QueryParam("format")) {
	case "", "csv":
		data, err := gocsv.MarshalString(&rows)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to build CSV", err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
		return c.Blob(http.StatusOK, "text/csv", []byte(data))
	case "xlsx":
		f := excelize.NewFile()
		defer f.Close()
		const sheet = "Sheet1"
		headers := []string{"id", "name", "slug", "description", "size", "finishing",
			"material", "price", "highlights", "images", "created_at"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}
		for r, row := range rows {
			values := []interface{}{row.ID, row.Name, row.Slug, row.Description, row.Size,
				row.Finishing, row.Material, row.Price, row.Highlights, row.Images, row.CreatedAt}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to build workbook", err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
		return c.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		return fail(c, http.StatusBadRequest, "INVALID_FORMAT",
			fmt.Sprintf("Unsupported export format %q", c.QueryParam("format")), nil)
	}
}
