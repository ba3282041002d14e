package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
)

// ExportQuery represents the export products query. An empty CategoryID exports everything.
type ExportQuery struct {
	CategoryID string
}

// ExportResult represents the export products result.
type ExportResult struct {
	FileContent []byte
	FileName    string
}

// ExportHandler handles the ExportProducts query.
type ExportHandler struct {
	repo product.Repository
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(repo product.Repository) *ExportHandler {
	return &ExportHandler{repo: repo}
}

const exportSheet = "Products"

// Handle executes the export products query.
func (h *ExportHandler) Handle(ctx context.Context, query ExportQuery) (*ExportResult, error) {
	products, fileName, err := h.load(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get products for export: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"No", "ID", "Name", "Price", "Display Price", "Category", "Description", "Created At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(exportSheet, "A1", "H1", headerStyle)

	for i, p := range products {
		row := i + 2
		values := []interface{}{
			i + 1,
			p.ID(),
			p.Name().String(),
			p.Price().Value(),
			p.Price().Format(),
			p.CategoryID().String(),
			p.Description(),
			p.CreatedAt().Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(exportSheet, cell, value)
		}
	}

	widths := map[string]float64{"A": 5, "B": 44, "C": 30, "D": 12, "E": 18, "F": 20, "G": 40, "H": 20}
	for col, width := range widths {
		_ = f.SetColWidth(exportSheet, col, col, width)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	return &ExportResult{
		FileContent: buffer.Bytes(),
		FileName:    fileName,
	}, nil
}

func (h *ExportHandler) load(ctx context.Context, query ExportQuery) ([]*product.Product, string, error) {
	if strings.TrimSpace(query.CategoryID) == "" {
		products, err := h.repo.FindAll(ctx)
		return products, "product_export.xlsx", err
	}

	categoryID, err := category.NewID(query.CategoryID)
	if err != nil {
		return nil, "", err
	}
	products, err := h.repo.FindByCategoryID(ctx, categoryID)
	return products, fmt.Sprintf("product_export_%s.xlsx", categoryID.String()), err
}
