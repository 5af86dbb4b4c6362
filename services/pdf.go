package services

import (
	"bytes"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/recipebox/backend/database"
)

// Fixed layout of the shopping list document. Coordinates in millimeters on
// an A4 portrait page.
const (
	listTitle = "Shopping list"

	colItemX  = 20.0
	colQntyX  = 130.0
	colUnitsX = 160.0

	titleY      = 25.0
	headerY     = 40.0
	firstRowY   = 50.0
	lineSpacing = 8.0
	bottomY     = 280.0
)

// RenderShoppingListPDF lays out the aggregated rows as a printable list:
// title, a three-column header, then one line per row in input order. Zero
// rows still produce a valid header-only document. Compression is off so the
// document text stays searchable.
func RenderShoppingListPDF(rows []database.ShoppingListRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(listTitle, true)
	pdf.SetCompression(false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(colItemX, titleY, listTitle)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(colItemX, headerY, "Item")
	pdf.Text(colQntyX, headerY, "Qnty")
	pdf.Text(colUnitsX, headerY, "Units")

	pdf.SetFont("Helvetica", "", 12)
	y := firstRowY
	for _, row := range rows {
		if y > bottomY {
			pdf.AddPage()
			y = firstRowY
		}
		pdf.Text(colItemX, y, row.Name)
		pdf.Text(colQntyX, y, strconv.Itoa(row.Amount))
		pdf.Text(colUnitsX, y, row.MeasurementUnit)
		y += lineSpacing
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
