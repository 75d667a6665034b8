package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"storefront-admin-service/internal/models"
)

// Headers is the fixed 11-column export header row. Existing consumers parse
// these names; do not reorder or rename.
var Headers = []string{
	"ID",
	"Tanggal",
	"Produk",
	"Varian",
	"Quantity",
	"Total Harga",
	"Reseller",
	"Customer Name",
	"Customer Phone",
	"Status",
	"Notes",
}

// TransactionsCSV serializes every transaction to the legacy CSV format:
// every cell is double-quote wrapped and embedded quotes are NOT escaped.
// Kept byte-compatible with the consumers of the previous export; see
// DESIGN.md before changing the quoting.
func TransactionsCSV(transactions []models.Transaction, loc *time.Location) []byte {
	var buf bytes.Buffer

	writeRow(&buf, Headers)
	for _, t := range transactions {
		buf.WriteByte('\n')
		writeRow(&buf, Row(t, loc))
	}

	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(cell)
		buf.WriteByte('"')
	}
}

// TransactionsXLSX serializes transactions to an Excel workbook with the same
// columns as the CSV export.
func TransactionsXLSX(transactions []models.Transaction, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transactions"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, header := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	for rowIdx, t := range transactions {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		row := Row(t, loc)
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Row renders one transaction as export cells. Variant renders "name: value"
// or "Standard" when no variant is attached; reseller renders its name or
// "Direct"; missing optional text fields render as "-".
func Row(t models.Transaction, loc *time.Location) []string {
	productName := ""
	if t.Product != nil {
		productName = t.Product.Name
	}

	variant := "Standard"
	if t.Variant != nil {
		variant = fmt.Sprintf("%s: %s", t.Variant.Name, t.Variant.Value)
	}

	reseller := "Direct"
	if t.Reseller != nil {
		reseller = t.Reseller.Name
	}

	return []string{
		strconv.FormatUint(uint64(t.ID), 10),
		FormatTimestamp(t.CreatedAt, loc),
		productName,
		variant,
		strconv.Itoa(t.Quantity),
		formatPrice(t.TotalPrice),
		reseller,
		orDash(t.CustomerName),
		orDash(t.CustomerPhone),
		string(t.Status),
		orDash(t.Notes),
	}
}

// FormatTimestamp renders the creation time in the id-ID combined date+time
// style (d/m/yyyy, hh.mm.ss) in the given location.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2/1/2006, 15.04.05")
}

func formatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimRight(strings.TrimRight(s, "0"), ".")
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// Filename builds the attachment filename with the export timestamp. The
// millisecond ISO form matches the filenames the previous exporter produced.
func Filename(now time.Time, extension string) string {
	return fmt.Sprintf("transactions-%s.%s", now.UTC().Format("2006-01-02T15:04:05.000Z"), extension)
}
