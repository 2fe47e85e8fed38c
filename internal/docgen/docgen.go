// Package docgen renders the assembled transaction list into the
// "Movimentação Bancária" DOCX layout: one bordered table per month,
// credits in bold.
package docgen

import (
	"fmt"
	"io"
	"sort"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/lfmartins-dev/extrato-ai/internal/extract"
)

// Params are the document display parameters.
type Params struct {
	Bank    string
	Branch  string
	Account string
}

const (
	fontFamily = "Arial"

	// Run sizes in half-points: 14pt title, 11pt subtitle, 12pt month, 9pt body.
	sizeTitle    = "28"
	sizeSubtitle = "22"
	sizeMonth    = "24"
	sizeBody     = "18"

	// fallbackYear labels the document when no transaction carries a date.
	fallbackYear = "2022"
)

// Column widths in twips: 2.5cm, 2.0cm, 10.0cm, 3.0cm.
var columnWidths = []int64{1418, 1134, 5670, 1701}

// A4 page with 1.5 cm margins (850 twips).
var sectionProperties = docx.SectPr{
	PgSz: &docx.PgSz{W: 11906, H: 16838},
	PgMar: &docx.PgMar{
		Top:    850,
		Left:   850,
		Bottom: 850,
		Right:  850,
		Header: 708,
		Footer: 708,
	},
}

// Cell paragraph spacing: 1pt before, exact 11pt lines (twentieths of a point).
var cellSpacing = docx.Spacing{Before: 20, Line: 220, LineRule: "exact"}

var tableHeader = []string{"DATA", "DEB/CRED", "DESCRIÇÃO", "VALOR"}

// Write renders the document and writes the DOCX bytes to w.
func Write(w io.Writer, records []extract.Transaction, p Params) error {
	doc := build(records, p)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("docgen: write document: %w", err)
	}
	return nil
}

func build(records []extract.Transaction, p Params) *docx.Docx {
	doc := docx.New().WithDefaultTheme()

	year := headerYear(records)
	groups := groupByMonth(records)

	for i, month := range sortedMonthKeys(groups) {
		if i > 0 {
			doc.AddParagraph().AddPageBreaks()
		}
		addHeading(doc, fmt.Sprintf("MOVIMENTAÇÃO BANCÁRIA ANO %s", year), sizeTitle)
		addHeading(doc, fmt.Sprintf("%s  AG.%s    C/C %s", p.Bank, p.Branch, p.Account), sizeSubtitle)
		addHeading(doc, MonthName(month), sizeMonth)
		doc.AddParagraph() // spacer before the table

		addMonthTable(doc, groups[month])
	}

	sectPr := sectionProperties
	doc.Document.Body.Items = append(doc.Document.Body.Items, &sectPr)

	return doc
}

func addHeading(doc *docx.Docx, text, size string) {
	para := doc.AddParagraph().Justification("center")
	para.AddText(text).Size(size).Bold().Color("000000").Font(fontFamily, "", fontFamily, "")
}

func addMonthTable(doc *docx.Docx, records []extract.Transaction) {
	rowHeights := make([]int64, len(records)+1)
	table := doc.AddTableTwips(rowHeights, columnWidths, 0, nil)

	for col, title := range tableHeader {
		setCell(table.TableRows[0].TableCells[col], title, true, "center")
	}

	for i, tx := range records {
		row := table.TableRows[i+1]
		bold := tx.IsCredit()
		kindText := "DEB"
		if tx.IsCredit() {
			kindText = "CRED"
		}

		setCell(row.TableCells[0], tx.Date, bold, "center")
		setCell(row.TableCells[1], kindText, bold, "center")
		setCell(row.TableCells[2], tx.Description, bold, "left")
		setCell(row.TableCells[3], tx.Amount, bold, "right")
	}
}

func setCell(cell *docx.WTableCell, text string, bold bool, align string) {
	para := cell.AddParagraph().Justification(align)
	spacing := cellSpacing
	para.Properties.Spacing = &spacing
	run := para.AddText(text).Size(sizeBody).Color("000000").Font(fontFamily, "", fontFamily, "")
	if bold {
		run.Bold()
	}
}

// headerYear takes the year of the first transaction's date for the
// document title, falling back to a fixed label when absent.
func headerYear(records []extract.Transaction) string {
	if len(records) == 0 {
		return fallbackYear
	}
	parts := strings.Split(records[0].Date, "/")
	if len(parts) != 3 {
		return fallbackYear
	}
	return parts[2]
}

// groupByMonth buckets transactions by the month component of their date,
// preserving the original relative order inside each bucket.
func groupByMonth(records []extract.Transaction) map[string][]extract.Transaction {
	groups := make(map[string][]extract.Transaction)
	for _, tx := range records {
		key := monthKey(tx.Date)
		groups[key] = append(groups[key], tx)
	}
	return groups
}

// sortedMonthKeys orders the groups for rendering: ascending lexical
// order of the two-digit code, so the "00" sentinel comes first.
func sortedMonthKeys(groups map[string][]extract.Transaction) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
