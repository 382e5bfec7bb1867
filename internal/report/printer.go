// Package report prints the analysis summary to the console.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"retailcli/internal/analytics"
	"retailcli/pkg/contracts/domain"
)

// Section titles, in print order
const (
	TopProductsTitle     = "Top Products"
	TopCategoriesTitle   = "Top Categories"
	MonthlySalesTitle    = "Monthly Sales"
	PromotionImpactTitle = "Promotion Impact"
	DecliningTitle       = "Products with Declining Sales"
	InventoryTitle       = "Inventory Recommendations"
)

// Printer renders summary sections as text tables
type Printer struct {
	out            io.Writer
	decliningShown int
}

// NewPrinter creates a printer writing to out. decliningShown limits the
// declining-sales section.
func NewPrinter(out io.Writer, decliningShown int) *Printer {
	return &Printer{out: out, decliningShown: decliningShown}
}

type section struct {
	title     string
	keyColumn string
	series    domain.Series
	format    string
}

// Print writes every section
func (p *Printer) Print(s analytics.Summary) error {
	sections := []section{
		{TopProductsTitle, "Product_Name", s.TopProducts, "%.2f"},
		{TopCategoriesTitle, "Category", s.TopCategories, "%.2f"},
		{MonthlySalesTitle, "Month", s.MonthlySales, "%.2f"},
		{PromotionImpactTitle, "Promotion_Applied", s.PromotionImpact, "%.2f"},
		{DecliningTitle, "Product_Name", s.DecliningProducts.Head(p.decliningShown), "%.4f"},
		{InventoryTitle, "Product_Name", s.InventorySuggestions, "%.2f"},
	}

	var buf bytes.Buffer
	for i, sec := range sections {
		if i > 0 {
			buf.WriteString("\n")
		}
		renderSection(&buf, sec)
	}

	if _, err := p.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func renderSection(buf *bytes.Buffer, sec section) {
	fmt.Fprintf(buf, "%s:\n", sec.title)

	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{sec.keyColumn, sec.series.Name})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for i, key := range sec.series.Keys {
		table.Append([]string{key, fmt.Sprintf(sec.format, sec.series.Values[i])})
	}
	table.Render()
}
