package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ldessaigne/comptoir/internal/domain"
)

// handleExport streams the resolved catalog as an XLSX workbook, effective
// prices included. Walks the listing the same way the storefront does, so the
// export always matches what customers see.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []any{"slug", "sku", "name", "price", "promo_price", "currency", "stock", "in_stock", "categories", "image_url"}
	_ = f.SetSheetRow(sheet, "A1", &header)

	row := 2
	for page := 1; ; page++ {
		result, err := s.catalog.List(r.Context(), domain.ListingQuery{Page: page, PerPage: domain.MaxPerPage, Sort: domain.SortName})
		if err != nil {
			s.storeError(w, err)
			return
		}
		for _, item := range result.Items {
			promo := ""
			if item.HasPromo {
				promo = fmt.Sprintf("%.2f", item.EffectivePromo)
			}
			image := ""
			if len(item.ImageURLs) > 0 {
				image = item.ImageURLs[0]
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			_ = f.SetSheetRow(sheet, cell, &[]any{
				item.Slug, item.SKU, item.Name, item.Price, promo,
				item.Currency, item.Stock, item.InStock,
				strings.Join(item.CategoryIDs, ","), image,
			})
			row++
		}
		if page >= result.TotalPages || len(result.Items) == 0 {
			break
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=catalogue.xlsx")
	if err := f.Write(w); err != nil {
		http.Error(w, "export", 500)
	}
}
