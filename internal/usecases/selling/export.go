package selling

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

const salesSheet = "Vendas"

var salesHeader = []string{
	"Número", "Data", "Status", "Itens", "Subtotal", "Desconto", "Imposto", "Total", "Pago", "Troco", "Observações",
}

// ExportSales gera uma planilha xlsx com as vendas do filtro, sem paginação
func (s *Service) ExportSales(ctx context.Context, businessID string, filters domain.SaleFilters) ([]byte, error) {
	sales, err := s.saleRepo.ListAll(ctx, businessID, filters)
	if err != nil {
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar vendas para exportação")
	}

	data, err := buildSalesWorkbook(sales)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gerar planilha de vendas")
		return nil, NewSaleError(ErrExport, apiErrors.ErrInternalServer, "")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": businessID,
		"sales":       len(sales),
	}).Info("Planilha de vendas gerada")

	return data, nil
}

func buildSalesWorkbook(sales []*domain.Sale) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(salesSheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range salesHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(salesSheet, cell, v)
	}

	for r, sale := range sales {
		row := r + 2
		items := 0
		for _, item := range sale.Items {
			items += item.Quantity
		}

		values := []any{
			sale.SaleNumber,
			sale.CreatedAt.Format("2006-01-02 15:04"),
			string(sale.Status),
			items,
			sale.Subtotal,
			sale.Discount,
			sale.Tax,
			sale.Total,
			sale.PaidAmount,
			sale.ChangeAmount,
			derefString(sale.Notes),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(salesSheet, cell, v)
		}
	}

	_ = f.SetColWidth(salesSheet, "A", "A", 14)
	_ = f.SetColWidth(salesSheet, "B", "B", 18)
	_ = f.SetColWidth(salesSheet, "C", "J", 12)
	_ = f.SetColWidth(salesSheet, "K", "K", 32)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#9D174D"}, Pattern: 1},
	})
	_ = f.SetCellStyle(salesSheet, "A1", "K1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
