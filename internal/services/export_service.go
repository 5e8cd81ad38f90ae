package services

import (
	"context"
	"io"

	"github.com/tealeg/xlsx"

	"jerseystore/internal/repos"
)

const dateLayout = "2006-01-02 15:04:05"

// ExportService writes the admin orders workbook.
type ExportService struct {
	Orders *repos.OrderRepo
	Inv    *repos.InventoryRepo
}

func NewExportService(orders *repos.OrderRepo, inv *repos.InventoryRepo) *ExportService {
	return &ExportService{Orders: orders, Inv: inv}
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}

// WriteOrders builds sheets Orders, Lines and Inventory for the latest
// limit orders and writes the workbook to w.
func (s *ExportService) WriteOrders(ctx context.Context, w io.Writer, limit int) error {
	summaries, err := s.Orders.ListLatest(ctx, limit)
	if err != nil {
		return err
	}
	stock, err := s.Inv.ListAll(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	orders, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}
	lines, err := file.AddSheet("Lines")
	if err != nil {
		return err
	}
	inv, err := file.AddSheet("Inventory")
	if err != nil {
		return err
	}

	addHeader(orders, "Order ID", "Date", "Customer", "City", "Zip", "Payment Method",
		"Payment Status", "Coupon", "Subtotal", "Discount", "Tax", "Total")
	addHeader(lines, "Order ID", "Line", "Product ID", "Name", "Size", "Qty", "Unit Price", "Line Total")
	addHeader(inv, "Product ID", "Name", "Size", "Qty")

	for _, sum := range summaries {
		o, err := s.Orders.Get(ctx, sum.ID)
		if err != nil {
			return err
		}
		row := orders.AddRow()
		row.AddCell().SetValue(o.OrderID)
		row.AddCell().SetValue(o.CreatedAt.Format(dateLayout))
		row.AddCell().SetValue(o.Customer.Name)
		row.AddCell().SetValue(o.Customer.City)
		row.AddCell().SetValue(o.Customer.Zip)
		row.AddCell().SetValue(o.PaymentMethod)
		row.AddCell().SetValue(o.PaymentStatus)
		row.AddCell().SetValue(o.CouponCode)
		row.AddCell().SetValue(o.Subtotal)
		row.AddCell().SetValue(o.Discount)
		row.AddCell().SetValue(o.Tax)
		row.AddCell().SetValue(o.TotalAmount)

		for i, it := range o.Items {
			lr := lines.AddRow()
			lr.AddCell().SetValue(o.OrderID)
			lr.AddCell().SetValue(i + 1)
			lr.AddCell().SetValue(it.ProductID)
			lr.AddCell().SetValue(it.Name)
			lr.AddCell().SetValue(it.Size)
			lr.AddCell().SetValue(it.Quantity)
			lr.AddCell().SetValue(it.Price)
			lr.AddCell().SetValue(it.Price * it.Quantity)
		}
	}

	for _, r := range stock {
		row := inv.AddRow()
		row.AddCell().SetValue(r.ProductID)
		row.AddCell().SetValue(r.Name)
		row.AddCell().SetValue(r.Size)
		row.AddCell().SetValue(r.Qty)
	}

	return file.Write(w)
}
