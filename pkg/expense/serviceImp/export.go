package serviceImp

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/expense/service"
)

var exportHeader = []string{"Date", "Category", "Item", "Amount", "Description"}

func (s *expenseSvc) Export(ctx context.Context, uid string, f service.Format, w io.Writer) error {
	list, err := s.expenses.List(ctx, uid)
	if err != nil {
		return err
	}
	switch f {
	case service.FormatCSV:
		return writeCSV(list, w)
	case service.FormatXLSX, "":
		sum, err := s.Summary(ctx, uid)
		if err != nil {
			return err
		}
		return writeXLSX(list, sum, w)
	}
	return apperr.Validation("format must be xlsx or csv")
}

func writeCSV(list []entities.Expense, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return apperr.Internal("write csv", err)
	}
	for _, e := range list {
		rec := []string{
			e.Date.Format("2006-01-02"),
			e.Category,
			e.Item,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Description,
		}
		if err := cw.Write(rec); err != nil {
			return apperr.Internal("write csv", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperr.Internal("write csv", err)
	}
	return nil
}

func writeXLSX(list []entities.Expense, sum service.Summary, w io.Writer) error {
	x := excelize.NewFile()
	defer x.Close()

	const sheet = "Expenses"
	x.SetSheetName("Sheet1", sheet)
	if err := x.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return apperr.Internal("write xlsx", err)
	}
	for i, e := range list {
		row := []any{e.Date.Format("2006-01-02"), e.Category, e.Item, e.Amount, e.Description}
		if err := x.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return apperr.Internal("write xlsx", err)
		}
	}

	const summary = "Summary"
	if _, err := x.NewSheet(summary); err != nil {
		return apperr.Internal("write xlsx", err)
	}
	rows := [][]any{
		{"Total expenses", sum.TotalExpenses},
		{"Total income", sum.TotalIncome},
		{"Net profit", sum.NetProfit},
		{},
		{"Category", "Amount"},
	}
	for _, c := range service.Categories() {
		if v, ok := sum.ByCategory[c]; ok {
			rows = append(rows, []any{c, v})
		}
	}
	for i := range rows {
		if err := x.SetSheetRow(summary, fmt.Sprintf("A%d", i+1), &rows[i]); err != nil {
			return apperr.Internal("write xlsx", err)
		}
	}
	if _, err := x.WriteTo(w); err != nil {
		return apperr.Internal("write xlsx", err)
	}
	return nil
}
