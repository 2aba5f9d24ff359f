package main

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"kharcha/internal/bill"
	"kharcha/internal/core"
)

func expensesMarkdown(title string, expenses []core.Expense, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(title)
	if len(expenses) == 0 {
		doc.PlainText(bill.NoExpensesText)
		return doc.String()
	}

	rows := make([][]string, 0, len(expenses))
	total := core.Zero
	for _, e := range expenses {
		rows = append(rows, []string{e.ID, e.Date.String(), e.Title, string(e.Category), e.Amount.Format(currency)})
		total = total.Add(e.Amount)
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Date", "Title", "Category", "Amount"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("%d expenses, %s in total.", len(expenses), total.Format(currency)))
	return doc.String()
}

func summaryMarkdown(cur, prev core.MonthOverview, ref core.Date, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Summary %s", cur.Month))
	doc.Table(md.TableSet{
		Header: []string{"Summary", cur.Month.String()},
		Rows: [][]string{
			{"Income", cur.Income.Format(currency)},
			{"Expenses", cur.Total.Format(currency)},
			{"Balance", cur.Balance.Format(currency)},
			{fmt.Sprintf("Last 7 days to %s", ref), cur.WeeklyTotal.Format(currency)},
			{"Weekly limit", cur.WeeklyLimit.Format(currency)},
		},
	})
	if cur.Warning {
		doc.PlainText(md.Bold("Warning: more than 80% of the weekly limit is spent."))
	}

	if len(cur.ByCategory) > 0 {
		doc.H2("By category")
		rows := make([][]string, 0, len(cur.ByCategory))
		for _, c := range cur.ByCategory {
			rows = append(rows, []string{string(c.Category), c.Amount.Format(currency)})
		}
		doc.Table(md.TableSet{Header: []string{"Category", "Amount"}, Rows: rows})
	}

	doc.H2(fmt.Sprintf("Previous month %s", prev.Month))
	doc.Table(md.TableSet{
		Header: []string{"Summary", prev.Month.String()},
		Rows: [][]string{
			{"Income", prev.Income.Format(currency)},
			{"Expenses", prev.Total.Format(currency)},
			{"Balance", prev.Balance.Format(currency)},
		},
	})
	return doc.String()
}

func trendMarkdown(points []core.TrendPoint, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Trend %s to %s", points[0].Month, points[len(points)-1].Month))
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Month.String(),
			p.Income.Format(currency),
			p.Expense.Format(currency),
			p.Income.Sub(p.Expense).Format(currency),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Month", "Income", "Expenses", "Balance"},
		Rows:   rows,
	})
	return doc.String()
}
