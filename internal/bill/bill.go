// Package bill renders the printable monthly statement as Markdown.
package bill

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"kharcha/internal/core"
)

// NoExpensesText replaces the expense table of an empty month.
const NoExpensesText = "No expenses for this month."

// Markdown renders the bill of one month: its income, total expense and
// balance, then one table row per expense in ledger order.
func Markdown(o core.MonthOverview, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Monthly Bill %s", o.Month))
	doc.Table(md.TableSet{
		Header: []string{"Summary", "Amount"},
		Rows: [][]string{
			{"Income", o.Income.Format(currency)},
			{"Total expense", o.Total.Format(currency)},
			{md.Bold("Balance"), md.Bold(o.Balance.Format(currency))},
		},
	})

	doc.H2("Expenses")
	if len(o.Expenses) == 0 {
		doc.PlainText(NoExpensesText)
		return doc.String()
	}

	rows := make([][]string, 0, len(o.Expenses))
	for _, e := range o.Expenses {
		rows = append(rows, []string{
			e.Date.String(),
			e.Title,
			string(core.NormalizeCategory(string(e.Category))),
			e.Amount.Format(currency),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Title", "Category", "Amount"},
		Rows:   rows,
	})

	if len(o.ByCategory) > 0 {
		doc.H2("By category")
		cats := make([][]string, 0, len(o.ByCategory))
		for _, c := range o.ByCategory {
			cats = append(cats, []string{string(c.Category), c.Amount.Format(currency)})
		}
		doc.Table(md.TableSet{
			Header: []string{"Category", "Amount"},
			Rows:   cats,
		})
	}

	return doc.String()
}
